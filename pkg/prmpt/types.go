package prmpt

// TokenKind represents the different kinds of tokens in a prmpt script.
type TokenKind int

// Token kinds produced by the Lexer
const (
	TokenEOF          TokenKind = iota // End of input
	TokenWord                          // Run of word characters
	TokenBackslash                     // \ introducing a function invocation
	TokenOpenBrace                     // { opening a required argument
	TokenCloseBrace                    // }
	TokenOpenBracket                   // [ opening an optional argument
	TokenCloseBracket                  // ]
)

// Token is a single lexical element. Line is the 1-based physical source line.
type Token struct {
	Kind TokenKind
	Text string
	Line int
}

// Node is an element of a parsed script: either a *Literal or an *Invocation.
type Node interface {
	node()
}

// Sequence is an ordered list of nodes. A whole script, and every argument of
// an invocation, is a Sequence.
type Sequence []Node

// Literal is verbatim text copied to the output.
type Literal struct {
	Value string
	Line  int
}

// Invocation calls a registered function. Args holds one Sequence per {}
// pair and OptArgs one per [] pair, each in the order written. A nil slice
// means no bracket of that kind was written; `\f{}` yields one empty Sequence.
type Invocation struct {
	Name    string
	Args    []Sequence
	OptArgs []Sequence
	Line    int
}

func (*Literal) node()    {}
func (*Invocation) node() {}
