// Package prmpt compiles prompt scripts into the text a shell prints as its
// prompt.
//
// A script is literal words interleaved with function invocations. Required
// arguments go in braces and optional arguments in square brackets; '%'
// starts a comment running to the end of the line:
//
//	\green[bold]{\user}@\hostname % who and where
//	\workingdir \dollar
//
// Literal words are joined without spaces; use \space or \newline to emit
// whitespace. Functions come from a Registry populated by providers (see
// package functions), and each render shares one Context that tracks the
// visible cursor position.
//
// Example usage:
//
//	reg := prmpt.NewRegistry()
//	_ = reg.RegisterProvider(functions.Special())
//	out := prmpt.NewCompiler(reg).Execute(`\user\space\dollar`, prmpt.NewContext())
package prmpt

import (
	"strings"
)

// Render is a convenience function that parses source and renders it with a
// fresh compiler over registry.
func Render(source string, registry *Registry, ctx *Context) (string, error) {
	return NewCompiler(registry).Render(Parse(source), ctx)
}

// Tokenize returns every token of source up to, but not including, the end
// sentinel.
func Tokenize(source string) []Token {
	lex := NewLexer(source)

	var tokens []Token
	for {
		tok := lex.Next()
		if tok.Kind == TokenEOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenWord:
		return "Word"
	case TokenBackslash:
		return "Backslash"
	case TokenOpenBrace:
		return "OpenBrace"
	case TokenCloseBrace:
		return "CloseBrace"
	case TokenOpenBracket:
		return "OpenBracket"
	case TokenCloseBracket:
		return "CloseBracket"
	default:
		return "Unknown"
	}
}

// String formats the sequence back into script syntax, with literals
// separated by single spaces.
func (s Sequence) String() string {
	parts := make([]string, 0, len(s))
	for _, n := range s {
		switch n := n.(type) {
		case *Literal:
			parts = append(parts, n.Value)
		case *Invocation:
			parts = append(parts, n.String())
		}
	}
	return strings.Join(parts, " ")
}

func (inv *Invocation) String() string {
	var sb strings.Builder
	sb.WriteString(`\`)
	sb.WriteString(inv.Name)
	for _, arg := range inv.Args {
		sb.WriteString("{" + arg.String() + "}")
	}
	for _, arg := range inv.OptArgs {
		sb.WriteString("[" + arg.String() + "]")
	}
	return sb.String()
}
