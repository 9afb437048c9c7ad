package prmpt

// Parse turns a prmpt script into a Sequence. Parsing never fails: an
// unclosed bracket simply ends the argument at the end of input, and a stray
// closing bracket at the top level ends the script.
//
// Grammar:
//
//	sequence   := item*
//	item       := literal | invocation
//	literal    := WORD
//	invocation := '\' WORD ( '{' sequence '}' | '[' sequence ']' )*
func Parse(source string) Sequence {
	p := &parser{lex: NewLexer(source)}
	p.advance()
	return p.readSequence()
}

// parser holds one token of lookahead over the lexer.
type parser struct {
	lex *Lexer
	tok Token
}

func (p *parser) advance() {
	p.tok = p.lex.Next()
}

// readSequence consumes items until a closing bracket or the end of input.
// The terminating token is left for the caller, which opened the bracket and
// therefore owns the closer.
func (p *parser) readSequence() Sequence {
	out := Sequence{}

	for {
		switch p.tok.Kind {
		case TokenEOF, TokenCloseBrace, TokenCloseBracket:
			return out
		case TokenBackslash:
			out = append(out, p.readInvocation())
		default:
			// words, and opening brackets that do not follow an invocation
			out = append(out, &Literal{Value: p.tok.Text, Line: p.tok.Line})
			p.advance()
		}
	}
}

func (p *parser) readInvocation() *Invocation {
	inv := &Invocation{Line: p.tok.Line}

	p.advance()
	if p.tok.Kind == TokenEOF {
		return inv
	}
	inv.Name = p.tok.Text
	p.advance()

	for p.tok.Kind == TokenOpenBrace || p.tok.Kind == TokenOpenBracket {
		opener := p.tok.Kind
		p.advance()

		arg := p.readSequence()
		if opener == TokenOpenBrace {
			inv.Args = append(inv.Args, arg)
		} else {
			inv.OptArgs = append(inv.OptArgs, arg)
		}

		if p.tok.Kind == TokenEOF {
			break
		}
		// step over the closer
		p.advance()
	}

	return inv
}
