package prmpt

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const commentChar = '%'

var specialKinds = map[rune]TokenKind{
	'\\': TokenBackslash,
	'{':  TokenOpenBrace,
	'}':  TokenCloseBrace,
	'[':  TokenOpenBracket,
	']':  TokenCloseBracket,
}

var lineEndRegex = regexp.MustCompile(`(\r?)\n`)

// Lexer splits a prmpt script into tokens. Tokens are produced one at a time
// by Next; once the end of input is reached every further call returns a
// TokenEOF token.
//
//	\green{hello} world  ->  \ green { hello } world EOF
type Lexer struct {
	src      string
	pos      int
	scanLine int
	line     int
}

// NewLexer creates a lexer for the given script.
func NewLexer(source string) *Lexer {
	return &Lexer{
		src:      padSource(source),
		scanLine: 1,
		line:     1,
	}
}

// padSource puts whitespace in front of every comment and at the end of every
// physical line, so that a comment can never run into the following line and
// merge the words around it.
func padSource(source string) string {
	source = strings.ReplaceAll(source, string(commentChar), " "+string(commentChar))
	return lineEndRegex.ReplaceAllString(source, " ${1}\n")
}

// Line returns the source line of the most recently returned token.
func (l *Lexer) Line() int {
	return l.line
}

// Next returns the next token.
func (l *Lexer) Next() Token {
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])

		switch {
		case r == '\n':
			l.scanLine++
			l.pos += size
		case unicode.IsSpace(r):
			l.pos += size
		case r == commentChar:
			l.skipComment()
		default:
			if kind, ok := specialKinds[r]; ok {
				l.pos += size
				return l.emit(kind, string(r))
			}
			return l.emit(TokenWord, l.scanWord())
		}
	}

	return l.emit(TokenEOF, "")
}

func (l *Lexer) emit(kind TokenKind, text string) Token {
	l.line = l.scanLine
	return Token{Kind: kind, Text: text, Line: l.line}
}

// skipComment advances to the line break ending the comment, leaving the
// break itself to be counted by Next.
func (l *Lexer) skipComment() {
	if idx := strings.IndexByte(l.src[l.pos:], '\n'); idx >= 0 {
		l.pos += idx
		return
	}
	l.pos = len(l.src)
}

func (l *Lexer) scanWord() string {
	start := l.pos
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !isWordRune(r) {
			break
		}
		l.pos += size
	}
	return l.src[start:l.pos]
}

// isWordRune reports whether r can be part of a word token.
func isWordRune(r rune) bool {
	if unicode.IsSpace(r) || r == commentChar {
		return false
	}
	_, special := specialKinds[r]
	return !special
}
