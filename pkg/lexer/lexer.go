// Package lexer tokenizes VM-IL source text into a stream of
// pkg/token.Token values for the parser to consume.
package lexer

import (
	"fmt"
	"strconv"

	"github.com/jacklang/vm2asm/pkg/token"
)

// Error reports a lexical failure at a source position.
type Error struct {
	Line, Column int
	Msg          string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}

// Lexer scans VM-IL source text one byte at a time, in the manner of
// a hand-rolled character scanner: it tracks the current and next
// byte along with line/column, and classifies runs of characters into
// tokens without building any intermediate buffer beyond the token
// slices it returns.
type Lexer struct {
	input   string
	pos     int
	readPos int
	ch      byte
	line    int
	column  int
}

// New creates a Lexer positioned at the start of input.
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.column++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// Tokenize scans the entire input and returns its token stream,
// terminated by a single EOF token. It halts and returns an error at
// the first unrecognized token or integer-literal overflow.
func Tokenize(input string) ([]token.Token, error) {
	l := New(input)
	var toks []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks, nil
		}
	}
}

// NextToken scans and returns the next token, skipping horizontal
// whitespace and `//` end-of-line comments, but preserving newlines as
// significant Newline tokens (the parser uses them as statement
// separators).
func (l *Lexer) NextToken() (token.Token, error) {
	l.skipHorizontalWhitespaceAndComments()

	line, col := l.line, l.column

	switch {
	case l.ch == 0:
		return token.Token{Type: token.EOF, Line: line, Column: col}, nil
	case l.ch == '\n':
		for l.ch == '\n' || l.ch == '\r' {
			l.readChar()
			l.skipHorizontalWhitespaceAndComments()
		}
		return token.Token{Type: token.Newline, Literal: "\n", Line: line, Column: col}, nil
	case isLetter(l.ch):
		lit := l.readIdentLike()
		return token.Token{Type: token.LookupIdent(lit), Literal: lit, Line: line, Column: col}, nil
	case isDigit(l.ch):
		lit := l.readNumber()
		if _, err := strconv.ParseUint(lit, 10, 32); err != nil {
			return token.Token{}, &Error{Line: line, Column: col, Msg: fmt.Sprintf("integer literal %q overflows 32 bits", lit)}
		}
		return token.Token{Type: token.LitInt, Literal: lit, Line: line, Column: col}, nil
	default:
		return token.Token{}, &Error{Line: line, Column: col, Msg: fmt.Sprintf("unexpected character %q", rune(l.ch))}
	}
}

// skipHorizontalWhitespaceAndComments discards runs of [ \t\f] and
// `//` comments, but stops at a newline so the caller can emit it.
func (l *Lexer) skipHorizontalWhitespaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\f' {
			l.readChar()
		}
		if l.ch == '/' && l.peekChar() == '/' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		break
	}
}

// readIdentLike reads a maximal run matching the VM-IL identifier
// grammar [A-Za-z][A-Za-z0-9_.]*, with one special case: the reserved
// word if-goto, whose single internal hyphen is otherwise outside the
// identifier alphabet.
func (l *Lexer) readIdentLike() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' || l.ch == '.' {
		l.readChar()
	}
	lit := l.input[start:l.pos]
	if lit == "if" && l.ch == '-' && hasPrefixAt(l.input, l.readPos, "goto") {
		l.readChar() // consume '-'
		for isLetter(l.ch) {
			l.readChar()
		}
		lit = l.input[start:l.pos]
	}
	return lit
}

func hasPrefixAt(s string, pos int, prefix string) bool {
	if pos+len(prefix) > len(s) {
		return false
	}
	return s[pos:pos+len(prefix)] == prefix
}

func (l *Lexer) readNumber() string {
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
