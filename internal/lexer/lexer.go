// Package lexer turns ML source text into a token stream, folding each
// balanced parenthesis group into a single recursive token.
package lexer

import (
	"strconv"

	"github.com/sufu-ml/bridge/internal/diagnostics"
	"github.com/sufu-ml/bridge/internal/token"
)

type Lexer struct {
	input        string
	position     int
	readPosition int
	ch           byte
	line         int
	column       int
}

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
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// Tokenize lexes the entire input, returning the flat top-level token
// sequence (with nested Parens tokens for every balanced group).
func Tokenize(input string) ([]token.Token, error) {
	l := New(input)
	toks, err := l.lexSequence(false)
	if err != nil {
		return nil, err
	}
	return toks, nil
}

// lexSequence lexes tokens until EOF, or until a matching ')' when
// insideParens is true (in which case the ')' itself is consumed but not
// appended to the returned sequence).
func (l *Lexer) lexSequence(insideParens bool) ([]token.Token, error) {
	var toks []token.Token
	for {
		l.skipWhitespace()
		if l.ch == 0 {
			if insideParens {
				return nil, diagnostics.NewLexError(diagnostics.ErrL002, l.line, l.column)
			}
			return toks, nil
		}
		if l.ch == ')' {
			if !insideParens {
				return nil, diagnostics.NewLexError(diagnostics.ErrL002, l.line, l.column)
			}
			l.readChar()
			return toks, nil
		}
		if l.ch == '(' && l.peekChar() == ')' {
			line, column := l.line, l.column
			l.readChar()
			l.readChar()
			toks = append(toks, token.Token{Type: token.UNITV, Lexeme: "()", Line: line, Column: column})
			continue
		}
		if l.ch == '(' {
			line, column := l.line, l.column
			l.readChar()
			inner, err := l.lexSequence(true)
			if err != nil {
				return nil, err
			}
			toks = append(toks, token.Token{Type: token.PARENS, Lexeme: "(...)", Line: line, Column: column, Literal: inner})
			continue
		}
		tok, err := l.nextToken()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
	}
}

func (l *Lexer) nextToken() (token.Token, error) {
	line, column := l.line, l.column

	switch {
	case l.ch == '-' && isDigit(l.peekChar()):
		// A minus immediately adjacent to digits is a negative literal,
		// not a Dash token followed by a positive one.
		lit := l.readNumber()
		n, err := strconv.Atoi(lit)
		if err != nil {
			return token.Token{}, diagnostics.NewLexError(diagnostics.ErrP004, line, column, lit)
		}
		return token.Token{Type: token.INT, Lexeme: lit, Line: line, Column: column, Literal: n}, nil
	case l.ch == '-':
		if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.ARROW, Lexeme: "->", Line: line, Column: column}, nil
		}
		l.readChar()
		return token.Token{Type: token.MINUS, Lexeme: "-", Line: line, Column: column}, nil
	case l.ch == '=':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.EQ, Lexeme: "==", Line: line, Column: column}, nil
		}
		l.readChar()
		return token.Token{Type: token.ASSIGN, Lexeme: "=", Line: line, Column: column}, nil
	case l.ch == '<':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.LTE, Lexeme: "<=", Line: line, Column: column}, nil
		}
		l.readChar()
		return token.Token{Type: token.LT, Lexeme: "<", Line: line, Column: column}, nil
	case l.ch == '>':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.GTE, Lexeme: ">=", Line: line, Column: column}, nil
		}
		l.readChar()
		return token.Token{Type: token.GT, Lexeme: ">", Line: line, Column: column}, nil
	case l.ch == '&':
		if l.peekChar() == '&' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.AND, Lexeme: "&&", Line: line, Column: column}, nil
		}
		return token.Token{}, diagnostics.NewLexError(diagnostics.ErrL001, line, column, string(l.ch))
	case l.ch == '|':
		if l.peekChar() == '|' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.OR, Lexeme: "||", Line: line, Column: column}, nil
		}
		l.readChar()
		return token.Token{Type: token.VBAR, Lexeme: "|", Line: line, Column: column}, nil
	case l.ch == '+':
		l.readChar()
		return token.Token{Type: token.PLUS, Lexeme: "+", Line: line, Column: column}, nil
	case l.ch == '*':
		l.readChar()
		return token.Token{Type: token.ASTERISK, Lexeme: "*", Line: line, Column: column}, nil
	case l.ch == '/':
		l.readChar()
		return token.Token{Type: token.SLASH, Lexeme: "/", Line: line, Column: column}, nil
	case l.ch == ',':
		l.readChar()
		return token.Token{Type: token.COMMA, Lexeme: ",", Line: line, Column: column}, nil
	case l.ch == '.':
		l.readChar()
		return token.Token{Type: token.DOT, Lexeme: ".", Line: line, Column: column}, nil
	case l.ch == ':':
		l.readChar()
		return token.Token{Type: token.COLON, Lexeme: ":", Line: line, Column: column}, nil
	case l.ch == '@':
		l.readChar()
		return token.Token{Type: token.AT, Lexeme: "@", Line: line, Column: column}, nil
	case l.ch == '\'':
		name := l.readTypeVar()
		return token.Token{Type: token.TVAR, Lexeme: name, Line: line, Column: column, Literal: name}, nil
	case isDigit(l.ch):
		lit := l.readNumber()
		n, err := strconv.Atoi(lit)
		if err != nil {
			return token.Token{}, diagnostics.NewLexError(diagnostics.ErrP004, line, column, lit)
		}
		return token.Token{Type: token.INT, Lexeme: lit, Line: line, Column: column, Literal: n}, nil
	case isIdentStart(l.ch):
		ident := l.readIdentifier()
		if ident == "_" {
			return token.Token{Type: token.UNDERSCORE, Lexeme: ident, Line: line, Column: column}, nil
		}
		if kw, ok := token.LookupIdent(ident); ok {
			return token.Token{Type: kw, Lexeme: ident, Line: line, Column: column}, nil
		}
		if isUpper(ident[0]) {
			return token.Token{Type: token.CONS, Lexeme: ident, Line: line, Column: column, Literal: ident}, nil
		}
		return token.Token{Type: token.ID, Lexeme: ident, Line: line, Column: column, Literal: ident}, nil
	default:
		ch := l.ch
		l.readChar()
		return token.Token{}, diagnostics.NewLexError(diagnostics.ErrL001, line, column, string(ch))
	}
}

func (l *Lexer) readNumber() string {
	start := l.position
	if l.ch == '-' {
		l.readChar()
	}
	for isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isIdentPart(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) readTypeVar() string {
	start := l.position
	l.readChar() // consume leading '
	for isIdentPart(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func isDigit(ch byte) bool      { return ch >= '0' && ch <= '9' }
func isUpper(ch byte) bool      { return ch >= 'A' && ch <= 'Z' }
func isIdentStart(ch byte) bool { return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') }
func isIdentPart(ch byte) bool  { return isIdentStart(ch) || isDigit(ch) }
