// Package parser implements the recursive-descent + precedence-climbing
// parser for types, patterns, terms, commands and programs. It consumes
// the token stream produced by internal/lexer, including its recursive
// Parens tokens.
package parser

import (
	"github.com/sufu-ml/bridge/internal/ast"
	"github.com/sufu-ml/bridge/internal/diagnostics"
	"github.com/sufu-ml/bridge/internal/token"
)

// Parser walks a flat token slice. A Parens token's payload is itself a
// []token.Token; parsing a parenthesized construct spins up a fresh
// Parser over that inner slice and requires it to be fully consumed.
type Parser struct {
	toks []token.Token
	pos  int
}

func New(toks []token.Token) *Parser {
	return &Parser{toks: toks}
}

var eofToken = token.Token{Type: token.EOF, Lexeme: "<eof>"}

func (p *Parser) cur() token.Token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return eofToken
}

func (p *Parser) peekAt(n int) token.Token {
	idx := p.pos + n
	if idx < len(p.toks) {
		return p.toks[idx]
	}
	return eofToken
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *Parser) atEnd() bool {
	return p.pos >= len(p.toks)
}

func (p *Parser) expect(tt token.TokenType) (token.Token, error) {
	if p.cur().Type != tt {
		return token.Token{}, diagnostics.NewParseError(diagnostics.ErrP002, p.cur(), string(tt), string(p.cur().Type))
	}
	return p.advance(), nil
}

// expectParens consumes a Parens token and returns a fresh Parser scoped
// to its inner token sequence.
func (p *Parser) expectParens() (*Parser, error) {
	tok, err := p.expect(token.PARENS)
	if err != nil {
		return nil, err
	}
	inner, _ := tok.Literal.([]token.Token)
	return New(inner), nil
}

func (p *Parser) errUnexpected(expected string) error {
	return diagnostics.NewParseError(diagnostics.ErrP001, p.cur(), expected, string(p.cur().Type))
}

func (p *Parser) errTrailing() error {
	return diagnostics.NewParseError(diagnostics.ErrP001, p.cur(), "<end of group>", string(p.cur().Type))
}

// spanAt synthesizes a span from a start/end token pair. The actual byte
// offsets are not tracked by this lexer (it tracks line/column instead),
// so spans here are a coarse stand-in sufficient to satisfy the
// "attached to every node" requirement; none of the normalizers or the
// codec depend on their numeric values.
func spanAt(start, end token.Token) ast.Span {
	return ast.Span{Start: start.Line*1000 + start.Column, End: end.Line*1000 + end.Column + 1}
}
