package parser

import (
	"github.com/sufu-ml/bridge/internal/ast"
	"github.com/sufu-ml/bridge/internal/token"
)

func canStartBasicPattern(tt token.TokenType) bool {
	switch tt {
	case token.UNDERSCORE, token.ID, token.PARENS:
		return true
	}
	return false
}

// ParsePattern parses pat := cons_or_basic ('as' id)? .
func (p *Parser) ParsePattern() (ast.Pattern, error) {
	start := p.cur()
	base, err := p.parseConsOrBasicPattern()
	if err != nil {
		return nil, err
	}
	if p.cur().Type == token.AS {
		p.advance()
		name, err := p.expect(token.ID)
		if err != nil {
			return nil, err
		}
		return &ast.PVar{Span: spanAt(start, p.cur()), Inner: base, Name: name.Lexeme}, nil
	}
	return base, nil
}

func (p *Parser) parseConsOrBasicPattern() (ast.Pattern, error) {
	start := p.cur()
	if p.cur().Type == token.CONS {
		name := p.advance().Lexeme
		if canStartBasicPattern(p.cur().Type) {
			content, err := p.parseBasicPattern()
			if err != nil {
				return nil, err
			}
			return &ast.PCons{Span: spanAt(start, p.cur()), Name: name, Content: content}, nil
		}
		return &ast.PCons{Span: spanAt(start, start), Name: name}, nil
	}
	return p.parseBasicPattern()
}

func (p *Parser) parseBasicPattern() (ast.Pattern, error) {
	start := p.cur()
	switch p.cur().Type {
	case token.UNDERSCORE:
		p.advance()
		return &ast.PWildcard{Span: spanAt(start, start)}, nil
	case token.ID:
		tok := p.advance()
		return &ast.PVar{Span: spanAt(start, start), Name: tok.Lexeme}, nil
	case token.PARENS:
		sub, err := p.expectParens()
		if err != nil {
			return nil, err
		}
		first, err := sub.ParsePattern()
		if err != nil {
			return nil, err
		}
		elems := []ast.Pattern{first}
		for sub.cur().Type == token.COMMA {
			sub.advance()
			next, err := sub.ParsePattern()
			if err != nil {
				return nil, err
			}
			elems = append(elems, next)
		}
		if !sub.atEnd() {
			return nil, sub.errTrailing()
		}
		if len(elems) == 1 {
			return elems[0], nil
		}
		return &ast.PTuple{Span: spanAt(start, p.cur()), Elems: elems}, nil
	}
	return nil, p.errUnexpected("a pattern")
}
