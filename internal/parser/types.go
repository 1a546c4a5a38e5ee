package parser

import (
	"github.com/sufu-ml/bridge/internal/ast"
	"github.com/sufu-ml/bridge/internal/token"
)

// ParseType parses a full type expression: ty := tuple ('->' ty)? .
func (p *Parser) ParseType() (ast.Type, error) {
	start := p.cur()
	left, err := p.parseTupleType()
	if err != nil {
		return nil, err
	}
	if p.cur().Type == token.ARROW {
		p.advance()
		right, err := p.ParseType()
		if err != nil {
			return nil, err
		}
		return &ast.TArr{Span: spanAt(start, p.cur()), From: left, To: right}, nil
	}
	return left, nil
}

// tuple := cons ('*' cons)*
func (p *Parser) parseTupleType() (ast.Type, error) {
	start := p.cur()
	first, err := p.parseConsType()
	if err != nil {
		return nil, err
	}
	elems := []ast.Type{first}
	for p.cur().Type == token.ASTERISK {
		p.advance()
		next, err := p.parseConsType()
		if err != nil {
			return nil, err
		}
		elems = append(elems, next)
	}
	if len(elems) == 1 {
		return elems[0], nil
	}
	return &ast.TTuple{Span: spanAt(start, p.cur()), Elems: elems}, nil
}

func canStartAtomType(tt token.TokenType) bool {
	switch tt {
	case token.INTKW, token.BOOLKW, token.UNITKW, token.TVAR, token.PARENS:
		return true
	}
	return false
}

// cons := '(' ty (',' ty)+ ')' id | atom? id | atom
func (p *Parser) parseConsType() (ast.Type, error) {
	start := p.cur()

	if p.cur().Type == token.PARENS && p.peekAt(1).Type == token.ID {
		if list, ok, err := p.tryParensTypeList(); err != nil {
			return nil, err
		} else if ok {
			name := p.advance().Lexeme
			return &ast.TInd{Span: spanAt(start, p.cur()), Name: name, Params: list}, nil
		}
	}

	if canStartAtomType(p.cur().Type) {
		atomTy, err := p.parseAtomType()
		if err != nil {
			return nil, err
		}
		if p.cur().Type == token.ID {
			name := p.advance().Lexeme
			return &ast.TInd{Span: spanAt(start, p.cur()), Name: name, Params: []ast.Type{atomTy}}, nil
		}
		return atomTy, nil
	}

	if p.cur().Type == token.ID {
		name := p.advance().Lexeme
		return &ast.TInd{Span: spanAt(start, p.cur()), Name: name, Params: nil}, nil
	}

	return nil, p.errUnexpected("a type")
}

// tryParensTypeList attempts the multi-parameter reading of a Parens
// token: a comma-separated list of >= 2 types filling the group exactly.
// On any shape mismatch it reports ok=false without consuming input, so
// the caller can fall back to the single-parenthesized-type reading.
func (p *Parser) tryParensTypeList() ([]ast.Type, bool, error) {
	save := p.pos
	tok := p.advance() // Parens
	inner, _ := tok.Literal.([]token.Token)
	sub := New(inner)

	first, err := sub.ParseType()
	if err != nil || sub.cur().Type != token.COMMA {
		p.pos = save
		return nil, false, nil
	}
	list := []ast.Type{first}
	for sub.cur().Type == token.COMMA {
		sub.advance()
		next, err := sub.ParseType()
		if err != nil {
			p.pos = save
			return nil, false, nil
		}
		list = append(list, next)
	}
	if !sub.atEnd() || len(list) < 2 {
		p.pos = save
		return nil, false, nil
	}
	return list, true, nil
}

// atom := int | bool | unit | tvar | '(' ty ')'
func (p *Parser) parseAtomType() (ast.Type, error) {
	start := p.cur()
	switch p.cur().Type {
	case token.INTKW:
		p.advance()
		return &ast.TInt{Span: spanAt(start, start)}, nil
	case token.BOOLKW:
		p.advance()
		return &ast.TBool{Span: spanAt(start, start)}, nil
	case token.UNITKW:
		p.advance()
		return &ast.TUnit{Span: spanAt(start, start)}, nil
	case token.TVAR:
		tok := p.advance()
		return &ast.TVar{Span: spanAt(start, start), Name: tok.Lexeme}, nil
	case token.PARENS:
		sub, err := p.expectParens()
		if err != nil {
			return nil, err
		}
		ty, err := sub.ParseType()
		if err != nil {
			return nil, err
		}
		if !sub.atEnd() {
			return nil, sub.errTrailing()
		}
		return ty, nil
	}
	return nil, p.errUnexpected("int, bool, unit, a type variable or '('")
}
