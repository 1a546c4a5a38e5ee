package parser

import (
	"github.com/sufu-ml/bridge/internal/ast"
	"github.com/sufu-ml/bridge/internal/token"
)

// binaryPrec is the single source of truth for left-infix operator
// precedence; the pretty-printer's opPrec table (see
// internal/prettyprint/terms.go) must agree with it.
var binaryPrec = map[token.TokenType]int{
	token.ASTERISK: 10,
	token.SLASH:    10,
	token.PLUS:     5,
	token.MINUS:    5,
	token.EQ:       4,
	token.LT:       4,
	token.GT:       4,
	token.LTE:      4,
	token.GTE:      4,
	token.AND:      2,
	token.OR:       1,
}

var binarySpelling = map[token.TokenType]string{
	token.ASTERISK: "*",
	token.SLASH:    "/",
	token.PLUS:     "+",
	token.MINUS:    "-",
	token.EQ:       "==",
	token.LT:       "<",
	token.GT:       ">",
	token.LTE:      "<=",
	token.GTE:      ">=",
	token.AND:      "&&",
	token.OR:       "||",
}

func canStartAtomicTerm(tt token.TokenType) bool {
	switch tt {
	case token.INT, token.TRUE, token.FALSE, token.UNITV, token.ID, token.CONS, token.PARENS:
		return true
	}
	return false
}

// ParseTerm is the top-level entry point: complex forms first, falling
// through to the Pratt-driven arithmetic layer.
func (p *Parser) ParseTerm() (ast.Term, error) {
	start := p.cur()
	switch p.cur().Type {
	case token.LET:
		p.advance()
		bind, err := p.parseBind()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.IN); err != nil {
			return nil, err
		}
		body, err := p.ParseTerm()
		if err != nil {
			return nil, err
		}
		return &ast.TmLet{Span: spanAt(start, p.cur()), Bind: bind, Body: body}, nil

	case token.IF:
		p.advance()
		cond, err := p.ParseTerm()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.THEN); err != nil {
			return nil, err
		}
		thenB, err := p.ParseTerm()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.ELSE); err != nil {
			return nil, err
		}
		elseB, err := p.ParseTerm()
		if err != nil {
			return nil, err
		}
		return &ast.TmIf{Span: spanAt(start, p.cur()), Cond: cond, Then: thenB, Else: elseB}, nil

	case token.MATCH:
		p.advance()
		def, err := p.ParseTerm()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.WITH); err != nil {
			return nil, err
		}
		if p.cur().Type == token.VBAR {
			p.advance()
		}
		cases, err := p.parseCases()
		if err != nil {
			return nil, err
		}
		return &ast.TmMatch{Span: spanAt(start, p.cur()), Def: def, Cases: cases}, nil

	case token.FUN:
		p.advance()
		var params []string
		for p.cur().Type == token.ID {
			params = append(params, p.advance().Lexeme)
		}
		if _, err := p.expect(token.ARROW); err != nil {
			return nil, err
		}
		body, err := p.ParseTerm()
		if err != nil {
			return nil, err
		}
		return &ast.TmFunc{Span: spanAt(start, p.cur()), Params: params, Body: body}, nil

	default:
		return p.parseArith(0)
	}
}

func (p *Parser) parseCases() ([]ast.MatchCase, error) {
	first, err := p.parseCase()
	if err != nil {
		return nil, err
	}
	cases := []ast.MatchCase{first}
	for p.cur().Type == token.VBAR {
		p.advance()
		next, err := p.parseCase()
		if err != nil {
			return nil, err
		}
		cases = append(cases, next)
	}
	return cases, nil
}

func (p *Parser) parseCase() (ast.MatchCase, error) {
	pt, err := p.ParsePattern()
	if err != nil {
		return ast.MatchCase{}, err
	}
	if _, err := p.expect(token.ARROW); err != nil {
		return ast.MatchCase{}, err
	}
	body, err := p.ParseTerm()
	if err != nil {
		return ast.MatchCase{}, err
	}
	return ast.MatchCase{Pattern: pt, Body: body}, nil
}

// parseArith is a standard precedence-climbing parser over the table
// above, with unary '-' (prec 20) and 'not' (prec 3) as prefix forms.
func (p *Parser) parseArith(minPrec int) (ast.Term, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for {
		tt := p.cur().Type
		prec, ok := binaryPrec[tt]
		if !ok || prec < minPrec {
			break
		}
		start := p.cur()
		p.advance()
		right, err := p.parseArith(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.TmPrimOp{Span: spanAt(start, p.cur()), Op: binarySpelling[tt], Params: []ast.Term{left, right}}
	}
	return left, nil
}

func (p *Parser) parsePrefix() (ast.Term, error) {
	start := p.cur()
	switch p.cur().Type {
	case token.MINUS:
		p.advance()
		operand, err := p.parseArith(20)
		if err != nil {
			return nil, err
		}
		return &ast.TmPrimOp{Span: spanAt(start, p.cur()), Op: "-", Params: []ast.Term{operand}}, nil
	case token.NOT:
		p.advance()
		operand, err := p.parseArith(3)
		if err != nil {
			return nil, err
		}
		return &ast.TmPrimOp{Span: spanAt(start, p.cur()), Op: "not", Params: []ast.Term{operand}}, nil
	default:
		return p.parseCall()
	}
}

// call folds a non-empty run of atomics into left-associative App nodes.
func (p *Parser) parseCall() (ast.Term, error) {
	start := p.cur()
	left, err := p.parseAtomicTerm()
	if err != nil {
		return nil, err
	}
	for canStartAtomicTerm(p.cur().Type) {
		arg, err := p.parseAtomicTerm()
		if err != nil {
			return nil, err
		}
		left = &ast.TmApp{Span: spanAt(start, p.cur()), Func: left, Param: arg}
	}
	return left, nil
}

func (p *Parser) parseAtomicTerm() (ast.Term, error) {
	start := p.cur()
	switch p.cur().Type {
	case token.INT:
		tok := p.advance()
		return &ast.TmInt{Span: spanAt(start, start), Value: tok.Literal.(int)}, nil
	case token.TRUE:
		p.advance()
		return &ast.TmBool{Span: spanAt(start, start), Value: true}, nil
	case token.FALSE:
		p.advance()
		return &ast.TmBool{Span: spanAt(start, start), Value: false}, nil
	case token.UNITV:
		p.advance()
		return &ast.TmUnit{Span: spanAt(start, start)}, nil
	case token.ID:
		tok := p.advance()
		return &ast.TmVar{Span: spanAt(start, start), Name: tok.Lexeme}, nil
	case token.CONS:
		tok := p.advance()
		return &ast.TmNativeCons{Span: spanAt(start, start), Name: tok.Lexeme}, nil
	case token.PARENS:
		sub, err := p.expectParens()
		if err != nil {
			return nil, err
		}
		first, err := sub.ParseTerm()
		if err != nil {
			return nil, err
		}
		elems := []ast.Term{first}
		for sub.cur().Type == token.COMMA {
			sub.advance()
			next, err := sub.ParseTerm()
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
		return &ast.TmTuple{Span: spanAt(start, p.cur()), Elems: elems}, nil
	}
	return nil, p.errUnexpected("an expression")
}

// parseBind implements: 'rec'? id id* '=' term | 'rec'? id id* '=' 'function' ('|'? case ('|' case)*)
func (p *Parser) parseBind() (*ast.Bind, error) {
	start := p.cur()
	isRec := false
	if p.cur().Type == token.REC {
		p.advance()
		isRec = true
	}
	name, err := p.expect(token.ID)
	if err != nil {
		return nil, err
	}
	var params []string
	for p.cur().Type == token.ID {
		params = append(params, p.advance().Lexeme)
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	if p.cur().Type == token.FUNCTION {
		p.advance()
		if p.cur().Type == token.VBAR {
			p.advance()
		}
		cases, err := p.parseCases()
		if err != nil {
			return nil, err
		}
		return &ast.Bind{Span: spanAt(start, p.cur()), Name: name.Lexeme, Params: params, IsRec: isRec, Body: ast.FuncBind{Cases: cases}}, nil
	}
	term, err := p.ParseTerm()
	if err != nil {
		return nil, err
	}
	return &ast.Bind{Span: spanAt(start, p.cur()), Name: name.Lexeme, Params: params, IsRec: isRec, Body: ast.NormalBind{Term: term}}, nil
}
