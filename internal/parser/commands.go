package parser

import (
	"github.com/sufu-ml/bridge/internal/ast"
	"github.com/sufu-ml/bridge/internal/token"
)

// ParseCommand parses a single top-level declaration.
func (p *Parser) ParseCommand() (ast.Command, error) {
	start := p.cur()
	switch p.cur().Type {
	case token.TYPE:
		return p.parseTypeCommand(start)
	case token.VAL:
		p.advance()
		name, err := p.expect(token.ID)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		ty, err := p.ParseType()
		if err != nil {
			return nil, err
		}
		ty = constructPolyForFreeVars(ty)
		return &ast.CmdTypeDeclare{Span: spanAt(start, p.cur()), Name: name.Lexeme, Ty: ty}, nil
	case token.EVAL:
		p.advance()
		term, err := p.ParseTerm()
		if err != nil {
			return nil, err
		}
		return &ast.CmdTermEval{Span: spanAt(start, p.cur()), Term: term}, nil
	case token.LET:
		p.advance()
		bind, err := p.parseBind()
		if err != nil {
			return nil, err
		}
		return &ast.CmdTermDef{Span: spanAt(start, p.cur()), Bind: bind}, nil
	}
	return nil, p.errUnexpected("a command ('type', 'val', 'eval' or 'let')")
}

// parseTypeCommand handles both TypeAlias and TypeDef, which share the
// `type 'v* name =` prefix and are disambiguated by what follows the
// '=': a (possibly '|'-led) list of Cons constructors means TypeDef,
// anything else means TypeAlias.
func (p *Parser) parseTypeCommand(start token.Token) (ast.Command, error) {
	p.advance() // 'type'
	var vars []string
	for p.cur().Type == token.TVAR {
		vars = append(vars, p.advance().Lexeme)
	}
	name, err := p.expect(token.ID)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}

	if p.cur().Type == token.VBAR || p.cur().Type == token.CONS {
		return p.parseTypeDefBody(start, name.Lexeme, vars)
	}

	def, err := p.ParseType()
	if err != nil {
		return nil, err
	}
	if len(vars) > 0 {
		def = &ast.TPoly{Span: def.GetSpan(), Vars: vars, Body: def}
	}
	return &ast.CmdTypeAlias{Span: spanAt(start, p.cur()), Name: name.Lexeme, Def: def}, nil
}

func (p *Parser) parseTypeDefBody(start token.Token, name string, vars []string) (ast.Command, error) {
	if p.cur().Type == token.VBAR {
		p.advance()
	}

	var consList []ast.ConsInfo
	for {
		consName, err := p.expect(token.CONS)
		if err != nil {
			return nil, err
		}
		var payload ast.Type
		if p.cur().Type == token.OF {
			p.advance()
			payload, err = p.ParseType()
			if err != nil {
				return nil, err
			}
		}

		varTypes := make([]ast.Type, len(vars))
		for i, v := range vars {
			varTypes[i] = &ast.TVar{Name: v}
		}
		full := ast.Type(&ast.TInd{Name: name, Params: varTypes})

		var scheme ast.Type
		if payload != nil {
			scheme = &ast.TArr{From: payload, To: full}
		} else {
			scheme = full
		}
		if len(vars) > 0 {
			scheme = &ast.TPoly{Vars: append([]string{}, vars...), Body: scheme}
		}
		consList = append(consList, ast.ConsInfo{Name: consName.Lexeme, Scheme: scheme})

		if p.cur().Type != token.VBAR {
			break
		}
		p.advance()
	}

	return &ast.CmdTypeDef{Span: spanAt(start, p.cur()), Name: name, ConsList: consList, Arity: len(vars)}, nil
}
