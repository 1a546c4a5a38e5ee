package parser

import (
	"github.com/sufu-ml/bridge/internal/ast"
	"github.com/sufu-ml/bridge/internal/token"
)

// ParseProgram parses a sequence of zero-or-more @decorated commands
// until the token stream is exhausted.
func ParseProgram(toks []token.Token) (ast.Program, error) {
	p := New(toks)
	var prog ast.Program
	for !p.atEnd() {
		var decos []string
		for p.cur().Type == token.AT {
			p.advance()
			name, err := p.decoName()
			if err != nil {
				return nil, err
			}
			decos = append(decos, name)
		}
		cmd, err := p.ParseCommand()
		if err != nil {
			return nil, err
		}
		prog = append(prog, ast.DecoratedCommand{Command: cmd, Decos: decos})
	}
	return prog, nil
}

func (p *Parser) decoName() (string, error) {
	switch p.cur().Type {
	case token.ID, token.CONS:
		return p.advance().Lexeme, nil
	}
	return "", p.errUnexpected("a decorator name")
}
