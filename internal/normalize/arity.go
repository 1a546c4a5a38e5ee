package normalize

import (
	"fmt"

	"github.com/sufu-ml/bridge/internal/ast"
)

func unfoldConsType(ty ast.Type) ([]string, ast.Type) {
	if poly, ok := ty.(*ast.TPoly); ok {
		return poly.Vars, poly.Body
	}
	return nil, ty
}

func buildConsType(vars []string, body ast.Type) ast.Type {
	if len(vars) == 0 {
		return body
	}
	return &ast.TPoly{Span: body.GetSpan(), Vars: vars, Body: body}
}

// RemoveZeroArity rewrites every zero-arity (nullary) data constructor
// into a unary one taking Unit, the first of the two surface->internal
// passes.
type RemoveZeroArity struct {
	Base
	ctx *ast.Context[bool]
}

func NewRemoveZeroArity() *RemoveZeroArity {
	r := &RemoveZeroArity{ctx: ast.NewContext[bool]()}
	r.Self = r
	return r
}

func (r *RemoveZeroArity) RewritePattern(p ast.Pattern) ast.Pattern {
	cons, ok := p.(*ast.PCons)
	if !ok {
		return r.Base.RewritePattern(p)
	}
	nullary, found := r.ctx.Lookup(cons.Name)
	if !found {
		panic(fmt.Sprintf("unknown constructor in arity context: %s", cons.Name))
	}
	if cons.Content != nil {
		if nullary {
			panic(fmt.Sprintf("nullary constructor %s encountered with a pattern argument", cons.Name))
		}
		return &ast.PCons{Span: cons.Span, Name: cons.Name, Content: r.Self.RewritePattern(cons.Content)}
	}
	if !nullary {
		panic(fmt.Sprintf("non-nullary constructor %s encountered without a pattern argument", cons.Name))
	}
	return &ast.PCons{Span: cons.Span, Name: cons.Name, Content: &ast.PWildcard{Span: cons.Span}}
}

func (r *RemoveZeroArity) RewriteTerm(t ast.Term) ast.Term {
	switch x := t.(type) {
	case *ast.TmApp:
		if nc, ok := x.Func.(*ast.TmNativeCons); ok {
			nullary, found := r.ctx.Lookup(nc.Name)
			if found && !nullary {
				return &ast.TmCons{Span: x.Span, Name: nc.Name, Body: r.Self.RewriteTerm(x.Param)}
			}
		}
		return r.Base.RewriteTerm(t)
	case *ast.TmNativeCons:
		nullary, found := r.ctx.Lookup(x.Name)
		if found && nullary {
			return &ast.TmCons{Span: x.Span, Name: x.Name, Body: &ast.TmUnit{Span: x.Span}}
		}
		return r.Base.RewriteTerm(t)
	}
	return r.Base.RewriteTerm(t)
}

func (r *RemoveZeroArity) RewriteCommand(c ast.Command) ast.Command {
	def, ok := c.(*ast.CmdTypeDef)
	if !ok {
		return r.Base.RewriteCommand(c)
	}
	newCons := make([]ast.ConsInfo, len(def.ConsList))
	for i, ci := range def.ConsList {
		vars, body := unfoldConsType(ci.Scheme)
		if _, isArr := body.(*ast.TArr); isArr {
			r.ctx.Bind(ci.Name, false)
			newCons[i] = ci
			continue
		}
		r.ctx.Bind(ci.Name, true)
		newBody := &ast.TArr{Span: body.GetSpan(), From: &ast.TUnit{Span: body.GetSpan()}, To: body}
		newCons[i] = ast.ConsInfo{Name: ci.Name, Scheme: buildConsType(vars, newBody)}
	}
	return &ast.CmdTypeDef{Span: def.Span, Name: def.Name, ConsList: newCons, Arity: def.Arity}
}

// AddZeroArity is the inverse of RemoveZeroArity: the second of the two
// internal->surface passes.
type AddZeroArity struct {
	Base
	ctx *ast.Context[bool]
}

func NewAddZeroArity() *AddZeroArity {
	a := &AddZeroArity{ctx: ast.NewContext[bool]()}
	a.Self = a
	return a
}

func (a *AddZeroArity) RewriteTerm(t ast.Term) ast.Term {
	switch x := t.(type) {
	case *ast.TmApp:
		if nc, ok := x.Func.(*ast.TmNativeCons); ok {
			nullary, found := a.ctx.Lookup(nc.Name)
			if found && nullary {
				if _, isUnit := x.Param.(*ast.TmUnit); !isUnit {
					panic(fmt.Sprintf("nullary constructor %s applied to a non-Unit argument", nc.Name))
				}
				return &ast.TmNativeCons{Span: x.Span, Name: nc.Name}
			}
		}
		return a.Base.RewriteTerm(t)
	case *ast.TmCons:
		nullary, found := a.ctx.Lookup(x.Name)
		if found && nullary {
			if _, isUnit := x.Body.(*ast.TmUnit); !isUnit {
				panic(fmt.Sprintf("nullary constructor %s has a non-Unit body", x.Name))
			}
			return &ast.TmNativeCons{Span: x.Span, Name: x.Name}
		}
		return a.Base.RewriteTerm(t)
	case *ast.TmNativeCons:
		nullary, found := a.ctx.Lookup(x.Name)
		if found && nullary {
			// eta-introduction artifact: a bare nullary constructor is
			// wrapped in a dummy one-parameter function.
			return &ast.TmFunc{Span: x.Span, Params: []string{"tmp"}, Body: t}
		}
		return t
	}
	return a.Base.RewriteTerm(t)
}

func (a *AddZeroArity) RewritePattern(p ast.Pattern) ast.Pattern {
	cons, ok := p.(*ast.PCons)
	if !ok {
		return a.Base.RewritePattern(p)
	}
	nullary, found := a.ctx.Lookup(cons.Name)
	if found && nullary {
		return &ast.PCons{Span: cons.Span, Name: cons.Name, Content: nil}
	}
	return a.Base.RewritePattern(p)
}

func (a *AddZeroArity) RewriteCommand(c ast.Command) ast.Command {
	def, ok := c.(*ast.CmdTypeDef)
	if !ok {
		return a.Base.RewriteCommand(c)
	}
	newCons := make([]ast.ConsInfo, len(def.ConsList))
	for i, ci := range def.ConsList {
		vars, content := unfoldConsType(ci.Scheme)
		arr, ok := content.(*ast.TArr)
		if !ok {
			panic(fmt.Sprintf("constructor %s scheme is not arrowed in internal form", ci.Name))
		}
		if _, isUnit := arr.From.(*ast.TUnit); isUnit {
			a.ctx.Bind(ci.Name, true)
			newCons[i] = ast.ConsInfo{Name: ci.Name, Scheme: buildConsType(vars, arr.To)}
		} else {
			a.ctx.Bind(ci.Name, false)
			newCons[i] = ci
		}
	}
	return &ast.CmdTypeDef{Span: def.Span, Name: def.Name, ConsList: newCons, Arity: def.Arity}
}
