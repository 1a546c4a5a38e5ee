package normalize

import (
	"fmt"

	"github.com/sufu-ml/bridge/internal/ast"
)

// curryFunc builds a right-nested chain of single-parameter TmFunc nodes
// from a multi-parameter surface TmFunc, all sharing the original span.
func curryFunc(span ast.Span, params []string, body ast.Term) ast.Term {
	result := body
	for i := len(params) - 1; i >= 0; i-- {
		result = &ast.TmFunc{Span: span, Params: []string{params[i]}, Body: result}
	}
	return result
}

// uncurryFunc collapses a chain of nested single-parameter TmFunc nodes
// back into one parameter list plus a non-Func body.
func uncurryFunc(fn *ast.TmFunc) ([]string, ast.Term) {
	params := append([]string{}, fn.Params...)
	body := fn.Body
	for {
		next, ok := body.(*ast.TmFunc)
		if !ok {
			break
		}
		params = append(params, next.Params...)
		body = next.Body
	}
	return params, body
}

func cloneBoundSet(s map[string]bool) map[string]bool {
	out := make(map[string]bool, len(s)+1)
	for k, v := range s {
		out[k] = v
	}
	return out
}

// collectFreeVars accumulates the free variables of t into free, honoring
// the binding forms TmFunc, TmMatch case patterns and TmLet.
func collectFreeVars(t ast.Term, free map[string]bool) {
	collectFreeVarsBound(t, map[string]bool{}, free)
}

func collectFreeVarsBound(t ast.Term, bound map[string]bool, free map[string]bool) {
	switch x := t.(type) {
	case *ast.TmVar:
		if !bound[x.Name] {
			free[x.Name] = true
		}
	case *ast.TmCons:
		collectFreeVarsBound(x.Body, bound, free)
	case *ast.TmApp:
		collectFreeVarsBound(x.Func, bound, free)
		collectFreeVarsBound(x.Param, bound, free)
	case *ast.TmFunc:
		inner := cloneBoundSet(bound)
		for _, p := range x.Params {
			inner[p] = true
		}
		collectFreeVarsBound(x.Body, inner, free)
	case *ast.TmPrimOp:
		for _, e := range x.Params {
			collectFreeVarsBound(e, bound, free)
		}
	case *ast.TmTuple:
		for _, e := range x.Elems {
			collectFreeVarsBound(e, bound, free)
		}
	case *ast.TmIf:
		collectFreeVarsBound(x.Cond, bound, free)
		collectFreeVarsBound(x.Then, bound, free)
		collectFreeVarsBound(x.Else, bound, free)
	case *ast.TmMatch:
		collectFreeVarsBound(x.Def, bound, free)
		for _, c := range x.Cases {
			inner := cloneBoundSet(bound)
			for _, v := range ast.PatternVars(c.Pattern) {
				inner[v] = true
			}
			collectFreeVarsBound(c.Body, inner, free)
		}
	case *ast.TmLet:
		innerBody := cloneBoundSet(bound)
		innerBody[x.Bind.Name] = true
		innerRHS := cloneBoundSet(bound)
		for _, p := range x.Bind.Params {
			innerRHS[p] = true
		}
		if x.Bind.IsRec {
			innerRHS[x.Bind.Name] = true
		}
		switch b := x.Bind.Body.(type) {
		case ast.NormalBind:
			collectFreeVarsBound(b.Term, innerRHS, free)
		case ast.FuncBind:
			for _, c := range b.Cases {
				innerCase := cloneBoundSet(innerRHS)
				for _, v := range ast.PatternVars(c.Pattern) {
					innerCase[v] = true
				}
				collectFreeVarsBound(c.Body, innerCase, free)
			}
		}
		collectFreeVarsBound(x.Body, innerBody, free)
	}
}

// freshName returns the first name in the var0, var1, ... sequence that is
// not free in any of cases' bodies.
func freshName(cases []ast.MatchCase) string {
	free := map[string]bool{}
	for _, c := range cases {
		collectFreeVars(c.Body, free)
	}
	for i := 0; ; i++ {
		name := fmt.Sprintf("var%d", i)
		if !free[name] {
			return name
		}
	}
}

// RemoveNative is the second of the two surface->internal passes: it
// curries every multi-parameter TmFunc and Bind into single-parameter
// TmFunc chains, eta-expands each bare constructor reference into
// `fun tmp -> Cons tmp`, and lowers case-style (FuncBind) bindings into
// an explicit match over a freshly named parameter.
type RemoveNative struct {
	Base
}

func NewRemoveNative() *RemoveNative {
	r := &RemoveNative{}
	r.Self = r
	return r
}

func (r *RemoveNative) RewriteTerm(t ast.Term) ast.Term {
	if nc, ok := t.(*ast.TmNativeCons); ok {
		body := &ast.TmCons{Span: nc.Span, Name: nc.Name, Body: &ast.TmVar{Span: nc.Span, Name: "tmp"}}
		return &ast.TmFunc{Span: nc.Span, Params: []string{"tmp"}, Body: body}
	}
	fn, ok := t.(*ast.TmFunc)
	if !ok {
		return r.Base.RewriteTerm(t)
	}
	body := r.Self.RewriteTerm(fn.Body)
	return curryFunc(fn.Span, fn.Params, body)
}

func (r *RemoveNative) RewriteBind(bind *ast.Bind) *ast.Bind {
	switch body := bind.Body.(type) {
	case ast.FuncBind:
		cases := make([]ast.MatchCase, len(body.Cases))
		for i, c := range body.Cases {
			cases[i] = ast.MatchCase{Pattern: r.Self.RewritePattern(c.Pattern), Body: r.Self.RewriteTerm(c.Body)}
		}
		name := freshName(cases)
		matchTerm := ast.Term(&ast.TmMatch{Span: bind.Span, Def: &ast.TmVar{Span: bind.Span, Name: name}, Cases: cases})
		allParams := append(append([]string{}, bind.Params...), name)
		term := curryFunc(bind.Span, allParams, matchTerm)
		return &ast.Bind{Span: bind.Span, Name: bind.Name, Params: nil, IsRec: bind.IsRec, Body: ast.NormalBind{Term: term}}
	case ast.NormalBind:
		term := r.Self.RewriteTerm(body.Term)
		if len(bind.Params) > 0 {
			term = curryFunc(bind.Span, bind.Params, term)
		}
		return &ast.Bind{Span: bind.Span, Name: bind.Name, Params: nil, IsRec: bind.IsRec, Body: ast.NormalBind{Term: term}}
	}
	return bind
}

// AddNative is the first of the two internal->surface passes: the
// inverse of RemoveNative. It uncurries single-parameter TmFunc chains
// back into multi-parameter surface functions, turns a function whose
// body is a constructor applied to its last parameter back into a bare
// constructor reference, and recognizes the fresh-variable-plus-match
// shape produced by FuncBind lowering so it can be reconstituted as
// case-style sugar.
type AddNative struct {
	Base
}

func NewAddNative() *AddNative {
	a := &AddNative{}
	a.Self = a
	return a
}

func (a *AddNative) RewriteTerm(t ast.Term) ast.Term {
	fn, ok := t.(*ast.TmFunc)
	if !ok {
		return a.Base.RewriteTerm(t)
	}
	params, body := uncurryFunc(fn)
	if c, ok := body.(*ast.TmCons); ok && len(params) > 0 {
		if v, ok := c.Body.(*ast.TmVar); ok && v.Name == params[len(params)-1] {
			nc := &ast.TmNativeCons{Span: c.Span, Name: c.Name}
			if len(params) == 1 {
				return nc
			}
			return &ast.TmFunc{Span: fn.Span, Params: params[:len(params)-1], Body: nc}
		}
	}
	return &ast.TmFunc{Span: fn.Span, Params: params, Body: a.Self.RewriteTerm(body)}
}

func (a *AddNative) RewriteBind(bind *ast.Bind) *ast.Bind {
	nb, ok := bind.Body.(ast.NormalBind)
	if !ok {
		return a.Base.RewriteBind(bind)
	}
	fn, isFunc := nb.Term.(*ast.TmFunc)
	if !isFunc {
		return &ast.Bind{Span: bind.Span, Name: bind.Name, Params: bind.Params, IsRec: bind.IsRec,
			Body: ast.NormalBind{Term: a.Self.RewriteTerm(nb.Term)}}
	}

	params, body := uncurryFunc(fn)
	if match, ok := body.(*ast.TmMatch); ok && len(params) > 0 {
		subject := params[len(params)-1]
		if v, ok := match.Def.(*ast.TmVar); ok && v.Name == subject {
			outer := params[:len(params)-1]
			cases := make([]ast.MatchCase, len(match.Cases))
			subjectUsed := false
			for i, c := range match.Cases {
				free := map[string]bool{}
				collectFreeVars(c.Body, free)
				if free[subject] {
					subjectUsed = true
				}
				cases[i] = ast.MatchCase{Pattern: a.Self.RewritePattern(c.Pattern), Body: a.Self.RewriteTerm(c.Body)}
			}
			if !subjectUsed {
				return &ast.Bind{Span: bind.Span, Name: bind.Name, Params: outer, IsRec: bind.IsRec, Body: ast.FuncBind{Cases: cases}}
			}
		}
	}

	return &ast.Bind{Span: bind.Span, Name: bind.Name, Params: params, IsRec: bind.IsRec,
		Body: ast.NormalBind{Term: a.Self.RewriteTerm(body)}}
}
