// Package normalize implements the two surface<->internal AST rewriters,
// each composed of two independent post-order passes. The traversal
// shape mirrors the reference implementation's Processor trait: a
// generic post-order walk with per-node-kind default methods that a
// pass overrides only where it has work to do.
//
// Go has no trait default methods, so the walk is built the way
// self-referential virtual dispatch is usually done in Go: Base holds a
// Self field pointing back at the concrete pass, and Base's default
// methods recurse through Self so an override on a child node is picked
// up even when the recursion itself happens inside Base.
package normalize

import "github.com/sufu-ml/bridge/internal/ast"

// Rewriter is a single post-order AST-rewriting pass.
type Rewriter interface {
	RewriteType(ast.Type) ast.Type
	RewritePattern(ast.Pattern) ast.Pattern
	RewriteTerm(ast.Term) ast.Term
	RewriteCommand(ast.Command) ast.Command
	RewriteBind(*ast.Bind) *ast.Bind
}

// Base provides the default (structure-preserving) traversal for every
// node kind. A concrete pass embeds Base, sets Self to itself, and
// overrides only the methods it needs; unoverridden calls fall through
// to these defaults, which still recurse through Self.
type Base struct {
	Self Rewriter
}

func (b *Base) RewriteType(t ast.Type) ast.Type {
	switch x := t.(type) {
	case *ast.TUnit, *ast.TBool, *ast.TInt, *ast.TVar:
		return t
	case *ast.TTuple:
		elems := make([]ast.Type, len(x.Elems))
		for i, e := range x.Elems {
			elems[i] = b.Self.RewriteType(e)
		}
		return &ast.TTuple{Span: x.Span, Elems: elems}
	case *ast.TArr:
		return &ast.TArr{Span: x.Span, From: b.Self.RewriteType(x.From), To: b.Self.RewriteType(x.To)}
	case *ast.TInd:
		params := make([]ast.Type, len(x.Params))
		for i, e := range x.Params {
			params[i] = b.Self.RewriteType(e)
		}
		return &ast.TInd{Span: x.Span, Name: x.Name, Params: params}
	case *ast.TPoly:
		return &ast.TPoly{Span: x.Span, Vars: x.Vars, Body: b.Self.RewriteType(x.Body)}
	}
	return t
}

func (b *Base) RewritePattern(p ast.Pattern) ast.Pattern {
	switch x := p.(type) {
	case *ast.PWildcard:
		return p
	case *ast.PVar:
		var inner ast.Pattern
		if x.Inner != nil {
			inner = b.Self.RewritePattern(x.Inner)
		}
		return &ast.PVar{Span: x.Span, Inner: inner, Name: x.Name}
	case *ast.PTuple:
		elems := make([]ast.Pattern, len(x.Elems))
		for i, e := range x.Elems {
			elems[i] = b.Self.RewritePattern(e)
		}
		return &ast.PTuple{Span: x.Span, Elems: elems}
	case *ast.PCons:
		var content ast.Pattern
		if x.Content != nil {
			content = b.Self.RewritePattern(x.Content)
		}
		return &ast.PCons{Span: x.Span, Name: x.Name, Content: content}
	}
	return p
}

func (b *Base) RewriteTerm(t ast.Term) ast.Term {
	switch x := t.(type) {
	case *ast.TmInt, *ast.TmBool, *ast.TmUnit, *ast.TmVar, *ast.TmNativeCons:
		return t
	case *ast.TmCons:
		return &ast.TmCons{Span: x.Span, Name: x.Name, Body: b.Self.RewriteTerm(x.Body)}
	case *ast.TmApp:
		return &ast.TmApp{Span: x.Span, Func: b.Self.RewriteTerm(x.Func), Param: b.Self.RewriteTerm(x.Param)}
	case *ast.TmFunc:
		return &ast.TmFunc{Span: x.Span, Params: x.Params, Body: b.Self.RewriteTerm(x.Body)}
	case *ast.TmPrimOp:
		params := make([]ast.Term, len(x.Params))
		for i, e := range x.Params {
			params[i] = b.Self.RewriteTerm(e)
		}
		return &ast.TmPrimOp{Span: x.Span, Op: x.Op, Params: params}
	case *ast.TmTuple:
		elems := make([]ast.Term, len(x.Elems))
		for i, e := range x.Elems {
			elems[i] = b.Self.RewriteTerm(e)
		}
		return &ast.TmTuple{Span: x.Span, Elems: elems}
	case *ast.TmIf:
		return &ast.TmIf{Span: x.Span, Cond: b.Self.RewriteTerm(x.Cond), Then: b.Self.RewriteTerm(x.Then), Else: b.Self.RewriteTerm(x.Else)}
	case *ast.TmMatch:
		cases := make([]ast.MatchCase, len(x.Cases))
		for i, c := range x.Cases {
			cases[i] = ast.MatchCase{Pattern: b.Self.RewritePattern(c.Pattern), Body: b.Self.RewriteTerm(c.Body)}
		}
		return &ast.TmMatch{Span: x.Span, Def: b.Self.RewriteTerm(x.Def), Cases: cases}
	case *ast.TmLet:
		return &ast.TmLet{Span: x.Span, Bind: b.Self.RewriteBind(x.Bind), Body: b.Self.RewriteTerm(x.Body)}
	}
	return t
}

func (b *Base) RewriteBind(bind *ast.Bind) *ast.Bind {
	switch body := bind.Body.(type) {
	case ast.NormalBind:
		return &ast.Bind{Span: bind.Span, Name: bind.Name, Params: bind.Params, IsRec: bind.IsRec,
			Body: ast.NormalBind{Term: b.Self.RewriteTerm(body.Term)}}
	case ast.FuncBind:
		cases := make([]ast.MatchCase, len(body.Cases))
		for i, c := range body.Cases {
			cases[i] = ast.MatchCase{Pattern: b.Self.RewritePattern(c.Pattern), Body: b.Self.RewriteTerm(c.Body)}
		}
		return &ast.Bind{Span: bind.Span, Name: bind.Name, Params: bind.Params, IsRec: bind.IsRec, Body: ast.FuncBind{Cases: cases}}
	}
	return bind
}

func (b *Base) RewriteCommand(c ast.Command) ast.Command {
	switch x := c.(type) {
	case *ast.CmdTypeAlias:
		return &ast.CmdTypeAlias{Span: x.Span, Name: x.Name, Def: b.Self.RewriteType(x.Def)}
	case *ast.CmdTypeDef:
		consList := make([]ast.ConsInfo, len(x.ConsList))
		for i, ci := range x.ConsList {
			consList[i] = ast.ConsInfo{Name: ci.Name, Scheme: b.Self.RewriteType(ci.Scheme)}
		}
		return &ast.CmdTypeDef{Span: x.Span, Name: x.Name, ConsList: consList, Arity: x.Arity}
	case *ast.CmdTypeDeclare:
		return &ast.CmdTypeDeclare{Span: x.Span, Name: x.Name, Ty: b.Self.RewriteType(x.Ty)}
	case *ast.CmdTermDef:
		return &ast.CmdTermDef{Span: x.Span, Bind: b.Self.RewriteBind(x.Bind)}
	case *ast.CmdTermEval:
		return &ast.CmdTermEval{Span: x.Span, Term: b.Self.RewriteTerm(x.Term)}
	case *ast.CmdConfig:
		return c
	}
	return c
}

// RewriteProgram drives a pass over every command in a program, in
// order, preserving each command's decorator list untouched.
func RewriteProgram(self Rewriter, prog ast.Program) ast.Program {
	out := make(ast.Program, len(prog))
	for i, dc := range prog {
		out[i] = ast.DecoratedCommand{Command: self.RewriteCommand(dc.Command), Decos: dc.Decos}
	}
	return out
}
