package ast

// Term is the sum type of expressions.
type Term interface {
	GetSpan() Span
	termNode()
}

type TmInt struct {
	Span  Span
	Value int
}
type TmBool struct {
	Span  Span
	Value bool
}
type TmUnit struct{ Span Span }

type TmVar struct {
	Span Span
	Name string
}

// TmNativeCons is a surface-only sentinel: a constructor name referenced
// as a first-class value, before the normalizer decides whether it is
// an eta-expansion target or an application head.
type TmNativeCons struct {
	Span Span
	Name string
}

// TmCons is internal-only: a unary constructor application.
type TmCons struct {
	Span Span
	Name string
	Body Term
}

type TmApp struct {
	Span  Span
	Func  Term
	Param Term
}

// TmFunc is multi-parameter in surface form, single-parameter in
// internal form.
type TmFunc struct {
	Span   Span
	Params []string
	Body   Term
}

// TmPrimOp is a unary or binary primitive operator application.
type TmPrimOp struct {
	Span   Span
	Op     string
	Params []Term
}

type TmTuple struct {
	Span  Span
	Elems []Term
}

type TmIf struct {
	Span Span
	Cond Term
	Then Term
	Else Term
}

type MatchCase struct {
	Pattern Pattern
	Body    Term
}

type TmMatch struct {
	Span  Span
	Def   Term
	Cases []MatchCase
}

type TmLet struct {
	Span Span
	Bind *Bind
	Body Term
}

func (t *TmInt) GetSpan() Span        { return t.Span }
func (t *TmBool) GetSpan() Span       { return t.Span }
func (t *TmUnit) GetSpan() Span       { return t.Span }
func (t *TmVar) GetSpan() Span        { return t.Span }
func (t *TmNativeCons) GetSpan() Span { return t.Span }
func (t *TmCons) GetSpan() Span       { return t.Span }
func (t *TmApp) GetSpan() Span        { return t.Span }
func (t *TmFunc) GetSpan() Span       { return t.Span }
func (t *TmPrimOp) GetSpan() Span     { return t.Span }
func (t *TmTuple) GetSpan() Span      { return t.Span }
func (t *TmIf) GetSpan() Span         { return t.Span }
func (t *TmMatch) GetSpan() Span      { return t.Span }
func (t *TmLet) GetSpan() Span        { return t.Span }

func (t *TmInt) termNode()        {}
func (t *TmBool) termNode()       {}
func (t *TmUnit) termNode()       {}
func (t *TmVar) termNode()        {}
func (t *TmNativeCons) termNode() {}
func (t *TmCons) termNode()       {}
func (t *TmApp) termNode()        {}
func (t *TmFunc) termNode()       {}
func (t *TmPrimOp) termNode()     {}
func (t *TmTuple) termNode()      {}
func (t *TmIf) termNode()         {}
func (t *TmMatch) termNode()      {}
func (t *TmLet) termNode()        {}

// BindTerm is the right-hand side of a Bind: either a plain term or a
// case-analysis to be lowered into a match (surface only).
type BindTerm interface {
	bindTermNode()
}

type NormalBind struct{ Term Term }
type FuncBind struct{ Cases []MatchCase }

func (NormalBind) bindTermNode() {}
func (FuncBind) bindTermNode()   {}

// Bind is a let-binding's name, parameter list, recursion flag and body.
type Bind struct {
	Span   Span
	Name   string
	Params []string
	IsRec  bool
	Body   BindTerm
}

// CloneWithBody returns a shallow copy of b with a new Body, mirroring
// clone_with_new_bind from the reference implementation.
func (b *Bind) CloneWithBody(body BindTerm) *Bind {
	nb := *b
	nb.Body = body
	return &nb
}

// TermEqual compares two terms structurally, ignoring spans.
func TermEqual(a, b Term) bool {
	switch x := a.(type) {
	case *TmInt:
		y, ok := b.(*TmInt)
		return ok && x.Value == y.Value
	case *TmBool:
		y, ok := b.(*TmBool)
		return ok && x.Value == y.Value
	case *TmUnit:
		_, ok := b.(*TmUnit)
		return ok
	case *TmVar:
		y, ok := b.(*TmVar)
		return ok && x.Name == y.Name
	case *TmNativeCons:
		y, ok := b.(*TmNativeCons)
		return ok && x.Name == y.Name
	case *TmCons:
		y, ok := b.(*TmCons)
		return ok && x.Name == y.Name && TermEqual(x.Body, y.Body)
	case *TmApp:
		y, ok := b.(*TmApp)
		return ok && TermEqual(x.Func, y.Func) && TermEqual(x.Param, y.Param)
	case *TmFunc:
		y, ok := b.(*TmFunc)
		if !ok || len(x.Params) != len(y.Params) {
			return false
		}
		for i := range x.Params {
			if x.Params[i] != y.Params[i] {
				return false
			}
		}
		return TermEqual(x.Body, y.Body)
	case *TmPrimOp:
		y, ok := b.(*TmPrimOp)
		if !ok || x.Op != y.Op || len(x.Params) != len(y.Params) {
			return false
		}
		for i := range x.Params {
			if !TermEqual(x.Params[i], y.Params[i]) {
				return false
			}
		}
		return true
	case *TmTuple:
		y, ok := b.(*TmTuple)
		if !ok || len(x.Elems) != len(y.Elems) {
			return false
		}
		for i := range x.Elems {
			if !TermEqual(x.Elems[i], y.Elems[i]) {
				return false
			}
		}
		return true
	case *TmIf:
		y, ok := b.(*TmIf)
		return ok && TermEqual(x.Cond, y.Cond) && TermEqual(x.Then, y.Then) && TermEqual(x.Else, y.Else)
	case *TmMatch:
		y, ok := b.(*TmMatch)
		if !ok || !TermEqual(x.Def, y.Def) || len(x.Cases) != len(y.Cases) {
			return false
		}
		for i := range x.Cases {
			if !TermEqual(x.Cases[i].Body, y.Cases[i].Body) {
				return false
			}
		}
		return true
	case *TmLet:
		y, ok := b.(*TmLet)
		return ok && x.Bind.Name == y.Bind.Name && TermEqual(x.Body, y.Body)
	}
	return false
}
