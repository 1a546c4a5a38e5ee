package normalize

import (
	"testing"

	"github.com/sufu-ml/bridge/internal/ast"
)

func TestCurryUncurryFuncRoundTrip(t *testing.T) {
	body := &ast.TmVar{Name: "x"}
	curried := curryFunc(ast.Span{}, []string{"a", "b", "c"}, body)
	fn, ok := curried.(*ast.TmFunc)
	if !ok {
		t.Fatalf("expected *ast.TmFunc, got %T", curried)
	}
	params, got := uncurryFunc(fn)
	if len(params) != 3 || params[0] != "a" || params[1] != "b" || params[2] != "c" {
		t.Fatalf("unexpected params: %v", params)
	}
	if got != body {
		t.Fatalf("expected body to round trip unchanged")
	}
}

func TestCollectFreeVarsRespectsFuncBinder(t *testing.T) {
	// fun x -> x + y : free = {y}
	term := &ast.TmFunc{Params: []string{"x"}, Body: &ast.TmPrimOp{Op: "+", Params: []ast.Term{
		&ast.TmVar{Name: "x"}, &ast.TmVar{Name: "y"},
	}}}
	free := map[string]bool{}
	collectFreeVars(term, free)
	if free["x"] {
		t.Fatal("x should be bound by the enclosing fun, not free")
	}
	if !free["y"] {
		t.Fatal("y should be free")
	}
}

func TestCollectFreeVarsRespectsMatchPatternBinders(t *testing.T) {
	term := &ast.TmMatch{
		Def: &ast.TmVar{Name: "scrutinee"},
		Cases: []ast.MatchCase{
			{Pattern: &ast.PVar{Name: "h"}, Body: &ast.TmVar{Name: "h"}},
		},
	}
	free := map[string]bool{}
	collectFreeVars(term, free)
	if free["h"] {
		t.Fatal("h is bound by the match pattern, not free")
	}
	if !free["scrutinee"] {
		t.Fatal("scrutinee should be free")
	}
}

func TestFreshNameAvoidsCollision(t *testing.T) {
	cases := []ast.MatchCase{
		{Pattern: &ast.PWildcard{}, Body: &ast.TmVar{Name: "var0"}},
	}
	got := freshName(cases)
	if got != "var1" {
		t.Fatalf("got %q, want var1 since var0 is already free", got)
	}
}

func TestRemoveNativeCurriesMultiParamFunc(t *testing.T) {
	r := NewRemoveNative()
	term := &ast.TmFunc{Params: []string{"x", "y"}, Body: &ast.TmVar{Name: "x"}}
	got := r.RewriteTerm(term)
	outer, ok := got.(*ast.TmFunc)
	if !ok || len(outer.Params) != 1 || outer.Params[0] != "x" {
		t.Fatalf("expected curried outer func with single param x, got %#v", got)
	}
	inner, ok := outer.Body.(*ast.TmFunc)
	if !ok || len(inner.Params) != 1 || inner.Params[0] != "y" {
		t.Fatalf("expected curried inner func with single param y, got %#v", outer.Body)
	}
}

func TestRemoveNativeLowersFuncBindToMatch(t *testing.T) {
	r := NewRemoveNative()
	bind := &ast.Bind{
		Name: "head",
		Body: ast.FuncBind{Cases: []ast.MatchCase{
			{Pattern: &ast.PCons{Name: "Nil"}, Body: &ast.TmInt{Value: 0}},
			{Pattern: &ast.PVar{Name: "x"}, Body: &ast.TmVar{Name: "x"}},
		}},
	}
	got := r.RewriteBind(bind)
	nb, ok := got.Body.(ast.NormalBind)
	if !ok || len(got.Params) != 0 {
		t.Fatalf("expected a zero-param NormalBind, got %#v", got)
	}
	fn, ok := nb.Term.(*ast.TmFunc)
	if !ok || len(fn.Params) != 1 {
		t.Fatalf("expected a single-param func wrapping the match, got %#v", nb.Term)
	}
	match, ok := fn.Body.(*ast.TmMatch)
	if !ok {
		t.Fatalf("expected the func body to be a match, got %#v", fn.Body)
	}
	subject, ok := match.Def.(*ast.TmVar)
	if !ok || subject.Name != fn.Params[0] {
		t.Fatalf("match subject should be the fresh parameter: %#v vs %q", match.Def, fn.Params[0])
	}
}

func TestAddNativeUncurriesFuncChain(t *testing.T) {
	a := NewAddNative()
	inner := &ast.TmFunc{Params: []string{"y"}, Body: &ast.TmVar{Name: "x"}}
	outer := &ast.TmFunc{Params: []string{"x"}, Body: inner}
	got := a.RewriteTerm(outer)
	fn, ok := got.(*ast.TmFunc)
	if !ok || len(fn.Params) != 2 || fn.Params[0] != "x" || fn.Params[1] != "y" {
		t.Fatalf("expected uncurried func with params [x y], got %#v", got)
	}
}

func TestAddNativeReconstitutesFuncBind(t *testing.T) {
	r := NewRemoveNative()
	original := &ast.Bind{
		Name: "head",
		Body: ast.FuncBind{Cases: []ast.MatchCase{
			{Pattern: &ast.PCons{Name: "Nil"}, Body: &ast.TmInt{Value: 0}},
			{Pattern: &ast.PVar{Name: "x"}, Body: &ast.TmVar{Name: "x"}},
		}},
	}
	lowered := r.RewriteBind(original)

	a := NewAddNative()
	restored := a.RewriteBind(lowered)

	fb, ok := restored.Body.(ast.FuncBind)
	if !ok {
		t.Fatalf("expected a FuncBind to be reconstituted, got %#v", restored.Body)
	}
	if len(fb.Cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(fb.Cases))
	}
	if _, ok := fb.Cases[0].Pattern.(*ast.PCons); !ok {
		t.Fatalf("expected first case pattern to be Nil constructor, got %#v", fb.Cases[0].Pattern)
	}
}

func TestRemoveAddZeroArityRoundTrip(t *testing.T) {
	prog := ast.Program{
		{Command: &ast.CmdTypeDef{
			Name:  "opt",
			Arity: 1,
			ConsList: []ast.ConsInfo{
				{Name: "None", Scheme: &ast.TPoly{Vars: []string{"a"}, Body: &ast.TInd{Name: "opt", Params: []ast.Type{&ast.TVar{Name: "a"}}}}},
				{Name: "Some", Scheme: &ast.TPoly{Vars: []string{"a"}, Body: &ast.TArr{
					From: &ast.TVar{Name: "a"},
					To:   &ast.TInd{Name: "opt", Params: []ast.Type{&ast.TVar{Name: "a"}}},
				}}},
			},
		}},
		{Command: &ast.CmdTermEval{Term: &ast.TmNativeCons{Name: "None"}}},
	}

	zero := NewRemoveZeroArity()
	internal := RewriteProgram(zero, prog)

	td, ok := internal[0].Command.(*ast.CmdTypeDef)
	if !ok {
		t.Fatalf("expected a CmdTypeDef, got %#v", internal[0].Command)
	}
	noneScheme := td.ConsList[0].Scheme.(*ast.TPoly)
	arr, ok := noneScheme.Body.(*ast.TArr)
	if !ok {
		t.Fatalf("expected None to be rewritten to take a Unit argument, got %#v", noneScheme.Body)
	}
	if _, isUnit := arr.From.(*ast.TUnit); !isUnit {
		t.Fatalf("expected None's new argument type to be Unit, got %#v", arr.From)
	}

	evalCmd, ok := internal[1].Command.(*ast.CmdTermEval)
	if !ok {
		t.Fatalf("expected a CmdTermEval, got %#v", internal[1].Command)
	}
	cons, ok := evalCmd.Term.(*ast.TmCons)
	if !ok || cons.Name != "None" {
		t.Fatalf("expected None to become a TmCons with a Unit body, got %#v", evalCmd.Term)
	}
	if _, isUnit := cons.Body.(*ast.TmUnit); !isUnit {
		t.Fatalf("expected None's body to be Unit, got %#v", cons.Body)
	}

	add := NewAddZeroArity()
	surface := RewriteProgram(add, internal)

	td2 := surface[0].Command.(*ast.CmdTypeDef)
	noneScheme2 := td2.ConsList[0].Scheme.(*ast.TPoly)
	if _, isInd := noneScheme2.Body.(*ast.TInd); !isInd {
		t.Fatalf("expected None's scheme to be restored to a bare TInd, got %#v", noneScheme2.Body)
	}

	evalCmd2 := surface[1].Command.(*ast.CmdTermEval)
	if _, ok := evalCmd2.Term.(*ast.TmNativeCons); !ok {
		t.Fatalf("expected None to round trip back to a bare TmNativeCons, got %#v", evalCmd2.Term)
	}
}

func TestSurfaceToInternalToSurfaceRoundTrip(t *testing.T) {
	prog := ast.Program{
		{Command: &ast.CmdTermDef{Bind: &ast.Bind{
			Name:   "add",
			Params: []string{"x", "y"},
			Body:   ast.NormalBind{Term: &ast.TmPrimOp{Op: "+", Params: []ast.Term{&ast.TmVar{Name: "x"}, &ast.TmVar{Name: "y"}}}},
		}}},
	}
	internal := SurfaceToInternal(prog)
	cmd, ok := internal[0].Command.(*ast.CmdTermDef)
	if !ok || len(cmd.Bind.Params) != 0 {
		t.Fatalf("expected internal form to have zero Bind params, got %#v", internal[0].Command)
	}
	fn, ok := cmd.Bind.Body.(ast.NormalBind).Term.(*ast.TmFunc)
	if !ok || len(fn.Params) != 1 {
		t.Fatalf("expected a single-param curried func, got %#v", cmd.Bind.Body)
	}

	surface := InternalToSurface(internal)
	cmd2, ok := surface[0].Command.(*ast.CmdTermDef)
	if !ok {
		t.Fatalf("expected a CmdTermDef, got %#v", surface[0].Command)
	}
	if len(cmd2.Bind.Params) != 2 || cmd2.Bind.Params[0] != "x" || cmd2.Bind.Params[1] != "y" {
		t.Fatalf("expected params [x y] to be restored, got %#v", cmd2.Bind.Params)
	}
}
