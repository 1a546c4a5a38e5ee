package jsonir

import (
	"testing"

	"github.com/sufu-ml/bridge/internal/ast"
)

func termEqual(t *testing.T, a, b ast.Term) bool {
	t.Helper()
	switch x := a.(type) {
	case *ast.TmInt:
		y, ok := b.(*ast.TmInt)
		return ok && x.Value == y.Value
	case *ast.TmBool:
		y, ok := b.(*ast.TmBool)
		return ok && x.Value == y.Value
	case *ast.TmUnit:
		_, ok := b.(*ast.TmUnit)
		return ok
	case *ast.TmVar:
		y, ok := b.(*ast.TmVar)
		return ok && x.Name == y.Name
	case *ast.TmCons:
		y, ok := b.(*ast.TmCons)
		return ok && x.Name == y.Name && termEqual(t, x.Body, y.Body)
	case *ast.TmApp:
		y, ok := b.(*ast.TmApp)
		return ok && termEqual(t, x.Func, y.Func) && termEqual(t, x.Param, y.Param)
	case *ast.TmFunc:
		y, ok := b.(*ast.TmFunc)
		if !ok || len(x.Params) != len(y.Params) {
			return false
		}
		for i := range x.Params {
			if x.Params[i] != y.Params[i] {
				return false
			}
		}
		return termEqual(t, x.Body, y.Body)
	case *ast.TmPrimOp:
		y, ok := b.(*ast.TmPrimOp)
		if !ok || x.Op != y.Op || len(x.Params) != len(y.Params) {
			return false
		}
		for i := range x.Params {
			if !termEqual(t, x.Params[i], y.Params[i]) {
				return false
			}
		}
		return true
	case *ast.TmTuple:
		y, ok := b.(*ast.TmTuple)
		if !ok || len(x.Elems) != len(y.Elems) {
			return false
		}
		for i := range x.Elems {
			if !termEqual(t, x.Elems[i], y.Elems[i]) {
				return false
			}
		}
		return true
	case *ast.TmIf:
		y, ok := b.(*ast.TmIf)
		return ok && termEqual(t, x.Cond, y.Cond) && termEqual(t, x.Then, y.Then) && termEqual(t, x.Else, y.Else)
	case *ast.TmLet:
		y, ok := b.(*ast.TmLet)
		if !ok || x.Bind.Name != y.Bind.Name || x.Bind.IsRec != y.Bind.IsRec {
			return false
		}
		xn, xok := x.Bind.Body.(ast.NormalBind)
		yn, yok := y.Bind.Body.(ast.NormalBind)
		if !xok || !yok || !termEqual(t, xn.Term, yn.Term) {
			return false
		}
		return termEqual(t, x.Body, y.Body)
	case *ast.TmMatch:
		y, ok := b.(*ast.TmMatch)
		if !ok || !termEqual(t, x.Def, y.Def) || len(x.Cases) != len(y.Cases) {
			return false
		}
		for i := range x.Cases {
			if !termEqual(t, x.Cases[i].Body, y.Cases[i].Body) {
				return false
			}
		}
		return true
	}
	t.Fatalf("termEqual: unhandled term type %T", a)
	return false
}

func roundTripTerm(t *testing.T, term ast.Term) ast.Term {
	t.Helper()
	n, err := encodeTerm(term)
	if err != nil {
		t.Fatalf("encodeTerm: %v", err)
	}
	out, err := decodeTerm(n, "<test>")
	if err != nil {
		t.Fatalf("decodeTerm: %v", err)
	}
	return out
}

func TestTermRoundTripPrimitives(t *testing.T) {
	cases := []ast.Term{
		&ast.TmInt{Value: 42},
		&ast.TmInt{Value: -7},
		&ast.TmBool{Value: true},
		&ast.TmBool{Value: false},
		&ast.TmUnit{},
		&ast.TmVar{Name: "x"},
	}
	for _, c := range cases {
		got := roundTripTerm(t, c)
		if !termEqual(t, c, got) {
			t.Errorf("round trip mismatch for %#v: got %#v", c, got)
		}
	}
}

func TestTermRoundTripCompound(t *testing.T) {
	term := &ast.TmLet{
		Bind: &ast.Bind{
			Name: "x",
			Body: ast.NormalBind{Term: &ast.TmPrimOp{Op: "+", Params: []ast.Term{&ast.TmInt{Value: 1}, &ast.TmInt{Value: 2}}}},
		},
		Body: &ast.TmIf{
			Cond: &ast.TmPrimOp{Op: "==", Params: []ast.Term{&ast.TmVar{Name: "x"}, &ast.TmInt{Value: 3}}},
			Then: &ast.TmCons{Name: "Nil", Body: &ast.TmUnit{}},
			Else: &ast.TmTuple{Elems: []ast.Term{&ast.TmVar{Name: "x"}, &ast.TmBool{Value: true}}},
		},
	}
	got := roundTripTerm(t, term)
	if !termEqual(t, term, got) {
		t.Errorf("round trip mismatch: got %#v", got)
	}
}

func TestTermRoundTripFuncAndMatch(t *testing.T) {
	term := &ast.TmFunc{
		Params: []string{"y"},
		Body: &ast.TmMatch{
			Def: &ast.TmVar{Name: "y"},
			Cases: []ast.MatchCase{
				{Pattern: &ast.PCons{Name: "Nil"}, Body: &ast.TmInt{Value: 0}},
				{
					Pattern: &ast.PCons{Name: "Cons", Content: &ast.PTuple{Elems: []ast.Pattern{&ast.PVar{Name: "h"}, &ast.PVar{Name: "tl"}}}},
					Body:    &ast.TmVar{Name: "h"},
				},
			},
		},
	}
	got := roundTripTerm(t, term)
	if !termEqual(t, term, got) {
		t.Errorf("round trip mismatch: got %#v", got)
	}
}

func TestEncodeTermRejectsNativeCons(t *testing.T) {
	if _, err := encodeTerm(&ast.TmNativeCons{Name: "Cons"}); err == nil {
		t.Fatal("expected an error encoding a surface-only bare constructor reference")
	}
}

func TestEncodeTermRejectsMultiParamFunc(t *testing.T) {
	fn := &ast.TmFunc{Params: []string{"a", "b"}, Body: &ast.TmVar{Name: "a"}}
	if _, err := encodeTerm(fn); err == nil {
		t.Fatal("expected an error encoding a multi-parameter internal Func")
	}
}

func TestTypeRoundTripPoly(t *testing.T) {
	// 'a -> 'a
	poly := &ast.TPoly{
		Vars: []string{"a"},
		Body: &ast.TArr{From: &ast.TVar{Name: "a"}, To: &ast.TVar{Name: "a"}},
	}
	n, err := encodeScheme(poly)
	if err != nil {
		t.Fatalf("encodeScheme: %v", err)
	}
	if n["type"] != "poly" {
		t.Fatalf("expected tag poly, got %v", n["type"])
	}
	got, err := decodeScheme(n, "<test>")
	if err != nil {
		t.Fatalf("decodeScheme: %v", err)
	}
	gotPoly, ok := got.(*ast.TPoly)
	if !ok {
		t.Fatalf("expected *ast.TPoly, got %T", got)
	}
	if len(gotPoly.Vars) != 1 || gotPoly.Vars[0] != "a" {
		t.Fatalf("unexpected vars: %v", gotPoly.Vars)
	}
	arr, ok := gotPoly.Body.(*ast.TArr)
	if !ok {
		t.Fatalf("expected *ast.TArr body, got %T", gotPoly.Body)
	}
	from, ok1 := arr.From.(*ast.TVar)
	to, ok2 := arr.To.(*ast.TVar)
	if !ok1 || !ok2 || from.Name != "a" || to.Name != "a" {
		t.Fatalf("poly var names did not round trip: %#v / %#v", arr.From, arr.To)
	}
}

func TestTypeEncodeVarOutsidePolyFails(t *testing.T) {
	if _, err := encodeType(&ast.TVar{Name: "a"}, nil); err == nil {
		t.Fatal("expected an error encoding a bare type variable with no enclosing Poly")
	}
}

func TestTypeDecodePolyIndexOutOfRangeFails(t *testing.T) {
	n := node{"type": "var", "index": float64(3)}
	if _, err := decodeType(n, []string{"a"}, "<test>"); err == nil {
		t.Fatal("expected a poly-index-out-of-range error")
	}
}

func TestEncodeProgramRejectsTypeAliasAndConfig(t *testing.T) {
	if _, err := EncodeProgram(ast.Program{{Command: &ast.CmdTypeAlias{Name: "foo"}}}); err == nil {
		t.Fatal("expected TypeAlias to be rejected as non-serializable")
	}
	if _, err := EncodeProgram(ast.Program{{Command: &ast.CmdConfig{Name: "foo"}}}); err == nil {
		t.Fatal("expected Config to be rejected as non-serializable")
	}
}

func TestProgramRoundTripTypeDefAndBind(t *testing.T) {
	prog := ast.Program{
		{Command: &ast.CmdTypeDef{
			Name:  "list",
			Arity: 1,
			ConsList: []ast.ConsInfo{
				{Name: "Nil", Scheme: &ast.TPoly{Vars: []string{"a"}, Body: &ast.TInd{Name: "list", Params: []ast.Type{&ast.TVar{Name: "a"}}}}},
				{Name: "Cons", Scheme: &ast.TPoly{Vars: []string{"a"}, Body: &ast.TArr{
					From: &ast.TTuple{Elems: []ast.Type{&ast.TVar{Name: "a"}, &ast.TInd{Name: "list", Params: []ast.Type{&ast.TVar{Name: "a"}}}}},
					To:   &ast.TInd{Name: "list", Params: []ast.Type{&ast.TVar{Name: "a"}}},
				}}},
			},
		}},
		{Command: &ast.CmdTermDef{Bind: &ast.Bind{
			Name: "id", IsRec: false,
			Body: ast.NormalBind{Term: &ast.TmFunc{Params: []string{"x"}, Body: &ast.TmVar{Name: "x"}}},
		}}},
	}
	data, err := EncodeProgram(prog)
	if err != nil {
		t.Fatalf("EncodeProgram: %v", err)
	}
	got, err := DecodeProgram(data)
	if err != nil {
		t.Fatalf("DecodeProgram: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(got))
	}
	td, ok := got[0].Command.(*ast.CmdTypeDef)
	if !ok || td.Name != "list" || td.Arity != 1 || len(td.ConsList) != 2 {
		t.Fatalf("type def did not round trip: %#v", got[0].Command)
	}
	if td.ConsList[0].Name != "Nil" || td.ConsList[1].Name != "Cons" {
		t.Fatalf("constructor names did not round trip: %#v", td.ConsList)
	}
	bind, ok := got[1].Command.(*ast.CmdTermDef)
	if !ok || bind.Bind.Name != "id" || bind.Bind.IsRec {
		t.Fatalf("bind did not round trip: %#v", got[1].Command)
	}
}

func TestDecodeCommandRejectsUnknownTag(t *testing.T) {
	if _, err := decodeCommand(node{"type": "bogus"}); err == nil {
		t.Fatal("expected an error decoding an unknown command tag")
	}
}

func TestDecodeProgramRejectsMalformedJSON(t *testing.T) {
	if _, err := DecodeProgram([]byte("not json")); err == nil {
		t.Fatal("expected a shape error for malformed top-level JSON")
	}
}
