package prettyprint

import (
	"strings"
	"testing"

	"github.com/sufu-ml/bridge/internal/ast"
)

func num(v int) ast.Term { return &ast.TmInt{Value: v} }

func op(o string, args ...ast.Term) ast.Term {
	return &ast.TmPrimOp{Op: o, Params: args}
}

func TestPrintTermPrecedenceNoParensForTighterRightOperand(t *testing.T) {
	// 1 + 2 * 3, '*' binds tighter so the right side never needs parens,
	// and since it's already the natural shape no parens appear at all.
	term := op("+", num(1), op("*", num(2), num(3)))
	got := PrintTerm(term)
	if got != "1 + 2 * 3" {
		t.Fatalf("got %q", got)
	}
}

func TestPrintTermPrecedenceParensWhenNeeded(t *testing.T) {
	// (1 + 2) * 3 -- '+' is weaker than '*', so the left operand needs parens.
	term := op("*", op("+", num(1), num(2)), num(3))
	got := PrintTerm(term)
	if got != "(1 + 2) * 3" {
		t.Fatalf("got %q", got)
	}
}

func TestPrintTermRightOperandParensOnEqualPrecedence(t *testing.T) {
	// 1 - (2 - 3): right operand of a same-precedence left-assoc op needs parens.
	term := op("-", num(1), op("-", num(2), num(3)))
	got := PrintTerm(term)
	if got != "1 - (2 - 3)" {
		t.Fatalf("got %q", got)
	}
}

func TestPrintTermUnaryMinus(t *testing.T) {
	term := op("-", num(5))
	got := PrintTerm(term)
	if got != "-5" {
		t.Fatalf("got %q", got)
	}
}

func TestPrintTermApplicationAtomicArgsNoParens(t *testing.T) {
	term := &ast.TmApp{Func: &ast.TmVar{Name: "f"}, Param: &ast.TmVar{Name: "x"}}
	got := PrintTerm(term)
	if got != "f x" {
		t.Fatalf("got %q", got)
	}
}

func TestPrintTermApplicationCompoundArgParens(t *testing.T) {
	term := &ast.TmApp{
		Func: &ast.TmVar{Name: "f"},
		Param: &ast.TmIf{
			Cond: &ast.TmBool{Value: true},
			Then: num(1),
			Else: num(2),
		},
	}
	got := PrintTerm(term)
	if !strings.HasPrefix(got, "f (if ") {
		t.Fatalf("expected compound argument to be parenthesized, got %q", got)
	}
}

func TestPrintTermUnitConstructor(t *testing.T) {
	term := &ast.TmCons{Name: "Nil", Body: &ast.TmUnit{}}
	got := PrintTerm(term)
	if got != "Nil" {
		t.Fatalf("got %q, want bare constructor name for unit payload", got)
	}
}

func TestPrintTermConstructorWithPayload(t *testing.T) {
	term := &ast.TmCons{Name: "Some", Body: num(1)}
	got := PrintTerm(term)
	if got != "Some 1" {
		t.Fatalf("got %q", got)
	}
}

func TestPrintTermFunc(t *testing.T) {
	term := &ast.TmFunc{Params: []string{"x", "y"}, Body: op("+", &ast.TmVar{Name: "x"}, &ast.TmVar{Name: "y"})}
	got := PrintTerm(term)
	if got != "fun x y -> x + y" {
		t.Fatalf("got %q", got)
	}
}

func TestPrintTermLetChainFlattensNestedLets(t *testing.T) {
	term := &ast.TmLet{
		Bind: &ast.Bind{Name: "x", Body: ast.NormalBind{Term: num(1)}},
		Body: &ast.TmLet{
			Bind: &ast.Bind{Name: "y", Body: ast.NormalBind{Term: num(2)}},
			Body: op("+", &ast.TmVar{Name: "x"}, &ast.TmVar{Name: "y"}),
		},
	}
	got := PrintTerm(term)
	want := "let x = 1 in\nlet y = 2 in\nx + y"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPrintTermMatch(t *testing.T) {
	term := &ast.TmMatch{
		Def: &ast.TmVar{Name: "xs"},
		Cases: []ast.MatchCase{
			{Pattern: &ast.PCons{Name: "Nil"}, Body: num(0)},
			{
				Pattern: &ast.PCons{Name: "Cons", Content: &ast.PTuple{Elems: []ast.Pattern{&ast.PVar{Name: "h"}, &ast.PVar{Name: "t"}}}},
				Body:    &ast.TmVar{Name: "h"},
			},
		},
	}
	got := PrintTerm(term)
	if !strings.Contains(got, "match xs with") {
		t.Fatalf("missing match header: %q", got)
	}
	if !strings.Contains(got, "| Nil -> 0") {
		t.Fatalf("missing Nil arm: %q", got)
	}
	if !strings.Contains(got, "| Cons (h, t) -> h") {
		t.Fatalf("missing Cons arm: %q", got)
	}
}

func TestPrintTermMatchWrapsNonFinalCompoundArmInParens(t *testing.T) {
	term := &ast.TmMatch{
		Def: &ast.TmVar{Name: "xs"},
		Cases: []ast.MatchCase{
			{
				Pattern: &ast.PWildcard{},
				Body:    &ast.TmIf{Cond: &ast.TmBool{Value: true}, Then: num(1), Else: num(2)},
			},
			{Pattern: &ast.PVar{Name: "y"}, Body: &ast.TmVar{Name: "y"}},
		},
	}
	got := PrintTerm(term)
	if !strings.Contains(got, "| _ -> (if ") {
		t.Fatalf("expected non-final compound arm to be parenthesized: %q", got)
	}
}
