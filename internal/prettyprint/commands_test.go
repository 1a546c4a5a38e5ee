package prettyprint

import (
	"strings"
	"testing"

	"github.com/sufu-ml/bridge/internal/ast"
)

func TestPrintCommandTypeDeclare(t *testing.T) {
	cmd := &ast.CmdTypeDeclare{
		Name: "id",
		Ty:   &ast.TPoly{Vars: []string{"a"}, Body: &ast.TArr{From: &ast.TVar{Name: "a"}, To: &ast.TVar{Name: "a"}}},
	}
	got := Render(printCommand(cmd), 50)
	if got != "val id : a -> a" {
		t.Fatalf("got %q", got)
	}
}

func TestPrintCommandTypeDef(t *testing.T) {
	cmd := &ast.CmdTypeDef{
		Name:  "list",
		Arity: 1,
		ConsList: []ast.ConsInfo{
			{Name: "Nil", Scheme: &ast.TPoly{Vars: []string{"a"}, Body: &ast.TInd{Name: "list", Params: []ast.Type{&ast.TVar{Name: "a"}}}}},
			{Name: "Cons", Scheme: &ast.TPoly{Vars: []string{"a"}, Body: &ast.TArr{
				From: &ast.TTuple{Elems: []ast.Type{&ast.TVar{Name: "a"}, &ast.TInd{Name: "list", Params: []ast.Type{&ast.TVar{Name: "a"}}}}},
				To:   &ast.TInd{Name: "list", Params: []ast.Type{&ast.TVar{Name: "a"}}},
			}}},
		},
	}
	got := Render(printCommand(cmd), 50)
	if !strings.HasPrefix(got, "type a list =") {
		t.Fatalf("missing type header: %q", got)
	}
	if !strings.Contains(got, "| Nil") {
		t.Fatalf("missing Nil constructor: %q", got)
	}
	if !strings.Contains(got, "| Cons of") {
		t.Fatalf("missing Cons constructor: %q", got)
	}
}

func TestPrintCommandTermEval(t *testing.T) {
	cmd := &ast.CmdTermEval{Term: num(1)}
	got := Render(printCommand(cmd), 50)
	if got != "eval 1" {
		t.Fatalf("got %q", got)
	}
}

func TestPrintProgramBlankLineAfterTermDef(t *testing.T) {
	prog := ast.Program{
		{Command: &ast.CmdTermDef{Bind: &ast.Bind{Name: "x", Body: ast.NormalBind{Term: num(1)}}}},
		{Command: &ast.CmdTermEval{Term: &ast.TmVar{Name: "x"}}},
	}
	got := PrintProgram(prog)
	want := "let x = 1\n\neval x\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPrintProgramNoBlankLineAfterNonTermDef(t *testing.T) {
	prog := ast.Program{
		{Command: &ast.CmdTermEval{Term: num(1)}},
		{Command: &ast.CmdTermEval{Term: num(2)}},
	}
	got := PrintProgram(prog)
	want := "eval 1\neval 2\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPrintDecoratedCommandEmitsDecorators(t *testing.T) {
	dc := ast.DecoratedCommand{
		Command: &ast.CmdTermEval{Term: num(1)},
		Decos:   []string{"inline"},
	}
	got := Render(printDecoratedCommand(dc), 50)
	want := "@inline\neval 1"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
