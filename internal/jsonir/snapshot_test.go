package jsonir

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/sufu-ml/bridge/internal/ast"
)

// TestEncodeProgramSnapshots pins the exact wire-format JSON for a
// representative internal-form program, the way the corpus snapshot
// tests stable serialized output.
func TestEncodeProgramSnapshots(t *testing.T) {
	optDef := &ast.CmdTypeDef{
		Name:  "opt",
		Arity: 1,
		ConsList: []ast.ConsInfo{
			{Name: "None", Scheme: &ast.TPoly{Vars: []string{"a"}, Body: &ast.TArr{
				From: &ast.TUnit{},
				To:   &ast.TInd{Name: "opt", Params: []ast.Type{&ast.TVar{Name: "a"}}},
			}}},
			{Name: "Some", Scheme: &ast.TPoly{Vars: []string{"a"}, Body: &ast.TArr{
				From: &ast.TVar{Name: "a"},
				To:   &ast.TInd{Name: "opt", Params: []ast.Type{&ast.TVar{Name: "a"}}},
			}}},
		},
	}
	idDecl := &ast.CmdTypeDeclare{
		Name: "id",
		Ty:   &ast.TPoly{Vars: []string{"a"}, Body: &ast.TArr{From: &ast.TVar{Name: "a"}, To: &ast.TVar{Name: "a"}}},
	}
	idBind := &ast.CmdTermDef{Bind: &ast.Bind{
		Name: "id",
		Body: ast.NormalBind{Term: &ast.TmFunc{Params: []string{"x"}, Body: &ast.TmVar{Name: "x"}}},
	}}

	prog := ast.Program{{Command: optDef}, {Command: idDecl}, {Command: idBind}}
	data, err := EncodeProgram(prog)
	if err != nil {
		t.Fatalf("EncodeProgram: %v", err)
	}
	snaps.MatchSnapshot(t, "program_opt_id", string(data))
}
