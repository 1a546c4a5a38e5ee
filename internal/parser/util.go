package parser

import "github.com/sufu-ml/bridge/internal/ast"

// constructPolyForFreeVars wraps ty in a Poly over its free Vars, in
// first-appearance order with duplicates removed, when any exist.
// Poly is asserted never to nest, matching the invariant in §3.
func constructPolyForFreeVars(ty ast.Type) ast.Type {
	var order []string
	seen := make(map[string]bool)
	var collect func(t ast.Type)
	collect = func(t ast.Type) {
		switch x := t.(type) {
		case *ast.TVar:
			if !seen[x.Name] {
				seen[x.Name] = true
				order = append(order, x.Name)
			}
		case *ast.TTuple:
			for _, e := range x.Elems {
				collect(e)
			}
		case *ast.TArr:
			collect(x.From)
			collect(x.To)
		case *ast.TInd:
			for _, e := range x.Params {
				collect(e)
			}
		case *ast.TPoly:
			panic("constructPolyForFreeVars: Poly must not nest")
		}
	}
	collect(ty)
	if len(order) == 0 {
		return ty
	}
	return &ast.TPoly{Span: ty.GetSpan(), Vars: order, Body: ty}
}
