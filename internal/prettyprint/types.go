package prettyprint

import "github.com/sufu-ml/bridge/internal/ast"

func isAtomicType(t ast.Type) bool {
	switch t.(type) {
	case *ast.TUnit, *ast.TBool, *ast.TInt, *ast.TVar:
		return true
	case *ast.TInd:
		return len(t.(*ast.TInd).Params) == 0
	}
	return false
}

func printTypeAtom(t ast.Type) Doc {
	if isAtomicType(t) {
		return printType(t)
	}
	return Concat(Text("("), printType(t), Text(")"))
}

// printType renders a type. Poly only ever appears at a scheme's top and
// is normally unwrapped by the caller (commands.go); a Poly that reaches
// here prints as its body, without its quantified variables.
func printType(t ast.Type) Doc {
	switch x := t.(type) {
	case *ast.TUnit:
		return Text("unit")
	case *ast.TBool:
		return Text("bool")
	case *ast.TInt:
		return Text("int")
	case *ast.TVar:
		return Text(x.Name)
	case *ast.TTuple:
		elems := make([]Doc, len(x.Elems))
		for i, e := range x.Elems {
			if _, isArr := e.(*ast.TArr); isArr {
				elems[i] = printTypeAtom(e)
			} else if _, isTuple := e.(*ast.TTuple); isTuple {
				elems[i] = printTypeAtom(e)
			} else {
				elems[i] = printType(e)
			}
		}
		return Group(Intersperse(Concat(Text(" *"), Line()), elems...))
	case *ast.TArr:
		left := printType(x.From)
		if _, isArr := x.From.(*ast.TArr); isArr {
			left = Concat(Text("("), left, Text(")"))
		}
		return Group(Concat(left, Text(" ->"), Line(), printType(x.To)))
	case *ast.TInd:
		switch len(x.Params) {
		case 0:
			return Text(x.Name)
		case 1:
			return Concat(printTypeAtom(x.Params[0]), Text(" "), Text(x.Name))
		default:
			parts := make([]Doc, len(x.Params))
			for i, p := range x.Params {
				parts[i] = printType(p)
			}
			return Concat(Text("("), Intersperse(Text(", "), parts...), Text(") "), Text(x.Name))
		}
	case *ast.TPoly:
		return printType(x.Body)
	}
	return Text("<type?>")
}

// PrintType renders t from a free (top-level) position.
func PrintType(t ast.Type) string {
	return Render(printType(t), 50)
}
