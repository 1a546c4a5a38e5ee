package prettyprint

import "github.com/sufu-ml/bridge/internal/ast"

func isAtomicPattern(p ast.Pattern) bool {
	switch x := p.(type) {
	case *ast.PWildcard:
		return true
	case *ast.PVar:
		return x.Inner == nil
	case *ast.PTuple:
		return true
	case *ast.PCons:
		return x.Content == nil
	}
	return false
}

func printPatternAtom(p ast.Pattern) Doc {
	if isAtomicPattern(p) {
		return printPattern(p)
	}
	return Concat(Text("("), printPattern(p), Text(")"))
}

func printPattern(p ast.Pattern) Doc {
	switch x := p.(type) {
	case *ast.PWildcard:
		return Text("_")
	case *ast.PVar:
		if x.Inner == nil {
			return Text(x.Name)
		}
		return Concat(printPattern(x.Inner), Text(" as "), Text(x.Name))
	case *ast.PTuple:
		elems := make([]Doc, len(x.Elems))
		for i, e := range x.Elems {
			elems[i] = printPattern(e)
		}
		return Concat(Text("("), Intersperse(Text(", "), elems...), Text(")"))
	case *ast.PCons:
		if x.Content == nil {
			return Text(x.Name)
		}
		return Concat(Text(x.Name), Text(" "), printPatternAtom(x.Content))
	}
	return Text("<pattern?>")
}

// PrintPattern renders p from a free (top-level) position.
func PrintPattern(p ast.Pattern) string {
	return Render(printPattern(p), 50)
}
