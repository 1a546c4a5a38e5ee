package prettyprint

import "github.com/sufu-ml/bridge/internal/ast"

// unfoldScheme splits a possibly-Poly-wrapped type into its quantified
// variable names and its body, for printing `'a 'b name = ...` headers.
func unfoldScheme(t ast.Type) ([]string, ast.Type) {
	if poly, ok := t.(*ast.TPoly); ok {
		return poly.Vars, poly.Body
	}
	return nil, t
}

func printVarsPrefix(vars []string) Doc {
	if len(vars) == 0 {
		return Text("")
	}
	var parts []Doc
	for _, v := range vars {
		parts = append(parts, Text(v), Text(" "))
	}
	return Concat(parts...)
}

func printCommand(c ast.Command) Doc {
	switch x := c.(type) {
	case *ast.CmdTypeAlias:
		vars, body := unfoldScheme(x.Def)
		return Concat(Text("type "), printVarsPrefix(vars), Text(x.Name), Text(" = "), printType(body))
	case *ast.CmdTypeDef:
		var parts []Doc
		vars := make([]string, x.Arity)
		for i := range vars {
			vars[i] = ""
		}
		parts = append(parts, Text("type "))
		if len(x.ConsList) > 0 {
			if vs, _ := unfoldScheme(x.ConsList[0].Scheme); len(vs) > 0 {
				parts = append(parts, printVarsPrefix(vs))
			}
		}
		parts = append(parts, Text(x.Name), Text(" ="))
		for i, ci := range x.ConsList {
			_, body := unfoldScheme(ci.Scheme)
			parts = append(parts, Hardline(), Text("| "), Text(ci.Name))
			if arr, ok := body.(*ast.TArr); ok {
				parts = append(parts, Text(" of "), printType(arr.From))
			}
			_ = i
		}
		return Concat(parts...)
	case *ast.CmdTypeDeclare:
		_, body := unfoldScheme(x.Ty)
		return Concat(Text("val "), Text(x.Name), Text(" : "), printType(body))
	case *ast.CmdTermDef:
		return printBindHeader(x.Bind)
	case *ast.CmdTermEval:
		return Concat(Text("eval "), printTerm(x.Term))
	case *ast.CmdConfig:
		return Concat(Text("config "), Text(x.Name))
	}
	return Text("<command?>")
}

func printDecoratedCommand(dc ast.DecoratedCommand) Doc {
	var parts []Doc
	for _, d := range dc.Decos {
		parts = append(parts, Text("@"), Text(d), Hardline())
	}
	parts = append(parts, printCommand(dc.Command))
	return Concat(parts...)
}

// PrintProgram renders every command in order, separated by a blank
// line after each TermDef (matching ProgramPrinter::pretty_print's own
// spacing convention).
func PrintProgram(prog ast.Program) string {
	var out string
	for i, dc := range prog {
		out += Render(printDecoratedCommand(dc), 50)
		out += "\n"
		if i != len(prog)-1 {
			if _, isTermDef := dc.Command.(*ast.CmdTermDef); isTermDef {
				out += "\n"
			}
		}
	}
	return out
}
