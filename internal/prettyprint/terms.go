package prettyprint

import "github.com/sufu-ml/bridge/internal/ast"

// opPrec mirrors the parser's binary/prefix precedence table (spec
// §4.4); the parser keeps its own copy (binaryPrec in
// internal/parser/terms.go), and the two must agree.
func opPrec(op string, arity int) int {
	if arity == 1 {
		switch op {
		case "-":
			return 20
		case "not":
			return 3
		}
		return 0
	}
	switch op {
	case "*", "/":
		return 10
	case "-", "+":
		return 5
	case "==", "<", ">", "<=", ">=":
		return 4
	case "&&":
		return 2
	case "||":
		return 1
	}
	return 0
}

// termPrec is a term's own binding strength for the purpose of
// deciding whether it needs parentheses as an operand of a binary or
// prefix PrimOp. Atomic-ish forms (literals, vars, application,
// constructors, tuples) bind tighter than any operator and never need
// parens from this rule; compound forms (if/match/let/fun) bind looser
// than the weakest operator and always do.
func termPrec(t ast.Term) int {
	switch x := t.(type) {
	case *ast.TmPrimOp:
		return opPrec(x.Op, len(x.Params))
	case *ast.TmIf, *ast.TmMatch, *ast.TmLet, *ast.TmFunc:
		return -1
	}
	return 100
}

func isAtomicTerm(t ast.Term) bool {
	switch x := t.(type) {
	case *ast.TmInt, *ast.TmBool, *ast.TmUnit, *ast.TmVar, *ast.TmNativeCons, *ast.TmTuple:
		return true
	case *ast.TmCons:
		_, isUnit := x.Body.(*ast.TmUnit)
		return isUnit
	}
	return false
}

func printCallArg(t ast.Term) Doc {
	if isAtomicTerm(t) {
		return printTerm(t)
	}
	return Concat(Text("("), printTerm(t), Text(")"))
}

// printOperand prints t as the left or right operand of a binary/prefix
// operator of precedence parentPrec, parenthesizing per spec §4.7: the
// right operand when its precedence is <= the parent's, the left when
// strictly less.
func printOperand(t ast.Term, parentPrec int, isRight bool) Doc {
	p := termPrec(t)
	needsParens := p < parentPrec
	if isRight {
		needsParens = p <= parentPrec
	}
	if needsParens {
		return Concat(Text("("), printTerm(t), Text(")"))
	}
	return printTerm(t)
}

func printTerm(t ast.Term) Doc {
	switch x := t.(type) {
	case *ast.TmInt:
		return Text(intToStr(x.Value))
	case *ast.TmBool:
		if x.Value {
			return Text("true")
		}
		return Text("false")
	case *ast.TmUnit:
		return Text("()")
	case *ast.TmVar:
		return Text(x.Name)
	case *ast.TmNativeCons:
		return Text(x.Name)
	case *ast.TmCons:
		if _, isUnit := x.Body.(*ast.TmUnit); isUnit {
			return Text(x.Name)
		}
		return Concat(Text(x.Name), Text(" "), printCallArg(x.Body))
	case *ast.TmApp:
		fn, args := flattenApp(x)
		parts := make([]Doc, 0, len(args)+1)
		parts = append(parts, printCallHead(fn))
		for _, a := range args {
			parts = append(parts, Text(" "), printCallArg(a))
		}
		return Group(Concat(parts...))
	case *ast.TmFunc:
		var parts []Doc
		parts = append(parts, Text("fun"))
		for _, p := range x.Params {
			parts = append(parts, Text(" "), Text(p))
		}
		parts = append(parts, Text(" ->"), Nest(2, Concat(Line(), printTerm(x.Body))))
		return Group(Concat(parts...))
	case *ast.TmPrimOp:
		prec := opPrec(x.Op, len(x.Params))
		if len(x.Params) == 1 {
			sp := " "
			if x.Op == "-" {
				sp = ""
			}
			return Concat(Text(x.Op), Text(sp), printOperand(x.Params[0], prec, true))
		}
		return Group(Concat(printOperand(x.Params[0], prec, false), Text(" "+x.Op), Line(), printOperand(x.Params[1], prec, true)))
	case *ast.TmTuple:
		elems := make([]Doc, len(x.Elems))
		for i, e := range x.Elems {
			elems[i] = printTerm(e)
		}
		return Concat(Text("("), Intersperse(Text(", "), elems...), Text(")"))
	case *ast.TmIf:
		return Group(Concat(
			Text("if "), printTerm(x.Cond),
			Nest(2, Concat(Line(), Text("then "), printTerm(x.Then))),
			Nest(2, Concat(Line(), Text("else "), printTerm(x.Else))),
		))
	case *ast.TmMatch:
		var cases []Doc
		cases = append(cases, Hardline())
		for i, c := range x.Cases {
			body := c.Body
			bodyDoc := printTerm(body)
			if i != len(x.Cases)-1 && isCompoundTerm(body) {
				bodyDoc = Concat(Text("("), bodyDoc, Text(")"))
			}
			cases = append(cases, Text("| "), printPattern(c.Pattern), Text(" -> "), bodyDoc)
			if i != len(x.Cases)-1 {
				cases = append(cases, Hardline())
			}
		}
		return Group(Concat(Text("match "), printTerm(x.Def), Text(" with"), Nest(2, Concat(cases...))))
	case *ast.TmLet:
		return printLetChain(x)
	}
	return Text("<term?>")
}

func isCompoundTerm(t ast.Term) bool {
	switch t.(type) {
	case *ast.TmIf, *ast.TmLet, *ast.TmMatch, *ast.TmFunc:
		return true
	}
	return false
}

func flattenApp(app *ast.TmApp) (ast.Term, []ast.Term) {
	var args []ast.Term
	var cur ast.Term = app
	for {
		a, ok := cur.(*ast.TmApp)
		if !ok {
			break
		}
		args = append([]ast.Term{a.Param}, args...)
		cur = a.Func
	}
	return cur, args
}

func printCallHead(t ast.Term) Doc {
	switch t.(type) {
	case *ast.TmVar, *ast.TmNativeCons, *ast.TmApp:
		return printTerm(t)
	case *ast.TmCons:
		return printTerm(t)
	}
	return printCallArg(t)
}

// printLetChain implements the reference printer's `_merge_let`: a let
// whose body is itself a let prints as one flat sequence of bindings
// rather than nesting a fresh indented block per binding.
func printLetChain(first *ast.TmLet) Doc {
	var parts []Doc
	cur := ast.Term(first)
	for {
		l, ok := cur.(*ast.TmLet)
		if !ok {
			break
		}
		parts = append(parts, printBindHeader(l.Bind), Text(" in"), Hardline())
		cur = l.Body
	}
	parts = append(parts, printTerm(cur))
	return Group(Concat(parts...))
}

func printBindHeader(b *ast.Bind) Doc {
	var head []Doc
	head = append(head, Text("let "))
	if b.IsRec {
		head = append(head, Text("rec "))
	}
	head = append(head, Text(b.Name))
	switch body := b.Body.(type) {
	case ast.NormalBind:
		for _, p := range b.Params {
			head = append(head, Text(" "), Text(p))
		}
		head = append(head, Text(" ="), Nest(2, Concat(Line(), printTerm(body.Term))))
	case ast.FuncBind:
		for _, p := range b.Params {
			head = append(head, Text(" "), Text(p))
		}
		head = append(head, Text(" = function"))
		for _, c := range body.Cases {
			head = append(head, Hardline(), Text("| "), printPattern(c.Pattern), Text(" -> "), printTerm(c.Body))
		}
	}
	return Group(Concat(head...))
}

func intToStr(v int) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var digits []byte
	for v > 0 {
		digits = append([]byte{byte('0' + v%10)}, digits...)
		v /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}

// PrintTerm renders t from a free (top-level) position.
func PrintTerm(t ast.Term) string {
	return Render(printTerm(t), 50)
}
