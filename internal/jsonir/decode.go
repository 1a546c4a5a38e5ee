package jsonir

import (
	"encoding/json"
	"fmt"

	"github.com/sufu-ml/bridge/internal/ast"
	"github.com/sufu-ml/bridge/internal/diagnostics"
)

func diagnosticsShapeError(path, detail string) error {
	return diagnostics.NewCodecError(diagnostics.ErrJ002, path, detail)
}

func diagnosticsPolyIndexError(idx, numVars int) error {
	return diagnostics.NewCodecError(diagnostics.ErrJ003, idx, numVars)
}

// DecodeProgram parses pretty-printed IR JSON back into an internal-form
// program. Every node's span is set to the sentinel ast.DefaultSpan;
// decorators are accepted and then dropped, per spec §4.8/§9.
func DecodeProgram(data []byte) (ast.Program, error) {
	var arr []json.RawMessage
	if err := json.Unmarshal(data, &arr); err != nil {
		return nil, shapeErr("<program>", err.Error())
	}
	prog := make(ast.Program, len(arr))
	for i, raw := range arr {
		var n node
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, shapeErr(fmt.Sprintf("[%d]", i), err.Error())
		}
		cmd, err := decodeCommand(n)
		if err != nil {
			return nil, err
		}
		prog[i] = ast.DecoratedCommand{Command: cmd, Decos: nil}
	}
	return prog, nil
}

func shapeErr(path, detail string) error {
	return diagnosticsShapeError(path, detail)
}

func tagOf(n node) (string, error) {
	v, ok := n["type"]
	if !ok {
		return "", shapeErr("<node>", "missing \"type\" field")
	}
	s, ok := v.(string)
	if !ok {
		return "", shapeErr("<node>", "\"type\" field is not a string")
	}
	return s, nil
}

func field(n node, key, path string) (node, error) {
	v, ok := n[key]
	if !ok {
		return nil, shapeErr(path, fmt.Sprintf("missing field %q", key))
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, shapeErr(path, fmt.Sprintf("field %q is not an object", key))
	}
	return node(m), nil
}

func stringField(n node, key, path string) (string, error) {
	v, ok := n[key]
	if !ok {
		return "", shapeErr(path, fmt.Sprintf("missing field %q", key))
	}
	s, ok := v.(string)
	if !ok {
		return "", shapeErr(path, fmt.Sprintf("field %q is not a string", key))
	}
	return s, nil
}

func intField(n node, key, path string) (int, error) {
	v, ok := n[key]
	if !ok {
		return 0, shapeErr(path, fmt.Sprintf("missing field %q", key))
	}
	switch f := v.(type) {
	case float64:
		return int(f), nil
	case int:
		return f, nil
	}
	return 0, shapeErr(path, fmt.Sprintf("field %q is not a number", key))
}

func arrayField(n node, key, path string) ([]any, error) {
	v, ok := n[key]
	if !ok {
		return nil, shapeErr(path, fmt.Sprintf("missing field %q", key))
	}
	a, ok := v.([]any)
	if !ok {
		return nil, shapeErr(path, fmt.Sprintf("field %q is not an array", key))
	}
	return a, nil
}

func asNode(v any, path string) (node, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, shapeErr(path, "expected an object")
	}
	return node(m), nil
}

func decodeCommand(n node) (ast.Command, error) {
	tag, err := tagOf(n)
	if err != nil {
		return nil, err
	}
	switch tag {
	case "declare":
		name, err := stringField(n, "name", "declare")
		if err != nil {
			return nil, err
		}
		tyN, err := field(n, "ty", "declare.ty")
		if err != nil {
			return nil, err
		}
		ty, err := decodeScheme(tyN, "declare.ty")
		if err != nil {
			return nil, err
		}
		return &ast.CmdTypeDeclare{Span: ast.DefaultSpan, Name: name, Ty: ty}, nil
	case "type":
		name, err := stringField(n, "name", "type")
		if err != nil {
			return nil, err
		}
		arity, err := intField(n, "arity", "type")
		if err != nil {
			return nil, err
		}
		consArr, err := arrayField(n, "cons", "type.cons")
		if err != nil {
			return nil, err
		}
		consList := make([]ast.ConsInfo, len(consArr))
		for i, raw := range consArr {
			pair, ok := raw.([]any)
			if !ok || len(pair) != 2 {
				return nil, shapeErr(fmt.Sprintf("type.cons[%d]", i), "expected a [name, scheme] pair")
			}
			consName, ok := pair[0].(string)
			if !ok {
				return nil, shapeErr(fmt.Sprintf("type.cons[%d][0]", i), "expected a string")
			}
			schemeN, err := asNode(pair[1], fmt.Sprintf("type.cons[%d][1]", i))
			if err != nil {
				return nil, err
			}
			scheme, err := decodeScheme(schemeN, fmt.Sprintf("type.cons[%d][1]", i))
			if err != nil {
				return nil, err
			}
			consList[i] = ast.ConsInfo{Name: consName, Scheme: scheme}
		}
		return &ast.CmdTypeDef{Span: ast.DefaultSpan, Name: name, ConsList: consList, Arity: arity}, nil
	case "eval":
		termN, err := field(n, "term", "eval.term")
		if err != nil {
			return nil, err
		}
		term, err := decodeTerm(termN, "eval.term")
		if err != nil {
			return nil, err
		}
		return &ast.CmdTermEval{Span: ast.DefaultSpan, Term: term}, nil
	case "bind", "func":
		name, err := stringField(n, "name", tag)
		if err != nil {
			return nil, err
		}
		defN, err := field(n, "def", tag+".def")
		if err != nil {
			return nil, err
		}
		def, err := decodeTerm(defN, tag+".def")
		if err != nil {
			return nil, err
		}
		bind := &ast.Bind{Span: ast.DefaultSpan, Name: name, Params: nil, IsRec: tag == "func", Body: ast.NormalBind{Term: def}}
		return &ast.CmdTermDef{Span: ast.DefaultSpan, Bind: bind}, nil
	case "config":
		name, _ := stringField(n, "name", "config")
		return &ast.CmdConfig{Span: ast.DefaultSpan, Name: name}, nil
	}
	return nil, shapeErr("<command>", fmt.Sprintf("unknown command tag %q", tag))
}

// decodeScheme reads a type at a scheme's top, binding Poly.vars to
// ordinal positions for resolving nested var.index fields.
func decodeScheme(n node, path string) (ast.Type, error) {
	tag, err := tagOf(n)
	if err != nil {
		return nil, err
	}
	if tag != "poly" {
		return decodeType(n, nil, path)
	}
	varsArr, err := arrayField(n, "vars", path+".vars")
	if err != nil {
		return nil, err
	}
	vars := make([]string, len(varsArr))
	for i, v := range varsArr {
		s, ok := v.(string)
		if !ok {
			return nil, shapeErr(fmt.Sprintf("%s.vars[%d]", path, i), "expected a string")
		}
		vars[i] = s
	}
	bodyN, err := field(n, "body", path+".body")
	if err != nil {
		return nil, err
	}
	body, err := decodeType(bodyN, vars, path+".body")
	if err != nil {
		return nil, err
	}
	return &ast.TPoly{Span: ast.DefaultSpan, Vars: vars, Body: body}, nil
}

func decodeType(n node, vars []string, path string) (ast.Type, error) {
	tag, err := tagOf(n)
	if err != nil {
		return nil, err
	}
	switch tag {
	case "unit":
		return &ast.TUnit{Span: ast.DefaultSpan}, nil
	case "bool":
		return &ast.TBool{Span: ast.DefaultSpan}, nil
	case "int":
		return &ast.TInt{Span: ast.DefaultSpan}, nil
	case "var":
		idx, err := intField(n, "index", path)
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(vars) {
			return nil, diagnosticsPolyIndexError(idx, len(vars))
		}
		return &ast.TVar{Span: ast.DefaultSpan, Name: vars[idx]}, nil
	case "arrow":
		sN, err := field(n, "s", path+".s")
		if err != nil {
			return nil, err
		}
		tN, err := field(n, "t", path+".t")
		if err != nil {
			return nil, err
		}
		s, err := decodeType(sN, vars, path+".s")
		if err != nil {
			return nil, err
		}
		t, err := decodeType(tN, vars, path+".t")
		if err != nil {
			return nil, err
		}
		return &ast.TArr{Span: ast.DefaultSpan, From: s, To: t}, nil
	case "tuple":
		fieldsArr, err := arrayField(n, "fields", path+".fields")
		if err != nil {
			return nil, err
		}
		elems := make([]ast.Type, len(fieldsArr))
		for i, raw := range fieldsArr {
			fn, err := asNode(raw, fmt.Sprintf("%s.fields[%d]", path, i))
			if err != nil {
				return nil, err
			}
			e, err := decodeType(fn, vars, fmt.Sprintf("%s.fields[%d]", path, i))
			if err != nil {
				return nil, err
			}
			elems[i] = e
		}
		return &ast.TTuple{Span: ast.DefaultSpan, Elems: elems}, nil
	case "cons":
		name, err := stringField(n, "name", path)
		if err != nil {
			return nil, err
		}
		paramsArr, err := arrayField(n, "params", path+".params")
		if err != nil {
			return nil, err
		}
		params := make([]ast.Type, len(paramsArr))
		for i, raw := range paramsArr {
			pn, err := asNode(raw, fmt.Sprintf("%s.params[%d]", path, i))
			if err != nil {
				return nil, err
			}
			p, err := decodeType(pn, vars, fmt.Sprintf("%s.params[%d]", path, i))
			if err != nil {
				return nil, err
			}
			params[i] = p
		}
		return &ast.TInd{Span: ast.DefaultSpan, Name: name, Params: params}, nil
	case "poly":
		return nil, shapeErr(path, "Poly must not be nested inside a type")
	}
	return nil, shapeErr(path, fmt.Sprintf("unknown type tag %q", tag))
}

func decodePattern(n node, path string) (ast.Pattern, error) {
	tag, err := tagOf(n)
	if err != nil {
		return nil, err
	}
	switch tag {
	case "underscore":
		return &ast.PWildcard{Span: ast.DefaultSpan}, nil
	case "var":
		name, err := stringField(n, "name", path)
		if err != nil {
			return nil, err
		}
		if raw, ok := n["content"]; ok {
			cn, err := asNode(raw, path+".content")
			if err != nil {
				return nil, err
			}
			inner, err := decodePattern(cn, path+".content")
			if err != nil {
				return nil, err
			}
			return &ast.PVar{Span: ast.DefaultSpan, Inner: inner, Name: name}, nil
		}
		return &ast.PVar{Span: ast.DefaultSpan, Name: name}, nil
	case "tuple":
		fieldsArr, err := arrayField(n, "fields", path+".fields")
		if err != nil {
			return nil, err
		}
		elems := make([]ast.Pattern, len(fieldsArr))
		for i, raw := range fieldsArr {
			fn, err := asNode(raw, fmt.Sprintf("%s.fields[%d]", path, i))
			if err != nil {
				return nil, err
			}
			e, err := decodePattern(fn, fmt.Sprintf("%s.fields[%d]", path, i))
			if err != nil {
				return nil, err
			}
			elems[i] = e
		}
		return &ast.PTuple{Span: ast.DefaultSpan, Elems: elems}, nil
	case "cons":
		name, err := stringField(n, "name", path)
		if err != nil {
			return nil, err
		}
		var content ast.Pattern
		if raw, ok := n["content"]; ok {
			cn, err := asNode(raw, path+".content")
			if err != nil {
				return nil, err
			}
			content, err = decodePattern(cn, path+".content")
			if err != nil {
				return nil, err
			}
		}
		return &ast.PCons{Span: ast.DefaultSpan, Name: name, Content: content}, nil
	}
	return nil, shapeErr(path, fmt.Sprintf("unknown pattern tag %q", tag))
}

func decodeTerm(n node, path string) (ast.Term, error) {
	tag, err := tagOf(n)
	if err != nil {
		return nil, err
	}
	switch tag {
	case "int":
		v, err := intField(n, "value", path)
		if err != nil {
			return nil, err
		}
		return &ast.TmInt{Span: ast.DefaultSpan, Value: v}, nil
	case "true":
		return &ast.TmBool{Span: ast.DefaultSpan, Value: true}, nil
	case "false":
		return &ast.TmBool{Span: ast.DefaultSpan, Value: false}, nil
	case "unit":
		return &ast.TmUnit{Span: ast.DefaultSpan}, nil
	case "var":
		name, err := stringField(n, "name", path)
		if err != nil {
			return nil, err
		}
		return &ast.TmVar{Span: ast.DefaultSpan, Name: name}, nil
	case "cons":
		name, err := stringField(n, "name", path)
		if err != nil {
			return nil, err
		}
		cn, err := field(n, "content", path+".content")
		if err != nil {
			return nil, err
		}
		content, err := decodeTerm(cn, path+".content")
		if err != nil {
			return nil, err
		}
		return &ast.TmCons{Span: ast.DefaultSpan, Name: name, Body: content}, nil
	case "app":
		fn, err := field(n, "func", path+".func")
		if err != nil {
			return nil, err
		}
		pn, err := field(n, "param", path+".param")
		if err != nil {
			return nil, err
		}
		f, err := decodeTerm(fn, path+".func")
		if err != nil {
			return nil, err
		}
		p, err := decodeTerm(pn, path+".param")
		if err != nil {
			return nil, err
		}
		return &ast.TmApp{Span: ast.DefaultSpan, Func: f, Param: p}, nil
	case "func":
		name, err := stringField(n, "name", path)
		if err != nil {
			return nil, err
		}
		cn, err := field(n, "content", path+".content")
		if err != nil {
			return nil, err
		}
		body, err := decodeTerm(cn, path+".content")
		if err != nil {
			return nil, err
		}
		return &ast.TmFunc{Span: ast.DefaultSpan, Params: []string{name}, Body: body}, nil
	case "op":
		op, err := stringField(n, "operator", path)
		if err != nil {
			return nil, err
		}
		operands, err := arrayField(n, "operand", path+".operand")
		if err != nil {
			return nil, err
		}
		params := make([]ast.Term, len(operands))
		for i, raw := range operands {
			on, err := asNode(raw, fmt.Sprintf("%s.operand[%d]", path, i))
			if err != nil {
				return nil, err
			}
			p, err := decodeTerm(on, fmt.Sprintf("%s.operand[%d]", path, i))
			if err != nil {
				return nil, err
			}
			params[i] = p
		}
		return &ast.TmPrimOp{Span: ast.DefaultSpan, Op: op, Params: params}, nil
	case "tuple":
		fieldsArr, err := arrayField(n, "fields", path+".fields")
		if err != nil {
			return nil, err
		}
		elems := make([]ast.Term, len(fieldsArr))
		for i, raw := range fieldsArr {
			fn, err := asNode(raw, fmt.Sprintf("%s.fields[%d]", path, i))
			if err != nil {
				return nil, err
			}
			e, err := decodeTerm(fn, fmt.Sprintf("%s.fields[%d]", path, i))
			if err != nil {
				return nil, err
			}
			elems[i] = e
		}
		return &ast.TmTuple{Span: ast.DefaultSpan, Elems: elems}, nil
	case "if":
		condN, err := field(n, "condition", path+".condition")
		if err != nil {
			return nil, err
		}
		thenN, err := field(n, "true", path+".true")
		if err != nil {
			return nil, err
		}
		elseN, err := field(n, "false", path+".false")
		if err != nil {
			return nil, err
		}
		cond, err := decodeTerm(condN, path+".condition")
		if err != nil {
			return nil, err
		}
		th, err := decodeTerm(thenN, path+".true")
		if err != nil {
			return nil, err
		}
		el, err := decodeTerm(elseN, path+".false")
		if err != nil {
			return nil, err
		}
		return &ast.TmIf{Span: ast.DefaultSpan, Cond: cond, Then: th, Else: el}, nil
	case "match":
		valueN, err := field(n, "value", path+".value")
		if err != nil {
			return nil, err
		}
		def, err := decodeTerm(valueN, path+".value")
		if err != nil {
			return nil, err
		}
		casesArr, err := arrayField(n, "cases", path+".cases")
		if err != nil {
			return nil, err
		}
		cases := make([]ast.MatchCase, len(casesArr))
		for i, raw := range casesArr {
			pair, ok := raw.([]any)
			if !ok || len(pair) != 2 {
				return nil, shapeErr(fmt.Sprintf("%s.cases[%d]", path, i), "expected a [pattern, branch] pair")
			}
			pn, err := asNode(pair[0], fmt.Sprintf("%s.cases[%d][0]", path, i))
			if err != nil {
				return nil, err
			}
			bn, err := asNode(pair[1], fmt.Sprintf("%s.cases[%d][1]", path, i))
			if err != nil {
				return nil, err
			}
			pat, err := decodePattern(pn, fmt.Sprintf("%s.cases[%d][0]", path, i))
			if err != nil {
				return nil, err
			}
			branch, err := decodeTerm(bn, fmt.Sprintf("%s.cases[%d][1]", path, i))
			if err != nil {
				return nil, err
			}
			cases[i] = ast.MatchCase{Pattern: pat, Body: branch}
		}
		return &ast.TmMatch{Span: ast.DefaultSpan, Def: def, Cases: cases}, nil
	case "let", "letrec":
		name, err := stringField(n, "name", path)
		if err != nil {
			return nil, err
		}
		defN, err := field(n, "def", path+".def")
		if err != nil {
			return nil, err
		}
		contentN, err := field(n, "content", path+".content")
		if err != nil {
			return nil, err
		}
		def, err := decodeTerm(defN, path+".def")
		if err != nil {
			return nil, err
		}
		body, err := decodeTerm(contentN, path+".content")
		if err != nil {
			return nil, err
		}
		bind := &ast.Bind{Span: ast.DefaultSpan, Name: name, IsRec: tag == "letrec", Body: ast.NormalBind{Term: def}}
		return &ast.TmLet{Span: ast.DefaultSpan, Bind: bind, Body: body}, nil
	}
	return nil, shapeErr(path, fmt.Sprintf("unknown term tag %q", tag))
}
