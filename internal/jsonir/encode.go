// Package jsonir implements the canonical tagged-union JSON codec (C10)
// between the internal AST and the external wire format of spec §4.8,
// using plain encoding/json the way the rest of the corpus does (e.g.
// the teacher's own internal/evaluator/builtins_json.go) rather than a
// schema/codegen library.
package jsonir

import (
	"encoding/json"
	"fmt"

	"github.com/sufu-ml/bridge/internal/ast"
	"github.com/sufu-ml/bridge/internal/diagnostics"
)

type node = map[string]any

// codecErr wraps a free-form message as a codec-phase diagnostic; used
// wherever the failure doesn't fit one of the catalogued ErrJ00x
// templates exactly.
func codecErr(msg string) error {
	return diagnostics.NewCodecError(diagnostics.ErrorCode("E000"), msg)
}

// EncodeProgram serializes an internal-form program to pretty-printed,
// 2-space-indented JSON.
func EncodeProgram(prog ast.Program) ([]byte, error) {
	arr := make([]any, len(prog))
	for i, dc := range prog {
		n, err := encodeCommand(dc.Command)
		if err != nil {
			return nil, err
		}
		if len(dc.Decos) > 0 {
			decos := make([]any, len(dc.Decos))
			for j, d := range dc.Decos {
				decos[j] = d
			}
			n["decos"] = decos
		}
		arr[i] = n
	}
	return json.MarshalIndent(arr, "", "  ")
}

func encodeCommand(c ast.Command) (node, error) {
	switch x := c.(type) {
	case *ast.CmdTypeAlias:
		return nil, diagnostics.NewCodecError(diagnostics.ErrJ004, "TypeAlias")
	case *ast.CmdConfig:
		return nil, diagnostics.NewCodecError(diagnostics.ErrJ004, "Config")
	case *ast.CmdTypeDeclare:
		ty, err := encodeScheme(x.Ty)
		if err != nil {
			return nil, err
		}
		return node{"type": "declare", "name": x.Name, "ty": ty}, nil
	case *ast.CmdTypeDef:
		consArr := make([]any, len(x.ConsList))
		for i, ci := range x.ConsList {
			scheme, err := encodeScheme(ci.Scheme)
			if err != nil {
				return nil, err
			}
			consArr[i] = []any{ci.Name, scheme}
		}
		return node{"type": "type", "name": x.Name, "arity": x.Arity, "cons": consArr}, nil
	case *ast.CmdTermEval:
		term, err := encodeTerm(x.Term)
		if err != nil {
			return nil, err
		}
		return node{"type": "eval", "term": term}, nil
	case *ast.CmdTermDef:
		return encodeBindAsCommand(x.Bind)
	}
	return nil, codecErr("unknown command kind")
}

func encodeBindAsCommand(b *ast.Bind) (node, error) {
	nb, ok := b.Body.(ast.NormalBind)
	if !ok || len(b.Params) != 0 {
		return nil, codecErr(fmt.Sprintf("binding %q is not in internal (NormalBind, no params) form", b.Name))
	}
	def, err := encodeTerm(nb.Term)
	if err != nil {
		return nil, err
	}
	tag := "bind"
	if b.IsRec {
		tag = "func"
	}
	return node{"type": tag, "name": b.Name, "def": def}, nil
}

// encodeScheme encodes a type at a scheme's top: if it's a Poly, its
// vars are bound to ordinal indices for every Var found within.
func encodeScheme(t ast.Type) (node, error) {
	if poly, ok := t.(*ast.TPoly); ok {
		idx := make(map[string]int, len(poly.Vars))
		for i, v := range poly.Vars {
			idx[v] = i
		}
		body, err := encodeType(poly.Body, idx)
		if err != nil {
			return nil, err
		}
		vars := make([]any, len(poly.Vars))
		for i, v := range poly.Vars {
			vars[i] = v
		}
		return node{"type": "poly", "vars": vars, "body": body}, nil
	}
	return encodeType(t, nil)
}

func encodeType(t ast.Type, idx map[string]int) (node, error) {
	switch x := t.(type) {
	case *ast.TUnit:
		return node{"type": "unit"}, nil
	case *ast.TBool:
		return node{"type": "bool"}, nil
	case *ast.TInt:
		return node{"type": "int"}, nil
	case *ast.TVar:
		i, ok := idx[x.Name]
		if !ok {
			return nil, codecErr(fmt.Sprintf("type variable %q encountered outside any enclosing Poly", x.Name))
		}
		return node{"type": "var", "index": i}, nil
	case *ast.TArr:
		s, err := encodeType(x.From, idx)
		if err != nil {
			return nil, err
		}
		tt, err := encodeType(x.To, idx)
		if err != nil {
			return nil, err
		}
		return node{"type": "arrow", "s": s, "t": tt}, nil
	case *ast.TTuple:
		fields := make([]any, len(x.Elems))
		for i, e := range x.Elems {
			f, err := encodeType(e, idx)
			if err != nil {
				return nil, err
			}
			fields[i] = f
		}
		return node{"type": "tuple", "fields": fields}, nil
	case *ast.TInd:
		params := make([]any, len(x.Params))
		for i, p := range x.Params {
			pp, err := encodeType(p, idx)
			if err != nil {
				return nil, err
			}
			params[i] = pp
		}
		return node{"type": "cons", "name": x.Name, "params": params}, nil
	case *ast.TPoly:
		return nil, codecErr("Poly must not be nested inside a type")
	}
	return nil, codecErr("unknown type kind")
}

func encodePattern(p ast.Pattern) (node, error) {
	switch x := p.(type) {
	case *ast.PWildcard:
		return node{"type": "underscore"}, nil
	case *ast.PVar:
		n := node{"type": "var", "name": x.Name}
		if x.Inner != nil {
			inner, err := encodePattern(x.Inner)
			if err != nil {
				return nil, err
			}
			n["content"] = inner
		}
		return n, nil
	case *ast.PTuple:
		fields := make([]any, len(x.Elems))
		for i, e := range x.Elems {
			f, err := encodePattern(e)
			if err != nil {
				return nil, err
			}
			fields[i] = f
		}
		return node{"type": "tuple", "fields": fields}, nil
	case *ast.PCons:
		n := node{"type": "cons", "name": x.Name}
		if x.Content != nil {
			content, err := encodePattern(x.Content)
			if err != nil {
				return nil, err
			}
			n["content"] = content
		}
		return n, nil
	}
	return nil, codecErr("unknown pattern kind")
}

func encodeTerm(t ast.Term) (node, error) {
	switch x := t.(type) {
	case *ast.TmInt:
		return node{"type": "int", "value": x.Value}, nil
	case *ast.TmBool:
		if x.Value {
			return node{"type": "true"}, nil
		}
		return node{"type": "false"}, nil
	case *ast.TmUnit:
		return node{"type": "unit"}, nil
	case *ast.TmVar:
		return node{"type": "var", "name": x.Name}, nil
	case *ast.TmNativeCons:
		return nil, codecErr(fmt.Sprintf("bare constructor reference %q is surface-only and not serializable", x.Name))
	case *ast.TmCons:
		content, err := encodeTerm(x.Body)
		if err != nil {
			return nil, err
		}
		return node{"type": "cons", "name": x.Name, "content": content}, nil
	case *ast.TmApp:
		fn, err := encodeTerm(x.Func)
		if err != nil {
			return nil, err
		}
		param, err := encodeTerm(x.Param)
		if err != nil {
			return nil, err
		}
		return node{"type": "app", "func": fn, "param": param}, nil
	case *ast.TmFunc:
		if len(x.Params) != 1 {
			return nil, codecErr("internal Func must have exactly one parameter")
		}
		body, err := encodeTerm(x.Body)
		if err != nil {
			return nil, err
		}
		return node{"type": "func", "name": x.Params[0], "content": body}, nil
	case *ast.TmPrimOp:
		operands := make([]any, len(x.Params))
		for i, p := range x.Params {
			o, err := encodeTerm(p)
			if err != nil {
				return nil, err
			}
			operands[i] = o
		}
		return node{"type": "op", "operator": x.Op, "operand": operands}, nil
	case *ast.TmTuple:
		fields := make([]any, len(x.Elems))
		for i, e := range x.Elems {
			f, err := encodeTerm(e)
			if err != nil {
				return nil, err
			}
			fields[i] = f
		}
		return node{"type": "tuple", "fields": fields}, nil
	case *ast.TmIf:
		cond, err := encodeTerm(x.Cond)
		if err != nil {
			return nil, err
		}
		th, err := encodeTerm(x.Then)
		if err != nil {
			return nil, err
		}
		el, err := encodeTerm(x.Else)
		if err != nil {
			return nil, err
		}
		return node{"type": "if", "condition": cond, "true": th, "false": el}, nil
	case *ast.TmMatch:
		value, err := encodeTerm(x.Def)
		if err != nil {
			return nil, err
		}
		cases := make([]any, len(x.Cases))
		for i, c := range x.Cases {
			pat, err := encodePattern(c.Pattern)
			if err != nil {
				return nil, err
			}
			branch, err := encodeTerm(c.Body)
			if err != nil {
				return nil, err
			}
			cases[i] = []any{pat, branch}
		}
		return node{"type": "match", "cases": cases, "value": value}, nil
	case *ast.TmLet:
		nb, ok := x.Bind.Body.(ast.NormalBind)
		if !ok || len(x.Bind.Params) != 0 {
			return nil, codecErr(fmt.Sprintf("let-binding %q is not in internal form", x.Bind.Name))
		}
		def, err := encodeTerm(nb.Term)
		if err != nil {
			return nil, err
		}
		content, err := encodeTerm(x.Body)
		if err != nil {
			return nil, err
		}
		tag := "let"
		if x.Bind.IsRec {
			tag = "letrec"
		}
		return node{"type": tag, "name": x.Bind.Name, "def": def, "content": content}, nil
	}
	return nil, codecErr("unknown term kind")
}
