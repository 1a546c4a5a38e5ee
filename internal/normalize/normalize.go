package normalize

import "github.com/sufu-ml/bridge/internal/ast"

// SurfaceToInternal lowers a parsed surface program into internal form:
// RemoveZeroArity runs first (canonicalizing constructor arity so every
// later pass sees only unary constructors), then RemoveNative curries
// multi-parameter functions and lowers case-style bindings into matches.
func SurfaceToInternal(prog ast.Program) ast.Program {
	zero := NewRemoveZeroArity()
	prog = RewriteProgram(zero, prog)
	native := NewRemoveNative()
	prog = RewriteProgram(native, prog)
	return prog
}

// InternalToSurface is the inverse: AddNative runs first (uncurrying
// functions and reconstituting case-style bindings), then AddZeroArity
// restores nullary constructors from their unary Unit-taking internal
// encoding.
func InternalToSurface(prog ast.Program) ast.Program {
	native := NewAddNative()
	prog = RewriteProgram(native, prog)
	zero := NewAddZeroArity()
	prog = RewriteProgram(zero, prog)
	return prog
}
