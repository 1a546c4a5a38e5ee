// Package ast defines the surface/internal AST shared by the parser,
// normalizers, pretty-printer and JSON codec.
package ast

// Span is a half-open source-text offset range. It is attached to every
// node but is a side-channel: it never affects structural equality and
// is not required to round-trip through JSON (see jsonir).
type Span struct {
	Start int
	End   int
}

// DefaultSpan is the sentinel span assigned by the JSON decoder, since
// spans are not part of the wire format.
var DefaultSpan = Span{Start: 0, End: 1}

// Context is an append-only, program-order-populated scoped lookup table.
// It mirrors the original's linked Context<T>, but since constructor
// arity tracking never needs to branch or backtrack (bindings are only
// ever added while walking a program top-to-bottom) a flat mutable map
// is an equivalent, simpler replacement.
type Context[T any] struct {
	entries map[string]T
}

// NewContext returns an empty context.
func NewContext[T any]() *Context[T] {
	return &Context[T]{entries: make(map[string]T)}
}

// Bind records name -> val, overwriting any previous binding.
func (c *Context[T]) Bind(name string, val T) {
	c.entries[name] = val
}

// Lookup returns the bound value for name and whether it was found.
func (c *Context[T]) Lookup(name string) (T, bool) {
	v, ok := c.entries[name]
	return v, ok
}
