// Package prettyprint implements a small Wadler-style document algebra
// (text/line/hardline/concat/nest/group/intersperse; there is no union
// combinator) and the surface/internal term, pattern,
// type, command and program printers built on top of it.
//
// The layout algorithm itself is treated as a black box per the
// pipeline's own scope (nothing here is novel layout theory); what is
// grounded in the reference implementation is how each AST shape is
// built out of these combinators — operator parenthesization, match-arm
// breaking, and let-binding folding.
package prettyprint

import "strings"

// Doc is an immutable pretty-printing document.
type Doc interface {
	docNode()
}

type textDoc struct{ s string }
type lineDoc struct{ hard bool }
type concatDoc struct{ docs []Doc }
type nestDoc struct {
	indent int
	doc    Doc
}
type groupDoc struct{ doc Doc }

func (textDoc) docNode()   {}
func (lineDoc) docNode()   {}
func (concatDoc) docNode() {}
func (nestDoc) docNode()   {}
func (groupDoc) docNode()  {}

// Text is a literal fragment with no internal line breaks.
func Text(s string) Doc { return textDoc{s} }

// Line is a soft break: a space when flattened, a newline when broken.
func Line() Doc { return lineDoc{hard: false} }

// Hardline always breaks, even inside a flattened group.
func Hardline() Doc { return lineDoc{hard: true} }

// Concat joins documents with no separator.
func Concat(docs ...Doc) Doc { return concatDoc{docs} }

// Nest increases the indentation used by line breaks inside doc.
func Nest(indent int, doc Doc) Doc { return nestDoc{indent, doc} }

// Group tries to flatten doc onto one line; if it does not fit the
// target width, every Line inside breaks instead.
func Group(doc Doc) Doc { return groupDoc{doc} }

// Intersperse places sep between consecutive elements of docs.
func Intersperse(sep Doc, docs ...Doc) Doc {
	if len(docs) == 0 {
		return Text("")
	}
	out := make([]Doc, 0, len(docs)*2-1)
	for i, d := range docs {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, d)
	}
	return Concat(out...)
}

// Render lays out doc targeting the given column width.
func Render(doc Doc, width int) string {
	var sb strings.Builder
	render(&sb, width, 0, []item{{0, flatModeBreak, doc}})
	return sb.String()
}

type flatMode int

const (
	flatModeBreak flatMode = iota
	flatModeFlat
)

type item struct {
	indent int
	mode   flatMode
	doc    Doc
}

// fits reports whether the given items can be laid out flat within the
// remaining column budget, stopping at the first hard break.
func fits(remaining int, items []item) bool {
	for len(items) > 0 {
		if remaining < 0 {
			return false
		}
		it := items[0]
		items = items[1:]
		switch d := it.doc.(type) {
		case textDoc:
			remaining -= len(d.s)
		case lineDoc:
			if d.hard {
				return true
			}
			if it.mode == flatModeFlat {
				remaining--
			} else {
				return true
			}
		case concatDoc:
			next := make([]item, 0, len(d.docs)+len(items))
			for _, c := range d.docs {
				next = append(next, item{it.indent, it.mode, c})
			}
			items = append(next, items...)
		case nestDoc:
			items = append([]item{{it.indent + d.indent, it.mode, d.doc}}, items...)
		case groupDoc:
			items = append([]item{{it.indent, flatModeFlat, d.doc}}, items...)
		}
	}
	return true
}

func render(sb *strings.Builder, width, col int, items []item) {
	for len(items) > 0 {
		it := items[0]
		rest := items[1:]
		switch d := it.doc.(type) {
		case textDoc:
			sb.WriteString(d.s)
			render(sb, width, col+len(d.s), rest)
			return
		case lineDoc:
			if it.mode == flatModeFlat && !d.hard {
				sb.WriteString(" ")
				render(sb, width, col+1, rest)
				return
			}
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat(" ", it.indent))
			render(sb, width, it.indent, rest)
			return
		case concatDoc:
			next := make([]item, 0, len(d.docs)+len(rest))
			for _, c := range d.docs {
				next = append(next, item{it.indent, it.mode, c})
			}
			items = append(next, rest...)
			continue
		case nestDoc:
			items = append([]item{{it.indent + d.indent, it.mode, d.doc}}, rest...)
			continue
		case groupDoc:
			flat := []item{{it.indent, flatModeFlat, d.doc}}
			if fits(width-col, append(append([]item{}, flat...), rest...)) {
				items = append(flat, rest...)
			} else {
				items = append([]item{{it.indent, flatModeBreak, d.doc}}, rest...)
			}
			continue
		}
	}
}
