package ast

// Pattern is the sum type of match/binding patterns.
type Pattern interface {
	GetSpan() Span
	patternNode()
}

type PWildcard struct{ Span Span }

// PVar is a variable pattern; Inner holds the left side of an
// `as`-pattern (p as x) when non-nil.
type PVar struct {
	Span  Span
	Inner Pattern
	Name  string
}

// PTuple is a tuple pattern of arity >= 2.
type PTuple struct {
	Span  Span
	Elems []Pattern
}

// PCons is a constructor pattern; Content is nil for a nullary
// constructor at parse time (arity canonicalization fills it in later).
type PCons struct {
	Span    Span
	Name    string
	Content Pattern
}

func (p *PWildcard) GetSpan() Span { return p.Span }
func (p *PVar) GetSpan() Span      { return p.Span }
func (p *PTuple) GetSpan() Span    { return p.Span }
func (p *PCons) GetSpan() Span     { return p.Span }

func (p *PWildcard) patternNode() {}
func (p *PVar) patternNode()      {}
func (p *PTuple) patternNode()    {}
func (p *PCons) patternNode()     {}

// PatternVars returns every variable bound by pattern, in the order the
// original collect_pattern_vars walks them: for an as-pattern the inner
// pattern's variables come before the outer name.
func PatternVars(p Pattern) []string {
	switch x := p.(type) {
	case *PWildcard:
		return nil
	case *PVar:
		var vars []string
		if x.Inner != nil {
			vars = append(vars, PatternVars(x.Inner)...)
		}
		vars = append(vars, x.Name)
		return vars
	case *PTuple:
		var vars []string
		for _, e := range x.Elems {
			vars = append(vars, PatternVars(e)...)
		}
		return vars
	case *PCons:
		if x.Content == nil {
			return nil
		}
		return PatternVars(x.Content)
	}
	return nil
}
