package prettyprint

import "testing"

func TestRenderFlatFitsOnOneLine(t *testing.T) {
	d := Group(Concat(Text("("), Text("a"), Line(), Text("+"), Line(), Text("b"), Text(")")))
	got := Render(d, 80)
	want := "(a + b)"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderGroupBreaksWhenTooWide(t *testing.T) {
	d := Group(Concat(Text("foo"), Nest(2, Concat(Line(), Text("bar")))))
	got := Render(d, 3)
	want := "foo\n  bar"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderHardlineAlwaysBreaks(t *testing.T) {
	d := Concat(Text("a"), Hardline(), Text("b"))
	got := Render(d, 80)
	want := "a\nb"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderIntersperse(t *testing.T) {
	d := Intersperse(Text(", "), Text("1"), Text("2"), Text("3"))
	got := Render(d, 80)
	want := "1, 2, 3"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderNestedGroupsIndependentFitCheck(t *testing.T) {
	inner := Group(Concat(Text("x"), Nest(2, Concat(Line(), Text("y")))))
	outer := Group(Concat(Text("outer("), inner, Text(")")))
	got := Render(outer, 80)
	if got != "outer(x y)" {
		t.Fatalf("got %q, want a flat rendering", got)
	}
}
