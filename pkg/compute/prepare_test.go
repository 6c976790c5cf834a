package compute

import (
	"errors"
	"testing"

	"src.tyed.sh/pkg/path"
	"src.tyed.sh/pkg/term"
)

var roundTripTerms = []term.Term{
	typ(0),
	term.Empty,
	ref("Nat"),
	app(ref("succ"), ref("zero")),
	term.Pi{Head: "n", From: ref("Nat"), To: app(ref("Vec"), ref("n"))},
	arrow(ref("Nat"), ref("Nat")),
	lambda("x", ref("Nat"), lambda("x", ref("x"), ref("x"))),
	term.Let{Head: "y", From: ref("Nat"), Left: ref("zero"), Right: app(ref("succ"), ref("y"))},
}

func TestUnprepare_InvertsPrepare(t *testing.T) {
	for _, tm := range roundTripTerms {
		if got := Unprepare(prep(tm)); !term.Equal(got, tm) {
			t.Errorf("Unprepare(Prepare(%v)) = %v", tm, got)
		}
	}
}

func TestPrepareTerm_ClassifiesReferences(t *testing.T) {
	p := PrepareTerm(lambda("x", ref("Nat"), app(ref("x"), ref("y"))),
		EmptyEnv, path.Path{"e", "value"})
	l := p.(Lambda)
	body := l.Body.(Application)

	x, ok := body.Left.(Reference)
	if !ok {
		t.Fatalf("x prepared as %T, want Reference", body.Left)
	}
	if !Equal(x.Type, l.From) {
		t.Errorf("x has type %v, want %v", x.Type, l.From)
	}
	if _, ok := body.Right.(Free); !ok {
		t.Errorf("y prepared as %T, want Free", body.Right)
	}
	if want := (path.Path{"e", "value", "body", "right"}); !body.Right.Info().Path.Equals(want) {
		t.Errorf("y has path %v, want %v", body.Right.Info().Path, want)
	}
	if b := Bindings(body.Right.Info().Env); len(b) != 1 || b[0].Name != "x" {
		t.Errorf("environment of y = %v, want x only", b)
	}
}

func TestPrepareTerm_EmptyHeadDoesNotBind(t *testing.T) {
	p := prep(arrow(ref("Nat"), ref(""))).(Pi)
	if !IsEmpty(p.To) {
		t.Errorf("to = %#v, want the empty free term", p.To)
	}
	if b := Bindings(p.To.Info().Env); len(b) != 0 {
		t.Errorf("environment under arrow = %v, want empty", b)
	}
}

func TestPrepareTerm_LetDefinitionDoesNotSeeHead(t *testing.T) {
	p := prep(term.Let{Head: "y", From: ref("Nat"), Left: ref("y"), Right: ref("y")}).(Let)
	if _, ok := p.Left.(Free); !ok {
		t.Errorf("left = %T, want Free", p.Left)
	}
	if _, ok := p.Right.(Reference); !ok {
		t.Errorf("right = %T, want Reference", p.Right)
	}
}

func TestBindings_ShadowedOmitted(t *testing.T) {
	p := prep(lambda("x", ref("Nat"), lambda("y", ref("Nat"), lambda("x", ref("Bool"), ref(""))))).(Lambda)
	inner := p.Body.(Lambda).Body.(Lambda).Body
	bindings := Bindings(inner.Info().Env)
	var names []string
	for _, b := range bindings {
		names = append(names, b.Name)
	}
	if len(names) != 2 || names[0] != "x" || names[1] != "y" {
		t.Fatalf("names = %v, want [x y]", names)
	}
	if got := Unprepare(bindings[0].Type); !term.Equal(got, ref("Bool")) {
		t.Errorf("x has type %v, want the innermost binding's Bool", got)
	}
}

func TestPrepare_IsDeterministic(t *testing.T) {
	p1, p2 := program(t), program(t)
	for _, name := range p1.Names() {
		e1, _ := p1.Entry(name)
		e2, _ := p2.Entry(name)
		if !Equal(e1.Type, e2.Type) || !Equal(e1.Value, e2.Value) {
			t.Errorf("entry %s prepared differently", name)
		}
	}
}

func TestProgram_Get(t *testing.T) {
	p := program(t)
	got, err := p.Get(path.Path{"id", "value", "body", "from"})
	if err != nil {
		t.Fatal(err)
	}
	if r, ok := got.(Reference); !ok || r.Identifier != "A" {
		t.Errorf("Get -> %#v, want reference to A", got)
	}
	if !got.Info().Path.Equals(path.Path{"id", "value", "body", "from"}) {
		t.Errorf("node has path %v", got.Info().Path)
	}

	tests := []struct {
		path path.Path
		want error
	}{
		{path.Path{"id"}, term.ErrInvalidPath},
		{path.Path{"nope", "type"}, term.ErrNoEntry},
		{path.Path{"id", "kind"}, term.ErrBadSelector},
		{path.Path{"zero", "type", "left"}, term.ErrInvalidPath},
	}
	for _, test := range tests {
		if _, err := p.Get(test.path); !errors.Is(err, test.want) {
			t.Errorf("Get(%v) -> %v, want %v", test.path, err, test.want)
		}
	}
}

func TestProgram_Entry(t *testing.T) {
	p := program(t)
	if _, ok := p.Entry("nope"); ok {
		t.Errorf("Entry(nope) found")
	}
	e, ok := p.Entry("zero")
	if !ok || e.Name != "zero" || !IsEmpty(e.Value) {
		t.Errorf("Entry(zero) -> (%v, %v)", e, ok)
	}
	if got := len(p.Entries()); got != len(stdEntries) {
		t.Errorf("%d entries, want %d", got, len(stdEntries))
	}
}
