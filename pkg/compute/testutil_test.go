package compute

import (
	"testing"

	"src.tyed.sh/pkg/term"
)

func ref(id string) term.Reference { return term.Reference{Identifier: id} }

func typ(u int) term.Type { return term.Type{Universe: u} }

func arrow(from, to term.Term) term.Pi { return term.Pi{From: from, To: to} }

func app(left, right term.Term, more ...term.Term) term.Term {
	t := term.Term(term.Application{Left: left, Right: right})
	for _, m := range more {
		t = term.Application{Left: t, Right: m}
	}
	return t
}

func lambda(head string, from, body term.Term) term.Lambda {
	return term.Lambda{Head: head, From: from, Body: body}
}

func prep(t term.Term) Term { return PrepareTerm(t, EmptyEnv, nil) }

// A small standard library: natural numbers, booleans and a polymorphic
// identity function.
var stdEntries = []term.Entry{
	{Name: "Nat", Type: typ(1)},
	{Name: "Bool", Type: typ(1)},
	{Name: "zero", Type: ref("Nat")},
	{Name: "succ", Type: arrow(ref("Nat"), ref("Nat"))},
	{Name: "true", Type: ref("Bool")},
	{Name: "f", Type: arrow(ref("Bool"), ref("Nat"))},
	{Name: "x", Type: ref("Nat")},
	{Name: "id",
		Type:  term.Pi{Head: "A", From: typ(1), To: arrow(ref("A"), ref("A"))},
		Value: lambda("A", typ(1), lambda("a", ref("A"), ref("a")))},
	{Name: "one", Value: app(ref("succ"), ref("zero"))},
}

func program(t *testing.T, extra ...term.Entry) *Program {
	t.Helper()
	s, err := term.NewScope(append(append([]term.Entry(nil), stdEntries...), extra...)...)
	if err != nil {
		t.Fatalf("NewScope: %v", err)
	}
	return Prepare(s)
}

func assertSameTerm(t *testing.T, got Term, want term.Term) {
	t.Helper()
	if got == nil {
		t.Errorf("got no term, want %v", want)
		return
	}
	if !Equal(got, prep(want)) {
		t.Errorf("got %v, want %v", got, want)
	}
}
