package edit

import (
	"testing"

	"src.tyed.sh/pkg/histutil"
	"src.tyed.sh/pkg/path"
	"src.tyed.sh/pkg/term"
	"src.tyed.sh/pkg/ui"
)

func ref(id string) term.Reference { return term.Reference{Identifier: id} }

var (
	nat     = ref("Nat")
	boolRef = ref("Bool")
	type1   = term.Type{Universe: 1}
)

func scope(t *testing.T, entries ...term.Entry) term.Scope {
	t.Helper()
	s, err := term.NewScope(entries...)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// stateAt returns a state whose history has a single snapshot.
func stateAt(s term.Scope, c Cursor) State {
	return State{History: histutil.New(SourceState{s, c})}
}

func at(p ...string) Entry { return Entry{Path: path.Path(p)} }

func current(t *testing.T, s State) SourceState {
	t.Helper()
	c, err := s.Current()
	if err != nil {
		t.Fatal(err)
	}
	return c
}

// feed applies keys one after another with the default configuration.
func feed(s State, keys ...ui.Key) State {
	for _, k := range keys {
		s = Reduce(s, k, Config{})
	}
	return s
}

// typed returns one key per rune of text.
func typed(text string) []ui.Key {
	var keys []ui.Key
	for _, r := range text {
		keys = append(keys, ui.K(string(r)))
	}
	return keys
}

func getNode(t *testing.T, s State, p ...string) term.Term {
	t.Helper()
	n, err := current(t, s).Source.Get(path.Path(p))
	if err != nil {
		t.Fatal(err)
	}
	return n
}
