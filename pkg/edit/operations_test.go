package edit

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.tyed.sh/pkg/term"
)

var operationTests = []struct {
	name       string
	source     []term.Entry
	cursor     Cursor
	op         string
	wantSource []term.Entry
	wantCursor Cursor
}{
	{
		name: "addEntry", op: "addEntry",
		cursor:     TopEmpty{Input{"x", 1}},
		wantSource: []term.Entry{{Name: "x"}},
		wantCursor: TopEmpty{},
	},
	{
		name: "addEntryThenCursorToValue", op: "addEntryThenCursorToValue",
		source:     []term.Entry{{Name: "a"}},
		cursor:     TopEmpty{Input{"x", 1}},
		wantSource: []term.Entry{{Name: "a"}, {Name: "x"}},
		wantCursor: at("x", "value"),
	},
	{
		name: "addEntry with an empty name", op: "addEntry",
		cursor: TopEmpty{},
	},
	{
		name: "addEntry with an existing name", op: "addEntryThenCursorToType",
		source: []term.Entry{{Name: "x"}},
		cursor: TopEmpty{Input{"x", 1}},
	},
	{
		name: "addEntry with the caret inside the name", op: "addEntry",
		cursor: TopEmpty{Input{"xy", 1}},
	},
	{
		name: "moveCursorToValue", op: "moveCursorToValue",
		source:     []term.Entry{{Name: "x", Type: nat}},
		cursor:     TopEmpty{Input{"x", 1}},
		wantSource: []term.Entry{{Name: "x", Type: nat}},
		wantCursor: at("x", "value"),
	},
	{
		name: "moveCursorToType to a missing entry", op: "moveCursorToType",
		source: []term.Entry{{Name: "x"}},
		cursor: TopEmpty{Input{"y", 1}},
	},
	{
		name: "resetCursor", op: "resetCursor",
		source:     []term.Entry{{Name: "x"}},
		cursor:     at("x", "type"),
		wantSource: []term.Entry{{Name: "x"}},
		wantCursor: TopEmpty{},
	},
	{
		name: "resetCursor on the new entry input", op: "resetCursor",
		cursor: TopEmpty{Input{"x", 1}},
	},
	{
		name: "turnIntoType", op: "turnIntoType",
		source:     []term.Entry{{Name: "x", Type: ref("type")}},
		cursor:     Entry{at("x", "type").Path, 4},
		wantSource: []term.Entry{{Name: "x", Type: type1}},
		wantCursor: Entry{at("x", "type").Path, 4},
	},
	{
		name: "turnIntoType with a universe", op: "turnIntoType",
		source:     []term.Entry{{Name: "x", Type: ref("type3")}},
		cursor:     Entry{at("x", "type").Path, 5},
		wantSource: []term.Entry{{Name: "x", Type: term.Type{Universe: 3}}},
		wantCursor: Entry{at("x", "type").Path, 5},
	},
	{
		name: "turnIntoType with universe zero", op: "turnIntoType",
		source:     []term.Entry{{Name: "x", Type: ref("type0")}},
		cursor:     Entry{at("x", "type").Path, 5},
		wantSource: []term.Entry{{Name: "x", Type: type1}},
		wantCursor: Entry{at("x", "type").Path, 5},
	},
	{
		name: "turnIntoType with the caret inside", op: "turnIntoType",
		source: []term.Entry{{Name: "x", Type: ref("type")}},
		cursor: Entry{at("x", "type").Path, 2},
	},
	{
		name: "turnIntoType on another identifier", op: "turnIntoType",
		source: []term.Entry{{Name: "x", Type: ref("typo")}},
		cursor: Entry{at("x", "type").Path, 4},
	},
	{
		name: "turnIntoPiHeadThenCursorToFrom", op: "turnIntoPiHeadThenCursorToFrom",
		source:     []term.Entry{{Name: "x", Type: ref("n")}},
		cursor:     Entry{at("x", "type").Path, 1},
		wantSource: []term.Entry{{Name: "x", Type: term.Pi{Head: "n", From: term.Empty, To: term.Empty}}},
		wantCursor: at("x", "type", "from"),
	},
	{
		name: "turnIntoLambdaHeadThenCursorToFrom", op: "turnIntoLambdaHeadThenCursorToFrom",
		source:     []term.Entry{{Name: "x", Value: ref("n")}},
		cursor:     Entry{at("x", "value").Path, 1},
		wantSource: []term.Entry{{Name: "x", Value: term.Lambda{Head: "n", From: term.Empty, Body: term.Empty}}},
		wantCursor: at("x", "value", "from"),
	},
	{
		name: "turnIntoLetHeadThenCursorToFrom", op: "turnIntoLetHeadThenCursorToFrom",
		source: []term.Entry{{Name: "x", Value: ref("n")}},
		cursor: at("x", "value"),
		wantSource: []term.Entry{{Name: "x", Value: term.Let{
			Head: "n", From: term.Empty, Left: term.Empty, Right: term.Empty}}},
		wantCursor: at("x", "value", "from"),
	},
	{
		name: "turnIntoLambdaHeadThenCursorToFrom on a type", op: "turnIntoLambdaHeadThenCursorToFrom",
		source: []term.Entry{{Name: "x", Value: type1}},
		cursor: at("x", "value"),
	},
	{
		name: "turnIntoPiFromThenCursorToTo", op: "turnIntoPiFromThenCursorToTo",
		source:     []term.Entry{{Name: "x", Type: nat}},
		cursor:     Entry{at("x", "type").Path, 3},
		wantSource: []term.Entry{{Name: "x", Type: term.Pi{From: nat, To: term.Empty}}},
		wantCursor: at("x", "type", "to"),
	},
	{
		name: "turnIntoApplicationLeftThenCursorToRight", op: "turnIntoApplicationLeftThenCursorToRight",
		source:     []term.Entry{{Name: "x", Value: ref("f")}},
		cursor:     Entry{at("x", "value").Path, 1},
		wantSource: []term.Entry{{Name: "x", Value: term.Application{Left: ref("f"), Right: term.Empty}}},
		wantCursor: at("x", "value", "right"),
	},
	{
		name: "replaceWithEmptyReference on an application", op: "replaceWithEmptyReference",
		source:     []term.Entry{{Name: "x", Value: term.Application{Left: ref("f"), Right: ref("a")}}},
		cursor:     at("x", "value"),
		wantSource: []term.Entry{{Name: "x"}},
		wantCursor: at("x", "value"),
	},
	{
		name: "replaceWithEmptyReference on a reference", op: "replaceWithEmptyReference",
		source:     []term.Entry{{Name: "x", Type: nat}},
		cursor:     at("x", "type"),
		wantSource: []term.Entry{{Name: "x"}},
		wantCursor: at("x", "type"),
	},
	{
		name: "replaceWithEmptyReference after the start of a reference", op: "replaceWithEmptyReference",
		source: []term.Entry{{Name: "x", Type: nat}},
		cursor: Entry{at("x", "type").Path, 3},
	},
	{
		name: "replaceWithEmptyReference after the start of a head", op: "replaceWithEmptyReference",
		source: []term.Entry{{Name: "x", Type: term.Pi{Head: "n", From: nat, To: nat}}},
		cursor: Entry{at("x", "type").Path, 1},
	},
	{
		name: "replaceWithEmptyReference on the empty term", op: "replaceWithEmptyReference",
		source: []term.Entry{{Name: "x"}},
		cursor: at("x", "type"),
	},
	{
		name: "navigateUp", op: "navigateUp",
		source:     []term.Entry{{Name: "x", Value: term.Application{Left: ref("f"), Right: ref("a")}}},
		cursor:     Entry{at("x", "value", "right").Path, 1},
		wantSource: []term.Entry{{Name: "x", Value: term.Application{Left: ref("f"), Right: ref("a")}}},
		wantCursor: at("x", "value"),
	},
	{
		name: "navigateUp at the top of a slot", op: "navigateUp",
		source: []term.Entry{{Name: "x"}},
		cursor: at("x", "value"),
	},
	{
		name: "navigateDown into an application", op: "navigateDown",
		source:     []term.Entry{{Name: "x", Value: term.Application{Left: ref("f"), Right: ref("a")}}},
		cursor:     at("x", "value"),
		wantSource: []term.Entry{{Name: "x", Value: term.Application{Left: ref("f"), Right: ref("a")}}},
		wantCursor: at("x", "value", "left"),
	},
	{
		name: "navigateDown into a binder", op: "navigateDown",
		source:     []term.Entry{{Name: "x", Type: term.Pi{From: nat, To: nat}}},
		cursor:     at("x", "type"),
		wantSource: []term.Entry{{Name: "x", Type: term.Pi{From: nat, To: nat}}},
		wantCursor: at("x", "type", "from"),
	},
	{
		name: "navigateDown on a leaf", op: "navigateDown",
		source: []term.Entry{{Name: "x", Type: nat}},
		cursor: at("x", "type"),
	},
	{
		name: "navigateLeft in an application", op: "navigateLeft",
		source:     []term.Entry{{Name: "x", Value: term.Application{Left: ref("f"), Right: ref("a")}}},
		cursor:     at("x", "value", "right"),
		wantSource: []term.Entry{{Name: "x", Value: term.Application{Left: ref("f"), Right: ref("a")}}},
		wantCursor: at("x", "value", "left"),
	},
	{
		name: "navigateLeft with the caret inside a reference", op: "navigateLeft",
		source: []term.Entry{{Name: "x", Value: term.Application{Left: ref("f"), Right: ref("a")}}},
		cursor: Entry{at("x", "value", "right").Path, 1},
	},
	{
		name: "navigateLeft out of a lambda body", op: "navigateLeft",
		source: []term.Entry{{Name: "x", Value: term.Lambda{Head: "n", From: nat, Body: term.Empty}}},
		cursor: at("x", "value", "body"),
	},
	{
		name: "navigateRight in a let", op: "navigateRight",
		source: []term.Entry{{Name: "x", Value: term.Let{
			Head: "n", From: nat, Left: ref("zero"), Right: term.Empty}}},
		cursor: Entry{at("x", "value", "left").Path, 4},
		wantSource: []term.Entry{{Name: "x", Value: term.Let{
			Head: "n", From: nat, Left: ref("zero"), Right: term.Empty}}},
		wantCursor: at("x", "value", "right"),
	},
	{
		name: "navigateRight in a lambda", op: "navigateRight",
		source:     []term.Entry{{Name: "x", Value: term.Lambda{Head: "n", From: nat, Body: term.Empty}}},
		cursor:     Entry{at("x", "value", "from").Path, 3},
		wantSource: []term.Entry{{Name: "x", Value: term.Lambda{Head: "n", From: nat, Body: term.Empty}}},
		wantCursor: at("x", "value", "body"),
	},
	{
		name: "navigateRight with the caret inside a reference", op: "navigateRight",
		source: []term.Entry{{Name: "x", Value: term.Application{Left: ref("f"), Right: ref("a")}}},
		cursor: at("x", "value", "left"),
	},
	{
		name: "navigateRight at the last child", op: "navigateRight",
		source: []term.Entry{{Name: "x", Type: term.Pi{From: nat, To: term.Empty}}},
		cursor: at("x", "type", "to"),
	},
	{
		name: "navigateIntoRight", op: "navigateIntoRight",
		source:     []term.Entry{{Name: "x", Type: term.Pi{Head: "n", From: nat, To: term.Empty}}},
		cursor:     Entry{at("x", "type", "from").Path, 3},
		wantSource: []term.Entry{{Name: "x", Type: term.Pi{Head: "n", From: nat, To: term.Empty}}},
		wantCursor: at("x", "type", "to"),
	},
	{
		name: "navigateIntoRight outside a pi", op: "navigateIntoRight",
		source: []term.Entry{{Name: "x", Value: term.Lambda{Head: "n", From: nat, Body: term.Empty}}},
		cursor: Entry{at("x", "value", "from").Path, 3},
	},
	{
		name: "paste with an empty clipboard", op: "paste",
		source: []term.Entry{{Name: "x"}},
		cursor: at("x", "type"),
	},
	{
		name: "copy on the new entry input", op: "copy",
		cursor: TopEmpty{},
	},
	{
		name: "suggestionStart on the new entry input", op: "suggestionStart",
		cursor: TopEmpty{},
	},
	{
		name: "suggestionStop without a session", op: "suggestionStop",
		source: []term.Entry{{Name: "x"}},
		cursor: at("x", "type"),
	},
	{
		name: "suggestionChoose without a session", op: "suggestionChoose",
		source: []term.Entry{{Name: "x"}},
		cursor: at("x", "type"),
	},
}

func TestOperations(t *testing.T) {
	for _, test := range operationTests {
		t.Run(test.name, func(t *testing.T) {
			s := stateAt(scope(t, test.source...), test.cursor)
			got, ok, err := Run(s, test.op, Config{})
			if err != nil {
				t.Fatalf("Run returned error %v", err)
			}
			if test.wantCursor == nil {
				if ok {
					t.Errorf("%s applied, want not applicable", test.op)
				}
				return
			}
			if !ok {
				t.Fatalf("%s not applicable", test.op)
			}
			want := SourceState{scope(t, test.wantSource...), test.wantCursor}
			if diff := cmp.Diff(want, current(t, got)); diff != "" {
				t.Errorf("snapshot (-want +got):\n%s", diff)
			}
			if got.History.Index() != 1 {
				t.Errorf("history index = %d, want 1", got.History.Index())
			}
		})
	}
}

func TestRun_UnknownOperation(t *testing.T) {
	_, ok, err := Run(NewState(term.Scope{}), "frobnicate", Config{})
	if ok || err == nil {
		t.Errorf("Run -> %v, %v; want not applied and an error", ok, err)
	}
}

func TestUndoRedo_AlwaysApplicable(t *testing.T) {
	s := NewState(term.Scope{})
	for _, op := range []string{"undo", "redo"} {
		got, ok, err := Run(s, op, Config{})
		if err != nil || !ok {
			t.Fatalf("%s -> %v, %v; want applicable", op, ok, err)
		}
		if got.History.Len() != 1 || got.History.Index() != 0 {
			t.Errorf("%s changed the history", op)
		}
	}
}

func TestCopyPaste(t *testing.T) {
	app := term.Application{Left: ref("f"), Right: ref("a")}
	s := stateAt(scope(t, term.Entry{Name: "x", Value: app}, term.Entry{Name: "y"}), at("x", "value"))
	s, ok, _ := Run(s, "copy", Config{})
	if !ok {
		t.Fatal("copy not applicable")
	}
	if !term.Equal(s.Clipboard, app) {
		t.Errorf("clipboard = %v, want %v", s.Clipboard, app)
	}
	if s.History.Len() != 1 {
		t.Errorf("copy pushed a snapshot")
	}
	s, err := SetCursor(s, at("y", "value").Path)
	if err != nil {
		t.Fatal(err)
	}
	s, ok, _ = Run(s, "paste", Config{})
	if !ok {
		t.Fatal("paste not applicable")
	}
	if got := getNode(t, s, "y", "value"); !term.Equal(got, app) {
		t.Errorf("y.value = %v, want %v", got, app)
	}
	if diff := cmp.Diff(Cursor(at("y", "value")), current(t, s).Cursor); diff != "" {
		t.Errorf("cursor (-want +got):\n%s", diff)
	}
}

func TestOperationNames(t *testing.T) {
	names := OperationNames()
	if len(names) != len(Operations) {
		t.Fatalf("got %d names, want %d", len(names), len(Operations))
	}
	for _, name := range names {
		if Operations[name] == nil {
			t.Errorf("no operation %s", name)
		}
	}
	for k, names := range DefaultBindings() {
		for _, name := range names {
			if _, ok := Operations[name]; !ok {
				t.Errorf("%s is bound to unknown operation %s", k, name)
			}
		}
	}
}
