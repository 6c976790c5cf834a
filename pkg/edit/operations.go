package edit

import (
	"regexp"
	"sort"
	"strconv"

	"src.tyed.sh/pkg/path"
	"src.tyed.sh/pkg/term"
)

// Operation is a guarded transition of the editor state. It returns false,
// leaving the state alone, when it does not apply.
type Operation func(on *OnEditor) (State, bool)

// Operations maps the names of all operations to their implementations.
var Operations = map[string]Operation{
	"addEntry":                  addEntryThen(""),
	"addEntryThenCursorToType":  addEntryThen(path.TypeSlot),
	"addEntryThenCursorToValue": addEntryThen(path.ValueSlot),
	"moveCursorToType":          moveCursorTo(path.TypeSlot),
	"moveCursorToValue":         moveCursorTo(path.ValueSlot),
	"resetCursor":               resetCursor,

	"turnIntoType":                             turnIntoType,
	"turnIntoPiHeadThenCursorToFrom":           turnIntoBinder(newPi),
	"turnIntoLambdaHeadThenCursorToFrom":       turnIntoBinder(newLambda),
	"turnIntoLetHeadThenCursorToFrom":          turnIntoBinder(newLet),
	"turnIntoPiFromThenCursorToTo":             turnIntoPiFrom,
	"turnIntoApplicationLeftThenCursorToRight": turnIntoApplicationLeft,
	"replaceWithEmptyReference":                replaceWithEmptyReference,

	"navigateUp":        navigateUp,
	"navigateDown":      navigateDown,
	"navigateLeft":      navigateLeft,
	"navigateRight":     navigateRight,
	"navigateIntoRight": navigateIntoRight,

	"undo": undo,
	"redo": redo,

	"suggestionStart":            suggestionStart,
	"suggestionStop":             suggestionStop,
	"suggestionUp":               suggestionMove(-1),
	"suggestionDown":             suggestionMove(+1),
	"suggestionChoose":           suggestionChoose,
	"suggestionQuickChooseFirst": suggestionQuickChooseFirst,

	"copy":  copyNode,
	"paste": paste,
}

// OperationNames returns the names of all operations in sorted order.
func OperationNames() []string {
	names := make([]string, 0, len(Operations))
	for name := range Operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func addEntryThen(slot string) Operation {
	return func(on *OnEditor) (State, bool) {
		top, ok := on.Cursor.(TopEmpty)
		if !ok || !top.Input.AtEnd() {
			return State{}, false
		}
		name := top.Input.Text
		source, err := on.Source.Add(name)
		if err != nil {
			return State{}, false
		}
		if slot == "" {
			return on.do(source, TopEmpty{}), true
		}
		return on.do(source, Entry{Path: path.Path{name, slot}}), true
	}
}

func moveCursorTo(slot string) Operation {
	return func(on *OnEditor) (State, bool) {
		top, ok := on.Cursor.(TopEmpty)
		if !ok || !top.Input.AtEnd() {
			return State{}, false
		}
		name := top.Input.Text
		if _, ok := on.Source.Lookup(name); !ok {
			return State{}, false
		}
		return on.do(on.Source, Entry{Path: path.Path{name, slot}}), true
	}
}

func resetCursor(on *OnEditor) (State, bool) {
	if _, ok := on.Entry(); !ok {
		return State{}, false
	}
	return on.do(on.Source, TopEmpty{}), true
}

var universePattern = regexp.MustCompile(`^type([0-9]+)?$`)

func turnIntoType(on *OnEditor) (State, bool) {
	entry, ok := on.Entry()
	r, isRef := on.Current.(term.Reference)
	if !ok || !isRef || entry.Offset != len(r.Identifier) {
		return State{}, false
	}
	m := universePattern.FindStringSubmatch(r.Identifier)
	if m == nil {
		return State{}, false
	}
	universe := 1
	if m[1] != "" {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return State{}, false
		}
		if n > 0 {
			universe = n
		}
	}
	return on.set(term.Type{Universe: universe}, entry)
}

func newPi(head string) term.Term {
	return term.Pi{Head: head, From: term.Empty, To: term.Empty}
}

func newLambda(head string) term.Term {
	return term.Lambda{Head: head, From: term.Empty, Body: term.Empty}
}

func newLet(head string) term.Term {
	return term.Let{Head: head, From: term.Empty, Left: term.Empty, Right: term.Empty}
}

// turnIntoBinder turns a reference into a binder whose head is the
// identifier, and moves the cursor to the binder's type.
func turnIntoBinder(newBinder func(head string) term.Term) Operation {
	return func(on *OnEditor) (State, bool) {
		entry, ok := on.Entry()
		r, isRef := on.Current.(term.Reference)
		if !ok || !isRef {
			return State{}, false
		}
		return on.set(newBinder(r.Identifier), Entry{Path: entry.Path.Child(path.From)})
	}
}

func turnIntoPiFrom(on *OnEditor) (State, bool) {
	entry, ok := on.Entry()
	if !ok {
		return State{}, false
	}
	return on.set(term.Pi{From: on.Current, To: term.Empty},
		Entry{Path: entry.Path.Child(path.To)})
}

func turnIntoApplicationLeft(on *OnEditor) (State, bool) {
	entry, ok := on.Entry()
	if !ok {
		return State{}, false
	}
	return on.set(term.Application{Left: on.Current, Right: term.Empty},
		Entry{Path: entry.Path.Child(path.Right)})
}

// replaceWithEmptyReference clears the node under the cursor. On a
// reference or a binder, the caret must be at the start of its text.
func replaceWithEmptyReference(on *OnEditor) (State, bool) {
	entry, ok := on.Entry()
	if !ok || term.IsEmpty(on.Current) {
		return State{}, false
	}
	if _, isLeaf := leafText(on.Current); isLeaf && entry.Offset != 0 {
		return State{}, false
	}
	return on.set(term.Empty, Entry{Path: entry.Path})
}

func navigateUp(on *OnEditor) (State, bool) {
	if on.ParentPath == nil {
		return State{}, false
	}
	return on.do(on.Source, Entry{Path: on.ParentPath}), true
}

func navigateDown(on *OnEditor) (State, bool) {
	entry, ok := on.Entry()
	if !ok {
		return State{}, false
	}
	var label string
	switch on.Current.(type) {
	case term.Application:
		label = path.Left
	case term.Pi, term.Lambda, term.Let:
		label = path.From
	default:
		return State{}, false
	}
	return on.do(on.Source, Entry{Path: entry.Path.Child(label)}), true
}

// leftOf and rightOf map, per kind of parent, the label of a child to the
// label of the child reached by navigating left or right.
var (
	leftOf = map[string]map[string]string{
		"application": {path.Right: path.Left},
		"pi":          {path.To: path.From},
	}
	rightOf = map[string]map[string]string{
		"application": {path.Left: path.Right},
		"pi":          {path.From: path.To},
		"lambda":      {path.From: path.Body},
		"let":         {path.From: path.Left, path.Left: path.Right},
	}
)

func navigateLeft(on *OnEditor) (State, bool) {
	entry, ok := on.Entry()
	if !ok {
		return State{}, false
	}
	if _, isLeaf := leafText(on.Current); isLeaf && entry.Offset != 0 {
		return State{}, false
	}
	return on.navigateSibling(entry, leftOf)
}

func navigateRight(on *OnEditor) (State, bool) {
	entry, ok := on.Entry()
	if !ok {
		return State{}, false
	}
	if text, isLeaf := leafText(on.Current); isLeaf && entry.Offset != len(text) {
		return State{}, false
	}
	return on.navigateSibling(entry, rightOf)
}

func (on *OnEditor) navigateSibling(entry Entry, table map[string]map[string]string) (State, bool) {
	if on.Parent == nil {
		return State{}, false
	}
	label, _ := entry.Path.Last()
	to, ok := table[term.Kind(on.Parent)][label]
	if !ok {
		return State{}, false
	}
	return on.do(on.Source, Entry{Path: on.ParentPath.Child(to)}), true
}

// navigateIntoRight jumps from the end of a reference typed as the domain of
// a Pi to its codomain.
func navigateIntoRight(on *OnEditor) (State, bool) {
	entry, ok := on.Entry()
	r, isRef := on.Current.(term.Reference)
	if !ok || !isRef || entry.Offset != len(r.Identifier) {
		return State{}, false
	}
	if _, isPi := on.Parent.(term.Pi); !isPi {
		return State{}, false
	}
	if label, _ := entry.Path.Last(); label != path.From {
		return State{}, false
	}
	return on.do(on.Source, Entry{Path: on.ParentPath.Child(path.To)}), true
}

func undo(on *OnEditor) (State, bool) {
	h, err := on.Undo()
	if err != nil {
		return on.State, true
	}
	st := on.State.closeSuggestions()
	st.History = h
	return st, true
}

func redo(on *OnEditor) (State, bool) {
	h, err := on.Redo()
	if err != nil {
		return on.State, true
	}
	st := on.State.closeSuggestions()
	st.History = h
	return st, true
}

func suggestionStart(on *OnEditor) (State, bool) {
	if _, ok := on.Entry(); !ok {
		return State{}, false
	}
	st := on.State
	if !st.Suggesting {
		st.Suggesting, st.SuggestionIndex = true, 0
	}
	return st, true
}

func suggestionStop(on *OnEditor) (State, bool) {
	if !on.State.Suggesting {
		return State{}, false
	}
	return on.State.closeSuggestions(), true
}

func suggestionMove(delta int) Operation {
	return func(on *OnEditor) (State, bool) {
		if !on.State.Suggesting {
			return State{}, false
		}
		st := on.State
		if n := len(on.Suggestions()); n > 0 {
			st.SuggestionIndex = ((st.SuggestionIndex+delta)%n + n) % n
		}
		return st, true
	}
}

func suggestionChoose(on *OnEditor) (State, bool) {
	if !on.State.Suggesting {
		return State{}, false
	}
	return chooseSuggestion(on, on.State.SuggestionIndex)
}

func suggestionQuickChooseFirst(on *OnEditor) (State, bool) {
	return chooseSuggestion(on, 0)
}

func chooseSuggestion(on *OnEditor, i int) (State, bool) {
	entry, ok := on.Entry()
	if _, isRef := on.Current.(term.Reference); !ok || !isRef {
		return State{}, false
	}
	suggestions := on.Suggestions()
	if i < 0 || i >= len(suggestions) {
		return State{}, false
	}
	id := suggestions[i].Identifier
	return on.set(term.Reference{Identifier: id}, Entry{Path: entry.Path, Offset: len(id)})
}

func copyNode(on *OnEditor) (State, bool) {
	if on.Current == nil {
		return State{}, false
	}
	st := on.State.closeSuggestions()
	st.Clipboard = on.Current
	return st, true
}

func paste(on *OnEditor) (State, bool) {
	entry, ok := on.Entry()
	if !ok || on.State.Clipboard == nil {
		return State{}, false
	}
	return on.set(on.State.Clipboard, Entry{Path: entry.Path})
}
