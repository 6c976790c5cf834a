package edit

import (
	"src.tyed.sh/pkg/compute"
	"src.tyed.sh/pkg/edit/complete"
	"src.tyed.sh/pkg/histutil"
	"src.tyed.sh/pkg/path"
	"src.tyed.sh/pkg/term"
)

// OnEditor is a view of a State that operations work on. It is derived from
// the current snapshot of the history.
type OnEditor struct {
	State  State
	Source term.Scope
	Cursor Cursor
	// Current is the node under an Entry cursor. It is nil for a TopEmpty
	// cursor.
	Current term.Term
	// Parent is the node containing Current, and nil when Current is the
	// whole type or value of an entry.
	Parent     term.Term
	ParentPath path.Path

	CanUndo, CanRedo bool

	ranker      complete.Ranker
	suggestions []complete.Suggestion
	suggested   bool
}

// NewOnEditor derives an OnEditor from a State. It fails when the cursor
// does not point to a node of the source.
func NewOnEditor(s State, cfg Config) (*OnEditor, error) {
	current, err := s.Current()
	if err != nil {
		return nil, err
	}
	on := &OnEditor{
		State:   s,
		Source:  current.Source,
		Cursor:  current.Cursor,
		CanUndo: s.History.CanUndo(),
		CanRedo: s.History.CanRedo(),
		ranker:  cfg.Ranker,
	}
	entry, ok := current.Cursor.(Entry)
	if !ok {
		return on, nil
	}
	on.Current, err = current.Source.Get(entry.Path)
	if err != nil {
		return nil, err
	}
	// The first two labels are the entry name and the slot; they do not name
	// nodes.
	if len(entry.Path) > 2 {
		on.ParentPath, _ = entry.Path.Parent()
		on.Parent, err = current.Source.Get(on.ParentPath)
		if err != nil {
			return nil, err
		}
	}
	return on, nil
}

// Entry returns the cursor if it is an Entry.
func (on *OnEditor) Entry() (Entry, bool) {
	e, ok := on.Cursor.(Entry)
	return e, ok
}

// Query returns the text typed at the cursor that suggestions are ranked
// against.
func (on *OnEditor) Query() string {
	if r, ok := on.Current.(term.Reference); ok {
		return r.Identifier
	}
	return ""
}

// Suggestions returns the suggestions for the node under the cursor. They
// are computed on the first call.
func (on *OnEditor) Suggestions() []complete.Suggestion {
	if on.suggested {
		return on.suggestions
	}
	on.suggested = true
	entry, ok := on.Entry()
	if !ok {
		return nil
	}
	suggestions, err := complete.Suggest(compute.Prepare(on.Source), entry.Path,
		on.Query(), complete.Config{Ranker: on.ranker})
	if err != nil {
		logger.Println("suggest:", err)
		return nil
	}
	on.suggestions = suggestions
	return suggestions
}

// Undo returns the history moved one step back.
func (on *OnEditor) Undo() (histutil.History[SourceState], error) {
	return on.State.History.Undo()
}

// Redo returns the history moved one step forward.
func (on *OnEditor) Redo() (histutil.History[SourceState], error) {
	return on.State.History.Redo()
}

// Do returns the state with the given snapshot pushed to the history. The
// suggestion session is closed and the clipboard is kept.
func (on *OnEditor) Do(s SourceState) State {
	st := on.State.closeSuggestions()
	st.History = st.History.Do(s)
	return st
}

func (on *OnEditor) do(source term.Scope, cursor Cursor) State {
	return on.Do(SourceState{source, cursor})
}

// set replaces the node at the cursor and moves the cursor.
func (on *OnEditor) set(n term.Term, cursor Cursor) (State, bool) {
	entry, ok := on.Entry()
	if !ok {
		return State{}, false
	}
	source, err := on.Source.Set(entry.Path, n)
	if err != nil {
		logger.Println("set:", err)
		return State{}, false
	}
	return on.do(source, cursor), true
}
