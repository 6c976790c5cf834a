package edit

import (
	"sync"

	"src.tyed.sh/pkg/path"
	"src.tyed.sh/pkg/term"
	"src.tyed.sh/pkg/ui"
)

// Editor holds a State and serializes the events applied to it. It is safe
// for concurrent use.
type Editor struct {
	cfg Config

	StateMutex sync.RWMutex
	State      State
}

// NewEditor creates an Editor on an empty source.
func NewEditor(cfg Config) *Editor {
	return &Editor{cfg: cfg, State: NewState(term.Scope{})}
}

// Handle applies a key press and returns the name of the operation applied,
// or "" if the key edited text or did nothing.
func (ed *Editor) Handle(k ui.Key) string {
	ed.StateMutex.Lock()
	defer ed.StateMutex.Unlock()
	var name string
	ed.State, name = Dispatch(ed.State, k, ed.cfg)
	return name
}

// SetCursor moves the cursor to the node at the given path.
func (ed *Editor) SetCursor(p path.Path) error {
	ed.StateMutex.Lock()
	defer ed.StateMutex.Unlock()
	s, err := SetCursor(ed.State, p)
	if err != nil {
		return err
	}
	ed.State = s
	return nil
}

// Load replaces the source.
func (ed *Editor) Load(s term.Scope) {
	ed.StateMutex.Lock()
	defer ed.StateMutex.Unlock()
	ed.State = Load(ed.State, s)
}

// Run applies the named operation and reports whether it applied.
func (ed *Editor) Run(name string) (bool, error) {
	ed.StateMutex.Lock()
	defer ed.StateMutex.Unlock()
	s, ok, err := Run(ed.State, name, ed.cfg)
	if ok {
		ed.State = s
	}
	return ok, err
}

// CopyState returns a copy of the state. States share structure but are never
// modified, so the copy is independent of later events.
func (ed *Editor) CopyState() State {
	ed.StateMutex.RLock()
	defer ed.StateMutex.RUnlock()
	return ed.State
}

// Source returns the current source.
func (ed *Editor) Source() term.Scope {
	current, err := ed.CopyState().Current()
	if err != nil {
		return term.Scope{}
	}
	return current.Source
}

// View renders the current state.
func (ed *Editor) View() (View, error) {
	return Render(ed.CopyState(), ed.cfg)
}
