// Package edit implements the structural editor: its state, the operations
// that transform it and the reducer that maps keys to operations.
package edit

import (
	"unicode/utf8"

	"src.tyed.sh/pkg/histutil"
	"src.tyed.sh/pkg/logutil"
	"src.tyed.sh/pkg/path"
	"src.tyed.sh/pkg/term"
)

var logger = logutil.GetLogger("[edit] ")

// Input is the state of a single-line text input.
type Input struct {
	Text string
	// Offset is the byte offset of the caret in Text.
	Offset int
}

// AtStart reports whether the caret is before the first character.
func (in Input) AtStart() bool { return in.Offset <= 0 }

// AtEnd reports whether the caret is after the last character.
func (in Input) AtEnd() bool { return in.Offset >= len(in.Text) }

// Cursor is where the focus of the editor is. It is either a TopEmpty or an
// Entry.
type Cursor interface{ isCursor() }

// TopEmpty is the cursor for the input of a new entry name, which is not
// part of the source yet.
type TopEmpty struct{ Input Input }

// Entry is the cursor on a node of the source.
type Entry struct {
	// Path of the node, starting with the entry name and the slot.
	Path path.Path
	// Offset is the caret position in the text of the node, meaningful for
	// references and binder heads.
	Offset int
}

func (TopEmpty) isCursor() {}
func (Entry) isCursor()    {}

// SourceState is a snapshot of the history.
type SourceState struct {
	Source term.Scope
	Cursor Cursor
}

// State is the whole state of the editor.
type State struct {
	History histutil.History[SourceState]
	// Suggesting is true when a suggestion session is open, in which case
	// SuggestionIndex is the selected suggestion.
	Suggesting      bool
	SuggestionIndex int
	// Clipboard is nil when nothing has been copied.
	Clipboard term.Term
}

// NewState returns the state of an editor on the given source, with the
// cursor on an empty new entry input.
func NewState(s term.Scope) State {
	return State{History: histutil.New(SourceState{s, TopEmpty{}})}
}

// Current returns the current snapshot.
func (s State) Current() (SourceState, error) { return s.History.Current() }

func (s State) closeSuggestions() State {
	s.Suggesting, s.SuggestionIndex = false, 0
	return s
}

// leafText returns the editable text of t: the identifier of a reference or
// the head of a binder.
func leafText(t term.Term) (string, bool) {
	if r, ok := t.(term.Reference); ok {
		return r.Identifier, true
	}
	return term.Head(t)
}

func withLeafText(t term.Term, text string) (term.Term, bool) {
	if _, ok := t.(term.Reference); ok {
		return term.Reference{Identifier: text}, true
	}
	return term.WithHead(t, text)
}

// clampOffset returns offset limited to the bounds of text and moved back to
// the start of a rune.
func clampOffset(text string, offset int) int {
	offset = max(0, min(offset, len(text)))
	for offset > 0 && offset < len(text) && !utf8.RuneStart(text[offset]) {
		offset--
	}
	return offset
}
