package edit

import (
	"strconv"

	"src.tyed.sh/pkg/compute"
	"src.tyed.sh/pkg/diag"
	"src.tyed.sh/pkg/edit/complete"
	"src.tyed.sh/pkg/path"
	"src.tyed.sh/pkg/term"
)

// View is what a renderer needs to display the editor.
type View struct {
	Entries []EntryView `json:"entries"`
	// Input is the new entry input, set when it has the focus.
	Input *Input `json:"input,omitempty"`
	// Suggestions are listed while a suggestion session is open.
	Suggestions     []SuggestionView `json:"suggestions,omitempty"`
	SuggestionIndex int              `json:"suggestionIndex"`
	Shortcuts       []ShortcutView   `json:"shortcuts,omitempty"`
	// Diagnostics has all type errors, including those not attached to any
	// node.
	Diagnostics []*diag.Error `json:"-"`
	CanUndo     bool          `json:"canUndo"`
	CanRedo     bool          `json:"canRedo"`
}

// EntryView is the view of an entry of the source.
type EntryView struct {
	Name  string    `json:"name"`
	Type  *ViewNode `json:"type"`
	Value *ViewNode `json:"value"`
}

// ViewNode is the view of a node. Clicking it should move the cursor to
// Path.
type ViewNode struct {
	Path path.Path `json:"path"`
	Term term.Term `json:"-"`
	Kind string    `json:"kind"`
	// Text is the identifier of a reference, the head of a binder or the
	// universe of a type.
	Text      string `json:"text"`
	HasCursor bool   `json:"hasCursor,omitempty"`
	// Caret is the caret offset in Text when the node has the cursor.
	Caret       int           `json:"caret,omitempty"`
	Diagnostics []*diag.Error `json:"-"`
	Messages    []string      `json:"messages,omitempty"`
	Children    []*ViewNode   `json:"children,omitempty"`
}

// SuggestionView is the view of a suggestion.
type SuggestionView struct {
	Identifier string `json:"identifier"`
	Type       string `json:"type,omitempty"`
	Match      string `json:"match"`
}

// ShortcutView is the view of a Shortcut.
type ShortcutView struct {
	Key       string `json:"key"`
	Operation string `json:"operation"`
}

// Render builds the view of a state. Type errors come from checking the whole
// source.
func Render(s State, cfg Config) (View, error) {
	on, err := NewOnEditor(s, cfg)
	if err != nil {
		return View{}, err
	}
	diags := compute.Check(compute.Prepare(on.Source))
	byPath := make(map[string][]*diag.Error)
	for _, d := range diags {
		if d.Path != nil {
			byPath[d.Path.String()] = append(byPath[d.Path.String()], d)
		}
	}
	r := renderer{on.Cursor, byPath}
	v := View{Diagnostics: diags, CanUndo: on.CanUndo, CanRedo: on.CanRedo}
	for _, e := range on.Source.Entries() {
		v.Entries = append(v.Entries, EntryView{
			Name:  e.Name,
			Type:  r.render(e.Type, path.Path{e.Name, path.TypeSlot}),
			Value: r.render(e.Value, path.Path{e.Name, path.ValueSlot}),
		})
	}
	if top, ok := on.Cursor.(TopEmpty); ok {
		in := top.Input
		v.Input = &in
	}
	if s.Suggesting {
		v.SuggestionIndex = s.SuggestionIndex
		for _, sg := range on.Suggestions() {
			v.Suggestions = append(v.Suggestions, viewSuggestion(sg))
		}
	}
	for _, sc := range Shortcuts(s, cfg) {
		v.Shortcuts = append(v.Shortcuts, ShortcutView{sc.Key.String(), sc.Operation})
	}
	return v, nil
}

type renderer struct {
	cursor Cursor
	diags  map[string][]*diag.Error
}

func (r renderer) render(t term.Term, p path.Path) *ViewNode {
	n := &ViewNode{Path: p, Term: t, Kind: term.Kind(t), Diagnostics: r.diags[p.String()]}
	if text, ok := leafText(t); ok {
		n.Text = text
	} else if ty, ok := t.(term.Type); ok {
		n.Text = strconv.Itoa(ty.Universe)
	}
	if entry, ok := r.cursor.(Entry); ok && entry.Path.Equals(p) {
		n.HasCursor = true
		n.Caret = entry.Offset
	}
	for _, d := range n.Diagnostics {
		n.Messages = append(n.Messages, d.Error())
	}
	for _, label := range t.Labels() {
		child, _ := t.Child(label)
		n.Children = append(n.Children, r.render(child, p.Child(label)))
	}
	return n
}

func viewSuggestion(s complete.Suggestion) SuggestionView {
	v := SuggestionView{Identifier: s.Identifier, Match: s.Match.String()}
	if s.Type != nil {
		v.Type = s.Type.String()
	}
	return v
}
