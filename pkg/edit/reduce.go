package edit

import (
	"fmt"
	"unicode/utf8"

	"src.tyed.sh/pkg/edit/complete"
	"src.tyed.sh/pkg/path"
	"src.tyed.sh/pkg/term"
	"src.tyed.sh/pkg/ui"
)

// Config stores the configuration of the reducer. The zero value is a usable
// configuration.
type Config struct {
	// Bindings maps keys to operations. Defaults to DefaultBindings().
	Bindings Bindings
	// Ranker ranks suggestions. Defaults to complete.FuzzyRanker.
	Ranker complete.Ranker
	// TextEditor applies keys to the text of leaves. Defaults to EditText.
	TextEditor TextEditor
}

var defaultBindings = DefaultBindings()

func (cfg Config) bindings() Bindings {
	if cfg.Bindings == nil {
		return defaultBindings
	}
	return cfg.Bindings
}

func (cfg Config) textEditor() TextEditor {
	if cfg.TextEditor == nil {
		return EditText
	}
	return cfg.TextEditor
}

// TextEditor applies a key to a text input. It returns false when the key
// leaves the input unchanged.
type TextEditor func(in Input, k ui.Key) (Input, bool)

// EditText is the default TextEditor. It inserts characters typed without
// Ctrl or Alt, and handles the arrow keys, Home, End, Backspace and Delete.
// The caret moves by runes.
func EditText(in Input, k ui.Key) (Input, bool) {
	text, offset := in.Text, clampOffset(in.Text, in.Offset)
	out := Input{text, offset}
	switch {
	case k.IsChar() && k.Mod&^ui.Shift == 0:
		out = Input{text[:offset] + k.Name + text[offset:], offset + len(k.Name)}
	case k.Mod != 0:
		// Not a text edit.
	case k.Name == ui.ArrowLeft && offset > 0:
		_, n := utf8.DecodeLastRuneInString(text[:offset])
		out.Offset -= n
	case k.Name == ui.ArrowRight && offset < len(text):
		_, n := utf8.DecodeRuneInString(text[offset:])
		out.Offset += n
	case k.Name == ui.Home:
		out.Offset = 0
	case k.Name == ui.End:
		out.Offset = len(text)
	case k.Name == ui.Backspace && offset > 0:
		_, n := utf8.DecodeLastRuneInString(text[:offset])
		out = Input{text[:offset-n] + text[offset:], offset - n}
	case k.Name == ui.Delete && offset < len(text):
		_, n := utf8.DecodeRuneInString(text[offset:])
		out.Text = text[:offset] + text[offset+n:]
	}
	return out, out != in
}

// Reduce returns the state after the given key press. The operations bound to
// the key are tried in order and the first one that applies wins. If none
// applies, the key edits the text under the cursor. If that does not change
// anything either, the state is returned unchanged.
func Reduce(s State, k ui.Key, cfg Config) State {
	s, _ = Dispatch(s, k, cfg)
	return s
}

// Dispatch is like Reduce, and also returns the name of the operation that
// was applied. The name is empty when the key edited text or did nothing.
func Dispatch(s State, k ui.Key, cfg Config) (State, string) {
	on, err := NewOnEditor(s, cfg)
	if err != nil {
		logger.Println("reduce:", err)
		return s, ""
	}
	for _, name := range cfg.bindings().Lookup(k) {
		op, ok := Operations[name]
		if !ok {
			logger.Printf("key %s bound to unknown operation %s", k, name)
			continue
		}
		if next, ok := op(on); ok {
			logger.Printf("key %s: %s", k, name)
			return next, name
		}
	}
	if next, ok := editLeaf(on, k, cfg.textEditor()); ok {
		return next, ""
	}
	return s, ""
}

// Run applies the named operation. It returns false when the operation does
// not apply.
func Run(s State, name string, cfg Config) (State, bool, error) {
	op, ok := Operations[name]
	if !ok {
		return s, false, fmt.Errorf("%w %q", ErrUnknownOperation, name)
	}
	on, err := NewOnEditor(s, cfg)
	if err != nil {
		return s, false, err
	}
	next, ok := op(on)
	if !ok {
		return s, false, nil
	}
	return next, true, nil
}

func editLeaf(on *OnEditor, k ui.Key, edit TextEditor) (State, bool) {
	switch cursor := on.Cursor.(type) {
	case TopEmpty:
		in, ok := edit(cursor.Input, k)
		if !ok {
			return State{}, false
		}
		return on.do(on.Source, TopEmpty{in}), true
	case Entry:
		text, ok := leafText(on.Current)
		if !ok {
			return State{}, false
		}
		in, ok := edit(Input{text, cursor.Offset}, k)
		if !ok {
			return State{}, false
		}
		if in.Text == text {
			return on.do(on.Source, Entry{cursor.Path, in.Offset}), true
		}
		n, _ := withLeafText(on.Current, in.Text)
		return on.set(n, Entry{cursor.Path, in.Offset})
	}
	return State{}, false
}

// SetCursor returns the state with the cursor moved to the node at the given
// path, with the caret at the start.
func SetCursor(s State, p path.Path) (State, error) {
	current, err := s.Current()
	if err != nil {
		return s, err
	}
	if _, err := current.Source.Get(p); err != nil {
		return s, err
	}
	next := s.closeSuggestions()
	next.History = next.History.Do(SourceState{current.Source, Entry{Path: p}})
	return next, nil
}

// Load returns the state with the source replaced and the cursor on an empty
// new entry input. The replaced source stays in the history.
func Load(s State, source term.Scope) State {
	next := s.closeSuggestions()
	next.History = next.History.Do(SourceState{source, TopEmpty{}})
	return next
}

// Shortcut is a key along with the operation it would apply.
type Shortcut struct {
	Key       ui.Key
	Operation string
}

// Shortcuts returns the keys that would apply an operation in the given
// state, sorted by key.
func Shortcuts(s State, cfg Config) []Shortcut {
	on, err := NewOnEditor(s, cfg)
	if err != nil {
		logger.Println("shortcuts:", err)
		return nil
	}
	bindings := cfg.bindings()
	var shortcuts []Shortcut
	for _, k := range bindings.Keys() {
		for _, name := range bindings[k] {
			if op, ok := Operations[name]; ok {
				if _, ok := op(on); ok {
					shortcuts = append(shortcuts, Shortcut{k, name})
					break
				}
			}
		}
	}
	return shortcuts
}
