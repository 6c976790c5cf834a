package edit

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"src.tyed.sh/pkg/ui"
)

// Errors returned when loading a keymap.
var (
	ErrUnknownOperation = errors.New("unknown operation")
	ErrEmptyBinding     = errors.New("empty binding")
)

// Bindings maps keys to the names of the operations to try, in order.
type Bindings map[ui.Key][]string

// DefaultBindings returns a new copy of the default key bindings.
func DefaultBindings() Bindings {
	return Bindings{
		ui.K(ui.Enter):      {"addEntry", "suggestionChoose", "turnIntoType", "suggestionQuickChooseFirst"},
		ui.K(ui.Escape):     {"suggestionStop", "resetCursor"},
		ui.K(":"):           {"addEntryThenCursorToType", "moveCursorToType", "turnIntoPiHeadThenCursorToFrom"},
		ui.K("="):           {"addEntryThenCursorToValue", "moveCursorToValue", "turnIntoLambdaHeadThenCursorToFrom"},
		ui.K("-"):           {"turnIntoPiFromThenCursorToTo"},
		ui.K(ui.Space):      {"turnIntoApplicationLeftThenCursorToRight"},
		ui.K(";"):           {"turnIntoLetHeadThenCursorToFrom"},
		ui.K(ui.ArrowLeft):  {"navigateLeft"},
		ui.K(ui.ArrowRight): {"navigateRight"},
		ui.K(ui.ArrowUp):    {"suggestionUp", "navigateUp"},
		ui.K(ui.ArrowDown):  {"suggestionDown", "navigateDown"},
		ui.K(ui.Tab):        {"navigateIntoRight"},
		ui.K(ui.Backspace):  {"replaceWithEmptyReference"},

		ui.K("z", ui.Ctrl):           {"undo"},
		ui.K("z", ui.Ctrl, ui.Shift): {"redo"},
		ui.K(ui.Space, ui.Ctrl):      {"suggestionStart"},
		ui.K("c", ui.Ctrl):           {"copy"},
		ui.K("v", ui.Ctrl):           {"paste"},
	}
}

// Lookup returns the operation names bound to k. It tries the exact key, then
// the key with its name lowercased, then the key without modifiers.
func (b Bindings) Lookup(k ui.Key) []string {
	for _, candidate := range [...]ui.Key{k, k.Lower(), k.Bare()} {
		if names, ok := b[candidate]; ok {
			return names
		}
	}
	return nil
}

// Keys returns the bound keys, sorted.
func (b Bindings) Keys() ui.Keys {
	keys := make(ui.Keys, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	keys.Sort()
	return keys
}

// keymapFile is the YAML form of a keymap.
type keymapFile struct {
	Bindings map[string][]string `yaml:"bindings"`
}

// LoadKeymap reads a YAML keymap and returns the default bindings overridden
// by it. A keymap looks like this:
//
//	bindings:
//	  Ctrl-y: [redo]
//	  Enter: [addEntry, suggestionChoose]
//
// Unknown keys or operation names and empty lists of operations are errors.
func LoadKeymap(r io.Reader) (Bindings, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var raw keymapFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return DefaultBindings(), nil
		}
		return nil, fmt.Errorf("keymap: %w", err)
	}
	b := DefaultBindings()
	for name, ops := range raw.Bindings {
		k, err := ui.ParseKey(name)
		if err != nil {
			return nil, fmt.Errorf("keymap: %w", err)
		}
		if len(ops) == 0 {
			return nil, fmt.Errorf("keymap: %w for %s", ErrEmptyBinding, k)
		}
		for _, op := range ops {
			if _, ok := Operations[op]; !ok {
				return nil, fmt.Errorf("keymap: %w %q for %s", ErrUnknownOperation, op, k)
			}
		}
		b[k] = append([]string(nil), ops...)
	}
	return b, nil
}
