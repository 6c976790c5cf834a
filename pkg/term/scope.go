package term

import (
	"errors"
	"fmt"

	"src.tyed.sh/pkg/path"
)

// Errors returned by Scope methods.
var (
	ErrEmptyName   = errors.New("empty entry name")
	ErrEntryExists = errors.New("entry already exists")
	ErrNoEntry     = errors.New("no such entry")
	ErrBadSelector = errors.New("selector must be type or value")
)

// Entry is a named top-level definition. An entry whose Value is empty is a
// postulate; an entry whose Type is empty has its type inferred from its
// value.
type Entry struct {
	Name  string
	Type  Term
	Value Term
}

// Slot returns the term stored under the given selector.
func (e Entry) Slot(selector string) (Term, error) {
	switch selector {
	case path.TypeSlot:
		return e.Type, nil
	case path.ValueSlot:
		return e.Value, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrBadSelector, selector)
}

func (e Entry) withSlot(selector string, t Term) (Entry, error) {
	switch selector {
	case path.TypeSlot:
		e.Type = t
	case path.ValueSlot:
		e.Value = t
	default:
		return Entry{}, fmt.Errorf("%w: %q", ErrBadSelector, selector)
	}
	return e, nil
}

// Scope is an ordered collection of uniquely named entries. The zero value is
// an empty scope. A Scope is immutable; methods that change it return a new
// Scope sharing all unchanged terms.
type Scope struct {
	entries []Entry
}

// NewScope builds a scope from the given entries, keeping their order. Nil
// terms are replaced with Empty.
func NewScope(entries ...Entry) (Scope, error) {
	s := Scope{make([]Entry, 0, len(entries))}
	for _, e := range entries {
		if e.Name == "" {
			return Scope{}, ErrEmptyName
		}
		if _, ok := s.Lookup(e.Name); ok {
			return Scope{}, fmt.Errorf("%w: %s", ErrEntryExists, e.Name)
		}
		if e.Type == nil {
			e.Type = Empty
		}
		if e.Value == nil {
			e.Value = Empty
		}
		s.entries = append(s.entries, e)
	}
	return s, nil
}

// Len returns the number of entries.
func (s Scope) Len() int { return len(s.entries) }

// Entries returns a copy of the entries, in order.
func (s Scope) Entries() []Entry {
	return append([]Entry(nil), s.entries...)
}

// Names returns the entry names, in order.
func (s Scope) Names() []string {
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.Name
	}
	return names
}

// Lookup returns the entry with the given name.
func (s Scope) Lookup(name string) (Entry, bool) {
	i := s.index(name)
	if i == -1 {
		return Entry{}, false
	}
	return s.entries[i], true
}

func (s Scope) index(name string) int {
	for i, e := range s.entries {
		if e.Name == name {
			return i
		}
	}
	return -1
}

// Add returns a scope with a new entry with empty type and value appended.
func (s Scope) Add(name string) (Scope, error) {
	if name == "" {
		return Scope{}, ErrEmptyName
	}
	if s.index(name) != -1 {
		return Scope{}, fmt.Errorf("%w: %s", ErrEntryExists, name)
	}
	entries := make([]Entry, len(s.entries), len(s.entries)+1)
	copy(entries, s.entries)
	return Scope{append(entries, Entry{name, Empty, Empty})}, nil
}

// Get returns the node at a scope-level path: the entry name, the selector
// and then a path relative to the selected term.
func (s Scope) Get(p path.Path) (Term, error) {
	e, rest, err := s.resolve(p)
	if err != nil {
		return nil, err
	}
	root, err := e.Slot(p[1])
	if err != nil {
		return nil, err
	}
	return Get(root, rest)
}

// Set returns a scope with the node at a scope-level path replaced.
func (s Scope) Set(p path.Path, n Term) (Scope, error) {
	e, rest, err := s.resolve(p)
	if err != nil {
		return Scope{}, err
	}
	root, err := e.Slot(p[1])
	if err != nil {
		return Scope{}, err
	}
	newRoot, err := Set(root, rest, n)
	if err != nil {
		return Scope{}, err
	}
	newEntry, err := e.withSlot(p[1], newRoot)
	if err != nil {
		return Scope{}, err
	}
	entries := append([]Entry(nil), s.entries...)
	entries[s.index(e.Name)] = newEntry
	return Scope{entries}, nil
}

func (s Scope) resolve(p path.Path) (Entry, path.Path, error) {
	if len(p) < 2 {
		return Entry{}, nil, fmt.Errorf("%w: %q is too short", ErrInvalidPath, p.String())
	}
	e, ok := s.Lookup(p[0])
	if !ok {
		return Entry{}, nil, fmt.Errorf("%w: %s", ErrNoEntry, p[0])
	}
	return e, p[2:], nil
}

// Equal reports whether two scopes have structurally equal entries in the
// same order.
func (s Scope) Equal(other Scope) bool {
	if len(s.entries) != len(other.entries) {
		return false
	}
	for i, e := range s.entries {
		o := other.entries[i]
		if e.Name != o.Name || !Equal(e.Type, o.Type) || !Equal(e.Value, o.Value) {
			return false
		}
	}
	return true
}

// Identifiers returns every name that appears in the scope: entry names,
// references and binder heads. The empty name is not included.
func (s Scope) Identifiers() map[string]bool {
	all := make(map[string]bool)
	var explore func(Term)
	explore = func(t Term) {
		if r, ok := t.(Reference); ok {
			all[r.Identifier] = true
		}
		if head, ok := Head(t); ok {
			all[head] = true
		}
		for _, label := range t.Labels() {
			child, _ := t.Child(label)
			explore(child)
		}
	}
	for _, e := range s.entries {
		all[e.Name] = true
		explore(e.Type)
		explore(e.Value)
	}
	delete(all, "")
	return all
}
