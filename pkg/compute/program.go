package compute

import (
	"fmt"

	"src.tyed.sh/pkg/path"
	"src.tyed.sh/pkg/term"
)

// Entry is a prepared scope entry.
type Entry struct {
	Name  string
	Type  Term
	Value Term
}

// Program is a prepared scope. It is immutable.
type Program struct {
	scope   term.Scope
	entries []Entry
	index   map[string]int
}

// Prepare annotates every entry of a scope. Each entry's type and value are
// prepared in the empty lexical environment, at paths rooted at the entry
// name and its slot.
func Prepare(s term.Scope) *Program {
	p := &Program{scope: s, index: make(map[string]int)}
	for i, e := range s.Entries() {
		p.entries = append(p.entries, Entry{
			Name:  e.Name,
			Type:  PrepareTerm(e.Type, EmptyEnv, path.Path{e.Name, path.TypeSlot}),
			Value: PrepareTerm(e.Value, EmptyEnv, path.Path{e.Name, path.ValueSlot}),
		})
		p.index[e.Name] = i
	}
	return p
}

// Scope returns the scope the program was prepared from.
func (p *Program) Scope() term.Scope { return p.scope }

// Names returns the entry names in scope order.
func (p *Program) Names() []string { return p.scope.Names() }

// Entries returns the prepared entries in scope order.
func (p *Program) Entries() []Entry { return append([]Entry(nil), p.entries...) }

// Entry returns the prepared entry with the given name.
func (p *Program) Entry(name string) (Entry, bool) {
	i, ok := p.index[name]
	if !ok {
		return Entry{}, false
	}
	return p.entries[i], true
}

// Get returns the prepared node at a scope-level path.
func (p *Program) Get(at path.Path) (Term, error) {
	if len(at) < 2 {
		return nil, fmt.Errorf("%w: %q is too short", term.ErrInvalidPath, at.String())
	}
	e, ok := p.Entry(at[0])
	if !ok {
		return nil, fmt.Errorf("%w: %s", term.ErrNoEntry, at[0])
	}
	var t Term
	switch at[1] {
	case path.TypeSlot:
		t = e.Type
	case path.ValueSlot:
		t = e.Value
	default:
		return nil, fmt.Errorf("%w: %q", term.ErrBadSelector, at[1])
	}
	for _, label := range at[2:] {
		c, ok := Child(t, label)
		if !ok {
			return nil, fmt.Errorf("%w: no %q in %s", term.ErrInvalidPath, label, term.Kind(Unprepare(t)))
		}
		t = c
	}
	return t, nil
}
