// Package path implements paths that locate a node inside a term tree or a
// scope entry.
package path

import "strings"

// Labels of term children.
const (
	Left  = "left"
	Right = "right"
	From  = "from"
	To    = "to"
	Body  = "body"
)

// Selectors that follow the entry name in a scope-level path.
const (
	TypeSlot  = "type"
	ValueSlot = "value"
)

// Path is an ordered sequence of labels, relative to some root. Paths are
// values; none of the methods modify the receiver.
type Path []string

// Equals reports whether two paths have the same labels in the same order.
func (p Path) Equals(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// Last returns the last label of the path, and false if the path is empty.
func (p Path) Last() (string, bool) {
	if len(p) == 0 {
		return "", false
	}
	return p[len(p)-1], true
}

// Child returns a new path with label appended. The result never shares its
// backing array with p.
func (p Path) Child(label string) Path {
	q := make(Path, len(p)+1)
	copy(q, p)
	q[len(p)] = label
	return q
}

// Parent returns the path with the last label removed, and false if the path
// is empty.
func (p Path) Parent() (Path, bool) {
	if len(p) == 0 {
		return nil, false
	}
	return p[: len(p)-1 : len(p)-1], true
}

// HasPrefix reports whether q is a prefix of p.
func (p Path) HasPrefix(q Path) bool {
	return len(q) <= len(p) && p[:len(q)].Equals(q)
}

func (p Path) String() string {
	return strings.Join(p, ".")
}
