// Package term implements the source representation of programs: an
// immutable tree of terms and the top-level scope of named entries.
//
// Terms are never modified after construction. Every edit builds a new tree
// that shares all unchanged subtrees with the old one.
package term

import (
	"errors"
	"fmt"

	"src.tyed.sh/pkg/path"
)

// ErrInvalidPath is returned when a path label does not name a child of the
// node it is applied to.
var ErrInvalidPath = errors.New("invalid path")

// Term is a node of the source tree. It is implemented by Type, Reference,
// Application, Pi, Lambda and Let.
type Term interface {
	fmt.Stringer
	// Labels returns the labels of the children of the term, in display
	// order.
	Labels() []string
	// Child returns the child with the given label.
	Child(label string) (Term, bool)
	// WithChild returns a copy of the term with the child with the given
	// label replaced.
	WithChild(label string, t Term) (Term, bool)
	isTerm()
}

// Type is a universe.
type Type struct {
	Universe int
}

// Reference refers to a bound variable or a top-level entry by name.
type Reference struct {
	Identifier string
}

// Application applies Left to Right.
type Application struct {
	Left, Right Term
}

// Pi is a dependent function type; To may refer to Head.
type Pi struct {
	Head     string
	From, To Term
}

// Lambda is a function abstraction; Body may refer to Head.
type Lambda struct {
	Head       string
	From, Body Term
}

// Let binds Head to Left, of type From, in Right.
type Let struct {
	Head              string
	From, Left, Right Term
}

// Empty is the placeholder for a term that has not been filled in.
var Empty Term = Reference{}

// IsEmpty reports whether t is the empty reference.
func IsEmpty(t Term) bool {
	r, ok := t.(Reference)
	return ok && r.Identifier == ""
}

// Head returns the name introduced by a binder, and false if t is not a
// binder.
func Head(t Term) (string, bool) {
	switch t := t.(type) {
	case Pi:
		return t.Head, true
	case Lambda:
		return t.Head, true
	case Let:
		return t.Head, true
	}
	return "", false
}

// WithHead returns a copy of the binder t with its head replaced. It returns
// false if t is not a binder.
func WithHead(t Term, head string) (Term, bool) {
	switch t := t.(type) {
	case Pi:
		t.Head = head
		return t, true
	case Lambda:
		t.Head = head
		return t, true
	case Let:
		t.Head = head
		return t, true
	}
	return nil, false
}

func (Type) isTerm()        {}
func (Reference) isTerm()   {}
func (Application) isTerm() {}
func (Pi) isTerm()          {}
func (Lambda) isTerm()      {}
func (Let) isTerm()         {}

func (Type) Labels() []string        { return nil }
func (Reference) Labels() []string   { return nil }
func (Application) Labels() []string { return []string{path.Left, path.Right} }
func (Pi) Labels() []string          { return []string{path.From, path.To} }
func (Lambda) Labels() []string      { return []string{path.From, path.Body} }
func (Let) Labels() []string {
	return []string{path.From, path.Left, path.Right}
}

func (Type) Child(string) (Term, bool)      { return nil, false }
func (Reference) Child(string) (Term, bool) { return nil, false }

func (t Application) Child(label string) (Term, bool) {
	switch label {
	case path.Left:
		return t.Left, true
	case path.Right:
		return t.Right, true
	}
	return nil, false
}

func (t Pi) Child(label string) (Term, bool) {
	switch label {
	case path.From:
		return t.From, true
	case path.To:
		return t.To, true
	}
	return nil, false
}

func (t Lambda) Child(label string) (Term, bool) {
	switch label {
	case path.From:
		return t.From, true
	case path.Body:
		return t.Body, true
	}
	return nil, false
}

func (t Let) Child(label string) (Term, bool) {
	switch label {
	case path.From:
		return t.From, true
	case path.Left:
		return t.Left, true
	case path.Right:
		return t.Right, true
	}
	return nil, false
}

func (Type) WithChild(string, Term) (Term, bool)      { return nil, false }
func (Reference) WithChild(string, Term) (Term, bool) { return nil, false }

func (t Application) WithChild(label string, c Term) (Term, bool) {
	switch label {
	case path.Left:
		t.Left = c
	case path.Right:
		t.Right = c
	default:
		return nil, false
	}
	return t, true
}

func (t Pi) WithChild(label string, c Term) (Term, bool) {
	switch label {
	case path.From:
		t.From = c
	case path.To:
		t.To = c
	default:
		return nil, false
	}
	return t, true
}

func (t Lambda) WithChild(label string, c Term) (Term, bool) {
	switch label {
	case path.From:
		t.From = c
	case path.Body:
		t.Body = c
	default:
		return nil, false
	}
	return t, true
}

func (t Let) WithChild(label string, c Term) (Term, bool) {
	switch label {
	case path.From:
		t.From = c
	case path.Left:
		t.Left = c
	case path.Right:
		t.Right = c
	default:
		return nil, false
	}
	return t, true
}

// Get returns the node of t at the given path.
func Get(t Term, p path.Path) (Term, error) {
	for _, label := range p {
		child, ok := t.Child(label)
		if !ok {
			return nil, fmt.Errorf("%w: no %q in %s", ErrInvalidPath, label, kind(t))
		}
		t = child
	}
	return t, nil
}

// Set returns a copy of t with the node at the given path replaced by n. Only
// the ancestors of the replaced node are copied.
func Set(t Term, p path.Path, n Term) (Term, error) {
	if len(p) == 0 {
		return n, nil
	}
	child, ok := t.Child(p[0])
	if !ok {
		return nil, fmt.Errorf("%w: no %q in %s", ErrInvalidPath, p[0], kind(t))
	}
	newChild, err := Set(child, p[1:], n)
	if err != nil {
		return nil, err
	}
	newT, _ := t.WithChild(p[0], newChild)
	return newT, nil
}

// Equal reports whether two terms are structurally equal, including the names
// of binders.
func Equal(a, b Term) bool {
	switch a := a.(type) {
	case Type:
		b, ok := b.(Type)
		return ok && a.Universe == b.Universe
	case Reference:
		b, ok := b.(Reference)
		return ok && a.Identifier == b.Identifier
	case Application:
		b, ok := b.(Application)
		return ok && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	case Pi:
		b, ok := b.(Pi)
		return ok && a.Head == b.Head && Equal(a.From, b.From) && Equal(a.To, b.To)
	case Lambda:
		b, ok := b.(Lambda)
		return ok && a.Head == b.Head && Equal(a.From, b.From) && Equal(a.Body, b.Body)
	case Let:
		b, ok := b.(Let)
		return ok && a.Head == b.Head && Equal(a.From, b.From) &&
			Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	}
	return false
}

// Kind returns the name of the variant of t, as used in the serialized form.
func Kind(t Term) string { return kind(t) }

func kind(t Term) string {
	switch t.(type) {
	case Type:
		return "type"
	case Reference:
		return "reference"
	case Application:
		return "application"
	case Pi:
		return "pi"
	case Lambda:
		return "lambda"
	case Let:
		return "let"
	}
	return fmt.Sprintf("%T", t)
}
