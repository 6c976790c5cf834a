// Package compute implements the kernel of the calculus: annotated terms,
// substitution, reduction, normalization and type inference.
package compute

import (
	"src.tyed.sh/pkg/path"
	"src.tyed.sh/pkg/persistent/list"
)

// Term is a prepared term. It is implemented by Type, Free, Reference,
// Application, Pi, Lambda and Let.
type Term interface {
	String() string
	// Info returns the annotations of the node.
	Info() Meta
	isTerm()
}

// Meta holds the annotations shared by all prepared terms.
type Meta struct {
	// Path is the location of the node in the scope, or nil if the node was
	// synthesized during computation.
	Path path.Path
	// Env is the lexical environment visible at the node.
	Env Env
}

// Binding associates a bound name with the type of its binder.
type Binding struct {
	Name string
	Type Term
}

// Env is a lexical environment. The innermost binding comes first.
type Env = list.List[Binding]

// EmptyEnv is the environment with no bindings.
var EmptyEnv Env = list.Empty[Binding]()

// Type is a universe.
type Type struct {
	Meta
	Universe int
}

// Free is a reference that is not bound by any enclosing binder. It is
// resolved against the top-level scope when needed.
type Free struct {
	Meta
	Identifier string
}

// Reference is a reference to an enclosing binder. Type is the type of the
// binder.
type Reference struct {
	Meta
	Identifier string
	Type       Term
}

// Application applies Left to Right.
type Application struct {
	Meta
	Left, Right Term
}

// Pi is a dependent function type.
type Pi struct {
	Meta
	Head     string
	From, To Term
}

// Lambda is a function abstraction.
type Lambda struct {
	Meta
	Head       string
	From, Body Term
}

// Let binds Head to Left in Right.
type Let struct {
	Meta
	Head              string
	From, Left, Right Term
}

func (m Meta) Info() Meta { return m }

func (Type) isTerm()        {}
func (Free) isTerm()        {}
func (Reference) isTerm()   {}
func (Application) isTerm() {}
func (Pi) isTerm()          {}
func (Lambda) isTerm()      {}
func (Let) isTerm()         {}

func (t Type) String() string        { return Unprepare(t).String() }
func (t Free) String() string        { return Unprepare(t).String() }
func (t Reference) String() string   { return Unprepare(t).String() }
func (t Application) String() string { return Unprepare(t).String() }
func (t Pi) String() string          { return Unprepare(t).String() }
func (t Lambda) String() string      { return Unprepare(t).String() }
func (t Let) String() string         { return Unprepare(t).String() }

// IsEmpty reports whether t is the placeholder for a missing term.
func IsEmpty(t Term) bool {
	f, ok := t.(Free)
	return ok && f.Identifier == ""
}

// synthesized returns annotations for a node built from a node with
// annotations m.
func synthesized(m Meta) Meta {
	return Meta{Env: m.Env}
}

// Lookup finds the innermost binding of name in the environment.
func Lookup(env Env, name string) (Binding, bool) {
	if env == nil {
		return Binding{}, false
	}
	return list.Find(env, func(b Binding) bool { return b.Name == name })
}

// Bindings returns the bindings visible in env, innermost first. Shadowed
// bindings are omitted.
func Bindings(env Env) []Binding {
	if env == nil {
		return nil
	}
	var bindings []Binding
	seen := make(map[string]bool)
	list.Each(env, func(b Binding) bool {
		if !seen[b.Name] {
			seen[b.Name] = true
			bindings = append(bindings, b)
		}
		return true
	})
	return bindings
}

// Child returns the child of t with the given label.
func Child(t Term, label string) (Term, bool) {
	switch t := t.(type) {
	case Application:
		switch label {
		case path.Left:
			return t.Left, true
		case path.Right:
			return t.Right, true
		}
	case Pi:
		switch label {
		case path.From:
			return t.From, true
		case path.To:
			return t.To, true
		}
	case Lambda:
		switch label {
		case path.From:
			return t.From, true
		case path.Body:
			return t.Body, true
		}
	case Let:
		switch label {
		case path.From:
			return t.From, true
		case path.Left:
			return t.Left, true
		case path.Right:
			return t.Right, true
		}
	}
	return nil, false
}
