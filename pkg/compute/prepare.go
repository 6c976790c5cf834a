package compute

import (
	"src.tyed.sh/pkg/path"
	"src.tyed.sh/pkg/term"
)

// PrepareTerm annotates a source term found at path p with env as its
// lexical environment. References bound in env or by binders within t become
// Reference nodes; all others become Free nodes. A binder with an empty head
// binds nothing.
func PrepareTerm(t term.Term, env Env, p path.Path) Term {
	if env == nil {
		env = EmptyEnv
	}
	m := Meta{p, env}
	switch t := t.(type) {
	case term.Type:
		return Type{m, t.Universe}
	case term.Reference:
		if t.Identifier != "" {
			if b, ok := Lookup(env, t.Identifier); ok {
				return Reference{m, t.Identifier, b.Type}
			}
		}
		return Free{m, t.Identifier}
	case term.Application:
		return Application{m,
			PrepareTerm(t.Left, env, child(p, path.Left)),
			PrepareTerm(t.Right, env, child(p, path.Right))}
	case term.Pi:
		from := PrepareTerm(t.From, env, child(p, path.From))
		return Pi{m, t.Head, from,
			PrepareTerm(t.To, bind(env, t.Head, from), child(p, path.To))}
	case term.Lambda:
		from := PrepareTerm(t.From, env, child(p, path.From))
		return Lambda{m, t.Head, from,
			PrepareTerm(t.Body, bind(env, t.Head, from), child(p, path.Body))}
	case term.Let:
		from := PrepareTerm(t.From, env, child(p, path.From))
		return Let{m, t.Head, from,
			PrepareTerm(t.Left, env, child(p, path.Left)),
			PrepareTerm(t.Right, bind(env, t.Head, from), child(p, path.Right))}
	}
	// Unreachable for the closed set of source terms.
	return Free{m, ""}
}

func bind(env Env, head string, t Term) Env {
	if head == "" {
		return env
	}
	return env.Cons(Binding{head, t})
}

func child(p path.Path, label string) path.Path {
	if p == nil {
		return nil
	}
	return p.Child(label)
}

// Unprepare drops all annotations from t.
func Unprepare(t Term) term.Term {
	switch t := t.(type) {
	case Type:
		return term.Type{Universe: t.Universe}
	case Free:
		return term.Reference{Identifier: t.Identifier}
	case Reference:
		return term.Reference{Identifier: t.Identifier}
	case Application:
		return term.Application{Left: Unprepare(t.Left), Right: Unprepare(t.Right)}
	case Pi:
		return term.Pi{Head: t.Head, From: Unprepare(t.From), To: Unprepare(t.To)}
	case Lambda:
		return term.Lambda{Head: t.Head, From: Unprepare(t.From), Body: Unprepare(t.Body)}
	case Let:
		return term.Let{Head: t.Head, From: Unprepare(t.From),
			Left: Unprepare(t.Left), Right: Unprepare(t.Right)}
	}
	return term.Empty
}
