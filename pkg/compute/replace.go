package compute

// Replace substitutes replacement for every reference to old in t. Binders
// that rebind old shadow it in their scope. Binders whose head would capture
// a reference in replacement are renamed first. Unchanged subtrees are
// returned as is; rebuilt nodes are synthesized.
func Replace(old string, replacement, t Term) Term {
	if old == "" {
		return t
	}
	return replace(old, replacement, freeNames(replacement), t)
}

func replace(old string, replacement Term, avoid map[string]bool, t Term) Term {
	if !occurs(old, t) {
		return t
	}
	switch t := t.(type) {
	case Reference:
		if t.Identifier == old {
			return replacement
		}
		return Reference{synthesized(t.Meta), t.Identifier,
			replace(old, replacement, avoid, t.Type)}
	case Application:
		return Application{synthesized(t.Meta),
			replace(old, replacement, avoid, t.Left),
			replace(old, replacement, avoid, t.Right)}
	case Pi:
		from := replace(old, replacement, avoid, t.From)
		head, to := under(old, replacement, avoid, t.Head, t.From, t.To)
		return Pi{synthesized(t.Meta), head, from, to}
	case Lambda:
		from := replace(old, replacement, avoid, t.From)
		head, body := under(old, replacement, avoid, t.Head, t.From, t.Body)
		return Lambda{synthesized(t.Meta), head, from, body}
	case Let:
		from := replace(old, replacement, avoid, t.From)
		left := replace(old, replacement, avoid, t.Left)
		head, right := under(old, replacement, avoid, t.Head, t.From, t.Right)
		return Let{synthesized(t.Meta), head, from, left, right}
	}
	return t
}

// under replaces old in the scope of a binder, renaming the binder when its
// head would capture a name of the replacement.
func under(old string, replacement Term, avoid map[string]bool, head string, from, body Term) (string, Term) {
	if head == old {
		return head, body
	}
	if avoid[head] && occurs(old, body) {
		fresh := primed(head, avoid, names(body))
		body = replace(head, Reference{Meta{}, fresh, from}, map[string]bool{fresh: true}, body)
		head = fresh
	}
	return head, replace(old, replacement, avoid, body)
}

// occurs reports whether t contains a reference to name that is not shadowed
// by a binder within t.
func occurs(name string, t Term) bool {
	switch t := t.(type) {
	case Reference:
		return t.Identifier == name || (t.Type != nil && occurs(name, t.Type))
	case Application:
		return occurs(name, t.Left) || occurs(name, t.Right)
	case Pi:
		return occurs(name, t.From) || (t.Head != name && occurs(name, t.To))
	case Lambda:
		return occurs(name, t.From) || (t.Head != name && occurs(name, t.Body))
	case Let:
		return occurs(name, t.From) || occurs(name, t.Left) ||
			(t.Head != name && occurs(name, t.Right))
	}
	return false
}

// primed returns head with enough primes appended to be in none of the
// taken sets.
func primed(head string, taken ...map[string]bool) string {
	fresh := head + "'"
	for isTaken(fresh, taken) {
		fresh += "'"
	}
	return fresh
}

func isTaken(name string, taken []map[string]bool) bool {
	for _, set := range taken {
		if set[name] {
			return true
		}
	}
	return false
}

// freeNames returns the identifiers of references in t that are bound
// outside of t, and of the free references to entries. Both print as plain
// identifiers, so a binder must not reuse them.
func freeNames(t Term) map[string]bool {
	free := make(map[string]bool)
	var walk func(Term, map[string]bool)
	walk = func(t Term, bound map[string]bool) {
		switch t := t.(type) {
		case Free:
			if t.Identifier != "" {
				free[t.Identifier] = true
			}
		case Reference:
			if !bound[t.Identifier] {
				free[t.Identifier] = true
			}
			if t.Type != nil {
				walk(t.Type, bound)
			}
		case Application:
			walk(t.Left, bound)
			walk(t.Right, bound)
		case Pi:
			walk(t.From, bound)
			walk(t.To, with(bound, t.Head))
		case Lambda:
			walk(t.From, bound)
			walk(t.Body, with(bound, t.Head))
		case Let:
			walk(t.From, bound)
			walk(t.Left, bound)
			walk(t.Right, with(bound, t.Head))
		}
	}
	walk(t, nil)
	return free
}

func with(set map[string]bool, name string) map[string]bool {
	if name == "" || set[name] {
		return set
	}
	extended := make(map[string]bool, len(set)+1)
	for k := range set {
		extended[k] = true
	}
	extended[name] = true
	return extended
}

// names returns the identifiers of all references and binder heads in t.
func names(t Term) map[string]bool {
	all := make(map[string]bool)
	var walk func(Term)
	walk = func(t Term) {
		switch t := t.(type) {
		case Free:
			all[t.Identifier] = true
		case Reference:
			all[t.Identifier] = true
			if t.Type != nil {
				walk(t.Type)
			}
		case Application:
			walk(t.Left)
			walk(t.Right)
		case Pi:
			all[t.Head] = true
			walk(t.From)
			walk(t.To)
		case Lambda:
			all[t.Head] = true
			walk(t.From)
			walk(t.Body)
		case Let:
			all[t.Head] = true
			walk(t.From)
			walk(t.Left)
			walk(t.Right)
		}
	}
	walk(t)
	return all
}
