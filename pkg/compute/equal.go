package compute

// Equal reports whether two prepared terms are α-equivalent: equal up to a
// consistent renaming of bound names. Annotations and the recorded types of
// references are ignored.
func Equal(a, b Term) bool {
	return alphaEqual(a, b, nil, nil)
}

// alphaEqual compares a and b under the binders in as and bs, innermost
// last.
func alphaEqual(a, b Term, as, bs []string) bool {
	switch a := a.(type) {
	case Type:
		b, ok := b.(Type)
		return ok && a.Universe == b.Universe
	case Free:
		b, ok := b.(Free)
		return ok && a.Identifier == b.Identifier
	case Reference:
		b, ok := b.(Reference)
		if !ok {
			return false
		}
		i, j := depth(as, a.Identifier), depth(bs, b.Identifier)
		if i == -1 && j == -1 {
			return a.Identifier == b.Identifier
		}
		return i == j
	case Application:
		b, ok := b.(Application)
		return ok && alphaEqual(a.Left, b.Left, as, bs) &&
			alphaEqual(a.Right, b.Right, as, bs)
	case Pi:
		b, ok := b.(Pi)
		return ok && alphaEqual(a.From, b.From, as, bs) &&
			alphaEqual(a.To, b.To, push(as, a.Head), push(bs, b.Head))
	case Lambda:
		b, ok := b.(Lambda)
		return ok && alphaEqual(a.From, b.From, as, bs) &&
			alphaEqual(a.Body, b.Body, push(as, a.Head), push(bs, b.Head))
	case Let:
		b, ok := b.(Let)
		return ok && alphaEqual(a.From, b.From, as, bs) &&
			alphaEqual(a.Left, b.Left, as, bs) &&
			alphaEqual(a.Right, b.Right, push(as, a.Head), push(bs, b.Head))
	}
	return false
}

// depth returns the distance of the innermost binder of name from the end of
// binders, or -1 if name is not bound there.
func depth(binders []string, name string) int {
	for i := len(binders) - 1; i >= 0; i-- {
		if binders[i] == name {
			return len(binders) - 1 - i
		}
	}
	return -1
}

func push(binders []string, head string) []string {
	return append(binders[:len(binders):len(binders)], head)
}
