// Package complete implements type-aware suggestions of identifiers for the
// node under the cursor.
package complete

import (
	"github.com/samber/lo"

	"src.tyed.sh/pkg/compute"
	"src.tyed.sh/pkg/logutil"
	"src.tyed.sh/pkg/path"
	"src.tyed.sh/pkg/term"
)

var logger = logutil.GetLogger("[complete] ")

// Match tells whether a suggestion has the type expected at the cursor.
type Match int

// Possible values of Match.
const (
	// The expected type is not known.
	Unknown Match = iota
	Matches
	DoesNotMatch
)

func (m Match) String() string {
	switch m {
	case Matches:
		return "matches"
	case DoesNotMatch:
		return "does not match"
	}
	return "unknown"
}

// Suggestion is an identifier that can be put at the cursor.
type Suggestion struct {
	Identifier string
	// Type is the normal form of the type of the identifier, or nil if it is
	// not known.
	Type  term.Term
	Match Match
}

// Config stores the configuration for Suggest.
type Config struct {
	// Ranks candidates against the query. Defaults to FuzzyRanker.
	Ranker Ranker
}

// Suggest returns the suggestions for the node at the given path in the
// program. Candidates are the names bound around the node, innermost first,
// then the entries of the program in scope order. A name is offered once,
// with the type of its innermost binding.
//
// Candidates that match query come first, best match first; the others
// follow in their original order. If the node is the argument of an
// application whose function has a Pi type, suggestions whose type is
// convertible to the domain come first and are tagged Matches; the rest are
// tagged DoesNotMatch.
func Suggest(p *compute.Program, at path.Path, query string, cfg Config) ([]Suggestion, error) {
	node, err := p.Get(at)
	if err != nil {
		return nil, err
	}
	ev := compute.NewEvaler(p)
	candidates := rank(collect(ev, node.Info().Env), query, cfg.ranker())
	if domain, ok := expectedType(ev, p, at); ok {
		candidates = partition(ev, candidates, domain)
	}
	return lo.Map(candidates, func(c candidate, _ int) Suggestion { return c.Suggestion }), nil
}

func (cfg Config) ranker() Ranker {
	if cfg.Ranker == nil {
		return FuzzyRanker{}
	}
	return cfg.Ranker
}

// candidate is a Suggestion along with the normal form of its type, kept for
// type comparisons.
type candidate struct {
	Suggestion
	normalType compute.Term
}

func newCandidate(name string, normalType compute.Term) candidate {
	c := candidate{Suggestion: Suggestion{Identifier: name}, normalType: normalType}
	if normalType != nil {
		c.Type = compute.Unprepare(normalType)
	}
	return c
}

func collect(ev *compute.Evaler, env compute.Env) []candidate {
	var candidates []candidate
	seen := make(map[string]bool)
	for _, b := range compute.Bindings(env) {
		seen[b.Name] = true
		candidates = append(candidates, newCandidate(b.Name, normal(ev, b.Type)))
	}
	for _, e := range ev.Program().Entries() {
		if seen[e.Name] {
			continue
		}
		seen[e.Name] = true
		candidates = append(candidates, newCandidate(e.Name, entryType(ev, e)))
	}
	return candidates
}

// refuel gives the Evaler a full budget of reduction steps. Every candidate
// and the expected type get their own budget, so a diverging entry does not
// starve the others.
func refuel(ev *compute.Evaler) { ev.SetFuel(compute.DefaultFuel) }

func normal(ev *compute.Evaler, t compute.Term) compute.Term {
	if t == nil || compute.IsEmpty(t) {
		return nil
	}
	refuel(ev)
	return ev.Normal(t)
}

func entryType(ev *compute.Evaler, e compute.Entry) compute.Term {
	if !compute.IsEmpty(e.Type) {
		return normal(ev, e.Type)
	}
	if compute.IsEmpty(e.Value) {
		return nil
	}
	refuel(ev)
	t, ok := ev.TypeOf(e.Value)
	if !ok {
		return nil
	}
	return normal(ev, t)
}

func rank(candidates []candidate, query string, r Ranker) []candidate {
	if query == "" {
		return candidates
	}
	ids := lo.Map(candidates, func(c candidate, _ int) string { return c.Identifier })
	ranked := make([]candidate, 0, len(candidates))
	used := make([]bool, len(candidates))
	for _, i := range r.Rank(query, ids) {
		if i < 0 || i >= len(candidates) || used[i] {
			logger.Printf("ranker returned bad index %d for %d candidates", i, len(candidates))
			continue
		}
		used[i] = true
		ranked = append(ranked, candidates[i])
	}
	for i, c := range candidates {
		if !used[i] {
			ranked = append(ranked, c)
		}
	}
	return ranked
}

// expectedType returns the domain of the function applied to the node at the
// given path, if the node is the argument of an application.
func expectedType(ev *compute.Evaler, p *compute.Program, at path.Path) (compute.Term, bool) {
	if label, _ := at.Last(); label != path.Right || len(at) <= 2 {
		return nil, false
	}
	parentPath, _ := at.Parent()
	parent, err := p.Get(parentPath)
	if err != nil {
		return nil, false
	}
	app, ok := parent.(compute.Application)
	if !ok {
		return nil, false
	}
	refuel(ev)
	leftType, ok := ev.TypeOf(app.Left)
	if !ok {
		return nil, false
	}
	pi, ok := ev.Value(leftType).(compute.Pi)
	if !ok || compute.IsEmpty(pi.From) {
		return nil, false
	}
	return pi.From, true
}

func partition(ev *compute.Evaler, candidates []candidate, domain compute.Term) []candidate {
	domain = normal(ev, domain)
	matches := func(c candidate, _ int) bool {
		return c.normalType != nil && compute.Equal(c.normalType, domain)
	}
	tag := func(m Match) func(candidate, int) candidate {
		return func(c candidate, _ int) candidate {
			c.Match = m
			return c
		}
	}
	yes := lo.Map(lo.Filter(candidates, matches), tag(Matches))
	no := lo.Map(lo.Reject(candidates, matches), tag(DoesNotMatch))
	return append(yes, no...)
}
