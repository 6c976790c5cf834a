package complete

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Ranker orders candidates by how well they match a query.
type Ranker interface {
	// Rank returns the indices of the candidates that match query, best match
	// first. Candidates that do not match are left out.
	Rank(query string, candidates []string) []int
}

// FuzzyRanker is a Ranker doing case-insensitive fuzzy matching. Closer
// matches rank higher; ties keep the order of the candidates.
type FuzzyRanker struct{}

func (FuzzyRanker) Rank(query string, candidates []string) []int {
	ranks := fuzzy.RankFindFold(query, candidates)
	sort.Stable(ranks)
	indices := make([]int, len(ranks))
	for i, r := range ranks {
		indices[i] = r.OriginalIndex
	}
	return indices
}

// RankerFunc adapts a function to the Ranker interface.
type RankerFunc func(query string, candidates []string) []int

func (f RankerFunc) Rank(query string, candidates []string) []int {
	return f(query, candidates)
}
