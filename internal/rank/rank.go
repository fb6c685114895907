// Package rank orders named, weighted candidates by relevance to a search
// term. Both the term and the candidate names must already live in the
// canonical space produced by the normalize package; ranking itself performs
// no normalization.
package rank

import (
	"sort"
	"strings"
)

// Relation is the three-way outcome of a relevance comparison.
type Relation int

const (
	// RanksAhead means the first candidate orders before the second.
	RanksAhead Relation = iota
	// RanksBehind means the first candidate orders after the second.
	RanksBehind
	// RanksEqual means the two candidates tie.
	RanksEqual
)

// Candidate participates in ranked search. SearchName is already normalized;
// Weight is the catalog's popularity measure.
type Candidate struct {
	SearchName string
	Weight     float64
}

// CompareRelevance ranks two candidates against a normalized term. A
// candidate whose name starts with the term always ranks ahead of one whose
// name does not, regardless of weight; when both agree on the prefix test the
// strictly greater weight wins; equal weights tie. The comparisons are
// explicit three-way checks rather than a weight subtraction, so the result
// is well defined for every representable weight.
func CompareRelevance(term string, first Candidate, second Candidate) Relation {
	firstHasPrefix := strings.HasPrefix(first.SearchName, term)
	secondHasPrefix := strings.HasPrefix(second.SearchName, term)
	if firstHasPrefix != secondHasPrefix {
		if firstHasPrefix {
			return RanksAhead
		}
		return RanksBehind
	}
	if first.Weight > second.Weight {
		return RanksAhead
	}
	if first.Weight < second.Weight {
		return RanksBehind
	}
	return RanksEqual
}

// SortByRelevance orders items in place, most relevant first, using
// CompareRelevance over the candidate view of each item. Ties keep their
// original order so repeated runs over the same catalog are deterministic.
func SortByRelevance[Item any](term string, items []Item, candidateOf func(Item) Candidate) {
	sort.SliceStable(items, func(firstIndex, secondIndex int) bool {
		return CompareRelevance(term, candidateOf(items[firstIndex]), candidateOf(items[secondIndex])) == RanksAhead
	})
}
