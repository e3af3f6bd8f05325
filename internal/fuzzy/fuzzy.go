// Package fuzzy ranks switch names by edit distance for "did you mean" hints.
package fuzzy

import (
	"slices"
	"strings"
)

// Matcher finds candidates within a maximum edit distance.
type Matcher struct {
	maxDistance int
	minLength   int
}

// NewMatcher creates a matcher with the given max edit distance. Inputs
// shorter than two runes never produce a suggestion.
func NewMatcher(maxDistance int) *Matcher {
	return &Matcher{maxDistance: maxDistance, minLength: 2}
}

// Match is one ranked candidate.
type Match struct {
	Value    string
	Distance int
	// Prefix is the length in runes of the shared prefix.
	Prefix int
}

// Best returns the closest candidate, or "" when none is close enough.
func (m *Matcher) Best(input string, candidates []string) string {
	matches := m.Matches(input, candidates)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Value
}

// Matches returns every candidate within range, closest first. Ties go to
// the longer shared prefix, then to lexical order. Comparison ignores case;
// exact matches are skipped.
func (m *Matcher) Matches(input string, candidates []string) []Match {
	in := []rune(strings.ToLower(input))
	if len(in) < m.minLength {
		return nil
	}

	var matches []Match
	for _, c := range candidates {
		cand := []rune(strings.ToLower(c))
		if slices.Equal(in, cand) {
			continue
		}
		if d := m.distance(in, cand); d <= m.maxDistance {
			matches = append(matches, Match{Value: c, Distance: d, Prefix: commonPrefix(in, cand)})
		}
	}

	slices.SortStableFunc(matches, func(a, b Match) int {
		if a.Distance != b.Distance {
			return a.Distance - b.Distance
		}
		if a.Prefix != b.Prefix {
			return b.Prefix - a.Prefix
		}
		return strings.Compare(a.Value, b.Value)
	})
	return matches
}

// distance is the Levenshtein distance over runes. It stops early and
// returns maxDistance+1 once the result is known to be out of range.
func (m *Matcher) distance(a, b []rune) int {
	if abs(len(a)-len(b)) > m.maxDistance {
		return m.maxDistance + 1
	}
	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	cur := make([]int, len(a)+1)
	for i := range prev {
		prev[i] = i
	}

	for i := 1; i <= len(b); i++ {
		cur[0] = i
		rowMin := i
		for j := 1; j <= len(a); j++ {
			cost := 1
			if a[j-1] == b[i-1] {
				cost = 0
			}
			cur[j] = min(cur[j-1]+1, prev[j]+1, prev[j-1]+cost)
			rowMin = min(rowMin, cur[j])
		}
		if rowMin > m.maxDistance {
			return m.maxDistance + 1
		}
		prev, cur = cur, prev
	}
	return prev[len(a)]
}

func commonPrefix(a, b []rune) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// FindBestFlag returns the closest switch name to input.
func FindBestFlag(input string, names []string, maxDistance int) string {
	return NewMatcher(maxDistance).Best(input, names)
}

// FindSuggestions returns up to limit names close to input, best first.
func FindSuggestions(input string, names []string, maxDistance, limit int) []string {
	matches := NewMatcher(maxDistance).Matches(input, names)
	out := make([]string, 0, min(len(matches), limit))
	for _, m := range matches[:min(len(matches), limit)] {
		out = append(out, m.Value)
	}
	return out
}
