// Package search ranks metro codes against an operator's query for the jump-to-metro picker.
package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Match is a ranked candidate
type Match struct {
	Index int    // Index in the candidate slice
	Code  string // Candidate as given
	Score int    // Lower is better
}

// RankMetros filters codes to those matching query and orders them best first.
// An empty query returns every code in its original order.
func RankMetros(query string, codes []string) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		matches := make([]Match, len(codes))
		for i, c := range codes {
			matches[i] = Match{Index: i, Code: c}
		}
		return matches
	}

	var matches []Match
	for i, code := range codes {
		if score, ok := matchScore(strings.ToLower(code), query); ok {
			matches = append(matches, Match{Index: i, Code: code, Score: score})
		}
	}

	// Stable keeps collection order among equal scores
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score < matches[j].Score
	})
	return matches
}

// matchScore calculates a match score for ranking. Lower score = better match.
func matchScore(code, query string) (int, bool) {
	// Exact match is best
	if code == query {
		return 0, true
	}

	// Prefix match is very good
	if strings.HasPrefix(code, query) {
		return 10, true
	}

	// Contains match is good
	if strings.Contains(code, query) {
		return 50, true
	}

	// Subsequence match, ranked by edit distance
	if fuzzy.MatchFold(query, code) {
		return 100 + fuzzy.LevenshteinDistance(query, code), true
	}
	return 0, false
}
