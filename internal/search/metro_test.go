package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codes(matches []Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Code
	}
	return out
}

func TestRankMetros_EmptyQueryKeepsOrder(t *testing.T) {
	in := []string{"BOSTON", "AKRON", "CHICAGO"}
	assert.Equal(t, in, codes(RankMetros("  ", in)))
}

func TestRankMetros_Ordering(t *testing.T) {
	in := []string{"NEW_BEDFORD", "BOSTON", "BOSTON_NE", "LOWELL", "BRISTOL"}

	matches := RankMetros("boston", in)
	require.NotEmpty(t, matches)
	assert.Equal(t, []string{"BOSTON", "BOSTON_NE"}, codes(matches))
	assert.Equal(t, 1, matches[0].Index)
	assert.Equal(t, 0, matches[0].Score)
}

func TestRankMetros_ContainsBeatsSubsequence(t *testing.T) {
	in := []string{"BRISTOL", "NEW_BEDFORD", "BEDFORD"}

	matches := RankMetros("bed", in)
	assert.Equal(t, []string{"BEDFORD", "NEW_BEDFORD"}, codes(matches))

	matches = RankMetros("bsl", in)
	assert.Equal(t, []string{"BRISTOL"}, codes(matches))
	assert.GreaterOrEqual(t, matches[0].Score, 100)
}

func TestRankMetros_NoMatch(t *testing.T) {
	assert.Empty(t, RankMetros("zzz", []string{"AKRON"}))
}
