package domain

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEd(t *testing.T) {
	tests := []struct {
		in     string
		num    int
		suffix string
		str    string
	}{
		{"1", 1, "", "1"},
		{"7a", 7, "A", "7A"},
		{"12B", 12, "B", "12B"},
		{"005", 5, "", "5"},
		{"3-1", 3, "-1", "3-1"},
		{" 42c ", 42, "C", "42C"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ed, ok := ParseEd(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.num, ed.Num)
			assert.Equal(t, tt.suffix, ed.Suffix)
			assert.Equal(t, tt.str, ed.String())
		})
	}
}

func TestParseEd_rejectsNonDigitLeading(t *testing.T) {
	for _, in := range []string{"", "A12", "   ", "-3", "x"} {
		_, ok := ParseEd(in)
		assert.False(t, ok, "ParseEd(%q)", in)
	}
}

func TestEd_IncrementKeepsSuffix(t *testing.T) {
	ed := NewEd(1, "b")
	ed.Increment()

	assert.Equal(t, 2, ed.Num)
	assert.Equal(t, "B", ed.Suffix)
	assert.Equal(t, "2B", ed.String())
}

func TestEd_DecrementFloorsAtOne(t *testing.T) {
	ed := NewEd(2, "")
	ed.Decrement()
	assert.Equal(t, 1, ed.Num)

	ed.Decrement()
	assert.Equal(t, 1, ed.Num)
}

func TestEd_Ordering(t *testing.T) {
	ordered := []Ed{NewEd(5, ""), NewEd(5, "A"), NewEd(5, "B"), NewEd(6, ""), NewEd(10, "")}

	for i := 0; i < len(ordered)-1; i++ {
		assert.True(t, ordered[i].Less(ordered[i+1]), "%s < %s", ordered[i], ordered[i+1])
		assert.False(t, ordered[i+1].Less(ordered[i]), "%s >= %s", ordered[i+1], ordered[i])
	}

	shuffled := []Ed{ordered[3], ordered[0], ordered[4], ordered[2], ordered[1]}
	sort.Slice(shuffled, func(i, j int) bool { return shuffled[i].Less(shuffled[j]) })
	assert.Equal(t, ordered, shuffled)
}

func TestEd_Equal(t *testing.T) {
	a, _ := ParseEd("12b")
	assert.True(t, a.Equal(NewEd(12, "B")))
	assert.False(t, a.Equal(NewEd(12, "")))
	assert.Equal(t, 0, a.Compare(NewEd(12, "B")))
}

func TestCompareEdStrings(t *testing.T) {
	assert.Equal(t, 1, CompareEdStrings("10", "9"))
	assert.Equal(t, -1, CompareEdStrings("9", "10"))
	assert.Equal(t, -1, CompareEdStrings("5", "5A"))
	assert.Equal(t, 1, CompareEdStrings("1", "junk"))
	assert.Equal(t, 0, CompareEdStrings("3c", "3C"))
}
