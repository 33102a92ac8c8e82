package domain

import (
	"strconv"
	"strings"
)

// Ed is an Enumeration District identifier: a number plus an optional
// alphabetic suffix, e.g. "12" or "12B".
type Ed struct {
	Num    int
	Suffix string
}

// NewEd builds an Ed, normalizing the suffix to upper case.
func NewEd(num int, suffix string) Ed {
	return Ed{Num: num, Suffix: strings.ToUpper(suffix)}
}

// ParseEd splits s into its leading digits and the remainder.
// The remainder becomes the suffix as-is (upper-cased); it is not validated.
// Returns false when s does not start with a digit.
func ParseEd(s string) (Ed, bool) {
	s = strings.TrimSpace(s)

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return Ed{}, false
	}

	num, err := strconv.Atoi(s[:end])
	if err != nil {
		// Digit run too long for an int
		return Ed{}, false
	}

	return NewEd(num, s[end:]), true
}

// String returns the canonical form, e.g. "12B".
func (e Ed) String() string {
	return strconv.Itoa(e.Num) + e.Suffix
}

// Increment bumps the numeric part, leaving the suffix alone.
func (e *Ed) Increment() {
	e.Num++
}

// Decrement lowers the numeric part but never below 1.
func (e *Ed) Decrement() {
	if e.Num > 1 {
		e.Num--
	}
}

// Compare orders by number first, then by suffix: 5 < 5A < 5B < 6.
func (e Ed) Compare(other Ed) int {
	switch {
	case e.Num < other.Num:
		return -1
	case e.Num > other.Num:
		return 1
	}
	return strings.Compare(e.Suffix, other.Suffix)
}

// Less reports whether e sorts before other.
func (e Ed) Less(other Ed) bool {
	return e.Compare(other) < 0
}

// Equal reports structural equality.
func (e Ed) Equal(other Ed) bool {
	return e.Num == other.Num && e.Suffix == other.Suffix
}

// CompareEdStrings orders two ED strings by Ed ordering. Strings that do not
// parse sort before ones that do and fall back to byte order among themselves.
func CompareEdStrings(a, b string) int {
	ea, okA := ParseEd(a)
	eb, okB := ParseEd(b)
	switch {
	case okA && okB:
		return ea.Compare(eb)
	case okA:
		return 1
	case okB:
		return -1
	}
	return strings.Compare(a, b)
}
