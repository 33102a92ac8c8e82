package navigator

import (
	"context"
	"strings"

	"github.com/mmcdole/edtag/internal/domain"
)

// DefaultSeedEd seeds the current ED in a metro with nothing recorded yet.
const DefaultSeedEd = "1"

// SeedOrder decides how ED strings are ranked when picking a metro's largest ED.
type SeedOrder int

const (
	// SeedByEd ranks by Ed ordering (9 < 10 < 10A)
	SeedByEd SeedOrder = iota
	// SeedLexical ranks by plain string order (10 < 9), matching older databases
	SeedLexical
)

// ParseSeedOrder maps a config value to a SeedOrder. Unknown values fall back to SeedByEd.
func ParseSeedOrder(s string) SeedOrder {
	if strings.EqualFold(strings.TrimSpace(s), "lexical") {
		return SeedLexical
	}
	return SeedByEd
}

func (o SeedOrder) String() string {
	if o == SeedLexical {
		return "lexical"
	}
	return "ed"
}

// LargestEdForCurrentMetro returns the greatest ED recorded anywhere in the
// current image's metro, or DefaultSeedEd if there is none.
func (n *Navigator) LargestEdForCurrentMetro(ctx context.Context) string {
	img := n.Curr()

	names, err := n.backing.ListMetroEds(ctx, img.UTPCode)
	if err != nil {
		n.logger.Warn("failed to query metro eds", "error", err, "utp_code", img.UTPCode)
		return DefaultSeedEd
	}
	if len(names) == 0 {
		return DefaultSeedEd
	}

	largest := names[0]
	for _, name := range names[1:] {
		if n.greater(name, largest) {
			largest = name
		}
	}
	return largest
}

func (n *Navigator) greater(a, b string) bool {
	if n.seedOrder == SeedLexical {
		return a > b
	}
	return domain.CompareEdStrings(a, b) > 0
}

// Progress counts annotated images across the whole collection.
func (n *Navigator) Progress() (annotated, total int) {
	for _, img := range n.images {
		if img.Eds.Len() > 0 {
			annotated++
		}
	}
	return annotated, len(n.images)
}

// Metro summarizes one contiguous metro group.
type Metro struct {
	UTPCode    string
	Year       int
	FirstIndex int
	Count      int
	Annotated  int
	EdCount    int
}

// Metros returns the metro groups in collection order.
func (n *Navigator) Metros() []Metro {
	var metros []Metro
	for i, img := range n.images {
		if i == 0 || img.UTPCode != n.images[i-1].UTPCode {
			metros = append(metros, Metro{UTPCode: img.UTPCode, Year: img.Year, FirstIndex: i})
		}
		m := &metros[len(metros)-1]
		m.Count++
		m.EdCount += img.Eds.Len()
		if img.Eds.Len() > 0 {
			m.Annotated++
		}
	}
	return metros
}

// CurrentMetro returns the summary of the metro under the cursor.
func (n *Navigator) CurrentMetro() Metro {
	utp := n.Curr().UTPCode
	for _, m := range n.Metros() {
		if m.UTPCode == utp && n.index >= m.FirstIndex && n.index < m.FirstIndex+m.Count {
			return m
		}
	}
	return Metro{UTPCode: utp}
}
