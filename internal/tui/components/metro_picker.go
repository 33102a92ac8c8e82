package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/edtag/internal/navigator"
	"github.com/mmcdole/edtag/internal/search"
	"github.com/mmcdole/edtag/internal/tui/styles"
)

const pickerMaxResults = 10

// pickerResult is one ranked metro with the characters to highlight
type pickerResult struct {
	metro          navigator.Metro
	matchedIndexes []int
}

// MetroPicker is the jump-to-metro modal
type MetroPicker struct {
	input     textinput.Model
	metros    []navigator.Metro
	codes     []string
	results   []pickerResult
	cursor    int
	visible   bool
	width     int
	height    int
	prevQuery string
}

// NewMetroPicker creates a new metro picker
func NewMetroPicker() MetroPicker {
	ti := textinput.New()
	ti.Placeholder = "Type a metro code..."
	ti.CharLimit = 40
	ti.Width = 30
	ti.Prompt = "/ "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return MetroPicker{input: ti}
}

// Show opens the picker over the given metros
func (o *MetroPicker) Show(metros []navigator.Metro) {
	o.visible = true
	o.metros = metros
	o.codes = make([]string, len(metros))
	for i, m := range metros {
		o.codes[i] = m.UTPCode
	}
	o.input.SetValue("")
	o.input.Focus()
	o.prevQuery = ""
	o.refresh()
}

// Hide hides the picker
func (o *MetroPicker) Hide() {
	o.visible = false
	o.input.Blur()
}

// IsVisible returns true if the picker is visible
func (o MetroPicker) IsVisible() bool {
	return o.visible
}

// SetSize updates the component dimensions
func (o *MetroPicker) SetSize(width, height int) {
	o.width = width
	o.height = height
}

// Selected returns the highlighted metro code
func (o MetroPicker) Selected() (string, bool) {
	if o.cursor >= len(o.results) {
		return "", false
	}
	return o.results[o.cursor].metro.UTPCode, true
}

// ResultCount returns the number of matching metros
func (o MetroPicker) ResultCount() int {
	return len(o.results)
}

// refresh re-ranks the metros against the current query
func (o *MetroPicker) refresh() {
	query := o.input.Value()
	ranked := search.RankMetros(query, o.codes)

	highlights := make(map[int][]int)
	if q := strings.ToLower(strings.TrimSpace(query)); q != "" {
		lower := make([]string, len(o.codes))
		for i, c := range o.codes {
			lower[i] = strings.ToLower(c)
		}
		for _, m := range fuzzy.Find(q, lower) {
			highlights[m.Index] = m.MatchedIndexes
		}
	}

	o.results = make([]pickerResult, 0, len(ranked))
	for _, r := range ranked {
		o.results = append(o.results, pickerResult{
			metro:          o.metros[r.Index],
			matchedIndexes: highlights[r.Index],
		})
	}
	o.cursor = 0
}

// Update handles messages, returns (picker, cmd, selected)
func (o MetroPicker) Update(msg tea.Msg) (MetroPicker, tea.Cmd, bool) {
	if !o.visible {
		return o, nil, false
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		o.input, cmd = o.input.Update(msg)
		return o, cmd, false
	}

	switch {
	case key.Matches(keyMsg, MetroPickerKeys.Escape):
		o.Hide()
		return o, nil, false

	case key.Matches(keyMsg, MetroPickerKeys.Enter):
		if len(o.results) > 0 {
			o.Hide()
			return o, nil, true
		}
		return o, nil, false

	case key.Matches(keyMsg, MetroPickerKeys.Down):
		if o.cursor < len(o.results)-1 {
			o.cursor++
		}
		return o, nil, false

	case key.Matches(keyMsg, MetroPickerKeys.Up):
		if o.cursor > 0 {
			o.cursor--
		}
		return o, nil, false
	}

	var cmd tea.Cmd
	o.input, cmd = o.input.Update(msg)
	if q := o.input.Value(); q != o.prevQuery {
		o.prevQuery = q
		o.refresh()
	}
	return o, cmd, false
}

// View renders the picker
func (o MetroPicker) View() string {
	if !o.visible {
		return ""
	}

	modalWidth := o.width / 2
	if modalWidth < 40 {
		modalWidth = 40
	}
	if modalWidth > 70 {
		modalWidth = 70
	}

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render("Go to Metro"))
	b.WriteString("\n")
	b.WriteString(o.input.View())
	b.WriteString("\n\n")

	if len(o.results) == 0 {
		b.WriteString(styles.DimStyle.Render("No matches found"))
	}

	// Keep the cursor visible in a fixed window
	start := 0
	if o.cursor >= pickerMaxResults {
		start = o.cursor - pickerMaxResults + 1
	}
	end := min(start+pickerMaxResults, len(o.results))

	for i := start; i < end; i++ {
		r := o.results[i]
		selected := i == o.cursor

		code := highlightMatches(r.metro.UTPCode, r.matchedIndexes, selected)
		detail := fmt.Sprintf(" %d · %d/%d annotated", r.metro.Year, r.metro.Annotated, r.metro.Count)
		b.WriteString(code)
		b.WriteString(styles.DimStyle.Render(styles.Truncate(detail, modalWidth-lipgloss.Width(code)-6)))
		b.WriteString("\n")
	}

	if len(o.results) > end {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("... and %d more", len(o.results)-end)))
	}

	return styles.ModalStyle.
		Width(modalWidth).
		Render(b.String())
}

// highlightMatches renders text with matched characters emphasised
func highlightMatches(text string, matchedIndexes []int, selected bool) string {
	base := styles.NormalItemStyle.UnsetPadding()
	match := styles.MatchHighlightStyle
	if selected {
		base = styles.SelectedItemStyle.UnsetPadding()
		match = styles.MatchHighlightSelectedStyle
	}

	matchSet := make(map[int]bool, len(matchedIndexes))
	for _, idx := range matchedIndexes {
		matchSet[idx] = true
	}

	// Batch consecutive characters with the same style
	var result strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); {
		isMatch := matchSet[i]
		j := i
		for j < len(runes) && matchSet[j] == isMatch {
			j++
		}
		if isMatch {
			result.WriteString(match.Render(string(runes[i:j])))
		} else {
			result.WriteString(base.Render(string(runes[i:j])))
		}
		i = j
	}
	return result.String()
}
