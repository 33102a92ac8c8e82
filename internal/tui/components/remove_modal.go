package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/edtag/internal/tui/styles"
)

// RemoveModal lists the current image's EDs and lets the operator mark
// several for removal at once
type RemoveModal struct {
	visible bool
	image   string
	items   []string
	marked  map[int]bool
	cursor  int

	width  int
	height int
}

// NewRemoveModal creates a new removal modal
func NewRemoveModal() RemoveModal {
	return RemoveModal{marked: make(map[int]bool)}
}

// Show displays the modal for the given image label and ED list
func (m *RemoveModal) Show(image string, items []string) {
	m.visible = true
	m.image = image
	m.items = items
	m.marked = make(map[int]bool)
	m.cursor = 0
}

// Hide dismisses the modal
func (m *RemoveModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m *RemoveModal) IsVisible() bool {
	return m.visible
}

// SetSize sets the modal dimensions
func (m *RemoveModal) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Selected returns the marked EDs in list order
func (m *RemoveModal) Selected() []string {
	var selected []string
	for i, item := range m.items {
		if m.marked[i] {
			selected = append(selected, item)
		}
	}
	return selected
}

// HandleKeyMsg processes a key message, returns (handled, closed, confirmed).
// A cancelled modal closes without confirming.
func (m *RemoveModal) HandleKeyMsg(msg tea.KeyMsg) (handled bool, closed bool, confirmed bool) {
	if !m.visible {
		return false, false, false
	}

	switch {
	case key.Matches(msg, RemoveModalKeys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(msg, RemoveModalKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, RemoveModalKeys.Toggle):
		if m.cursor < len(m.items) {
			m.marked[m.cursor] = !m.marked[m.cursor]
		}
	case key.Matches(msg, RemoveModalKeys.All):
		all := len(m.Selected()) < len(m.items)
		for i := range m.items {
			m.marked[i] = all
		}
	case key.Matches(msg, RemoveModalKeys.Enter):
		m.Hide()
		return true, true, true
	case key.Matches(msg, RemoveModalKeys.Escape):
		m.Hide()
		return true, true, false
	}

	return true, false, false // Consume all keys when visible
}

// View renders the removal modal
func (m *RemoveModal) View() string {
	if !m.visible {
		return ""
	}

	modalWidth := 36
	if m.width > 0 && m.width < 50 {
		modalWidth = m.width - 10
	}

	var lines []string
	lines = append(lines, styles.ModalTitleStyle.Render("Remove EDs"))
	lines = append(lines, styles.DimStyle.Render(styles.Truncate(m.image, modalWidth-4)))
	lines = append(lines, "")

	for i, item := range m.items {
		checkbox := "[ ]"
		if m.marked[i] {
			checkbox = "[x]"
		}
		line := checkbox + " " + item

		switch {
		case i == m.cursor:
			line = lipgloss.NewStyle().
				Foreground(styles.White).
				Background(styles.SlateLight).
				Render(styles.Pad(line, modalWidth-4))
		case m.marked[i]:
			line = lipgloss.NewStyle().
				Foreground(styles.Red).
				Render(styles.Pad(line, modalWidth-4))
		default:
			line = lipgloss.NewStyle().
				Foreground(styles.LightGray).
				Render(styles.Pad(line, modalWidth-4))
		}
		lines = append(lines, "  "+line)
	}

	lines = append(lines, "")
	lines = append(lines, styles.DimStyle.Render(fmt.Sprintf("%d marked", len(m.Selected()))))
	lines = append(lines, styles.DimStyle.Render("Space: Mark  a: All  Enter: Remove  Esc: Cancel"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Amber).
		Background(styles.SlateDark).
		Padding(1, 2).
		Width(modalWidth).
		Render(strings.Join(lines, "\n"))
}
