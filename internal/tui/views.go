package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/edtag/internal/annotate"
	"github.com/mmcdole/edtag/internal/tui/styles"
)

// progressBarWidth is the width of the metro and overall bars
const progressBarWidth = 24

// View renders the whole screen
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			styles.ModalStyle.Render(m.helpView))
	}

	content := lipgloss.NewStyle().
		Height(m.Height - 1).
		Padding(1, 2).
		Render(m.renderAnnotation())

	view := lipgloss.JoinVertical(lipgloss.Left, content, m.renderFooter())

	// Overlay the visible modal
	switch {
	case m.InputModal.IsVisible():
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.InputModal.View())
	case m.RemoveModal.IsVisible():
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.RemoveModal.View())
	case m.MetroPicker.IsVisible():
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.MetroPicker.View())
	}

	return view
}

// renderAnnotation renders the image header, the running ED, the image's
// recorded EDs, the manual slots and progress
func (m Model) renderAnnotation() string {
	nav := m.Machine.Navigator()
	img := nav.Curr()
	metro := nav.CurrentMetro()
	annotated, total := nav.Progress()

	header := styles.TitleStyle.Render(fmt.Sprintf("%d  %s", img.Year, img.UTPCode)) +
		styles.DimStyle.Render(fmt.Sprintf("   image %d of %d in metro  ·  #%d overall  ·  %s",
			img.MetroImageIndex+1, metro.Count, nav.Index()+1, img.Ark))

	recorded := styles.DimStyle.Render("none")
	if eds := img.Eds.Values(); len(eds) > 0 {
		recorded = styles.AccentStyle.Render(strings.Join(eds, ", "))
	}

	rows := []string{
		header,
		"",
		row("Current ED", styles.CurrentEdStyle.Render(m.Machine.CurrEd().String())),
		row("This image", recorded),
		row("Slots", m.renderSlots()),
		"",
		row("Metro", fmt.Sprintf("%s %s",
			styles.RenderProgressBar(metro.Annotated, metro.Count, progressBarWidth),
			styles.DimStyle.Render(fmt.Sprintf("%d/%d images, %d EDs", metro.Annotated, metro.Count, metro.EdCount)))),
		row("Overall", fmt.Sprintf("%s %s",
			styles.RenderProgressBar(annotated, total, progressBarWidth),
			styles.DimStyle.Render(fmt.Sprintf("%d/%d images", annotated, total)))),
	}
	return strings.Join(rows, "\n")
}

func row(label, value string) string {
	return styles.LabelStyle.Render(label) + value
}

// renderSlots renders the manual slots with the cursor highlighted
func (m Model) renderSlots() string {
	slots := m.Machine.Slots()
	if slots.Len() == 0 {
		return styles.DimStyle.Render("none (a to add)")
	}

	parts := make([]string, slots.Len())
	for i, ed := range slots.Slots() {
		if i == slots.Cursor() {
			parts[i] = styles.SlotSelectedStyle.Render(ed.String())
		} else {
			parts[i] = styles.SlotStyle.Render(ed.String())
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// renderFooter renders a single-line footer: status left, mode center, help hint right
func (m Model) renderFooter() string {
	var left string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	}

	var center string
	if mode := m.Machine.Mode(); mode != annotate.ModeNone {
		center = styles.AccentStyle.Render(mode.String())
	}

	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		gap := max(m.Width-leftWidth-rightWidth, 0)
		return left + strings.Repeat(" ", gap) + right
	}

	// Center the mode in available space
	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}
