package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/edtag/internal/annotate"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.State == StateHelp {
		if key.Matches(msg, Keys.Escape, Keys.Help, Keys.Quit) {
			m.State = StateAnnotating
		}
		return m, nil
	}

	// Route to active modal if any
	if handled, newModel, cmd := m.routeToModal(msg); handled {
		return newModel, cmd
	}

	ctx := m.ctx
	mc := m.Machine

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	// Navigation
	case key.Matches(msg, Keys.NextImage):
		mc.NextImage(ctx)
	case key.Matches(msg, Keys.PrevImage):
		mc.PrevImage(ctx)
	case key.Matches(msg, Keys.NextMetro):
		mc.NextMetro(ctx)
	case key.Matches(msg, Keys.PrevMetro):
		mc.PrevMetro(ctx)
	case key.Matches(msg, Keys.LastEntered):
		mc.SkipToLastEntered(ctx)
	case key.Matches(msg, Keys.LastInMetro):
		mc.SkipToLastEnteredWithinMetro(ctx)
	case key.Matches(msg, Keys.JumpTo):
		return m.openInput(annotate.ModeJumpTo)
	case key.Matches(msg, Keys.JumpToMetro):
		m.MetroPicker.Show(mc.Navigator().Metros())
		return m, textinput.Blink

	// Annotation
	case key.Matches(msg, Keys.AddNext):
		mc.AddNextEd(ctx)
	case key.Matches(msg, Keys.AddPrev):
		mc.AddPrevEd(ctx)
	case key.Matches(msg, Keys.Record):
		mc.RecordCurrentEd(ctx)
	case key.Matches(msg, Keys.Undo):
		mc.Undo(ctx)
	case key.Matches(msg, Keys.SetCurrent):
		return m.openInput(annotate.ModeCurrentEd)
	case key.Matches(msg, Keys.FillTo):
		return m.openInput(annotate.ModeFillToEd)
	case key.Matches(msg, Keys.FillByCount):
		return m.openInput(annotate.ModeFillByCount)
	case key.Matches(msg, Keys.RemoveList):
		if items := mc.OpenRemoveList(); items != nil {
			m.RemoveModal.Show(mc.Navigator().Curr().String(), items)
		}

	// Manual slots
	case key.Matches(msg, Keys.NewSlot):
		return m.openInput(annotate.ModeCustomEd)
	case key.Matches(msg, Keys.SlotNext):
		mc.SlotNext()
	case key.Matches(msg, Keys.SlotPrev):
		mc.SlotPrev()
	case key.Matches(msg, Keys.SlotIncrement):
		mc.SlotIncrement(ctx)
	case key.Matches(msg, Keys.SlotDecrement):
		mc.SlotDecrement(ctx)
	case key.Matches(msg, Keys.SlotRecord):
		mc.SlotRecord(ctx)
	case key.Matches(msg, Keys.SlotRemove):
		mc.SlotRemove()

	default:
		return m, nil
	}

	return m.afterGesture()
}

// openInput focuses a typing mode and shows its prompt
func (m Model) openInput(mode annotate.Mode) (tea.Model, tea.Cmd) {
	if !m.Machine.Open(mode) {
		return m, nil
	}
	m.InputModal.Show(mode.Prompt(), m.inputHint(mode))
	return m, textinput.Blink
}

// inputHint is the placeholder for a typing mode
func (m Model) inputHint(mode annotate.Mode) string {
	switch mode {
	case annotate.ModeCurrentEd, annotate.ModeCustomEd:
		return "e.g. 12B"
	case annotate.ModeFillToEd:
		return fmt.Sprintf("after %s", m.Machine.CurrEd())
	case annotate.ModeFillByCount:
		return "how many"
	case annotate.ModeJumpTo:
		return fmt.Sprintf("1-%d", m.Machine.Navigator().Len())
	}
	return ""
}

// routeToModal sends keys to the visible modal. Returns (handled, model, cmd).
func (m Model) routeToModal(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	switch {
	case m.InputModal.IsVisible():
		var cmd tea.Cmd
		var submitted bool
		m.InputModal, cmd, submitted = m.InputModal.Update(msg)
		if submitted {
			value := m.InputModal.Value()
			m.InputModal.Hide()
			m.Machine.Confirm(m.ctx, value)
			model, statusCmd := m.afterGesture()
			return true, model, statusCmd
		}
		if !m.InputModal.IsVisible() {
			m.Machine.Cancel()
		}
		return true, m, cmd

	case m.RemoveModal.IsVisible():
		_, closed, confirmed := m.RemoveModal.HandleKeyMsg(msg)
		if !closed {
			return true, m, nil
		}
		if confirmed {
			m.Machine.DismissRemoveList(m.ctx, m.RemoveModal.Selected())
		} else {
			m.Machine.Cancel()
		}
		model, cmd := m.afterGesture()
		return true, model, cmd

	case m.MetroPicker.IsVisible():
		var cmd tea.Cmd
		var selected bool
		m.MetroPicker, cmd, selected = m.MetroPicker.Update(msg)
		if selected {
			if code, ok := m.MetroPicker.Selected(); ok {
				m.Machine.JumpToMetro(m.ctx, code)
			}
			model, statusCmd := m.afterGesture()
			return true, model, statusCmd
		}
		return true, m, cmd
	}

	return false, m, nil
}
