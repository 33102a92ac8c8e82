package tui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/edtag/internal/annotate"
	"github.com/mmcdole/edtag/internal/tui/components"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateAnnotating ApplicationState = iota
	StateHelp
)

// Model is the main application model
type Model struct {
	// State
	State ApplicationState

	// Annotation engine; every gesture goes through it
	Machine *annotate.Machine
	ctx     context.Context
	logger  *slog.Logger

	// Modals, at most one visible at a time
	InputModal  components.InputModal
	RemoveModal components.RemoveModal
	MetroPicker components.MetroPicker

	// Layout
	Width  int
	Height int
	Ready  bool

	// Status
	StatusMsg   string
	StatusIsErr bool
	statusSeq   int

	// Help screen, rendered on resize
	helpView string
}

// NewModel creates a new application model
func NewModel(ctx context.Context, machine *annotate.Machine, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	return Model{
		State:       StateAnnotating,
		Machine:     machine,
		ctx:         ctx,
		logger:      logger,
		InputModal:  components.NewInputModal(),
		RemoveModal: components.NewRemoveModal(),
		MetroPicker: components.NewMetroPicker(),
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.RemoveModal.SetSize(msg.Width, msg.Height)
		m.MetroPicker.SetSize(msg.Width, msg.Height)
		m.helpView = renderHelp(Keys, helpWidth(msg.Width), m.logger)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case StatusMsg:
		return m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil
	}

	// Cursor blink and friends go to whichever text input is focused
	var cmd tea.Cmd
	switch {
	case m.InputModal.IsVisible():
		m.InputModal, cmd, _ = m.InputModal.Update(msg)
	case m.MetroPicker.IsVisible():
		m.MetroPicker, cmd, _ = m.MetroPicker.Update(msg)
	}
	return m, cmd
}

// setStatus shows a footer message and schedules its removal
func (m Model) setStatus(text string, isErr bool) (Model, tea.Cmd) {
	m.statusSeq++
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return m, ClearStatusCmd(m.statusSeq, statusTTL)
}

// afterGesture surfaces the machine's outcome line, if any
func (m Model) afterGesture() (tea.Model, tea.Cmd) {
	status := m.Machine.TakeStatus()
	if status == "" {
		return m, nil
	}
	return m.setStatus(status, false)
}
