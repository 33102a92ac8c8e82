package tui

// Message types for the TUI

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message it was scheduled for.
// A newer message outlives an older message's timer.
type ClearStatusMsg struct {
	Seq int
}
