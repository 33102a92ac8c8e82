package components

import "github.com/charmbracelet/bubbles/key"

// MetroPickerKeyMap defines key bindings for the metro picker
type MetroPickerKeyMap struct {
	Escape key.Binding
	Enter  key.Binding
	Up     key.Binding
	Down   key.Binding
}

// DefaultMetroPickerKeyMap returns the default metro picker key bindings
func DefaultMetroPickerKeyMap() MetroPickerKeyMap {
	return MetroPickerKeyMap{
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "go"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑/C-p", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓/C-n", "next"),
		),
	}
}

// RemoveModalKeyMap defines key bindings for the ED removal list
type RemoveModalKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	All    key.Binding
	Enter  key.Binding
	Escape key.Binding
}

// DefaultRemoveModalKeyMap returns the default removal list key bindings
func DefaultRemoveModalKeyMap() RemoveModalKeyMap {
	return RemoveModalKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "toggle"),
		),
		All: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "toggle all"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "remove marked"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// Package-level key map instances
var (
	MetroPickerKeys = DefaultMetroPickerKeyMap()
	RemoveModalKeys = DefaultRemoveModalKeyMap()
)
