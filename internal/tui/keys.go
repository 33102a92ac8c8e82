package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the annotation screen
type KeyMap struct {
	// Navigation
	NextImage   key.Binding
	PrevImage   key.Binding
	NextMetro   key.Binding
	PrevMetro   key.Binding
	JumpTo      key.Binding
	JumpToMetro key.Binding
	LastEntered key.Binding
	LastInMetro key.Binding

	// Annotation
	AddNext     key.Binding
	AddPrev     key.Binding
	Record      key.Binding
	Undo        key.Binding
	SetCurrent  key.Binding
	FillTo      key.Binding
	FillByCount key.Binding
	RemoveList  key.Binding

	// Manual slots
	NewSlot       key.Binding
	SlotNext      key.Binding
	SlotPrev      key.Binding
	SlotIncrement key.Binding
	SlotDecrement key.Binding
	SlotRecord    key.Binding
	SlotRemove    key.Binding

	// Application
	Help   key.Binding
	Quit   key.Binding
	Escape key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		NextImage: key.NewBinding(
			key.WithKeys("]", "right"),
			key.WithHelp("]/→", "next image"),
		),
		PrevImage: key.NewBinding(
			key.WithKeys("[", "left"),
			key.WithHelp("[/←", "previous image"),
		),
		NextMetro: key.NewBinding(
			key.WithKeys("}"),
			key.WithHelp("}", "next metro"),
		),
		PrevMetro: key.NewBinding(
			key.WithKeys("{"),
			key.WithHelp("{", "previous metro"),
		),
		JumpTo: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "go to image number"),
		),
		JumpToMetro: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "go to metro"),
		),
		LastEntered: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "last annotated image"),
		),
		LastInMetro: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "last annotated in metro"),
		),

		// Annotation
		AddNext: key.NewBinding(
			key.WithKeys("n", "down"),
			key.WithHelp("n/↓", "record next ED"),
		),
		AddPrev: key.NewBinding(
			key.WithKeys("p", "up"),
			key.WithHelp("p/↑", "record previous ED"),
		),
		Record: key.NewBinding(
			key.WithKeys(".", "enter"),
			key.WithHelp("./enter", "record current ED"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u", "backspace"),
			key.WithHelp("u", "undo last ED"),
		),
		SetCurrent: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "type current ED"),
		),
		FillTo: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "fill up to ED"),
		),
		FillByCount: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fill N more EDs"),
		),
		RemoveList: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove EDs"),
		),

		// Manual slots
		NewSlot: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "new slot"),
		),
		SlotNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next slot"),
		),
		SlotPrev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "previous slot"),
		),
		SlotIncrement: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "slot up and record"),
		),
		SlotDecrement: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "slot down and record"),
		),
		SlotRecord: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "record slot"),
		),
		SlotRemove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "drop slot"),
		),

		// Application
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}
}

// Keys is the global keymap
var Keys = DefaultKeyMap()

// HelpSections groups bindings for the help screen
func (k KeyMap) HelpSections() []HelpSection {
	return []HelpSection{
		{Title: "Navigation", Bindings: []key.Binding{
			k.NextImage, k.PrevImage, k.NextMetro, k.PrevMetro,
			k.JumpTo, k.JumpToMetro, k.LastEntered, k.LastInMetro,
		}},
		{Title: "Annotation", Bindings: []key.Binding{
			k.AddNext, k.AddPrev, k.Record, k.Undo,
			k.SetCurrent, k.FillTo, k.FillByCount, k.RemoveList,
		}},
		{Title: "Manual slots", Bindings: []key.Binding{
			k.NewSlot, k.SlotNext, k.SlotPrev, k.SlotIncrement,
			k.SlotDecrement, k.SlotRecord, k.SlotRemove,
		}},
		{Title: "Other", Bindings: []key.Binding{k.Help, k.Escape, k.Quit}},
	}
}

// HelpSection is a titled group of bindings
type HelpSection struct {
	Title    string
	Bindings []key.Binding
}
