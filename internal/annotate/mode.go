package annotate

// Mode is the input widget currently holding focus.
type Mode int

const (
	// ModeNone: no widget focused, navigation and annotation gestures are live
	ModeNone Mode = iota
	// ModeCurrentEd: typing a replacement for the current ED
	ModeCurrentEd
	// ModeCustomEd: typing a new manual slot value
	ModeCustomEd
	// ModeFillToEd: typing a target ED to fill up to
	ModeFillToEd
	// ModeFillByCount: typing a repeat count
	ModeFillByCount
	// ModeJumpTo: typing a 1-based image position
	ModeJumpTo
	// ModeRemoveList: multi-selecting the current image's EDs for removal
	ModeRemoveList
)

func (m Mode) String() string {
	switch m {
	case ModeCurrentEd:
		return "current-ed"
	case ModeCustomEd:
		return "custom-ed"
	case ModeFillToEd:
		return "fill-to-ed"
	case ModeFillByCount:
		return "fill-by-count"
	case ModeJumpTo:
		return "jump-to"
	case ModeRemoveList:
		return "remove-list"
	default:
		return "none"
	}
}

// IsTyping reports whether the mode takes a single line of text.
func (m Mode) IsTyping() bool {
	switch m {
	case ModeCurrentEd, ModeCustomEd, ModeFillToEd, ModeFillByCount, ModeJumpTo:
		return true
	}
	return false
}

// Prompt is the label shown beside the text input.
func (m Mode) Prompt() string {
	switch m {
	case ModeCurrentEd:
		return "Current ED"
	case ModeCustomEd:
		return "New slot"
	case ModeFillToEd:
		return "Fill to ED"
	case ModeFillByCount:
		return "Fill count"
	case ModeJumpTo:
		return "Go to image"
	}
	return ""
}
