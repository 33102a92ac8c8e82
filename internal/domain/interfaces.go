package domain

// Direction is a step direction for the image viewer.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// String returns "next" or "previous", matching the viewer's control names.
func (d Direction) String() string {
	if d == Backward {
		return "previous"
	}
	return "next"
}

// Viewer displays the current image. Calls are fire-and-forget:
// callers log errors and carry on.
type Viewer interface {
	// Show loads the image at url
	Show(url string) error

	// Step simulates the viewer's own next/previous control
	Step(dir Direction) error
}
