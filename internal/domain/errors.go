package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrOutOfRange indicates a navigation step past the first/last image
	// or a jump to an index outside the image list
	ErrOutOfRange = errors.New("no further image in that direction")

	// ErrNoImages indicates an empty image collection
	ErrNoImages = errors.New("image collection is empty")

	// ErrNotFound indicates the requested image or ED row does not exist
	ErrNotFound = errors.New("not found")

	// ErrStepUnsupported indicates the viewer cannot step on its own
	// and the caller should reload the image by URL instead
	ErrStepUnsupported = errors.New("viewer cannot step")

	// ErrLocked indicates another process holds the annotation database
	ErrLocked = errors.New("annotation database is locked by another process")
)
