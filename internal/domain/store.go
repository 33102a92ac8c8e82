package domain

import "context"

// EdRow is one persisted ED assignment.
type EdRow struct {
	ID      int64  // Row identity, increasing in insertion order
	ImageID int64  // Owning image's DBID
	Name    string // Upper-case ED string
}

// ImageRecord is the persisted identity of an image.
type ImageRecord struct {
	Ark        string
	Year       int
	UTPCode    string
	ImageIndex int
	Category   string
}

// AnnotationStore is the backing store for ED assignments.
// Every write commits before returning.
type AnnotationStore interface {
	// UpsertImage registers an image by ark (idempotent) and returns its stable ID
	UpsertImage(ctx context.Context, rec ImageRecord) (int64, error)

	// InsertEd records (imageID, name); a duplicate pair is silently ignored
	InsertEd(ctx context.Context, imageID int64, name string) error

	// DeleteEd removes a single ED row by its own ID
	DeleteEd(ctx context.Context, edID int64) error

	// ListEds returns an image's ED rows ordered by insertion
	ListEds(ctx context.Context, imageID int64) ([]EdRow, error)

	// LastEd returns the most recently inserted row for an image (ErrNotFound if none)
	LastEd(ctx context.Context, imageID int64) (EdRow, error)

	// ListMetroEds returns every ED name recorded for images in a metro
	ListMetroEds(ctx context.Context, utpCode string) ([]string, error)

	Close() error
}
