package navigator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmcdole/edtag/internal/domain"
)

// Navigator owns the ordered image list, the cursor into it, and every
// mutation of an image's ED set. Images must be grouped contiguously by
// metro code; the metro-boundary steps rely on it.
//
// A Navigator is not safe for concurrent use. The annotation loop drives
// it one gesture at a time.
type Navigator struct {
	images    []*domain.Image
	index     int
	backing   domain.AnnotationStore
	seedOrder SeedOrder
	logger    *slog.Logger
}

// New registers every image with backing and loads previously recorded EDs,
// so a fresh Navigator over the same store resumes exactly where the last left off.
func New(ctx context.Context, backing domain.AnnotationStore, images []*domain.Image, logger *slog.Logger) (*Navigator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(images) == 0 {
		return nil, domain.ErrNoImages
	}

	n := &Navigator{
		images:    images,
		backing:   backing,
		seedOrder: SeedByEd,
		logger:    logger,
	}
	if err := n.registerAll(ctx); err != nil {
		return nil, err
	}
	return n, nil
}

// registerAll upserts each image's identity, caches its DBID and
// replays its persisted EDs in insertion order.
func (n *Navigator) registerAll(ctx context.Context) error {
	loaded := 0
	for _, img := range n.images {
		id, err := n.backing.UpsertImage(ctx, domain.ImageRecord{
			Ark:        img.Ark,
			Year:       img.Year,
			UTPCode:    img.UTPCode,
			ImageIndex: img.ImageIndex,
			Category:   img.Category,
		})
		if err != nil {
			return fmt.Errorf("register image %s: %w", img.Ark, err)
		}
		img.DBID = id

		rows, err := n.backing.ListEds(ctx, id)
		if err != nil {
			return fmt.Errorf("load eds for %s: %w", img.Ark, err)
		}
		for _, row := range rows {
			img.AddEd(row.Name)
		}
		loaded += len(rows)
	}

	n.logger.Info("registered images", "images", len(n.images), "eds", loaded)
	return nil
}

// SetSeedOrder selects how LargestEdForCurrentMetro ranks ED strings.
func (n *Navigator) SetSeedOrder(order SeedOrder) {
	n.seedOrder = order
}

// Curr returns the image under the cursor.
func (n *Navigator) Curr() *domain.Image {
	return n.images[n.index]
}

// Index returns the cursor position.
func (n *Navigator) Index() int {
	return n.index
}

// Len returns the number of images.
func (n *Navigator) Len() int {
	return len(n.images)
}

// Images returns the backing image list. Callers must not reorder it.
func (n *Navigator) Images() []*domain.Image {
	return n.images
}

// Advance moves to the next image. At the last image it returns
// ErrOutOfRange and leaves the cursor alone.
func (n *Navigator) Advance() (*domain.Image, error) {
	if n.index+1 >= len(n.images) {
		return nil, domain.ErrOutOfRange
	}
	n.index++
	return n.Curr(), nil
}

// Retreat moves to the previous image. At the first image it returns
// ErrOutOfRange and leaves the cursor alone.
func (n *Navigator) Retreat() (*domain.Image, error) {
	if n.index == 0 {
		return nil, domain.ErrOutOfRange
	}
	n.index--
	return n.Curr(), nil
}

// NextMetro moves to the first image of the following metro group.
func (n *Navigator) NextMetro() (*domain.Image, bool) {
	for i := n.index; i < len(n.images)-1; i++ {
		if n.images[i].UTPCode != n.images[i+1].UTPCode {
			n.index = i + 1
			return n.Curr(), true
		}
	}
	return nil, false
}

// PrevMetro moves backward across the nearest metro boundary behind the
// cursor, landing on the last image of the preceding group.
func (n *Navigator) PrevMetro() (*domain.Image, bool) {
	for i := n.index; i >= 1; i-- {
		if n.images[i].UTPCode != n.images[i-1].UTPCode {
			n.index = i - 1
			return n.Curr(), true
		}
	}
	return nil, false
}

// JumpTo sets the cursor directly.
func (n *Navigator) JumpTo(index int) error {
	if index < 0 || index >= len(n.images) {
		return fmt.Errorf("jump to %d of %d: %w", index, len(n.images), domain.ErrOutOfRange)
	}
	n.index = index
	return nil
}

// JumpToMetro moves to the first image of the named metro group.
func (n *Navigator) JumpToMetro(utpCode string) bool {
	for i, img := range n.images {
		if img.UTPCode == utpCode {
			n.index = i
			return true
		}
	}
	return false
}

// SkipToLastEntered moves to the last image in the collection that has any ED.
func (n *Navigator) SkipToLastEntered() bool {
	for i := len(n.images) - 1; i >= 0; i-- {
		if n.images[i].Eds.Len() > 0 {
			n.index = i
			return true
		}
	}
	return false
}

// SkipToLastEnteredWithinMetro is SkipToLastEntered restricted to the
// current image's metro group.
func (n *Navigator) SkipToLastEnteredWithinMetro() bool {
	utp := n.Curr().UTPCode
	for i := len(n.images) - 1; i >= 0; i-- {
		img := n.images[i]
		if img.UTPCode == utp && img.Eds.Len() > 0 {
			n.index = i
			return true
		}
	}
	return false
}
