package navigator

import (
	"context"
	"errors"
	"strings"

	"github.com/mmcdole/edtag/internal/domain"
)

// Mutations persist first and only then touch the in-memory image.
// A persistence failure is logged and the mutation is dropped; the
// interactive session carries on.

// AddEdToCurrent records ed against the current image. Re-recording an
// existing ED is a no-op. Returns false if the write failed.
func (n *Navigator) AddEdToCurrent(ctx context.Context, ed string) bool {
	img := n.Curr()
	name := strings.ToUpper(strings.TrimSpace(ed))

	if err := n.backing.InsertEd(ctx, img.DBID, name); err != nil {
		n.logger.Warn("failed to insert ed", "error", err, "ark", img.Ark, "ed", name)
		return false
	}
	img.AddEd(name)
	n.logger.Debug("recorded ed", "ark", img.Ark, "ed", name)
	return true
}

// RemoveLastEd deletes the most recently inserted ED of the current image.
// Recency is by insertion, not by ED order.
func (n *Navigator) RemoveLastEd(ctx context.Context) (string, bool) {
	img := n.Curr()

	row, err := n.backing.LastEd(ctx, img.DBID)
	if errors.Is(err, domain.ErrNotFound) {
		return "", false
	}
	if err != nil {
		n.logger.Warn("failed to find last ed", "error", err, "ark", img.Ark)
		return "", false
	}

	if err := n.backing.DeleteEd(ctx, row.ID); err != nil {
		n.logger.Warn("failed to remove last ed", "error", err, "ark", img.Ark, "ed", row.Name)
		return "", false
	}
	img.RemoveEd(row.Name)
	n.logger.Debug("removed last ed", "ark", img.Ark, "ed", row.Name)
	return row.Name, true
}

// RemoveEd deletes a named ED from the current image regardless of recency.
// Returns false if the ED was not recorded or the delete failed.
func (n *Navigator) RemoveEd(ctx context.Context, ed string) bool {
	img := n.Curr()

	rows, err := n.backing.ListEds(ctx, img.DBID)
	if err != nil {
		n.logger.Warn("failed to list eds", "error", err, "ark", img.Ark, "ed", ed)
		return false
	}

	for _, row := range rows {
		if row.Name != ed {
			continue
		}
		if err := n.backing.DeleteEd(ctx, row.ID); err != nil {
			n.logger.Warn("failed to remove ed", "error", err, "ark", img.Ark, "ed", ed)
			return false
		}
		img.RemoveEd(row.Name)
		n.logger.Debug("removed ed", "ark", img.Ark, "ed", ed)
		return true
	}
	return false
}
