// Package export writes recorded ED assignments to a Parquet file, one row per (image, ED).
package export

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/mmcdole/edtag/internal/domain"
)

// Record is one ED assignment
type Record struct {
	Year       int32  `parquet:"year"`
	UTPCode    string `parquet:"utp_code"`
	Ark        string `parquet:"ark"`
	ImageIndex int32  `parquet:"image_index"`
	Category   string `parquet:"cat"`
	Ed         string `parquet:"ed"`
	Position   int32  `parquet:"ed_position"` // Insertion order within the image
}

// Records flattens images into rows, preserving image and ED order.
// Images with no EDs produce no rows.
func Records(images []*domain.Image) []Record {
	var records []Record
	for _, img := range images {
		for i, ed := range img.Eds.Values() {
			records = append(records, Record{
				Year:       int32(img.Year),
				UTPCode:    img.UTPCode,
				Ark:        img.Ark,
				ImageIndex: int32(img.ImageIndex),
				Category:   img.Category,
				Ed:         ed,
				Position:   int32(i),
			})
		}
	}
	return records
}

// Write encodes the images' EDs as Parquet to w and returns the row count.
func Write(w io.Writer, images []*domain.Image) (int, error) {
	records := Records(images)

	writer := parquet.NewGenericWriter[Record](w)
	if _, err := writer.Write(records); err != nil {
		return 0, fmt.Errorf("write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return 0, fmt.Errorf("close parquet writer: %w", err)
	}
	return len(records), nil
}

// WriteFile writes the export to path, replacing it only once the write succeeds.
func WriteFile(path string, images []*domain.Image, logger *slog.Logger) (int, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, fmt.Errorf("create export directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".edtag-export-*")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := Write(tmp, images)
	if err != nil {
		tmp.Close()
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return 0, fmt.Errorf("move export into place: %w", err)
	}

	logger.Info("exported annotations", "path", path, "rows", n)
	return n, nil
}
