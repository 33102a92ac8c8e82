// Package catalog builds the ordered image list from a scraped FamilySearch catalog:
// one JSON listing per digital film, plus a CSV of ED description page ranges.
package catalog

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/mmcdole/edtag/internal/domain"
)

// arkPattern extracts the ark from an image URL
var arkPattern = regexp.MustCompile(`(3:1:[^/?]+)`)

// Required CSV columns
var rangeColumns = []string{"year", "utp_code", "digital_film_no", "start_index", "stop_index", "collection"}

// film is the subset of a film listing we read
type film struct {
	Images []string `json:"images"`
}

// Loader reads a catalog rooted at an fs.FS
type Loader struct {
	fsys      fs.FS
	filmsGlob string
	rangesCSV string
	logger    *slog.Logger
}

// NewLoader creates a loader. filmsGlob and rangesCSV are relative to fsys.
func NewLoader(fsys fs.FS, filmsGlob, rangesCSV string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{fsys: fsys, filmsGlob: filmsGlob, rangesCSV: rangesCSV, logger: logger}
}

// Load returns images in CSV row order, each row contributing the film
// images whose index falls within [start_index, stop_index].
// Consecutive rows of one metro therefore stay contiguous.
func (l *Loader) Load() ([]*domain.Image, error) {
	films, err := l.loadFilms()
	if err != nil {
		return nil, err
	}

	f, err := l.fsys.Open(l.rangesCSV)
	if err != nil {
		return nil, fmt.Errorf("open ranges: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read ranges header: %w", err)
	}
	cols, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var images []*domain.Image
	for line := 2; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read ranges line %d: %w", line, err)
		}

		filmNo := strings.TrimSpace(rec[cols["digital_film_no"]])
		if filmNo == "" {
			continue
		}
		arks, ok := films[filmNo]
		if !ok {
			l.logger.Warn("ranges row references unknown film", "film", filmNo, "line", line)
			continue
		}

		row, err := parseRow(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("ranges line %d: %w", line, err)
		}

		metroIndex := 0
		for index, ark := range arks {
			if index < row.start || index > row.stop {
				continue
			}
			images = append(images, &domain.Image{
				Ark:             ark,
				Year:            row.year,
				UTPCode:         row.utpCode,
				ImageIndex:      index,
				MetroImageIndex: metroIndex,
				MetroImageCount: row.stop - row.start,
				Category:        row.collection,
			})
			metroIndex++
		}
	}

	l.logger.Info("loaded catalog", "films", len(films), "images", len(images))
	return images, nil
}

// loadFilms maps film number (file stem) to its arks in listing order
func (l *Loader) loadFilms() (map[string][]string, error) {
	paths, err := doublestar.Glob(l.fsys, l.filmsGlob)
	if err != nil {
		return nil, fmt.Errorf("glob films %q: %w", l.filmsGlob, err)
	}

	films := make(map[string][]string, len(paths))
	for _, p := range paths {
		data, err := fs.ReadFile(l.fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read film %s: %w", p, err)
		}
		var fl film
		if err := json.Unmarshal(data, &fl); err != nil {
			return nil, fmt.Errorf("parse film %s: %w", p, err)
		}

		arks := make([]string, 0, len(fl.Images))
		for _, url := range fl.Images {
			if m := arkPattern.FindStringSubmatch(url); m != nil {
				arks = append(arks, m[1])
			}
		}
		stem := strings.TrimSuffix(path.Base(p), path.Ext(p))
		films[stem] = arks
	}
	return films, nil
}

type rangeRow struct {
	year       int
	utpCode    string
	start      int
	stop       int
	collection string
}

func columnIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	for _, c := range rangeColumns {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("ranges header missing column %q", c)
		}
	}
	return cols, nil
}

func parseRow(rec []string, cols map[string]int) (rangeRow, error) {
	field := func(name string) string { return strings.TrimSpace(rec[cols[name]]) }

	year, err := strconv.Atoi(field("year"))
	if err != nil {
		return rangeRow{}, fmt.Errorf("year: %w", err)
	}
	start, err := strconv.Atoi(field("start_index"))
	if err != nil {
		return rangeRow{}, fmt.Errorf("start_index: %w", err)
	}
	stop, err := strconv.Atoi(field("stop_index"))
	if err != nil {
		return rangeRow{}, fmt.Errorf("stop_index: %w", err)
	}
	return rangeRow{
		year:       year,
		utpCode:    field("utp_code"),
		start:      start,
		stop:       stop,
		collection: field("collection"),
	}, nil
}
