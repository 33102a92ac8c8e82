package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultImageURLTemplate points at the FamilySearch image viewer.
// Placeholders: {ark}, {i} (image index within the film), {cat} (collection).
const DefaultImageURLTemplate = "https://www.familysearch.org/ark:/61903/{ark}?i={i}&cat={cat}"

// EdSet is a deduplicated, insertion-ordered set of upper-case ED strings.
type EdSet struct {
	items []string
	index map[string]int
}

// NewEdSet builds a set from values, keeping first-seen order.
func NewEdSet(values ...string) EdSet {
	var s EdSet
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add inserts ed (upper-cased). Returns false if it was already present.
func (s *EdSet) Add(ed string) bool {
	ed = strings.ToUpper(strings.TrimSpace(ed))
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if _, ok := s.index[ed]; ok {
		return false
	}
	s.index[ed] = len(s.items)
	s.items = append(s.items, ed)
	return true
}

// Remove deletes an exact match. Returns false if ed was absent.
func (s *EdSet) Remove(ed string) bool {
	i, ok := s.index[ed]
	if !ok {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.index, ed)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j]] = j
	}
	return true
}

// Contains reports whether ed (upper-cased) is in the set.
func (s EdSet) Contains(ed string) bool {
	_, ok := s.index[strings.ToUpper(ed)]
	return ok
}

// Len returns the set size.
func (s EdSet) Len() int {
	return len(s.items)
}

// Last returns the most recently inserted value.
func (s EdSet) Last() (string, bool) {
	if len(s.items) == 0 {
		return "", false
	}
	return s.items[len(s.items)-1], true
}

// Values returns a copy of the values in insertion order.
func (s EdSet) Values() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Image is one scanned page in the collection.
type Image struct {
	Ark             string // Archival identifier, unique across the collection
	Year            int
	UTPCode         string // Metro area code
	ImageIndex      int    // Index within the source film
	MetroImageIndex int    // Position within the metro group
	MetroImageCount int    // Size of the metro group
	Category        string // Collection/catalog tag

	// DBID is assigned on first registration with the backing store. Zero = unregistered.
	DBID int64

	Eds EdSet
}

// Equal compares images by ark only.
func (img *Image) Equal(other *Image) bool {
	if img == nil || other == nil {
		return img == other
	}
	return img.Ark == other.Ark
}

// AddEd records ed in the image's set. Re-adding is a no-op.
func (img *Image) AddEd(ed string) {
	img.Eds.Add(ed)
}

// RemoveEd removes ed if present.
func (img *Image) RemoveEd(ed string) {
	img.Eds.Remove(ed)
}

// LastEd returns the most recently added ED.
func (img *Image) LastEd() (string, bool) {
	return img.Eds.Last()
}

// URL renders the viewer URL for this image from template.
func (img *Image) URL(template string) string {
	if template == "" {
		template = DefaultImageURLTemplate
	}
	r := strings.NewReplacer(
		"{ark}", img.Ark,
		"{i}", strconv.Itoa(img.ImageIndex),
		"{cat}", img.Category,
	)
	return r.Replace(template)
}

// String returns a one-line description for logs and the status bar.
func (img *Image) String() string {
	return fmt.Sprintf("%d %-15s %4d %s [%4d/%d]",
		img.Year, img.UTPCode, img.ImageIndex, img.Ark, img.MetroImageIndex, img.MetroImageCount)
}
