package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/mmcdole/edtag/internal/domain"
)

// MemoryStore is a non-persistent domain.AnnotationStore.
// Used when no storage path is configured, and in tests.
type MemoryStore struct {
	mu sync.RWMutex

	arks   map[string]int64
	metros map[int64]string
	eds    []domain.EdRow // Append-only order is insertion order

	nextImageID int64
	nextEdID    int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		arks:   make(map[string]int64),
		metros: make(map[int64]string),
	}
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) UpsertImage(_ context.Context, rec domain.ImageRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.arks[rec.Ark]; ok {
		return id, nil
	}
	s.nextImageID++
	s.arks[rec.Ark] = s.nextImageID
	s.metros[s.nextImageID] = rec.UTPCode
	return s.nextImageID, nil
}

func (s *MemoryStore) InsertEd(_ context.Context, imageID int64, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.metros[imageID]; !ok {
		return fmt.Errorf("insert ed %q for image %d: %w", name, imageID, domain.ErrNotFound)
	}
	for _, row := range s.eds {
		if row.ImageID == imageID && row.Name == name {
			return nil
		}
	}
	s.nextEdID++
	s.eds = append(s.eds, domain.EdRow{ID: s.nextEdID, ImageID: imageID, Name: name})
	return nil
}

func (s *MemoryStore) DeleteEd(_ context.Context, edID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, row := range s.eds {
		if row.ID == edID {
			s.eds = append(s.eds[:i], s.eds[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *MemoryStore) ListEds(_ context.Context, imageID int64) ([]domain.EdRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []domain.EdRow
	for _, row := range s.eds {
		if row.ImageID == imageID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (s *MemoryStore) LastEd(_ context.Context, imageID int64) (domain.EdRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.eds) - 1; i >= 0; i-- {
		if s.eds[i].ImageID == imageID {
			return s.eds[i], nil
		}
	}
	return domain.EdRow{}, fmt.Errorf("last ed for image %d: %w", imageID, domain.ErrNotFound)
}

func (s *MemoryStore) ListMetroEds(_ context.Context, utpCode string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var names []string
	for _, row := range s.eds {
		if s.metros[row.ImageID] == utpCode {
			names = append(names, row.Name)
		}
	}
	return names, nil
}
