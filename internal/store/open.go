package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mmcdole/edtag/internal/domain"
)

// Supported storage drivers
const (
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Open returns the annotation store for driver at path.
// On-disk stores are guarded by a lock file next to the database.
func Open(ctx context.Context, driver, path string) (domain.AnnotationStore, error) {
	if driver == DriverMemory || path == "" {
		return NewMemoryStore(), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("ensure db directory: %w", err)
	}

	lock, err := acquireLock(path)
	if err != nil {
		return nil, err
	}

	var backing domain.AnnotationStore
	switch driver {
	case DriverBolt, "":
		backing, err = NewBoltStore(path)
	case DriverSQLite:
		backing, err = NewSQLiteStore(ctx, path)
	default:
		err = fmt.Errorf("unknown storage driver %q", driver)
	}
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	return &lockedStore{AnnotationStore: backing, lock: lock}, nil
}
