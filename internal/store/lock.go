package store

import (
	"fmt"

	"github.com/gofrs/flock"

	"github.com/mmcdole/edtag/internal/domain"
)

// lockedStore holds an exclusive file lock for the lifetime of the wrapped store,
// keeping a second edtag process from writing the same database.
type lockedStore struct {
	domain.AnnotationStore
	lock *flock.Flock
}

func acquireLock(dbPath string) (*flock.Flock, error) {
	lock := flock.New(dbPath + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", dbPath, domain.ErrLocked)
	}
	return lock, nil
}

func (s *lockedStore) Close() error {
	err := s.AnnotationStore.Close()
	if unlockErr := s.lock.Unlock(); unlockErr != nil && err == nil {
		err = fmt.Errorf("release lock: %w", unlockErr)
	}
	return err
}
