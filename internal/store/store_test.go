package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/edtag/internal/domain"
)

type backend struct {
	name string
	open func(t *testing.T, path string) domain.AnnotationStore
}

func backends() []backend {
	return []backend{
		{"memory", func(t *testing.T, _ string) domain.AnnotationStore {
			return NewMemoryStore()
		}},
		{"bolt", func(t *testing.T, path string) domain.AnnotationStore {
			s, err := NewBoltStore(path)
			require.NoError(t, err)
			return s
		}},
		{"sqlite", func(t *testing.T, path string) domain.AnnotationStore {
			s, err := NewSQLiteStore(context.Background(), path)
			require.NoError(t, err)
			return s
		}},
	}
}

func forEachBackend(t *testing.T, fn func(t *testing.T, s domain.AnnotationStore)) {
	t.Helper()
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			s := b.open(t, filepath.Join(t.TempDir(), "edtag.db"))
			t.Cleanup(func() { _ = s.Close() })
			fn(t, s)
		})
	}
}

func record(ark, utp string) domain.ImageRecord {
	return domain.ImageRecord{Ark: ark, Year: 1930, UTPCode: utp, ImageIndex: 1, Category: "1037259"}
}

func names(rows []domain.EdRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func TestStore_UpsertImageIsIdempotent(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s domain.AnnotationStore) {
		ctx := context.Background()

		id1, err := s.UpsertImage(ctx, record("3:1:A", "X"))
		require.NoError(t, err)
		id2, err := s.UpsertImage(ctx, record("3:1:B", "X"))
		require.NoError(t, err)
		again, err := s.UpsertImage(ctx, record("3:1:A", "X"))
		require.NoError(t, err)

		assert.NotZero(t, id1)
		assert.NotEqual(t, id1, id2)
		assert.Equal(t, id1, again)
	})
}

func TestStore_EdsKeepInsertionOrder(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s domain.AnnotationStore) {
		ctx := context.Background()
		id, err := s.UpsertImage(ctx, record("3:1:A", "X"))
		require.NoError(t, err)

		for _, ed := range []string{"9", "10", "2A", "9"} {
			require.NoError(t, s.InsertEd(ctx, id, ed))
		}

		rows, err := s.ListEds(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, []string{"9", "10", "2A"}, names(rows))
		for i := 1; i < len(rows); i++ {
			assert.Greater(t, rows[i].ID, rows[i-1].ID)
		}
	})
}

func TestStore_LastEdAndDelete(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s domain.AnnotationStore) {
		ctx := context.Background()
		id, err := s.UpsertImage(ctx, record("3:1:A", "X"))
		require.NoError(t, err)

		_, err = s.LastEd(ctx, id)
		assert.True(t, errors.Is(err, domain.ErrNotFound))

		require.NoError(t, s.InsertEd(ctx, id, "12"))
		require.NoError(t, s.InsertEd(ctx, id, "3"))

		// Most recent by insertion, not by ED value
		last, err := s.LastEd(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "3", last.Name)

		require.NoError(t, s.DeleteEd(ctx, last.ID))
		rows, err := s.ListEds(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, []string{"12"}, names(rows))

		// Deleting an unknown row is a no-op
		require.NoError(t, s.DeleteEd(ctx, 9999))
	})
}

func TestStore_ListMetroEds(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s domain.AnnotationStore) {
		ctx := context.Background()
		a, _ := s.UpsertImage(ctx, record("3:1:A", "X"))
		b, _ := s.UpsertImage(ctx, record("3:1:B", "X"))
		c, _ := s.UpsertImage(ctx, record("3:1:C", "Y"))

		require.NoError(t, s.InsertEd(ctx, a, "9"))
		require.NoError(t, s.InsertEd(ctx, c, "50"))
		require.NoError(t, s.InsertEd(ctx, b, "10"))

		got, err := s.ListMetroEds(ctx, "X")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"9", "10"}, got)

		got, err = s.ListMetroEds(ctx, "Z")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestStore_InsertEdUnknownImage(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s domain.AnnotationStore) {
		err := s.InsertEd(context.Background(), 42, "1")
		assert.Error(t, err)
	})
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	for _, b := range backends() {
		if b.name == "memory" {
			continue
		}
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			path := filepath.Join(t.TempDir(), "edtag.db")

			s := b.open(t, path)
			id, err := s.UpsertImage(ctx, record("3:1:A", "X"))
			require.NoError(t, err)
			require.NoError(t, s.InsertEd(ctx, id, "7"))
			require.NoError(t, s.InsertEd(ctx, id, "7A"))
			require.NoError(t, s.Close())

			s = b.open(t, path)
			defer s.Close()

			again, err := s.UpsertImage(ctx, record("3:1:A", "X"))
			require.NoError(t, err)
			assert.Equal(t, id, again)

			rows, err := s.ListEds(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, []string{"7", "7A"}, names(rows))
		})
	}
}

func TestOpen_LocksDatabase(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "edtag.db")

	first, err := Open(ctx, DriverBolt, path)
	require.NoError(t, err)

	_, err = Open(ctx, DriverSQLite, path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrLocked))

	require.NoError(t, first.Close())

	second, err := Open(ctx, DriverBolt, path)
	require.NoError(t, err)
	require.NoError(t, second.Close())
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "postgres", filepath.Join(t.TempDir(), "x.db"))
	assert.Error(t, err)
}

func TestOpen_MemoryWithoutPath(t *testing.T) {
	s, err := Open(context.Background(), DriverBolt, "")
	require.NoError(t, err)
	_, ok := s.(*MemoryStore)
	assert.True(t, ok)
}
