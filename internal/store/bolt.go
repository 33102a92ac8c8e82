package store

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/mmcdole/edtag/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketImages   = []byte("images")    // id -> imageRow (JSON)
	bucketArks     = []byte("arks")      // ark -> id
	bucketEds      = []byte("eds")       // image id -> nested bucket of ed id -> name
	bucketEdOwners = []byte("ed_owners") // ed id -> image id
	bucketMetros   = []byte("metros")    // utp code -> nested bucket of image ids
)

// imageRow is the persisted form of an image identity
type imageRow struct {
	ID         int64  `json:"id"`
	Year       int    `json:"year"`
	UTPCode    string `json:"utp_code"`
	Ark        string `json:"ark"`
	ImageIndex int    `json:"image_index"`
	Category   string `json:"cat"`
}

// BoltStore implements domain.AnnotationStore using BoltDB.
// Image and ED ids come from bucket sequences, so ED ids grow in insertion order.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (or creates) the database at path.
func NewBoltStore(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	// Create buckets
	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketImages, bucketArks, bucketEds, bucketEdOwners, bucketMetros} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Key helpers ===

func itob(v int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}

func btoi(b []byte) int64 {
	return int64(binary.BigEndian.Uint64(b))
}

// === Images ===

func (s *BoltStore) UpsertImage(ctx context.Context, rec domain.ImageRecord) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var id int64
	err := s.db.Update(func(tx *bolt.Tx) error {
		arks := tx.Bucket(bucketArks)
		if v := arks.Get([]byte(rec.Ark)); v != nil {
			id = btoi(v)
			return nil
		}

		images := tx.Bucket(bucketImages)
		seq, err := images.NextSequence()
		if err != nil {
			return err
		}
		id = int64(seq)

		data, err := json.Marshal(imageRow{
			ID:         id,
			Year:       rec.Year,
			UTPCode:    rec.UTPCode,
			Ark:        rec.Ark,
			ImageIndex: rec.ImageIndex,
			Category:   rec.Category,
		})
		if err != nil {
			return err
		}
		if err := images.Put(itob(id), data); err != nil {
			return err
		}
		if err := arks.Put([]byte(rec.Ark), itob(id)); err != nil {
			return err
		}

		if rec.UTPCode == "" {
			return nil
		}
		metro, err := tx.Bucket(bucketMetros).CreateBucketIfNotExists([]byte(rec.UTPCode))
		if err != nil {
			return err
		}
		return metro.Put(itob(id), []byte{})
	})
	if err != nil {
		return 0, fmt.Errorf("upsert image %s: %w", rec.Ark, err)
	}
	return id, nil
}

// === EDs ===

func (s *BoltStore) InsertEd(ctx context.Context, imageID int64, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketImages).Get(itob(imageID)) == nil {
			return fmt.Errorf("image %d: %w", imageID, domain.ErrNotFound)
		}

		eds, err := tx.Bucket(bucketEds).CreateBucketIfNotExists(itob(imageID))
		if err != nil {
			return err
		}

		// (image, name) is unique; a repeat insert is a no-op
		c := eds.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if string(v) == name {
				return nil
			}
		}

		seq, err := tx.Bucket(bucketEdOwners).NextSequence()
		if err != nil {
			return err
		}
		edID := itob(int64(seq))
		if err := eds.Put(edID, []byte(name)); err != nil {
			return err
		}
		return tx.Bucket(bucketEdOwners).Put(edID, itob(imageID))
	})
	if err != nil {
		return fmt.Errorf("insert ed %q for image %d: %w", name, imageID, err)
	}
	return nil
}

func (s *BoltStore) DeleteEd(ctx context.Context, edID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		owners := tx.Bucket(bucketEdOwners)
		owner := owners.Get(itob(edID))
		if owner == nil {
			return nil
		}
		if eds := tx.Bucket(bucketEds).Bucket(owner); eds != nil {
			if err := eds.Delete(itob(edID)); err != nil {
				return err
			}
		}
		return owners.Delete(itob(edID))
	})
	if err != nil {
		return fmt.Errorf("delete ed %d: %w", edID, err)
	}
	return nil
}

func (s *BoltStore) ListEds(ctx context.Context, imageID int64) ([]domain.EdRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rows []domain.EdRow
	err := s.db.View(func(tx *bolt.Tx) error {
		rows = listEdsTx(tx, imageID)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list eds for image %d: %w", imageID, err)
	}
	return rows, nil
}

// listEdsTx reads an image's EDs in key order, which is insertion order.
func listEdsTx(tx *bolt.Tx, imageID int64) []domain.EdRow {
	eds := tx.Bucket(bucketEds).Bucket(itob(imageID))
	if eds == nil {
		return nil
	}

	var rows []domain.EdRow
	c := eds.Cursor()
	for k, v := c.First(); k != nil; k, v = c.Next() {
		rows = append(rows, domain.EdRow{ID: btoi(k), ImageID: imageID, Name: string(v)})
	}
	return rows
}

func (s *BoltStore) LastEd(ctx context.Context, imageID int64) (domain.EdRow, error) {
	if err := ctx.Err(); err != nil {
		return domain.EdRow{}, err
	}

	var (
		row   domain.EdRow
		found bool
	)
	s.db.View(func(tx *bolt.Tx) error {
		eds := tx.Bucket(bucketEds).Bucket(itob(imageID))
		if eds == nil {
			return nil
		}
		if k, v := eds.Cursor().Last(); k != nil {
			row = domain.EdRow{ID: btoi(k), ImageID: imageID, Name: string(v)}
			found = true
		}
		return nil
	})
	if !found {
		return domain.EdRow{}, fmt.Errorf("last ed for image %d: %w", imageID, domain.ErrNotFound)
	}
	return row, nil
}

func (s *BoltStore) ListMetroEds(ctx context.Context, utpCode string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		metro := tx.Bucket(bucketMetros).Bucket([]byte(utpCode))
		if metro == nil {
			return nil
		}

		var rows []domain.EdRow
		metro.ForEach(func(k, _ []byte) error {
			rows = append(rows, listEdsTx(tx, btoi(k))...)
			return nil
		})
		sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })

		for _, r := range rows {
			names = append(names, r.Name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list eds for metro %s: %w", utpCode, err)
	}
	return names, nil
}
