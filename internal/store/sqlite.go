package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/mmcdole/edtag/internal/domain"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteStore implements domain.AnnotationStore on the images/eds tables.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (or creates) the database at path and applies the schema.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("ensure db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Pragmas are per connection
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) UpsertImage(ctx context.Context, rec domain.ImageRecord) (int64, error) {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO images (year, utp_code, ark, image_index, cat)
            VALUES (?, ?, ?, ?, ?) ON CONFLICT DO NOTHING`,
		rec.Year,
		rec.UTPCode,
		rec.Ark,
		rec.ImageIndex,
		rec.Category,
	)
	if err != nil {
		return 0, fmt.Errorf("upsert image %s: %w", rec.Ark, err)
	}

	var id int64
	if err := s.db.QueryRowContext(ctx, `SELECT id FROM images WHERE ark = ?`, rec.Ark).Scan(&id); err != nil {
		return 0, fmt.Errorf("resolve image %s: %w", rec.Ark, err)
	}
	return id, nil
}

func (s *SQLiteStore) InsertEd(ctx context.Context, imageID int64, name string) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO eds (image_id, name) VALUES (?, ?) ON CONFLICT DO NOTHING`,
		imageID,
		name,
	)
	if err != nil {
		return fmt.Errorf("insert ed %q for image %d: %w", name, imageID, err)
	}
	return nil
}

func (s *SQLiteStore) DeleteEd(ctx context.Context, edID int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM eds WHERE id = ?`, edID); err != nil {
		return fmt.Errorf("delete ed %d: %w", edID, err)
	}
	return nil
}

func (s *SQLiteStore) ListEds(ctx context.Context, imageID int64) ([]domain.EdRow, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, name FROM eds WHERE image_id = ? ORDER BY id`,
		imageID,
	)
	if err != nil {
		return nil, fmt.Errorf("list eds for image %d: %w", imageID, err)
	}
	defer rows.Close()

	var out []domain.EdRow
	for rows.Next() {
		row := domain.EdRow{ImageID: imageID}
		if err := rows.Scan(&row.ID, &row.Name); err != nil {
			return nil, fmt.Errorf("scan ed row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) LastEd(ctx context.Context, imageID int64) (domain.EdRow, error) {
	row := domain.EdRow{ImageID: imageID}
	err := s.db.QueryRowContext(
		ctx,
		`SELECT id, name FROM eds WHERE image_id = ? ORDER BY id DESC LIMIT 1`,
		imageID,
	).Scan(&row.ID, &row.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.EdRow{}, fmt.Errorf("last ed for image %d: %w", imageID, domain.ErrNotFound)
	}
	if err != nil {
		return domain.EdRow{}, fmt.Errorf("last ed for image %d: %w", imageID, err)
	}
	return row, nil
}

func (s *SQLiteStore) ListMetroEds(ctx context.Context, utpCode string) ([]string, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT e.name
            FROM eds AS e
                JOIN images AS i ON i.id = e.image_id
            WHERE i.utp_code = ?
            ORDER BY e.id`,
		utpCode,
	)
	if err != nil {
		return nil, fmt.Errorf("list eds for metro %s: %w", utpCode, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan ed name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
