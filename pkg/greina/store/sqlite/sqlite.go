// Package sqlite implements store.Store on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/teksti/greina/pkg/greina/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and initializes
// the schema.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS sentences (
	id TEXT PRIMARY KEY,
	text TEXT NOT NULL,
	data BLOB NOT NULL,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sentences_created ON sentences(created_at);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// PutSentence inserts or replaces a sentence record.
func (s *sqliteStore) PutSentence(ctx context.Context, r store.Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sentences (id, text, data, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			text = excluded.text,
			data = excluded.data,
			created_at = excluded.created_at`,
		r.ID, r.Text, r.Data, r.CreatedAt.UTC().Format(time.RFC3339Nano))
	return err
}

// GetSentence implements store.Store.
func (s *sqliteStore) GetSentence(ctx context.Context, id string) (store.Record, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, text, data, created_at FROM sentences WHERE id = ?`, id)
	r, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return store.Record{}, false, nil
	}
	if err != nil {
		return store.Record{}, false, err
	}
	return r, true, nil
}

// ListSentences returns the newest records first.
func (s *sqliteStore) ListSentences(ctx context.Context, limit int) ([]store.Record, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, data, created_at FROM sentences ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DeleteSentence implements store.Store.
func (s *sqliteStore) DeleteSentence(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sentences WHERE id = ?`, id)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (store.Record, error) {
	var r store.Record
	var created string
	if err := row.Scan(&r.ID, &r.Text, &r.Data, &created); err != nil {
		return store.Record{}, err
	}
	if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
		r.CreatedAt = t
	}
	return r, nil
}
