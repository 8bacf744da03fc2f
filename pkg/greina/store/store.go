// Package store defines persistence for dumped sentences, so that parse
// results can be written to a database and reloaded without re-parsing.
package store

import (
	"context"
	"time"
)

// Record is one persisted sentence: a ULID, the raw sentence text for
// listing, the serialized sentence record, and the save time.
type Record struct {
	ID        string
	Text      string
	Data      []byte
	CreatedAt time.Time
}

// Store persists and retrieves sentence records.
type Store interface {
	Close() error

	PutSentence(ctx context.Context, r Record) error
	GetSentence(ctx context.Context, id string) (Record, bool, error)
	ListSentences(ctx context.Context, limit int) ([]Record, error)
	DeleteSentence(ctx context.Context, id string) error
}
