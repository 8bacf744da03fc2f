// Package memstore is an in-memory implementation of store.Store for
// tests.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/teksti/greina/pkg/greina/store"
)

// Store is an in-memory store.Store.
type Store struct {
	mu      sync.RWMutex
	records map[string]store.Record
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{records: make(map[string]store.Record)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// PutSentence inserts or replaces a record, keyed by ID.
func (s *Store) PutSentence(ctx context.Context, r store.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := make([]byte, len(r.Data))
	copy(data, r.Data)
	r.Data = data
	s.records[r.ID] = r
	return nil
}

// GetSentence implements store.Store.
func (s *Store) GetSentence(ctx context.Context, id string) (store.Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id]
	return r, ok, nil
}

// ListSentences returns records ordered by ID (ULIDs sort by creation
// time), newest first.
func (s *Store) ListSentences(ctx context.Context, limit int) ([]store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]store.Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// DeleteSentence implements store.Store.
func (s *Store) DeleteSentence(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}
