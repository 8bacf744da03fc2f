package greina

import (
	"context"
	"fmt"
	"time"

	"github.com/teksti/greina/pkg/greina/internalerr"
	"github.com/teksti/greina/pkg/greina/store"
)

// SaveSentence dumps a sentence and writes it to the store under a
// fresh ULID, which is returned.
func (g *Greina) SaveSentence(ctx context.Context, st store.Store, s *Sentence) (string, error) {
	data, err := s.DumpJSON()
	if err != nil {
		return "", err
	}
	id := g.newID()
	rec := store.Record{
		ID:        id,
		Text:      s.Text(),
		Data:      []byte(data),
		CreatedAt: time.Now(),
	}
	if err := st.PutSentence(ctx, rec); err != nil {
		return "", err
	}
	return id, nil
}

// LoadStored reads a persisted sentence record and reconstructs the
// detached sentence.
func (g *Greina) LoadStored(ctx context.Context, st store.Store, id string) (*Sentence, error) {
	rec, ok, err := st.GetSentence(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: sentence %s", internalerr.ErrNotFound, id)
	}
	return LoadSentenceJSON(string(rec.Data))
}
