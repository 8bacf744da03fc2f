package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/teksti/greina/pkg/greina/store"
)

func TestPutGetDelete(t *testing.T) {
	ctx := context.Background()
	s := New()
	defer s.Close()

	rec := store.Record{ID: "01A", Text: "hestur kom", Data: []byte(`{"x":1}`), CreatedAt: time.Now()}
	if err := s.PutSentence(ctx, rec); err != nil {
		t.Fatal(err)
	}
	got, ok, err := s.GetSentence(ctx, "01A")
	if err != nil || !ok {
		t.Fatalf("GetSentence: %v %v", ok, err)
	}
	if got.Text != rec.Text || string(got.Data) != string(rec.Data) {
		t.Errorf("got %+v", got)
	}
	if err := s.DeleteSentence(ctx, "01A"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.GetSentence(ctx, "01A"); ok {
		t.Error("record survived deletion")
	}
}

func TestGetMissing(t *testing.T) {
	s := New()
	_, ok, err := s.GetSentence(context.Background(), "nope")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("missing record reported found")
	}
}

func TestPutCopiesData(t *testing.T) {
	ctx := context.Background()
	s := New()
	data := []byte("original")
	s.PutSentence(ctx, store.Record{ID: "01A", Data: data})
	data[0] = 'X'
	got, _, _ := s.GetSentence(ctx, "01A")
	if string(got.Data) != "original" {
		t.Error("stored data aliases the caller's buffer")
	}
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := New()
	for _, id := range []string{"01A", "01C", "01B"} {
		s.PutSentence(ctx, store.Record{ID: id})
	}
	recs, err := s.ListSentences(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 || recs[0].ID != "01C" || recs[2].ID != "01A" {
		t.Errorf("order = %v", recs)
	}
	limited, _ := s.ListSentences(ctx, 2)
	if len(limited) != 2 {
		t.Errorf("limit ignored: %v", limited)
	}
}
