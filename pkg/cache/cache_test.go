package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/papergraph/papergraph/pkg/common"
)

// memStore is an in-memory Store for tests.
type memStore struct {
	data  []byte
	saves int
}

func (s *memStore) Load(_ context.Context) ([]byte, error) {
	return s.data, nil
}

func (s *memStore) Save(_ context.Context, data []byte) error {
	s.data = data
	s.saves++
	return nil
}

func TestPaperID(t *testing.T) {
	first := PaperID("Attention Is All You Need")
	second := PaperID("Attention Is All You Need")
	other := PaperID("Deep Residual Learning")

	if first != second {
		t.Error("same title produced different IDs")
	}
	if first == other {
		t.Error("different titles produced the same ID")
	}
	if len(first) != 32 {
		t.Errorf("got ID of length %d, want 32", len(first))
	}
}

func TestCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}

	c, err := NewPaperCache(ctx, store)
	if err != nil {
		t.Fatal(err)
	}

	title := "On Things"
	if c.HasPaper(title) {
		t.Error("empty cache claims to have the paper")
	}

	authors := []common.AuthorRecord{{Name: "Alice", Order: 1}}
	if err := c.UpdatePaperData(ctx, title, PaperUpdate{AuthorMetadata: authors}); err != nil {
		t.Fatal(err)
	}
	if !c.HasAuthorMetadata(title) {
		t.Error("author metadata not marked complete")
	}
	if c.HasEntities(title) {
		t.Error("entities marked complete without extraction")
	}

	// A fresh instance over the same store sees the persisted state.
	reloaded, err := NewPaperCache(ctx, store)
	if err != nil {
		t.Fatal(err)
	}
	if !reloaded.HasAuthorMetadata(title) {
		t.Error("persisted author metadata lost on reload")
	}
	record, ok := reloaded.GetPaperData(title)
	if !ok {
		t.Fatal("record missing after reload")
	}
	if len(record.AuthorMetadata) != 1 || record.AuthorMetadata[0].Name != "Alice" {
		t.Errorf("unexpected author metadata after reload: %+v", record.AuthorMetadata)
	}
}

func TestCacheMergeUpdates(t *testing.T) {
	ctx := context.Background()
	c, err := NewPaperCache(ctx, &memStore{})
	if err != nil {
		t.Fatal(err)
	}

	title := "On Things"
	if err := c.UpdatePaperData(ctx, title, PaperUpdate{
		AuthorMetadata: []common.AuthorRecord{{Name: "Alice", Order: 1}},
	}); err != nil {
		t.Fatal(err)
	}
	if err := c.UpdatePaperData(ctx, title, PaperUpdate{
		Abstract: "things",
		Entities: []common.ConceptRecord{{Name: "THING", Type: "CONCEPT"}},
	}); err != nil {
		t.Fatal(err)
	}

	record, _ := c.GetPaperData(title)
	if len(record.AuthorMetadata) != 1 {
		t.Error("second update dropped author metadata")
	}
	if record.Abstract != "things" || len(record.Entities) != 1 {
		t.Errorf("entity update not merged: %+v", record)
	}
	if record.CreatedAt.After(record.UpdatedAt) {
		t.Error("created after updated")
	}
}

func TestCorruptCacheStartsEmpty(t *testing.T) {
	ctx := context.Background()
	store := &memStore{data: []byte("{not valid json")}

	c, err := NewPaperCache(ctx, store)
	if err != nil {
		t.Fatal(err)
	}
	if stats := c.Statistics(); stats.TotalPapers != 0 {
		t.Errorf("corrupt cache produced %d papers, want 0", stats.TotalPapers)
	}
}

func TestEveryUpdatePersists(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	c, err := NewPaperCache(ctx, store)
	if err != nil {
		t.Fatal(err)
	}

	for i, title := range []string{"First", "Second", "Third"} {
		if err := c.UpdatePaperData(ctx, title, PaperUpdate{Abstract: "x"}); err != nil {
			t.Fatal(err)
		}
		if store.saves != i+1 {
			t.Fatalf("after %d updates got %d saves", i+1, store.saves)
		}
	}
}

func TestCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewPaperCache(ctx, &memStore{})
	if err != nil {
		t.Fatal(err)
	}

	if err := c.UpdatePaperData(ctx, "On Things", PaperUpdate{Abstract: "x"}); err != nil {
		t.Fatal(err)
	}

	if err := c.Clear(ctx, false); err != nil {
		t.Fatal(err)
	}
	if stats := c.Statistics(); stats.TotalPapers != 1 {
		t.Error("unconfirmed clear dropped records")
	}

	if err := c.Clear(ctx, true); err != nil {
		t.Fatal(err)
	}
	if stats := c.Statistics(); stats.TotalPapers != 0 {
		t.Error("confirmed clear kept records")
	}
}

func TestCacheStatistics(t *testing.T) {
	ctx := context.Background()
	c, err := NewPaperCache(ctx, &memStore{})
	if err != nil {
		t.Fatal(err)
	}

	if err := c.UpdatePaperData(ctx, "Authors Only", PaperUpdate{
		AuthorMetadata: []common.AuthorRecord{{Name: "Alice"}},
	}); err != nil {
		t.Fatal(err)
	}
	if err := c.UpdatePaperData(ctx, "Complete", PaperUpdate{
		AuthorMetadata: []common.AuthorRecord{{Name: "Bob"}},
		Entities:       []common.ConceptRecord{{Name: "THING"}},
	}); err != nil {
		t.Fatal(err)
	}

	stats := c.Statistics()
	want := Statistics{TotalPapers: 2, WithAuthors: 2, WithEntities: 1, Complete: 1}
	if stats != want {
		t.Errorf("got %+v, want %+v", stats, want)
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "cache.json")
	store := NewFileStore(path)

	data, err := store.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if data != nil {
		t.Error("missing file should load as nil")
	}

	if err := store.Save(ctx, []byte(`{"a":1}`)); err != nil {
		t.Fatal(err)
	}
	data, err = store.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"a":1}` {
		t.Errorf("got %q after round trip", data)
	}
}
