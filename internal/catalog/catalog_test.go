package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/playforge/gamedex/internal/domain"
	"github.com/playforge/gamedex/internal/domain/search/filter"
	"github.com/playforge/gamedex/internal/index/lexical"
	"github.com/playforge/gamedex/internal/index/vector"
)

type fakePersister struct {
	saved   map[int64]*domain.Game
	deleted []int64
	saveErr error
}

func newFakePersister() *fakePersister {
	return &fakePersister{saved: make(map[int64]*domain.Game)}
}

func (p *fakePersister) Save(_ context.Context, g *domain.Game) error {
	if p.saveErr != nil {
		return p.saveErr
	}
	p.saved[g.ID] = g
	return nil
}

func (p *fakePersister) Delete(_ context.Context, id int64) error {
	p.deleted = append(p.deleted, id)
	return nil
}

func newTestCatalog(repo Persister) *Catalog {
	return New(lexical.NewIndex(lexical.Config{}), vector.NewIndex(3), repo, nil)
}

func TestPut_Validation(t *testing.T) {
	c := newTestCatalog(nil)

	tests := []struct {
		name string
		game *domain.Game
	}{
		{"zero id", &domain.Game{ID: 0, Title: "x"}},
		{"negative id", &domain.Game{ID: -1, Title: "x"}},
		{"missing title", &domain.Game{ID: 1}},
		{"bad type", &domain.Game{ID: 1, Title: "x", Type: "bundle"}},
		{"negative price", &domain.Game{ID: 1, Title: "x", PriceCents: -1}},
		{"negative reviews", &domain.Game{ID: 1, Title: "x", ReviewCount: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Put(context.Background(), tt.game)
			if !errors.Is(err, domain.ErrInvalidRequest) {
				t.Errorf("expected ErrInvalidRequest, got %v", err)
			}
		})
	}
	if c.Len() != 0 {
		t.Errorf("rejected games were stored: len %d", c.Len())
	}
}

func TestPut_DefaultsTypeToGame(t *testing.T) {
	c := newTestCatalog(nil)
	g := &domain.Game{ID: 1, Title: "Space Trader"}
	if err := c.Put(context.Background(), g); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := c.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Type != domain.ItemGame {
		t.Errorf("type: got %q, want %q", got.Type, domain.ItemGame)
	}
}

func TestPut_PersistsBeforeIndexing(t *testing.T) {
	repo := newFakePersister()
	c := newTestCatalog(repo)

	g := &domain.Game{ID: 1, Title: "Space Trader"}
	if err := c.Put(context.Background(), g); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, ok := repo.saved[1]; !ok {
		t.Error("game was not persisted")
	}

	repo.saveErr = errors.New("store down")
	err := c.Put(context.Background(), &domain.Game{ID: 2, Title: "Farm"})
	if err == nil {
		t.Fatal("expected persistence error")
	}
	if c.Len() != 1 {
		t.Errorf("failed save must not index: len %d", c.Len())
	}
}

func TestPut_BadVectorDimensionStillStoresGame(t *testing.T) {
	c := newTestCatalog(nil)

	g := &domain.Game{ID: 1, Title: "Space Trader", Embedding: []float32{1, 0}} // index wants 3
	if err := c.Put(context.Background(), g); err != nil {
		t.Fatalf("bad embedding dimension must not fail the put: %v", err)
	}

	if c.Len() != 1 {
		t.Errorf("game missing from snapshot")
	}
	if c.EmbeddedLen() != 0 {
		t.Errorf("bad vector was indexed")
	}
}

func TestPut_ReindexDropsStaleVector(t *testing.T) {
	c := newTestCatalog(nil)

	withVec := &domain.Game{ID: 1, Title: "Space Trader", Embedding: []float32{1, 0, 0}}
	if err := c.Put(context.Background(), withVec); err != nil {
		t.Fatalf("put: %v", err)
	}
	if c.EmbeddedLen() != 1 {
		t.Fatalf("embedded len: got %d, want 1", c.EmbeddedLen())
	}

	// Re-put without an embedding: the vector entry must go away.
	withoutVec := &domain.Game{ID: 1, Title: "Space Trader"}
	if err := c.Put(context.Background(), withoutVec); err != nil {
		t.Fatalf("put: %v", err)
	}
	if c.EmbeddedLen() != 0 {
		t.Errorf("stale vector survived reindex")
	}
	if c.Len() != 1 {
		t.Errorf("len: got %d, want 1", c.Len())
	}
}

func TestRemove(t *testing.T) {
	repo := newFakePersister()
	c := newTestCatalog(repo)

	g := &domain.Game{ID: 1, Title: "Space Trader", Embedding: []float32{1, 0, 0}}
	if err := c.Put(context.Background(), g); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := c.Remove(context.Background(), 1); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if c.Len() != 0 || c.EmbeddedLen() != 0 {
		t.Errorf("remove left state: len %d, embedded %d", c.Len(), c.EmbeddedLen())
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != 1 {
		t.Errorf("delete not persisted: %v", repo.deleted)
	}
	if _, err := c.Get(context.Background(), 1); !errors.Is(err, domain.ErrGameNotFound) {
		t.Errorf("expected ErrGameNotFound, got %v", err)
	}
}

func TestLoad_DoesNotWriteBack(t *testing.T) {
	repo := newFakePersister()
	c := newTestCatalog(repo)

	c.Load([]*domain.Game{
		{ID: 1, Title: "Space Trader", Embedding: []float32{1, 0, 0}},
		{ID: 2, Title: "Farm Life"},
	})

	if len(repo.saved) != 0 {
		t.Errorf("load wrote through to storage")
	}
	if c.Len() != 2 || c.EmbeddedLen() != 1 {
		t.Errorf("load state: len %d, embedded %d", c.Len(), c.EmbeddedLen())
	}
}

func TestMatching(t *testing.T) {
	c := newTestCatalog(nil)
	c.Load([]*domain.Game{
		{ID: 1, Title: "a", Genres: []string{"Action"}},
		{ID: 2, Title: "b", Genres: []string{"Strategy"}},
		{ID: 3, Title: "c", Genres: []string{"Action", "Strategy"}},
	})

	f, err := filter.New(filter.Params{Genres: []string{"Action"}})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	matched, err := c.Matching(context.Background(), f)
	if err != nil {
		t.Fatalf("matching: %v", err)
	}

	ids := make(map[int64]bool, len(matched))
	for _, g := range matched {
		ids[g.ID] = true
	}
	if len(ids) != 2 || !ids[1] || !ids[3] {
		t.Errorf("matched ids: %v", ids)
	}
}
