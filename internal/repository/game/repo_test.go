package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/playforge/gamedex/internal/domain"
)

func testGame() *domain.Game {
	released := time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC)
	return &domain.Game{
		ID:          42,
		Title:       "Deep Space Mining",
		Description: "Haul ore across the belt.",
		Genres:      []string{"Simulation", "Strategy"},
		Categories:  []string{"Single-player"},
		PriceCents:  1999,
		Type:        domain.ItemGame,
		ReviewCount: 1200,
		ReleaseDate: &released,
		Embedding:   []float32{0.1, -0.2, 0.3},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newFakeStore()
	repo := New(store, nil)
	want := testGame()

	if err := repo.Save(context.Background(), want); err != nil {
		t.Fatalf("save: %v", err)
	}

	games, err := repo.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("loaded %d games, want 1", len(games))
	}

	got := games[0]
	if got.ID != want.ID || got.Title != want.Title || got.Description != want.Description {
		t.Errorf("document fields: got %+v", got)
	}
	if got.PriceCents != want.PriceCents || got.ReviewCount != want.ReviewCount || got.Type != want.Type {
		t.Errorf("numeric fields: got %+v", got)
	}
	if len(got.Genres) != 2 || got.Genres[0] != "Simulation" {
		t.Errorf("genres: got %v", got.Genres)
	}
	if got.ReleaseDate == nil || !got.ReleaseDate.Equal(*want.ReleaseDate) {
		t.Errorf("release date: got %v, want %v", got.ReleaseDate, want.ReleaseDate)
	}
	if len(got.Embedding) != 3 || got.Embedding[1] != want.Embedding[1] {
		t.Errorf("embedding: got %v", got.Embedding)
	}
}

func TestSave_NoVectorField(t *testing.T) {
	store := newFakeStore()
	repo := New(store, nil)

	g := testGame()
	g.Embedding = nil
	if err := repo.Save(context.Background(), g); err != nil {
		t.Fatalf("save: %v", err)
	}

	h := store.hashes[gameKey(g.ID)]
	if _, ok := h[fieldVector]; ok {
		t.Error("vector field written for a game without an embedding")
	}

	games, err := repo.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if games[0].HasEmbedding() {
		t.Error("loaded game should have no embedding")
	}
}

func TestSave_DroppedEmbeddingClearsVectorField(t *testing.T) {
	store := newFakeStore()
	repo := New(store, nil)

	withVec := testGame()
	if err := repo.Save(context.Background(), withVec); err != nil {
		t.Fatalf("save: %v", err)
	}

	withoutVec := testGame()
	withoutVec.Embedding = nil
	if err := repo.Save(context.Background(), withoutVec); err != nil {
		t.Fatalf("re-save: %v", err)
	}

	if _, ok := store.hashes[gameKey(withVec.ID)][fieldVector]; ok {
		t.Error("stale vector field survived the upsert")
	}
	games, err := repo.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("loaded %d games, want 1", len(games))
	}
	if games[0].HasEmbedding() {
		t.Errorf("reloaded game resurrected embedding %v", games[0].Embedding)
	}
}

func TestSave_StoreFailureWrapsSentinel(t *testing.T) {
	store := newFakeStore()
	store.hsetErr = errors.New("connection refused")
	repo := New(store, nil)

	err := repo.Save(context.Background(), testGame())
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	store := newFakeStore()
	repo := New(store, nil)
	g := testGame()

	if err := repo.Save(context.Background(), g); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Delete(context.Background(), g.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	// Absent key is a no-op.
	if err := repo.Delete(context.Background(), g.ID); err != nil {
		t.Fatalf("repeat delete: %v", err)
	}

	games, err := repo.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(games) != 0 {
		t.Errorf("loaded %d games after delete, want 0", len(games))
	}
}

func TestLoadAll_SkipsCorruptRecords(t *testing.T) {
	store := newFakeStore()
	repo := New(store, nil)

	if err := repo.Save(context.Background(), testGame()); err != nil {
		t.Fatalf("save: %v", err)
	}
	store.hashes[gameKeyPrefix+"99"] = map[string]string{fieldDoc: "{not json"}
	store.hashes[gameKeyPrefix+"100"] = map[string]string{"other": "no doc field"}
	store.hashes[gameKeyPrefix+"101"] = map[string]string{
		fieldDoc: `{"id":101,"title":"Bad Date","release_date":"June 2020"}`,
	}

	games, err := repo.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("corrupt rows must not fail the load: %v", err)
	}
	if len(games) != 1 || games[0].ID != 42 {
		t.Errorf("loaded %d games, want only the valid one", len(games))
	}
}

func TestLoadAll_EmptyStore(t *testing.T) {
	repo := New(newFakeStore(), nil)

	games, err := repo.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(games) != 0 {
		t.Errorf("loaded %d games from empty store", len(games))
	}
}

func TestLoadAll_ScanFailureWrapsSentinel(t *testing.T) {
	store := newFakeStore()
	store.scanErr = errors.New("connection refused")
	repo := New(store, nil)

	_, err := repo.LoadAll(context.Background())
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestVectorBytesRoundTrip(t *testing.T) {
	in := []float32{0, -1.5, 3.75, 1e-6}
	out := bytesToVector(vectorToBytes(in))
	if len(out) != len(in) {
		t.Fatalf("length: got %d, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("element %d: got %v, want %v", i, out[i], in[i])
		}
	}

	if v := bytesToVector("abc"); v != nil {
		t.Errorf("truncated payload should yield nil, got %v", v)
	}
}
