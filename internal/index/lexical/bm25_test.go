package lexical

import (
	"testing"

	"github.com/playforge/gamedex/internal/domain"
)

func newGame(id int64, title, desc string) *domain.Game {
	return &domain.Game{ID: id, Title: title, Description: desc}
}

func seedIndex(games ...*domain.Game) *Index {
	ix := NewIndex(Config{})
	for _, g := range games {
		ix.Put(g)
	}
	return ix
}

func TestSearch_NoOverlapExcluded(t *testing.T) {
	ix := seedIndex(
		newGame(1, "Space Trader", "trade goods across the galaxy"),
		newGame(2, "Farm Story", "grow crops and raise animals"),
	)

	results := ix.Search([]string{"space"}, nil, 10)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].GameID != 1 {
		t.Errorf("expected game 1, got %d", results[0].GameID)
	}
	if results[0].Score <= 0 {
		t.Errorf("expected positive score, got %v", results[0].Score)
	}
	if results[0].Rank != 1 {
		t.Errorf("expected rank 1, got %d", results[0].Rank)
	}
}

func TestSearch_TitleOutweighsDescription(t *testing.T) {
	// Same term frequency; the title hit must score higher because of the
	// default 2x field weight.
	ix := seedIndex(
		newGame(1, "Dungeon Keeper", "manage your lair"),
		newGame(2, "Lair Manager", "a dungeon management game"),
		newGame(3, "Filler One", "nothing relevant here"),
		newGame(4, "Filler Two", "still nothing relevant"),
	)

	results := ix.Search([]string{"dungeon"}, nil, 10)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].GameID != 1 {
		t.Errorf("title match should rank first, got game %d", results[0].GameID)
	}
	if results[0].Score <= results[1].Score {
		t.Errorf("title score %v should exceed description score %v",
			results[0].Score, results[1].Score)
	}
}

func TestSearch_CorpusWideIDF(t *testing.T) {
	// "game" appears everywhere, "submarine" once. For a document matching
	// both terms, the rare term must dominate its score; a document
	// matching only the common term scores below it.
	ix := seedIndex(
		newGame(1, "Submarine Game", "a game about a submarine"),
		newGame(2, "Puzzle Game", "a game of puzzles"),
		newGame(3, "Racing Game", "a game of racing"),
		newGame(4, "Card Game", "a game of cards"),
	)

	results := ix.Search([]string{"submarine", "game"}, nil, 10)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if results[0].GameID != 1 {
		t.Errorf("rare-term match should rank first, got game %d", results[0].GameID)
	}
	if results[0].Score <= 2*results[1].Score {
		t.Errorf("rare term should dominate: got %v vs %v", results[0].Score, results[1].Score)
	}
}

func TestSearch_AllowedPushdown(t *testing.T) {
	ix := seedIndex(
		newGame(1, "Space Trader", ""),
		newGame(2, "Space Battles", ""),
		newGame(3, "Space Miners", ""),
	)

	allowed := map[int64]struct{}{2: {}}
	results := ix.Search([]string{"space"}, allowed, 10)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].GameID != 2 {
		t.Errorf("expected game 2, got %d", results[0].GameID)
	}
	// The excluded games must not consume top-k slots either.
	results = ix.Search([]string{"space"}, allowed, 1)
	if len(results) != 1 || results[0].GameID != 2 {
		t.Errorf("push-down with topK=1 failed: %+v", results)
	}
}

func TestSearch_TieBrokenByAscendingID(t *testing.T) {
	ix := seedIndex(
		newGame(9, "Clone Wars", "identical text"),
		newGame(3, "Clone Wars", "identical text"),
	)

	results := ix.Search([]string{"clone"}, nil, 10)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].GameID != 3 || results[1].GameID != 9 {
		t.Errorf("tie order: got [%d %d], want [3 9]", results[0].GameID, results[1].GameID)
	}
	if results[0].Rank != 1 || results[1].Rank != 2 {
		t.Errorf("ranks: got [%d %d], want [1 2]", results[0].Rank, results[1].Rank)
	}
}

func TestSearch_TopKTruncates(t *testing.T) {
	ix := seedIndex(
		newGame(1, "space one", ""),
		newGame(2, "space two", ""),
		newGame(3, "space three", ""),
	)

	results := ix.Search([]string{"space"}, nil, 2)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
}

func TestPutRemove_UpdatesStatistics(t *testing.T) {
	ix := seedIndex(
		newGame(1, "Space Trader", ""),
		newGame(2, "Space Battles", ""),
	)
	if ix.Len() != 2 {
		t.Fatalf("len: got %d, want 2", ix.Len())
	}

	ix.Remove(1)
	if ix.Len() != 1 {
		t.Fatalf("len after remove: got %d, want 1", ix.Len())
	}
	results := ix.Search([]string{"space"}, nil, 10)
	if len(results) != 1 || results[0].GameID != 2 {
		t.Errorf("after remove: %+v", results)
	}

	// Re-put with new text replaces old postings.
	ix.Put(newGame(2, "Farm Story", ""))
	if results := ix.Search([]string{"space"}, nil, 10); len(results) != 0 {
		t.Errorf("stale postings after update: %+v", results)
	}
	if results := ix.Search([]string{"farm"}, nil, 10); len(results) != 1 {
		t.Errorf("new postings missing: %+v", results)
	}
}

func TestSearch_EmptyTermsAndEmptyIndex(t *testing.T) {
	ix := NewIndex(Config{})
	if results := ix.Search([]string{"anything"}, nil, 10); len(results) != 0 {
		t.Errorf("empty index: %+v", results)
	}

	ix.Put(newGame(1, "Space Trader", ""))
	if results := ix.Search(nil, nil, 10); len(results) != 0 {
		t.Errorf("no terms: %+v", results)
	}
}
