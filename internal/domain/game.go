package domain

import "time"

// ItemType distinguishes base games from downloadable content.
type ItemType string

// Item type constants.
const (
	ItemGame ItemType = "game"
	ItemDLC  ItemType = "dlc"
)

// IsValid checks if the item type is one of the supported values.
func (t ItemType) IsValid() bool {
	return t == ItemGame || t == ItemDLC
}

// Game is an indexable game record. Records are created and updated by the
// ingestion path; a search request only ever reads them.
type Game struct {
	ID          int64
	Title       string
	Description string
	Genres      []string
	Categories  []string
	PriceCents  int64
	Type        ItemType
	ReviewCount int64
	// ReleaseDate is date-precision; nil means unknown.
	ReleaseDate *time.Time
	// Embedding is the precomputed dense vector. Empty means the game is
	// excluded from the semantic path but stays eligible for lexical search.
	Embedding []float32
}

// HasEmbedding reports whether the game participates in vector search.
func (g *Game) HasEmbedding() bool { return len(g.Embedding) > 0 }

// HasGenre reports whether the game carries the given genre.
func (g *Game) HasGenre(genre string) bool {
	for _, v := range g.Genres {
		if v == genre {
			return true
		}
	}
	return false
}

// HasCategory reports whether the game carries the given category tag.
func (g *Game) HasCategory(category string) bool {
	for _, v := range g.Categories {
		if v == category {
			return true
		}
	}
	return false
}
