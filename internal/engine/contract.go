package engine

import (
	"context"

	"github.com/playforge/gamedex/internal/domain"
	"github.com/playforge/gamedex/internal/domain/search/filter"
	"github.com/playforge/gamedex/internal/domain/search/result"
)

// Catalog is the read contract over the game store. Matching applies the
// filter as a push-down: the engine only ever scores what comes back.
type Catalog interface {
	Matching(ctx context.Context, f filter.Filter) ([]*domain.Game, error)
	Get(ctx context.Context, id int64) (*domain.Game, error)
}

// Embedder vectorizes query text into a fixed-dimension embedding.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// LexicalIndex ranks candidate games by BM25 term matching.
type LexicalIndex interface {
	Search(terms []string, allowed map[int64]struct{}, topK int) []result.Candidate
}

// VectorIndex ranks candidate games by embedding similarity.
type VectorIndex interface {
	Search(query []float32, allowed map[int64]struct{}, topK int, minSim float64) ([]result.Candidate, error)
}

// Tokenizer splits query text into lexical terms.
type Tokenizer func(text string) []string
