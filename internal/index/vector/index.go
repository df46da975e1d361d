// Package vector implements a brute-force cosine similarity index over game
// embeddings. The catalog is small enough that exact search beats the
// bookkeeping of an approximate index.
package vector

import (
	"math"
	"sort"
	"sync"

	"github.com/playforge/gamedex/internal/domain"
	"github.com/playforge/gamedex/internal/domain/search/result"
)

// Index holds game embeddings keyed by id. Games without an embedding are
// simply never inserted, which keeps them out of the semantic path entirely.
// Safe for concurrent readers; writers take the exclusive lock.
type Index struct {
	mu   sync.RWMutex
	dim  int
	vecs map[int64][]float32
}

// NewIndex creates an empty index for vectors of the given dimension.
func NewIndex(dim int) *Index {
	return &Index{dim: dim, vecs: make(map[int64][]float32)}
}

// Dimension returns the configured vector dimension.
func (ix *Index) Dimension() int { return ix.dim }

// Put stores a game's embedding. A vector of the wrong dimension is rejected
// with a DimensionError so the caller can skip and log the record.
func (ix *Index) Put(id int64, vec []float32) error {
	if len(vec) != ix.dim {
		return domain.NewDimensionError(id, len(vec), ix.dim)
	}
	ix.mu.Lock()
	ix.vecs[id] = vec
	ix.mu.Unlock()
	return nil
}

// Remove drops a game from the index. Unknown ids are a no-op.
func (ix *Index) Remove(id int64) {
	ix.mu.Lock()
	delete(ix.vecs, id)
	ix.mu.Unlock()
}

// Len returns the number of indexed vectors.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.vecs)
}

// Search returns the games nearest to the query vector by cosine similarity,
// descending, ties broken by ascending game id. Only ids in the allowed set
// are considered (nil means all), so filtered-out games never occupy a top-k
// slot. Similarities below minSim are cut off hard. topK <= 0 returns the
// full ranking.
func (ix *Index) Search(query []float32, allowed map[int64]struct{}, topK int, minSim float64) ([]result.Candidate, error) {
	if len(query) != ix.dim {
		return nil, domain.NewDimensionError(0, len(query), ix.dim)
	}

	ix.mu.RLock()
	ranked := make([]result.Candidate, 0, len(ix.vecs))
	for id, vec := range ix.vecs {
		if allowed != nil {
			if _, ok := allowed[id]; !ok {
				continue
			}
		}
		sim, ok := cosine(query, vec)
		if !ok || sim < minSim {
			continue
		}
		ranked = append(ranked, result.Candidate{GameID: id, Score: sim})
	}
	ix.mu.RUnlock()

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].GameID < ranked[j].GameID
	})
	if topK > 0 && len(ranked) > topK {
		ranked = ranked[:topK]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked, nil
}

// cosine returns the cosine similarity of two equal-length vectors.
// ok is false when either vector has zero magnitude.
func cosine(a, b []float32) (float64, bool) {
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0, false
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), true
}
