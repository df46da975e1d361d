package lexical

import (
	"math"
	"sort"
	"sync"

	"github.com/playforge/gamedex/internal/domain"
	"github.com/playforge/gamedex/internal/domain/search/result"
)

// Field names scored by the index.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
)

// BM25 free parameter defaults.
const (
	DefaultK1 = 1.5
	DefaultB  = 0.75
)

// Default field weights: a title hit counts double a description hit.
const (
	DefaultTitleWeight       = 2.0
	DefaultDescriptionWeight = 1.0
)

// Config holds the BM25 parameters and per-field weights.
type Config struct {
	K1           float64
	B            float64
	FieldWeights map[string]float64
}

// DefaultConfig returns the standard parameters.
func DefaultConfig() Config {
	return Config{
		K1: DefaultK1,
		B:  DefaultB,
		FieldWeights: map[string]float64{
			FieldTitle:       DefaultTitleWeight,
			FieldDescription: DefaultDescriptionWeight,
		},
	}
}

// fieldIndex holds term statistics for a single field across the corpus.
// Document length normalization uses the field's own token count, so a long
// description never dilutes a title hit.
type fieldIndex struct {
	postings map[string]map[int64]int // term -> game id -> term frequency
	docLens  map[int64]int            // game id -> field token count
	totalLen int
}

func newFieldIndex() *fieldIndex {
	return &fieldIndex{
		postings: make(map[string]map[int64]int),
		docLens:  make(map[int64]int),
	}
}

func (f *fieldIndex) put(id int64, terms []string) {
	f.remove(id)
	f.docLens[id] = len(terms)
	f.totalLen += len(terms)
	for _, t := range terms {
		m, ok := f.postings[t]
		if !ok {
			m = make(map[int64]int)
			f.postings[t] = m
		}
		m[id]++
	}
}

func (f *fieldIndex) remove(id int64) {
	n, ok := f.docLens[id]
	if !ok {
		return
	}
	f.totalLen -= n
	delete(f.docLens, id)
	for t, m := range f.postings {
		if _, ok := m[id]; ok {
			delete(m, id)
			if len(m) == 0 {
				delete(f.postings, t)
			}
		}
	}
}

// score accumulates BM25 mass for every allowed document matching any of the
// query terms. A nil allowed set means the whole corpus.
func (f *fieldIndex) score(terms []string, allowed map[int64]struct{}, k1, b float64, acc map[int64]float64, weight float64) {
	n := len(f.docLens)
	if n == 0 {
		return
	}
	avgLen := float64(f.totalLen) / float64(n)
	if avgLen == 0 {
		return
	}
	for _, t := range terms {
		m, ok := f.postings[t]
		if !ok {
			continue
		}
		df := len(m)
		idf := math.Log(1 + (float64(n)-float64(df)+0.5)/(float64(df)+0.5))
		for id, tf := range m {
			if allowed != nil {
				if _, ok := allowed[id]; !ok {
					continue
				}
			}
			dl := float64(f.docLens[id])
			num := float64(tf) * (k1 + 1)
			den := float64(tf) + k1*(1-b+b*dl/avgLen)
			acc[id] += weight * idf * num / den
		}
	}
}

// Index is a corpus-wide BM25 inverted index with one sub-index per weighted
// field. Document-frequency statistics are maintained incrementally on Put
// and Remove, so IDF reflects the real corpus rather than the candidate set
// of a single query. Safe for concurrent readers; writers take the exclusive
// lock.
type Index struct {
	mu     sync.RWMutex
	cfg    Config
	fields map[string]*fieldIndex
}

// NewIndex creates an empty index. Zero config values fall back to defaults.
func NewIndex(cfg Config) *Index {
	if cfg.K1 <= 0 {
		cfg.K1 = DefaultK1
	}
	if cfg.B <= 0 {
		cfg.B = DefaultB
	}
	if len(cfg.FieldWeights) == 0 {
		cfg.FieldWeights = DefaultConfig().FieldWeights
	}
	fields := make(map[string]*fieldIndex, len(cfg.FieldWeights))
	for name := range cfg.FieldWeights {
		fields[name] = newFieldIndex()
	}
	return &Index{cfg: cfg, fields: fields}
}

// Put indexes (or reindexes) a game's weighted fields.
func (ix *Index) Put(g *domain.Game) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if f, ok := ix.fields[FieldTitle]; ok {
		f.put(g.ID, Tokenize(g.Title))
	}
	if f, ok := ix.fields[FieldDescription]; ok {
		f.put(g.ID, Tokenize(g.Description))
	}
}

// Remove drops a game from all field indices.
func (ix *Index) Remove(id int64) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	for _, f := range ix.fields {
		f.remove(id)
	}
}

// Len returns the number of indexed games.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	for _, f := range ix.fields {
		return len(f.docLens)
	}
	return 0
}

// Search scores the query terms against the allowed candidate set and
// returns candidates in descending score order, ties broken by ascending
// game id. Games with no term overlap are absent, never scored as zero.
// topK <= 0 returns the full ranking.
func (ix *Index) Search(terms []string, allowed map[int64]struct{}, topK int) []result.Candidate {
	if len(terms) == 0 {
		return nil
	}

	ix.mu.RLock()
	acc := make(map[int64]float64)
	for name, f := range ix.fields {
		f.score(terms, allowed, ix.cfg.K1, ix.cfg.B, acc, ix.cfg.FieldWeights[name])
	}
	ix.mu.RUnlock()

	ranked := make([]result.Candidate, 0, len(acc))
	for id, score := range acc {
		if score <= 0 {
			continue
		}
		ranked = append(ranked, result.Candidate{GameID: id, Score: score})
	}
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
	return ranked
}
