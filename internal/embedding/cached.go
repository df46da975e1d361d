// Package embedding provides the in-process query-embedding cache.
package embedding

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/playforge/gamedex/internal/engine"
	"github.com/playforge/gamedex/internal/metrics"
)

// DefaultCacheSize is the default number of query embeddings kept in memory.
// At 384 dimensions * 4 bytes * 1000 entries this is about 1.5MB.
const DefaultCacheSize = 1000

// CachedEmbedder wraps an Embedder with a concurrency-safe LRU so repeated
// queries never hit the provider twice. Concurrent misses for the same text
// may duplicate the provider call; the cache itself stays consistent.
type CachedEmbedder struct {
	inner engine.Embedder
	cache *lru.Cache[string, []float32]
}

// NewCached creates a caching decorator. size <= 0 falls back to the default.
func NewCached(inner engine.Embedder, size int) *CachedEmbedder {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, _ := lru.New[string, []float32](size)
	return &CachedEmbedder{inner: inner, cache: cache}
}

// Embed returns the cached embedding or calls the inner embedder.
func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if vec, ok := c.cache.Get(text); ok {
		metrics.EmbeddingCacheTotal.WithLabelValues("lru", "hit").Inc()
		return vec, nil
	}
	metrics.EmbeddingCacheTotal.WithLabelValues("lru", "miss").Inc()

	vec, err := c.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	c.cache.Add(text, vec)
	return vec, nil
}

// Len returns the number of cached embeddings.
func (c *CachedEmbedder) Len() int { return c.cache.Len() }
