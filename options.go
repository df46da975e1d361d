package gamedex

import (
	"go.uber.org/zap"

	"github.com/playforge/gamedex/internal/embedding"
	"github.com/playforge/gamedex/internal/index/lexical"
)

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	addrs    []string
	password string

	embedder   Embedder
	dimensions int
	cacheSize  int

	bm25K1            float64
	bm25B             float64
	titleWeight       float64
	descriptionWeight float64
	minSimilarity     float64

	logger *zap.Logger
}

func newClientConfig() *clientConfig {
	return &clientConfig{
		dimensions:        384,
		cacheSize:         embedding.DefaultCacheSize,
		bm25K1:            lexical.DefaultK1,
		bm25B:             lexical.DefaultB,
		titleWeight:       lexical.DefaultTitleWeight,
		descriptionWeight: lexical.DefaultDescriptionWeight,
	}
}

// WithRedis persists the catalog to Redis at the given addresses.
func WithRedis(addrs ...string) Option {
	return func(c *clientConfig) {
		c.addrs = addrs
	}
}

// WithRedisPassword sets the Redis password.
func WithRedisPassword(password string) Option {
	return func(c *clientConfig) {
		c.password = password
	}
}

// WithEmbedder enables the semantic search path.
func WithEmbedder(e Embedder) Option {
	return func(c *clientConfig) {
		c.embedder = e
	}
}

// WithDimensions sets the expected embedding dimension (default 384).
func WithDimensions(dim int) Option {
	return func(c *clientConfig) {
		if dim > 0 {
			c.dimensions = dim
		}
	}
}

// WithQueryCacheSize sets the in-process query embedding LRU size.
// Zero disables the LRU layer.
func WithQueryCacheSize(size int) Option {
	return func(c *clientConfig) {
		c.cacheSize = size
	}
}

// WithBM25 tunes the lexical scorer parameters.
func WithBM25(k1, b float64) Option {
	return func(c *clientConfig) {
		if k1 > 0 {
			c.bm25K1 = k1
		}
		if b > 0 {
			c.bm25B = b
		}
	}
}

// WithFieldWeights sets the per-field lexical boosts.
func WithFieldWeights(title, description float64) Option {
	return func(c *clientConfig) {
		if title > 0 {
			c.titleWeight = title
		}
		if description > 0 {
			c.descriptionWeight = description
		}
	}
}

// WithMinSimilarity sets the hard cosine similarity cutoff for the
// semantic path.
func WithMinSimilarity(min float64) Option {
	return func(c *clientConfig) {
		c.minSimilarity = min
	}
}

// WithLogger attaches a zap logger (default: no-op).
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}
