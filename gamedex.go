// Package gamedex embeds the hybrid game-search engine in a Go process:
// an in-memory catalog with BM25 and vector indices, rank fusion, and
// optional Redis persistence, without the HTTP server.
package gamedex

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/playforge/gamedex/internal/catalog"
	"github.com/playforge/gamedex/internal/db"
	dbRedis "github.com/playforge/gamedex/internal/db/redis"
	"github.com/playforge/gamedex/internal/domain"
	"github.com/playforge/gamedex/internal/embedding"
	"github.com/playforge/gamedex/internal/engine"
	"github.com/playforge/gamedex/internal/index/lexical"
	"github.com/playforge/gamedex/internal/index/vector"
	"github.com/playforge/gamedex/internal/repository/embcache"
	gamerepo "github.com/playforge/gamedex/internal/repository/game"
)

const defaultReadinessTimeout = 10 * time.Second

// Sentinel errors surfaced by the client.
var (
	ErrNotFound             = domain.ErrGameNotFound
	ErrInvalidRequest       = domain.ErrInvalidRequest
	ErrEmbeddingUnavailable = domain.ErrEmbeddingUnavailable
	ErrStoreUnavailable     = domain.ErrStoreUnavailable
)

// ItemType distinguishes base games from downloadable content.
type ItemType string

const (
	ItemGame ItemType = "game"
	ItemDLC  ItemType = "dlc"
)

// Game is a catalog record.
type Game struct {
	ID          int64
	Title       string
	Description string
	Genres      []string
	Categories  []string
	PriceCents  int64
	Type        ItemType
	ReviewCount int64
	ReleaseDate *time.Time
	// Embedding is the dense vector for semantic search. Optional; games
	// without one still participate in lexical search and browsing.
	Embedding []float32
}

// Embedder turns text into a dense vector. Implementations back the
// semantic search path; without one, hybrid queries degrade to lexical.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Client is the embedded gamedex engine.
type Client struct {
	store   db.Store
	catalog *catalog.Catalog
	engine  *engine.Service
}

// New creates a Client. Without WithRedis the catalog is purely in-memory.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, o := range opts {
		o(cfg)
	}

	var store db.Store
	var persister catalog.Persister
	if len(cfg.addrs) > 0 {
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("gamedex: create redis store: %w", err)
		}
		if err := s.WaitForReady(context.Background(), defaultReadinessTimeout); err != nil {
			s.Close()
			return nil, fmt.Errorf("gamedex: database not ready: %w", err)
		}
		store = s
	}

	lexIndex := lexical.NewIndex(lexical.Config{
		K1: cfg.bm25K1,
		B:  cfg.bm25B,
		FieldWeights: map[string]float64{
			lexical.FieldTitle:       cfg.titleWeight,
			lexical.FieldDescription: cfg.descriptionWeight,
		},
	})
	vecIndex := vector.NewIndex(cfg.dimensions)

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var repo *gamerepo.Repo
	if store != nil {
		repo = gamerepo.New(store, logger)
		persister = repo
	}
	cat := catalog.New(lexIndex, vecIndex, persister, logger)

	if repo != nil {
		games, err := repo.LoadAll(context.Background())
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("gamedex: load catalog: %w", err)
		}
		cat.Load(games)
	}

	// Embedder: errors out on use if not configured, so lexical-only
	// clients work and hybrid ones degrade gracefully.
	var emb engine.Embedder = noopEmbedder{}
	if cfg.embedder != nil {
		emb = embedderAdapter{inner: cfg.embedder}
		if store != nil {
			emb = embcache.New(emb, store, logger)
		}
		if cfg.cacheSize > 0 {
			emb = embedding.NewCached(emb, cfg.cacheSize)
		}
	}

	eng := engine.New(
		cat, lexIndex, vecIndex, emb, lexical.Tokenize,
		engine.Config{MinSimilarity: cfg.minSimilarity},
		logger,
	)

	return &Client{store: store, catalog: cat, engine: eng}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity. In-memory clients always succeed.
func (c *Client) Ping(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Upsert stores and indexes a game.
func (c *Client) Upsert(ctx context.Context, g Game) error {
	dg := toDomainGame(g)
	if err := c.catalog.Put(ctx, dg); err != nil {
		return fmt.Errorf("upsert game %d: %w", g.ID, err)
	}
	return nil
}

// Delete removes a game from the catalog and indices.
func (c *Client) Delete(ctx context.Context, id int64) error {
	if err := c.catalog.Remove(ctx, id); err != nil {
		return fmt.Errorf("delete game %d: %w", id, err)
	}
	return nil
}

// Get returns a game by id.
func (c *Client) Get(ctx context.Context, id int64) (Game, error) {
	g, err := c.catalog.Get(ctx, id)
	if err != nil {
		return Game{}, fmt.Errorf("get game %d: %w", id, err)
	}
	return fromDomainGame(g), nil
}

// Len returns the number of games in the catalog.
func (c *Client) Len() int {
	return c.catalog.Len()
}

func toDomainGame(g Game) *domain.Game {
	return &domain.Game{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		Genres:      g.Genres,
		Categories:  g.Categories,
		PriceCents:  g.PriceCents,
		Type:        domain.ItemType(g.Type),
		ReviewCount: g.ReviewCount,
		ReleaseDate: g.ReleaseDate,
		Embedding:   g.Embedding,
	}
}

func fromDomainGame(g *domain.Game) Game {
	return Game{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		Genres:      g.Genres,
		Categories:  g.Categories,
		PriceCents:  g.PriceCents,
		Type:        ItemType(g.Type),
		ReviewCount: g.ReviewCount,
		ReleaseDate: g.ReleaseDate,
		Embedding:   g.Embedding,
	}
}

// embedderAdapter wraps the public Embedder to satisfy engine.Embedder.
type embedderAdapter struct {
	inner Embedder
}

func (a embedderAdapter) Embed(ctx context.Context, text string) ([]float32, error) {
	vec, err := a.inner.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmbeddingUnavailable, err)
	}
	return vec, nil
}

// noopEmbedder returns an error on Embed (used when no embedder configured).
type noopEmbedder struct{}

func (noopEmbedder) Embed(context.Context, string) ([]float32, error) {
	return nil, fmt.Errorf("%w: embedder not configured (use WithEmbedder for semantic search)",
		domain.ErrEmbeddingUnavailable)
}
