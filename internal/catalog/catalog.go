// Package catalog holds the in-memory corpus snapshot the engine searches
// over and keeps the lexical and vector indices in step with it.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/playforge/gamedex/internal/domain"
	"github.com/playforge/gamedex/internal/domain/search/filter"
	"github.com/playforge/gamedex/internal/index/lexical"
	"github.com/playforge/gamedex/internal/index/vector"
)

// Persister is the optional write-through storage behind the catalog.
type Persister interface {
	Save(ctx context.Context, g *domain.Game) error
	Delete(ctx context.Context, id int64) error
}

// Catalog is the read/write surface over the game corpus. Reads see a
// consistent snapshot; ingestion writes take the exclusive lock and update
// storage, the snapshot, and both indices together.
type Catalog struct {
	mu     sync.RWMutex
	games  map[int64]*domain.Game
	lex    *lexical.Index
	vec    *vector.Index
	repo   Persister
	logger *zap.Logger
}

// New creates an empty catalog. repo may be nil for a purely in-memory
// corpus (tests, embedded use).
func New(lex *lexical.Index, vec *vector.Index, repo Persister, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{
		games:  make(map[int64]*domain.Game),
		lex:    lex,
		vec:    vec,
		repo:   repo,
		logger: logger,
	}
}

// Put validates, persists, and indexes a game. A game whose embedding has
// the wrong dimension is still stored and lexically indexed; only the
// semantic path skips it.
func (c *Catalog) Put(ctx context.Context, g *domain.Game) error {
	if g.ID <= 0 {
		return fmt.Errorf("%w: game id must be positive", domain.ErrInvalidRequest)
	}
	if g.Title == "" {
		return fmt.Errorf("%w: game title is required", domain.ErrInvalidRequest)
	}
	if g.Type == "" {
		g.Type = domain.ItemGame
	}
	if !g.Type.IsValid() {
		return fmt.Errorf("%w: unknown item type %q", domain.ErrInvalidRequest, g.Type)
	}
	if g.PriceCents < 0 || g.ReviewCount < 0 {
		return fmt.Errorf("%w: price and review count must be non-negative", domain.ErrInvalidRequest)
	}

	if c.repo != nil {
		if err := c.repo.Save(ctx, g); err != nil {
			return err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.index(g)
	return nil
}

// Remove drops a game from storage, snapshot, and indices.
func (c *Catalog) Remove(ctx context.Context, id int64) error {
	if c.repo != nil {
		if err := c.repo.Delete(ctx, id); err != nil {
			return err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.games, id)
	c.lex.Remove(id)
	c.vec.Remove(id)
	return nil
}

// Load fills the catalog from already-persisted records without writing
// back to storage. Used once at startup.
func (c *Catalog) Load(games []*domain.Game) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, g := range games {
		c.index(g)
	}
}

// index updates snapshot and indices; caller holds the write lock.
func (c *Catalog) index(g *domain.Game) {
	c.games[g.ID] = g
	c.lex.Put(g)
	if !g.HasEmbedding() {
		c.vec.Remove(g.ID)
		return
	}
	if err := c.vec.Put(g.ID, g.Embedding); err != nil {
		if errors.Is(err, domain.ErrBadVector) {
			c.logger.Warn("Skipping game embedding with bad dimension",
				zap.Int64("game_id", g.ID), zap.Error(err))
			c.vec.Remove(g.ID)
			return
		}
		c.logger.Error("Failed to index game embedding",
			zap.Int64("game_id", g.ID), zap.Error(err))
	}
}

// Matching returns the games passing every active filter predicate.
func (c *Catalog) Matching(_ context.Context, f filter.Filter) ([]*domain.Game, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	matched := make([]*domain.Game, 0, len(c.games))
	for _, g := range c.games {
		if f.Matches(g) {
			matched = append(matched, g)
		}
	}
	return matched, nil
}

// Get returns a single game by id.
func (c *Catalog) Get(_ context.Context, id int64) (*domain.Game, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	g, ok := c.games[id]
	if !ok {
		return nil, fmt.Errorf("game %d: %w", id, domain.ErrGameNotFound)
	}
	return g, nil
}

// Len returns the number of games in the snapshot.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.games)
}

// EmbeddedLen returns the number of games participating in vector search.
func (c *Catalog) EmbeddedLen() int {
	return c.vec.Len()
}
