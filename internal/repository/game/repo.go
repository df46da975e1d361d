// Package game persists the game catalog in Redis hashes, one key per game.
package game

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/playforge/gamedex/internal/domain"
)

// KeyPrefix namespaces all gamedex keys in the store.
const KeyPrefix = "gamedex:"

const gameKeyPrefix = KeyPrefix + "game:"

// store is the consumer interface for the repository (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HDel(ctx context.Context, key string, fields ...string) error
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo reads and writes game records.
type Repo struct {
	store  store
	logger *zap.Logger
}

// New creates a game repository.
func New(s store, logger *zap.Logger) *Repo {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repo{store: s, logger: logger}
}

// Save upserts a single game record. An upsert without an embedding clears
// any vector field a previous version left behind, so a restart cannot
// resurrect it.
func (r *Repo) Save(ctx context.Context, g *domain.Game) error {
	fields, err := buildHashFields(g)
	if err != nil {
		return err
	}
	if err := r.store.HSet(ctx, gameKey(g.ID), fields); err != nil {
		return fmt.Errorf("save game %d: %w: %w", g.ID, domain.ErrStoreUnavailable, err)
	}
	if !g.HasEmbedding() {
		if err := r.store.HDel(ctx, gameKey(g.ID), fieldVector); err != nil {
			return fmt.Errorf("save game %d: %w: %w", g.ID, domain.ErrStoreUnavailable, err)
		}
	}
	return nil
}

// Delete removes a game record. Deleting an absent game is a no-op.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	if err := r.store.Del(ctx, gameKey(id)); err != nil {
		return fmt.Errorf("delete game %d: %w: %w", id, domain.ErrStoreUnavailable, err)
	}
	return nil
}

// LoadAll reads the whole catalog. Records that fail to parse are skipped
// and logged; a corrupt row must not block startup.
func (r *Repo) LoadAll(ctx context.Context) ([]*domain.Game, error) {
	keys, err := r.store.Scan(ctx, gameKeyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan games: %w: %w", domain.ErrStoreUnavailable, err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("load games: %w: %w", domain.ErrStoreUnavailable, err)
	}

	games := make([]*domain.Game, 0, len(hashes))
	for i, m := range hashes {
		if len(m) == 0 {
			continue
		}
		g, parseErr := parseHashFields(m)
		if parseErr != nil {
			r.logger.Warn("Skipping unreadable game record",
				zap.String("key", keys[i]), zap.Error(parseErr))
			continue
		}
		games = append(games, g)
	}
	return games, nil
}

func gameKey(id int64) string {
	return gameKeyPrefix + strconv.FormatInt(id, 10)
}
