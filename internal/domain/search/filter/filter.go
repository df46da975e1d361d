// Package filter defines the structured predicate set a search request can
// carry. All predicates are optional and compose with logical AND.
package filter

import (
	"fmt"
	"time"

	"github.com/playforge/gamedex/internal/domain"
)

// MaxSetValues caps genre and category filter sets.
const MaxSetValues = 5

// Filter is a validated conjunction of optional predicates.
// The zero value matches every game.
type Filter struct {
	priceMin       *int64
	priceMax       *int64
	genres         []string
	categories     []string
	itemType       *domain.ItemType
	minReviews     *int64
	releasedAfter  *time.Time
	releasedBefore *time.Time
}

// Params carries raw predicate values into New.
type Params struct {
	PriceMin       *int64
	PriceMax       *int64
	Genres         []string
	Categories     []string
	ItemType       *domain.ItemType
	MinReviews     *int64
	ReleasedAfter  *time.Time
	ReleasedBefore *time.Time
}

// New validates and creates a Filter.
func New(p Params) (Filter, error) {
	if p.PriceMin != nil && *p.PriceMin < 0 {
		return Filter{}, fmt.Errorf("price_min must be non-negative, got %d", *p.PriceMin)
	}
	if p.PriceMax != nil && *p.PriceMax < 0 {
		return Filter{}, fmt.Errorf("price_max must be non-negative, got %d", *p.PriceMax)
	}
	if p.PriceMin != nil && p.PriceMax != nil && *p.PriceMin > *p.PriceMax {
		return Filter{}, fmt.Errorf("price_min %d exceeds price_max %d", *p.PriceMin, *p.PriceMax)
	}
	if len(p.Genres) > MaxSetValues {
		return Filter{}, fmt.Errorf("too many genres (max %d)", MaxSetValues)
	}
	if len(p.Categories) > MaxSetValues {
		return Filter{}, fmt.Errorf("too many categories (max %d)", MaxSetValues)
	}
	for _, g := range p.Genres {
		if g == "" {
			return Filter{}, fmt.Errorf("empty genre value")
		}
	}
	for _, c := range p.Categories {
		if c == "" {
			return Filter{}, fmt.Errorf("empty category value")
		}
	}
	if p.ItemType != nil && !p.ItemType.IsValid() {
		return Filter{}, fmt.Errorf("unknown item type %q", *p.ItemType)
	}
	if p.MinReviews != nil && *p.MinReviews < 0 {
		return Filter{}, fmt.Errorf("min_reviews must be non-negative, got %d", *p.MinReviews)
	}
	if p.ReleasedAfter != nil && p.ReleasedBefore != nil && p.ReleasedAfter.After(*p.ReleasedBefore) {
		return Filter{}, fmt.Errorf("released_after is later than released_before")
	}

	return Filter{
		priceMin:       p.PriceMin,
		priceMax:       p.PriceMax,
		genres:         p.Genres,
		categories:     p.Categories,
		itemType:       p.ItemType,
		minReviews:     p.MinReviews,
		releasedAfter:  p.ReleasedAfter,
		releasedBefore: p.ReleasedBefore,
	}, nil
}

// IsEmpty reports whether the filter has no active predicates.
func (f Filter) IsEmpty() bool {
	return f.priceMin == nil && f.priceMax == nil &&
		len(f.genres) == 0 && len(f.categories) == 0 &&
		f.itemType == nil && f.minReviews == nil &&
		f.releasedAfter == nil && f.releasedBefore == nil
}

// Matches evaluates the predicate conjunction against a game.
// Genre and category sets use containment semantics: the game must carry
// every requested value, not any of them.
func (f Filter) Matches(g *domain.Game) bool {
	if f.priceMin != nil && g.PriceCents < *f.priceMin {
		return false
	}
	if f.priceMax != nil && g.PriceCents > *f.priceMax {
		return false
	}
	for _, genre := range f.genres {
		if !g.HasGenre(genre) {
			return false
		}
	}
	for _, cat := range f.categories {
		if !g.HasCategory(cat) {
			return false
		}
	}
	if f.itemType != nil && g.Type != *f.itemType {
		return false
	}
	if f.minReviews != nil && g.ReviewCount < *f.minReviews {
		return false
	}
	if f.releasedAfter != nil {
		if g.ReleaseDate == nil || g.ReleaseDate.Before(*f.releasedAfter) {
			return false
		}
	}
	if f.releasedBefore != nil {
		if g.ReleaseDate == nil || g.ReleaseDate.After(*f.releasedBefore) {
			return false
		}
	}
	return true
}

// Genres returns the required genre set.
func (f Filter) Genres() []string { return f.genres }

// Categories returns the required category set.
func (f Filter) Categories() []string { return f.categories }

// PriceMin returns the inclusive lower price bound in cents.
func (f Filter) PriceMin() *int64 { return f.priceMin }

// PriceMax returns the inclusive upper price bound in cents.
func (f Filter) PriceMax() *int64 { return f.priceMax }

// ItemType returns the required item type.
func (f Filter) ItemType() *domain.ItemType { return f.itemType }

// MinReviews returns the inclusive review count floor.
func (f Filter) MinReviews() *int64 { return f.minReviews }

// ReleasedAfter returns the inclusive lower release date bound.
func (f Filter) ReleasedAfter() *time.Time { return f.releasedAfter }

// ReleasedBefore returns the inclusive upper release date bound.
func (f Filter) ReleasedBefore() *time.Time { return f.releasedBefore }
