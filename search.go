package gamedex

import (
	"context"
	"fmt"
	"time"

	"github.com/playforge/gamedex/internal/domain"
	"github.com/playforge/gamedex/internal/domain/search/filter"
	"github.com/playforge/gamedex/internal/domain/search/mode"
	"github.com/playforge/gamedex/internal/domain/search/request"
	"github.com/playforge/gamedex/internal/domain/search/sortkey"
)

// Mode selects the search strategy.
type Mode string

const (
	Hybrid   Mode = "hybrid"
	Lexical  Mode = "lexical"
	Semantic Mode = "semantic"
)

// SortKey orders the result page.
type SortKey string

const (
	Relevance SortKey = "relevance"
	PriceAsc  SortKey = "price_asc"
	PriceDesc SortKey = "price_desc"
	Reviews   SortKey = "reviews"
	Newest    SortKey = "newest"
	Oldest    SortKey = "oldest"
	NameAsc   SortKey = "name_asc"
	NameDesc  SortKey = "name_desc"
)

// Explain is the per-signal score breakdown of one result.
type Explain struct {
	LexicalRank  int
	SemanticRank int
	BM25Score    float64
	CosineSim    float64
}

// Result is a single ranked game.
type Result struct {
	Game    Game
	Score   float64
	Explain Explain
}

// Page is one page of results plus the size of the whole filtered set.
type Page struct {
	Results    []Result
	TotalCount int
	// Degraded is set when a hybrid query lost its semantic signal and was
	// answered from the lexical path alone.
	Degraded       bool
	DegradedReason string
}

// SearchBuilder is a fluent builder for search queries.
type SearchBuilder struct {
	client *Client

	query string
	mode  Mode
	alpha *float64
	sort  SortKey

	genres         []string
	categories     []string
	itemType       *ItemType
	priceMin       *int64
	priceMax       *int64
	minReviews     *int64
	releasedAfter  *time.Time
	releasedBefore *time.Time

	offset int
	limit  int
}

// Search starts a query. An empty query browses the filtered catalog.
func (c *Client) Search(query string) *SearchBuilder {
	return &SearchBuilder{client: c, query: query}
}

// Mode sets the search strategy (default hybrid).
func (b *SearchBuilder) Mode(m Mode) *SearchBuilder {
	b.mode = m
	return b
}

// Alpha sets the hybrid fusion weight for the lexical list, in [0,1].
// 1 is pure lexical, 0 pure semantic.
func (b *SearchBuilder) Alpha(a float64) *SearchBuilder {
	b.alpha = &a
	return b
}

// Sort sets the result ordering (default relevance).
func (b *SearchBuilder) Sort(k SortKey) *SearchBuilder {
	b.sort = k
	return b
}

// Genres requires the game to carry every listed genre.
func (b *SearchBuilder) Genres(genres ...string) *SearchBuilder {
	b.genres = append(b.genres, genres...)
	return b
}

// Categories requires the game to carry every listed category.
func (b *SearchBuilder) Categories(categories ...string) *SearchBuilder {
	b.categories = append(b.categories, categories...)
	return b
}

// Type restricts results to one item type.
func (b *SearchBuilder) Type(t ItemType) *SearchBuilder {
	b.itemType = &t
	return b
}

// MinPrice sets the inclusive lower price bound in cents.
func (b *SearchBuilder) MinPrice(cents int64) *SearchBuilder {
	b.priceMin = &cents
	return b
}

// MaxPrice sets the inclusive upper price bound in cents.
func (b *SearchBuilder) MaxPrice(cents int64) *SearchBuilder {
	b.priceMax = &cents
	return b
}

// MinReviews sets the minimum review count.
func (b *SearchBuilder) MinReviews(n int64) *SearchBuilder {
	b.minReviews = &n
	return b
}

// ReleasedAfter keeps games released on or after t.
func (b *SearchBuilder) ReleasedAfter(t time.Time) *SearchBuilder {
	b.releasedAfter = &t
	return b
}

// ReleasedBefore keeps games released on or before t.
func (b *SearchBuilder) ReleasedBefore(t time.Time) *SearchBuilder {
	b.releasedBefore = &t
	return b
}

// Offset skips the first n ordered results.
func (b *SearchBuilder) Offset(n int) *SearchBuilder {
	b.offset = n
	return b
}

// Limit caps the page size (default 20, max 100).
func (b *SearchBuilder) Limit(n int) *SearchBuilder {
	b.limit = n
	return b
}

// Do executes the search.
func (b *SearchBuilder) Do(ctx context.Context) (Page, error) {
	p := filter.Params{
		Genres:         b.genres,
		Categories:     b.categories,
		PriceMin:       b.priceMin,
		PriceMax:       b.priceMax,
		MinReviews:     b.minReviews,
		ReleasedAfter:  b.releasedAfter,
		ReleasedBefore: b.releasedBefore,
	}
	if b.itemType != nil {
		t := domain.ItemType(*b.itemType)
		p.ItemType = &t
	}
	f, err := filter.New(p)
	if err != nil {
		return Page{}, fmt.Errorf("search: %w: %s", domain.ErrInvalidRequest, err)
	}

	req, err := request.New(
		b.query, mode.Mode(b.mode), b.alpha, f,
		sortkey.Key(b.sort), b.offset, b.limit,
	)
	if err != nil {
		return Page{}, fmt.Errorf("search: %w", err)
	}

	resPage, err := b.client.engine.Search(ctx, &req)
	if err != nil {
		return Page{}, fmt.Errorf("search: %w", err)
	}

	out := Page{
		Results:        make([]Result, 0, len(resPage.Results)),
		TotalCount:     resPage.TotalCount,
		Degraded:       resPage.Degraded,
		DegradedReason: resPage.DegradedReason,
	}
	for _, r := range resPage.Results {
		g, err := b.client.catalog.Get(ctx, r.GameID)
		if err != nil {
			// Removed between ranking and hydration; skip.
			continue
		}
		out.Results = append(out.Results, Result{
			Game:  fromDomainGame(g),
			Score: r.Score,
			Explain: Explain{
				LexicalRank:  r.Explain.LexicalRank,
				SemanticRank: r.Explain.SemanticRank,
				BM25Score:    r.Explain.BM25Score,
				CosineSim:    r.Explain.CosineSim,
			},
		})
	}
	return out, nil
}
