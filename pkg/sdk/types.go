package sdk

import (
	"github.com/oapi-codegen/runtime/types"
)

// Mode selects the search strategy.
type Mode string

const (
	ModeHybrid   Mode = "hybrid"
	ModeLexical  Mode = "lexical"
	ModeSemantic Mode = "semantic"
)

// Sort keys accepted by the server.
const (
	SortRelevance = "relevance"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortReviews   = "reviews"
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortNameAsc   = "name_asc"
	SortNameDesc  = "name_desc"
)

// SearchRequest is the POST /v1/search payload.
type SearchRequest struct {
	Query   string   `json:"query"`
	Mode    Mode     `json:"mode,omitempty"`
	Alpha   *float64 `json:"alpha,omitempty"`
	Filters *Filters `json:"filters,omitempty"`
	Sort    string   `json:"sort,omitempty"`
	Offset  int      `json:"offset,omitempty"`
	Limit   int      `json:"limit,omitempty"`
}

// Filters are the structured predicates; all active ones must hold.
type Filters struct {
	PriceMin       *int64      `json:"price_min,omitempty"`
	PriceMax       *int64      `json:"price_max,omitempty"`
	Genres         []string    `json:"genres,omitempty"`
	Categories     []string    `json:"categories,omitempty"`
	ItemType       *string     `json:"item_type,omitempty"`
	MinReviews     *int64      `json:"min_reviews,omitempty"`
	ReleasedAfter  *types.Date `json:"released_after,omitempty"`
	ReleasedBefore *types.Date `json:"released_before,omitempty"`
}

// Explain is the per-signal score breakdown of one result.
type Explain struct {
	LexicalRank  int     `json:"lexical_rank,omitempty"`
	SemanticRank int     `json:"semantic_rank,omitempty"`
	BM25Score    float64 `json:"bm25_score,omitempty"`
	CosineSim    float64 `json:"cosine_similarity,omitempty"`
}

// SearchResult is a single ranked hit.
type SearchResult struct {
	GameID  int64   `json:"game_id"`
	Score   float64 `json:"score"`
	Explain Explain `json:"explain"`
	Game    *Game   `json:"game,omitempty"`
}

// SearchPage is the search response.
type SearchPage struct {
	Results        []SearchResult `json:"results"`
	TotalCount     int            `json:"total_count"`
	Degraded       bool           `json:"degraded"`
	DegradedReason string         `json:"degraded_reason,omitempty"`
}

// Game is a catalog record as the API serves it.
type Game struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Genres      []string    `json:"genres,omitempty"`
	Categories  []string    `json:"categories,omitempty"`
	PriceCents  int64       `json:"price_cents"`
	Type        string      `json:"type,omitempty"`
	ReviewCount int64       `json:"review_count"`
	ReleaseDate *types.Date `json:"release_date,omitempty"`
	Embedding   []float32   `json:"embedding,omitempty"`
	HasVector   bool        `json:"has_vector,omitempty"`
}

// HealthReport is the GET /healthz response.
type HealthReport struct {
	Status        string            `json:"status"`
	Checks        map[string]string `json:"checks"`
	Games         int               `json:"games"`
	EmbeddedGames int               `json:"embedded_games"`
}
