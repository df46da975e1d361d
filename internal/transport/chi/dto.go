package chi

import (
	"fmt"

	"github.com/oapi-codegen/runtime/types"

	"github.com/playforge/gamedex/internal/domain"
	"github.com/playforge/gamedex/internal/domain/search/filter"
	"github.com/playforge/gamedex/internal/domain/search/mode"
	"github.com/playforge/gamedex/internal/domain/search/request"
	"github.com/playforge/gamedex/internal/domain/search/result"
	"github.com/playforge/gamedex/internal/domain/search/sortkey"
)

// searchRequestBody is the POST /v1/search payload.
type searchRequestBody struct {
	Query   string       `json:"query"`
	Mode    string       `json:"mode,omitempty"`
	Alpha   *float64     `json:"alpha,omitempty"`
	Filters *filtersBody `json:"filters,omitempty"`
	Sort    string       `json:"sort,omitempty"`
	Offset  int          `json:"offset,omitempty"`
	Limit   int          `json:"limit,omitempty"`
}

// filtersBody carries the structured predicates. Dates are calendar days
// in YYYY-MM-DD form.
type filtersBody struct {
	PriceMin       *int64      `json:"price_min,omitempty"`
	PriceMax       *int64      `json:"price_max,omitempty"`
	Genres         []string    `json:"genres,omitempty"`
	Categories     []string    `json:"categories,omitempty"`
	ItemType       *string     `json:"item_type,omitempty"`
	MinReviews     *int64      `json:"min_reviews,omitempty"`
	ReleasedAfter  *types.Date `json:"released_after,omitempty"`
	ReleasedBefore *types.Date `json:"released_before,omitempty"`
}

type searchResultItem struct {
	GameID  int64          `json:"game_id"`
	Score   float64        `json:"score"`
	Explain result.Explain `json:"explain"`
	Game    *gameResponse  `json:"game,omitempty"`
}

type searchResponse struct {
	Results        []searchResultItem `json:"results"`
	TotalCount     int                `json:"total_count"`
	Degraded       bool               `json:"degraded"`
	DegradedReason string             `json:"degraded_reason,omitempty"`
}

// gameUpsertBody is the PUT /v1/games/{id} payload. The id comes from the
// URL path; a body id, if present, must agree with it.
type gameUpsertBody struct {
	ID          int64       `json:"id,omitempty"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Genres      []string    `json:"genres,omitempty"`
	Categories  []string    `json:"categories,omitempty"`
	PriceCents  int64       `json:"price_cents"`
	Type        string      `json:"type,omitempty"`
	ReviewCount int64       `json:"review_count"`
	ReleaseDate *types.Date `json:"release_date,omitempty"`
	Embedding   []float32   `json:"embedding,omitempty"`
}

type gameResponse struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Genres      []string    `json:"genres,omitempty"`
	Categories  []string    `json:"categories,omitempty"`
	PriceCents  int64       `json:"price_cents"`
	Type        string      `json:"type"`
	ReviewCount int64       `json:"review_count"`
	ReleaseDate *types.Date `json:"release_date,omitempty"`
	HasVector   bool        `json:"has_vector"`
}

type healthResponse struct {
	Status        string            `json:"status"`
	Checks        map[string]string `json:"checks"`
	Games         int               `json:"games"`
	EmbeddedGames int               `json:"embedded_games"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error response codes.
const (
	codeBadRequest           = "bad_request"
	codeInvalidRequest       = "invalid_request"
	codeNotFound             = "game_not_found"
	codeEmbeddingUnavailable = "embedding_unavailable"
	codeStoreUnavailable     = "store_unavailable"
	codeTimeout              = "timeout"
	codeInternalError        = "internal_error"
)

func searchRequestFromBody(body searchRequestBody) (request.Request, error) {
	f, err := filtersFromBody(body.Filters)
	if err != nil {
		return request.Request{}, err
	}
	return request.New(
		body.Query,
		mode.Mode(body.Mode),
		body.Alpha,
		f,
		sortkey.Key(body.Sort),
		body.Offset,
		body.Limit,
	)
}

func filtersFromBody(body *filtersBody) (filter.Filter, error) {
	if body == nil {
		return filter.Filter{}, nil
	}

	p := filter.Params{
		PriceMin:   body.PriceMin,
		PriceMax:   body.PriceMax,
		Genres:     body.Genres,
		Categories: body.Categories,
		MinReviews: body.MinReviews,
	}
	if body.ItemType != nil {
		t := domain.ItemType(*body.ItemType)
		p.ItemType = &t
	}
	if body.ReleasedAfter != nil {
		t := body.ReleasedAfter.Time
		p.ReleasedAfter = &t
	}
	if body.ReleasedBefore != nil {
		t := body.ReleasedBefore.Time
		p.ReleasedBefore = &t
	}

	f, err := filter.New(p)
	if err != nil {
		return filter.Filter{}, fmt.Errorf("%w: %s", domain.ErrInvalidRequest, err)
	}
	return f, nil
}

func gameFromUpsert(id int64, body gameUpsertBody) (*domain.Game, error) {
	if body.ID != 0 && body.ID != id {
		return nil, fmt.Errorf("%w: body id %d does not match path id %d",
			domain.ErrInvalidRequest, body.ID, id)
	}

	g := &domain.Game{
		ID:          id,
		Title:       body.Title,
		Description: body.Description,
		Genres:      body.Genres,
		Categories:  body.Categories,
		PriceCents:  body.PriceCents,
		Type:        domain.ItemType(body.Type),
		ReviewCount: body.ReviewCount,
		Embedding:   body.Embedding,
	}
	if body.ReleaseDate != nil {
		t := body.ReleaseDate.Time
		g.ReleaseDate = &t
	}
	return g, nil
}

func gameToResponse(g *domain.Game) *gameResponse {
	resp := &gameResponse{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		Genres:      g.Genres,
		Categories:  g.Categories,
		PriceCents:  g.PriceCents,
		Type:        string(g.Type),
		ReviewCount: g.ReviewCount,
		HasVector:   g.HasEmbedding(),
	}
	if g.ReleaseDate != nil {
		resp.ReleaseDate = &types.Date{Time: *g.ReleaseDate}
	}
	return resp
}
