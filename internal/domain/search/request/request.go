package request

import (
	"fmt"
	"strings"

	"github.com/playforge/gamedex/internal/domain"
	"github.com/playforge/gamedex/internal/domain/search/filter"
	"github.com/playforge/gamedex/internal/domain/search/mode"
	"github.com/playforge/gamedex/internal/domain/search/sortkey"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 200
	DefaultLimit   = 20
	MaxLimit       = 100
	// DefaultAlpha balances lexical and semantic contributions in hybrid mode.
	DefaultAlpha = 0.5
)

// Request is a validated search query. An empty query text is allowed and
// turns the request into a browse over the filtered catalog.
type Request struct {
	query   string
	mode    mode.Mode
	alpha   float64
	filters filter.Filter
	sort    sortkey.Key
	offset  int
	limit   int
}

// New validates and normalizes search parameters.
// Defaults: mode=hybrid, sort=relevance, alpha=0.5, limit=20.
// Interior whitespace runs in the query collapse to a single space.
func New(
	query string,
	m mode.Mode,
	alpha *float64,
	filters filter.Filter,
	sort sortkey.Key,
	offset, limit int,
) (Request, error) {
	query = strings.Join(strings.Fields(query), " ")
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)",
			domain.ErrInvalidRequest, MaxQueryLength)
	}
	if m == "" {
		m = mode.Hybrid
	}
	if !m.IsValid() {
		return Request{}, fmt.Errorf("%w: unknown search mode %q", domain.ErrInvalidRequest, m)
	}
	a := DefaultAlpha
	if alpha != nil {
		a = *alpha
	}
	if a < 0 || a > 1 {
		return Request{}, fmt.Errorf("%w: alpha must be in [0,1], got %v", domain.ErrInvalidRequest, a)
	}
	if sort == "" {
		sort = sortkey.Relevance
	}
	if !sort.IsValid() {
		return Request{}, fmt.Errorf("%w: unknown sort key %q", domain.ErrInvalidRequest, sort)
	}
	if offset < 0 {
		return Request{}, fmt.Errorf("%w: offset must be non-negative, got %d", domain.ErrInvalidRequest, offset)
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 0 {
		return Request{}, fmt.Errorf("%w: limit must be positive, got %d", domain.ErrInvalidRequest, limit)
	}
	if limit > MaxLimit {
		return Request{}, fmt.Errorf("%w: limit exceeds maximum page size %d", domain.ErrInvalidRequest, MaxLimit)
	}

	return Request{
		query:   query,
		mode:    m,
		alpha:   a,
		filters: filters,
		sort:    sort,
		offset:  offset,
		limit:   limit,
	}, nil
}

// Query returns the normalized search text.
func (r *Request) Query() string { return r.query }

// Mode returns the search strategy.
func (r *Request) Mode() mode.Mode { return r.mode }

// Alpha returns the hybrid fusion weight for the lexical list.
func (r *Request) Alpha() float64 { return r.alpha }

// Filters returns the structured predicate set.
func (r *Request) Filters() filter.Filter { return r.filters }

// Sort returns the requested ordering.
func (r *Request) Sort() sortkey.Key { return r.sort }

// Offset returns the pagination offset.
func (r *Request) Offset() int { return r.offset }

// Limit returns the page size.
func (r *Request) Limit() int { return r.limit }

// IsBrowse reports whether the request has no query text.
func (r *Request) IsBrowse() bool { return r.query == "" }
