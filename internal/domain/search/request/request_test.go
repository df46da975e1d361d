package request

import (
	"errors"
	"strings"
	"testing"

	"github.com/playforge/gamedex/internal/domain"
	"github.com/playforge/gamedex/internal/domain/search/filter"
	"github.com/playforge/gamedex/internal/domain/search/mode"
	"github.com/playforge/gamedex/internal/domain/search/sortkey"
)

func alpha(v float64) *float64 { return &v }

func TestNew_Defaults(t *testing.T) {
	req, err := New("space", "", nil, filter.Filter{}, "", 0, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if req.Mode() != mode.Hybrid {
		t.Errorf("mode: got %q, want hybrid", req.Mode())
	}
	if req.Sort() != sortkey.Relevance {
		t.Errorf("sort: got %q, want relevance", req.Sort())
	}
	if req.Alpha() != DefaultAlpha {
		t.Errorf("alpha: got %v, want %v", req.Alpha(), DefaultAlpha)
	}
	if req.Limit() != DefaultLimit {
		t.Errorf("limit: got %d, want %d", req.Limit(), DefaultLimit)
	}
	if req.IsBrowse() {
		t.Error("non-empty query is not a browse")
	}
}

func TestNew_CollapsesWhitespace(t *testing.T) {
	req, err := New("  deep \t space\n\nmining  ", "", nil, filter.Filter{}, "", 0, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := req.Query(); got != "deep space mining" {
		t.Errorf("query: got %q", got)
	}
}

func TestNew_WhitespaceOnlyQueryIsBrowse(t *testing.T) {
	req, err := New("   \t  ", "", nil, filter.Filter{}, "", 0, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !req.IsBrowse() {
		t.Error("whitespace-only query should normalize to a browse")
	}
}

func TestNew_QueryLengthCap(t *testing.T) {
	at := strings.Repeat("a", MaxQueryLength)
	if _, err := New(at, "", nil, filter.Filter{}, "", 0, 0); err != nil {
		t.Errorf("query at the cap should pass: %v", err)
	}

	over := strings.Repeat("a", MaxQueryLength+1)
	_, err := New(over, "", nil, filter.Filter{}, "", 0, 0)
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mode   mode.Mode
		alpha  *float64
		sort   sortkey.Key
		offset int
		limit  int
	}{
		{name: "unknown mode", mode: "telepathic"},
		{name: "alpha below zero", alpha: alpha(-0.1)},
		{name: "alpha above one", alpha: alpha(1.1)},
		{name: "unknown sort", sort: "popularity"},
		{name: "negative offset", offset: -1},
		{name: "negative limit", limit: -5},
		{name: "limit over max", limit: MaxLimit + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("q", tt.mode, tt.alpha, filter.Filter{}, tt.sort, tt.offset, tt.limit)
			if !errors.Is(err, domain.ErrInvalidRequest) {
				t.Errorf("expected ErrInvalidRequest, got %v", err)
			}
		})
	}
}

func TestNew_AlphaBoundsInclusive(t *testing.T) {
	for _, v := range []float64{0, 1} {
		req, err := New("q", mode.Hybrid, alpha(v), filter.Filter{}, "", 0, 0)
		if err != nil {
			t.Errorf("alpha %v should be valid: %v", v, err)
			continue
		}
		if req.Alpha() != v {
			t.Errorf("alpha: got %v, want %v", req.Alpha(), v)
		}
	}
}

func TestNew_LimitAtMax(t *testing.T) {
	req, err := New("q", "", nil, filter.Filter{}, "", 0, MaxLimit)
	if err != nil {
		t.Fatalf("limit at max should pass: %v", err)
	}
	if req.Limit() != MaxLimit {
		t.Errorf("limit: got %d, want %d", req.Limit(), MaxLimit)
	}
}
