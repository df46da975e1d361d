package filter

import (
	"testing"
	"time"

	"github.com/playforge/gamedex/internal/domain"
)

func i64(v int64) *int64 { return &v }

func date(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func itemType(t domain.ItemType) *domain.ItemType { return &t }

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr bool
	}{
		{"empty", Params{}, false},
		{"negative price_min", Params{PriceMin: i64(-1)}, true},
		{"negative price_max", Params{PriceMax: i64(-100)}, true},
		{"inverted price range", Params{PriceMin: i64(2000), PriceMax: i64(1000)}, true},
		{"equal price bounds", Params{PriceMin: i64(1000), PriceMax: i64(1000)}, false},
		{"too many genres", Params{Genres: []string{"a", "b", "c", "d", "e", "f"}}, true},
		{"max genres", Params{Genres: []string{"a", "b", "c", "d", "e"}}, false},
		{"empty genre value", Params{Genres: []string{"Action", ""}}, true},
		{"empty category value", Params{Categories: []string{""}}, true},
		{"unknown item type", Params{ItemType: itemType("bundle")}, true},
		{"valid item type", Params{ItemType: itemType(domain.ItemGame)}, false},
		{"negative min_reviews", Params{MinReviews: i64(-5)}, true},
		{"inverted date range", Params{ReleasedAfter: date("2020-01-01"), ReleasedBefore: date("2019-01-01")}, true},
		{"valid date range", Params{ReleasedAfter: date("2019-01-01"), ReleasedBefore: date("2020-01-01")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.params)
			if (err != nil) != tt.wantErr {
				t.Errorf("New(%+v): err = %v, wantErr %v", tt.params, err, tt.wantErr)
			}
		})
	}
}

func TestIsEmpty(t *testing.T) {
	if empty := (Filter{}); !empty.IsEmpty() {
		t.Error("zero filter should be empty")
	}
	f, err := New(Params{PriceMax: i64(1000)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if f.IsEmpty() {
		t.Error("filter with a predicate should not be empty")
	}
}

func TestMatches_GenreContainment(t *testing.T) {
	// The game must carry every requested genre, not any of them.
	g := &domain.Game{ID: 1, Genres: []string{"Strategy", "Simulation"}}

	both, _ := New(Params{Genres: []string{"Strategy", "Simulation"}})
	if !both.Matches(g) {
		t.Error("game carrying both genres should match")
	}

	extra, _ := New(Params{Genres: []string{"Strategy", "Action"}})
	if extra.Matches(g) {
		t.Error("game missing a requested genre must not match")
	}

	caseSensitive, _ := New(Params{Genres: []string{"strategy"}})
	if caseSensitive.Matches(g) {
		t.Error("genre matching is exact, not case-folded")
	}
}

func TestMatches_PriceBoundsInclusive(t *testing.T) {
	g := &domain.Game{ID: 1, PriceCents: 1999}

	f, _ := New(Params{PriceMin: i64(1999), PriceMax: i64(1999)})
	if !f.Matches(g) {
		t.Error("bounds are inclusive")
	}

	below, _ := New(Params{PriceMin: i64(2000)})
	if below.Matches(g) {
		t.Error("price below floor must not match")
	}

	above, _ := New(Params{PriceMax: i64(1998)})
	if above.Matches(g) {
		t.Error("price above ceiling must not match")
	}

	free := &domain.Game{ID: 2, PriceCents: 0}
	zeroMin, _ := New(Params{PriceMin: i64(0)})
	if !zeroMin.Matches(free) {
		t.Error("free game matches a zero price floor")
	}
}

func TestMatches_ItemTypeAndReviews(t *testing.T) {
	g := &domain.Game{ID: 1, Type: domain.ItemDLC, ReviewCount: 42}

	dlc, _ := New(Params{ItemType: itemType(domain.ItemDLC)})
	if !dlc.Matches(g) {
		t.Error("type match failed")
	}

	game, _ := New(Params{ItemType: itemType(domain.ItemGame)})
	if game.Matches(g) {
		t.Error("wrong type must not match")
	}

	exact, _ := New(Params{MinReviews: i64(42)})
	if !exact.Matches(g) {
		t.Error("min_reviews is inclusive")
	}

	over, _ := New(Params{MinReviews: i64(43)})
	if over.Matches(g) {
		t.Error("review count below floor must not match")
	}
}

func TestMatches_DateBoundsExcludeUndated(t *testing.T) {
	released := &domain.Game{ID: 1, ReleaseDate: date("2020-06-15")}
	undated := &domain.Game{ID: 2}

	after, _ := New(Params{ReleasedAfter: date("2020-06-15")})
	if !after.Matches(released) {
		t.Error("released_after is inclusive")
	}
	if after.Matches(undated) {
		t.Error("undated game must not pass a date predicate")
	}

	before, _ := New(Params{ReleasedBefore: date("2020-06-15")})
	if !before.Matches(released) {
		t.Error("released_before is inclusive")
	}
	if before.Matches(undated) {
		t.Error("undated game must not pass a date predicate")
	}

	window, _ := New(Params{ReleasedAfter: date("2021-01-01"), ReleasedBefore: date("2022-01-01")})
	if window.Matches(released) {
		t.Error("release outside the window must not match")
	}
}

func TestMatches_PredicatesCompose(t *testing.T) {
	g := &domain.Game{
		ID:          1,
		Type:        domain.ItemGame,
		PriceCents:  1499,
		Genres:      []string{"Action"},
		Categories:  []string{"Multi-player"},
		ReviewCount: 100,
		ReleaseDate: date("2021-03-01"),
	}

	all, err := New(Params{
		PriceMin:       i64(1000),
		PriceMax:       i64(2000),
		Genres:         []string{"Action"},
		Categories:     []string{"Multi-player"},
		ItemType:       itemType(domain.ItemGame),
		MinReviews:     i64(50),
		ReleasedAfter:  date("2021-01-01"),
		ReleasedBefore: date("2021-12-31"),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !all.Matches(g) {
		t.Error("game satisfying every predicate should match")
	}

	// Flip one predicate: the conjunction must fail.
	g.ReviewCount = 10
	if all.Matches(g) {
		t.Error("one failing predicate must fail the whole filter")
	}
}
