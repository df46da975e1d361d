package engine

import (
	"sort"
	"strings"

	"github.com/playforge/gamedex/internal/domain"
	"github.com/playforge/gamedex/internal/domain/search/result"
	"github.com/playforge/gamedex/internal/domain/search/sortkey"
)

// orderResults sorts fused results in place by the requested key. Explicit
// keys look up game attributes in byID; relevance uses the fused score.
// Every ordering ends in an ascending-id tiebreak so pagination is
// deterministic.
func orderResults(results []result.FusedResult, byID map[int64]*domain.Game, key sortkey.Key) {
	less := lessFunc(byID, key)
	sort.Slice(results, func(i, j int) bool {
		a, b := &results[i], &results[j]
		if c := less(a, b); c != 0 {
			return c < 0
		}
		return a.GameID < b.GameID
	})
}

// lessFunc returns a three-way comparator for the sort key: negative when a
// orders before b, zero on ties.
func lessFunc(byID map[int64]*domain.Game, key sortkey.Key) func(a, b *result.FusedResult) int {
	switch key {
	case sortkey.PriceAsc:
		return func(a, b *result.FusedResult) int {
			return compareInt64(byID[a.GameID].PriceCents, byID[b.GameID].PriceCents)
		}
	case sortkey.PriceDesc:
		return func(a, b *result.FusedResult) int {
			return compareInt64(byID[b.GameID].PriceCents, byID[a.GameID].PriceCents)
		}
	case sortkey.Reviews:
		return func(a, b *result.FusedResult) int {
			if c := compareInt64(byID[b.GameID].ReviewCount, byID[a.GameID].ReviewCount); c != 0 {
				return c
			}
			return compareTitle(byID[a.GameID], byID[b.GameID])
		}
	case sortkey.Newest:
		return func(a, b *result.FusedResult) int {
			if c := compareDate(byID[a.GameID], byID[b.GameID], true); c != 0 {
				return c
			}
			return compareTitle(byID[a.GameID], byID[b.GameID])
		}
	case sortkey.Oldest:
		return func(a, b *result.FusedResult) int {
			if c := compareDate(byID[a.GameID], byID[b.GameID], false); c != 0 {
				return c
			}
			return compareTitle(byID[a.GameID], byID[b.GameID])
		}
	case sortkey.NameAsc:
		return func(a, b *result.FusedResult) int {
			return compareTitle(byID[a.GameID], byID[b.GameID])
		}
	case sortkey.NameDesc:
		return func(a, b *result.FusedResult) int {
			return -compareTitle(byID[a.GameID], byID[b.GameID])
		}
	default: // relevance
		return func(a, b *result.FusedResult) int {
			switch {
			case a.Score > b.Score:
				return -1
			case a.Score < b.Score:
				return 1
			}
			return 0
		}
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareTitle(a, b *domain.Game) int {
	return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
}

// compareDate orders by release date; games without a date sort last in
// either direction.
func compareDate(a, b *domain.Game, newestFirst bool) int {
	switch {
	case a.ReleaseDate == nil && b.ReleaseDate == nil:
		return 0
	case a.ReleaseDate == nil:
		return 1
	case b.ReleaseDate == nil:
		return -1
	}
	if a.ReleaseDate.Equal(*b.ReleaseDate) {
		return 0
	}
	before := a.ReleaseDate.Before(*b.ReleaseDate)
	if newestFirst {
		if before {
			return 1
		}
		return -1
	}
	if before {
		return -1
	}
	return 1
}

// paginate slices the ordered results. An offset beyond the set yields an
// empty page.
func paginate(results []result.FusedResult, offset, limit int) []result.FusedResult {
	if offset >= len(results) {
		return []result.FusedResult{}
	}
	end := offset + limit
	if end > len(results) {
		end = len(results)
	}
	return results[offset:end]
}
