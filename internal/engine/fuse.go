package engine

import (
	"sort"

	"github.com/playforge/gamedex/internal/domain/search/result"
)

// rrfK is the Reciprocal Rank Fusion constant (standard value from Cormack et al. 2009).
const rrfK = 60

// fuseRRF merges the lexical and semantic rankings via Reciprocal Rank
// Fusion. A game at 1-based rank r contributes 1/(rrfK+r) from that list;
// the lexical contribution is weighted by alpha, the semantic one by
// 1-alpha. A game missing from a list gets no contribution from it.
// alpha=1 therefore reproduces the pure lexical ordering and alpha=0 the
// pure semantic one; games whose only contribution comes from a
// zero-weighted list fuse to 0 and are dropped, so boundary alphas return
// exactly the single-signal result set. Output is ordered by descending
// fused score, ties broken by ascending game id.
func fuseRRF(lex, sem []result.Candidate, alpha float64) []result.FusedResult {
	merged := make(map[int64]*result.FusedResult, len(lex)+len(sem))

	for _, c := range lex {
		merged[c.GameID] = &result.FusedResult{
			GameID: c.GameID,
			Score:  alpha / float64(rrfK+c.Rank),
			Explain: result.Explain{
				LexicalRank: c.Rank,
				BM25Score:   c.Score,
			},
		}
	}

	for _, c := range sem {
		if f, ok := merged[c.GameID]; ok {
			f.Score += (1 - alpha) / float64(rrfK+c.Rank)
			f.Explain.SemanticRank = c.Rank
			f.Explain.CosineSim = c.Score
			continue
		}
		merged[c.GameID] = &result.FusedResult{
			GameID: c.GameID,
			Score:  (1 - alpha) / float64(rrfK+c.Rank),
			Explain: result.Explain{
				SemanticRank: c.Rank,
				CosineSim:    c.Score,
			},
		}
	}

	fused := make([]result.FusedResult, 0, len(merged))
	for _, f := range merged {
		if f.Score == 0 {
			continue
		}
		fused = append(fused, *f)
	}
	sort.Slice(fused, func(i, j int) bool {
		if fused[i].Score != fused[j].Score {
			return fused[i].Score > fused[j].Score
		}
		return fused[i].GameID < fused[j].GameID
	})
	return fused
}

// singleList converts one scorer's ranking into fused results, keeping the
// raw score as the relevance score.
func singleList(list []result.Candidate, lexical bool) []result.FusedResult {
	fused := make([]result.FusedResult, len(list))
	for i, c := range list {
		f := result.FusedResult{GameID: c.GameID, Score: c.Score}
		if lexical {
			f.Explain.LexicalRank = c.Rank
			f.Explain.BM25Score = c.Score
		} else {
			f.Explain.SemanticRank = c.Rank
			f.Explain.CosineSim = c.Score
		}
		fused[i] = f
	}
	return fused
}
