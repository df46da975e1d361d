// Package engine implements the ranking and retrieval core: filter
// application, lexical and semantic scoring, rank fusion, ordering, and
// pagination.
package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/playforge/gamedex/internal/domain"
	"github.com/playforge/gamedex/internal/domain/search/mode"
	"github.com/playforge/gamedex/internal/domain/search/request"
	"github.com/playforge/gamedex/internal/domain/search/result"
	"github.com/playforge/gamedex/internal/domain/search/sortkey"
	"github.com/playforge/gamedex/internal/metrics"
)

// Config holds engine tuning knobs.
type Config struct {
	// MinSimilarity is the hard cosine similarity cutoff for the semantic path.
	MinSimilarity float64
}

// Service executes search requests over an immutable snapshot of the
// catalog. All per-request computation is stateless; the only shared
// mutable structure is the embedding cache behind the Embedder.
type Service struct {
	catalog  Catalog
	lex      LexicalIndex
	vec      VectorIndex
	embed    Embedder
	tokenize Tokenizer
	cfg      Config
	logger   *zap.Logger
}

// New creates a search engine service.
func New(
	catalog Catalog,
	lex LexicalIndex,
	vec VectorIndex,
	embed Embedder,
	tokenize Tokenizer,
	cfg Config,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		catalog:  catalog,
		lex:      lex,
		vec:      vec,
		embed:    embed,
		tokenize: tokenize,
		cfg:      cfg,
		logger:   logger,
	}
}

// Search runs a validated request through filter, scoring, fusion, ordering
// and pagination. In hybrid mode a semantic-path failure degrades the
// response to lexical-only with the page flagged; in semantic mode the same
// failure is fatal.
func (s *Service) Search(ctx context.Context, req *request.Request) (result.Page, error) {
	candidates, err := s.catalog.Matching(ctx, req.Filters())
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(string(req.Mode()), "error").Inc()
		return result.Page{}, fmt.Errorf("load candidates: %w", err)
	}
	total := len(candidates)

	byID := make(map[int64]*domain.Game, total)
	allowed := make(map[int64]struct{}, total)
	for _, g := range candidates {
		byID[g.ID] = g
		allowed[g.ID] = struct{}{}
	}

	page, err := s.rank(ctx, req, byID, allowed)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(string(req.Mode()), "error").Inc()
		return result.Page{}, err
	}
	page.TotalCount = total

	metrics.SearchRequestsTotal.WithLabelValues(string(req.Mode()), "ok").Inc()
	metrics.SearchCandidates.Observe(float64(total))
	if page.Degraded {
		metrics.SearchDegradedTotal.Inc()
	}
	return page, nil
}

func (s *Service) rank(
	ctx context.Context,
	req *request.Request,
	byID map[int64]*domain.Game,
	allowed map[int64]struct{},
) (result.Page, error) {
	// Browse: no query text means no relevance signal. The whole filtered
	// set is ordered by the explicit key; relevance falls back to name.
	if req.IsBrowse() {
		results := coverCandidates(nil, byID)
		key := req.Sort()
		if key == sortkey.Relevance {
			key = sortkey.NameAsc
		}
		orderResults(results, byID, key)
		return result.Page{Results: paginate(results, req.Offset(), req.Limit())}, nil
	}

	lex, sem, semErr, err := s.scoreConcurrently(ctx, req, allowed)
	if err != nil {
		return result.Page{}, err
	}

	var page result.Page
	switch {
	case req.Mode() == mode.Hybrid && semErr != nil:
		// Degrade to lexical-only rather than failing the request.
		s.logger.Warn("semantic path failed, degrading hybrid search to lexical",
			zap.String("query", req.Query()), zap.Error(semErr))
		page.Results = singleList(lex, true)
		page.Degraded = true
		page.DegradedReason = semErr.Error()
	case req.Mode() == mode.Hybrid:
		// Fusion is always computed in hybrid mode; a non-relevance sort key
		// reorders the fused set afterwards, it never disables fusion.
		page.Results = fuseRRF(lex, sem, req.Alpha())
	case req.Mode() == mode.Lexical:
		page.Results = singleList(lex, true)
	default:
		page.Results = singleList(sem, false)
	}

	if req.Sort() != sortkey.Relevance {
		// Explicit keys order the full filtered set, not just the scored
		// slice of it. Unscored games keep a zero score and order purely by
		// the key.
		page.Results = coverCandidates(page.Results, byID)
		orderResults(page.Results, byID, req.Sort())
	} else {
		orderResults(page.Results, byID, sortkey.Relevance)
	}

	page.Results = paginate(page.Results, req.Offset(), req.Limit())
	return page, nil
}

// scoreConcurrently fans out the lexical and semantic sub-computations.
// Both are side-effect-free; the errgroup is the join point. semErr carries
// a semantic-path dependency failure separately so hybrid mode can degrade.
// Both scorers rank the whole allowed set (topK=0): the ordering a query
// produces must not depend on which page of it is requested.
func (s *Service) scoreConcurrently(
	ctx context.Context,
	req *request.Request,
	allowed map[int64]struct{},
) (lex, sem []result.Candidate, semErr, err error) {
	g, gctx := errgroup.WithContext(ctx)

	if req.Mode().NeedsLexical() {
		g.Go(func() error {
			lex = s.lex.Search(s.tokenize(req.Query()), allowed, 0)
			return gctx.Err()
		})
	}

	if req.Mode().NeedsEmbedding() {
		g.Go(func() error {
			vec, embErr := s.embed.Embed(gctx, req.Query())
			if embErr != nil {
				embErr = fmt.Errorf("vectorize query: %w", embErr)
				if req.Mode() == mode.Hybrid {
					semErr = embErr
					return nil
				}
				return embErr
			}
			results, searchErr := s.vec.Search(vec, allowed, 0, s.cfg.MinSimilarity)
			if searchErr != nil {
				searchErr = fmt.Errorf("search vectors: %w", searchErr)
				if req.Mode() == mode.Hybrid {
					semErr = searchErr
					return nil
				}
				return searchErr
			}
			sem = results
			return nil
		})
	}

	if waitErr := g.Wait(); waitErr != nil {
		return nil, nil, nil, waitErr
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		// Cancelled mid-flight: abandon partial results.
		return nil, nil, nil, ctxErr
	}
	return lex, sem, semErr, nil
}

// coverCandidates extends scored results to cover every filtered candidate.
// Order of the appended tail is irrelevant; the caller sorts next.
func coverCandidates(scored []result.FusedResult, byID map[int64]*domain.Game) []result.FusedResult {
	seen := make(map[int64]struct{}, len(scored))
	for _, r := range scored {
		seen[r.GameID] = struct{}{}
	}
	results := make([]result.FusedResult, len(scored), len(byID))
	copy(results, scored)
	for id := range byID {
		if _, ok := seen[id]; !ok {
			results = append(results, result.FusedResult{GameID: id})
		}
	}
	return results
}
