// Package chi is the HTTP API surface: search, game ingestion, health,
// and metrics over a chi router.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/playforge/gamedex/internal/domain"
	"github.com/playforge/gamedex/internal/domain/search/request"
	"github.com/playforge/gamedex/internal/domain/search/result"
)

// Searcher runs validated search requests against the engine.
type Searcher interface {
	Search(ctx context.Context, req *request.Request) (result.Page, error)
}

// Catalog is the ingestion and lookup surface behind the game endpoints.
type Catalog interface {
	Put(ctx context.Context, g *domain.Game) error
	Remove(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Game, error)
	Len() int
	EmbeddedLen() int
}

// Pinger checks storage liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider liveness.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers for the API.
type Server struct {
	search        Searcher
	catalog       Catalog
	store         Pinger
	embedder      EmbeddingChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. store and embedder may be nil;
// the health endpoint then skips the corresponding check.
func NewServer(search Searcher, catalog Catalog, store Pinger, embedder EmbeddingChecker, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		search:   search,
		catalog:  catalog,
		store:    store,
		embedder: embedder,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, codeInvalidRequest),
		sentinelHandler(domain.ErrGameNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrEmbeddingUnavailable, http.StatusBadGateway, codeEmbeddingUnavailable),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, codeStoreUnavailable),
		sentinelHandler(context.DeadlineExceeded, http.StatusGatewayTimeout, codeTimeout),
	}
	return s
}

// Register mounts the API routes on the router. Middleware is the
// caller's concern.
func (s *Server) Register(r chi.Router) {
	r.Post("/v1/search", s.SearchGames)
	r.Get("/v1/games/{id}", s.GetGame)
	r.Put("/v1/games/{id}", s.UpsertGame)
	r.Delete("/v1/games/{id}", s.DeleteGame)
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// SearchGames handles POST /v1/search.
func (s *Server) SearchGames(w http.ResponseWriter, r *http.Request) {
	var body searchRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	req, err := searchRequestFromBody(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, err.Error())
		return
	}

	page, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]searchResultItem, len(page.Results))
	for i, res := range page.Results {
		items[i] = searchResultItem{
			GameID:  res.GameID,
			Score:   res.Score,
			Explain: res.Explain,
		}
		if g, err := s.catalog.Get(r.Context(), res.GameID); err == nil {
			items[i].Game = gameToResponse(g)
		}
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Results:        items,
		TotalCount:     page.TotalCount,
		Degraded:       page.Degraded,
		DegradedReason: page.DegradedReason,
	})
}

// GetGame handles GET /v1/games/{id}.
func (s *Server) GetGame(w http.ResponseWriter, r *http.Request) {
	id, ok := s.gameID(w, r)
	if !ok {
		return
	}

	g, err := s.catalog.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, gameToResponse(g))
}

// UpsertGame handles PUT /v1/games/{id}.
func (s *Server) UpsertGame(w http.ResponseWriter, r *http.Request) {
	id, ok := s.gameID(w, r)
	if !ok {
		return
	}

	var body gameUpsertBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	g, err := gameFromUpsert(id, body)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, err.Error())
		return
	}

	if err := s.catalog.Put(r.Context(), g); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, gameToResponse(g))
}

// DeleteGame handles DELETE /v1/games/{id}.
func (s *Server) DeleteGame(w http.ResponseWriter, r *http.Request) {
	id, ok := s.gameID(w, r)
	if !ok {
		return
	}

	if err := s.catalog.Remove(r.Context(), id); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)
	healthy := true

	if s.store != nil {
		if err := s.store.Ping(r.Context()); err != nil {
			checks["database"] = "unhealthy"
			healthy = false
			s.logger.Warn("Database health check failed", zap.Error(err))
		} else {
			checks["database"] = "healthy"
		}
	}

	if s.embedder != nil {
		if err := s.embedder.HealthCheck(r.Context()); err != nil {
			checks["embedding"] = "unhealthy"
			healthy = false
			s.logger.Warn("Embedding health check failed", zap.Error(err))
		} else {
			checks["embedding"] = "healthy"
		}
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if !healthy {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status:        status,
		Checks:        checks,
		Games:         s.catalog.Len(),
		EmbeddedGames: s.catalog.EmbeddedLen(),
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) gameID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "game id must be a positive integer")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals. Validation errors keep their detail: the client needs
// to know which parameter was rejected.
func safeDomainMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidRequest) {
		return err.Error()
	}
	sentinels := []error{
		domain.ErrGameNotFound,
		domain.ErrEmbeddingUnavailable,
		domain.ErrStoreUnavailable,
		context.DeadlineExceeded,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
