// Package chi exposes the post catalog and ranking engine over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/postrank/internal/domain"
	dompost "github.com/kailas-cloud/postrank/internal/domain/post"
	domrelated "github.com/kailas-cloud/postrank/internal/domain/related"
	"github.com/kailas-cloud/postrank/internal/domain/search/criteria"
	"github.com/kailas-cloud/postrank/internal/domain/search/options"
	"github.com/kailas-cloud/postrank/internal/logger"
	"github.com/kailas-cloud/postrank/internal/metrics"
	cataloguc "github.com/kailas-cloud/postrank/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/postrank/internal/usecase/health"
	historyuc "github.com/kailas-cloud/postrank/internal/usecase/history"
	"github.com/kailas-cloud/postrank/internal/usecase/pagination"
	relateduc "github.com/kailas-cloud/postrank/internal/usecase/related"
	searchuc "github.com/kailas-cloud/postrank/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// PageConfig holds listing defaults.
type PageConfig struct {
	PostsPerPage    int
	MaxVisiblePages int
}

// Server holds the HTTP handlers for the API.
type Server struct {
	catalog        *cataloguc.Service
	search         *searchuc.Service
	history        *historyuc.Service
	health         *healthuc.Service
	relatedDefault domrelated.Config
	pages          PageConfig
	maxSuggestions int
	logger         *zap.Logger
	errorHandlers  []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	catalog *cataloguc.Service,
	search *searchuc.Service,
	history *historyuc.Service,
	health *healthuc.Service,
	relatedDefault domrelated.Config,
	pages PageConfig,
	maxSuggestions int,
	logger *zap.Logger,
) *Server {
	if pages.PostsPerPage <= 0 {
		pages.PostsPerPage = 10
	}
	if pages.MaxVisiblePages <= 0 {
		pages.MaxVisiblePages = pagination.DefaultMaxVisible
	}
	if maxSuggestions <= 0 {
		maxSuggestions = searchuc.DefaultMaxSuggestions
	}

	s := &Server{
		catalog:        catalog,
		search:         search,
		history:        history,
		health:         health,
		relatedDefault: relatedDefault,
		pages:          pages,
		maxSuggestions: maxSuggestions,
		logger:         logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrPostNotFound, http.StatusNotFound, codePostNotFound),
		sentinelHandler(domain.ErrInvalidPost, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidOptions, http.StatusBadRequest, codeValidationFailed),
	}
	return s
}

// Routes registers all API routes on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/posts", func(r chi.Router) {
			r.Get("/", s.ListPosts)
			r.Put("/{id}", s.UpsertPost)
			r.Get("/{id}", s.GetPost)
			r.Delete("/{id}", s.DeletePost)
			r.Get("/{id}/related", s.RelatedPosts)
		})
		r.Post("/search", s.SearchPosts)
		r.Post("/search/advanced", s.AdvancedSearch)
		r.Get("/search/history", s.SearchHistory)
		r.Delete("/search/history", s.ClearSearchHistory)
		r.Get("/suggest", s.Suggest)
	})
}

// UpsertPost handles PUT /api/v1/posts/{id}.
func (s *Server) UpsertPost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req postPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	cats := make([]dompost.Category, len(req.Categories))
	for i, c := range req.Categories {
		cats[i] = dompost.Category{Slug: c.Slug, Name: c.Name}
	}

	created, err := s.catalog.Upsert(r.Context(), cataloguc.Input{
		ID:          id,
		Title:       req.Title,
		Excerpt:     req.Excerpt,
		Content:     req.Content,
		PublishedAt: req.PublishedAt,
		Author:      dompost.Author{Slug: req.Author.Slug, Name: req.Author.Name},
		Categories:  cats,
		Tags:        req.Tags,
		Featured:    req.Featured,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, upsertResponse{ID: id, Created: created})
}

// GetPost handles GET /api/v1/posts/{id}.
func (s *Server) GetPost(w http.ResponseWriter, r *http.Request) {
	p, err := s.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, postToResponse(&p, true))
}

// DeletePost handles DELETE /api/v1/posts/{id}.
func (s *Server) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListPosts handles GET /api/v1/posts with page/per_page query params.
func (s *Server) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.catalog.All(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	metrics.CatalogPosts.Set(float64(len(posts)))

	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", s.pages.PostsPerPage)

	data := pagination.Paginate(len(posts), page, perPage)
	if v := pagination.Validate(page, data.TotalPages); !v.IsValid {
		data = pagination.Paginate(len(posts), v.CorrectedPage, perPage)
	}

	pageItems := pagination.Slice(posts, data.CurrentPage, data.PostsPerPage)
	items := make([]postResponse, len(pageItems))
	for i := range pageItems {
		items[i] = postToResponse(&pageItems[i], false)
	}

	writeJSON(w, http.StatusOK, postListResponse{
		Items:      items,
		Pagination: paginationToDTO(data),
		Window:     windowToDTO(pagination.Window(data.CurrentPage, data.TotalPages, s.pages.MaxVisiblePages)),
	})
}

// SearchPosts handles POST /api/v1/search.
func (s *Server) SearchPosts(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	opts, err := s.optionsFrom(req.Options)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	posts, err := s.catalog.All(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	start := time.Now()
	results := s.search.Search(posts, req.Query, opts)
	observeSearch("search", start, len(results))

	// History failures only warn inside the service.
	s.history.Record(r.Context(), req.Query)

	writeJSON(w, http.StatusOK, searchResponse{
		Query:   req.Query,
		Results: resultsToDTO(results, opts.IncludeContent()),
		Total:   len(results),
	})
}

// AdvancedSearch handles POST /api/v1/search/advanced.
func (s *Server) AdvancedSearch(w http.ResponseWriter, r *http.Request) {
	var req advancedSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	opts, err := s.optionsFrom(req.Options)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	posts, err := s.catalog.All(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	c := criteria.Criteria{
		Category: req.Filters.Category,
		Tag:      req.Filters.Tag,
		Author:   req.Filters.Author,
		Featured: req.Filters.Featured,
		Query:    req.Query,
	}
	if req.Filters.PublishedFrom != nil {
		c.PublishedFrom = *req.Filters.PublishedFrom
	}
	if req.Filters.PublishedTo != nil {
		c.PublishedTo = *req.Filters.PublishedTo
	}

	start := time.Now()
	matched := s.search.Advanced(posts, c, opts)
	observeSearch("advanced", start, len(matched))

	s.history.Record(r.Context(), req.Query)

	items := make([]postResponse, len(matched))
	for i := range matched {
		items[i] = postToResponse(&matched[i], opts.IncludeContent())
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"query":   req.Query,
		"results": items,
		"total":   len(items),
	})
}

// Suggest handles GET /api/v1/suggest.
func (s *Server) Suggest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit := queryInt(r, "limit", s.maxSuggestions)

	posts, err := s.catalog.All(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	start := time.Now()
	suggestions := s.search.Suggest(posts, query, limit)
	observeSearch("suggest", start, len(suggestions))

	writeJSON(w, http.StatusOK, suggestResponse{Query: query, Suggestions: suggestions})
}

// RelatedPosts handles GET /api/v1/posts/{id}/related.
func (s *Server) RelatedPosts(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	current, err := s.catalog.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	cfg := s.relatedDefault
	maxPosts := queryInt(r, "max", cfg.MaxPosts())
	algorithm := cfg.Algorithm()
	if a := r.URL.Query().Get("algorithm"); a != "" {
		algorithm = domrelated.Algorithm(a)
	}
	cfg, err = domrelated.New(maxPosts, algorithm, true)
	if err != nil {
		s.handleDomainError(w, r, fmt.Errorf("%w: %s", domain.ErrInvalidOptions, err))
		return
	}

	posts, err := s.catalog.All(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	selected := relateduc.Select(&current, posts, cfg)
	items := make([]postResponse, len(selected))
	for i := range selected {
		items[i] = postToResponse(&selected[i], false)
	}
	writeJSON(w, http.StatusOK, relatedResponse{PostID: id, Related: items})
}

// SearchHistory handles GET /api/v1/search/history.
func (s *Server) SearchHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, historyResponse{Queries: s.history.Recent(r.Context())})
}

// ClearSearchHistory handles DELETE /api/v1/search/history.
func (s *Server) ClearSearchHistory(w http.ResponseWriter, r *http.Request) {
	s.history.Clear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
		Posts:  report.Posts,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) optionsFrom(d *searchOptionsDTO) (options.Options, error) {
	defaults := s.search.Defaults()
	if d == nil {
		return defaults, nil
	}

	fuzzy := defaults.Fuzzy()
	if d.Fuzzy != nil {
		fuzzy = *d.Fuzzy
	}

	opts, err := options.New(
		d.Fields, d.MinQueryLength, fuzzy, d.FuzzyThreshold, d.Limit, d.IncludeContent,
	)
	if err != nil {
		return options.Options{}, fmt.Errorf("%w: %s", domain.ErrInvalidOptions, err)
	}
	return opts, nil
}

func observeSearch(kind string, start time.Time, results int) {
	metrics.SearchRequestsTotal.WithLabelValues(kind, "ok").Inc()
	metrics.SearchDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	metrics.SearchResultsReturned.WithLabelValues(kind).Observe(float64(results))
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrPostNotFound,
		domain.ErrInvalidPost,
		domain.ErrInvalidOptions,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	// Prefer the request-scoped logger so the request ID travels with the error.
	log := logger.FromContextOr(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
