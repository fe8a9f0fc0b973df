package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/moviedex/internal/domain"
	logpkg "github.com/kailas-cloud/moviedex/internal/logger"
	askuc "github.com/kailas-cloud/moviedex/internal/usecase/ask"
	healthuc "github.com/kailas-cloud/moviedex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/moviedex/internal/usecase/search"
)

// Error response codes.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeMovieNotFound    = "movie_not_found"
	codeProviderError    = "provider_error"
	codeStoreUnavailable = "store_unavailable"
	codeInternalError    = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the search and question-answering API over chi.
type Server struct {
	search        *searchuc.Service
	ask           *askuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	ask *askuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search: search,
		ask:    ask,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeMovieNotFound),
		sentinelHandler(domain.ErrInvalidBatch, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrProviderError, http.StatusBadGateway, codeProviderError),
		sentinelHandler(domain.ErrModelUnavailable, http.StatusBadGateway, codeProviderError),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, codeStoreUnavailable),
	}
	return s
}

// Routes mounts every handler on r.
func (s *Server) Routes(r chi.Router) {
	r.Post("/search/", s.SearchMovies)
	r.Post("/search", s.SearchMovies)
	r.Post("/ask/{movie_id}", s.AskMovie)
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

type searchFilters struct {
	Genre     *string  `json:"genre"`
	MinYear   *int     `json:"min_year"`
	MinRating *float64 `json:"min_rating"`
}

type searchRequest struct {
	Query   string         `json:"query"`
	Filters *searchFilters `json:"filters"`
	TopK    *int           `json:"top_k"`
}

type askRequest struct {
	Question string `json:"question"`
}

// SearchMovies handles POST /search/.
func (s *Server) SearchMovies(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.Query == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "Query is required")
		return
	}

	ucReq := searchuc.Request{
		Query: req.Query,
		TopK:  searchuc.DefaultTopK,
	}
	if req.TopK != nil {
		ucReq.TopK = *req.TopK
	}
	if req.Filters != nil {
		ucReq.Filters = domain.SearchFilters{
			Genre:     req.Filters.Genre,
			MinYear:   req.Filters.MinYear,
			MinRating: req.Filters.MinRating,
		}
	}

	result, err := s.search.Search(r.Context(), ucReq)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// AskMovie handles POST /ask/{movie_id}.
func (s *Server) AskMovie(w http.ResponseWriter, r *http.Request) {
	movieID, err := strconv.Atoi(chi.URLParam(r, "movie_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "Movie id must be an integer")
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "Question is required")
		return
	}

	result, err := s.ask.Ask(r.Context(), movieID, req.Question)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if !report.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrInvalidBatch,
		domain.ErrProviderError,
		domain.ErrModelUnavailable,
		domain.ErrStoreUnavailable,
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

// handleDomainError maps a domain error to an HTTP response. It logs through
// the request-scoped logger when the middleware installed one, so error lines
// carry the request id.
func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context())
	if log == nil {
		log = s.logger
	}
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
