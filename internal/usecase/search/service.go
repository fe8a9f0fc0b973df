package search

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/kailas-cloud/moviedex/internal/domain"
)

// DefaultTopK is the number of results returned when the caller does not
// specify one.
const DefaultTopK = 10

// Request is a hybrid search request: a free-text query plus optional
// attribute filters.
type Request struct {
	Query   string
	Filters domain.SearchFilters
	TopK    int
}

// Result holds the ranked movies for a search request.
type Result struct {
	Count   int                  `json:"count"`
	Results []domain.MovieRecord `json:"results"`
}

// Service runs the hybrid search pipeline: attribute filtering in the
// relational store, then semantic re-ranking of the surviving candidates
// in the vector index.
type Service struct {
	movies   CandidateStore
	vectors  VectorIndex
	embedder Embedder
	logger   *zap.Logger
}

func NewService(movies CandidateStore, vectors VectorIndex, embedder Embedder, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		movies:   movies,
		vectors:  vectors,
		embedder: embedder,
		logger:   log,
	}
}

// Search executes the pipeline for req. Candidates that clear the attribute
// filters are ranked by similarity to the query text; a request whose filters
// eliminate every candidate returns an empty result without touching the
// embedding provider or the vector index.
func (s *Service) Search(ctx context.Context, req Request) (Result, error) {
	if req.TopK <= 0 {
		return Result{Results: []domain.MovieRecord{}}, nil
	}

	candidates, err := s.movies.FilterIDs(ctx, req.Filters)
	if err != nil {
		return Result{}, fmt.Errorf("filter candidates: %w", err)
	}
	if len(candidates) == 0 {
		s.logger.Debug("no candidates matched filters", zap.String("query", req.Query))
		return Result{Results: []domain.MovieRecord{}}, nil
	}

	k := req.TopK
	if k > len(candidates) {
		k = len(candidates)
	}

	emb, err := s.embedder.Embed(ctx, req.Query)
	if err != nil {
		return Result{}, fmt.Errorf("embed query: %w", err)
	}

	allowed := make([]string, len(candidates))
	for i, id := range candidates {
		allowed[i] = strconv.Itoa(id)
	}

	ranked, err := s.vectors.QueryRestricted(ctx, emb.Embedding, k, allowed)
	if err != nil {
		return Result{}, fmt.Errorf("rank candidates: %w", err)
	}
	if len(ranked) == 0 {
		return Result{Results: []domain.MovieRecord{}}, nil
	}

	ids := make([]int, 0, len(ranked))
	for _, raw := range ranked {
		id, convErr := strconv.Atoi(raw)
		if convErr != nil {
			s.logger.Warn("vector index returned non-numeric id", zap.String("id", raw))
			continue
		}
		ids = append(ids, id)
	}

	records, err := s.movies.FetchByIDs(ctx, ids)
	if err != nil {
		return Result{}, fmt.Errorf("hydrate results: %w", err)
	}

	s.logger.Debug("hybrid search completed",
		zap.Int("candidates", len(candidates)),
		zap.Int("returned", len(records)))

	return Result{Count: len(records), Results: records}, nil
}
