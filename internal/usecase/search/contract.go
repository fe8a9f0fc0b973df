package search

import (
	"context"

	"github.com/kailas-cloud/moviedex/internal/domain"
)

// CandidateStore filters and hydrates movies from the attribute store.
type CandidateStore interface {
	FilterIDs(ctx context.Context, filters domain.SearchFilters) ([]int, error)
	FetchByIDs(ctx context.Context, ids []int) ([]domain.MovieRecord, error)
}

// VectorIndex ranks candidates by semantic similarity to a query vector.
type VectorIndex interface {
	QueryRestricted(ctx context.Context, vector []float32, k int, allowedIDs []string) ([]string, error)
}

// Embedder turns the free-text query into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
