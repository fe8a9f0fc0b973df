package search

import (
	"context"

	"github.com/kailas-cloud/moviedex/internal/domain"
)

type mockCandidateStore struct {
	filterIDsFn  func(ctx context.Context, filters domain.SearchFilters) ([]int, error)
	fetchByIDsFn func(ctx context.Context, ids []int) ([]domain.MovieRecord, error)
}

func (m *mockCandidateStore) FilterIDs(ctx context.Context, filters domain.SearchFilters) ([]int, error) {
	return m.filterIDsFn(ctx, filters)
}

func (m *mockCandidateStore) FetchByIDs(ctx context.Context, ids []int) ([]domain.MovieRecord, error) {
	return m.fetchByIDsFn(ctx, ids)
}

type mockVectorIndex struct {
	queryRestrictedFn func(ctx context.Context, vector []float32, k int, allowedIDs []string) ([]string, error)
}

func (m *mockVectorIndex) QueryRestricted(ctx context.Context, vector []float32, k int, allowedIDs []string) ([]string, error) {
	return m.queryRestrictedFn(ctx, vector, k, allowedIDs)
}

type mockEmbedder struct {
	embedFn func(ctx context.Context, text string) (domain.EmbeddingResult, error)
	calls   int
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	m.calls++
	return m.embedFn(ctx, text)
}
