package ingest

import (
	"context"

	"github.com/kailas-cloud/moviedex/internal/domain"
)

type mockBatchEmbedder struct {
	batchEmbedFn func(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error)
	calls        int
}

func (m *mockBatchEmbedder) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	m.calls++
	return m.batchEmbedFn(ctx, texts)
}

type mockVectorWriter struct {
	resetFn       func(ctx context.Context, dim int) error
	upsertBatchFn func(ctx context.Context, ids []string, vectors [][]float32, metas []domain.VectorMetadata) error
	resetCalls    int
}

func (m *mockVectorWriter) Reset(ctx context.Context, dim int) error {
	m.resetCalls++
	if m.resetFn != nil {
		return m.resetFn(ctx, dim)
	}
	return nil
}

func (m *mockVectorWriter) UpsertBatch(ctx context.Context, ids []string, vectors [][]float32, metas []domain.VectorMetadata) error {
	return m.upsertBatchFn(ctx, ids, vectors, metas)
}

type mockTx struct {
	upsertBatchFn func(records []domain.MovieRecord) error
	committed     bool
	rolledBack    bool
	commitErr     error
}

func (m *mockTx) UpsertBatch(records []domain.MovieRecord) error {
	return m.upsertBatchFn(records)
}

func (m *mockTx) Commit() error {
	m.committed = true
	return m.commitErr
}

func (m *mockTx) Rollback() error {
	m.rolledBack = true
	return nil
}

type mockAttributeWriter struct {
	tx           *mockTx
	ensureSchema int
}

func (m *mockAttributeWriter) EnsureSchema(_ context.Context) error {
	m.ensureSchema++
	return nil
}

func (m *mockAttributeWriter) BeginTx(_ context.Context) (MovieTx, error) {
	return m.tx, nil
}
