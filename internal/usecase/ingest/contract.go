package ingest

import (
	"context"

	"github.com/kailas-cloud/moviedex/internal/domain"
)

// BatchEmbedder embeds one window of texts in a single provider call.
type BatchEmbedder interface {
	BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error)
}

// VectorWriter rebuilds and fills the vector index.
type VectorWriter interface {
	Reset(ctx context.Context, dim int) error
	UpsertBatch(ctx context.Context, ids []string, vectors [][]float32, metas []domain.VectorMetadata) error
}

// MovieTx is one relational write transaction spanning the whole run.
type MovieTx interface {
	UpsertBatch(records []domain.MovieRecord) error
	Commit() error
	Rollback() error
}

// AttributeWriter opens the relational side of the pipeline.
type AttributeWriter interface {
	EnsureSchema(ctx context.Context) error
	BeginTx(ctx context.Context) (MovieTx, error)
}
