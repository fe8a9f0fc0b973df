package ingest

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/moviedex/internal/domain"
	"github.com/kailas-cloud/moviedex/internal/metrics"
)

// DefaultBatchSize is the window size used when the configuration does not
// override it.
const DefaultBatchSize = 256

// embedTextTemplate is the canonical text embedded for every movie. Query
// embeddings and document embeddings must come from the same template or
// similarity scores drift.
const embedTextTemplate = "Movie title: %s. Plot summary: %s"

// Summary reports what one ingestion run did.
type Summary struct {
	Loaded   int
	Cleaned  int
	Ingested int
	Elapsed  time.Duration
}

// Options configure one ingestion run.
type Options struct {
	SourcePath string
	BatchSize  int
	VectorDim  int
}

// Service drives the batch ingestion pipeline: load, clean, embed in windows,
// write each window to the vector index, and stage every window into one
// relational transaction that commits at the very end.
type Service struct {
	movies   AttributeWriter
	vectors  VectorWriter
	embedder BatchEmbedder
	logger   *zap.Logger
}

func NewService(movies AttributeWriter, vectors VectorWriter, embedder BatchEmbedder, log *zap.Logger) *Service {
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

// Run executes one full ingestion. The vector index is dropped and recreated
// first, so an aborted run leaves a partially filled index but never a stale
// one; relational rows only appear if the final commit succeeds.
func (s *Service) Run(ctx context.Context, opts Options) (Summary, error) {
	start := time.Now()
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}

	rows, err := ReadSourceCSV(opts.SourcePath)
	if err != nil {
		return Summary{}, fmt.Errorf("load source: %w", err)
	}
	records := Clean(rows)
	s.logger.Info("source loaded",
		zap.String("path", opts.SourcePath),
		zap.Int("rows", len(rows)),
		zap.Int("after_cleaning", len(records)))

	if err := s.vectors.Reset(ctx, opts.VectorDim); err != nil {
		return Summary{}, fmt.Errorf("reset vector index: %w", err)
	}
	if err := s.movies.EnsureSchema(ctx); err != nil {
		return Summary{}, fmt.Errorf("ensure schema: %w", err)
	}

	tx, err := s.movies.BeginTx(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("begin transaction: %w", err)
	}

	ingested, err := s.ingestWindows(ctx, tx, records, opts.BatchSize)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.Warn("rollback failed", zap.Error(rbErr))
		}
		return Summary{}, err
	}

	if err := tx.Commit(); err != nil {
		// The vector index was written eagerly; a failed commit leaves it
		// ahead of the relational store until the next run rebuilds it.
		s.logger.Warn("commit failed, vector index holds uncommitted entries until the next run")
		return Summary{}, fmt.Errorf("commit transaction: %w", err)
	}

	summary := Summary{
		Loaded:   len(rows),
		Cleaned:  len(records),
		Ingested: ingested,
		Elapsed:  time.Since(start),
	}
	s.logger.Info("ingestion finished",
		zap.Int("loaded", summary.Loaded),
		zap.Int("cleaned", summary.Cleaned),
		zap.Int("ingested", summary.Ingested),
		zap.Duration("elapsed", summary.Elapsed))
	return summary, nil
}

func (s *Service) ingestWindows(ctx context.Context, tx MovieTx, records []domain.MovieRecord, batchSize int) (int, error) {
	total := len(records)
	ingested := 0

	for offset := 0; offset < total; offset += batchSize {
		end := offset + batchSize
		if end > total {
			end = total
		}
		window := records[offset:end]
		windowStart := time.Now()

		texts := make([]string, len(window))
		ids := make([]string, len(window))
		metas := make([]domain.VectorMetadata, len(window))
		for i, rec := range window {
			texts[i] = fmt.Sprintf(embedTextTemplate, rec.Title, rec.Overview)
			ids[i] = rec.VectorID()
			metas[i] = domain.MetadataFor(rec)
		}

		batch, err := s.embedder.BatchEmbed(ctx, texts)
		if err != nil {
			return ingested, fmt.Errorf("embed window at offset %d: %w", offset, err)
		}
		if len(batch.Embeddings) != len(window) {
			return ingested, fmt.Errorf("embed window at offset %d: got %d vectors for %d texts: %w",
				offset, len(batch.Embeddings), len(window), domain.ErrInvalidBatch)
		}

		if err := s.vectors.UpsertBatch(ctx, ids, batch.Embeddings, metas); err != nil {
			return ingested, fmt.Errorf("vector upsert at offset %d: %w", offset, err)
		}
		if err := tx.UpsertBatch(window); err != nil {
			return ingested, fmt.Errorf("relational upsert at offset %d: %w", offset, err)
		}

		ingested += len(window)
		metrics.IngestRowsProcessed.WithLabelValues("csv").Add(float64(len(window)))
		metrics.IngestBatchDuration.WithLabelValues("csv").Observe(time.Since(windowStart).Seconds())
		s.logger.Info("window ingested",
			zap.Int("processed", ingested),
			zap.Int("total", total),
			zap.Int("tokens", batch.TotalTokens))
	}
	return ingested, nil
}
