package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/moviedex/internal/config"
	dbRedis "github.com/kailas-cloud/moviedex/internal/db/redis"
	logpkg "github.com/kailas-cloud/moviedex/internal/logger"
	"github.com/kailas-cloud/moviedex/internal/metrics"
	movierepo "github.com/kailas-cloud/moviedex/internal/repository/movie"
	vectorrepo "github.com/kailas-cloud/moviedex/internal/repository/vector"
	openaiTransport "github.com/kailas-cloud/moviedex/internal/transport/openai"
	ingestuc "github.com/kailas-cloud/moviedex/internal/usecase/ingest"
	"github.com/kailas-cloud/moviedex/internal/version"
)

// attributeWriter adapts the movie repository to the ingestion contract;
// BeginTx narrows *movierepo.Tx to the interface the pipeline consumes.
type attributeWriter struct {
	repo *movierepo.Repository
}

func (a *attributeWriter) EnsureSchema(ctx context.Context) error {
	return a.repo.EnsureSchema(ctx)
}

func (a *attributeWriter) BeginTx(ctx context.Context) (ingestuc.MovieTx, error) {
	return a.repo.BeginTx(ctx)
}

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting moviedex ingestion",
		zap.String("version", version.Version),
		zap.String("env", env),
		zap.String("source", cfg.Ingest.SourcePath),
		zap.Int("batch_size", cfg.Ingest.BatchSize),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Redis.Addrs,
		Password: cfg.Redis.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create vector store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Redis.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Vector store not ready", zap.Error(err))
	}

	gormDB, err := movierepo.Open(cfg.Postgres.DSN)
	if err != nil {
		logger.Fatal("Failed to connect to attribute store", zap.Error(err))
	}
	movieRepo := movierepo.New(gormDB)
	defer movieRepo.Close()

	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterIngestMetrics()

	embedder := openaiTransport.NewEmbedder(&openaiTransport.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   "openai",
		Logger:     logger,
	})

	if err := embedder.HealthCheck(ctx); err != nil {
		logger.Fatal("Embedding provider unreachable", zap.Error(err))
	}

	vectorRepo := vectorrepo.New(store).WithHNSW(vectorrepo.HNSWConfig{
		M:           cfg.Embedding.HNSWM,
		EFConstruct: cfg.Embedding.HNSWEFConstruct,
	})

	svc := ingestuc.NewService(&attributeWriter{repo: movieRepo}, vectorRepo, embedder, logger)

	summary, err := svc.Run(ctx, ingestuc.Options{
		SourcePath: cfg.Ingest.SourcePath,
		BatchSize:  cfg.Ingest.BatchSize,
		VectorDim:  cfg.Embedding.Dimensions,
	})
	if err != nil {
		logger.Fatal("Ingestion failed", zap.Error(err))
	}

	fmt.Printf("Ingested %d of %d movies (%d after cleaning) in %s\n",
		summary.Ingested, summary.Loaded, summary.Cleaned, summary.Elapsed.Round(time.Millisecond))
}
