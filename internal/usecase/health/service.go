package health

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Pinger checks reachability of a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ModelChecker checks reachability of the embedding provider.
type ModelChecker interface {
	HealthCheck(ctx context.Context) error
}

// Status is the readiness report for one dependency.
type Status struct {
	Healthy bool   `json:"healthy"`
	Error   string `json:"error,omitempty"`
}

// Report aggregates the readiness of every dependency.
type Report struct {
	Healthy        bool   `json:"healthy"`
	AttributeStore Status `json:"attribute_store"`
	VectorStore    Status `json:"vector_store"`
	Embedding      Status `json:"embedding"`
}

// Service probes the attribute store, the vector store, and the embedding
// provider with a bounded per-check timeout.
type Service struct {
	attributes Pinger
	vectors    Pinger
	embedder   ModelChecker
	timeout    time.Duration
	logger     *zap.Logger
}

func NewService(attributes, vectors Pinger, embedder ModelChecker, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		attributes: attributes,
		vectors:    vectors,
		embedder:   embedder,
		timeout:    5 * time.Second,
		logger:     log,
	}
}

// Check probes every dependency and reports per-dependency status. The
// overall report is healthy only when all probes pass.
func (s *Service) Check(ctx context.Context) Report {
	report := Report{
		AttributeStore: s.probe(ctx, "attribute_store", s.attributes.Ping),
		VectorStore:    s.probe(ctx, "vector_store", s.vectors.Ping),
		Embedding:      s.probe(ctx, "embedding", s.embedder.HealthCheck),
	}
	report.Healthy = report.AttributeStore.Healthy &&
		report.VectorStore.Healthy &&
		report.Embedding.Healthy
	return report
}

func (s *Service) probe(ctx context.Context, name string, fn func(context.Context) error) Status {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		s.logger.Warn("dependency unhealthy", zap.String("dependency", name), zap.Error(err))
		return Status{Healthy: false, Error: err.Error()}
	}
	return Status{Healthy: true}
}
