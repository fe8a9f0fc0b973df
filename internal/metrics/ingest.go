package metrics

import "github.com/prometheus/client_golang/prometheus"

// Ingestion Prometheus metrics.
var (
	IngestRowsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "moviedex",
			Name:      "ingest_rows_processed_total",
			Help:      "Total rows written to both stores",
		},
		[]string{"source"},
	)

	IngestRowsDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "moviedex",
			Name:      "ingest_rows_dropped_total",
			Help:      "Total rows dropped during cleaning",
		},
		[]string{"source", "reason"},
	)

	IngestBatchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "moviedex",
			Name:      "ingest_batch_duration_seconds",
			Help:      "Per-window processing duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"source"},
	)
)

var ingestMetricsRegistered bool

// RegisterIngestMetrics registers Prometheus ingestion metrics. Must be called once from main.
func RegisterIngestMetrics() {
	if ingestMetricsRegistered {
		return
	}
	prometheus.MustRegister(IngestRowsProcessed)
	prometheus.MustRegister(IngestRowsDropped)
	prometheus.MustRegister(IngestBatchDuration)
	ingestMetricsRegistered = true
}
