package db

import (
	"context"
	"time"
)

// Store is the vector index database facade. Consumers depend on the narrow
// sub-interfaces.
type Store interface {
	Pinger
	HashStore
	IndexManager
	Searcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashSetItem holds a single key+fields pair for pipelined HSET.
type HashSetItem struct {
	Key    string
	Fields map[string]string
}

// HashStore provides hash-based key-value operations.
type HashStore interface {
	HSetMulti(ctx context.Context, items []HashSetItem) error
	Del(ctx context.Context, keys ...string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// IndexManager provides FT index lifecycle operations.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Searcher provides KNN search over FT indexes.
type Searcher interface {
	SearchKNN(ctx context.Context, q *KNNQuery) (*SearchResult, error)
}

// IndexFieldType enumerates supported FT schema field types.
type IndexFieldType string

const (
	IndexFieldTag     IndexFieldType = "tag"
	IndexFieldNumeric IndexFieldType = "numeric"
	IndexFieldVector  IndexFieldType = "vector"
)

// VectorDistance is the FT vector distance metric.
type VectorDistance string

const DistanceCosine VectorDistance = "COSINE"

// IndexField describes one field in an FT index schema. Alias, when set, is
// the attribute name queries address the field by (SCHEMA ... AS alias).
type IndexField struct {
	Name  string
	Alias string
	Type  IndexFieldType

	// Vector field attributes (HNSW).
	VectorDim         int
	VectorDistance    VectorDistance
	VectorM           int
	VectorEFConstruct int
}

// IndexDefinition describes an FT index over hash keys with the given prefixes.
type IndexDefinition struct {
	Name     string
	Prefixes []string
	Fields   []IndexField
}
