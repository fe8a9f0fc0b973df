// Package vector is the vector index repository: one Redis hash per movie,
// keyed by the string movie id, holding the embedding blob plus the
// {id, title, year} metadata mirror, searched via FT.SEARCH KNN.
package vector

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/kailas-cloud/moviedex/internal/db"
	"github.com/kailas-cloud/moviedex/internal/domain"
)

const (
	// IndexName is the FT index over movie embedding hashes.
	IndexName = "idx:movies"
	// KeyPrefix namespaces movie embedding hashes.
	KeyPrefix = "moviedex:movie:"

	fieldID     = "id"
	fieldTitle  = "title"
	fieldYear   = "year"
	fieldVector = "__vector"

	// vectorAlias is the attribute name KNN queries address the embedding by;
	// it also fixes the score return field name (__<alias>_score).
	vectorAlias = "vector"
)

// store is the consumer interface for the vector index (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	Del(ctx context.Context, keys ...string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// HNSWConfig holds index construction parameters.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// Repository implements the vector index over a Redis store.
type Repository struct {
	store store
	hnsw  HNSWConfig
}

// New creates a vector index repository.
func New(s store) *Repository {
	return &Repository{store: s}
}

// WithHNSW configures HNSW index parameters.
func (r *Repository) WithHNSW(cfg HNSWConfig) *Repository {
	r.hnsw = cfg
	return r
}

// Ping reports whether the index is reachable and has been created. A fresh
// deployment that never ran ingestion fails here, so readiness flags it before
// the first search does.
func (r *Repository) Ping(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, IndexName)
	if err != nil {
		return fmt.Errorf("index check: %w", err)
	}
	if !exists {
		return fmt.Errorf("index %s does not exist, run ingestion", IndexName)
	}
	return nil
}

// Reset drops the index and all entry hashes, then recreates an empty index
// for vectors of the given dimensionality. Ingestion calls this at start so a
// re-run never accumulates stale entries.
func (r *Repository) Reset(ctx context.Context, dim int) error {
	if err := r.store.DropIndex(ctx, IndexName); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
		return fmt.Errorf("drop index: %w", err)
	}

	keys, err := r.store.Scan(ctx, KeyPrefix+"*")
	if err != nil {
		return fmt.Errorf("scan entries: %w", err)
	}
	if err := r.store.Del(ctx, keys...); err != nil {
		return fmt.Errorf("delete entries: %w", err)
	}

	def := &db.IndexDefinition{
		Name:     IndexName,
		Prefixes: []string{KeyPrefix},
		Fields: []db.IndexField{
			{Name: fieldID, Type: db.IndexFieldTag},
			{Name: fieldYear, Type: db.IndexFieldNumeric},
			{
				Name:              fieldVector,
				Alias:             vectorAlias,
				Type:              db.IndexFieldVector,
				VectorDim:         dim,
				VectorDistance:    db.DistanceCosine,
				VectorM:           r.hnsw.M,
				VectorEFConstruct: r.hnsw.EFConstruct,
			},
		},
	}
	if err := r.store.CreateIndex(ctx, def); err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// UpsertBatch writes one entry per id. The three slices are parallel; a length
// mismatch fails the whole batch with domain.ErrInvalidBatch.
func (r *Repository) UpsertBatch(
	ctx context.Context, ids []string, vectors [][]float32, metas []domain.VectorMetadata,
) error {
	if len(ids) != len(vectors) || len(ids) != len(metas) {
		return fmt.Errorf("parallel slice lengths %d/%d/%d: %w",
			len(ids), len(vectors), len(metas), domain.ErrInvalidBatch)
	}
	if len(ids) == 0 {
		return nil
	}

	items := make([]db.HashSetItem, len(ids))
	for i, id := range ids {
		items[i] = db.HashSetItem{
			Key:    KeyPrefix + id,
			Fields: buildHashFields(vectors[i], metas[i]),
		}
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("upsert entries: %w", err)
	}
	return nil
}

// QueryRestricted returns up to k ids from allowedIDs ordered by descending
// cosine similarity to qvec. Equal scores are broken by ascending numeric id
// so result order is deterministic.
func (r *Repository) QueryRestricted(
	ctx context.Context, qvec []float32, k int, allowedIDs []string,
) ([]string, error) {
	if k <= 0 || len(allowedIDs) == 0 {
		return nil, nil
	}

	res, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName:    IndexName,
		Vector:       qvec,
		K:            k,
		AllowField:   fieldID,
		AllowValues:  allowedIDs,
		ReturnFields: []string{fieldID, "__vector_score"},
	})
	if err != nil {
		return nil, fmt.Errorf("knn search: %w", err)
	}

	allowed := make(map[string]struct{}, len(allowedIDs))
	for _, id := range allowedIDs {
		allowed[id] = struct{}{}
	}

	type hit struct {
		id    string
		score float64
	}
	hits := make([]hit, 0, len(res.Entries))
	for _, e := range res.Entries {
		id := e.Fields[fieldID]
		if id == "" {
			continue
		}
		if _, ok := allowed[id]; !ok {
			continue
		}
		hits = append(hits, hit{id: id, score: e.Score})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return numericLess(hits[i].id, hits[j].id)
	})

	if len(hits) > k {
		hits = hits[:k]
	}

	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.id
	}
	return out, nil
}

// numericLess compares string ids numerically, falling back to lexicographic
// order for non-numeric ids.
func numericLess(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		return ai < bi
	}
	return a < b
}
