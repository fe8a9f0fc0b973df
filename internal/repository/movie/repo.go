// Package movie is the attribute store repository: structured movie records in
// Postgres, queried by exact and range predicates.
package movie

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kailas-cloud/moviedex/internal/domain"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS movies (
    id INTEGER PRIMARY KEY,
    title TEXT,
    overview TEXT,
    genres TEXT[],
    release_year INTEGER,
    vote_average FLOAT
)`

// movieRow is the persistence shape of domain.MovieRecord.
type movieRow struct {
	ID          int            `gorm:"column:id;primaryKey"`
	Title       string         `gorm:"column:title"`
	Overview    string         `gorm:"column:overview"`
	Genres      pq.StringArray `gorm:"column:genres;type:text[]"`
	ReleaseYear *int           `gorm:"column:release_year"`
	VoteAverage float64        `gorm:"column:vote_average"`
}

func (movieRow) TableName() string { return "movies" }

func (r movieRow) toDomain() domain.MovieRecord {
	return domain.MovieRecord{
		ID:          r.ID,
		Title:       r.Title,
		Overview:    r.Overview,
		Genres:      []string(r.Genres),
		ReleaseYear: r.ReleaseYear,
		VoteAverage: r.VoteAverage,
	}
}

func fromDomain(rec domain.MovieRecord) movieRow {
	return movieRow{
		ID:          rec.ID,
		Title:       rec.Title,
		Overview:    rec.Overview,
		Genres:      pq.StringArray(rec.Genres),
		ReleaseYear: rec.ReleaseYear,
		VoteAverage: rec.VoteAverage,
	}
}

// Open connects to Postgres and verifies connectivity.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %v: %w", err, domain.ErrStoreUnavailable)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("postgres pool: %v: %w", err, domain.ErrStoreUnavailable)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("postgres ping: %v: %w", err, domain.ErrStoreUnavailable)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return db, nil
}

// Repository implements the attribute store over Postgres.
type Repository struct {
	db *gorm.DB
}

// New creates a movie repository.
func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Ping checks connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("postgres pool: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres ping: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (r *Repository) Close() {
	if sqlDB, err := r.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// EnsureSchema creates the movies table if it does not exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Exec(createTableSQL).Error; err != nil {
		return fmt.Errorf("create movies table: %v: %w", err, domain.ErrStoreUnavailable)
	}
	return nil
}

// FilterIDs returns the ids of all records satisfying the conjunction of the
// present filter fields. No filters returns all ids. Result order is id
// ascending; candidate-set consumers treat it as unordered.
func (r *Repository) FilterIDs(ctx context.Context, f domain.SearchFilters) ([]int, error) {
	q := applyFilters(r.db.WithContext(ctx).Model(&movieRow{}), f)

	var ids []int
	if err := q.Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("filter ids: %v: %w", err, domain.ErrStoreUnavailable)
	}
	return ids, nil
}

// applyFilters ANDs every present filter field onto q. The genre predicate is
// array containment so a movie with several genres still matches.
func applyFilters(q *gorm.DB, f domain.SearchFilters) *gorm.DB {
	if f.Genre != nil {
		q = q.Where("genres @> ARRAY[?]::text[]", *f.Genre)
	}
	if f.MinYear != nil {
		q = q.Where("release_year >= ?", *f.MinYear)
	}
	if f.MinRating != nil {
		q = q.Where("vote_average >= ?", *f.MinRating)
	}
	return q
}

// FetchByIDs returns the records matching ids, reordered to the input id order.
// Ids with no matching record are silently dropped.
func (r *Repository) FetchByIDs(ctx context.Context, ids []int) ([]domain.MovieRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []movieRow
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetch by ids: %v: %w", err, domain.ErrStoreUnavailable)
	}

	byID := make(map[int]movieRow, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	out := make([]domain.MovieRecord, 0, len(ids))
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			out = append(out, row.toDomain())
		}
	}
	return out, nil
}

// GetByID returns a single record or domain.ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id int) (domain.MovieRecord, error) {
	var row movieRow
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.MovieRecord{}, fmt.Errorf("movie %d: %w", id, domain.ErrNotFound)
		}
		return domain.MovieRecord{}, fmt.Errorf("get movie %d: %v: %w", id, err, domain.ErrStoreUnavailable)
	}
	return row.toDomain(), nil
}
