package movie

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kailas-cloud/moviedex/internal/domain"
)

// Tx is a write transaction over the movies table. Ingestion holds one Tx for
// the whole run and upserts each window into it; nothing is visible until Commit.
type Tx struct {
	tx *gorm.DB
}

// BeginTx starts a write transaction.
func (r *Repository) BeginTx(ctx context.Context) (*Tx, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("begin tx: %v: %w", tx.Error, domain.ErrStoreUnavailable)
	}
	return &Tx{tx: tx}, nil
}

// UpsertBatch inserts records; rows whose primary key already exists are left
// untouched (insert-or-ignore, idempotent under retry).
func (t *Tx) UpsertBatch(records []domain.MovieRecord) error {
	if len(records) == 0 {
		return nil
	}

	rows := make([]movieRow, len(records))
	for i, rec := range records {
		rows[i] = fromDomain(rec)
	}

	err := t.tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("upsert batch: %v: %w", err, domain.ErrStoreUnavailable)
	}
	return nil
}

// Commit commits the transaction.
func (t *Tx) Commit() error {
	if err := t.tx.Commit().Error; err != nil {
		return fmt.Errorf("commit: %v: %w", err, domain.ErrStoreUnavailable)
	}
	return nil
}

// Rollback discards the transaction. Safe to call after Commit.
func (t *Tx) Rollback() error {
	if err := t.tx.Rollback().Error; err != nil {
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}
