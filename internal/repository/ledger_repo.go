package repository

import (
	"context"

	"github.com/XiaBell/Sprint4-Arquisfot/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LedgerFilter defines filters for listing ledger entries.
type LedgerFilter struct {
	ProductID       *uuid.UUID
	TransactionType string
	Page            int
	Limit           int
}

// LedgerRepository is the append-only audit trail of stock changes.
// There is deliberately no Update or Delete: entries are immutable once
// written.
type LedgerRepository interface {
	CreateTx(tx *gorm.DB, e *model.LedgerEntry) error
	List(ctx context.Context, filter LedgerFilter) ([]model.LedgerEntry, int64, error)
	CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
}

type ledgerRepo struct{ db *gorm.DB }

func NewLedgerRepository(db *gorm.DB) LedgerRepository { return &ledgerRepo{db: db} }

// CreateTx appends an entry inside the caller's transaction. The entry and
// the product's stock update commit or roll back together.
func (r *ledgerRepo) CreateTx(tx *gorm.DB, e *model.LedgerEntry) error {
	return translate(tx.Create(e).Error)
}

func (r *ledgerRepo) List(ctx context.Context, filter LedgerFilter) ([]model.LedgerEntry, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.LedgerEntry{}).Preload("Product")
	if filter.ProductID != nil {
		q = q.Where("product_id = ?", *filter.ProductID)
	}
	if filter.TransactionType != "" {
		q = q.Where("transaction_type = ?", filter.TransactionType)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}
	offset := (page - 1) * limit

	var entries []model.LedgerEntry
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&entries).Error
	return entries, total, translate(err)
}

func (r *ledgerRepo) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.LedgerEntry{}).
		Where("product_id = ?", productID).Count(&n).Error
	return n, translate(err)
}
