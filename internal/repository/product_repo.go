package repository

import (
	"context"
	"time"

	"github.com/XiaBell/Sprint4-Arquisfot/internal/dto"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindBySKU(ctx context.Context, sku string) (*model.Product, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)

	// Used inside transactions — callers must pass the tx instance.
	// FindForUpdateTx takes a row-level lock so two concurrent stock changes
	// on the same product never observe the same previous_stock.
	FindForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	UpdateStockTx(tx *gorm.DB, id uuid.UUID, newStock int) error

	// EachBatch streams every product (category preloaded) in fixed-size
	// batches so a full reconciliation never buffers the whole table.
	EachBatch(ctx context.Context, batchSize int, fn func(p *model.Product) error) error

	// JoinedList is the write-store baseline for the query comparator:
	// products joined with categories plus a per-product ledger-entry count.
	JoinedList(ctx context.Context, limit int) ([]dto.JoinedProductRow, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return translate(r.db.WithContext(ctx).Create(p).Error)
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("Category").First(&p, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *productRepo) FindBySKU(ctx context.Context, sku string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("Category").Where("sku = ?", sku).First(&p).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Product{})
	if filter.CategoryID != "" {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}

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

	err := q.Preload("Category").Order("name ASC").Limit(limit).Offset(offset).Find(&products).Error
	return products, total, translate(err)
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepo) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("category_id = ?", categoryID).Count(&n).Error
	return n, translate(err)
}

func (r *productRepo) FindForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *productRepo) UpdateStockTx(tx *gorm.DB, id uuid.UUID, newStock int) error {
	return translate(tx.Model(&model.Product{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"stock_quantity": newStock,
			"updated_at":     time.Now(),
		}).Error)
}

func (r *productRepo) EachBatch(ctx context.Context, batchSize int, fn func(p *model.Product) error) error {
	if batchSize < 1 {
		batchSize = 500
	}
	// No explicit ordering: FindInBatches pages with "id > last seen id", so
	// any other sort key makes it skip rows.
	var batch []model.Product
	res := r.db.WithContext(ctx).Preload("Category").
		FindInBatches(&batch, batchSize, func(_ *gorm.DB, _ int) error {
			for i := range batch {
				if err := fn(&batch[i]); err != nil {
					return err
				}
			}
			return nil
		})
	return translate(res.Error)
}

func (r *productRepo) JoinedList(ctx context.Context, limit int) ([]dto.JoinedProductRow, error) {
	if limit < 1 {
		limit = 10000
	}
	var rows []dto.JoinedProductRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			p.id,
			p.sku,
			p.name,
			p.description,
			p.unit_price,
			p.stock_quantity,
			p.min_stock_level,
			p.supplier,
			c.name AS category_name,
			c.description AS category_description,
			COUNT(it.id) AS transaction_count
		FROM products p
		INNER JOIN product_categories c ON p.category_id = c.id
		LEFT JOIN inventory_transactions it ON p.id = it.product_id
		GROUP BY p.id, p.sku, p.name, p.description, p.unit_price,
		         p.stock_quantity, p.min_stock_level, p.supplier,
		         c.name, c.description
		ORDER BY p.name
		LIMIT ?`, limit).Scan(&rows).Error
	return rows, translate(err)
}

func (r *productRepo) DB() *gorm.DB { return r.db }
