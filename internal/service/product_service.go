package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/XiaBell/Sprint4-Arquisfot/internal/dto"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/model"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/repository"

	"github.com/google/uuid"
)

// ProductProjector pushes one committed product into the read store.
// Satisfied by *sync.Projector; stubbed in unit tests.
type ProductProjector interface {
	Project(ctx context.Context, p *model.Product) error
}

// SyncNotifier records a SKU whose projection failed so a background retry
// can repair the drift. May be nil when no retry queue is configured.
type SyncNotifier interface {
	NotifyFailed(ctx context.Context, sku string)
}

// ProductService defines the business logic contract for products.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetBySKU(ctx context.Context, sku string) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	ledger     repository.LedgerRepository
	projector  ProductProjector
	notifier   SyncNotifier
}

func NewProductService(
	repo repository.ProductRepository,
	categories repository.CategoryRepository,
	ledger repository.LedgerRepository,
	projector ProductProjector,
	notifier SyncNotifier,
) ProductService {
	return &productService{
		repo:       repo,
		categories: categories,
		ledger:     ledger,
		projector:  projector,
		notifier:   notifier,
	}
}

func mapProduct(p model.Product) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		CategoryID:    p.CategoryID,
		UnitPrice:     p.UnitPrice,
		StockQuantity: p.StockQuantity,
		MinStockLevel: p.MinStockLevel,
		Supplier:      p.Supplier,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.Category != nil {
		resp.CategoryName = p.Category.Name
	}
	return resp
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if req.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit_price must not be negative", ErrValidation)
	}
	if req.StockQuantity < 0 || req.MinStockLevel < 0 {
		return nil, fmt.Errorf("%w: stock levels must not be negative", ErrValidation)
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: category_id is not a valid uuid", ErrValidation)
	}

	writeCtx, cancel := withWriteTimeout(ctx)
	defer cancel()

	category, err := s.categories.FindByID(writeCtx, categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %s", ErrUnknownReference, req.CategoryID)
		}
		return nil, storeErr(err)
	}

	p := &model.Product{
		SKU:           req.SKU,
		Name:          req.Name,
		Description:   req.Description,
		CategoryID:    category.ID,
		UnitPrice:     req.UnitPrice,
		StockQuantity: req.StockQuantity,
		MinStockLevel: req.MinStockLevel,
		Supplier:      req.Supplier,
	}
	if err := s.repo.Create(writeCtx, p); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSKU, req.SKU)
		case errors.Is(err, repository.ErrForeignKeyViolation):
			return nil, fmt.Errorf("%w: category %s", ErrUnknownReference, req.CategoryID)
		default:
			return nil, storeErr(err)
		}
	}
	p.Category = category

	// The authoritative write has committed; projection failure is logged
	// and queued for retry, never surfaced to the caller.
	projectCommitted(ctx, s.projector, s.notifier, p)

	return mapProduct(*p), nil
}

func (s *productService) GetBySKU(ctx context.Context, sku string) (*dto.ProductResponse, error) {
	ctx, cancel := withWriteTimeout(ctx)
	defer cancel()

	p, err := s.repo.FindBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr(err)
	}
	return mapProduct(*p), nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	ctx, cancel := withWriteTimeout(ctx)
	defer cancel()

	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, storeErr(err)
	}
	resp := &dto.ProductListResponse{
		Products: make([]dto.ProductResponse, 0, len(products)),
		Total:    total,
		Page:     filter.Page,
		Limit:    filter.Limit,
	}
	for _, p := range products {
		resp.Products = append(resp.Products, *mapProduct(p))
	}
	return resp, nil
}

// Delete refuses to remove a product with ledger history: the audit trail is
// append-only and must keep resolving its product reference.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := withWriteTimeout(ctx)
	defer cancel()

	n, err := s.ledger.CountByProduct(ctx, id)
	if err != nil {
		return storeErr(err)
	}
	if n > 0 {
		return fmt.Errorf("%w: %d ledger entries reference this product", ErrReferentialConflict, n)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrNotFound
		case errors.Is(err, repository.ErrForeignKeyViolation):
			return ErrReferentialConflict
		default:
			return storeErr(err)
		}
	}
	return nil
}
