package service

import (
	"context"
	"testing"

	"github.com/XiaBell/Sprint4-Arquisfot/internal/dto"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/model"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// downCategoryRepo simulates an unreachable Postgres for category access.
type downCategoryRepo struct{ *stubCategoryRepo }

func (r *downCategoryRepo) Create(_ context.Context, _ *model.Category) error {
	return repository.ErrStoreUnavailable
}

func (r *downCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	return nil, repository.ErrStoreUnavailable
}

// downProductRepo simulates an unreachable Postgres for product access.
type downProductRepo struct{ *stubProductRepo }

func (r *downProductRepo) Create(_ context.Context, _ *model.Product) error {
	return repository.ErrStoreUnavailable
}

func (r *downProductRepo) FindBySKU(_ context.Context, _ string) (*model.Product, error) {
	return nil, repository.ErrStoreUnavailable
}

func (r *downProductRepo) FindForUpdateTx(_ *gorm.DB, _ uuid.UUID) (*model.Product, error) {
	return nil, repository.ErrStoreUnavailable
}

// reloadFailRepo lets the locked transaction through but fails the
// post-commit reload, as a Postgres dying between commit and projection would.
type reloadFailRepo struct{ *stubProductRepo }

func (r *reloadFailRepo) FindByID(_ context.Context, _ uuid.UUID) (*model.Product, error) {
	return nil, repository.ErrStoreUnavailable
}

func TestCategoryOperationsSurfaceStoreOutage(t *testing.T) {
	svc := NewCategoryService(&downCategoryRepo{newStubCategoryRepo()}, newStubProductRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateCategoryRequest{Name: "Guantes"})
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = svc.List(ctx)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestProductOperationsSurfaceStoreOutage(t *testing.T) {
	categories := newStubCategoryRepo()
	category := &model.Category{Name: "Guantes"}
	require.NoError(t, categories.Create(context.Background(), category))

	svc := NewProductService(
		&downProductRepo{newStubProductRepo()},
		categories,
		newStubLedgerRepo(),
		nil, nil,
	)
	ctx := context.Background()

	_, err := svc.Create(ctx, validCreateRequest(category.ID))
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = svc.GetBySKU(ctx, "GS-001")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestStockApplySurfacesStoreOutage(t *testing.T) {
	svc := NewStockService(
		&downProductRepo{newStubProductRepo()},
		newStubLedgerRepo(),
		nil, nil,
	)

	_, err := svc.Apply(context.Background(), uuid.New(), dto.StockChangeRequest{
		TransactionType: model.TxIn,
		Quantity:        1,
	})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

// A failed post-commit reload must not lose the drift: the write sticks and
// the SKU still reaches the retry queue.
func TestStockApplyReloadFailureQueuesRetry(t *testing.T) {
	f := newStockFixture(t, 100, 10)
	svc := NewStockService(
		&reloadFailRepo{f.products},
		f.ledger,
		nil,
		f.notifier,
	)

	resp, err := svc.Apply(context.Background(), f.product.ID, dto.StockChangeRequest{
		TransactionType: model.TxOut,
		Quantity:        30,
	})
	require.NoError(t, err, "commit already happened; reload failure must not surface")
	assert.Equal(t, 70, resp.NewStock)

	p, err := f.products.FindByID(context.Background(), f.product.ID)
	require.NoError(t, err)
	assert.Equal(t, 70, p.StockQuantity)

	f.notifier.mu.Lock()
	defer f.notifier.mu.Unlock()
	assert.Equal(t, []string{"GS-001"}, f.notifier.skus)
}
