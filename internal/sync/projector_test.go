package sync

import (
	"context"
	"testing"

	"github.com/XiaBell/Sprint4-Arquisfot/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(category *model.Category, sku string, stock int) *model.Product {
	return &model.Product{
		SKU:           sku,
		Name:          "Producto " + sku,
		CategoryID:    category.ID,
		Category:      category,
		UnitPrice:     decimal.NewFromFloat(12.50),
		StockQuantity: stock,
		MinStockLevel: 10,
		Supplier:      "Proveedor Norte",
	}
}

func TestProjectBuildsDenormalizedDocument(t *testing.T) {
	categories := newFakeCategorySource()
	category := categories.add("Guantes")
	store := newMemReadStore()
	projector := NewProjector(store, categories)

	err := projector.Project(context.Background(), testProduct(category, "GS-001", 100))
	require.NoError(t, err)

	docs, err := store.FindAll(context.Background(), 10, "name")
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	assert.Equal(t, "GS-001", doc.SKU)
	assert.Equal(t, "Producto GS-001", doc.Name)
	assert.Equal(t, category.ID.String(), doc.Category.ID)
	assert.Equal(t, "Guantes", doc.Category.Name)
	assert.Equal(t, 12.50, doc.UnitPrice)
	assert.Equal(t, 100, doc.StockQuantity)
	assert.Equal(t, "Proveedor Norte", doc.Supplier)
}

// Projecting the same product twice must leave exactly one document in the
// committed state, no matter how stale the first projection was.
func TestProjectIsIdempotent(t *testing.T) {
	categories := newFakeCategorySource()
	category := categories.add("Guantes")
	store := newMemReadStore()
	projector := NewProjector(store, categories)
	ctx := context.Background()

	p := testProduct(category, "GS-001", 100)
	require.NoError(t, projector.Project(ctx, p))

	p.StockQuantity = 70
	require.NoError(t, projector.Project(ctx, p))
	require.NoError(t, projector.Project(ctx, p))

	total, err := store.CountAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	docs, err := store.FindAll(ctx, 10, "name")
	require.NoError(t, err)
	assert.Equal(t, 70, docs[0].StockQuantity)
	assert.Equal(t, 3, store.upserts)
}

// When the association is not preloaded the projector fetches the category
// itself instead of writing an empty snapshot.
func TestProjectFetchesCategoryWhenNotPreloaded(t *testing.T) {
	categories := newFakeCategorySource()
	category := categories.add("Cascos")
	store := newMemReadStore()
	projector := NewProjector(store, categories)

	p := testProduct(category, "CS-001", 25)
	p.Category = nil

	require.NoError(t, projector.Project(context.Background(), p))

	docs, err := store.FindAll(context.Background(), 10, "name")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Cascos", docs[0].Category.Name)
}

func TestProjectReportsUpsertFailure(t *testing.T) {
	categories := newFakeCategorySource()
	category := categories.add("Guantes")
	store := newMemReadStore()
	store.down = true
	projector := NewProjector(store, categories)

	err := projector.Project(context.Background(), testProduct(category, "GS-001", 100))
	assert.ErrorIs(t, err, errStoreDown)
}

func TestProjectReportsUnresolvableCategory(t *testing.T) {
	categories := newFakeCategorySource()
	orphan := &model.Category{Name: "fantasma"}
	store := newMemReadStore()
	projector := NewProjector(store, categories)

	p := testProduct(orphan, "XX-001", 1)
	p.Category = nil

	err := projector.Project(context.Background(), p)
	require.Error(t, err)

	total, err := store.CountAll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, total)
}
