package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/XiaBell/Sprint4-Arquisfot/internal/dto"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/model"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── In-memory CategoryRepository stub ────────────────────────────────────────

type stubCategoryRepo struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*model.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[uuid.UUID]*model.Category)}
}

func (r *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.categories {
		if existing.Name == c.Name {
			return repository.ErrDuplicateKey
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []model.Category
	for _, c := range r.categories {
		list = append(list, *c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (r *stubCategoryRepo) FindByName(_ context.Context, name string) (*model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubCategoryRepo) Update(_ context.Context, c *model.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

// ── In-memory ProductRepository stub ─────────────────────────────────────────

type stubProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*model.Product

	// rowLock emulates the FOR UPDATE row lock: FindForUpdateTx takes it and
	// UpdateStockTx releases it, so concurrent stock changes serialize the
	// read-compute-write section exactly like the real repository does.
	rowLock sync.Mutex
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.products {
		if existing.SKU == p.SKU {
			return repository.ErrDuplicateKey
		}
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) FindBySKU(_ context.Context, sku string) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []model.Product
	for _, p := range r.products {
		list = append(list, *p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, int64(len(list)), nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) CountByCategory(_ context.Context, categoryID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *stubProductRepo) FindForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	r.rowLock.Lock()
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		r.rowLock.Unlock()
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, newStock int) error {
	defer r.rowLock.Unlock()
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.StockQuantity = newStock
	return nil
}

func (r *stubProductRepo) EachBatch(_ context.Context, _ int, fn func(p *model.Product) error) error {
	r.mu.Lock()
	var list []model.Product
	for _, p := range r.products {
		list = append(list, *p)
	}
	r.mu.Unlock()
	sort.Slice(list, func(i, j int) bool { return list[i].SKU < list[j].SKU })
	for i := range list {
		if err := fn(&list[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *stubProductRepo) JoinedList(_ context.Context, limit int) ([]dto.JoinedProductRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var rows []dto.JoinedProductRow
	for _, p := range r.products {
		if len(rows) >= limit {
			break
		}
		row := dto.JoinedProductRow{
			ID:            p.ID.String(),
			SKU:           p.SKU,
			Name:          p.Name,
			UnitPrice:     p.UnitPrice.String(),
			StockQuantity: p.StockQuantity,
			MinStockLevel: p.MinStockLevel,
			Supplier:      p.Supplier,
		}
		if p.Category != nil {
			row.CategoryName = p.Category.Name
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows, nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

// ── In-memory LedgerRepository stub ──────────────────────────────────────────

type stubLedgerRepo struct {
	mu      sync.Mutex
	entries []model.LedgerEntry
}

func newStubLedgerRepo() *stubLedgerRepo { return &stubLedgerRepo{} }

func (r *stubLedgerRepo) CreateTx(_ *gorm.DB, e *model.LedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.entries = append(r.entries, *e)
	return nil
}

func (r *stubLedgerRepo) List(_ context.Context, filter repository.LedgerFilter) ([]model.LedgerEntry, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []model.LedgerEntry
	for _, e := range r.entries {
		if filter.ProductID != nil && e.ProductID != *filter.ProductID {
			continue
		}
		if filter.TransactionType != "" && e.TransactionType != filter.TransactionType {
			continue
		}
		list = append(list, e)
	}
	return list, int64(len(list)), nil
}

func (r *stubLedgerRepo) CountByProduct(_ context.Context, productID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, e := range r.entries {
		if e.ProductID == productID {
			n++
		}
	}
	return n, nil
}

// ── In-memory ReadStore fake ─────────────────────────────────────────────────

var errStoreDown = errors.New("read store down")

type fakeReadStore struct {
	mu      sync.Mutex
	docs    map[string]model.ReadDocument
	upserts int
	down    bool
}

func newFakeReadStore() *fakeReadStore {
	return &fakeReadStore{docs: make(map[string]model.ReadDocument)}
}

func (s *fakeReadStore) Upsert(_ context.Context, doc *model.ReadDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return errStoreDown
	}
	s.upserts++
	s.docs[doc.SKU] = *doc
	return nil
}

func (s *fakeReadStore) FindAll(_ context.Context, limit int64, _ string) ([]model.ReadDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return nil, errStoreDown
	}
	var docs []model.ReadDocument
	for _, d := range s.docs {
		docs = append(docs, d)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	if int64(len(docs)) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

func (s *fakeReadStore) CountAll(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return 0, errStoreDown
	}
	return int64(len(s.docs)), nil
}

func (s *fakeReadStore) CountLowStock(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return 0, errStoreDown
	}
	var n int64
	for _, d := range s.docs {
		if d.StockQuantity < d.MinStockLevel {
			n++
		}
	}
	return n, nil
}

func (s *fakeReadStore) Ping(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return errStoreDown
	}
	return nil
}

func (s *fakeReadStore) setDown(down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.down = down
}
