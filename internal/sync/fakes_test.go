package sync

import (
	"context"
	"errors"
	"sort"
	stdsync "sync"

	"github.com/XiaBell/Sprint4-Arquisfot/internal/dto"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/model"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	errStoreDown      = errors.New("read store down")
	errNotImplemented = errors.New("not implemented in fake")
)

// ── Category source ──────────────────────────────────────────────────────────

type fakeCategorySource struct {
	categories map[uuid.UUID]model.Category
}

func newFakeCategorySource() *fakeCategorySource {
	return &fakeCategorySource{categories: make(map[uuid.UUID]model.Category)}
}

func (f *fakeCategorySource) add(name string) *model.Category {
	c := model.Category{ID: uuid.New(), Name: name}
	f.categories[c.ID] = c
	return &c
}

func (f *fakeCategorySource) Create(_ context.Context, c *model.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	f.categories[c.ID] = *c
	return nil
}

func (f *fakeCategorySource) List(_ context.Context) ([]model.Category, error) {
	return nil, errNotImplemented
}

func (f *fakeCategorySource) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (f *fakeCategorySource) FindByName(_ context.Context, _ string) (*model.Category, error) {
	return nil, errNotImplemented
}

func (f *fakeCategorySource) Update(_ context.Context, _ *model.Category) error {
	return errNotImplemented
}

func (f *fakeCategorySource) Delete(_ context.Context, _ uuid.UUID) error {
	return errNotImplemented
}

// ── Product source ───────────────────────────────────────────────────────────

// fakeProductSource feeds the reconciler. Only the streaming side is real;
// everything else is unreachable from these tests.
type fakeProductSource struct {
	products   []model.Product
	iterateErr error
}

func (f *fakeProductSource) EachBatch(_ context.Context, _ int, fn func(p *model.Product) error) error {
	if f.iterateErr != nil {
		return f.iterateErr
	}
	sorted := append([]model.Product(nil), f.products...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].SKU < sorted[j].SKU })
	for i := range sorted {
		if err := fn(&sorted[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeProductSource) Create(_ context.Context, _ *model.Product) error {
	return errNotImplemented
}

func (f *fakeProductSource) FindByID(_ context.Context, _ uuid.UUID) (*model.Product, error) {
	return nil, errNotImplemented
}

func (f *fakeProductSource) FindBySKU(_ context.Context, _ string) (*model.Product, error) {
	return nil, errNotImplemented
}

func (f *fakeProductSource) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	return nil, 0, errNotImplemented
}

func (f *fakeProductSource) Delete(_ context.Context, _ uuid.UUID) error {
	return errNotImplemented
}

func (f *fakeProductSource) CountByCategory(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, errNotImplemented
}

func (f *fakeProductSource) FindForUpdateTx(_ *gorm.DB, _ uuid.UUID) (*model.Product, error) {
	return nil, errNotImplemented
}

func (f *fakeProductSource) UpdateStockTx(_ *gorm.DB, _ uuid.UUID, _ int) error {
	return errNotImplemented
}

func (f *fakeProductSource) JoinedList(_ context.Context, _ int) ([]dto.JoinedProductRow, error) {
	return nil, errNotImplemented
}

func (f *fakeProductSource) DB() *gorm.DB { return nil }

// ── Read store ───────────────────────────────────────────────────────────────

type memReadStore struct {
	mu      stdsync.Mutex
	docs    map[string]model.ReadDocument
	upserts int
	down    bool
	failSKU string
}

func newMemReadStore() *memReadStore {
	return &memReadStore{docs: make(map[string]model.ReadDocument)}
}

func (s *memReadStore) Upsert(_ context.Context, doc *model.ReadDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return errStoreDown
	}
	if s.failSKU != "" && doc.SKU == s.failSKU {
		return errors.New("document rejected")
	}
	s.upserts++
	s.docs[doc.SKU] = *doc
	return nil
}

func (s *memReadStore) FindAll(_ context.Context, limit int64, _ string) ([]model.ReadDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return nil, errStoreDown
	}
	var docs []model.ReadDocument
	for _, d := range s.docs {
		docs = append(docs, d)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].SKU < docs[j].SKU })
	if int64(len(docs)) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

func (s *memReadStore) CountAll(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return 0, errStoreDown
	}
	return int64(len(s.docs)), nil
}

func (s *memReadStore) CountLowStock(_ context.Context) (int64, error) {
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

func (s *memReadStore) Ping(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return errStoreDown
	}
	return nil
}
