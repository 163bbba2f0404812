package service

import (
	"context"
	"fmt"
	"time"

	"github.com/XiaBell/Sprint4-Arquisfot/internal/dto"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/readstore"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/repository"
)

// queryTimeout bounds each comparison query so neither backend can hang the
// diagnostic endpoint.
const queryTimeout = 30 * time.Second

// QueryService runs the same logical product listing against both stores
// with wall-clock timing, making the latency differential of the read-store
// split observable. No correctness contract beyond accurate timing per call.
type QueryService interface {
	ListFromWriteStore(ctx context.Context, limit int) (*dto.TimedQueryResult, error)
	ListFromReadStore(ctx context.Context, limit int) (*dto.TimedQueryResult, error)
	Stats(ctx context.Context) (*dto.InventoryStatsResponse, error)
}

type queryService struct {
	products repository.ProductRepository
	store    readstore.ReadStore
}

func NewQueryService(products repository.ProductRepository, store readstore.ReadStore) QueryService {
	return &queryService{products: products, store: store}
}

// ListFromWriteStore is the slow baseline: a join over products, categories
// and the ledger, grouped per product.
func (s *queryService) ListFromWriteStore(ctx context.Context, limit int) (*dto.TimedQueryResult, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	start := time.Now()
	rows, err := s.products.JoinedList(ctx, limit)
	elapsed := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return &dto.TimedQueryResult{
		Data:      rows,
		Count:     len(rows),
		ElapsedMS: roundMS(elapsed),
		Database:  "PostgreSQL",
		QueryType: "Complex JOIN",
	}, nil
}

// ListFromReadStore is the fast path: documents are already denormalized, so
// the whole query is one sorted collection scan.
func (s *queryService) ListFromReadStore(ctx context.Context, limit int) (*dto.TimedQueryResult, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	start := time.Now()
	docs, err := s.store.FindAll(ctx, int64(limit), "name")
	elapsed := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return &dto.TimedQueryResult{
		Data:      docs,
		Count:     len(docs),
		ElapsedMS: roundMS(elapsed),
		Database:  "MongoDB",
		QueryType: "Simple Find (CQRS)",
	}, nil
}

func (s *queryService) Stats(ctx context.Context) (*dto.InventoryStatsResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	total, err := s.store.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	low, err := s.store.CountLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return &dto.InventoryStatsResponse{
		TotalProducts: total,
		LowStockItems: low,
		Database:      "MongoDB",
	}, nil
}

// roundMS converts a duration to milliseconds with two decimals, matching
// the elapsed_time_ms the comparison endpoints have always reported.
func roundMS(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
