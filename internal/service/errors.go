package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/XiaBell/Sprint4-Arquisfot/internal/repository"
)

// writeTimeout bounds every write-store operation so a dead Postgres surfaces
// as a retryable error instead of a hung request.
const writeTimeout = 10 * time.Second

// withWriteTimeout derives the bounded context used for write-store calls.
func withWriteTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, writeTimeout)
}

// storeErr converts repository connectivity failures into the retryable
// ErrStoreUnavailable; everything else passes through untouched.
func storeErr(err error) error {
	if errors.Is(err, repository.ErrStoreUnavailable) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return err
}

// Domain error taxonomy. Handlers map these onto HTTP statuses; callers may
// retry ErrStoreUnavailable with backoff, everything else is terminal.
var (
	// ErrValidation covers bad input shape (e.g. non-positive quantity).
	// Rejected before any store mutation.
	ErrValidation = errors.New("validation error")

	// ErrDuplicateName is returned when a category name already exists.
	ErrDuplicateName = errors.New("category name already exists")

	// ErrDuplicateSKU is returned when a product SKU already exists.
	ErrDuplicateSKU = errors.New("product sku already exists")

	// ErrUnknownReference is returned when a referenced record is missing
	// (e.g. creating a product against an unknown category).
	ErrUnknownReference = errors.New("referenced record does not exist")

	// ErrNotFound is returned when the addressed record is missing.
	ErrNotFound = errors.New("record not found")

	// ErrReferentialConflict is returned when deleting a record that still
	// has dependents (category with products, product with ledger entries).
	ErrReferentialConflict = errors.New("record still has dependent records")

	// ErrStoreUnavailable signals unreachable storage; retryable by the caller.
	ErrStoreUnavailable = errors.New("store unavailable")
)
