// Package readstore holds the denormalized read side of the inventory split:
// one document per SKU, written only by the projector, optimized for
// join-free scans and simple predicate counts.
package readstore

import (
	"context"

	"github.com/XiaBell/Sprint4-Arquisfot/internal/model"
)

// ReadStore is the contract the sync path and the query surface share.
// Implementations must make Upsert a full-document replace keyed by SKU so
// repeated application with the same input is a no-op in effect.
type ReadStore interface {
	// Upsert replaces the document for doc.SKU, inserting if absent.
	Upsert(ctx context.Context, doc *model.ReadDocument) error

	// FindAll returns up to limit documents ordered by sortKey.
	FindAll(ctx context.Context, limit int64, sortKey string) ([]model.ReadDocument, error)

	// CountAll returns the number of documents in the collection.
	CountAll(ctx context.Context) (int64, error)

	// CountLowStock counts documents where stock_quantity < min_stock_level —
	// a comparison between two fields of the same document, no join.
	CountLowStock(ctx context.Context) (int64, error)

	// Ping reports whether the store is reachable. Reconciliation treats a
	// failed ping at job start as fatal.
	Ping(ctx context.Context) error
}
