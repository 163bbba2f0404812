// Package sync projects write-model products into the denormalized read
// store and rebuilds the read store from scratch when it drifts.
package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/XiaBell/Sprint4-Arquisfot/internal/model"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/readstore"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/repository"

	"github.com/rs/zerolog/log"
)

// upsertTimeout bounds every single read-store write. A slow or hung read
// store turns into a counted projection failure, never a blocked writer.
const upsertTimeout = 5 * time.Second

// Projector maps one product (plus its category) into a read document and
// performs an idempotent full-document upsert keyed by SKU.
//
// Project never retries and never panics past its boundary: it returns an
// error and lets the caller decide to log, count, or re-enqueue. By the time
// it runs the write-store transaction has already committed, so a projection
// failure must never be allowed to roll anything back.
type Projector struct {
	store      readstore.ReadStore
	categories repository.CategoryRepository
}

func NewProjector(store readstore.ReadStore, categories repository.CategoryRepository) *Projector {
	return &Projector{store: store, categories: categories}
}

// Project builds the read document from the just-committed product state and
// upserts it. The product's category must be the committed one: it is taken
// from the preloaded association when present and fetched otherwise, never
// from a cache.
func (p *Projector) Project(ctx context.Context, product *model.Product) error {
	doc, err := p.buildDocument(ctx, product)
	if err != nil {
		return err
	}

	upsertCtx, cancel := context.WithTimeout(ctx, upsertTimeout)
	defer cancel()

	if err := p.store.Upsert(upsertCtx, doc); err != nil {
		return fmt.Errorf("upsert %s: %w", doc.SKU, err)
	}

	log.Debug().Str("sku", doc.SKU).Msg("projected product to read store")
	return nil
}

func (p *Projector) buildDocument(ctx context.Context, product *model.Product) (*model.ReadDocument, error) {
	category := product.Category
	if category == nil {
		var err error
		category, err = p.categories.FindByID(ctx, product.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("resolve category for %s: %w", product.SKU, err)
		}
	}

	description := ""
	if product.Description != nil {
		description = *product.Description
	}
	price, _ := product.UnitPrice.Float64()

	return &model.ReadDocument{
		SKU:         product.SKU,
		Name:        product.Name,
		Description: description,
		Category: model.CategorySnapshot{
			ID:   category.ID.String(),
			Name: category.Name,
		},
		UnitPrice:     price,
		StockQuantity: product.StockQuantity,
		MinStockLevel: product.MinStockLevel,
		Supplier:      product.Supplier,
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}, nil
}
