package sync

import (
	"context"
	"fmt"

	"github.com/XiaBell/Sprint4-Arquisfot/internal/dto"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/model"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/readstore"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/repository"

	"github.com/rs/zerolog/log"
)

// progressEvery controls how often RunFull logs batch progress.
const progressEvery = 1000

// Reconciler rebuilds the read store by re-projecting every product in the
// write store. Because each upsert replaces the whole document, a
// reconciliation racing live traffic converges on the most recently
// committed state and can be re-run at any time.
type Reconciler struct {
	products  repository.ProductRepository
	store     readstore.ReadStore
	projector *Projector
	batchSize int
}

func NewReconciler(products repository.ProductRepository, store readstore.ReadStore, projector *Projector, batchSize int) *Reconciler {
	if batchSize < 1 {
		batchSize = 500
	}
	return &Reconciler{
		products:  products,
		store:     store,
		projector: projector,
		batchSize: batchSize,
	}
}

// RunFull streams every product through the projector and reports per-item
// counts. A single bad record is counted and skipped — it must never abort a
// hundred-thousand-item resync. An unreachable read store at start is the one
// fatal precondition: there is no point iterating when the sink is gone.
func (r *Reconciler) RunFull(ctx context.Context) (*dto.ReconciliationReport, error) {
	if err := r.store.Ping(ctx); err != nil {
		return nil, fmt.Errorf("read store unreachable: %w", err)
	}

	report := &dto.ReconciliationReport{}

	err := r.products.EachBatch(ctx, r.batchSize, func(p *model.Product) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		report.Total++
		if err := r.projector.Project(ctx, p); err != nil {
			report.Failed++
			log.Warn().Str("sku", p.SKU).Err(err).Msg("reconciliation: item failed, continuing")
		} else {
			report.Synced++
		}

		if report.Total%progressEvery == 0 {
			log.Info().
				Int("processed", report.Total).
				Int("synced", report.Synced).
				Int("failed", report.Failed).
				Msg("reconciliation progress")
		}
		return nil
	})
	if err != nil {
		// Iteration itself broke (write store gone or ctx cancelled) — this
		// is distinct from per-item projection failures above.
		return report, fmt.Errorf("product iteration aborted: %w", err)
	}

	log.Info().
		Int("total", report.Total).
		Int("synced", report.Synced).
		Int("failed", report.Failed).
		Msg("reconciliation complete")
	return report, nil
}
