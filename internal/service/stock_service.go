package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/XiaBell/Sprint4-Arquisfot/internal/dto"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/model"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// StockService applies IN/OUT/ADJ stock movements. The stock write and its
// ledger entry form the single transactional unit of the whole system: both
// commit or neither does.
type StockService interface {
	Apply(ctx context.Context, productID uuid.UUID, req dto.StockChangeRequest) (*dto.LedgerEntryResponse, error)
	ListLedger(ctx context.Context, filter repository.LedgerFilter) (*dto.LedgerListResponse, error)
}

type stockService struct {
	repo      repository.ProductRepository
	ledger    repository.LedgerRepository
	projector ProductProjector
	notifier  SyncNotifier
}

func NewStockService(
	repo repository.ProductRepository,
	ledger repository.LedgerRepository,
	projector ProductProjector,
	notifier SyncNotifier,
) StockService {
	return &stockService{repo: repo, ledger: ledger, projector: projector, notifier: notifier}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// computeNewStock applies the per-type formula. OUT clamps at zero; ADJ does
// not — a negative result is recorded as-is. The asymmetry is deliberate and
// matches the recorded audit semantics (see the tests).
func computeNewStock(txType string, previous, quantity int) int {
	switch txType {
	case model.TxIn:
		return previous + quantity
	case model.TxOut:
		n := previous - quantity
		if n < 0 {
			return 0
		}
		return n
	default: // model.TxAdj
		return previous + quantity
	}
}

func (s *stockService) Apply(ctx context.Context, productID uuid.UUID, req dto.StockChangeRequest) (*dto.LedgerEntryResponse, error) {
	switch req.TransactionType {
	case model.TxIn, model.TxOut:
		if req.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive for %s", ErrValidation, req.TransactionType)
		}
	case model.TxAdj:
		if req.Quantity == 0 {
			return nil, fmt.Errorf("%w: adjustment delta must not be zero", ErrValidation)
		}
	default:
		return nil, fmt.Errorf("%w: unknown transaction type %q", ErrValidation, req.TransactionType)
	}

	writeCtx, cancel := withWriteTimeout(ctx)
	defer cancel()

	var entry model.LedgerEntry
	var sku string
	txErr := runTx(writeCtx, s.repo.DB(), func(tx *gorm.DB) error {
		// Row lock: concurrent movements on the same product serialize here,
		// so no two transactions ever read the same previous_stock.
		p, err := s.repo.FindForUpdateTx(tx, productID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		sku = p.SKU

		previous := p.StockQuantity
		newStock := computeNewStock(req.TransactionType, previous, req.Quantity)

		if err := s.repo.UpdateStockTx(tx, productID, newStock); err != nil {
			return err
		}

		entry = model.LedgerEntry{
			ProductID:       productID,
			TransactionType: req.TransactionType,
			Quantity:        req.Quantity,
			PreviousStock:   previous,
			NewStock:        newStock,
			Notes:           req.Notes,
		}
		return s.ledger.CreateTx(tx, &entry)
	})
	if txErr != nil {
		return nil, storeErr(txErr)
	}

	// Transaction committed and the row lock released — only now touch the
	// read store. Reload so the projection observes the committed state.
	if p, err := s.repo.FindByID(writeCtx, productID); err == nil {
		projectCommitted(ctx, s.projector, s.notifier, p)
	} else {
		// The SKU is known from the locked read, so the drift can still be
		// queued for repair even though the reload failed.
		log.Error().Str("product_id", productID.String()).Str("sku", sku).Err(err).
			Msg("reload for projection failed; queueing retry")
		if s.notifier != nil {
			s.notifier.NotifyFailed(ctx, sku)
		}
	}

	return &dto.LedgerEntryResponse{
		ID:              entry.ID,
		ProductID:       entry.ProductID,
		TransactionType: entry.TransactionType,
		Quantity:        entry.Quantity,
		PreviousStock:   entry.PreviousStock,
		NewStock:        entry.NewStock,
		Notes:           entry.Notes,
		CreatedAt:       entry.CreatedAt,
	}, nil
}

func (s *stockService) ListLedger(ctx context.Context, filter repository.LedgerFilter) (*dto.LedgerListResponse, error) {
	ctx, cancel := withWriteTimeout(ctx)
	defer cancel()

	entries, total, err := s.ledger.List(ctx, filter)
	if err != nil {
		return nil, storeErr(err)
	}

	resp := &dto.LedgerListResponse{
		Entries: make([]dto.LedgerEntryResponse, 0, len(entries)),
		Total:   total,
		Page:    filter.Page,
		Limit:   filter.Limit,
	}
	for _, e := range entries {
		item := dto.LedgerEntryResponse{
			ID:              e.ID,
			ProductID:       e.ProductID,
			TransactionType: e.TransactionType,
			Quantity:        e.Quantity,
			PreviousStock:   e.PreviousStock,
			NewStock:        e.NewStock,
			Notes:           e.Notes,
			CreatedAt:       e.CreatedAt,
		}
		if e.Product != nil {
			item.SKU = e.Product.SKU
		}
		resp.Entries = append(resp.Entries, item)
	}
	return resp, nil
}

// projectCommitted runs the read-store projection for a committed product.
// Failure is logged and handed to the retry queue; it is never propagated —
// the authoritative write already happened and must not appear to fail.
func projectCommitted(ctx context.Context, projector ProductProjector, notifier SyncNotifier, p *model.Product) {
	if projector == nil {
		return
	}
	if err := projector.Project(ctx, p); err != nil {
		log.Error().Str("sku", p.SKU).Err(err).Msg("projection failed after commit")
		if notifier != nil {
			notifier.NotifyFailed(ctx, p.SKU)
		}
	}
}
