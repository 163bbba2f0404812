package dto

import (
	"time"

	"github.com/google/uuid"
)

// ── Request DTOs ──────────────────────────────────────────────────────────────

// StockChangeRequest applies one IN/OUT/ADJ movement to a product.
// Quantity must be positive for IN and OUT; for ADJ it is a signed delta and
// may be negative.
type StockChangeRequest struct {
	TransactionType string `json:"transaction_type" validate:"required,oneof=IN OUT ADJ"`
	Quantity        int    `json:"quantity"         validate:"required"`
	Notes           string `json:"notes"            validate:"max=500"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type LedgerEntryResponse struct {
	ID              uuid.UUID `json:"id"`
	ProductID       uuid.UUID `json:"product_id"`
	SKU             string    `json:"sku,omitempty"`
	TransactionType string    `json:"transaction_type"`
	Quantity        int       `json:"quantity"`
	PreviousStock   int       `json:"previous_stock"`
	NewStock        int       `json:"new_stock"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type LedgerListResponse struct {
	Entries []LedgerEntryResponse `json:"entries"`
	Total   int64                 `json:"total"`
	Page    int                   `json:"page"`
	Limit   int                   `json:"limit"`
}
