package model

import (
	"time"

	"github.com/google/uuid"
)

// Transaction types recorded in the stock ledger.
const (
	TxIn  = "IN"  // goods received: new = previous + quantity
	TxOut = "OUT" // goods issued: new = max(0, previous - quantity)
	TxAdj = "ADJ" // manual adjustment: new = previous + delta (may go negative)
)

// LedgerEntry records one stock-quantity change. Append-only: rows are never
// updated or deleted, and a product cannot be deleted while entries exist.
type LedgerEntry struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID       uuid.UUID `gorm:"type:uuid;not null;index"`
	TransactionType string    `gorm:"not null"` // IN | OUT | ADJ
	Quantity        int       `gorm:"not null"` // requested magnitude; signed for ADJ
	PreviousStock   int       `gorm:"not null"`
	NewStock        int       `gorm:"not null"`
	Notes           string
	CreatedAt       time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

// TableName matches the original audit table.
func (LedgerEntry) TableName() string { return "inventory_transactions" }
