package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the authoritative write-model record. The read store holds a
// derived, disposable copy keyed by SKU; this row is the source of truth.
//
// StockQuantity is only ever changed through the stock service, which pairs
// the update with a LedgerEntry in a single transaction.
type Product struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU           string    `gorm:"uniqueIndex;not null"`
	Name          string    `gorm:"index;not null"`
	Description   *string
	CategoryID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	StockQuantity int             `gorm:"not null;default:0"`
	MinStockLevel int             `gorm:"not null;default:10"`
	Supplier      string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
}

func (Product) TableName() string { return "products" }
