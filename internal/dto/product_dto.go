package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	SKU           string          `json:"sku"             validate:"required,min=1,max=50"`
	Name          string          `json:"name"            validate:"required,min=1,max=200"`
	Description   *string         `json:"description"`
	CategoryID    string          `json:"category_id"     validate:"required,uuid"`
	UnitPrice     decimal.Decimal `json:"unit_price"      validate:"min=0"`
	StockQuantity int             `json:"stock_quantity"  validate:"min=0"`
	MinStockLevel int             `json:"min_stock_level" validate:"min=0"`
	Supplier      string          `json:"supplier"        validate:"max=200"`
}

type ProductFilter struct {
	CategoryID string
	Name       string
	Page       int
	Limit      int
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   *string         `json:"description,omitempty"`
	CategoryID    uuid.UUID       `json:"category_id"`
	CategoryName  string          `json:"category_name,omitempty"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	StockQuantity int             `json:"stock_quantity"`
	MinStockLevel int             `json:"min_stock_level"`
	Supplier      string          `json:"supplier,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}
