package model

import "time"

// CategorySnapshot is the denormalized category embedded in a read document.
type CategorySnapshot struct {
	ID   string `bson:"id"   json:"id"`
	Name string `bson:"name" json:"name"`
}

// ReadDocument is the denormalized projection of one Product stored in the
// read store, keyed by SKU. It is written only by the projector; every upsert
// replaces the whole document, never a partial field patch, so a
// reconciliation racing a live update can never leave a hybrid document.
//
// A fixed struct rather than an open map: projection drift against the write
// model becomes a compile error instead of a silent shape change.
type ReadDocument struct {
	SKU           string           `bson:"_id"             json:"sku"`
	Name          string           `bson:"name"            json:"name"`
	Description   string           `bson:"description"     json:"description"`
	Category      CategorySnapshot `bson:"category"        json:"category"`
	UnitPrice     float64          `bson:"unit_price"      json:"unit_price"`
	StockQuantity int              `bson:"stock_quantity"  json:"stock_quantity"`
	MinStockLevel int              `bson:"min_stock_level" json:"min_stock_level"`
	Supplier      string           `bson:"supplier"        json:"supplier"`
	CreatedAt     time.Time        `bson:"created_at"      json:"created_at"`
	UpdatedAt     time.Time        `bson:"updated_at"      json:"updated_at"`
}
