package dto

// ── Comparison / diagnostics DTOs ─────────────────────────────────────────────

// TimedQueryResult is one side of a write-store vs read-store comparison:
// the same logical listing executed against one backend, with wall-clock
// timing attached.
type TimedQueryResult struct {
	Data      any     `json:"data"`
	Count     int     `json:"count"`
	ElapsedMS float64 `json:"elapsed_time_ms"`
	Database  string  `json:"database"`
	QueryType string  `json:"query_type"`
}

// InventoryStatsResponse is served straight from the read store: every figure
// is a single-collection count, no joins.
type InventoryStatsResponse struct {
	TotalProducts int64  `json:"total_products"`
	LowStockItems int64  `json:"low_stock_items"`
	Database      string `json:"database"`
}

// JoinedProductRow is the shape returned by the write-store baseline query
// (products joined with categories plus a ledger-entry count per product).
type JoinedProductRow struct {
	ID                  string  `json:"id"`
	SKU                 string  `json:"sku"`
	Name                string  `json:"name"`
	Description         *string `json:"description"`
	UnitPrice           string  `json:"unit_price"`
	StockQuantity       int     `json:"stock_quantity"`
	MinStockLevel       int     `json:"min_stock_level"`
	Supplier            string  `json:"supplier"`
	CategoryName        string  `json:"category_name"`
	CategoryDescription *string `json:"category_description"`
	TransactionCount    int64   `json:"transaction_count"`
}
