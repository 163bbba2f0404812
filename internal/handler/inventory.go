package handler

import (
	"net/http"
	"strconv"

	"github.com/XiaBell/Sprint4-Arquisfot/internal/repository"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InventoryHandler exposes the read-side query surface and the diagnostic
// write-store vs read-store comparison endpoints.
type InventoryHandler struct {
	query service.QueryService
	stock service.StockService
}

func NewInventoryHandler(query service.QueryService, stock service.StockService) *InventoryHandler {
	return &InventoryHandler{query: query, stock: stock}
}

// listLimit caps the comparison endpoints the same way the original capped
// both backends, keeping the timing comparison apples-to-apples.
func listLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10000"))
	if err != nil || limit < 1 {
		return 10000
	}
	return limit
}

// SQLList GET /v1/inventory/sql — the slow join-based baseline.
func (h *InventoryHandler) SQLList(c *gin.Context) {
	resp, err := h.query.ListFromWriteStore(c.Request.Context(), listLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// NoSQLList GET /v1/inventory/nosql — the denormalized fast path.
func (h *InventoryHandler) NoSQLList(c *gin.Context) {
	resp, err := h.query.ListFromReadStore(c.Request.Context(), listLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Compare GET /v1/inventory/compare — both backends side by side.
func (h *InventoryHandler) Compare(c *gin.Context) {
	limit := listLimit(c)
	ctx := c.Request.Context()

	sqlRes, err := h.query.ListFromWriteStore(ctx, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	nosqlRes, err := h.query.ListFromReadStore(ctx, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"postgresql": sqlRes,
		"mongodb":    nosqlRes,
	})
}

// Stats GET /v1/inventory/stats — totals and low-stock count from the read store.
func (h *InventoryHandler) Stats(c *gin.Context) {
	resp, err := h.query.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Ledger GET /v1/inventory/transactions — the audit trail, newest first.
func (h *InventoryHandler) Ledger(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	filter := repository.LedgerFilter{
		TransactionType: c.Query("type"),
		Page:            page,
		Limit:           limit,
	}
	if raw := c.Query("product_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err == nil {
			filter.ProductID = &id
		}
	}

	resp, err := h.stock.ListLedger(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
