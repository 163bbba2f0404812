package handler

import (
	"net/http"
	"strconv"

	"github.com/XiaBell/Sprint4-Arquisfot/internal/apierror"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/dto"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductsHandler struct {
	svc   service.ProductService
	stock service.StockService
}

func NewProductsHandler(svc service.ProductService, stock service.StockService) *ProductsHandler {
	return &ProductsHandler{svc: svc, stock: stock}
}

// Create POST /v1/products
func (h *ProductsHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List GET /v1/products
func (h *ProductsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	filter := dto.ProductFilter{
		CategoryID: c.Query("category_id"),
		Name:       c.Query("name"),
		Page:       page,
		Limit:      limit,
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetBySKU GET /v1/products/:sku
func (h *ProductsHandler) GetBySKU(c *gin.Context) {
	resp, err := h.svc.GetBySKU(c.Request.Context(), c.Param("sku"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete DELETE /v1/products/:id
func (h *ProductsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	if svcErr := h.svc.Delete(c.Request.Context(), id); svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

// ApplyStockChange POST /v1/products/:id/stock
func (h *ProductsHandler) ApplyStockChange(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.StockChangeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, svcErr := h.stock.Apply(c.Request.Context(), id, req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
