package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/tiendafacil/backend/internal/domain"
	"github.com/tiendafacil/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	assistant *usecase.AssistantService
	catalog   *usecase.CatalogService
	sales     *usecase.SalesService
}

// NewHandler creates a new HTTP handler
func NewHandler(assistant *usecase.AssistantService, catalog *usecase.CatalogService, sales *usecase.SalesService) *Handler {
	return &Handler{assistant: assistant, catalog: catalog, sales: sales}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "tiendafacil-backend",
		"version": "1.0.0",
	})
}

type messageRequest struct {
	Text string `json:"text" binding:"required"`
}

// PostMessage runs one utterance through the assistant pipeline and returns
// the tagged reply (invoice, price quote or fallback).
func (h *Handler) PostMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	products, err := h.catalog.Snapshot(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	reply := h.assistant.Reply(req.Text, products)
	c.JSON(http.StatusOK, reply)
}

// ListProducts returns the full catalog (also serves as export).
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.catalog.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	c.JSON(http.StatusOK, products)
}

// CreateProduct adds a product to the catalog.
func (h *Handler) CreateProduct(c *gin.Context) {
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product payload"})
		return
	}

	created, err := h.catalog.Add(c.Request.Context(), product)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateProduct replaces an existing product's fields.
func (h *Handler) UpdateProduct(c *gin.Context) {
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product payload"})
		return
	}

	updated, err := h.catalog.Update(c.Request.Context(), c.Param("id"), product)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteProduct removes a product from the catalog.
func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ResetProducts restores the default catalog.
func (h *Handler) ResetProducts(c *gin.Context) {
	products, err := h.catalog.Reset(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// ImportProducts replaces the catalog with an uploaded list.
func (h *Handler) ImportProducts(c *gin.Context) {
	var products []domain.Product
	if err := c.ShouldBindJSON(&products); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product list payload"})
		return
	}

	if err := h.catalog.Import(c.Request.Context(), products); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": len(products)})
}

// RegisterSale records a parsed invoice in the sales ledger.
func (h *Handler) RegisterSale(c *gin.Context) {
	var invoice domain.Invoice
	if err := c.ShouldBindJSON(&invoice); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice payload"})
		return
	}

	sale, err := h.sales.RegisterInvoice(c.Request.Context(), invoice)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

type manualSaleRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Note   string          `json:"note"`
}

// RegisterManualSale records a quick amount without an invoice.
func (h *Handler) RegisterManualSale(c *gin.Context) {
	var req manualSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sale payload"})
		return
	}

	sale, err := h.sales.RegisterManual(c.Request.Context(), req.Amount, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

// SalesSummary returns today/week/month totals and the 7-day series.
func (h *Handler) SalesSummary(c *gin.Context) {
	summary, err := h.sales.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// RecentSales returns today's sales, newest first.
func (h *Handler) RecentSales(c *gin.Context) {
	sales, err := h.sales.Recent(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if sales == nil {
		sales = []domain.Sale{}
	}
	c.JSON(http.StatusOK, sales)
}

// respondError maps domain errors to HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		slog.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
