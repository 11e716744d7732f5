package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/logging"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/models"
)

type addItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CreateDraft handles POST /api/v1/drafts
func (h *Handlers) CreateDraft(c *gin.Context) {
	var req models.CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind request", logging.Fields{"error": err.Error()})
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	view, err := h.cart.NewDraft(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

// ListDrafts handles GET /api/v1/drafts
func (h *Handlers) ListDrafts(c *gin.Context) {
	views, err := h.cart.ListDrafts(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"drafts": views,
		"total":  len(views),
	})
}

// GetDraft handles GET /api/v1/drafts/:id
func (h *Handlers) GetDraft(c *gin.Context) {
	view, err := h.cart.GetDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// DeleteDraft handles DELETE /api/v1/drafts/:id
func (h *Handlers) DeleteDraft(c *gin.Context) {
	if err := h.cart.DiscardDraft(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddItem handles POST /api/v1/drafts/:id/items
func (h *Handlers) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
		return
	}

	view, err := h.cart.AddProduct(c.Request.Context(), c.Param("id"), req.ProductID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// SetQuantity handles PUT /api/v1/drafts/:id/items/:productId
func (h *Handlers) SetQuantity(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity is required"})
		return
	}

	view, err := h.cart.SetQuantity(c.Request.Context(), c.Param("id"), productID, *req.Quantity)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// DraftTotals handles GET /api/v1/drafts/:id/totals
func (h *Handlers) DraftTotals(c *gin.Context) {
	totals, err := h.cart.Totals(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totals":          totals,
		"currency":        h.config.Business.Currency,
		"currency_symbol": h.config.Business.CurrencySymbol,
	})
}

// Checkout handles POST /api/v1/drafts/:id/checkout
func (h *Handlers) Checkout(c *gin.Context) {
	result, err := h.cart.Checkout(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}
