package handlers

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
)

// passthroughParams are the product list filters forwarded to the backend.
var passthroughParams = []string{"search", "category", "page", "ordering", "is_active"}

// ListProducts handles GET /api/v1/products
func (h *Handlers) ListProducts(c *gin.Context) {
	query := c.Request.URL.Query()
	for key := range query {
		if !slices.Contains(passthroughParams, key) {
			query.Del(key)
		}
	}

	products, err := h.backend.ListProducts(c.Request.Context(), query)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    len(products),
	})
}

// ProductByBarcode handles GET /api/v1/products/barcode/:code
func (h *Handlers) ProductByBarcode(c *gin.Context) {
	product, err := h.backend.GetProductByBarcode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

