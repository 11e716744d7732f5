package handlers

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/clients"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/errors"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/logging"
)

// statusClientClosedRequest is returned when the caller went away mid-request.
const statusClientClosedRequest = 499

func (h *Handlers) handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	if clients.IsAbort(err) {
		c.AbortWithStatus(statusClientClosedRequest)
		return
	}

	if stderrors.Is(err, clients.ErrSessionExpired) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":    "session expired",
			"redirect": h.loginPath(),
		})
		return
	}

	if errors.IsNotFound(err) || clients.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var validationErr *errors.ValidationError
	if stderrors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   validationErr.Message,
			"details": validationErr.Details,
		})
		return
	}

	var apiErr *clients.APIError
	if stderrors.As(err, &apiErr) {
		h.handleAPIError(c, apiErr)
		return
	}

	h.logger.Error("Request failed", logging.Fields{
		"path":  c.FullPath(),
		"error": err.Error(),
	})
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func (h *Handlers) handleAPIError(c *gin.Context, apiErr *clients.APIError) {
	resp := gin.H{
		"error":          "backend request failed",
		"backend_status": apiErr.StatusCode,
	}
	if json.Valid(apiErr.Body) {
		resp["details"] = json.RawMessage(apiErr.Body)
	}

	switch apiErr.StatusCode {
	case http.StatusBadRequest:
		resp["error"] = "rejected by backend"
		c.JSON(http.StatusBadRequest, resp)
	case http.StatusUnauthorized, http.StatusForbidden:
		resp["error"] = "not authorized"
		c.JSON(apiErr.StatusCode, resp)
	default:
		h.logger.Warn("Backend error", logging.Fields{
			"method":         apiErr.Method,
			"path":           apiErr.Path,
			"backend_status": apiErr.StatusCode,
		})
		c.JSON(http.StatusBadGateway, resp)
	}
}
