package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/logging"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/session"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/v1/session
func (h *Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind request", logging.Fields{"error": err.Error()})
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	ctx := c.Request.Context()
	if err := h.backend.Login(ctx, req.Username, req.Password); err != nil {
		h.handleError(c, err)
		return
	}

	user, err := h.backend.Me(ctx)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state": h.backend.Session().State(),
		"user":  user,
	})
}

// Logout handles DELETE /api/v1/session
func (h *Handlers) Logout(c *gin.Context) {
	if err := h.backend.Logout(c.Request.Context()); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SessionState handles GET /api/v1/session
func (h *Handlers) SessionState(c *gin.Context) {
	state := h.backend.Session().State()
	resp := gin.H{"state": state}
	if state == session.StateAnonymous {
		resp["redirect"] = h.loginPath()
	}
	c.JSON(http.StatusOK, resp)
}
