package handlers

import (
	"context"
	"net/url"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/config"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/logging"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/models"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/service"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/session"
)

// Backend is the slice of the store API the handlers call directly.
// *clients.APIClient satisfies it.
type Backend interface {
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.User, error)
	Session() *session.Session
	ListProducts(ctx context.Context, query url.Values) ([]models.Product, error)
	GetProductByBarcode(ctx context.Context, code string) (*models.Product, error)
}

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

// Handlers holds all HTTP handlers for the terminal service.
type Handlers struct {
	cart    *service.CartService
	backend Backend
	config  *config.Config
	checks  map[string]ReadinessCheck
	logger  *logging.LoggerV2
}

// NewHandlers creates a new handlers instance.
func NewHandlers(cart *service.CartService, backend Backend, cfg *config.Config) *Handlers {
	return &Handlers{
		cart:    cart,
		backend: backend,
		config:  cfg,
		checks:  make(map[string]ReadinessCheck),
		logger:  logging.NewLoggerV2("handlers"),
	}
}

// AddReadinessCheck registers a dependency checked by GET /ready.
func (h *Handlers) AddReadinessCheck(name string, check ReadinessCheck) {
	h.checks[name] = check
}

func (h *Handlers) loginPath() string {
	if h.config == nil || h.config.API.LoginPath == "" {
		return "/login"
	}
	return h.config.API.LoginPath
}
