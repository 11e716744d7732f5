package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/config"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/handlers"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/logging"
)

type Server struct {
	config   *config.Config
	router   *gin.Engine
	handlers *handlers.Handlers
	http     *http.Server
}

// New builds the terminal's HTTP server. gatherer backs the /metrics endpoint.
func New(h *handlers.Handlers, cfg *config.Config, gatherer prometheus.Gatherer) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), handlers.RequestID(), handlers.AccessLog(logging.NewLoggerV2("http")))

	s := &Server{
		config:   cfg,
		router:   router,
		handlers: h,
	}

	s.setupRoutes(gatherer)

	s.http = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return s
}

func (s *Server) setupRoutes(gatherer prometheus.Gatherer) {
	s.router.GET("/health", s.handlers.Health)
	s.router.GET("/ready", s.handlers.Ready)
	s.router.GET("/live", s.handlers.Live)
	s.router.GET("/version", s.handlers.Version)
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/session", s.handlers.SessionState)
		v1.POST("/session", s.handlers.Login)
		v1.DELETE("/session", s.handlers.Logout)

		v1.GET("/products", s.handlers.ListProducts)
		v1.GET("/products/barcode/:code", s.handlers.ProductByBarcode)

		v1.GET("/drafts", s.handlers.ListDrafts)
		v1.POST("/drafts", s.handlers.CreateDraft)
		v1.GET("/drafts/:id", s.handlers.GetDraft)
		v1.DELETE("/drafts/:id", s.handlers.DeleteDraft)
		v1.POST("/drafts/:id/items", s.handlers.AddItem)
		v1.PUT("/drafts/:id/items/:productId", s.handlers.SetQuantity)
		v1.GET("/drafts/:id/totals", s.handlers.DraftTotals)
		v1.POST("/drafts/:id/checkout", s.handlers.Checkout)
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	logging.Infof("Starting server on %s", s.http.Addr)
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
