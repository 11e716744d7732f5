package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/clients"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/config"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/events"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/handlers"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/logging"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/metrics"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/repository"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/server"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/service"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/session"
)

func main() {
	cfg := config.Load()
	logging.SetLevel(cfg.LogLevel)

	logger := logging.NewLoggerV2("pos-terminal")
	logging.Infof("Starting pos-terminal %s on port %d", cfg.TerminalID, cfg.Server.Port)

	ctx := context.Background()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	var redisClient *redis.Client
	if cfg.Session.Store == "redis" || cfg.Features.EnableDraftCaching {
		redisClient = repository.NewRedisClient(cfg.Redis)
		defer redisClient.Close()
	}

	store, closeStore, err := session.OpenStore(cfg.Session, redisClient)
	if err != nil {
		logger.Fatal("Failed to open session store", logging.Fields{"error": err.Error()})
	}
	defer closeStore.Close()

	sess := session.New(store)
	if err := sess.Restore(ctx); err != nil {
		logger.Warn("Failed to restore session", logging.Fields{"error": err.Error()})
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Features.EnableEvents {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka, cfg.TerminalID, logger.With("events"))
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	redirector := clients.RedirectBroadcaster{
		clients.RedirectFunc(func(ctx context.Context, reason error) {
			logger.Warn("Operator must log in again", logging.Fields{
				"login_path": cfg.API.LoginPath,
				"reason":     reason.Error(),
			})
		}),
		events.NewSessionExpiredRedirector(publisher, logger.With("redirect")),
	}

	apiClient := clients.NewAPIClient(cfg.API, sess, redirector, m, logger.With("api"))

	drafts, db, err := initDrafts(ctx, cfg, redisClient, logger)
	if err != nil {
		logger.Fatal("Failed to initialise draft storage", logging.Fields{"error": err.Error()})
	}
	if db != nil {
		defer db.Close()
	}

	cartService := service.NewCartService(drafts, apiClient, publisher, m, cfg)

	h := handlers.NewHandlers(cartService, apiClient, cfg)
	if db != nil {
		h.AddReadinessCheck("postgres", db.PingContext)
	}
	if redisClient != nil {
		h.AddReadinessCheck("redis", func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	srv := server.New(h, cfg, reg)

	go func() {
		logger.Info("Server starting", logging.Fields{
			"port":            cfg.Server.Port,
			"api_base_url":    cfg.API.BaseURL,
			"session_store":   cfg.Session.Store,
			"postgres_drafts": cfg.Features.PostgresDrafts,
			"draft_caching":   cfg.Features.EnableDraftCaching,
			"events":          cfg.Features.EnableEvents,
		})
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", logging.Fields{"error": err.Error()})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", logging.Fields{"error": err.Error()})
	}

	logger.Info("Server exited")
}

// initDrafts picks the draft store. Postgres is used when enabled; drafts then
// survive restarts and are optionally fronted by Redis.
func initDrafts(ctx context.Context, cfg *config.Config, redisClient *redis.Client, logger *logging.LoggerV2) (repository.DraftRepository, *sql.DB, error) {
	if !cfg.Features.PostgresDrafts {
		logging.Infof("Using in-memory draft storage")
		return repository.NewMemoryDraftRepository(), nil, nil
	}

	db, err := repository.OpenPostgres(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	if err := repository.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, err
	}

	logging.Info("Database connected", logging.Fields{
		"host": cfg.Database.Host,
		"name": cfg.Database.Name,
	})

	var drafts repository.DraftRepository = repository.NewPostgresDraftRepository(db, logger.With("drafts"))
	if cfg.Features.EnableDraftCaching && redisClient != nil {
		drafts = repository.NewCachedDraftRepository(drafts, repository.NewRedisDraftCache(redisClient, cfg.Redis.TTL))
	}
	return drafts, db, nil
}
