package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/stickervalley/stickervalley/internal"
	"github.com/stickervalley/stickervalley/internal/billing"
	"github.com/stickervalley/stickervalley/internal/events"
	"github.com/stickervalley/stickervalley/internal/handler/api"
	"github.com/stickervalley/stickervalley/internal/identity"
	"github.com/stickervalley/stickervalley/internal/middleware"
	"github.com/stickervalley/stickervalley/internal/postgres"
	"github.com/stickervalley/stickervalley/internal/router"
	"github.com/stickervalley/stickervalley/internal/routes"
	"github.com/stickervalley/stickervalley/internal/service"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logger.Info("Database connection established")

	// Run migrations
	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize pgx connection pool for application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	store := postgres.NewStore(pool)

	// Event publisher (optional, disabled without a NATS URL)
	publisher, err := events.NewPublisher(cfg.Nats.URL, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}
	defer publisher.Close()
	if publisher != nil {
		logger.Info("Event publisher connected", "url", cfg.Nats.URL)
	}

	// Identity verification and user sync
	verifier := identity.NewVerifier(cfg.Identity.JWTSecret)
	syncer := identity.NewSyncer(store)
	auth := middleware.NewAuth(verifier, syncer, logger)

	// Payment provider (simulated; no external gateway)
	billingProvider := billing.NewSimulatedProvider()

	// Initialize services
	cartService := service.NewCartService(store)
	orderService := service.NewOrderService(service.NewOrderStore(store), billingProvider, publisher, logger)
	invoiceService := service.NewInvoiceService(orderService)
	shopService := service.NewShopService(store)
	stickerService := service.NewStickerService(store)
	reviewService := service.NewReviewService(store)
	wishlistService := service.NewWishlistService(store)

	// Build route dependencies
	apiDeps := routes.APIDeps{
		Auth:            auth,
		UserHandler:     api.NewUserHandler(logger),
		ShopHandler:     api.NewShopHandler(shopService, logger),
		StickerHandler:  api.NewStickerHandler(stickerService, logger),
		CartHandler:     api.NewCartHandler(cartService, logger),
		OrderHandler:    api.NewOrderHandler(orderService, invoiceService, logger),
		ReviewHandler:   api.NewReviewHandler(reviewService, logger),
		WishlistHandler: api.NewWishlistHandler(wishlistService, logger),
	}

	// Metrics and rate limiting
	metrics := middleware.NewMetrics("stickervalley")
	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
		CleanupInterval:   time.Minute,
	})
	defer limiter.Stop()

	// Create router
	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		router.Logger(logger),
		metrics.Middleware,
		router.CORS(cfg.CORS.AllowedOrigins),
		limiter.Middleware,
	)

	routes.RegisterAPIRoutes(r, apiDeps)

	// Operational endpoints
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := pool.Ping(req.Context()); err != nil {
			http.Error(w, "unhealthy", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	})
	r.Handle(http.MethodGet, "/metrics", metrics.Handler())

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "address", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		logger.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
