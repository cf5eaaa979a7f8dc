package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NYTimes/gziphandler"
	"golang.org/x/time/rate"

	"catalog-search-backend/config"
	"catalog-search-backend/internal/delivery/http/middleware"
	v1 "catalog-search-backend/internal/delivery/http/v1"
	"catalog-search-backend/internal/infrastructure/cache"
	"catalog-search-backend/internal/repository/postgres"
	"catalog-search-backend/internal/synonyms"
	"catalog-search-backend/internal/usecase"
	"catalog-search-backend/pkg/logger"
	"catalog-search-backend/pkg/utils"
)

func main() {
	cfg := config.LoadConfig()
	utils.SetSecret(cfg.JWTSecret)

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	// Initialize Database
	pgxPool, err := postgres.NewPgxPool(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	log.Info().Msg("Successfully connected to PostgreSQL")

	// Initialize Cache. Redis when reachable, in-process store otherwise;
	// the decision is made once for the process lifetime.
	store := cache.New(context.Background(), cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL)

	// Synonym table is static and loaded once at startup
	synonymService := synonyms.New(synonyms.DefaultTable())

	// Repositories
	productRepo := postgres.NewProductRepository(pgxPool, synonymService)

	// Set up Router
	mux := http.NewServeMux()

	// Search Module
	searchUC := usecase.NewSearchUsecase(productRepo, store, cfg.CacheTTL)
	searchHandler := v1.NewSearchHandler(searchUC, cfg.DefaultPageSize, cfg.MaxPageSize)

	// Catalog Module (admin writes, invalidates the search cache)
	catalogUC := usecase.NewCatalogUsecase(productRepo, searchUC)
	adminCatalogHandler := v1.NewAdminCatalogHandler(catalogUC)

	adminMiddleware := func(h http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(middleware.AdminMiddleware(h))
	}

	// Search (Public)
	mux.HandleFunc("GET /api/v1/products/search", searchHandler.Search)
	mux.HandleFunc("GET /api/v1/products/search/explain", searchHandler.Explain)

	// Cache Management (Admin)
	mux.Handle("POST /api/v1/products/cache/invalidate", adminMiddleware(searchHandler.InvalidateCache))

	// Admin Product Management
	mux.Handle("POST /api/v1/admin/products", adminMiddleware(adminCatalogHandler.CreateProduct))
	mux.Handle("GET /api/v1/admin/products/{id}", adminMiddleware(adminCatalogHandler.GetProduct))
	mux.Handle("PUT /api/v1/admin/products/{id}", adminMiddleware(adminCatalogHandler.UpdateProduct))
	mux.Handle("DELETE /api/v1/admin/products/{id}", adminMiddleware(adminCatalogHandler.DeleteProduct))

	// Health Check
	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	}
	mux.HandleFunc("GET /api/v1/health", healthHandler)
	mux.HandleFunc("GET /health", healthHandler) // Support root health check for Load Balancers

	addr := fmt.Sprintf(":%s", cfg.Port)

	// Initialize Rate Limiter with lifecycle management
	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		rate.Limit(cfg.RateLimitPerSecond),
		cfg.RateLimitBurst,
		time.Minute,   // cleanup period
		3*time.Minute, // client TTL
	)

	// Apply CORS (with config injection), Request Logger, Rate Limit, and Gzip
	handler := middleware.NewCORSMiddleware(cfg)(mux)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	log.Info().Msgf("Server starting on %s", addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	rateLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	pgxPool.Close()

	log.Info().Msg("Server exited properly")
}
