package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/boddenberg/budgeteer-api-go/internal/budget"
	"github.com/boddenberg/budgeteer-api-go/internal/config"
	"github.com/boddenberg/budgeteer-api-go/internal/handler"
	"github.com/boddenberg/budgeteer-api-go/internal/infra/cache"
	"github.com/boddenberg/budgeteer-api-go/internal/infra/observability"
	"github.com/boddenberg/budgeteer-api-go/internal/infra/resilience"
	"github.com/boddenberg/budgeteer-api-go/internal/infra/supabase"
	"github.com/boddenberg/budgeteer-api-go/internal/service"

	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("currency", cfg.Currency),
		zap.Strings("default_hidden_categories", cfg.DefaultHiddenCategories),
		zap.String("goals_file", cfg.GoalsFile),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.Bool("auth_enabled", cfg.AuthEnabled()),
	)

	if cfg.SupabaseURL == "" {
		logger.Fatal("SUPABASE_URL is required")
	}

	// --- Tracing ---
	shutdown, err := observability.InitTracer(context.Background(), "budgeteer-api", cfg.OTLPEndpoint)
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Cache ---
	budgetCache := cache.New[any](cfg.CacheTTL)

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	cb := resilience.NewCircuitBreaker("supabase")

	// --- Store ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	store := supabase.NewClient(
		httpClient,
		cfg.SupabaseURL,
		cfg.SupabaseAnonKey,
		cfg.SupabaseServiceKey,
		cb,
		resilienceCfg,
		logger,
	)

	// --- Goals ---
	goals, err := config.LoadGoals(cfg.GoalsFile)
	if err != nil {
		logger.Fatal("failed to load goals file", zap.String("path", cfg.GoalsFile), zap.Error(err))
	}
	if len(goals) > 0 {
		logger.Info("goals loaded", zap.Int("count", len(goals)))
	}

	// --- Services ---
	ledgerSvc := service.NewLedgerService(store, budgetCache, metrics, logger)
	monthSvc := service.NewMonthService(
		store,
		goals,
		budget.Currency(cfg.Currency),
		cfg.DefaultHiddenCategories,
		metrics,
		logger,
	)

	var authSvc *service.AuthService
	if cfg.AuthEnabled() {
		authSvc = service.NewAuthService(cfg.APIPasswordHash, cfg.JWTSecret, cfg.JWTAccessTTL, logger)
		logger.Info("auth enabled")
	} else {
		logger.Warn("auth not configured, API is unprotected")
	}

	// --- Router ---
	router := handler.NewRouter(ledgerSvc, monthSvc, authSvc, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
