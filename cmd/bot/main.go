package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leadpipe/leadpipe/internal/api/router"
	"github.com/leadpipe/leadpipe/internal/attio"
	appconfig "github.com/leadpipe/leadpipe/internal/config"
	"github.com/leadpipe/leadpipe/internal/extract"
	"github.com/leadpipe/leadpipe/internal/http/handlers"
	"github.com/leadpipe/leadpipe/internal/observability/metrics"
	"github.com/leadpipe/leadpipe/internal/pipeline"
	"github.com/leadpipe/leadpipe/pkg/logging"
	"github.com/leadpipe/leadpipe/pkg/retry"
)

func main() {
	// Load .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting leadpipe",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	primary, err := extract.NewGeminiClient(ctx, cfg.GoogleAPIKey, cfg.GoogleModel, cfg.GoogleMaxTokens)
	if err != nil {
		logger.Error("failed to create gemini client", "error", err)
		os.Exit(1)
	}
	defer primary.Close()

	fallback, err := extract.NewGeminiClient(ctx, cfg.GoogleAPIKey, cfg.GoogleFallbackModel, cfg.GoogleMaxTokens)
	if err != nil {
		logger.Error("failed to create fallback gemini client", "error", err)
		os.Exit(1)
	}
	defer fallback.Close()

	llm := extract.NewFallbackClient(primary, fallback, logger.Logger)

	policy := retry.Policy{
		MaxAttempts: cfg.RetryMaxAttempts,
		BaseDelay:   cfg.RetryBaseDelay,
	}

	engine := extract.NewEngine(llm, logger,
		extract.WithRateLimit(cfg.GeminiRequestsPerSec),
		extract.WithTimeout(cfg.GeminiTimeout),
		extract.WithPolicy(policy),
	)

	var domainFinder attio.DomainFinder
	if cfg.DomainLookupEnabled {
		domainFinder = extract.NewGeminiDomainFinder(llm)
	}

	crm, err := attio.New(attio.Config{
		BaseURL:      cfg.AttioBaseURL,
		APIKey:       cfg.AttioAPIKey,
		ListID:       cfg.AttioListID,
		Timeout:      cfg.AttioTimeout,
		Policy:       policy,
		Logger:       logger.Logger,
		DomainFinder: domainFinder,
	})
	if err != nil {
		logger.Error("failed to create attio client", "error", err)
		os.Exit(1)
	}

	pipelineMetrics := metrics.NewPipelineMetrics(prometheus.DefaultRegisterer)

	opts := []pipeline.ServiceOption{pipeline.WithMetrics(pipelineMetrics)}
	if guard := buildGuard(ctx, cfg, logger); guard != nil {
		opts = append(opts, pipeline.WithGuard(guard))
	}
	if audit := buildAuditStore(ctx, cfg, logger); audit != nil {
		opts = append(opts, pipeline.WithAuditStore(audit))
	}

	svc := pipeline.NewService(engine, attio.NewMapper(cfg.AttioListID), crm, logger, opts...)

	r := router.New(&router.Config{
		LeadsHandler:   handlers.NewLeadsHandler(svc, logger),
		MetricsHandler: promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// buildGuard returns the Redis dedupe guard, or nil when Redis is not
// configured or unreachable. Losing the guard degrades to reprocessing
// duplicates, never to losing leads.
func buildGuard(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) pipeline.Guard {
	if cfg.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available, dedupe disabled", "error", err)
		return nil
	}
	logger.Info("dedupe guard enabled", "ttl", cfg.DedupeTTL.String())
	return pipeline.NewRedisGuard(client, cfg.DedupeTTL)
}

// buildAuditStore returns the Postgres audit store, or nil when no
// database is configured or reachable.
func buildAuditStore(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) pipeline.AuditStore {
	if cfg.DatabaseURL == "" {
		return nil
	}
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Warn("postgres not available, audit disabled", "error", err)
		return nil
	}
	if err := pool.Ping(ctx); err != nil {
		logger.Warn("postgres unreachable, audit disabled", "error", err)
		pool.Close()
		return nil
	}
	logger.Info("submission audit enabled")
	return pipeline.NewPGAuditStore(pool)
}
