package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tallyworks/wipengine/internal/adapter/cache"
	httpAdapter "github.com/tallyworks/wipengine/internal/adapter/http"
	"github.com/tallyworks/wipengine/internal/adapter/http/handler"
	postgresRepo "github.com/tallyworks/wipengine/internal/adapter/repository/postgres"
	"github.com/tallyworks/wipengine/internal/infrastructure/config"
	"github.com/tallyworks/wipengine/internal/infrastructure/logger"
	"github.com/tallyworks/wipengine/internal/infrastructure/metrics"
	"github.com/tallyworks/wipengine/internal/infrastructure/postgres"
	"github.com/tallyworks/wipengine/internal/infrastructure/redis"
	"github.com/tallyworks/wipengine/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	// Connect to PostgreSQL. The ledger is a hard dependency.
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis. A missing or unreachable Redis is not fatal: the
	// engine serves from the local tier and recomputes on miss.
	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, starting with degraded cache")
		} else {
			log.Info().Msg("connected to redis")
		}
		if redisClient != nil {
			defer redisClient.Close()
		}
	} else {
		log.Info().Msg("no redis configured, running on local cache tier only")
	}

	m := metrics.New()

	// Cache tiers
	local := cache.NewLocalStore(cfg.LocalCacheCapacity, cfg.LocalCacheShards, cfg.LocalCacheTTL)
	var remote *cache.RedisStore
	if redisClient != nil {
		remote = cache.NewRedisStore(redisClient, cfg.RedisOpTimeout, m, log)
	}
	tiered := cache.NewTieredStore(local, remote, m)
	versions := cache.NewVersionStore(redisClient, cfg.RedisOpTimeout, log)

	// Repositories
	retrier := postgresRepo.NewRetrier(log)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool, retrier)
	costPolicy := postgresRepo.NewCostPolicyRepository(pool, log)
	serviceLines := postgresRepo.NewServiceLineRepository(pool, log)
	idGen := postgresRepo.NewULIDGenerator()

	if err := costPolicy.Refresh(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to load zero-cost categories")
	}
	if err := serviceLines.Refresh(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to load service line mapping")
	}
	go refreshLoop(ctx, cfg.PolicyRefreshInterval, log, costPolicy.Refresh, serviceLines.Refresh)

	// Use cases
	wipUC := usecase.NewWipUseCase(usecase.WipConfig{
		Ledger:       ledgerRepo,
		Cache:        tiered,
		Versions:     versions,
		CostPolicy:   costPolicy,
		ServiceLines: serviceLines,
		TTL: usecase.TTLPolicy{
			Overall: cfg.SnapshotTTLOverall,
			Grouped: cfg.SnapshotTTLGrouped,
			Aging:   cfg.SnapshotTTLAging,
			Firm:    cfg.SnapshotTTLFirm,
		},
		IDGen:   idGen,
		Metrics: m,
		Logger:  log,
	})
	invalidator := usecase.NewInvalidator(tiered, versions, m, log)

	// Handlers
	wipHandler := handler.NewWipHandler(wipUC)
	cacheHandler := handler.NewCacheHandler(invalidator, wipUC)
	healthHandler := handler.NewHealthHandler(pool)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		WipHandler:    wipHandler,
		CacheHandler:  cacheHandler,
		HealthHandler: healthHandler,
		Logger:        log,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// refreshLoop periodically reloads business data that feeds aggregation.
// A failed refresh keeps the previous data and is retried next tick.
func refreshLoop(ctx context.Context, interval time.Duration, log zerolog.Logger, fns ...func(context.Context) error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, fn := range fns {
				if err := fn(ctx); err != nil {
					log.Warn().Err(err).Msg("policy refresh failed")
				}
			}
		}
	}
}
