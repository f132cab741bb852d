package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/bankofanthos/investpipe/internal/adapter/http"
	"github.com/bankofanthos/investpipe/internal/adapter/http/handler"
	postgresRepo "github.com/bankofanthos/investpipe/internal/adapter/repository/postgres"
	redisRepo "github.com/bankofanthos/investpipe/internal/adapter/repository/redis"
	"github.com/bankofanthos/investpipe/internal/adapter/valuation"
	"github.com/bankofanthos/investpipe/internal/domain"
	"github.com/bankofanthos/investpipe/internal/infrastructure/config"
	"github.com/bankofanthos/investpipe/internal/infrastructure/logger"
	"github.com/bankofanthos/investpipe/internal/infrastructure/metrics"
	"github.com/bankofanthos/investpipe/internal/infrastructure/postgres"
	"github.com/bankofanthos/investpipe/internal/infrastructure/redis"
	"github.com/bankofanthos/investpipe/internal/usecase"
	"github.com/bankofanthos/investpipe/internal/worker"
)

func main() {
	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Reconfigure with the level and format from the environment
	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	// Connect to the queue store
	queuePool, err := postgres.NewPool(ctx, postgres.PoolConfig{
		URL:      cfg.QueueDatabaseURL,
		MaxConns: cfg.DatabaseMaxConns,
		MinConns: cfg.DatabaseMinConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to queue store")
	}
	defer queuePool.Close()
	log.Info().Msg("connected to queue store")

	// Connect to the portfolio store
	portfolioPool, err := postgres.NewPool(ctx, postgres.PoolConfig{
		URL:      cfg.PortfolioDatabaseURL,
		MaxConns: cfg.DatabaseMaxConns,
		MinConns: cfg.DatabaseMinConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to portfolio store")
	}
	defer portfolioPool.Close()
	log.Info().Msg("connected to portfolio store")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Apply schema migrations to both stores
	if err := postgres.RunMigrations(cfg.QueueDatabaseURL, cfg.QueueMigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate queue store")
	}
	if err := postgres.RunMigrations(cfg.PortfolioDatabaseURL, cfg.PortfolioMigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate portfolio store")
	}

	m := metrics.New()

	// Initialize repositories
	queueTxManager := postgresRepo.NewTxManager(queuePool)
	portfolioTxManager := postgresRepo.NewTxManager(portfolioPool)
	queueRepo := postgresRepo.NewQueueRepository(queuePool)
	portfolioRepo := postgresRepo.NewPortfolioRepository(portfolioPool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	statsCache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewUUIDGenerator()
	retrier := postgresRepo.NewRetrier()

	// Valuation service client
	valuationClient := valuation.NewClient(cfg.ValuationURL, cfg.ValuationTimeout)

	// Initialize use cases
	marketUC, err := usecase.NewMarketUseCase(domain.TierValues{
		Tier1Pool:   cfg.Tier1PoolValue,
		Tier1Market: cfg.Tier1MarketValue,
		Tier2Pool:   cfg.Tier2PoolValue,
		Tier2Market: cfg.Tier2MarketValue,
		Tier3Pool:   cfg.Tier3PoolValue,
		Tier3Market: cfg.Tier3MarketValue,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("invalid tier value configuration")
	}

	queueUC := usecase.NewQueueUseCase(queueRepo, idGen, m)
	batchUC := usecase.NewBatchUseCase(queueTxManager, queueRepo, valuationClient, cfg.BatchSize, m)
	syncUC := usecase.NewSyncUseCase(queueRepo, portfolioRepo, portfolioTxManager, marketUC, idGen, log.Logger, m)
	statsUC := usecase.NewStatsUseCase(queueRepo, portfolioRepo, statsCache)

	// Initialize handlers
	queueHandler := handler.NewQueueHandler(queueUC)
	syncHandler := handler.NewSyncHandler(syncUC, statsUC)
	marketHandler := handler.NewMarketHandler(marketUC)
	healthHandler := handler.NewHealthHandler(queuePool, portfolioPool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		QueueHandler:     queueHandler,
		SyncHandler:      syncHandler,
		MarketHandler:    marketHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start background workers
	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()

	aggregator := worker.NewAggregator(worker.AggregatorConfig{
		Processor: batchUC,
		Retrier:   retrier,
		Metrics:   m,
		Interval:  cfg.PollInterval,
	})
	go func() {
		if err := aggregator.Start(workerCtx); err != nil && workerCtx.Err() == nil {
			log.Error().Err(err).Msg("batch aggregator stopped")
		}
	}()

	sweeper := worker.NewSweeper(worker.SweeperConfig{
		Syncer:   syncUC,
		Retrier:  retrier,
		Metrics:  m,
		Interval: cfg.SyncInterval,
	})
	go func() {
		if err := sweeper.Start(workerCtx); err != nil && workerCtx.Err() == nil {
			log.Error().Err(err).Msg("reconciliation sweeper stopped")
		}
	}()

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

	stopWorkers()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
