// Package main is the entry point for the game results hub API server.
//
// The service records finished tic-tac-toe games and serves per-player
// statistics and a cross-player leaderboard computed from those records.
//
// Architecture follows Clean Architecture and DDD:
// - Domain: record model and the pure aggregation engine
// - Application: use case orchestration (Commands/Queries)
// - Infrastructure: PostgreSQL and in-memory repositories, Redis limiter
// - Interface: HTTP endpoints
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/tictacplay/game-hub/config"
	"github.com/tictacplay/game-hub/internal/application/command"
	"github.com/tictacplay/game-hub/internal/application/query"
	"github.com/tictacplay/game-hub/internal/domain/game"
	"github.com/tictacplay/game-hub/internal/infrastructure/persistence/memory"
	"github.com/tictacplay/game-hub/internal/infrastructure/persistence/postgres"
	"github.com/tictacplay/game-hub/internal/infrastructure/persistence/redis"
	httpserver "github.com/tictacplay/game-hub/internal/interface/http"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. CONFIGURATION
	// ─────────────────────────────────────────────────────────────────────────
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. LOGGING
	// ─────────────────────────────────────────────────────────────────────────
	logger, err := setupLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting game results hub",
		zap.String("env", string(cfg.App.Environment)),
		zap.String("version", cfg.App.Version),
		zap.Bool("debug", cfg.App.Debug),
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. STORAGE
	// ─────────────────────────────────────────────────────────────────────────
	var (
		repo  game.Repository
		store httpserver.Pinger
	)

	if cfg.Database.URL != "" {
		logger.Info("connecting to database...")
		dbConn, err := postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer func() {
			logger.Info("closing database connection...")
			dbConn.Close()
		}()

		if err := dbConn.Ping(ctx); err != nil {
			return fmt.Errorf("database ping failed: %w", err)
		}
		logger.Info("database connection established")

		// ─────────────────────────────────────────────────────────────────
		// 4. MIGRATIONS
		// ─────────────────────────────────────────────────────────────────
		logger.Info("running database migrations...")
		migrator := postgres.NewMigrator(dbConn)
		if err := migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		status, err := migrator.Status(ctx)
		if err != nil {
			logger.Warn("failed to get migration status", zap.Error(err))
		} else {
			applied := 0
			for _, m := range status {
				if m.IsApplied {
					applied++
				}
			}
			logger.Info("migrations completed",
				zap.Int("applied", applied),
				zap.Int("total", len(status)),
			)
		}

		repo = postgres.NewResultRepository(dbConn)
		store = dbConn
	} else {
		// Development convenience: run without a database, records live in
		// process memory and vanish on restart.
		logger.Warn("DATABASE_URL not set, using in-memory store")
		repo = memory.NewResultRepository()
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. REDIS RATE LIMITER (optional)
	// ─────────────────────────────────────────────────────────────────────────
	var rateLimiter httpserver.RateLimiter

	if !cfg.Redis.Disabled {
		logger.Info("connecting to Redis...")
		redisCfg := redis.Config{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		}

		limiter, err := redis.NewRateLimiter(redisCfg, cfg.Redis.RateLimitPerWindow, cfg.Redis.RateLimitWindow)
		if err != nil {
			logger.Warn("failed to connect to Redis, rate limiting disabled", zap.Error(err))
		} else {
			defer func() { _ = limiter.Close() }()
			rateLimiter = limiter
			logger.Info("Redis connection established",
				zap.Int("limit", limiter.Limit()),
				zap.Duration("window", limiter.Window()),
			)
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 6. APPLICATION LAYER
	// ─────────────────────────────────────────────────────────────────────────
	logger.Info("initializing application layer...")

	deps := httpserver.Dependencies{
		SaveResult:     command.NewSaveResultHandler(repo),
		ClearHistory:   command.NewClearHistoryHandler(repo),
		GetHistory:     query.NewGetHistoryHandler(repo),
		GetPlayerStats: query.NewGetPlayerStatsHandler(repo),
		GetLeaderboard: query.NewGetLeaderboardHandler(repo),
		Logger:         logger,
		Store:          store,
		RateLimiter:    rateLimiter,
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 7. HTTP SERVER
	// ─────────────────────────────────────────────────────────────────────────
	httpConfig := httpserver.DefaultConfig()
	httpConfig.Host = cfg.HTTP.Host
	httpConfig.Port = cfg.HTTP.Port
	httpConfig.ReadTimeout = cfg.HTTP.ReadTimeout
	httpConfig.WriteTimeout = cfg.HTTP.WriteTimeout
	httpConfig.IdleTimeout = cfg.HTTP.IdleTimeout
	httpConfig.EnableCORS = cfg.HTTP.EnableCORS
	httpConfig.AllowedOrigins = cfg.HTTP.AllowedOrigins

	server := httpserver.NewServer(httpConfig, deps)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// ─────────────────────────────────────────────────────────────────────────
	// 8. GRACEFUL SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	logger.Info("game results hub is running", zap.String("address", server.Address()))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.Error("service error", zap.Error(err))
		return err
	case <-ctx.Done():
		logger.Info("context canceled")
	}

	logger.Info("starting graceful shutdown...", zap.Duration("timeout", cfg.App.ShutdownTimeout))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to stop HTTP server gracefully", zap.Error(err))
		return err
	}

	logger.Info("shutdown completed successfully")
	return nil
}

// setupLogger builds the zap logger: JSON in production, console output with
// colored levels in development.
func setupLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Observability.LogLevel)
	if err == nil {
		zapCfg.Level = level
	}
	if cfg.App.Debug {
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	return zapCfg.Build()
}
