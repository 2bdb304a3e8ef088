package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stepwise/process-tracker/internal/api"
	"github.com/stepwise/process-tracker/internal/core/domain"
	"github.com/stepwise/process-tracker/internal/core/ports"
	"github.com/stepwise/process-tracker/internal/core/service"
	"github.com/stepwise/process-tracker/internal/infrastructure/config"
	redisdb "github.com/stepwise/process-tracker/internal/infrastructure/db/redis"
	"github.com/stepwise/process-tracker/internal/infrastructure/db/sqlite"
	"github.com/stepwise/process-tracker/internal/infrastructure/queue"
	"github.com/stepwise/process-tracker/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.Open(cfg.SQLite.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.SQLite.Path).Msg("open store")
	}
	defer store.Close()

	codec := domain.NewTimeCodec(cfg.TimestampUTC)
	users := sqlite.NewUserRepository(store)
	processes := sqlite.NewProcessRepository(store, codec)
	steps := sqlite.NewStepRepository(store)
	tombstones := sqlite.NewTombstoneRepository(store)

	// The edit-summary cache is optional: without REDIS_ADDR every sync poll
	// hits the store directly.
	var cache ports.SummaryCache
	var invalidator ports.CacheInvalidator
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		client, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("connect redis")
		}
		defer client.Close()
		rdb = client

		summaryCache := redisdb.NewSummaryCache(client)
		cache = summaryCache

		dispatcher := queue.NewDispatcher(cfg.SyncWorkers, summaryCache, log)
		dispatcher.Start(ctx)
		invalidator = dispatcher
	}

	syncService := service.NewSyncService(processes, steps, tombstones, invalidator, log)
	queryService := service.NewQueryService(users, processes, steps, tombstones, cache, log)
	authService := service.NewAuthService(users, cfg.JWTSecret, 24*time.Hour)

	e := api.NewRouter(api.Deps{
		Store:     store,
		Redis:     rdb,
		Users:     users,
		Sync:      syncService,
		Query:     queryService,
		Auth:      authService,
		JWTSecret: cfg.JWTSecret,
		Logger:    log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
