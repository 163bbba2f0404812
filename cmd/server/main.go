package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/XiaBell/Sprint4-Arquisfot/internal/config"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/infra"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/readstore"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/repository"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/router"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/service"
	projsync "github.com/XiaBell/Sprint4-Arquisfot/internal/sync"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres (write store)")
	}

	mongoClient, err := infra.NewMongo(cfg.MongoURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb (read store)")
	}
	store := readstore.NewMongoStore(mongoClient, cfg.MongoDatabase, cfg.MongoCollection)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Projection retry pipeline (optional): failed upserts are queued in
	// Redis and re-attempted by a background cron behind a circuit breaker.
	// Without Redis, failures are only logged and a full resync repairs them.
	var notifier service.SyncNotifier
	if cfg.RedisURL != "" {
		rdb, err := infra.NewRedis(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		queue := worker.NewRetryQueue(rdb)
		notifier = queue

		categoryRepo := repository.NewCategoryRepository(db)
		productRepo := repository.NewProductRepository(db)
		worker.StartRetryCron(ctx, worker.RetryCronConfig{
			Queue:       queue,
			Products:    productRepo,
			Projector:   projsync.NewProjector(store, categoryRepo),
			CB:          infra.NewCircuitBreaker(infra.DefaultCBConfig()),
			RDB:         rdb,
			Interval:    time.Duration(cfg.SyncRetryIntervalSec) * time.Second,
			MaxAttempts: cfg.SyncMaxAttempts,
		})
	}

	r := router.New(cfg, db, store, notifier)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("inventory service listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("mongo disconnect")
	}
	log.Info().Msg("server exited")
}
