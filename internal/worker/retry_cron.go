package worker

// retry_cron.go
// Background goroutine that periodically re-projects SKUs whose read-store
// upsert failed on the write path. Uses the circuit breaker to avoid
// hammering a downed read store.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/XiaBell/Sprint4-Arquisfot/internal/infra"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/repository"
	projsync "github.com/XiaBell/Sprint4-Arquisfot/internal/sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const retryBatchSize = 10

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	Queue       *RetryQueue
	Products    repository.ProductRepository
	Projector   *projsync.Projector
	CB          *infra.CircuitBreaker
	RDB         *redis.Client
	Interval    time.Duration
	MaxAttempts int
}

// StartRetryCron launches a background goroutine that ticks on the configured
// interval and drains a small batch of pending re-projections each tick.
// It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}

	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		log.Info().Dur("interval", cfg.Interval).Msg("sync retry cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("sync retry cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	// If the CB is open, skip entirely — don't hammer a downed read store.
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("sync retry cron: circuit breaker is open, skipping tick")
		return
	}

	for i := 0; i < retryBatchSize; i++ {
		job, ok := cfg.Queue.pop(ctx)
		if !ok {
			return
		}

		// Check CB state before each item — it may have tripped mid-batch.
		if cfg.CB.State() == infra.CBOpen {
			cfg.Queue.push(ctx, job)
			log.Debug().Msg("sync retry cron: circuit breaker opened mid-batch, stopping")
			return
		}

		product, err := cfg.Products.FindBySKU(ctx, job.SKU)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				// Product vanished between failure and retry; nothing to project.
				log.Debug().Str("sku", job.SKU).Msg("sync retry cron: product gone, dropping job")
				continue
			}
			cfg.Queue.push(ctx, job)
			log.Error().Err(err).Str("sku", job.SKU).Msg("sync retry cron: write store lookup failed")
			return
		}

		cbErr := cfg.CB.Execute(func() error {
			return cfg.Projector.Project(ctx, product)
		})
		if cbErr == nil {
			log.Info().Str("sku", job.SKU).Int("attempts", job.Attempts).
				Msg("sync retry cron: drift repaired")
			continue
		}

		job.Attempts++
		if job.Attempts >= cfg.MaxAttempts {
			SendToDLQ(ctx, cfg.RDB, job.SKU,
				fmt.Sprintf("max retries (%d) exceeded: %s", cfg.MaxAttempts, cbErr),
				job.Attempts)
			continue
		}
		cfg.Queue.push(ctx, job)
		log.Warn().Str("sku", job.SKU).Int("attempts", job.Attempts).Err(cbErr).
			Msg("sync retry cron: projection retry failed, re-queued")
	}
}
