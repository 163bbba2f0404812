package worker

// dlq.go — Dead Letter Queue
// Projection retries that exceed the maximum attempt count are moved here
// for manual inspection. The next full reconciliation also repairs them, so
// the DLQ is diagnostic, not load-bearing.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const DLQKey = "dlq:" + RetryQueueKey

// DLQEntry wraps a permanently failed projection with metadata for debugging.
type DLQEntry struct {
	SKU      string `json:"sku"`
	Reason   string `json:"reason"`
	FailedAt string `json:"failed_at"` // ISO 8601
	Attempts int    `json:"attempts"`
}

// SendToDLQ pushes a permanently failed projection to the dead letter queue.
func SendToDLQ(ctx context.Context, rdb *redis.Client, sku, reason string, attempts int) {
	entry := DLQEntry{
		SKU:      sku,
		Reason:   reason,
		FailedAt: time.Now().UTC().Format(time.RFC3339),
		Attempts: attempts,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("sku", sku).Msg("dlq: failed to marshal entry")
		return
	}

	if err := rdb.LPush(ctx, DLQKey, data).Err(); err != nil {
		log.Error().Err(err).Str("sku", sku).Msg("dlq: failed to push entry")
		return
	}

	log.Warn().
		Str("sku", sku).
		Str("reason", reason).
		Int("attempts", attempts).
		Msg("dlq: projection moved to dead letter queue")
}

// DLQLength returns the number of entries in the DLQ for monitoring.
func DLQLength(ctx context.Context, rdb *redis.Client) (int64, error) {
	return rdb.LLen(ctx, DLQKey).Result()
}
