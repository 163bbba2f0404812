package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RetryQueueKey is the Redis list of SKUs awaiting re-projection.
const RetryQueueKey = "sync:retry"

// retryJob is the queue payload: which SKU to re-project and how many times
// it has already been attempted.
type retryJob struct {
	SKU      string `json:"sku"`
	Attempts int    `json:"attempts"`
}

// RetryQueue records failed projections in Redis so the retry cron can
// repair drift without waiting for a full reconciliation.
type RetryQueue struct {
	rdb *redis.Client
}

func NewRetryQueue(rdb *redis.Client) *RetryQueue {
	return &RetryQueue{rdb: rdb}
}

// NotifyFailed enqueues a SKU whose projection just failed. Best-effort: if
// Redis is also down the failure is only logged — the next full
// reconciliation still repairs it.
func (q *RetryQueue) NotifyFailed(ctx context.Context, sku string) {
	q.push(ctx, retryJob{SKU: sku, Attempts: 1})
}

func (q *RetryQueue) push(ctx context.Context, job retryJob) {
	data, err := json.Marshal(job)
	if err != nil {
		log.Error().Err(err).Str("sku", job.SKU).Msg("retry queue: marshal failed")
		return
	}
	pushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := q.rdb.LPush(pushCtx, RetryQueueKey, data).Err(); err != nil {
		log.Error().Err(err).Str("sku", job.SKU).
			Msg("retry queue: enqueue failed; drift remains until full resync")
	}
}

// pop removes one job from the queue. Returns false when the queue is empty.
func (q *RetryQueue) pop(ctx context.Context) (retryJob, bool) {
	raw, err := q.rdb.RPop(ctx, RetryQueueKey).Result()
	if err != nil {
		if err != redis.Nil {
			log.Error().Err(err).Msg("retry queue: pop failed")
		}
		return retryJob{}, false
	}
	var job retryJob
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Err(err).Str("raw", raw).Msg("retry queue: malformed job dropped")
		return retryJob{}, false
	}
	return job, true
}

// Length returns the number of pending retries for monitoring.
func (q *RetryQueue) Length(ctx context.Context) (int64, error) {
	return q.rdb.LLen(ctx, RetryQueueKey).Result()
}
