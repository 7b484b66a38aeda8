package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/franchisepulse/backend/internal/domain/models"
)

// Default list keys, matching the wire contract the dashboard reads.
const (
	DefaultQueueKey     = "franchise_queue"
	DefaultReadModelKey = "franchise_data"
)

// Options configures the Redis connection and list keys.
type Options struct {
	Addr         string
	Username     string
	Password     string
	DB           int
	QueueKey     string
	ReadModelKey string
}

// Queue is the Redis-backed event queue plus the enriched read-model list.
// The producer only pushes to the queue; the consumer pops the queue and
// pushes the read model; the API reads the read model.
type Queue struct {
	client       *redis.Client
	queueKey     string
	readModelKey string
}

// New connects to Redis and verifies the connection with a ping.
func New(ctx context.Context, opts Options) (*Queue, error) {
	if opts.QueueKey == "" {
		opts.QueueKey = DefaultQueueKey
	}
	if opts.ReadModelKey == "" {
		opts.ReadModelKey = DefaultReadModelKey
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Username: opts.Username,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Queue{
		client:       client,
		queueKey:     opts.QueueKey,
		readModelKey: opts.ReadModelKey,
	}, nil
}

// NewWithClient wraps an existing client; used by tests with a miniredis or
// test-server client.
func NewWithClient(client *redis.Client, queueKey, readModelKey string) *Queue {
	if queueKey == "" {
		queueKey = DefaultQueueKey
	}
	if readModelKey == "" {
		readModelKey = DefaultReadModelKey
	}
	return &Queue{client: client, queueKey: queueKey, readModelKey: readModelKey}
}

// PushEvents RPUSHes a batch of events in one pipeline round trip.
func (q *Queue) PushEvents(ctx context.Context, events []models.MetricEvent) error {
	if len(events) == 0 {
		return nil
	}

	pipe := q.client.Pipeline()
	for _, event := range events {
		payload, err := event.Encode()
		if err != nil {
			return fmt.Errorf("encode event for %q: %w", event.Title, err)
		}
		pipe.RPush(ctx, q.queueKey, payload)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// PopBatch LPOPs up to n raw elements. Returns fewer (possibly zero) elements
// when the queue drains; an empty queue is not an error.
func (q *Queue) PopBatch(ctx context.Context, n int) ([]string, error) {
	items := make([]string, 0, n)
	for i := 0; i < n; i++ {
		raw, err := q.client.LPop(ctx, q.queueKey).Result()
		if err == redis.Nil {
			break
		}
		if err != nil {
			return items, err
		}
		items = append(items, raw)
	}
	return items, nil
}

// PushRecords RPUSHes enriched records onto the read-model list in one pipeline.
func (q *Queue) PushRecords(ctx context.Context, records []models.EnrichedRecord) error {
	if len(records) == 0 {
		return nil
	}

	pipe := q.client.Pipeline()
	for _, record := range records {
		payload, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("encode record for %q: %w", record.Title, err)
		}
		pipe.RPush(ctx, q.readModelKey, payload)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// ReadRecent returns the last max read-model records, oldest first. Elements
// that no longer parse are skipped.
func (q *Queue) ReadRecent(ctx context.Context, max int64) ([]models.EnrichedRecord, error) {
	total, err := q.client.LLen(ctx, q.readModelKey).Result()
	if err != nil {
		return nil, err
	}

	start := total - max
	if start < 0 {
		start = 0
	}

	raw, err := q.client.LRange(ctx, q.readModelKey, start, total).Result()
	if err != nil {
		return nil, err
	}

	records := make([]models.EnrichedRecord, 0, len(raw))
	for _, item := range raw {
		var record models.EnrichedRecord
		if err := json.Unmarshal([]byte(item), &record); err != nil {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// QueueDepth returns the number of pending queue elements.
func (q *Queue) QueueDepth(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.queueKey).Result()
}

// Close releases the Redis client.
func (q *Queue) Close() error {
	return q.client.Close()
}
