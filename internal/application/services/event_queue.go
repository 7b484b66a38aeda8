package services

import (
	"context"

	"github.com/franchisepulse/backend/internal/domain/models"
)

// EventQueue is the queue surface the pipeline services need. Satisfied by
// the Redis-backed queue.
type EventQueue interface {
	PushEvents(ctx context.Context, events []models.MetricEvent) error
	PopBatch(ctx context.Context, n int) ([]string, error)
	PushRecords(ctx context.Context, records []models.EnrichedRecord) error
	ReadRecent(ctx context.Context, max int64) ([]models.EnrichedRecord, error)
	QueueDepth(ctx context.Context) (int64, error)
}
