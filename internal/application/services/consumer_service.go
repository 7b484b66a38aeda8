package services

import (
	"context"
	"log"
	"math"
	"sync/atomic"
	"time"

	"github.com/franchisepulse/backend/internal/domain/models"
	"github.com/franchisepulse/backend/internal/infrastructure/persistence"
	"github.com/franchisepulse/backend/pkg/scoring"
)

// DefaultPopBatch is how many queue elements one consumer iteration drains.
const DefaultPopBatch = 200

// idleSleep is the pause between polls when the queue is empty.
const idleSleep = time.Second

// ConsumerService drains the event queue, enriches each event with an
// engagement score, and fans the result out to the read-model list, MySQL,
// and the NDJSON snapshot.
type ConsumerService struct {
	queue    EventQueue
	repo     *persistence.TrendPointRepository
	scorer   *scoring.Engine
	snapshot *SnapshotService
	popBatch int

	processed atomic.Int64
}

// NewConsumerService creates a new ConsumerService. repo may be nil when MySQL
// persistence is disabled; snapshot may be nil to disable snapshots.
func NewConsumerService(q EventQueue, repo *persistence.TrendPointRepository, scorer *scoring.Engine, snapshot *SnapshotService, popBatch int) *ConsumerService {
	if popBatch <= 0 {
		popBatch = DefaultPopBatch
	}
	return &ConsumerService{
		queue:    q,
		repo:     repo,
		scorer:   scorer,
		snapshot: snapshot,
		popBatch: popBatch,
	}
}

// Run loops until ctx is cancelled, then flushes the snapshot buffer.
func (s *ConsumerService) Run(ctx context.Context) error {
	log.Printf("🚀 Consumer started (pop batch %d)", s.popBatch)

	for {
		select {
		case <-ctx.Done():
			log.Printf("🛑 Consumer stopping after %d records", s.processed.Load())
			if s.snapshot != nil {
				s.snapshot.Flush()
			}
			return ctx.Err()
		default:
		}

		items, err := s.queue.PopBatch(ctx, s.popBatch)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			log.Printf("⚠️ Queue pop failed: %v", err)
			sleepCtx(ctx, idleSleep)
			continue
		}
		if len(items) == 0 {
			sleepCtx(ctx, idleSleep)
			continue
		}

		s.processBatch(ctx, items)
	}
}

func (s *ConsumerService) processBatch(ctx context.Context, items []string) {
	records := make([]models.EnrichedRecord, 0, len(items))
	for _, raw := range items {
		event, err := models.DecodeMetricEvent([]byte(raw))
		if err != nil {
			log.Printf("⚠️ Skipping unparseable event: %v", err)
			continue
		}
		records = append(records, s.Enrich(event))
	}
	if len(records) == 0 {
		return
	}

	if err := s.queue.PushRecords(ctx, records); err != nil {
		log.Printf("⚠️ Read-model push failed: %v", err)
	}

	if s.repo != nil {
		if err := s.repo.InsertBatch(ctx, records); err != nil {
			log.Printf("⚠️ MySQL insert failed: %v", err)
		}
	}

	if s.snapshot != nil {
		s.snapshot.Add(records...)
	}

	before := s.processed.Load()
	after := s.processed.Add(int64(len(records)))
	if before/1000 != after/1000 {
		log.Printf("📈 Total processed: %d", after)
	}
}

// Enrich normalizes one event and computes its engagement score. Missing
// timestamps become now, missing titles become "Unknown".
func (s *ConsumerService) Enrich(event models.MetricEvent) models.EnrichedRecord {
	ts := event.Timestamp
	if ts == 0 {
		ts = time.Now().Unix()
	}
	title := event.Title
	if title == "" {
		title = "Unknown"
	}

	engagement, err := s.scorer.Engagement(scoring.Inputs{
		HypeScore:    event.Metrics.HypeScore,
		IMDBRating:   event.Metrics.IMDBRating,
		BrandEquity:  event.Metrics.BrandEquity,
		NetflixHours: event.Metrics.NetflixHours,
		IsTrending:   event.Metrics.IsTrending,
	})
	if err != nil {
		log.Printf("⚠️ Engagement formula failed for %q: %v", title, err)
		engagement = 0
	}

	return models.EnrichedRecord{
		Timestamp:       ts,
		Title:           title,
		HypeScore:       roundTo(event.Metrics.HypeScore, 3),
		BrandEquity:     event.Metrics.BrandEquity,
		IMDBRating:      event.Metrics.IMDBRating,
		NetflixHours:    event.Metrics.NetflixHours,
		EngagementScore: roundTo(engagement, 4),
		IsTrending:      event.Metrics.IsTrending,
	}
}

// Processed reports how many records this consumer has handled.
func (s *ConsumerService) Processed() int64 {
	return s.processed.Load()
}

func roundTo(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}

func sleepCtx(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
