package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/franchisepulse/backend/internal/domain/models"
	"github.com/franchisepulse/backend/internal/infrastructure/imdb"
	"github.com/franchisepulse/backend/internal/infrastructure/trends"
)

// Producer modes.
const (
	ModeBackfill  = "backfill"
	ModeStreaming = "streaming"
)

// Streaming defaults.
const (
	DefaultCronSpec    = "@every 4h"
	DefaultWorkerCount = 6
	DefaultRateLimit   = 12 * time.Second
)

// ProducerConfig tunes both producer modes.
type ProducerConfig struct {
	Mode           string
	CronSpec       string
	Workers        int
	RateLimitDelay time.Duration
}

// ProducerService fetches interest data for the tracked shows and pushes
// metric events onto the queue. Backfill walks shows one by one through the
// full history; streaming polls recent interest on a cron schedule.
type ProducerService struct {
	queue   EventQueue
	fetcher trends.Fetcher
	meta    imdb.Metadata
	shows   []string
	cfg     ProducerConfig

	// lastKnown holds the last successfully fetched score per show, used
	// when a streaming batch fails.
	lastKnown map[string]float64
	mu        sync.Mutex

	// cycleRunning is the execution lock: a tick is skipped when the
	// previous cycle has not finished.
	cycleRunning bool
}

// NewProducerService creates a new ProducerService
func NewProducerService(q EventQueue, fetcher trends.Fetcher, meta imdb.Metadata, shows []string, cfg ProducerConfig) *ProducerService {
	if cfg.CronSpec == "" {
		cfg.CronSpec = DefaultCronSpec
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkerCount
	}
	if cfg.RateLimitDelay <= 0 {
		cfg.RateLimitDelay = DefaultRateLimit
	}
	return &ProducerService{
		queue:     q,
		fetcher:   fetcher,
		meta:      meta,
		shows:     shows,
		cfg:       cfg,
		lastKnown: map[string]float64{},
	}
}

// Run dispatches to the configured mode.
func (s *ProducerService) Run(ctx context.Context) error {
	switch s.cfg.Mode {
	case ModeStreaming:
		return s.runStreaming(ctx)
	default:
		return s.runBackfill(ctx)
	}
}

// runBackfill walks the show list sequentially, pushing one event per weekly
// history point, then exits.
func (s *ProducerService) runBackfill(ctx context.Context) error {
	log.Printf("🚀 Starting historical backfill for %d shows", len(s.shows))
	log.Printf("🐌 Sleeping %s between shows to respect upstream rate limits", s.cfg.RateLimitDelay)

	succeeded, failed := 0, 0
	for i, show := range s.shows {
		if ctx.Err() != nil {
			log.Printf("🛑 Backfill interrupted at show %d/%d", i, len(s.shows))
			return ctx.Err()
		}

		if err := s.backfillShow(ctx, show); err != nil {
			log.Printf("⚠️ [%d/%d] Backfill failed for %q: %v", i+1, len(s.shows), show, err)
			failed++
		} else {
			succeeded++
		}

		if i < len(s.shows)-1 {
			sleepCtx(ctx, s.cfg.RateLimitDelay)
		}
	}

	depth, err := s.queue.QueueDepth(ctx)
	if err != nil {
		log.Printf("⚠️ Could not read queue depth: %v", err)
	}
	log.Printf("✅ Backfill complete: %d succeeded, %d failed, queue depth %d", succeeded, failed, depth)
	return nil
}

func (s *ProducerService) backfillShow(ctx context.Context, show string) error {
	series, err := s.fetcher.FetchInterestOverTime(ctx, []string{show}, trends.TimeframeBackfill)
	if err != nil {
		return err
	}

	points := series[show]
	if len(points) == 0 {
		return fmt.Errorf("no history returned for %q", show)
	}

	events := make([]models.MetricEvent, 0, len(points))
	for _, point := range points {
		event := s.buildEvent(show, point.Timestamp, point.Value, false)
		// Historical points carry no viewing-hours estimate.
		event.Metrics.NetflixHours = 0
		events = append(events, event)
	}
	if err := s.queue.PushEvents(ctx, events); err != nil {
		return err
	}

	log.Printf("   ...pushed %d history points for %q", len(events), show)
	return nil
}

// runStreaming runs fetch cycles on the cron schedule until ctx is cancelled.
// The first cycle runs immediately.
func (s *ProducerService) runStreaming(ctx context.Context) error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	schedule, err := parser.Parse(s.cfg.CronSpec)
	if err != nil {
		return err
	}

	log.Printf("🚀 Streaming producer started (schedule %q, %d workers)", s.cfg.CronSpec, s.cfg.Workers)
	s.runCycle(ctx)

	for {
		next := schedule.Next(time.Now())
		select {
		case <-ctx.Done():
			log.Println("🛑 Streaming producer stopped")
			return ctx.Err()
		case <-time.After(time.Until(next)):
			s.runCycle(ctx)
		}
	}
}

// runCycle fetches current interest for every tracked show through a bounded
// worker pool. Overlapping cycles are skipped.
func (s *ProducerService) runCycle(ctx context.Context) {
	s.mu.Lock()
	if s.cycleRunning {
		s.mu.Unlock()
		log.Println("⏭️ Previous cycle still running, skipping this tick")
		return
	}
	s.cycleRunning = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.cycleRunning = false
		s.mu.Unlock()
	}()

	started := time.Now()
	trending := s.fetchTrendingSet(ctx)

	batches := chunkShows(s.shows, trends.MaxBatchKeywords)
	jobs := make(chan []string)
	var wg sync.WaitGroup

	for i := 0; i < s.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for batch := range jobs {
				s.processBatch(ctx, batch, trending)
			}
		}()
	}

	for _, batch := range batches {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return
		case jobs <- batch:
		}
	}
	close(jobs)
	wg.Wait()

	log.Printf("✅ Cycle complete: %d shows in %d batches (%s)", len(s.shows), len(batches), time.Since(started).Round(time.Millisecond))
}

func (s *ProducerService) processBatch(ctx context.Context, batch []string, trending map[string]bool) {
	series, err := s.fetcher.FetchInterestOverTime(ctx, batch, trends.TimeframeStreaming)

	now := time.Now().Unix()
	events := make([]models.MetricEvent, 0, len(batch))
	for _, show := range batch {
		var score float64
		if err == nil {
			score = trends.LatestValue(series[show])
			s.rememberScore(show, score)
		} else {
			score = s.recallScore(show)
		}
		events = append(events, s.buildEvent(show, now, score, trending[show]))
	}
	if err != nil {
		log.Printf("⚠️ Batch fetch failed (%v), using last-known values for %d shows", err, len(batch))
	}

	if pushErr := s.queue.PushEvents(ctx, events); pushErr != nil {
		log.Printf("⚠️ Queue push failed for batch starting %q: %v", batch[0], pushErr)
	}

	if err != nil {
		// Back off before this worker picks up another batch.
		sleepCtx(ctx, s.cfg.RateLimitDelay)
	}
}

// buildEvent attaches IMDb metadata to one observation.
func (s *ProducerService) buildEvent(show string, ts int64, score float64, isTrending bool) models.MetricEvent {
	metrics := models.EventMetrics{
		HypeScore:  score,
		CostBasis:  1,
		IsTrending: isTrending,
	}
	if meta, ok := s.meta.Lookup(show); ok {
		rating := meta.AverageRating
		metrics.IMDBRating = &rating
		metrics.BrandEquity = meta.NumVotes
		metrics.NetflixHours = imdb.EstimateHours(meta)
	}
	return models.MetricEvent{
		Timestamp: ts,
		Title:     show,
		Metrics:   metrics,
	}
}

func (s *ProducerService) fetchTrendingSet(ctx context.Context) map[string]bool {
	titles, err := s.fetcher.FetchRealtimeTrending(ctx)
	if err != nil {
		log.Printf("ℹ️ Realtime trending unavailable: %v", err)
		return nil
	}

	trending := make(map[string]bool, len(titles))
	for _, title := range titles {
		trending[title] = true
	}
	return trending
}

func (s *ProducerService) rememberScore(show string, score float64) {
	s.mu.Lock()
	s.lastKnown[show] = score
	s.mu.Unlock()
}

func (s *ProducerService) recallScore(show string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastKnown[show]
}

func chunkShows(shows []string, size int) [][]string {
	var batches [][]string
	for start := 0; start < len(shows); start += size {
		end := start + size
		if end > len(shows) {
			end = len(shows)
		}
		batches = append(batches, shows[start:end])
	}
	return batches
}
