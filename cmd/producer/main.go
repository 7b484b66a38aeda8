package main

import (
	"context"
	"log"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/franchisepulse/backend/internal/application/services"
	"github.com/franchisepulse/backend/internal/infrastructure/catalog"
	"github.com/franchisepulse/backend/internal/infrastructure/imdb"
	"github.com/franchisepulse/backend/internal/infrastructure/queue"
	"github.com/franchisepulse/backend/internal/infrastructure/trends"
	"github.com/franchisepulse/backend/pkg/config"
)

func main() {
	config.LoadDotEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dataDir := config.String("DATA_DIR", "/data")

	// Queue connection
	redisDB, err := config.Int("REDIS_DB", 0)
	if err != nil {
		log.Fatalf("Invalid REDIS_DB: %v", err)
	}
	q, err := queue.New(ctx, queue.Options{
		Addr:         config.String("REDIS_HOST", "redis") + ":" + config.String("REDIS_PORT", "6379"),
		Password:     config.String("REDIS_PASSWORD", ""),
		DB:           redisDB,
		QueueKey:     config.String("REDIS_QUEUE", queue.DefaultQueueKey),
		ReadModelKey: config.String("REDIS_DATA_LIST", queue.DefaultReadModelKey),
	})
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer q.Close()
	log.Println("✅ Redis connection established")

	// Tracked shows
	numShows, err := config.Int("NUM_SHOWS", catalog.DefaultNumShows)
	if err != nil {
		log.Fatalf("Invalid NUM_SHOWS: %v", err)
	}
	shows := catalog.Load(catalog.Options{
		ShowsListPath:    config.String("SHOWS_LIST_FILE", filepath.Join(dataDir, "shows_list.txt")),
		NetflixTitlesCSV: config.String("NETFLIX_FILE", filepath.Join(dataDir, "netflix_titles.csv")),
		NumShows:         numShows,
	})

	// IMDb metadata
	meta := imdb.Load(
		config.String("IMDB_BASICS_FILE", filepath.Join(dataDir, "title.basics.tsv.gz")),
		config.String("IMDB_RATINGS_FILE", filepath.Join(dataDir, "title.ratings.tsv.gz")),
	)

	// Trends fetcher: live, mock, or live-with-mock-fallback.
	fetcher := buildFetcher()

	// Producer config
	workers, err := config.Int("MAX_WORKERS", services.DefaultWorkerCount)
	if err != nil {
		log.Fatalf("Invalid MAX_WORKERS: %v", err)
	}
	rateLimit, err := config.Duration("RATE_LIMIT_DELAY", services.DefaultRateLimit)
	if err != nil {
		log.Fatalf("Invalid RATE_LIMIT_DELAY: %v", err)
	}

	producer := services.NewProducerService(q, fetcher, meta, shows, services.ProducerConfig{
		Mode:           config.String("PRODUCER_MODE", services.ModeBackfill),
		CronSpec:       config.String("PRODUCER_SCHEDULE", services.DefaultCronSpec),
		Workers:        workers,
		RateLimitDelay: rateLimit,
	})

	if err := producer.Run(ctx); err != nil && err != context.Canceled {
		log.Fatalf("Producer failed: %v", err)
	}
	log.Println("Producer exiting")
}

func buildFetcher() trends.Fetcher {
	mode := config.String("TRENDS_FETCHER", "auto")
	switch mode {
	case "mock":
		log.Println("🧪 Using mock trends fetcher")
		return trends.NewMockFetcher()
	case "live":
		return trends.NewClient()
	default:
		return trends.NewFallbackFetcher(trends.NewClient(), trends.NewMockFetcher())
	}
}
