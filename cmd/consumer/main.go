package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/franchisepulse/backend/internal/application/services"
	"github.com/franchisepulse/backend/internal/bootstrap"
	"github.com/franchisepulse/backend/internal/infrastructure/database"
	"github.com/franchisepulse/backend/internal/infrastructure/persistence"
	"github.com/franchisepulse/backend/internal/infrastructure/queue"
	"github.com/franchisepulse/backend/pkg/config"
	"github.com/franchisepulse/backend/pkg/scoring"
)

func main() {
	config.LoadDotEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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

	// MySQL persistence is optional: without it the consumer still feeds the
	// read-model list and snapshots.
	var repo *persistence.TrendPointRepository
	persistEnabled, err := config.Bool("MYSQL_ENABLED", true)
	if err != nil {
		log.Fatalf("Invalid MYSQL_ENABLED: %v", err)
	}
	if persistEnabled {
		conn, err := database.GetInstance()
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer conn.Close()
		log.Println("✅ Database connection established")

		if err := bootstrap.InitializeSchema(ctx, conn.DB()); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
		repo = persistence.NewTrendPointRepository(conn.DB())
	} else {
		log.Println("ℹ️ MySQL persistence disabled")
	}

	// Scoring engine, formula overridable from env.
	formula := config.String("ENGAGEMENT_FORMULA", scoring.DefaultEngagementFormula)
	scorer, err := scoring.NewEngine(formula)
	if err != nil {
		log.Fatalf("Invalid ENGAGEMENT_FORMULA: %v", err)
	}
	log.Printf("🧮 Engagement formula: %s", scorer.Formula())

	// Snapshot sink
	snapshotEvery, err := config.Int("SNAPSHOT_EVERY", services.DefaultSnapshotEvery)
	if err != nil {
		log.Fatalf("Invalid SNAPSHOT_EVERY: %v", err)
	}
	snapshot := services.NewSnapshotService(
		config.String("SNAPSHOT_FILE", "/data/franchise_data_snapshot.ndjson"),
		snapshotEvery,
	)

	popBatch, err := config.Int("POP_BATCH", services.DefaultPopBatch)
	if err != nil {
		log.Fatalf("Invalid POP_BATCH: %v", err)
	}

	consumer := services.NewConsumerService(q, repo, scorer, snapshot, popBatch)
	if err := consumer.Run(ctx); err != nil && err != context.Canceled {
		log.Fatalf("Consumer failed: %v", err)
	}
	log.Println("Consumer exiting")
}
