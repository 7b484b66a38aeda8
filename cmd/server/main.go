package main

import (
	"context"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/franchisepulse/backend/internal/application/services"
	"github.com/franchisepulse/backend/internal/bootstrap"
	"github.com/franchisepulse/backend/internal/infrastructure/database"
	"github.com/franchisepulse/backend/internal/infrastructure/queue"
	"github.com/franchisepulse/backend/internal/interfaces/rest"
	"github.com/franchisepulse/backend/pkg/config"
	"github.com/franchisepulse/backend/pkg/scoring"
)

func main() {
	config.LoadDotEnv()

	port := config.String("PORT", "3001")

	// Initialize database connection
	conn, err := database.GetInstance()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("✅ Database connection established")

	if err := bootstrap.InitializeSchema(context.Background(), conn.DB()); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	// Queue connection for depth reporting
	redisDB, err := config.Int("REDIS_DB", 0)
	if err != nil {
		log.Fatalf("Invalid REDIS_DB: %v", err)
	}
	q, err := queue.New(context.Background(), queue.Options{
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

	// Scoring engine is exposed so the API reports the active formula.
	scorer, err := scoring.NewEngine(config.String("ENGAGEMENT_FORMULA", scoring.DefaultEngagementFormula))
	if err != nil {
		log.Fatalf("Invalid ENGAGEMENT_FORMULA: %v", err)
	}

	// Initialize service manager
	svcMgr := services.NewServiceManager(conn.DB(), q, scorer)
	log.Println("🔧 Service manager initialized")

	// Create Gin router
	router := gin.Default()
	rest.RegisterRoutes(router, svcMgr)

	log.Println("═══════════════════════════════════════════════════════")
	log.Println("🚀 FranchisePulse API Started Successfully")
	log.Println("═══════════════════════════════════════════════════════")
	log.Printf("📍 Server:       http://localhost:%s", port)
	log.Printf("🔐 Auth API:     http://localhost:%s/api/auth", port)
	log.Printf("📊 Dashboard:    http://localhost:%s/api/dashboard", port)
	log.Printf("💚 Health check: http://localhost:%s/health", port)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}
