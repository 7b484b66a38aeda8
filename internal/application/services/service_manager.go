package services

import (
	"database/sql"

	"github.com/franchisepulse/backend/internal/infrastructure/persistence"
	"github.com/franchisepulse/backend/pkg/scoring"
)

// ServiceManager wires the API-side services with dependency injection.
type ServiceManager struct {
	db *sql.DB

	Queue     EventQueue
	Repo      *persistence.TrendPointRepository
	Analytics *AnalyticsService
	Scoring   *scoring.Engine
}

// NewServiceManager creates a service manager with all dependencies wired.
func NewServiceManager(db *sql.DB, q EventQueue, scorer *scoring.Engine) *ServiceManager {
	sm := &ServiceManager{
		db:      db,
		Queue:   q,
		Scoring: scorer,
	}

	sm.Repo = persistence.NewTrendPointRepository(db)

	guard := NewSQLGuard("trend_points")
	sm.Analytics = NewAnalyticsService(sm.Repo, guard, db)

	return sm
}
