package bootstrap

import (
	"context"
	"database/sql"
	"log"
	"strings"
)

const trendPointsDDL = `
CREATE TABLE IF NOT EXISTS trend_points (
	id VARCHAR(36) PRIMARY KEY,
	title VARCHAR(255) NOT NULL,
	observed_at BIGINT NOT NULL,
	hype_score DOUBLE NOT NULL DEFAULT 0,
	brand_equity BIGINT NOT NULL DEFAULT 0,
	imdb_rating DOUBLE NULL,
	netflix_hours DOUBLE NOT NULL DEFAULT 0,
	engagement_score DOUBLE NOT NULL DEFAULT 0,
	is_trending TINYINT(1) NOT NULL DEFAULT 0,
	created_date DATETIME NOT NULL,
	INDEX idx_trend_points_title (title),
	INDEX idx_trend_points_observed_at (observed_at)
)`

// InitializeSchema ensures the trend_points table and its indexes exist.
// Index creation inside CREATE TABLE IF NOT EXISTS is idempotent, so startup
// is safe to repeat.
func InitializeSchema(ctx context.Context, db *sql.DB) error {
	log.Println("🔧 Initializing database schema...")

	if _, err := db.ExecContext(ctx, strings.TrimSpace(trendPointsDDL)); err != nil {
		return err
	}

	log.Println("✅ Schema ready")
	return nil
}
