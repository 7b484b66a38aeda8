package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/franchisepulse/backend/internal/domain/models"
	"github.com/franchisepulse/backend/pkg/utils"
)

// TrendPointRepository persists and aggregates enriched trend observations.
type TrendPointRepository struct {
	db *sql.DB
}

// NewTrendPointRepository creates a new TrendPointRepository
func NewTrendPointRepository(db *sql.DB) *TrendPointRepository {
	return &TrendPointRepository{db: db}
}

// InsertBatch writes a batch of enriched records in one multi-row insert.
// Each row gets a fresh uuid id.
func (r *TrendPointRepository) InsertBatch(ctx context.Context, records []models.EnrichedRecord) error {
	if len(records) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO `trend_points` " +
		"(`id`, `title`, `observed_at`, `hype_score`, `brand_equity`, `imdb_rating`, " +
		"`netflix_hours`, `engagement_score`, `is_trending`, `created_date`) VALUES ")

	args := make([]interface{}, 0, len(records)*10)
	now := time.Now()
	for i, record := range records {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")

		var rating interface{}
		if record.IMDBRating != nil {
			rating = *record.IMDBRating
		}
		args = append(args,
			utils.GenerateID(),
			record.Title,
			record.Timestamp,
			record.HypeScore,
			record.BrandEquity,
			rating,
			record.NetflixHours,
			record.EngagementScore,
			record.IsTrending,
			now,
		)
	}

	if _, err := r.db.ExecContext(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("insert trend points: %w", err)
	}
	return nil
}

// LeaderboardEntry is one row of the per-title aggregate ranking.
type LeaderboardEntry struct {
	Title          string  `json:"title"`
	AvgHype        float64 `json:"avg_hype"`
	AvgEngagement  float64 `json:"avg_engagement"`
	MaxBrandEquity int64   `json:"max_brand_equity"`
	Points         int64   `json:"points"`
}

// Leaderboard ranks titles by average hype, highest first.
func (r *TrendPointRepository) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	query := "SELECT `title`, AVG(`hype_score`), AVG(`engagement_score`), MAX(`brand_equity`), COUNT(*) " +
		"FROM `trend_points` GROUP BY `title` ORDER BY AVG(`hype_score`) DESC LIMIT ?"

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var entry LeaderboardEntry
		if err := rows.Scan(&entry.Title, &entry.AvgHype, &entry.AvgEngagement, &entry.MaxBrandEquity, &entry.Points); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Series returns the hype samples for the given titles inside [from, to],
// ordered by time. Titles map to their own series; titles with no samples map
// to an empty slice.
func (r *TrendPointRepository) Series(ctx context.Context, titles []string, from, to int64) (map[string][]models.SeriesPoint, error) {
	result := make(map[string][]models.SeriesPoint, len(titles))
	if len(titles) == 0 {
		return result, nil
	}
	for _, title := range titles {
		result[title] = []models.SeriesPoint{}
	}

	placeholders := strings.Repeat("?, ", len(titles))
	placeholders = placeholders[:len(placeholders)-2]
	query := fmt.Sprintf("SELECT `title`, `observed_at`, `hype_score` FROM `trend_points` "+
		"WHERE `title` IN (%s) AND `observed_at` BETWEEN ? AND ? ORDER BY `observed_at` ASC", placeholders)

	args := make([]interface{}, 0, len(titles)+2)
	for _, title := range titles {
		args = append(args, title)
	}
	args = append(args, from, to)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var title string
		var point models.SeriesPoint
		if err := rows.Scan(&title, &point.Timestamp, &point.Value); err != nil {
			return nil, err
		}
		result[title] = append(result[title], point)
	}
	return result, rows.Err()
}

// TitleStats aggregates one title's full history. sql.ErrNoRows maps to a
// zero-point stats value, not an error.
func (r *TrendPointRepository) TitleStats(ctx context.Context, title string) (models.TitleStats, error) {
	stats := models.TitleStats{Title: title}

	query := "SELECT MIN(`observed_at`), MAX(`observed_at`), MAX(`hype_score`), " +
		"AVG(`hype_score`), STDDEV_POP(`hype_score`), MIN(`hype_score`), " +
		"MAX(`brand_equity`), COUNT(*) FROM `trend_points` WHERE `title` = ?"

	var startTs, endTs sql.NullInt64
	var peakHype, avgHype, stddevHype, minHype sql.NullFloat64
	var maxBrandEquity sql.NullInt64
	err := r.db.QueryRowContext(ctx, query, title).Scan(
		&startTs, &endTs, &peakHype, &avgHype, &stddevHype, &minHype, &maxBrandEquity, &stats.Points)
	if err != nil {
		return stats, err
	}
	if stats.Points == 0 {
		return stats, nil
	}

	stats.StartTs = startTs.Int64
	stats.EndTs = endTs.Int64
	stats.PeakHype = peakHype.Float64
	stats.AvgHype = avgHype.Float64
	stats.StdDevHype = stddevHype.Float64
	stats.MinHype = minHype.Float64
	stats.MaxHype = peakHype.Float64
	stats.MaxBrandEquity = maxBrandEquity.Int64

	// Earliest timestamp at which the peak was reached.
	peakQuery := "SELECT MIN(`observed_at`) FROM `trend_points` WHERE `title` = ? AND `hype_score` = ?"
	var peakTs sql.NullInt64
	if err := r.db.QueryRowContext(ctx, peakQuery, title, stats.PeakHype).Scan(&peakTs); err != nil {
		return stats, err
	}
	stats.PeakTs = peakTs.Int64
	return stats, nil
}

// DistinctTitles lists every tracked title alphabetically.
func (r *TrendPointRepository) DistinctTitles(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT DISTINCT `title` FROM `trend_points` ORDER BY `title` ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, err
		}
		titles = append(titles, title)
	}
	return titles, rows.Err()
}

// TotalPoints counts all stored observations.
func (r *TrendPointRepository) TotalPoints(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM `trend_points`").Scan(&total)
	return total, err
}

// LastObservedAt returns the newest observation timestamp, or 0 when the
// table is empty.
func (r *TrendPointRepository) LastObservedAt(ctx context.Context) (int64, error) {
	var last sql.NullInt64
	err := r.db.QueryRowContext(ctx, "SELECT MAX(`observed_at`) FROM `trend_points`").Scan(&last)
	if err != nil {
		return 0, err
	}
	return last.Int64, nil
}
