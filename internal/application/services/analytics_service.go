package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/franchisepulse/backend/internal/domain/models"
	"github.com/franchisepulse/backend/internal/infrastructure/persistence"
)

// AnalyticsService computes the dashboard aggregates over stored trend points.
type AnalyticsService struct {
	repo  *persistence.TrendPointRepository
	guard *SQLGuard
	db    *sql.DB
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(repo *persistence.TrendPointRepository, guard *SQLGuard, db *sql.DB) *AnalyticsService {
	return &AnalyticsService{repo: repo, guard: guard, db: db}
}

// KPIs summarizes the state of the whole dataset.
type KPIs struct {
	TotalPoints       int64  `json:"total_points"`
	TrackedShows      int    `json:"tracked_shows"`
	LastUpdate        int64  `json:"last_update"`
	DominantLifecycle string `json:"dominant_lifecycle"`
}

// KPIs returns headline numbers for the dashboard.
func (s *AnalyticsService) KPIs(ctx context.Context) (KPIs, error) {
	var kpis KPIs

	total, err := s.repo.TotalPoints(ctx)
	if err != nil {
		return kpis, err
	}
	kpis.TotalPoints = total

	titles, err := s.repo.DistinctTitles(ctx)
	if err != nil {
		return kpis, err
	}
	kpis.TrackedShows = len(titles)

	last, err := s.repo.LastObservedAt(ctx)
	if err != nil {
		return kpis, err
	}
	kpis.LastUpdate = last

	kpis.DominantLifecycle = models.LifecycleNA
	if len(titles) > 0 {
		counts := map[string]int{}
		for _, title := range titles {
			stats, err := s.repo.TitleStats(ctx, title)
			if err != nil {
				return kpis, err
			}
			counts[ClassifyLifecycle(stats)]++
		}
		kpis.DominantLifecycle = dominantClass(counts)
	}
	return kpis, nil
}

// ClassifyLifecycle maps a title's history shape to a lifecycle class based
// on where its peak sits relative to the tracked window.
func ClassifyLifecycle(stats models.TitleStats) string {
	if stats.Points == 0 || stats.PeakHype == 0 {
		return models.LifecycleNA
	}
	duration := stats.EndTs - stats.StartTs
	if duration == 0 {
		return models.LifecycleInstant
	}

	peakPos := float64(stats.PeakTs-stats.StartTs) / float64(duration)
	switch {
	case peakPos < 1.0/3.0:
		return models.LifecycleEarlyPeaker
	case peakPos < 2.0/3.0:
		return models.LifecycleMidPeaker
	default:
		return models.LifecycleLatePeaker
	}
}

// LifecycleEntry pairs a title with its classification and backing stats.
type LifecycleEntry struct {
	Title     string  `json:"title"`
	Lifecycle string  `json:"lifecycle"`
	PeakHype  float64 `json:"peak_hype"`
	PeakTs    int64   `json:"peak_ts"`
	StartTs   int64   `json:"start_ts"`
	EndTs     int64   `json:"end_ts"`
}

// Lifecycle classifies every tracked title.
func (s *AnalyticsService) Lifecycle(ctx context.Context) ([]LifecycleEntry, error) {
	titles, err := s.repo.DistinctTitles(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]LifecycleEntry, 0, len(titles))
	for _, title := range titles {
		stats, err := s.repo.TitleStats(ctx, title)
		if err != nil {
			return nil, err
		}
		entries = append(entries, LifecycleEntry{
			Title:     title,
			Lifecycle: ClassifyLifecycle(stats),
			PeakHype:  stats.PeakHype,
			PeakTs:    stats.PeakTs,
			StartTs:   stats.StartTs,
			EndTs:     stats.EndTs,
		})
	}
	return entries, nil
}

// LeaderboardEntry extends the repository ranking with the lifecycle class.
type LeaderboardEntry struct {
	persistence.LeaderboardEntry
	Lifecycle string `json:"lifecycle"`
}

// Leaderboard ranks titles by average hype and annotates each with its
// lifecycle class.
func (s *AnalyticsService) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	rows, err := s.repo.Leaderboard(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		stats, err := s.repo.TitleStats(ctx, row.Title)
		if err != nil {
			return nil, err
		}
		entries = append(entries, LeaderboardEntry{
			LeaderboardEntry: row,
			Lifecycle:        ClassifyLifecycle(stats),
		})
	}
	return entries, nil
}

// Titles lists every title with stored observations.
func (s *AnalyticsService) Titles(ctx context.Context) ([]string, error) {
	return s.repo.DistinctTitles(ctx)
}

// VolatilityEntry carries the box-plot source numbers for one title.
type VolatilityEntry struct {
	Title      string  `json:"title"`
	StdDevHype float64 `json:"stddev_hype"`
	MinHype    float64 `json:"min_hype"`
	MaxHype    float64 `json:"max_hype"`
	AvgHype    float64 `json:"avg_hype"`
}

// Volatility returns per-title hype spread, most volatile first.
func (s *AnalyticsService) Volatility(ctx context.Context) ([]VolatilityEntry, error) {
	titles, err := s.repo.DistinctTitles(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]VolatilityEntry, 0, len(titles))
	for _, title := range titles {
		stats, err := s.repo.TitleStats(ctx, title)
		if err != nil {
			return nil, err
		}
		entries = append(entries, VolatilityEntry{
			Title:      title,
			StdDevHype: stats.StdDevHype,
			MinHype:    stats.MinHype,
			MaxHype:    stats.MaxHype,
			AvgHype:    stats.AvgHype,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].StdDevHype > entries[j].StdDevHype })
	return entries, nil
}

// Series fetches the hype series for titles in [from, to]. resampleWeekly
// buckets samples into calendar weeks and averages each bucket.
func (s *AnalyticsService) Series(ctx context.Context, titles []string, from, to int64, resampleWeekly bool) (map[string][]models.SeriesPoint, error) {
	series, err := s.repo.Series(ctx, titles, from, to)
	if err != nil {
		return nil, err
	}
	if !resampleWeekly {
		return series, nil
	}

	resampled := make(map[string][]models.SeriesPoint, len(series))
	for title, points := range series {
		resampled[title] = ResampleWeekly(points)
	}
	return resampled, nil
}

// ResampleWeekly buckets samples by ISO week start (Monday 00:00 UTC) and
// averages the values inside each bucket, preserving chronological order.
func ResampleWeekly(points []models.SeriesPoint) []models.SeriesPoint {
	if len(points) == 0 {
		return points
	}

	type bucket struct {
		sum   float64
		count int
	}
	buckets := map[int64]*bucket{}
	var order []int64
	for _, point := range points {
		week := weekStart(point.Timestamp)
		b, ok := buckets[week]
		if !ok {
			b = &bucket{}
			buckets[week] = b
			order = append(order, week)
		}
		b.sum += point.Value
		b.count++
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	result := make([]models.SeriesPoint, 0, len(order))
	for _, week := range order {
		b := buckets[week]
		result = append(result, models.SeriesPoint{
			Timestamp: week,
			Value:     b.sum / float64(b.count),
		})
	}
	return result
}

func weekStart(ts int64) int64 {
	t := time.Unix(ts, 0).UTC()
	// Roll back to Monday 00:00.
	offset := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -offset).Unix()
}

// AdminQueryResult is the column/row payload of a guarded raw query.
type AdminQueryResult struct {
	Columns []string        `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
}

// AdminQuery executes raw SQL after the guard approves it.
func (s *AnalyticsService) AdminQuery(ctx context.Context, query string, params []interface{}) (*AdminQueryResult, error) {
	if err := s.guard.Validate(query); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("analytics query failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &AdminQueryResult{Columns: columns}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		scanTargets := make([]interface{}, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, err
		}
		for i, value := range values {
			if raw, ok := value.([]byte); ok {
				values[i] = string(raw)
			}
		}
		result.Rows = append(result.Rows, values)
	}
	return result, rows.Err()
}

func dominantClass(counts map[string]int) string {
	best := models.LifecycleNA
	bestCount := -1
	classes := make([]string, 0, len(counts))
	for class := range counts {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	for _, class := range classes {
		if counts[class] > bestCount {
			best = class
			bestCount = counts[class]
		}
	}
	return best
}
