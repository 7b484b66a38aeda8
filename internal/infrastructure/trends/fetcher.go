package trends

import (
	"context"

	"github.com/franchisepulse/backend/internal/domain/models"
)

// Timeframes accepted by the widget API. Backfill pulls the whole tracked
// window; streaming asks only for the last four hours.
const (
	TimeframeBackfill  = "2021-01-01 2025-12-31"
	TimeframeStreaming = "now 4-H"
)

// MaxBatchKeywords is the hard cap the widget API enforces per payload.
const MaxBatchKeywords = 5

// Fetcher retrieves interest series for a batch of keywords.
type Fetcher interface {
	// FetchInterestOverTime returns one series per keyword for the given
	// timeframe. Keywords absent from the response map to an empty series.
	FetchInterestOverTime(ctx context.Context, keywords []string, timeframe string) (map[string][]models.SeriesPoint, error)

	// FetchRealtimeTrending returns currently-trending entertainment story
	// titles. Best effort; an error means "unknown", not "none".
	FetchRealtimeTrending(ctx context.Context) ([]string, error)
}

// LatestValue extracts the most recent sample of a series, or 0 when empty.
func LatestValue(series []models.SeriesPoint) float64 {
	if len(series) == 0 {
		return 0
	}
	return series[len(series)-1].Value
}

// AverageValue is the mean of a series, or 0 when empty.
func AverageValue(series []models.SeriesPoint) float64 {
	if len(series) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range series {
		sum += p.Value
	}
	return sum / float64(len(series))
}
