package trends

import (
	"context"
	"hash/fnv"
	"math"
	"time"

	"github.com/franchisepulse/backend/internal/domain/models"
)

// MockFetcher produces deterministic pseudo-series keyed on the keyword, so
// offline runs get stable, plausible-looking hype curves instead of zeros.
type MockFetcher struct {
	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

// NewMockFetcher returns a deterministic offline fetcher.
func NewMockFetcher() *MockFetcher {
	return &MockFetcher{Now: time.Now}
}

// FetchInterestOverTime synthesizes a weekly series for backfill windows and a
// short minutely series otherwise. Values stay in the 0..100 interest range.
func (m *MockFetcher) FetchInterestOverTime(_ context.Context, keywords []string, timeframe string) (map[string][]models.SeriesPoint, error) {
	now := m.Now()

	points := 48
	step := time.Minute
	start := now.Add(-4 * time.Hour)
	if timeframe == TimeframeBackfill {
		points = 260
		step = 7 * 24 * time.Hour
		start = now.Add(-time.Duration(points) * step)
	}

	result := make(map[string][]models.SeriesPoint, len(keywords))
	for _, kw := range keywords {
		seed := float64(hashKeyword(kw) % 1000)
		series := make([]models.SeriesPoint, 0, points)
		for i := 0; i < points; i++ {
			ts := start.Add(time.Duration(i) * step)
			// A sine wave with a keyword-specific phase and amplitude.
			phase := seed/1000*2*math.Pi + float64(i)/float64(points)*4*math.Pi
			value := 50 + 45*math.Sin(phase)
			if value < 0 {
				value = 0
			}
			series = append(series, models.SeriesPoint{
				Timestamp: ts.Unix(),
				Value:     math.Round(value),
			})
		}
		result[kw] = series
	}
	return result, nil
}

// FetchRealtimeTrending returns an empty list; mock runs have no realtime feed.
func (m *MockFetcher) FetchRealtimeTrending(context.Context) ([]string, error) {
	return nil, nil
}

func hashKeyword(kw string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(kw))
	return h.Sum32()
}
