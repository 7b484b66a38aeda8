package trends

import (
	"context"
	"log"

	"github.com/franchisepulse/backend/internal/domain/models"
)

// FallbackFetcher tries a primary fetcher and falls back to a secondary one
// (typically the mock) when the primary errors. The pipeline keeps producing
// data while the upstream API is throttling.
type FallbackFetcher struct {
	primary   Fetcher
	secondary Fetcher
}

// NewFallbackFetcher wraps primary with secondary as the fallback.
func NewFallbackFetcher(primary, secondary Fetcher) *FallbackFetcher {
	return &FallbackFetcher{primary: primary, secondary: secondary}
}

// FetchInterestOverTime implements Fetcher.
func (f *FallbackFetcher) FetchInterestOverTime(ctx context.Context, keywords []string, timeframe string) (map[string][]models.SeriesPoint, error) {
	result, err := f.primary.FetchInterestOverTime(ctx, keywords, timeframe)
	if err == nil {
		return result, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	log.Printf("⚠️ Primary trends fetch failed, falling back to mock data: %v", err)
	return f.secondary.FetchInterestOverTime(ctx, keywords, timeframe)
}

// FetchRealtimeTrending implements Fetcher. Realtime trending is best effort,
// so a primary failure just means an empty fallback answer.
func (f *FallbackFetcher) FetchRealtimeTrending(ctx context.Context) ([]string, error) {
	titles, err := f.primary.FetchRealtimeTrending(ctx)
	if err == nil {
		return titles, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	log.Printf("ℹ️ Realtime trending lookup failed: %v", err)
	return f.secondary.FetchRealtimeTrending(ctx)
}
