package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franchisepulse/backend/internal/bootstrap"
	"github.com/franchisepulse/backend/internal/domain/models"
	"github.com/franchisepulse/backend/internal/infrastructure/database"
)

func TestTrendPointRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	conn, err := database.GetInstance()
	require.NoError(t, err)
	db := conn.DB()

	ctx := context.Background()
	require.NoError(t, bootstrap.InitializeSchema(ctx, db))

	repo := NewTrendPointRepository(db)

	// Rows are keyed on a unique title so the test is isolated from real data.
	title := fmt.Sprintf("it_show_%d", time.Now().UnixNano())
	rating := 8.4
	records := []models.EnrichedRecord{
		{Timestamp: 1000, Title: title, HypeScore: 40, BrandEquity: 500, IMDBRating: &rating, EngagementScore: 33.6},
		{Timestamp: 2000, Title: title, HypeScore: 80, BrandEquity: 500, IMDBRating: &rating, EngagementScore: 67.2},
		{Timestamp: 3000, Title: title, HypeScore: 20, BrandEquity: 500, IMDBRating: &rating, EngagementScore: 16.8},
	}

	defer func() {
		_, _ = db.Exec("DELETE FROM trend_points WHERE title = ?", title)
	}()

	require.NoError(t, repo.InsertBatch(ctx, records))

	series, err := repo.Series(ctx, []string{title}, 0, 10000)
	require.NoError(t, err)
	require.Len(t, series[title], 3)
	assert.Equal(t, 40.0, series[title][0].Value)

	stats, err := repo.TitleStats(ctx, title)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Points)
	assert.Equal(t, 80.0, stats.PeakHype)
	assert.Equal(t, int64(2000), stats.PeakTs)
	assert.Equal(t, int64(1000), stats.StartTs)
	assert.Equal(t, int64(3000), stats.EndTs)

	titles, err := repo.DistinctTitles(ctx)
	require.NoError(t, err)
	assert.Contains(t, titles, title)

	total, err := repo.TotalPoints(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, int64(3))
}
