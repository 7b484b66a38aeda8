package persistence

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franchisepulse/backend/internal/domain/models"
)

func TestInsertBatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewTrendPointRepository(db)

	rating := 8.7
	records := []models.EnrichedRecord{
		{Timestamp: 1700000000, Title: "Dark", HypeScore: 82.5, BrandEquity: 430000, IMDBRating: &rating, NetflixHours: 0.85, EngagementScore: 71.775, IsTrending: true},
		{Timestamp: 1700000000, Title: "Ozark", HypeScore: 40, BrandEquity: 0, NetflixHours: 0, EngagementScore: 20},
	}

	mock.ExpectExec("INSERT INTO `trend_points`").
		WithArgs(
			sqlmock.AnyArg(), "Dark", int64(1700000000), 82.5, int64(430000), 8.7, 0.85, 71.775, true, sqlmock.AnyArg(),
			sqlmock.AnyArg(), "Ozark", int64(1700000000), 40.0, int64(0), nil, 0.0, 20.0, false, sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err = repo.InsertBatch(context.Background(), records)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertBatchEmptyIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTrendPointRepository(db)
	assert.NoError(t, repo.InsertBatch(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaderboard(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTrendPointRepository(db)

	rows := sqlmock.NewRows([]string{"title", "avg_hype", "avg_engagement", "max_brand_equity", "points"}).
		AddRow("Dark", 82.5, 71.7, 430000, 120).
		AddRow("Ozark", 40.0, 20.0, 250000, 118)

	mock.ExpectQuery("SELECT `title`, AVG").WithArgs(10).WillReturnRows(rows)

	entries, err := repo.Leaderboard(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Dark", entries[0].Title)
	assert.Equal(t, 82.5, entries[0].AvgHype)
	assert.Equal(t, int64(430000), entries[0].MaxBrandEquity)
	assert.Equal(t, int64(118), entries[1].Points)
}

func TestSeries(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTrendPointRepository(db)

	query := "SELECT `title`, `observed_at`, `hype_score` FROM `trend_points` " +
		"WHERE `title` IN (?, ?) AND `observed_at` BETWEEN ? AND ? ORDER BY `observed_at` ASC"
	rows := sqlmock.NewRows([]string{"title", "observed_at", "hype_score"}).
		AddRow("Dark", 100, 50.0).
		AddRow("Dark", 200, 70.0).
		AddRow("Ozark", 150, 30.0)

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs("Dark", "Ozark", int64(0), int64(1000)).
		WillReturnRows(rows)

	series, err := repo.Series(context.Background(), []string{"Dark", "Ozark"}, 0, 1000)
	require.NoError(t, err)
	assert.Equal(t, []models.SeriesPoint{{Timestamp: 100, Value: 50}, {Timestamp: 200, Value: 70}}, series["Dark"])
	assert.Equal(t, []models.SeriesPoint{{Timestamp: 150, Value: 30}}, series["Ozark"])
}

func TestSeriesNoTitles(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTrendPointRepository(db)
	series, err := repo.Series(context.Background(), nil, 0, 1000)
	require.NoError(t, err)
	assert.Empty(t, series)
}

func TestTitleStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTrendPointRepository(db)

	statRows := sqlmock.NewRows([]string{"min_ts", "max_ts", "peak", "avg", "stddev", "min", "max_be", "points"}).
		AddRow(100, 900, 95.0, 60.0, 12.5, 10.0, 430000, 50)
	mock.ExpectQuery("SELECT MIN\\(`observed_at`\\), MAX\\(`observed_at`\\)").
		WithArgs("Dark").WillReturnRows(statRows)

	peakRows := sqlmock.NewRows([]string{"peak_ts"}).AddRow(420)
	mock.ExpectQuery("SELECT MIN\\(`observed_at`\\) FROM `trend_points` WHERE `title` = \\? AND `hype_score` = \\?").
		WithArgs("Dark", 95.0).WillReturnRows(peakRows)

	stats, err := repo.TitleStats(context.Background(), "Dark")
	require.NoError(t, err)
	assert.Equal(t, int64(100), stats.StartTs)
	assert.Equal(t, int64(900), stats.EndTs)
	assert.Equal(t, int64(420), stats.PeakTs)
	assert.Equal(t, 95.0, stats.PeakHype)
	assert.Equal(t, 12.5, stats.StdDevHype)
	assert.Equal(t, int64(50), stats.Points)
}

func TestTitleStatsEmptyTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTrendPointRepository(db)

	statRows := sqlmock.NewRows([]string{"min_ts", "max_ts", "peak", "avg", "stddev", "min", "max_be", "points"}).
		AddRow(nil, nil, nil, nil, nil, nil, nil, 0)
	mock.ExpectQuery("SELECT MIN\\(`observed_at`\\), MAX\\(`observed_at`\\)").
		WithArgs("Nobody").WillReturnRows(statRows)

	stats, err := repo.TitleStats(context.Background(), "Nobody")
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Points)
	assert.Equal(t, 0.0, stats.PeakHype)
}

func TestDistinctTitlesAndCounts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTrendPointRepository(db)

	mock.ExpectQuery("SELECT DISTINCT `title`").
		WillReturnRows(sqlmock.NewRows([]string{"title"}).AddRow("Dark").AddRow("Ozark"))
	titles, err := repo.DistinctTitles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Dark", "Ozark"}, titles)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM `trend_points`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1234))
	total, err := repo.TotalPoints(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1234), total)

	mock.ExpectQuery("SELECT MAX\\(`observed_at`\\) FROM `trend_points`").
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))
	last, err := repo.LastObservedAt(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), last)
}
