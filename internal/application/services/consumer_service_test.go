package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franchisepulse/backend/internal/domain/models"
	"github.com/franchisepulse/backend/pkg/scoring"
)

func newTestConsumer(t *testing.T) *ConsumerService {
	t.Helper()
	scorer, err := scoring.NewEngine(scoring.DefaultEngagementFormula)
	require.NoError(t, err)
	return NewConsumerService(nil, nil, scorer, nil, 0)
}

func TestProcessBatchSkipsMalformedElements(t *testing.T) {
	q := &fakeQueue{}
	scorer, err := scoring.NewEngine(scoring.DefaultEngagementFormula)
	require.NoError(t, err)
	consumer := NewConsumerService(q, nil, scorer, nil, 0)

	consumer.processBatch(context.Background(), []string{
		"not json at all",
		`{"timestamp": 1700000000, "title": "Dark", "metrics": {"hype_score": 50}}`,
		`{"timestamp": "broken`,
		`{"timestamp": 1700000001, "title": "Ozark", "metrics": {"hype_score": 60}}`,
	})

	records := q.pushedRecords()
	require.Len(t, records, 2)
	assert.Equal(t, "Dark", records[0].Title)
	assert.Equal(t, "Ozark", records[1].Title)
	assert.Equal(t, int64(2), consumer.Processed())
}

func TestProcessBatchAllMalformedPushesNothing(t *testing.T) {
	q := &fakeQueue{}
	scorer, err := scoring.NewEngine(scoring.DefaultEngagementFormula)
	require.NoError(t, err)
	consumer := NewConsumerService(q, nil, scorer, nil, 0)

	consumer.processBatch(context.Background(), []string{"garbage", "{{"})

	assert.Empty(t, q.pushedRecords())
	assert.Equal(t, int64(0), consumer.Processed())
}

func TestEnrichComputesEngagement(t *testing.T) {
	consumer := newTestConsumer(t)

	rating := 8.0
	record := consumer.Enrich(models.MetricEvent{
		Timestamp: 1700000000,
		Title:     "Dark",
		Metrics: models.EventMetrics{
			HypeScore:   50,
			IMDBRating:  &rating,
			BrandEquity: 430000,
		},
	})

	assert.Equal(t, int64(1700000000), record.Timestamp)
	assert.Equal(t, "Dark", record.Title)
	// 50 * (8.0 / 10.0)
	assert.Equal(t, 40.0, record.EngagementScore)
	assert.Equal(t, int64(430000), record.BrandEquity)
	require.NotNil(t, record.IMDBRating)
	assert.Equal(t, 8.0, *record.IMDBRating)
}

func TestEnrichDefaultsMissingRatingToFive(t *testing.T) {
	consumer := newTestConsumer(t)

	record := consumer.Enrich(models.MetricEvent{
		Timestamp: 1700000000,
		Title:     "Obscure Show",
		Metrics:   models.EventMetrics{HypeScore: 80},
	})

	// 80 * (5.0 / 10.0)
	assert.Equal(t, 40.0, record.EngagementScore)
	assert.Nil(t, record.IMDBRating)
}

func TestEnrichNormalizesMissingFields(t *testing.T) {
	consumer := newTestConsumer(t)

	record := consumer.Enrich(models.MetricEvent{})
	assert.Equal(t, "Unknown", record.Title)
	assert.NotZero(t, record.Timestamp)
	assert.Equal(t, 0.0, record.HypeScore)
	assert.Equal(t, 0.0, record.EngagementScore)
}

func TestEnrichRounding(t *testing.T) {
	consumer := newTestConsumer(t)

	rating := 7.777
	record := consumer.Enrich(models.MetricEvent{
		Timestamp: 1,
		Title:     "Dark",
		Metrics:   models.EventMetrics{HypeScore: 33.33333, IMDBRating: &rating},
	})

	assert.Equal(t, 33.333, record.HypeScore)
	// 33.33333 * 0.7777 = 25.92333..., rounded to 4 decimals.
	assert.Equal(t, 25.9233, record.EngagementScore)
}

func TestEnrichCustomFormula(t *testing.T) {
	scorer, err := scoring.NewEngine("hype_score * 2.0")
	require.NoError(t, err)
	consumer := NewConsumerService(nil, nil, scorer, nil, 0)

	record := consumer.Enrich(models.MetricEvent{
		Timestamp: 1,
		Title:     "Dark",
		Metrics:   models.EventMetrics{HypeScore: 10},
	})
	assert.Equal(t, 20.0, record.EngagementScore)
}
