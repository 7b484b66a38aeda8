package trends

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franchisepulse/backend/internal/domain/models"
)

func newTrendsTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc(exploreAPIPath, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, paramHL, r.URL.Query().Get("hl"))
		assert.Equal(t, paramTZ, r.URL.Query().Get("tz"))
		fmt.Fprint(w, `)]}'`+"\n"+`{"widgets":[{"id":"TIMESERIES","token":"tok-123","request":{"time":"x"}}]}`)
	})
	mux.HandleFunc(seriesAPIPath, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok-123", r.URL.Query().Get("token"))
		fmt.Fprint(w, `)]}',`+"\n"+`{"default":{"timelineData":[`+
			`{"time":"1700000000","value":[42,7]},`+
			`{"time":"1700000600","value":[55,9]}]}}`)
	})
	return httptest.NewServer(mux)
}

func TestClientFetchInterestOverTime(t *testing.T) {
	server := newTrendsTestServer(t)
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithRetries(0, time.Millisecond))
	series, err := client.FetchInterestOverTime(context.Background(), []string{"Stranger Things", "Wednesday"}, TimeframeStreaming)
	require.NoError(t, err)

	require.Len(t, series["Stranger Things"], 2)
	assert.Equal(t, models.SeriesPoint{Timestamp: 1700000000, Value: 42}, series["Stranger Things"][0])
	assert.Equal(t, models.SeriesPoint{Timestamp: 1700000600, Value: 55}, series["Stranger Things"][1])
	require.Len(t, series["Wednesday"], 2)
	assert.Equal(t, 9.0, series["Wednesday"][1].Value)
}

func TestClientRejectsOversizedBatch(t *testing.T) {
	client := NewClient()
	batch := []string{"a", "b", "c", "d", "e", "f"}
	_, err := client.FetchInterestOverTime(context.Background(), batch, TimeframeStreaming)
	assert.Error(t, err)
}

func TestClientEmptyBatchIsNoop(t *testing.T) {
	client := NewClient()
	series, err := client.FetchInterestOverTime(context.Background(), nil, TimeframeStreaming)
	assert.NoError(t, err)
	assert.Empty(t, series)
}

func TestClientRetriesOnThrottle(t *testing.T) {
	var calls int
	mux := http.NewServeMux()
	mux.HandleFunc(exploreAPIPath, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `)]}'`+"\n"+`{"widgets":[{"id":"TIMESERIES","token":"tok","request":{}}]}`)
	})
	mux.HandleFunc(seriesAPIPath, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `)]}',`+"\n"+`{"default":{"timelineData":[]}}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithRetries(2, time.Millisecond))
	series, err := client.FetchInterestOverTime(context.Background(), []string{"Dark"}, TimeframeStreaming)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Empty(t, series["Dark"])
}

func TestClientContextCancellationStopsRetries(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(exploreAPIPath, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(WithBaseURL(server.URL), WithRetries(5, time.Second))
	_, err := client.FetchInterestOverTime(ctx, []string{"Dark"}, TimeframeStreaming)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStripJSONPrefix(t *testing.T) {
	assert.Equal(t, `{"a":1}`, string(stripJSONPrefix([]byte(")]}'\n{\"a\":1}"))))
	assert.Equal(t, `[1,2]`, string(stripJSONPrefix([]byte(")]}',\n[1,2]"))))
	assert.Equal(t, `{"a":1}`, string(stripJSONPrefix([]byte(`{"a":1}`))))
}

func TestMockFetcherIsDeterministic(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mock := &MockFetcher{Now: func() time.Time { return fixed }}

	first, err := mock.FetchInterestOverTime(context.Background(), []string{"Dark", "Ozark"}, TimeframeStreaming)
	require.NoError(t, err)
	second, err := mock.FetchInterestOverTime(context.Background(), []string{"Dark", "Ozark"}, TimeframeStreaming)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.NotEmpty(t, first["Dark"])
	for _, p := range first["Dark"] {
		assert.GreaterOrEqual(t, p.Value, 0.0)
		assert.LessOrEqual(t, p.Value, 100.0)
	}
	// Different keywords get different curves.
	assert.NotEqual(t, first["Dark"], first["Ozark"])
}

func TestMockFetcherBackfillIsWeekly(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mock := &MockFetcher{Now: func() time.Time { return fixed }}

	series, err := mock.FetchInterestOverTime(context.Background(), []string{"Dark"}, TimeframeBackfill)
	require.NoError(t, err)
	points := series["Dark"]
	require.Greater(t, len(points), 100)
	assert.Equal(t, int64(7*24*3600), points[1].Timestamp-points[0].Timestamp)
}

type failingFetcher struct{}

func (failingFetcher) FetchInterestOverTime(context.Context, []string, string) (map[string][]models.SeriesPoint, error) {
	return nil, errors.New("throttled")
}

func (failingFetcher) FetchRealtimeTrending(context.Context) ([]string, error) {
	return nil, errors.New("throttled")
}

func TestFallbackFetcherUsesSecondaryOnError(t *testing.T) {
	fallback := NewFallbackFetcher(failingFetcher{}, NewMockFetcher())

	series, err := fallback.FetchInterestOverTime(context.Background(), []string{"Dark"}, TimeframeStreaming)
	require.NoError(t, err)
	assert.NotEmpty(t, series["Dark"])

	titles, err := fallback.FetchRealtimeTrending(context.Background())
	require.NoError(t, err)
	assert.Empty(t, titles)
}

func TestFallbackFetcherRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fallback := NewFallbackFetcher(failingFetcher{}, NewMockFetcher())
	_, err := fallback.FetchInterestOverTime(ctx, []string{"Dark"}, TimeframeStreaming)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLatestAndAverageValue(t *testing.T) {
	series := []models.SeriesPoint{{Timestamp: 1, Value: 10}, {Timestamp: 2, Value: 30}}
	assert.Equal(t, 30.0, LatestValue(series))
	assert.Equal(t, 20.0, AverageValue(series))
	assert.Equal(t, 0.0, LatestValue(nil))
	assert.Equal(t, 0.0, AverageValue(nil))
}
