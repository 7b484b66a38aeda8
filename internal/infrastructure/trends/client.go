package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/franchisepulse/backend/internal/domain/models"
)

const (
	defaultBaseURL = "https://trends.google.com"
	exploreAPIPath = "/trends/api/explore"
	seriesAPIPath  = "/trends/api/widgetdata/multiline"
	trendingAPI    = "/trends/api/realtimetrends"

	// Locale parameters the widget API expects.
	paramHL = "en-US"
	paramTZ = "360"
)

// Client talks to the unofficial Google Trends widget API. Each series fetch
// is two requests: explore returns a signed widget token, then the multiline
// endpoint returns the actual timeline for that token.
type Client struct {
	httpClient *http.Client
	baseURL    string
	maxRetries int
	retryDelay time.Duration
	userAgent  string
}

// ClientOption tweaks a Client.
type ClientOption func(*Client)

// WithTimeout overrides the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithBaseURL points the client at a different host; used by tests.
func WithBaseURL(base string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimRight(base, "/") }
}

// WithRetries sets the retry count and the base backoff delay.
func WithRetries(attempts int, delay time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = attempts
		c.retryDelay = delay
	}
}

// NewClient builds a widget-API client with sane defaults.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    defaultBaseURL,
		maxRetries: 3,
		retryDelay: 2 * time.Second,
		userAgent:  "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type exploreRequest struct {
	ComparisonItem []exploreItem `json:"comparisonItem"`
	Category       int           `json:"category"`
	Property       string        `json:"property"`
}

type exploreItem struct {
	Keyword string `json:"keyword"`
	Geo     string `json:"geo"`
	Time    string `json:"time"`
}

type exploreResponse struct {
	Widgets []struct {
		ID      string          `json:"id"`
		Token   string          `json:"token"`
		Request json.RawMessage `json:"request"`
	} `json:"widgets"`
}

type multilineResponse struct {
	Default struct {
		TimelineData []struct {
			Time  string    `json:"time"`
			Value []float64 `json:"value"`
		} `json:"timelineData"`
	} `json:"default"`
}

// FetchInterestOverTime implements Fetcher. Keywords beyond the batch cap are
// rejected; callers chunk before calling.
func (c *Client) FetchInterestOverTime(ctx context.Context, keywords []string, timeframe string) (map[string][]models.SeriesPoint, error) {
	if len(keywords) == 0 {
		return map[string][]models.SeriesPoint{}, nil
	}
	if len(keywords) > MaxBatchKeywords {
		return nil, fmt.Errorf("batch of %d exceeds the %d keyword cap", len(keywords), MaxBatchKeywords)
	}

	token, widgetReq, err := c.explore(ctx, keywords, timeframe)
	if err != nil {
		return nil, err
	}

	timeline, err := c.multiline(ctx, token, widgetReq)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]models.SeriesPoint, len(keywords))
	for _, kw := range keywords {
		result[kw] = nil
	}
	for _, point := range timeline.Default.TimelineData {
		ts, err := strconv.ParseInt(point.Time, 10, 64)
		if err != nil {
			continue
		}
		for i, kw := range keywords {
			if i >= len(point.Value) {
				break
			}
			result[kw] = append(result[kw], models.SeriesPoint{Timestamp: ts, Value: point.Value[i]})
		}
	}
	return result, nil
}

func (c *Client) explore(ctx context.Context, keywords []string, timeframe string) (token string, widgetReq json.RawMessage, err error) {
	req := exploreRequest{Category: 0, Property: ""}
	for _, kw := range keywords {
		req.ComparisonItem = append(req.ComparisonItem, exploreItem{Keyword: kw, Geo: "", Time: timeframe})
	}
	reqJSON, err := json.Marshal(req)
	if err != nil {
		return "", nil, err
	}

	params := url.Values{}
	params.Set("hl", paramHL)
	params.Set("tz", paramTZ)
	params.Set("req", string(reqJSON))

	body, err := c.get(ctx, exploreAPIPath, params)
	if err != nil {
		return "", nil, fmt.Errorf("explore request: %w", err)
	}

	var resp exploreResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", nil, fmt.Errorf("explore response: %w", err)
	}

	for _, widget := range resp.Widgets {
		if widget.ID == "TIMESERIES" {
			return widget.Token, widget.Request, nil
		}
	}
	return "", nil, fmt.Errorf("explore response carried no TIMESERIES widget")
}

func (c *Client) multiline(ctx context.Context, token string, widgetReq json.RawMessage) (*multilineResponse, error) {
	params := url.Values{}
	params.Set("hl", paramHL)
	params.Set("tz", paramTZ)
	params.Set("token", token)
	params.Set("req", string(widgetReq))

	body, err := c.get(ctx, seriesAPIPath, params)
	if err != nil {
		return nil, fmt.Errorf("multiline request: %w", err)
	}

	var resp multilineResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("multiline response: %w", err)
	}
	return &resp, nil
}

// FetchRealtimeTrending implements Fetcher against the realtime trends feed,
// entertainment category, US geo.
func (c *Client) FetchRealtimeTrending(ctx context.Context) ([]string, error) {
	params := url.Values{}
	params.Set("hl", paramHL)
	params.Set("tz", paramTZ)
	params.Set("cat", "e")
	params.Set("geo", "US")
	params.Set("fi", "0")
	params.Set("fs", "0")
	params.Set("ri", "300")
	params.Set("rs", "20")

	body, err := c.get(ctx, trendingAPI, params)
	if err != nil {
		return nil, err
	}

	var resp struct {
		StorySummaries struct {
			TrendingStories []struct {
				Title string `json:"title"`
			} `json:"trendingStories"`
		} `json:"storySummaries"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(resp.StorySummaries.TrendingStories))
	for _, story := range resp.StorySummaries.TrendingStories {
		titles = append(titles, story.Title)
	}
	return titles, nil
}

// get performs a GET with retries and strips the anti-JSON-hijacking prefix
// (")]}'" plus an optional comma) the widget API prepends to every body.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	endpoint := c.baseURL + path + "?" + params.Encode()

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff between attempts.
			delay := c.retryDelay * time.Duration(1<<(attempt-1))
			log.Printf("⏳ Trends request retry %d/%d in %s", attempt, c.maxRetries, delay)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		body, err := c.doOnce(ctx, endpoint)
		if err == nil {
			return body, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
	}
	return nil, fmt.Errorf("after %d attempts: %w", c.maxRetries+1, lastErr)
}

func (c *Client) doOnce(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("throttled (HTTP 429)")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return stripJSONPrefix(raw), nil
}

func stripJSONPrefix(raw []byte) []byte {
	s := string(raw)
	if idx := strings.IndexAny(s, "{["); idx > 0 {
		return []byte(s[idx:])
	}
	return raw
}
