package models

import (
	"encoding/json"
	"strings"
)

// EventMetrics is the metrics block carried by every queue event. Fields the
// producer cannot resolve stay at their zero value (or nil for the rating) so
// the consumer can apply its own defaults.
type EventMetrics struct {
	HypeScore    float64  `json:"hype_score"`
	IMDBRating   *float64 `json:"imdb_rating"`
	BrandEquity  int64    `json:"brand_equity"`
	NetflixHours float64  `json:"netflix_hours"`
	CostBasis    int      `json:"cost_basis"`
	IsTrending   bool     `json:"is_trending"`
}

// MetricEvent is the queue envelope: one observation of one title at one
// point in time, JSON-encoded per Redis list element.
type MetricEvent struct {
	Timestamp int64        `json:"timestamp"`
	Title     string       `json:"title"`
	Metrics   EventMetrics `json:"metrics"`
}

// Encode serializes the event for the queue
func (e MetricEvent) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// DecodeMetricEvent parses a raw queue element. Only malformed JSON is an
// error; missing fields are normalized downstream by the consumer.
func DecodeMetricEvent(raw []byte) (MetricEvent, error) {
	var event MetricEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return MetricEvent{}, err
	}
	event.Title = strings.TrimSpace(event.Title)
	return event, nil
}
