package models

// EnrichedRecord is the consumer's output shape: a normalized observation with
// the computed engagement score. It is what lands in the read-model list, in
// MySQL, and in NDJSON snapshots.
type EnrichedRecord struct {
	Timestamp       int64    `json:"timestamp"`
	Title           string   `json:"title"`
	HypeScore       float64  `json:"hype_score"`
	BrandEquity     int64    `json:"brand_equity"`
	IMDBRating      *float64 `json:"imdb_rating"`
	NetflixHours    float64  `json:"netflix_hours"`
	EngagementScore float64  `json:"engagement_score"`
	IsTrending      bool     `json:"is_trending"`
}
