package models

// ShowMeta carries the IMDb metadata attached to producer events.
type ShowMeta struct {
	AverageRating  float64
	NumVotes       int64
	RuntimeMinutes int
}

// SeriesPoint is one (timestamp, value) sample of a title's hype series.
type SeriesPoint struct {
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
}

// Lifecycle classes describe where in its tracked history a title peaked.
const (
	LifecycleEarlyPeaker = "Early Peaker"
	LifecycleMidPeaker   = "Mid Peaker"
	LifecycleLatePeaker  = "Late Peaker"
	LifecycleInstant     = "Instant"
	LifecycleNA          = "N/A"
)

// TitleStats is the per-title aggregate the analytics layer computes
// classifications from.
type TitleStats struct {
	Title          string  `json:"title"`
	StartTs        int64   `json:"start_ts"`
	EndTs          int64   `json:"end_ts"`
	PeakTs         int64   `json:"peak_ts"`
	PeakHype       float64 `json:"peak_hype"`
	AvgHype        float64 `json:"avg_hype"`
	StdDevHype     float64 `json:"stddev_hype"`
	MinHype        float64 `json:"min_hype"`
	MaxHype        float64 `json:"max_hype"`
	MaxBrandEquity int64   `json:"max_brand_equity"`
	Points         int64   `json:"points"`
}
