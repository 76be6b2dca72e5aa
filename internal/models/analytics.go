package models

import "time"

type GroupBy string

const (
	GroupByHour GroupBy = "hour"
	GroupByDay  GroupBy = "day"
)

// BucketStats is one time bucket of the analytics series.
type BucketStats struct {
	Period            time.Time `json:"period"`
	TotalChecks       int       `json:"total_checks"`
	FailureCount      int       `json:"failure_count"`
	UptimePct         float64   `json:"uptime_pct"`
	AvgResponseTimeMs float64   `json:"avg_response_time_ms"`
}

// SummaryStats covers the full filtered range, not a single bucket.
type SummaryStats struct {
	TotalChecks       int     `json:"total_checks"`
	UptimePct         float64 `json:"uptime_pct"`
	AvgResponseTimeMs float64 `json:"avg_response_time_ms"`
}

type AnalyticsReport struct {
	Series  []BucketStats `json:"series"`
	Summary SummaryStats  `json:"summary"`
}
