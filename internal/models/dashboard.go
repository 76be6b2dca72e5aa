package models

// DashboardStats is the point-in-time view across a user's endpoints.
// UptimePct24h is nil when no checks fall inside the 24h window; "no data"
// must stay distinguishable from 0% uptime.
type DashboardStats struct {
	TotalEndpoints int           `json:"total_endpoints"`
	UpCount        int           `json:"up_count"`
	DownCount      int           `json:"down_count"`
	UptimePct24h   *float64      `json:"uptime_pct_24h"`
	RecentChecks   []RecentCheck `json:"recent_checks"`
}
