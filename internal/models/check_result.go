package models

import "time"

// CheckResult is one probe outcome. Rows are append-only: created once by the
// runner, never updated.
type CheckResult struct {
	ID             string    `json:"id"`
	EndpointID     string    `json:"endpoint_id"`
	StatusCode     *int      `json:"status_code"`
	ResponseTimeMs *int      `json:"response_time_ms"`
	Success        bool      `json:"success"`
	CheckedAt      time.Time `json:"checked_at"`
	ErrorMessage   string    `json:"error_message"`
}

// RunSummary is the outcome of one batch run across an endpoint set.
type RunSummary struct {
	Checked int `json:"checked"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// RecentCheck is a CheckResult denormalized with its endpoint name for
// dashboard rendering.
type RecentCheck struct {
	ID             string    `json:"id"`
	EndpointID     string    `json:"endpoint_id"`
	EndpointName   string    `json:"endpoint_name"`
	Success        bool      `json:"success"`
	StatusCode     *int      `json:"status_code"`
	ResponseTimeMs *int      `json:"response_time_ms"`
	CheckedAt      time.Time `json:"checked_at"`
	ErrorMessage   string    `json:"error_message"`
}
