package models

import "time"

type Endpoint struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Name            string    `json:"name"`
	URL             string    `json:"url"`
	IntervalMinutes int       `json:"interval_minutes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// EndpointWithLatest carries the latest check alongside the endpoint for
// list/detail responses, so clients can render status without extra lookups.
type EndpointWithLatest struct {
	*Endpoint
	LatestCheck *CheckResult `json:"latest_check"`
}

type EndpointStatus string

const (
	EndpointStatusUp   EndpointStatus = "up"
	EndpointStatusDown EndpointStatus = "down"
)

// EndpointUpdate holds a partial update; nil fields are left unchanged.
type EndpointUpdate struct {
	Name            *string `json:"name"`
	URL             *string `json:"url"`
	IntervalMinutes *int    `json:"interval_minutes"`
}

const DefaultIntervalMinutes = 5
