package services

import "time"

// IsDue reports whether an endpoint is eligible for a new probe. An endpoint
// with no recorded check is always due; otherwise it is due once at least
// intervalMinutes have elapsed since the last check (boundary inclusive).
func IsDue(now time.Time, lastCheckedAt *time.Time, intervalMinutes int) bool {
	if lastCheckedAt == nil {
		return true
	}
	return now.Sub(*lastCheckedAt) >= time.Duration(intervalMinutes)*time.Minute
}
