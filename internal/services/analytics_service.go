package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"PulseWatch/internal/models"
	"PulseWatch/internal/storage"
)

type AnalyticsService struct {
	endpointStore storage.EndpointStore
	resultStore   storage.ResultStore
	logger        *slog.Logger
}

// AnalyticsQuery carries raw query parameters. Since/Until are parsed inside
// the service so the documented fallback-to-default policy is applied in one
// place: malformed or missing values never fail the request.
type AnalyticsQuery struct {
	EndpointID string
	Since      string
	Until      string
	GroupBy    string
}

func NewAnalyticsService(
	endpointStore storage.EndpointStore,
	resultStore storage.ResultStore,
	logger *slog.Logger,
) *AnalyticsService {
	if logger == nil {
		logger = slog.Default()
	}

	return &AnalyticsService{
		endpointStore: endpointStore,
		resultStore:   resultStore,
		logger:        logger,
	}
}

// Aggregate groups the user's check history into hour or day buckets.
// Buckets with no observations are omitted; the series is ordered ascending.
func (s *AnalyticsService) Aggregate(ctx context.Context, userID string, query AnalyticsQuery, now time.Time) (*models.AnalyticsReport, error) {
	endpoints, err := s.endpointStore.ListByUser(ctx, userID, "")
	if err != nil {
		s.logger.Error("failed to list endpoints for analytics", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list endpoints: %w", err)
	}

	ids := endpointIDs(endpoints)
	if query.EndpointID != "" {
		ids = filterID(ids, query.EndpointID)
	}

	since := parseTimeOrDefault(query.Since, now.Add(-7*24*time.Hour))
	until := parseTimeOrDefault(query.Until, now)

	results, err := s.resultStore.ListRange(ctx, ids, since, until)
	if err != nil {
		s.logger.Error("failed to load results for analytics", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to load results: %w", err)
	}

	groupBy := models.GroupByDay
	if query.GroupBy == string(models.GroupByHour) {
		groupBy = models.GroupByHour
	}

	report := buildReport(results, groupBy)

	s.logger.Debug("analytics aggregated",
		"user_id", userID,
		"endpoints", len(ids),
		"results", len(results),
		"buckets", len(report.Series),
		"group_by", groupBy,
	)

	return report, nil
}

type bucketAccum struct {
	total       int
	failures    int
	successes   int
	latencySum  float64
	latencyObsv int
}

func buildReport(results []*models.CheckResult, groupBy models.GroupBy) *models.AnalyticsReport {
	buckets := make(map[time.Time]*bucketAccum)
	var overall bucketAccum

	for _, result := range results {
		period := truncatePeriod(result.CheckedAt, groupBy)

		accum := buckets[period]
		if accum == nil {
			accum = &bucketAccum{}
			buckets[period] = accum
		}

		accum.observe(result)
		overall.observe(result)
	}

	periods := make([]time.Time, 0, len(buckets))
	for period := range buckets {
		periods = append(periods, period)
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Before(periods[j]) })

	series := make([]models.BucketStats, 0, len(periods))
	for _, period := range periods {
		accum := buckets[period]
		series = append(series, models.BucketStats{
			Period:            period,
			TotalChecks:       accum.total,
			FailureCount:      accum.failures,
			UptimePct:         accum.uptimePct(),
			AvgResponseTimeMs: accum.avgLatency(),
		})
	}

	return &models.AnalyticsReport{
		Series: series,
		Summary: models.SummaryStats{
			TotalChecks:       overall.total,
			UptimePct:         overall.uptimePct(),
			AvgResponseTimeMs: overall.avgLatency(),
		},
	}
}

func (a *bucketAccum) observe(result *models.CheckResult) {
	a.total++
	if result.Success {
		a.successes++
	} else {
		a.failures++
	}
	if result.ResponseTimeMs != nil {
		a.latencySum += float64(*result.ResponseTimeMs)
		a.latencyObsv++
	}
}

func (a *bucketAccum) uptimePct() float64 {
	if a.total == 0 {
		return 0
	}
	return round1(100 * float64(a.successes) / float64(a.total))
}

func (a *bucketAccum) avgLatency() float64 {
	if a.latencyObsv == 0 {
		return 0
	}
	return round1(a.latencySum / float64(a.latencyObsv))
}

func truncatePeriod(t time.Time, groupBy models.GroupBy) time.Time {
	t = t.UTC()
	if groupBy == models.GroupByHour {
		return t.Truncate(time.Hour)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// round1 rounds half-up to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// parseTimeOrDefault accepts RFC3339 timestamps, naive timestamps (read as
// UTC) and bare dates. Anything else falls back to def.
func parseTimeOrDefault(value string, def time.Time) time.Time {
	if value == "" {
		return def
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t
		}
	}

	return def
}

func filterID(ids []string, want string) []string {
	for _, id := range ids {
		if id == want {
			return []string{id}
		}
	}
	return nil
}
