package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"PulseWatch/internal/models"
	"PulseWatch/internal/storage"
)

const recentChecksLimit = 10

type DashboardService struct {
	endpointStore storage.EndpointStore
	resultStore   storage.ResultStore
	cache         storage.Cache
	cacheTTL      time.Duration
	logger        *slog.Logger
}

type DashboardServiceConfig struct {
	CacheTTL time.Duration
}

func NewDashboardService(
	endpointStore storage.EndpointStore,
	resultStore storage.ResultStore,
	cache storage.Cache,
	cfg DashboardServiceConfig,
	logger *slog.Logger,
) *DashboardService {

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 15 * time.Second
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &DashboardService{
		endpointStore: endpointStore,
		resultStore:   resultStore,
		cache:         cache,
		cacheTTL:      ttl,
		logger:        logger,
	}
}

// Stats computes the point-in-time dashboard for a user's endpoints.
// Up/down counts come from each endpoint's single latest result; endpoints
// that were never checked count toward neither. UptimePct24h stays nil when
// the 24h window holds no checks at all.
func (s *DashboardService) Stats(ctx context.Context, userID, endpointID string, now time.Time) (*models.DashboardStats, error) {
	cacheKey := fmt.Sprintf("dashboard:%s:%s", userID, endpointID)
	if s.cache != nil {
		var cached models.DashboardStats
		hit, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			s.logger.Warn("dashboard cache read failed", "error", err, "key", cacheKey)
		} else if hit {
			return &cached, nil
		}
	}

	endpoints, err := s.endpointStore.ListByUser(ctx, userID, "")
	if err != nil {
		s.logger.Error("failed to list endpoints for dashboard", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list endpoints: %w", err)
	}

	ids := endpointIDs(endpoints)
	if endpointID != "" {
		ids = filterID(ids, endpointID)
	}

	latest, err := s.resultStore.LatestPerEndpoint(ctx, ids)
	if err != nil {
		s.logger.Error("failed to load latest checks for dashboard", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to load latest checks: %w", err)
	}

	stats := &models.DashboardStats{
		TotalEndpoints: len(ids),
		RecentChecks:   []models.RecentCheck{},
	}

	for _, id := range ids {
		last := latest[id]
		if last == nil {
			continue
		}
		if last.Success {
			stats.UpCount++
		} else {
			stats.DownCount++
		}
	}

	window, err := s.resultStore.ListRange(ctx, ids, now.Add(-24*time.Hour), now)
	if err != nil {
		s.logger.Error("failed to load 24h window for dashboard", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to load 24h checks: %w", err)
	}

	if len(window) > 0 {
		successes := 0
		for _, result := range window {
			if result.Success {
				successes++
			}
		}
		pct := round1(100 * float64(successes) / float64(len(window)))
		stats.UptimePct24h = &pct
	}

	recent, err := s.resultStore.Recent(ctx, ids, recentChecksLimit)
	if err != nil {
		s.logger.Error("failed to load recent checks for dashboard", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to load recent checks: %w", err)
	}

	for _, check := range recent {
		stats.RecentChecks = append(stats.RecentChecks, *check)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, stats, s.cacheTTL); err != nil {
			s.logger.Warn("dashboard cache write failed", "error", err, "key", cacheKey)
		}
	}

	return stats, nil
}
