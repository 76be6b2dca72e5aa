package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"PulseWatch/internal/models"
	"PulseWatch/internal/storage"
	"PulseWatch/pkg/validator"
)

const (
	checksDefaultLimit = 100
	checksMaxLimit     = 500
)

type EndpointService struct {
	endpointStore storage.EndpointStore
	resultStore   storage.ResultStore
	logger        *slog.Logger
}

func NewEndpointService(
	endpointStore storage.EndpointStore,
	resultStore storage.ResultStore,
	logger *slog.Logger,
) *EndpointService {
	if logger == nil {
		logger = slog.Default()
	}

	return &EndpointService{
		endpointStore: endpointStore,
		resultStore:   resultStore,
		logger:        logger,
	}
}

func (s *EndpointService) Create(ctx context.Context, userID, name, url string, intervalMinutes int) (*models.Endpoint, error) {
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	if !validator.ValidateURL(url) {
		s.logger.Warn("invalid endpoint url received", "url", url, "user_id", userID)
		return nil, fmt.Errorf("invalid url: %s", url)
	}

	if intervalMinutes == 0 {
		intervalMinutes = models.DefaultIntervalMinutes
	}
	if !validator.ValidateInterval(intervalMinutes) {
		return nil, fmt.Errorf("invalid interval: %d", intervalMinutes)
	}

	endpoint := &models.Endpoint{
		UserID:          userID,
		Name:            name,
		URL:             url,
		IntervalMinutes: intervalMinutes,
	}

	if err := s.endpointStore.Create(ctx, endpoint); err != nil {
		s.logger.Error("failed to create endpoint", "error", err, "user_id", userID, "url", url)
		return nil, fmt.Errorf("failed to create endpoint: %w", err)
	}

	s.logger.Info("endpoint created",
		"endpoint_id", endpoint.ID,
		"user_id", userID,
		"url", url,
		"interval_minutes", intervalMinutes,
	)

	return endpoint, nil
}

// List returns the user's endpoints newest first, each with its latest check
// attached. status narrows to endpoints whose latest check is up or down.
func (s *EndpointService) List(ctx context.Context, userID string, status models.EndpointStatus) ([]*models.EndpointWithLatest, error) {
	endpoints, err := s.endpointStore.ListByUser(ctx, userID, status)
	if err != nil {
		s.logger.Error("failed to list endpoints", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list endpoints: %w", err)
	}

	latest, err := s.resultStore.LatestPerEndpoint(ctx, endpointIDs(endpoints))
	if err != nil {
		s.logger.Error("failed to load latest checks", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to load latest checks: %w", err)
	}

	list := make([]*models.EndpointWithLatest, 0, len(endpoints))
	for _, endpoint := range endpoints {
		list = append(list, &models.EndpointWithLatest{
			Endpoint:    endpoint,
			LatestCheck: latest[endpoint.ID],
		})
	}

	return list, nil
}

// Get returns the endpoint with its latest check, or nil when it does not
// exist or belongs to another user.
func (s *EndpointService) Get(ctx context.Context, userID, id string) (*models.EndpointWithLatest, error) {
	endpoint, err := s.getOwned(ctx, userID, id)
	if err != nil || endpoint == nil {
		return nil, err
	}

	latest, err := s.resultStore.LatestForEndpoint(ctx, id)
	if err != nil {
		s.logger.Error("failed to load latest check", "error", err, "endpoint_id", id)
		return nil, fmt.Errorf("failed to load latest check: %w", err)
	}

	return &models.EndpointWithLatest{Endpoint: endpoint, LatestCheck: latest}, nil
}

func (s *EndpointService) Update(ctx context.Context, userID, id string, update models.EndpointUpdate) (*models.Endpoint, error) {
	endpoint, err := s.getOwned(ctx, userID, id)
	if err != nil || endpoint == nil {
		return nil, err
	}

	if update.URL != nil && !validator.ValidateURL(*update.URL) {
		return nil, fmt.Errorf("invalid url: %s", *update.URL)
	}

	if update.IntervalMinutes != nil && !validator.ValidateInterval(*update.IntervalMinutes) {
		return nil, fmt.Errorf("invalid interval: %d", *update.IntervalMinutes)
	}

	updated, err := s.endpointStore.Update(ctx, id, update)
	if err != nil {
		s.logger.Error("failed to update endpoint", "error", err, "endpoint_id", id)
		return nil, fmt.Errorf("failed to update endpoint: %w", err)
	}

	s.logger.Info("endpoint updated", "endpoint_id", id, "user_id", userID)
	return updated, nil
}

func (s *EndpointService) Delete(ctx context.Context, userID, id string) (bool, error) {
	endpoint, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return false, err
	}
	if endpoint == nil {
		return false, nil
	}

	if err := s.endpointStore.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete endpoint", "error", err, "endpoint_id", id)
		return false, fmt.Errorf("failed to delete endpoint: %w", err)
	}

	s.logger.Info("endpoint deleted", "endpoint_id", id, "user_id", userID)
	return true, nil
}

// ListChecks returns the endpoint's results newest first. limit is clamped
// to [1, 500] with a default of 100; a malformed since is ignored.
func (s *EndpointService) ListChecks(ctx context.Context, userID, id string, since string, limit int) ([]*models.CheckResult, error) {
	endpoint, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if endpoint == nil {
		return nil, nil
	}

	if limit <= 0 {
		limit = checksDefaultLimit
	}
	if limit > checksMaxLimit {
		limit = checksMaxLimit
	}

	var sinceTime *time.Time
	if since != "" {
		zero := time.Time{}
		if parsed := parseTimeOrDefault(since, zero); !parsed.IsZero() {
			sinceTime = &parsed
		}
	}

	results, err := s.resultStore.ListForEndpoint(ctx, id, sinceTime, limit)
	if err != nil {
		s.logger.Error("failed to list checks", "error", err, "endpoint_id", id)
		return nil, fmt.Errorf("failed to list checks: %w", err)
	}

	return results, nil
}

// GetOwned exposes owner-scoped lookup for handlers that need the bare
// endpoint (manual check-now).
func (s *EndpointService) GetOwned(ctx context.Context, userID, id string) (*models.Endpoint, error) {
	return s.getOwned(ctx, userID, id)
}

func (s *EndpointService) getOwned(ctx context.Context, userID, id string) (*models.Endpoint, error) {
	endpoint, err := s.endpointStore.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get endpoint", "error", err, "endpoint_id", id)
		return nil, fmt.Errorf("failed to get endpoint: %w", err)
	}

	if endpoint == nil || endpoint.UserID != userID {
		return nil, nil
	}

	return endpoint, nil
}
