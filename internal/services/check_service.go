package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"PulseWatch/internal/models"
	"PulseWatch/internal/probe"
	"PulseWatch/internal/storage"
)

// Prober is the probe executor used by the runner. Probe must capture all
// failure modes in its Result and never panic.
type Prober interface {
	Probe(ctx context.Context, target string) probe.Result
}

type CheckService struct {
	endpointStore storage.EndpointStore
	resultStore   storage.ResultStore
	prober        Prober
	concurrency   int
	logger        *slog.Logger
}

type CheckServiceConfig struct {
	Concurrency int
}

// endpointOutcome is the per-endpoint result of one batch pass; outcomes are
// folded into a RunSummary after all endpoints finish, so no counters are
// shared between probing goroutines.
type endpointOutcome struct {
	skipped    bool
	failed     bool
	persistErr error
}

func NewCheckService(
	endpointStore storage.EndpointStore,
	resultStore storage.ResultStore,
	prober Prober,
	cfg CheckServiceConfig,
	logger *slog.Logger,
) *CheckService {

	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 8
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &CheckService{
		endpointStore: endpointStore,
		resultStore:   resultStore,
		prober:        prober,
		concurrency:   concurrency,
		logger:        logger,
	}
}

// RunDueChecks probes every endpoint that is due at now and persists one
// result per probe. Endpoint probe failures are routine and never abort the
// batch; persistence failures are collected and returned alongside the
// summary so callers can tell a broken store from a down endpoint.
func (s *CheckService) RunDueChecks(ctx context.Context, now time.Time) (models.RunSummary, error) {
	endpoints, err := s.endpointStore.ListAll(ctx)
	if err != nil {
		s.logger.Error("failed to list endpoints for batch run", "error", err)
		return models.RunSummary{}, fmt.Errorf("failed to list endpoints: %w", err)
	}

	latest, err := s.resultStore.LatestPerEndpoint(ctx, endpointIDs(endpoints))
	if err != nil {
		s.logger.Error("failed to load latest checks for batch run", "error", err)
		return models.RunSummary{}, fmt.Errorf("failed to load latest checks: %w", err)
	}

	outcomes := make([]endpointOutcome, len(endpoints))
	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup

	for i, endpoint := range endpoints {
		var lastCheckedAt *time.Time
		if last := latest[endpoint.ID]; last != nil {
			t := last.CheckedAt
			lastCheckedAt = &t
		}

		if !IsDue(now, lastCheckedAt, endpoint.IntervalMinutes) {
			outcomes[i] = endpointOutcome{skipped: true}
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(i int, endpoint *models.Endpoint) {
			defer wg.Done()
			defer func() { <-sem }()
			outcomes[i] = s.checkOne(ctx, endpoint)
		}(i, endpoint)
	}

	wg.Wait()

	var summary models.RunSummary
	var persistErrs []error
	for _, outcome := range outcomes {
		switch {
		case outcome.persistErr != nil:
			persistErrs = append(persistErrs, outcome.persistErr)
		case outcome.skipped:
			summary.Skipped++
		default:
			summary.Checked++
			if outcome.failed {
				summary.Failed++
			}
		}
	}

	s.logger.Info("batch run completed",
		"checked", summary.Checked,
		"failed", summary.Failed,
		"skipped", summary.Skipped,
		"persist_errors", len(persistErrs),
	)

	return summary, errors.Join(persistErrs...)
}

// RunCheckNow probes the endpoint immediately, bypassing the due gate.
func (s *CheckService) RunCheckNow(ctx context.Context, endpoint *models.Endpoint) (*models.CheckResult, error) {
	s.logger.Info("running manual check",
		"endpoint_id", endpoint.ID,
		"url", endpoint.URL,
	)

	result := s.buildResult(ctx, endpoint)
	if err := s.resultStore.Create(ctx, result); err != nil {
		s.logger.Error("failed to save manual check result",
			"error", err,
			"endpoint_id", endpoint.ID,
		)
		return nil, fmt.Errorf("failed to save check result: %w", err)
	}

	return result, nil
}

func (s *CheckService) checkOne(ctx context.Context, endpoint *models.Endpoint) endpointOutcome {
	result := s.buildResult(ctx, endpoint)

	if err := s.resultStore.Create(ctx, result); err != nil {
		s.logger.Error("failed to save check result",
			"error", err,
			"endpoint_id", endpoint.ID,
		)
		return endpointOutcome{persistErr: fmt.Errorf("endpoint %s: failed to save check result: %w", endpoint.ID, err)}
	}

	if !result.Success {
		s.logger.Debug("endpoint check failed",
			"endpoint_id", endpoint.ID,
			"url", endpoint.URL,
			"error", result.ErrorMessage,
		)
	}

	return endpointOutcome{failed: !result.Success}
}

func (s *CheckService) buildResult(ctx context.Context, endpoint *models.Endpoint) *models.CheckResult {
	probed := s.prober.Probe(ctx, endpoint.URL)

	elapsed := probed.ElapsedMs
	return &models.CheckResult{
		EndpointID:     endpoint.ID,
		StatusCode:     probed.StatusCode,
		ResponseTimeMs: &elapsed,
		Success:        probed.Success,
		CheckedAt:      time.Now().UTC(),
		ErrorMessage:   probed.ErrorMessage,
	}
}

func endpointIDs(endpoints []*models.Endpoint) []string {
	ids := make([]string, 0, len(endpoints))
	for _, endpoint := range endpoints {
		ids = append(ids, endpoint.ID)
	}
	return ids
}
