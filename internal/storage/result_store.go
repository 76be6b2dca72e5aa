package storage

import (
	"PulseWatch/internal/models"
	"PulseWatch/pkg/uuidutil"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type resultStore struct {
	pool *pgxpool.Pool
}

func NewResultStore(pool *pgxpool.Pool) ResultStore {
	return &resultStore{pool: pool}
}

func (s *resultStore) Create(ctx context.Context, result *models.CheckResult) error {
	result.ID = uuidutil.New()
	if result.CheckedAt.IsZero() {
		result.CheckedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO check_results (id, endpoint_id, status_code, response_time_ms, success, checked_at, error_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.pool.Exec(ctx, query,
		result.ID,
		result.EndpointID,
		result.StatusCode,
		result.ResponseTimeMs,
		result.Success,
		result.CheckedAt,
		result.ErrorMessage,
	)

	if err != nil {
		return fmt.Errorf("failed to create check result: %w", err)
	}

	return nil
}

func (s *resultStore) LatestForEndpoint(ctx context.Context, endpointID string) (*models.CheckResult, error) {
	query := `
		SELECT id, endpoint_id, status_code, response_time_ms, success, checked_at, error_message
		FROM check_results
		WHERE endpoint_id = $1
		ORDER BY checked_at DESC
		LIMIT 1
	`

	var result models.CheckResult
	err := s.pool.QueryRow(ctx, query, endpointID).Scan(
		&result.ID,
		&result.EndpointID,
		&result.StatusCode,
		&result.ResponseTimeMs,
		&result.Success,
		&result.CheckedAt,
		&result.ErrorMessage,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get latest result for endpoint %s: %w", endpointID, err)
	}

	return &result, nil
}

func (s *resultStore) LatestPerEndpoint(ctx context.Context, endpointIDs []string) (map[string]*models.CheckResult, error) {
	latest := make(map[string]*models.CheckResult, len(endpointIDs))
	if len(endpointIDs) == 0 {
		return latest, nil
	}

	query := `
		SELECT DISTINCT ON (endpoint_id)
			id, endpoint_id, status_code, response_time_ms, success, checked_at, error_message
		FROM check_results
		WHERE endpoint_id = ANY($1)
		ORDER BY endpoint_id, checked_at DESC
	`

	rows, err := s.pool.Query(ctx, query, endpointIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var result models.CheckResult
		err := rows.Scan(
			&result.ID,
			&result.EndpointID,
			&result.StatusCode,
			&result.ResponseTimeMs,
			&result.Success,
			&result.CheckedAt,
			&result.ErrorMessage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan latest result row: %w", err)
		}
		latest[result.EndpointID] = &result
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("latest result row iteration error: %w", err)
	}

	return latest, nil
}

func (s *resultStore) ListForEndpoint(ctx context.Context, endpointID string, since *time.Time, limit int) ([]*models.CheckResult, error) {
	query := `
		SELECT id, endpoint_id, status_code, response_time_ms, success, checked_at, error_message
		FROM check_results
		WHERE endpoint_id = $1 AND ($2::timestamptz IS NULL OR checked_at >= $2)
		ORDER BY checked_at DESC
		LIMIT $3
	`

	rows, err := s.pool.Query(ctx, query, endpointID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list results for endpoint %s: %w", endpointID, err)
	}
	defer rows.Close()

	return scanResults(rows)
}

// ListRange returns results for the endpoint set within [since, until],
// both bounds inclusive, ordered by checked_at ascending.
func (s *resultStore) ListRange(ctx context.Context, endpointIDs []string, since, until time.Time) ([]*models.CheckResult, error) {
	if len(endpointIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, endpoint_id, status_code, response_time_ms, success, checked_at, error_message
		FROM check_results
		WHERE endpoint_id = ANY($1) AND checked_at >= $2 AND checked_at <= $3
		ORDER BY checked_at ASC
	`

	rows, err := s.pool.Query(ctx, query, endpointIDs, since, until)
	if err != nil {
		return nil, fmt.Errorf("failed to list results in range: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

func (s *resultStore) Recent(ctx context.Context, endpointIDs []string, limit int) ([]*models.RecentCheck, error) {
	if len(endpointIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT r.id, r.endpoint_id, e.name, r.success, r.status_code, r.response_time_ms, r.checked_at, r.error_message
		FROM check_results r
		JOIN endpoints e ON e.id = r.endpoint_id
		WHERE r.endpoint_id = ANY($1)
		ORDER BY r.checked_at DESC
		LIMIT $2
	`

	rows, err := s.pool.Query(ctx, query, endpointIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent results: %w", err)
	}
	defer rows.Close()

	var recent []*models.RecentCheck
	for rows.Next() {
		var check models.RecentCheck
		err := rows.Scan(
			&check.ID,
			&check.EndpointID,
			&check.EndpointName,
			&check.Success,
			&check.StatusCode,
			&check.ResponseTimeMs,
			&check.CheckedAt,
			&check.ErrorMessage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recent result row: %w", err)
		}
		recent = append(recent, &check)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent result row iteration error: %w", err)
	}

	return recent, nil
}

func scanResults(rows pgx.Rows) ([]*models.CheckResult, error) {
	var results []*models.CheckResult
	for rows.Next() {
		var result models.CheckResult
		err := rows.Scan(
			&result.ID,
			&result.EndpointID,
			&result.StatusCode,
			&result.ResponseTimeMs,
			&result.Success,
			&result.CheckedAt,
			&result.ErrorMessage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		results = append(results, &result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("result row iteration error: %w", err)
	}

	return results, nil
}
