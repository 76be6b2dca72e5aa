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

type endpointStore struct {
	pool *pgxpool.Pool
}

func NewEndpointStore(pool *pgxpool.Pool) EndpointStore {
	return &endpointStore{pool: pool}
}

func (s *endpointStore) Create(ctx context.Context, endpoint *models.Endpoint) error {
	endpoint.ID = uuidutil.New()
	endpoint.CreatedAt = time.Now().UTC()
	endpoint.UpdatedAt = endpoint.CreatedAt

	query := `INSERT INTO endpoints (id, user_id, name, url, interval_minutes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.pool.Exec(ctx, query,
		endpoint.ID,
		endpoint.UserID,
		endpoint.Name,
		endpoint.URL,
		endpoint.IntervalMinutes,
		endpoint.CreatedAt,
		endpoint.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create endpoint: %w", err)
	}

	return nil
}

func (s *endpointStore) GetByID(ctx context.Context, id string) (*models.Endpoint, error) {
	query := `SELECT id, user_id, name, url, interval_minutes, created_at, updated_at
		FROM endpoints WHERE id = $1`

	var endpoint models.Endpoint
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&endpoint.ID,
		&endpoint.UserID,
		&endpoint.Name,
		&endpoint.URL,
		&endpoint.IntervalMinutes,
		&endpoint.CreatedAt,
		&endpoint.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get endpoint %s: %w", id, err)
	}

	return &endpoint, nil
}

func (s *endpointStore) ListAll(ctx context.Context) ([]*models.Endpoint, error) {
	query := `
		SELECT id, user_id, name, url, interval_minutes, created_at, updated_at
		FROM endpoints
		ORDER BY created_at DESC
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list endpoints: failed to query: %w", err)
	}
	defer rows.Close()

	return scanEndpoints(rows)
}

// ListByUser returns the user's endpoints, newest first. When status is set,
// only endpoints whose latest check matches it are returned; endpoints with
// no checks never match a status filter.
func (s *endpointStore) ListByUser(ctx context.Context, userID string, status models.EndpointStatus) ([]*models.Endpoint, error) {
	query := `
		SELECT id, user_id, name, url, interval_minutes, created_at, updated_at
		FROM endpoints
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	args := []interface{}{userID}

	if status == models.EndpointStatusUp || status == models.EndpointStatusDown {
		query = `
			SELECT e.id, e.user_id, e.name, e.url, e.interval_minutes, e.created_at, e.updated_at
			FROM endpoints e
			JOIN LATERAL (
				SELECT success FROM check_results
				WHERE endpoint_id = e.id
				ORDER BY checked_at DESC
				LIMIT 1
			) latest ON true
			WHERE e.user_id = $1 AND latest.success = $2
			ORDER BY e.created_at DESC
		`
		args = append(args, status == models.EndpointStatusUp)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list endpoints for user %s: %w", userID, err)
	}
	defer rows.Close()

	return scanEndpoints(rows)
}

func (s *endpointStore) Update(ctx context.Context, id string, update models.EndpointUpdate) (*models.Endpoint, error) {
	query := `
		UPDATE endpoints
		SET name = COALESCE($2, name),
			url = COALESCE($3, url),
			interval_minutes = COALESCE($4, interval_minutes),
			updated_at = $5
		WHERE id = $1
		RETURNING id, user_id, name, url, interval_minutes, created_at, updated_at
	`

	var endpoint models.Endpoint
	err := s.pool.QueryRow(ctx, query, id, update.Name, update.URL, update.IntervalMinutes, time.Now().UTC()).Scan(
		&endpoint.ID,
		&endpoint.UserID,
		&endpoint.Name,
		&endpoint.URL,
		&endpoint.IntervalMinutes,
		&endpoint.CreatedAt,
		&endpoint.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to update endpoint %s: %w", id, err)
	}

	return &endpoint, nil
}

// Delete removes the endpoint; its check history goes with it via ON DELETE CASCADE.
func (s *endpointStore) Delete(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM endpoints WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete endpoint %s: %w", id, err)
	}
	return nil
}

func scanEndpoints(rows pgx.Rows) ([]*models.Endpoint, error) {
	var endpoints []*models.Endpoint
	for rows.Next() {
		var endpoint models.Endpoint
		err := rows.Scan(
			&endpoint.ID,
			&endpoint.UserID,
			&endpoint.Name,
			&endpoint.URL,
			&endpoint.IntervalMinutes,
			&endpoint.CreatedAt,
			&endpoint.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan endpoint row: %w", err)
		}
		endpoints = append(endpoints, &endpoint)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("endpoint row iteration error: %w", err)
	}

	return endpoints, nil
}
