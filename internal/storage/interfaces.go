package storage

import (
	"PulseWatch/internal/models"
	"context"
	"time"
)

// EndpointStore is the persistence surface for monitored endpoints.
type EndpointStore interface {
	Create(ctx context.Context, endpoint *models.Endpoint) error
	GetByID(ctx context.Context, id string) (*models.Endpoint, error)
	ListAll(ctx context.Context) ([]*models.Endpoint, error)
	ListByUser(ctx context.Context, userID string, status models.EndpointStatus) ([]*models.Endpoint, error)
	Update(ctx context.Context, id string, update models.EndpointUpdate) (*models.Endpoint, error)
	Delete(ctx context.Context, id string) error
}

// ResultStore is append-only for check results: Create inserts, everything
// else reads.
type ResultStore interface {
	Create(ctx context.Context, result *models.CheckResult) error
	LatestForEndpoint(ctx context.Context, endpointID string) (*models.CheckResult, error)
	LatestPerEndpoint(ctx context.Context, endpointIDs []string) (map[string]*models.CheckResult, error)
	ListForEndpoint(ctx context.Context, endpointID string, since *time.Time, limit int) ([]*models.CheckResult, error)
	ListRange(ctx context.Context, endpointIDs []string, since, until time.Time) ([]*models.CheckResult, error)
	Recent(ctx context.Context, endpointIDs []string, limit int) ([]*models.RecentCheck, error)
}

// UserStore handles account records.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Cache is a TTL'd read-through cache for dashboard and analytics payloads.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Close() error
}
