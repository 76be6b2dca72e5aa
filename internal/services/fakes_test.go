package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"PulseWatch/internal/models"
	"PulseWatch/internal/probe"
)

// fakeEndpointStore and fakeResultStore back the service tests with
// in-memory state so the scheduling and aggregation logic runs without
// postgres.
type fakeEndpointStore struct {
	mu        sync.Mutex
	endpoints []*models.Endpoint
	listErr   error
}

func (f *fakeEndpointStore) Create(ctx context.Context, endpoint *models.Endpoint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if endpoint.ID == "" {
		endpoint.ID = fmt.Sprintf("ep-%d", len(f.endpoints)+1)
	}
	endpoint.CreatedAt = time.Now().UTC()
	endpoint.UpdatedAt = endpoint.CreatedAt
	f.endpoints = append(f.endpoints, endpoint)
	return nil
}

func (f *fakeEndpointStore) GetByID(ctx context.Context, id string) (*models.Endpoint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, endpoint := range f.endpoints {
		if endpoint.ID == id {
			return endpoint, nil
		}
	}
	return nil, nil
}

func (f *fakeEndpointStore) ListAll(ctx context.Context) ([]*models.Endpoint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]*models.Endpoint(nil), f.endpoints...), nil
}

func (f *fakeEndpointStore) ListByUser(ctx context.Context, userID string, status models.EndpointStatus) ([]*models.Endpoint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []*models.Endpoint
	for _, endpoint := range f.endpoints {
		if endpoint.UserID == userID {
			list = append(list, endpoint)
		}
	}
	return list, nil
}

func (f *fakeEndpointStore) Update(ctx context.Context, id string, update models.EndpointUpdate) (*models.Endpoint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, endpoint := range f.endpoints {
		if endpoint.ID != id {
			continue
		}
		if update.Name != nil {
			endpoint.Name = *update.Name
		}
		if update.URL != nil {
			endpoint.URL = *update.URL
		}
		if update.IntervalMinutes != nil {
			endpoint.IntervalMinutes = *update.IntervalMinutes
		}
		endpoint.UpdatedAt = time.Now().UTC()
		return endpoint, nil
	}
	return nil, nil
}

func (f *fakeEndpointStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, endpoint := range f.endpoints {
		if endpoint.ID == id {
			f.endpoints = append(f.endpoints[:i], f.endpoints[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeResultStore struct {
	mu        sync.Mutex
	results   []*models.CheckResult
	names     map[string]string
	createErr error
	// failFor limits createErr to one endpoint; empty means every endpoint.
	failFor string
}

func (f *fakeResultStore) Create(ctx context.Context, result *models.CheckResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil && (f.failFor == "" || f.failFor == result.EndpointID) {
		return f.createErr
	}
	if result.ID == "" {
		result.ID = fmt.Sprintf("res-%d", len(f.results)+1)
	}
	if result.CheckedAt.IsZero() {
		result.CheckedAt = time.Now().UTC()
	}
	f.results = append(f.results, result)
	return nil
}

func (f *fakeResultStore) LatestForEndpoint(ctx context.Context, endpointID string) (*models.CheckResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *models.CheckResult
	for _, result := range f.results {
		if result.EndpointID != endpointID {
			continue
		}
		if latest == nil || result.CheckedAt.After(latest.CheckedAt) {
			latest = result
		}
	}
	return latest, nil
}

func (f *fakeResultStore) LatestPerEndpoint(ctx context.Context, endpointIDs []string) (map[string]*models.CheckResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wanted := make(map[string]bool, len(endpointIDs))
	for _, id := range endpointIDs {
		wanted[id] = true
	}
	latest := make(map[string]*models.CheckResult)
	for _, result := range f.results {
		if !wanted[result.EndpointID] {
			continue
		}
		current := latest[result.EndpointID]
		if current == nil || result.CheckedAt.After(current.CheckedAt) {
			latest[result.EndpointID] = result
		}
	}
	return latest, nil
}

func (f *fakeResultStore) ListForEndpoint(ctx context.Context, endpointID string, since *time.Time, limit int) ([]*models.CheckResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []*models.CheckResult
	for _, result := range f.results {
		if result.EndpointID != endpointID {
			continue
		}
		if since != nil && result.CheckedAt.Before(*since) {
			continue
		}
		list = append(list, result)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CheckedAt.After(list[j].CheckedAt) })
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (f *fakeResultStore) ListRange(ctx context.Context, endpointIDs []string, since, until time.Time) ([]*models.CheckResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wanted := make(map[string]bool, len(endpointIDs))
	for _, id := range endpointIDs {
		wanted[id] = true
	}
	var list []*models.CheckResult
	for _, result := range f.results {
		if !wanted[result.EndpointID] {
			continue
		}
		if result.CheckedAt.Before(since) || result.CheckedAt.After(until) {
			continue
		}
		list = append(list, result)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CheckedAt.Before(list[j].CheckedAt) })
	return list, nil
}

func (f *fakeResultStore) Recent(ctx context.Context, endpointIDs []string, limit int) ([]*models.RecentCheck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wanted := make(map[string]bool, len(endpointIDs))
	for _, id := range endpointIDs {
		wanted[id] = true
	}
	var list []*models.CheckResult
	for _, result := range f.results {
		if wanted[result.EndpointID] {
			list = append(list, result)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CheckedAt.After(list[j].CheckedAt) })
	if len(list) > limit {
		list = list[:limit]
	}
	recent := make([]*models.RecentCheck, 0, len(list))
	for _, result := range list {
		recent = append(recent, &models.RecentCheck{
			ID:             result.ID,
			EndpointID:     result.EndpointID,
			EndpointName:   f.names[result.EndpointID],
			Success:        result.Success,
			StatusCode:     result.StatusCode,
			ResponseTimeMs: result.ResponseTimeMs,
			CheckedAt:      result.CheckedAt,
			ErrorMessage:   result.ErrorMessage,
		})
	}
	return recent, nil
}

type fakeUserStore struct {
	mu    sync.Mutex
	users []*models.User
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(f.users)+1)
	}
	user.CreatedAt = time.Now().UTC()
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, nil
}

// fakeProber returns canned results per URL; unknown URLs succeed with 200.
type fakeProber struct {
	mu      sync.Mutex
	results map[string]probe.Result
	calls   []string
}

func (f *fakeProber) Probe(ctx context.Context, target string) probe.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, target)
	if result, ok := f.results[target]; ok {
		return result
	}
	code := 200
	return probe.Result{StatusCode: &code, ElapsedMs: 12, Success: true}
}

func (f *fakeProber) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
