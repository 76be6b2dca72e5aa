package services

import (
	"context"
	"testing"
	"time"

	"PulseWatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEndpointFixture() (*fakeEndpointStore, *fakeResultStore, *EndpointService) {
	endpoints := &fakeEndpointStore{}
	results := &fakeResultStore{names: map[string]string{}}
	svc := NewEndpointService(endpoints, results, nil)
	return endpoints, results, svc
}

func TestCreateEndpointDefaultsAndValidation(t *testing.T) {
	_, _, svc := newEndpointFixture()

	endpoint, err := svc.Create(context.Background(), "u1", "API", "https://api.example.com", 0)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultIntervalMinutes, endpoint.IntervalMinutes)

	_, err = svc.Create(context.Background(), "u1", "", "https://api.example.com", 5)
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), "u1", "bad", "ftp://files.example.com", 5)
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), "u1", "bad interval", "https://api.example.com", -1)
	assert.Error(t, err)
}

func TestGetScopedToOwner(t *testing.T) {
	endpoints, _, svc := newEndpointFixture()

	mine := addEndpoint(endpoints, "mine", "http://mine.test", 5)
	theirs := &models.Endpoint{ID: "theirs", UserID: "u2", Name: "theirs", URL: "http://theirs.test", IntervalMinutes: 5}
	require.NoError(t, endpoints.Create(context.Background(), theirs))

	got, err := svc.Get(context.Background(), "u1", mine.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "mine", got.ID)

	// Another user's endpoint looks like it does not exist.
	got, err = svc.Get(context.Background(), "u1", "theirs")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListAttachesLatestCheck(t *testing.T) {
	endpoints, results, svc := newEndpointFixture()
	now := time.Now().UTC()

	addEndpoint(endpoints, "a", "http://a.test", 5)
	addEndpoint(endpoints, "b", "http://b.test", 5)
	addResult(results, "a", now.Add(-time.Minute), true, 20)

	list, err := svc.List(context.Background(), "u1", "")
	require.NoError(t, err)
	require.Len(t, list, 2)

	byID := map[string]*models.EndpointWithLatest{}
	for _, item := range list {
		byID[item.ID] = item
	}
	require.NotNil(t, byID["a"].LatestCheck)
	assert.True(t, byID["a"].LatestCheck.Success)
	assert.Nil(t, byID["b"].LatestCheck)
}

func TestListChecksClampsLimitAndIgnoresBadSince(t *testing.T) {
	endpoints, results, svc := newEndpointFixture()
	now := time.Now().UTC()

	addEndpoint(endpoints, "a", "http://a.test", 5)
	for i := 0; i < 120; i++ {
		addResult(results, "a", now.Add(-time.Duration(i)*time.Minute), true, 10)
	}

	// Zero limit means the default of 100.
	checks, err := svc.ListChecks(context.Background(), "u1", "a", "", 0)
	require.NoError(t, err)
	assert.Len(t, checks, 100)

	// Absurd limits clamp to 500; malformed since is ignored.
	checks, err = svc.ListChecks(context.Background(), "u1", "a", "yesterday-ish", 10_000)
	require.NoError(t, err)
	assert.Len(t, checks, 120)

	// A valid since narrows the window.
	since := now.Add(-30 * time.Minute).Format(time.RFC3339)
	checks, err = svc.ListChecks(context.Background(), "u1", "a", since, 0)
	require.NoError(t, err)
	assert.Len(t, checks, 31)
}

func TestDeleteScopedToOwner(t *testing.T) {
	endpoints, _, svc := newEndpointFixture()

	addEndpoint(endpoints, "mine", "http://mine.test", 5)

	deleted, err := svc.Delete(context.Background(), "u2", "mine")
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = svc.Delete(context.Background(), "u1", "mine")
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestUpdateValidatesFields(t *testing.T) {
	endpoints, _, svc := newEndpointFixture()
	addEndpoint(endpoints, "a", "http://a.test", 5)

	badURL := "ftp://nope"
	_, err := svc.Update(context.Background(), "u1", "a", models.EndpointUpdate{URL: &badURL})
	assert.Error(t, err)

	newName := "renamed"
	interval := 15
	updated, err := svc.Update(context.Background(), "u1", "a", models.EndpointUpdate{Name: &newName, IntervalMinutes: &interval})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, 15, updated.IntervalMinutes)
	assert.Equal(t, "http://a.test", updated.URL)
}
