package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeSuccess2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	p := New(2 * time.Second)
	result := p.Probe(context.Background(), ts.URL)

	require.NotNil(t, result.StatusCode)
	assert.Equal(t, 204, *result.StatusCode)
	assert.True(t, result.Success)
	assert.Empty(t, result.ErrorMessage)
	assert.GreaterOrEqual(t, result.ElapsedMs, 0)
}

func TestProbeHTTPFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ts.Close()

	p := New(2 * time.Second)
	result := p.Probe(context.Background(), ts.URL)

	require.NotNil(t, result.StatusCode)
	assert.Equal(t, 404, *result.StatusCode)
	assert.False(t, result.Success)
	assert.Equal(t, "HTTP 404", result.ErrorMessage)
}

func TestProbeTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer ts.Close()

	p := New(50 * time.Millisecond)
	result := p.Probe(context.Background(), ts.URL)

	assert.Nil(t, result.StatusCode)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.ErrorMessage)
	assert.GreaterOrEqual(t, result.ElapsedMs, 0)
}

func TestProbeConnectionRefused(t *testing.T) {
	// Grab a port nothing listens on.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	p := New(2 * time.Second)
	result := p.Probe(context.Background(), url)

	assert.Nil(t, result.StatusCode)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.ErrorMessage)
}

func TestProbeSendsUserAgent(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer ts.Close()

	p := New(2 * time.Second)
	result := p.Probe(context.Background(), ts.URL)

	assert.True(t, result.Success)
	assert.Equal(t, "PulseWatch/1.0", gotUA)
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"http://example.com", "http://example.com", false},
		{"https://example.com/health", "https://example.com/health", false},
		{"example.com", "http://example.com", false},
		{"example.com:8080/path", "http://example.com:8080/path", false},
	}

	for _, tt := range tests {
		got, err := normalizeURL(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}
