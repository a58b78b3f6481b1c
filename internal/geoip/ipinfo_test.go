package geoip

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ipatlas/geotrace/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string, timeout time.Duration) *IPInfoClient {
	return NewIPInfoClient(&config.Config{
		IPInfoBaseURL: baseURL,
		IPInfoToken:   "test-token",
		GeoTimeout:    timeout,
	})
}

func TestIPInfoClient_Resolve(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/8.8.8.8/geo", r.URL.Path)
		assert.Equal(t, "test-token", r.URL.Query().Get("token"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ip":"8.8.8.8","city":"Mountain View","region":"California","country":"US","loc":"37.4056,-122.0775","anycast":true}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, time.Second)
	geo, err := client.Resolve(context.Background(), "8.8.8.8")
	require.NoError(t, err)

	assert.Equal(t, "Mountain View", geo.City)
	assert.Equal(t, "US", geo.Country)
	assert.Equal(t, "37.4056,-122.0775", geo.Loc)
	assert.Equal(t, true, geo.Extra["anycast"])
}

func TestIPInfoClient_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"title":"Unauthorized"}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, time.Second)
	_, err := client.Resolve(context.Background(), "8.8.8.8")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestIPInfoClient_NoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, time.Second)
	_, err := client.Resolve(context.Background(), "203.0.113.9")
	assert.ErrorIs(t, err, ErrNoData)
}

func TestIPInfoClient_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, time.Second)
	_, err := client.Resolve(context.Background(), "8.8.8.8")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestIPInfoClient_ServerErrorIsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, time.Second)
	_, err := client.Resolve(context.Background(), "8.8.8.8")
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestIPInfoClient_TransportFailureIsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	client := newTestClient(srv.URL, time.Second)
	_, err := client.Resolve(context.Background(), "8.8.8.8")
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestIPInfoClient_TimeoutIsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 20*time.Millisecond)
	start := time.Now()
	_, err := client.Resolve(context.Background(), "8.8.8.8")
	assert.ErrorIs(t, err, ErrUnreachable)
	assert.Less(t, time.Since(start), 150*time.Millisecond)
}
