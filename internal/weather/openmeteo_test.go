package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOpenMeteoNearestHour(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "cloud_cover", r.URL.Query().Get("hourly"))
		require.Equal(t, "UTC", r.URL.Query().Get("timezone"))
		require.Equal(t, "37.774900", r.URL.Query().Get("latitude"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"hourly": {
				"time": ["2025-06-01T10:00", "2025-06-01T11:00", "2025-06-01T12:00"],
				"cloud_cover": [80, 35, 10]
			}
		}`))
	}))
	defer server.Close()

	c := NewOpenMeteoClient()
	c.baseURL = server.URL

	// 11:20 is closest to the 11:00 bucket.
	at := time.Date(2025, 6, 1, 11, 20, 0, 0, time.UTC)
	pct, err := c.CloudCover(context.Background(), 37.7749, -122.4194, at)
	require.NoError(t, err)
	require.Equal(t, 35.0, pct)
}

func TestOpenMeteoBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := NewOpenMeteoClient()
	c.baseURL = server.URL

	_, err := c.CloudCover(context.Background(), 37.7749, -122.4194, time.Now())
	require.Error(t, err)
	require.Contains(t, err.Error(), "bad status")
}

func TestOpenMeteoUnparseableTimestamps(t *testing.T) {
	// No parseable hour means no defensible value to return; the caller
	// degrades to the neutral clouds score on error.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"hourly": {
				"time": ["yesterday", "not-a-time"],
				"cloud_cover": [80, 35]
			}
		}`))
	}))
	defer server.Close()

	c := NewOpenMeteoClient()
	c.baseURL = server.URL

	_, err := c.CloudCover(context.Background(), 0, 0, time.Now())
	require.Error(t, err)
	require.Contains(t, err.Error(), "unparseable")
}

func TestOpenMeteoEmptyHourly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"hourly": {"time": [], "cloud_cover": []}}`))
	}))
	defer server.Close()

	c := NewOpenMeteoClient()
	c.baseURL = server.URL

	_, err := c.CloudCover(context.Background(), 0, 0, time.Now())
	require.Error(t, err)
}

func TestOpenWeatherCurrentClouds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-key", r.URL.Query().Get("appid"))
		w.Write([]byte(`{"clouds": {"all": 62}}`))
	}))
	defer server.Close()

	c := NewOpenWeatherClient("test-key")
	c.baseURL = server.URL

	pct, err := c.CloudCover(context.Background(), 51.5, -0.1, time.Now())
	require.NoError(t, err)
	require.Equal(t, 62.0, pct)
}

func TestOpenWeatherMissingKey(t *testing.T) {
	c := NewOpenWeatherClient("")
	_, err := c.CloudCover(context.Background(), 0, 0, time.Now())
	require.Error(t, err)
}
