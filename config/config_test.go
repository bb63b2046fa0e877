package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, 37.7749, cfg.Observer.Latitude)
	require.Equal(t, -122.4194, cfg.Observer.Longitude)
	require.Equal(t, 60, cfg.Search.DaysAhead)
	require.Equal(t, 3, cfg.Search.MaxWindows)
	require.Equal(t, "fine", cfg.Search.Granularity)
	require.True(t, cfg.Search.Refraction)
	require.Equal(t, "openmeteo", cfg.Weather.Provider)
	require.Equal(t, 8001, cfg.API.Port)
	require.False(t, cfg.MQTT.Enabled)
	require.Equal(t, 5*time.Minute, cfg.Monitor.Interval)
	require.Equal(t, []string{"saturn"}, cfg.Monitor.Targets)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
observer:
  latitude: 51.4769
  longitude: 0.0
  elevation: 47
search:
  days_ahead: 30
  granularity: daily
monitor:
  interval: 1m
  targets:
    - jupiter
    - mars
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 51.4769, cfg.Observer.Latitude)
	require.Equal(t, 47.0, cfg.Observer.Elevation)
	require.Equal(t, 30, cfg.Search.DaysAhead)
	require.Equal(t, "daily", cfg.Search.Granularity)
	require.Equal(t, time.Minute, cfg.Monitor.Interval)
	require.Equal(t, []string{"jupiter", "mars"}, cfg.Monitor.Targets)

	// Untouched keys keep their defaults.
	require.Equal(t, 3, cfg.Search.MaxWindows)
	require.Equal(t, 8001, cfg.API.Port)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
