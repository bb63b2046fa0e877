package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"
)

const openMeteoURL = "https://api.open-meteo.com/v1/forecast"

// OpenMeteoClient fetches hourly cloud-cover forecasts from Open-Meteo.
// No API key required.
type OpenMeteoClient struct {
	baseURL string
	client  *http.Client
}

// NewOpenMeteoClient creates an Open-Meteo client.
func NewOpenMeteoClient() *OpenMeteoClient {
	return &OpenMeteoClient{
		baseURL: openMeteoURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *OpenMeteoClient) Name() string { return "openmeteo" }

type openMeteoResponse struct {
	Hourly struct {
		Time       []string  `json:"time"`
		CloudCover []float64 `json:"cloud_cover"`
	} `json:"hourly"`
}

// CloudCover returns the forecast cloud cover for the hour nearest at.
func (c *OpenMeteoClient) CloudCover(ctx context.Context, lat, lon float64, at time.Time) (float64, error) {
	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%.6f", lat))
	query.Set("longitude", fmt.Sprintf("%.6f", lon))
	query.Set("hourly", "cloud_cover")
	query.Set("timezone", "UTC")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("open-meteo request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("open-meteo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("open-meteo bad status: %s", resp.Status)
	}

	var payload openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("open-meteo decode: %w", err)
	}

	hours := payload.Hourly.Time
	vals := payload.Hourly.CloudCover
	if len(hours) == 0 || len(hours) != len(vals) {
		return 0, fmt.Errorf("open-meteo hourly data missing")
	}

	// Pick the forecast hour closest to the requested instant.
	bestIdx := -1
	bestDiff := math.Inf(1)
	for i, h := range hours {
		ht, err := time.Parse("2006-01-02T15:04", h)
		if err != nil {
			continue
		}
		diff := math.Abs(ht.Sub(at.UTC()).Hours())
		if diff < bestDiff {
			bestDiff = diff
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return 0, fmt.Errorf("open-meteo hourly timestamps unparseable")
	}

	return vals[bestIdx], nil
}
