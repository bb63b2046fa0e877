package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const openWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

// OpenWeatherClient reads current cloud cover from OpenWeatherMap.
// Requires an API key; reports current conditions only, so the forecast
// instant is ignored.
type OpenWeatherClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewOpenWeatherClient creates an OpenWeatherMap client.
func NewOpenWeatherClient(apiKey string) *OpenWeatherClient {
	return &OpenWeatherClient{
		apiKey:  apiKey,
		baseURL: openWeatherURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *OpenWeatherClient) Name() string { return "openweather" }

type openWeatherResponse struct {
	Clouds struct {
		All float64 `json:"all"`
	} `json:"clouds"`
}

// CloudCover returns the current cloud cover at the location.
func (c *OpenWeatherClient) CloudCover(ctx context.Context, lat, lon float64, _ time.Time) (float64, error) {
	if c.apiKey == "" {
		return 0, fmt.Errorf("openweather api key is empty")
	}

	query := url.Values{}
	query.Set("appid", c.apiKey)
	query.Set("lat", fmt.Sprintf("%.6f", lat))
	query.Set("lon", fmt.Sprintf("%.6f", lon))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("openweather request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("openweather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("openweather bad status: %s", resp.Status)
	}

	var payload openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("openweather decode: %w", err)
	}

	return payload.Clouds.All, nil
}
