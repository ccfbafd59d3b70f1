package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/agrivision/agrivision/internal/domain/weather"
)

const defaultBaseURL = "https://api.open-meteo.com/v1/forecast"

const currentFields = "temperature_2m,relative_humidity_2m,precipitation,weather_code,is_day"

// Client fetches current conditions from the Open-Meteo forecast API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries uint64
}

// NewClient builds an API client.
func NewClient(baseURL string) *Client {
	endpoint := strings.TrimSpace(baseURL)
	if endpoint == "" {
		endpoint = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		maxRetries: 2,
	}
}

// Current retrieves the current-conditions block for a coordinate. Transient
// failures (network, 5xx) are retried with exponential backoff.
func (c *Client) Current(ctx context.Context, lat, lon float64) (weather.Observation, error) {
	endpoint := c.buildURL(lat, lon)

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)
	body, err := backoff.RetryWithData(func() ([]byte, error) {
		return c.fetch(ctx, endpoint)
	}, bo)
	if err != nil {
		return weather.Observation{}, err
	}

	var raw apiResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return weather.Observation{}, fmt.Errorf("decode weather response: %w", err)
	}
	if raw.Current == nil {
		return weather.Observation{}, fmt.Errorf("weather response missing current conditions block")
	}

	observedAt := time.Time{}
	if ts, parseErr := time.Parse("2006-01-02T15:04", raw.Current.Time); parseErr == nil {
		observedAt = ts
	}

	return weather.Observation{
		Temperature:   raw.Current.Temperature,
		Humidity:      raw.Current.Humidity,
		Precipitation: raw.Current.Precipitation,
		Code:          raw.Current.WeatherCode,
		IsDay:         raw.Current.IsDay == 1,
		ObservedAt:    observedAt,
	}, nil
}

func (c *Client) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("build weather request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		failure := fmt.Errorf("weather request error: status=%d body=%s", resp.StatusCode, string(payload))
		if resp.StatusCode < 500 {
			return nil, backoff.Permanent(failure)
		}
		return nil, failure
	}

	return io.ReadAll(resp.Body)
}

func (c *Client) buildURL(lat, lon float64) string {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("current", currentFields)
	params.Set("timezone", "auto")
	return c.baseURL + "?" + params.Encode()
}

type apiResponse struct {
	Current *currentBlock `json:"current"`
}

type currentBlock struct {
	Time          string  `json:"time"`
	Temperature   float64 `json:"temperature_2m"`
	Humidity      float64 `json:"relative_humidity_2m"`
	Precipitation float64 `json:"precipitation"`
	WeatherCode   int     `json:"weather_code"`
	IsDay         int     `json:"is_day"`
}
