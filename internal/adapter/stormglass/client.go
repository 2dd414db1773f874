// Package stormglass fetches wave-height point forecasts from a
// Stormglass-style API: hourly entries with ISO-8601 timestamps and the
// magnitude nested under a data-source key. The upstream is expensive and
// rate-limited, which is why callers always go through the forecast cache.
package stormglass

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/shorecast/swellboard/internal/domain"
)

// Client fetches hourly wave forecasts for one fixed coordinate.
type Client struct {
	baseURL    string
	key        string
	source     string
	lat, lon   float64
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	logger     *slog.Logger
}

// NewClient creates a forecast client. source selects which data-source key
// to read the wave height from (e.g. "noaa" or "sg").
func NewClient(baseURL, key, source string, lat, lon float64, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		key:        key,
		source:     source,
		lat:        lat,
		lon:        lon,
		httpClient: &http.Client{Timeout: timeout},
		// The cache keeps calls rare; the limiter guards against refresh
		// loops hammering a paid quota.
		limiter: rate.NewLimiter(rate.Every(10*time.Second), 1),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "stormglass",
			Timeout: 2 * time.Minute,
		}),
		logger: logger,
	}
}

// FetchForecast retrieves the hourly wave-height series. Entries whose
// magnitude is missing for the configured source key are retained with a nil
// height so the time axis stays intact for selection.
func (c *Client) FetchForecast(ctx context.Context) ([]domain.ForecastSample, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w: %v", domain.ErrSourceUnavailable, err)
	}

	params := url.Values{
		"lat":    {strconv.FormatFloat(c.lat, 'f', 4, 64)},
		"lng":    {strconv.FormatFloat(c.lon, 'f', 4, 64)},
		"params": {"waveHeight"},
	}
	fullURL := fmt.Sprintf("%s/weather/point?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", c.key)

	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, doErr := c.httpClient.Do(req)
		if doErr != nil {
			return nil, doErr
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("status %d", resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("circuit open: %w: %v", domain.ErrSourceUnavailable, err)
		}
		return nil, fmt.Errorf("forecast request: %w: %v", domain.ErrSourceUnavailable, err)
	}

	resp := result.(*http.Response)
	defer resp.Body.Close()

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode forecast: %w: %v", domain.ErrMalformedResponse, err)
	}
	if len(payload.Hours) == 0 {
		return nil, fmt.Errorf("forecast: %w", domain.ErrEmptyResult)
	}

	samples := make([]domain.ForecastSample, 0, len(payload.Hours))
	for _, h := range payload.Hours {
		ts, parseErr := time.Parse(time.RFC3339, h.Time)
		if parseErr != nil {
			return nil, fmt.Errorf("timestamp %q: %w", h.Time, domain.ErrMalformedResponse)
		}
		sample := domain.ForecastSample{Time: ts.UTC()}
		if v, ok := h.WaveHeight[c.source]; ok {
			height := v
			sample.WaveHeightM = &height
		}
		samples = append(samples, sample)
	}

	sort.Slice(samples, func(i, j int) bool { return samples[i].Time.Before(samples[j].Time) })
	return samples, nil
}

// Upstream API response types.

type response struct {
	Hours []hour `json:"hours"`
}

type hour struct {
	Time       string             `json:"time"`
	WaveHeight map[string]float64 `json:"waveHeight"`
}
