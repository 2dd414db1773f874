// Package coops fetches tide predictions from the NOAA CO-OPS datagetter API.
package coops

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shorecast/swellboard/internal/domain"
)

// coopsTimeLayout is the timestamp format CO-OPS uses in prediction rows.
const coopsTimeLayout = "2006-01-02 15:04"

// Client fetches hilo tide predictions for one fixed station.
type Client struct {
	baseURL    string
	station    string
	loc        *time.Location
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a CO-OPS client. loc is the station's local time zone;
// the upstream is queried in GMT and timestamps are converted before they
// leave this package.
func NewClient(baseURL, station string, loc *time.Location, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		station:    station,
		loc:        loc,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// FetchPredictions retrieves today's predictions and returns the first HIGH
// and first LOW event encountered, times expressed in the station's local
// clock. Rows with unparseable times or heights are skipped.
func (c *Client) FetchPredictions(ctx context.Context) (domain.Tides, error) {
	params := url.Values{
		"date":        {"today"},
		"station":     {c.station},
		"product":     {"predictions"},
		"datum":       {"MLLW"},
		"time_zone":   {"gmt"},
		"interval":    {"hilo"},
		"units":       {"english"},
		"format":      {"json"},
		"application": {"swellboard"},
	}

	requestURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return domain.Tides{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Tides{}, fmt.Errorf("station %s: %w: %v", c.station, domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Tides{}, fmt.Errorf("station %s: %w: status %d", c.station, domain.ErrSourceUnavailable, resp.StatusCode)
	}

	var payload tideResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.Tides{}, fmt.Errorf("decode predictions: %w: %v", domain.ErrMalformedResponse, err)
	}
	if len(payload.Predictions) == 0 {
		return domain.Tides{}, fmt.Errorf("station %s: %w", c.station, domain.ErrEmptyResult)
	}

	var tides domain.Tides
	for _, pred := range payload.Predictions {
		eventTime, err := time.ParseInLocation(coopsTimeLayout, pred.Time, time.UTC)
		if err != nil {
			continue
		}
		height, err := strconv.ParseFloat(pred.Height, 64)
		if err != nil {
			continue
		}

		event := &domain.TidePrediction{
			Time:     eventTime.In(c.loc),
			HeightFt: height,
		}
		switch pred.Type {
		case "H":
			event.Kind = domain.TideHigh
			if tides.High == nil {
				tides.High = event
			}
		case "L":
			event.Kind = domain.TideLow
			if tides.Low == nil {
				tides.Low = event
			}
		}
		if tides.High != nil && tides.Low != nil {
			break
		}
	}

	if tides.High == nil && tides.Low == nil {
		return domain.Tides{}, fmt.Errorf("station %s: no usable predictions: %w", c.station, domain.ErrEmptyResult)
	}
	return tides, nil
}

// CO-OPS API response types. Heights arrive as strings.

type tideResponse struct {
	Predictions []struct {
		Time   string `json:"t"`
		Height string `json:"v"`
		Type   string `json:"type"` // "H" or "L"
	} `json:"predictions"`
}
