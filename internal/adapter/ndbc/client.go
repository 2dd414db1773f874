// Package ndbc fetches NDBC realtime2 standard meteorological reports and
// normalizes them into buoy observations.
package ndbc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/shorecast/swellboard/internal/domain"
)

// Client fetches buoy reports from the NDBC realtime2 feed.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an NDBC client. baseURL is the feed root without a
// trailing slash, e.g. "https://www.ndbc.noaa.gov".
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Fetch retrieves the latest report for one station and extracts an
// observation. Rows are scanned in report order (most recent reading first)
// and each quantity independently takes the first row carrying a valid value,
// so air temperature and wind speed may come from different rows when a
// sensor's newest reading is missing. That maximizes availability under
// partial sensor outage.
func (c *Client) Fetch(ctx context.Context, stationID string) (domain.Observation, error) {
	url := fmt.Sprintf("%s/data/realtime2/%s.txt", c.baseURL, stationID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Observation{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Observation{}, fmt.Errorf("station %s: %w: %v", stationID, domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Observation{}, fmt.Errorf("station %s: %w: status %d", stationID, domain.ErrSourceUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Observation{}, fmt.Errorf("station %s: %w: %v", stationID, domain.ErrSourceUnavailable, err)
	}

	report, err := domain.ParseReport(string(body))
	if err != nil {
		return domain.Observation{}, fmt.Errorf("station %s: %w", stationID, err)
	}
	if len(report.Rows()) == 0 {
		return domain.Observation{}, fmt.Errorf("station %s: %w", stationID, domain.ErrEmptyResult)
	}

	return extractObservation(stationID, report), nil
}

// extractObservation applies the per-field newest-available policy over the
// report rows and converts values to display units.
func extractObservation(stationID string, report *domain.Report) domain.Observation {
	var (
		wdir = report.Column("WDIR")
		wspd = report.Column("WSPD")
		gst  = report.Column("GST")
		atmp = report.Column("ATMP")
		wtmp = report.Column("WTMP")
	)

	obs := domain.Observation{StationID: stationID}
	for _, row := range report.Rows() {
		if obs.WindDir == nil {
			if v := domain.Numeric(row, wdir); v != nil {
				card := domain.DegreesToCardinal(*v)
				obs.WindDir = &card
			}
		}
		if obs.WindKts == nil {
			if v := domain.Numeric(row, wspd); v != nil {
				kts := domain.Round1(domain.MetersPerSecondToKnots(*v))
				obs.WindKts = &kts
			}
		}
		if obs.GustKts == nil {
			if v := domain.Numeric(row, gst); v != nil {
				kts := domain.Round1(domain.MetersPerSecondToKnots(*v))
				obs.GustKts = &kts
			}
		}
		if obs.AirTempF == nil {
			if v := domain.Numeric(row, atmp); v != nil {
				f := domain.Round1(domain.CelsiusToFahrenheit(*v))
				obs.AirTempF = &f
			}
		}
		if obs.WaterTempF == nil {
			if v := domain.Numeric(row, wtmp); v != nil {
				f := domain.Round1(domain.CelsiusToFahrenheit(*v))
				obs.WaterTempF = &f
			}
		}
		if complete(obs) {
			break
		}
	}
	return obs
}

func complete(o domain.Observation) bool {
	return o.WindDir != nil && o.WindKts != nil && o.GustKts != nil &&
		o.AirTempF != nil && o.WaterTempF != nil
}
