// Package aggregate assembles the unified conditions snapshot by fanning out
// to every upstream source concurrently and substituting a null default for
// each source that fails. A snapshot is always produced; individual source
// failures degrade it, they never abort it.
package aggregate

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/shorecast/swellboard/internal/domain"
	"github.com/shorecast/swellboard/internal/forecast"
	"github.com/shorecast/swellboard/internal/observability"
)

// BuoySource fetches the latest observation for one buoy station.
type BuoySource interface {
	Fetch(ctx context.Context, stationID string) (domain.Observation, error)
}

// ForecastSource yields the current (possibly cached) forecast entry.
type ForecastSource interface {
	Current(ctx context.Context) (forecast.Entry, error)
}

// TideSource fetches today's tide predictions.
type TideSource interface {
	FetchPredictions(ctx context.Context) (domain.Tides, error)
}

// SunSource computes sunrise and sunset for the day containing now.
type SunSource interface {
	Times(now time.Time) domain.SunTimes
}

// Publisher receives each assembled snapshot. Publishing is best effort and
// never affects the snapshot returned to the caller.
type Publisher interface {
	Publish(ctx context.Context, snap domain.Snapshot) error
}

// Aggregator owns the fan-out. All sources are interfaces so the snapshot
// semantics can be tested without the network.
type Aggregator struct {
	buoys     BuoySource
	stations  []string
	forecasts ForecastSource
	tides     TideSource
	sun       SunSource
	selection domain.SelectionPolicy
	publisher Publisher

	metrics *observability.Metrics
	logger  *slog.Logger
}

// New creates an Aggregator. publisher may be nil when snapshot publishing
// is disabled.
func New(
	buoys BuoySource,
	stations []string,
	forecasts ForecastSource,
	tides TideSource,
	sun SunSource,
	selection domain.SelectionPolicy,
	publisher Publisher,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *Aggregator {
	return &Aggregator{
		buoys:     buoys,
		stations:  stations,
		forecasts: forecasts,
		tides:     tides,
		sun:       sun,
		selection: selection,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Snapshot fans out to all sources, waits for every branch, and assembles
// the result. Buoy order follows the configured station order regardless of
// completion order.
func (a *Aggregator) Snapshot(ctx context.Context) domain.Snapshot {
	timer := prometheus.NewTimer(a.metrics.SnapshotDuration)
	defer timer.ObserveDuration()

	now := domain.Clock().Now()

	var wg sync.WaitGroup

	buoys := make([]domain.Observation, len(a.stations))
	for i, stationID := range a.stations {
		wg.Add(1)
		go func(i int, stationID string) {
			defer wg.Done()
			buoys[i] = a.fetchBuoy(ctx, stationID)
		}(i, stationID)
	}

	var waves domain.WaveConditions
	wg.Add(1)
	go func() {
		defer wg.Done()
		waves = a.fetchWaves(ctx, now)
	}()

	var tides domain.Tides
	wg.Add(1)
	go func() {
		defer wg.Done()
		tides = a.fetchTides(ctx)
	}()

	var sunTimes domain.SunTimes
	wg.Add(1)
	go func() {
		defer wg.Done()
		sunTimes = a.sun.Times(now)
		a.metrics.SourceFetches.WithLabelValues("sun", "success").Inc()
	}()

	wg.Wait()

	snap := domain.Snapshot{
		GeneratedAt: now,
		Buoys:       buoys,
		Waves:       waves,
		Tides:       tides,
		Sun:         sunTimes,
	}
	a.metrics.SnapshotsAssembled.Inc()

	if a.publisher != nil {
		if err := a.publisher.Publish(ctx, snap); err != nil {
			a.logger.Warn("snapshot publish failed", "error", err)
		}
	}
	return snap
}

func (a *Aggregator) fetchBuoy(ctx context.Context, stationID string) domain.Observation {
	obs, err := a.buoys.Fetch(ctx, stationID)
	if err != nil {
		a.logger.Warn("buoy fetch failed", "station", stationID, "error", err)
		a.metrics.SourceFetches.WithLabelValues("buoy", outcome(err)).Inc()
		a.metrics.SourceFallbacks.WithLabelValues("buoy").Inc()
		return domain.EmptyObservation(stationID)
	}
	a.metrics.SourceFetches.WithLabelValues("buoy", "success").Inc()
	return obs
}

func (a *Aggregator) fetchWaves(ctx context.Context, now time.Time) domain.WaveConditions {
	entry, err := a.forecasts.Current(ctx)
	if err != nil {
		a.logger.Warn("forecast fetch failed", "error", err)
		a.metrics.SourceFetches.WithLabelValues("waves", outcome(err)).Inc()
		a.metrics.SourceFallbacks.WithLabelValues("waves").Inc()
		return domain.WaveConditions{}
	}
	a.metrics.SourceFetches.WithLabelValues("waves", "success").Inc()

	sample := domain.SelectSample(entry.Samples, now, a.selection)
	if sample == nil {
		return domain.WaveConditions{}
	}
	heightFt := domain.Round1(domain.MetersToFeet(*sample.WaveHeightM))
	sampleTime := sample.Time
	return domain.WaveConditions{HeightFt: &heightFt, SampleTime: &sampleTime}
}

func (a *Aggregator) fetchTides(ctx context.Context) domain.Tides {
	tides, err := a.tides.FetchPredictions(ctx)
	if err != nil {
		a.logger.Warn("tide fetch failed", "error", err)
		a.metrics.SourceFetches.WithLabelValues("tides", outcome(err)).Inc()
		a.metrics.SourceFallbacks.WithLabelValues("tides").Inc()
		return domain.Tides{}
	}
	a.metrics.SourceFetches.WithLabelValues("tides", "success").Inc()
	return tides
}

func outcome(err error) string {
	if errors.Is(err, domain.ErrEmptyResult) {
		return "empty"
	}
	return "error"
}
