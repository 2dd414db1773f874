// Command snapshot assembles one conditions snapshot and writes it to stdout
// as JSON. Intended for cron-style invocations and smoke checks; logs go to
// stderr so stdout stays machine-readable.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"

	"github.com/shorecast/swellboard/internal/adapter/blobfs"
	"github.com/shorecast/swellboard/internal/adapter/coops"
	kafkaadapter "github.com/shorecast/swellboard/internal/adapter/kafka"
	"github.com/shorecast/swellboard/internal/adapter/ndbc"
	"github.com/shorecast/swellboard/internal/adapter/stormglass"
	"github.com/shorecast/swellboard/internal/adapter/sun"
	"github.com/shorecast/swellboard/internal/aggregate"
	"github.com/shorecast/swellboard/internal/config"
	"github.com/shorecast/swellboard/internal/forecast"
	"github.com/shorecast/swellboard/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLoggerTo(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	buoys := ndbc.NewClient(cfg.NDBCBaseURL, cfg.FetchTimeout, logger)
	tides := coops.NewClient(cfg.CoopsBaseURL, cfg.TideStation, cfg.Timezone, cfg.FetchTimeout, logger)
	sunCalc := sun.New(cfg.Latitude, cfg.Longitude, cfg.Timezone)

	glass := stormglass.NewClient(cfg.StormglassBaseURL, cfg.StormglassKey, cfg.StormglassSource,
		cfg.Latitude, cfg.Longitude, cfg.FetchTimeout, logger)
	store := blobfs.New(afero.NewOsFs(), cfg.CachePath)

	var policy forecast.StalenessPolicy
	if cfg.CachePolicy == config.PolicyNoonBoundary {
		policy = forecast.NoonBoundary{Location: cfg.Timezone}
	} else {
		policy = forecast.MaxAge{Limit: cfg.CacheMaxAge}
	}
	cache := forecast.New(store, glass, policy, clockwork.NewRealClock(), metrics, logger)

	var publisher aggregate.Publisher
	var kafkaPublisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		kafkaPublisher = kafkaadapter.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		publisher = kafkaPublisher
	}

	agg := aggregate.New(buoys, cfg.BuoyStations, cache, tides, sunCalc,
		cfg.SelectionPolicy, publisher, metrics, logger)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	snap := agg.Snapshot(ctx)

	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		logger.Error("encode snapshot", "error", err)
		os.Exit(1)
	}
}
