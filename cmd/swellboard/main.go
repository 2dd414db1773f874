package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"

	"github.com/shorecast/swellboard/internal/adapter/blobfs"
	"github.com/shorecast/swellboard/internal/adapter/coops"
	"github.com/shorecast/swellboard/internal/adapter/httpapi"
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

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
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

	// Snapshot publishing is feature-flagged via KAFKA_BROKERS / KAFKA_ENABLED.
	var publisher aggregate.Publisher
	var kafkaPublisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		kafkaPublisher = kafkaadapter.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		publisher = kafkaPublisher
		logger.Info("snapshot publishing enabled", "topic", cfg.KafkaTopic)
	} else {
		logger.Info("snapshot publishing disabled")
	}

	agg := aggregate.New(buoys, cfg.BuoyStations, cache, tides, sunCalc,
		cfg.SelectionPolicy, publisher, metrics, logger)

	srv := httpapi.NewServer(cfg.HTTPAddr, agg, cfg.RequestTimeout, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
