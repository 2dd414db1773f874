package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/shorecast/swellboard/internal/domain"
)

// Staleness policy names accepted by FORECAST_CACHE_POLICY.
const (
	PolicyMaxAge       = "max-age"
	PolicyNoonBoundary = "noon-boundary"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration

	// Buoy observations (NDBC realtime2).
	BuoyStations []string
	NDBCBaseURL  string
	FetchTimeout time.Duration

	// Tide predictions (NOAA CO-OPS).
	TideStation  string
	CoopsBaseURL string

	// Fixed display coordinate and its local clock.
	Latitude  float64
	Longitude float64
	Timezone  *time.Location

	// Wave forecast upstream.
	StormglassBaseURL string
	StormglassKey     string
	StormglassSource  string

	// Forecast cache.
	CachePath       string
	CachePolicy     string
	CacheMaxAge     time.Duration
	SelectionPolicy domain.SelectionPolicy

	// Optional snapshot publishing.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from the environment (and a .env file when
// present), applying defaults where unset.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	requestTimeout, err := parseDuration("REQUEST_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	fetchTimeout, err := parseDuration("FETCH_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cacheMaxAge, err := parseDuration("FORECAST_CACHE_MAX_AGE", "4h")
	if err != nil {
		return nil, err
	}

	lat, err := parseFloat("STATION_LAT", "36.9341")
	if err != nil {
		return nil, err
	}
	lon, err := parseFloat("STATION_LON", "-122.0350")
	if err != nil {
		return nil, err
	}

	tzName := envOrDefault("STATION_TZ", "America/Los_Angeles")
	tz, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid STATION_TZ %q: %w", tzName, err)
	}

	kafkaBrokers := splitList(os.Getenv("KAFKA_BROKERS"))
	kafkaEnabled := len(kafkaBrokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		RequestTimeout:  requestTimeout,

		BuoyStations: splitList(envOrDefault("NDBC_STATIONS", "46042,46236")),
		NDBCBaseURL:  envOrDefault("NDBC_BASE_URL", "https://www.ndbc.noaa.gov"),
		FetchTimeout: fetchTimeout,

		TideStation:  envOrDefault("COOPS_STATION", "9413745"),
		CoopsBaseURL: envOrDefault("COOPS_BASE_URL", "https://api.tidesandcurrents.noaa.gov/api/prod/datagetter"),

		Latitude:  lat,
		Longitude: lon,
		Timezone:  tz,

		StormglassBaseURL: envOrDefault("STORMGLASS_BASE_URL", "https://api.stormglass.io/v2"),
		StormglassKey:     os.Getenv("STORMGLASS_KEY"),
		StormglassSource:  envOrDefault("STORMGLASS_SOURCE", "noaa"),

		CachePath:       envOrDefault("FORECAST_CACHE_PATH", "data/forecast.json"),
		CachePolicy:     envOrDefault("FORECAST_CACHE_POLICY", PolicyMaxAge),
		CacheMaxAge:     cacheMaxAge,
		SelectionPolicy: domain.SelectionPolicy(envOrDefault("SELECTION_POLICY", string(domain.SelectNearest))),

		KafkaEnabled: kafkaEnabled,
		KafkaBrokers: kafkaBrokers,
		KafkaTopic:   envOrDefault("KAFKA_TOPIC", "marine-conditions"),
	}

	if len(cfg.BuoyStations) == 0 {
		return nil, errors.New("NDBC_STATIONS is required")
	}
	if cfg.TideStation == "" {
		return nil, errors.New("COOPS_STATION is required")
	}
	if cfg.CachePolicy != PolicyMaxAge && cfg.CachePolicy != PolicyNoonBoundary {
		return nil, fmt.Errorf("unknown FORECAST_CACHE_POLICY %q", cfg.CachePolicy)
	}
	if cfg.CacheMaxAge <= 0 {
		return nil, errors.New("FORECAST_CACHE_MAX_AGE must be positive")
	}
	if !cfg.SelectionPolicy.Valid() {
		return nil, fmt.Errorf("unknown SELECTION_POLICY %q", cfg.SelectionPolicy)
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	raw := envOrDefault(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return d, nil
}

func parseFloat(key, fallback string) (float64, error) {
	raw := envOrDefault(key, fallback)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
