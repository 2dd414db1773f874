package domain

import "time"

// Observation holds the latest readings from one buoy, already converted to
// display units. Every field is independently nullable: a sensor outage on
// one quantity does not invalidate the others.
type Observation struct {
	StationID  string   `json:"stationId"`
	AirTempF   *float64 `json:"airTempF"`
	WaterTempF *float64 `json:"waterTempF"`
	WindKts    *float64 `json:"windKts"`
	GustKts    *float64 `json:"gustKts"`
	WindDir    *string  `json:"windDir"`
}

// EmptyObservation is the documented fallback for a failed buoy source.
func EmptyObservation(stationID string) Observation {
	return Observation{StationID: stationID}
}

// ForecastSample is one timestamped wave-height estimate from a point
// forecast series. Height stays in the upstream's native meters; conversion
// to display units happens when a sample is selected for the snapshot.
// A nil height means the upstream had no value for that hour; the sample is
// retained to preserve the time axis.
type ForecastSample struct {
	Time        time.Time `json:"time"`
	WaveHeightM *float64  `json:"waveHeight"`
}

// TideKind distinguishes high and low water events.
type TideKind string

const (
	TideHigh TideKind = "HIGH"
	TideLow  TideKind = "LOW"
)

// TidePrediction is a single predicted high or low water event, with the
// time already expressed in the station's local clock.
type TidePrediction struct {
	Time     time.Time `json:"time"`
	HeightFt float64   `json:"heightFt"`
	Kind     TideKind  `json:"kind"`
}

// Tides carries the first high and first low prediction of the current day.
// Either may be nil when the upstream listed fewer events.
type Tides struct {
	High *TidePrediction `json:"high"`
	Low  *TidePrediction `json:"low"`
}

// SunTimes holds sunrise and sunset as local clock times ("HH:MM", minute
// resolution), valid for exactly one calendar day at one fixed coordinate.
// Nil when the sun does not rise or set on that day.
type SunTimes struct {
	Sunrise *string `json:"sunrise"`
	Sunset  *string `json:"sunset"`
}

// WaveConditions is the selected forecast sample re-expressed in display
// units. HeightFt is nil when no sample was selectable.
type WaveConditions struct {
	HeightFt   *float64   `json:"heightFt"`
	SampleTime *time.Time `json:"sampleTime,omitempty"`
}

// Snapshot is the unified response assembled once per request. No entity in
// it owns another; everything is copied by value and discarded after serving.
type Snapshot struct {
	GeneratedAt time.Time      `json:"generatedAt"`
	Buoys       []Observation  `json:"buoys"`
	Waves       WaveConditions `json:"waves"`
	Tides       Tides          `json:"tides"`
	Sun         SunTimes       `json:"sun"`
	Error       string         `json:"error,omitempty"`
}
