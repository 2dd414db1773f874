// Package domain models the marine conditions shown on the swellboard display.
//
// # Data Sources
//
// Buoy observations come from NDBC realtime2 standard meteorological reports
// (https://www.ndbc.noaa.gov/data/realtime2/<station>.txt). These are plain
// text: a '#'-prefixed header line naming whitespace-separated columns
// (WDIR, WSPD, GST, ATMP, WTMP among others), a second '#'-prefixed units
// line, then data rows newest first. "MM" is the NDBC sentinel for a missing
// measurement; a sensor can drop out independently of the others, so each
// quantity is extracted from the newest row that actually carries it.
//
// Wave forecasts come from a Stormglass-style point forecast: hourly entries
// with an ISO-8601 timestamp and the wave height in meters nested under a
// data-source key (e.g. "noaa" or "sg"). Entries with no height for the
// configured key are kept with a nil magnitude so the hourly time axis stays
// intact for nearest-sample selection.
//
// Tide predictions come from the NOAA CO-OPS datagetter API (product
// "predictions", interval "hilo"), which returns each high ("H") and low
// ("L") water event with a height in feet relative to MLLW. CO-OPS is queried
// in GMT and timestamps are converted to the station's local clock.
//
// Sunrise and sunset are computed for one fixed coordinate and the current
// local calendar date, truncated to minute resolution.
//
// # Units
//
// Upstream values are metric (°C, m/s, meters). The display board shows °F,
// knots, and feet; conversions live in this package. Wind direction is
// reduced to an 8-point compass name with floor-aligned 45° sectors.
//
// # Error Taxonomy
//
// Source failures fall into three classes: [ErrSourceUnavailable] (transport),
// [ErrMalformedResponse] (schema violation, including [ErrMalformedReport]
// from the tabular parser), and [ErrEmptyResult] (well-formed but no usable
// rows). The aggregator treats all three identically: the failing source is
// replaced by its null default and the snapshot is still served.
package domain
