// Package sun computes sunrise and sunset times for one fixed coordinate.
package sun

import (
	"time"

	"github.com/nathan-osman/go-sunrise"

	"github.com/shorecast/swellboard/internal/domain"
)

// clockLayout is the minute-resolution local clock format the board displays.
const clockLayout = "15:04"

// Calculator produces sun times for a fixed coordinate and time zone.
type Calculator struct {
	lat, lon float64
	loc      *time.Location
}

// New creates a Calculator for the given WGS-84 coordinate.
func New(lat, lon float64, loc *time.Location) *Calculator {
	return &Calculator{lat: lat, lon: lon, loc: loc}
}

// Times returns sunrise and sunset for the calendar day containing now in
// the configured zone, as local clock strings truncated to the minute.
// Fields are nil on days the sun does not rise or set.
func (c *Calculator) Times(now time.Time) domain.SunTimes {
	day := now.In(c.loc)
	rise, set := sunrise.SunriseSunset(c.lat, c.lon, day.Year(), day.Month(), day.Day())

	var out domain.SunTimes
	if !rise.IsZero() {
		s := rise.In(c.loc).Format(clockLayout)
		out.Sunrise = &s
	}
	if !set.IsZero() {
		s := set.In(c.loc).Format(clockLayout)
		out.Sunset = &s
	}
	return out
}
