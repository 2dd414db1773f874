package domain

import "math"

// CelsiusToFahrenheit converts a temperature in °C to °F.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// MetersPerSecondToKnots converts a speed in m/s to knots.
func MetersPerSecondToKnots(ms float64) float64 {
	return ms * 1.943844
}

// MetersToFeet converts a length in meters to feet.
func MetersToFeet(m float64) float64 {
	return m * 3.28084
}

// Round1 rounds to one decimal place, the resolution the display board shows.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

var cardinals = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// DegreesToCardinal reduces a true bearing to an 8-point compass name.
// Sectors are floor-aligned 45° spans: 0–44.9° is "N", 45–89.9° "NE", and
// so on, with the bearing normalized into [0, 360) first.
func DegreesToCardinal(deg float64) string {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return cardinals[int(d/45)%8]
}
