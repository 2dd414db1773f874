package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCelsiusToFahrenheit(t *testing.T) {
	assert.InDelta(t, 72.1, CelsiusToFahrenheit(22.3), 0.1)
	assert.InDelta(t, 75.4, CelsiusToFahrenheit(24.1), 0.1)
	assert.InDelta(t, 32.0, CelsiusToFahrenheit(0), 0.001)
	assert.InDelta(t, -40.0, CelsiusToFahrenheit(-40), 0.001)
}

func TestMetersPerSecondToKnots(t *testing.T) {
	assert.InDelta(t, 9.9, MetersPerSecondToKnots(5.1), 0.1)
	assert.InDelta(t, 0, MetersPerSecondToKnots(0), 0.001)
}

func TestMetersToFeet(t *testing.T) {
	assert.InDelta(t, 3.28, MetersToFeet(1), 0.01)
	assert.InDelta(t, 6.56, MetersToFeet(2), 0.01)
}

func TestDegreesToCardinal(t *testing.T) {
	tests := []struct {
		deg      float64
		expected string
	}{
		{0, "N"},
		{22.5, "N"},
		{360, "N"},
		{44.9, "N"},
		{45, "NE"},
		{90, "E"},
		{135, "SE"},
		{180, "S"},
		{225, "SW"},
		{270, "W"},
		{315, "NW"},
		{359.9, "NW"},
		{-45, "NW"},
		{720, "N"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, DegreesToCardinal(tt.deg), "deg=%v", tt.deg)
	}
}
