package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

func hourlySeries(start time.Time, heights []*float64) []ForecastSample {
	samples := make([]ForecastSample, len(heights))
	for i, h := range heights {
		samples[i] = ForecastSample{Time: start.Add(time.Duration(i) * time.Hour), WaveHeightM: h}
	}
	return samples
}

func TestSelectSample_Nearest(t *testing.T) {
	start := time.Date(2026, 8, 24, 6, 0, 0, 0, time.UTC)
	samples := hourlySeries(start, []*float64{fp(1.0), fp(1.2), fp(1.4), fp(1.6)})

	t.Run("picks minimal absolute distance", func(t *testing.T) {
		target := start.Add(time.Hour + 20*time.Minute) // closest to 07:00
		got := SelectSample(samples, target, SelectNearest)
		require.NotNil(t, got)
		assert.Equal(t, start.Add(time.Hour), got.Time)
		assert.Equal(t, 1.2, *got.WaveHeightM)
	})

	t.Run("exact tie goes to the earlier sample", func(t *testing.T) {
		target := start.Add(30 * time.Minute) // equidistant from 06:00 and 07:00
		got := SelectSample(samples, target, SelectNearest)
		require.NotNil(t, got)
		assert.Equal(t, start, got.Time)
	})

	t.Run("target before series picks first", func(t *testing.T) {
		got := SelectSample(samples, start.Add(-3*time.Hour), SelectNearest)
		require.NotNil(t, got)
		assert.Equal(t, start, got.Time)
	})

	t.Run("target after series picks last", func(t *testing.T) {
		got := SelectSample(samples, start.Add(12*time.Hour), SelectNearest)
		require.NotNil(t, got)
		assert.Equal(t, start.Add(3*time.Hour), got.Time)
	})

	t.Run("nil magnitudes are skipped", func(t *testing.T) {
		sparse := hourlySeries(start, []*float64{fp(1.0), nil, fp(1.4)})
		target := start.Add(time.Hour) // exact nil sample; neighbors tie, earlier wins
		got := SelectSample(sparse, target, SelectNearest)
		require.NotNil(t, got)
		assert.Equal(t, start, got.Time)
	})
}

func TestSelectSample_LastBefore(t *testing.T) {
	start := time.Date(2026, 8, 24, 6, 0, 0, 0, time.UTC)
	samples := hourlySeries(start, []*float64{fp(1.0), fp(1.2), fp(1.4)})

	t.Run("most recent not after target", func(t *testing.T) {
		got := SelectSample(samples, start.Add(95*time.Minute), SelectLastBefore)
		require.NotNil(t, got)
		assert.Equal(t, start.Add(time.Hour), got.Time)
	})

	t.Run("target exactly on a sample selects it", func(t *testing.T) {
		got := SelectSample(samples, start.Add(2*time.Hour), SelectLastBefore)
		require.NotNil(t, got)
		assert.Equal(t, start.Add(2*time.Hour), got.Time)
	})

	t.Run("all samples in the future yields nil", func(t *testing.T) {
		assert.Nil(t, SelectSample(samples, start.Add(-time.Minute), SelectLastBefore))
	})

	t.Run("skips trailing nil magnitudes", func(t *testing.T) {
		sparse := hourlySeries(start, []*float64{fp(1.0), nil, nil})
		got := SelectSample(sparse, start.Add(3*time.Hour), SelectLastBefore)
		require.NotNil(t, got)
		assert.Equal(t, start, got.Time)
	})
}

func TestSelectSample_NullSelections(t *testing.T) {
	start := time.Date(2026, 8, 24, 6, 0, 0, 0, time.UTC)

	for _, policy := range []SelectionPolicy{SelectNearest, SelectLastBefore} {
		assert.Nil(t, SelectSample(nil, start, policy), "empty series, %s", policy)
		allNull := hourlySeries(start, []*float64{nil, nil, nil})
		assert.Nil(t, SelectSample(allNull, start.Add(time.Hour), policy), "all-null series, %s", policy)
	}
}

func TestSelectSample_ReturnsCopy(t *testing.T) {
	start := time.Date(2026, 8, 24, 6, 0, 0, 0, time.UTC)
	samples := hourlySeries(start, []*float64{fp(1.0)})

	got := SelectSample(samples, start, SelectNearest)
	require.NotNil(t, got)
	got.Time = got.Time.Add(time.Hour)
	assert.Equal(t, start, samples[0].Time)
}

func TestSelectionPolicy_Valid(t *testing.T) {
	assert.True(t, SelectNearest.Valid())
	assert.True(t, SelectLastBefore.Valid())
	assert.False(t, SelectionPolicy("soonest").Valid())
}
