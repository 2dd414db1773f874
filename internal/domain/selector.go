package domain

import "time"

// SelectionPolicy names a strategy for picking the forecast sample that
// represents "now". Both policies appear on production boards, so the choice
// belongs to the caller, never the selector.
type SelectionPolicy string

const (
	// SelectNearest picks the sample minimizing |sample.Time - target|,
	// breaking exact ties toward the earlier sample.
	SelectNearest SelectionPolicy = "nearest"

	// SelectLastBefore picks the most recent sample not after the target:
	// last known, never a forecasted future hour.
	SelectLastBefore SelectionPolicy = "last-before"
)

// Valid reports whether p names a known policy.
func (p SelectionPolicy) Valid() bool {
	return p == SelectNearest || p == SelectLastBefore
}

// SelectSample applies the policy to an ascending-by-time series. Samples
// with a nil magnitude are never selectable. Returns nil — not an error —
// when the series is empty, every magnitude is nil, or (for SelectLastBefore)
// every sample lies after the target. The returned sample is a copy.
func SelectSample(samples []ForecastSample, target time.Time, policy SelectionPolicy) *ForecastSample {
	var best *ForecastSample

	for i := range samples {
		s := &samples[i]
		if s.WaveHeightM == nil {
			continue
		}

		switch policy {
		case SelectLastBefore:
			if s.Time.After(target) {
				continue
			}
			if best == nil || s.Time.After(best.Time) {
				best = s
			}
		default: // SelectNearest
			if best == nil {
				best = s
				continue
			}
			d, bd := absDistance(target, s.Time), absDistance(target, best.Time)
			if d < bd || (d == bd && s.Time.Before(best.Time)) {
				best = s
			}
		}
	}

	if best == nil {
		return nil
	}
	picked := *best
	return &picked
}

func absDistance(a, b time.Time) time.Duration {
	d := a.Sub(b)
	if d < 0 {
		return -d
	}
	return d
}
