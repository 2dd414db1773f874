package forecast

import "time"

// StalenessPolicy decides whether a cached forecast entry must be refreshed.
// Two policies are in production use; the choice is configuration, not a fork
// of the cache.
type StalenessPolicy interface {
	Stale(fetchedAt, now time.Time) bool
}

// MaxAge marks an entry stale once its age reaches the limit.
type MaxAge struct {
	Limit time.Duration
}

func (p MaxAge) Stale(fetchedAt, now time.Time) bool {
	return now.Sub(fetchedAt) >= p.Limit
}

// NoonBoundary marks an entry stale only when a canonical update point has
// been crossed: the local calendar date advanced, or the entry was fetched
// before local noon and it is now at or past noon. Elapsed minutes alone
// never trigger a refresh.
type NoonBoundary struct {
	Location *time.Location
}

func (p NoonBoundary) Stale(fetchedAt, now time.Time) bool {
	f := fetchedAt.In(p.Location)
	n := now.In(p.Location)

	if f.Year() != n.Year() || f.YearDay() != n.YearDay() {
		return true
	}
	noon := time.Date(n.Year(), n.Month(), n.Day(), 12, 0, 0, 0, p.Location)
	return f.Before(noon) && !n.Before(noon)
}
