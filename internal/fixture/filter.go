package fixture

import (
	"sort"
	"time"
)

const day = 24 * time.Hour

// WholeDaysUntil returns the number of whole days from now to t, truncated toward zero.
func WholeDaysUntil(t, now time.Time) int {
	return int(t.Sub(now) / day)
}

// Upcoming keeps fixtures whose whole-day distance from now is within [0, daysAhead]
// and returns them sorted by kickoff. Equal kickoffs keep their input order.
// The input slice is not modified.
func Upcoming(fixtures []Fixture, now time.Time, daysAhead int) []Fixture {
	filtered := make([]Fixture, 0, len(fixtures))
	for _, f := range fixtures {
		days := WholeDaysUntil(f.Kickoff, now)
		if days >= 0 && days <= daysAhead {
			filtered = append(filtered, f)
		}
	}
	SortByKickoff(filtered)
	return filtered
}

// SortByKickoff sorts fixtures in place, ascending by kickoff, stable for ties.
func SortByKickoff(fixtures []Fixture) {
	sort.SliceStable(fixtures, func(i, j int) bool {
		return fixtures[i].Kickoff.Before(fixtures[j].Kickoff)
	})
}
