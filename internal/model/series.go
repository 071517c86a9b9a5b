package model

import (
	"sort"
	"time"
)

// Observation is a single dated value in a time series.
type Observation struct {
	Date  time.Time
	Value float64
}

// Series holds the observations of one named variable in chronological
// order. Dates are strictly increasing, no duplicates.
type Series []Observation

// Normalize sorts the series by date and keeps the last value for any
// duplicated date.
func Normalize(s Series) Series {
	if len(s) == 0 {
		return s
	}
	sorted := make(Series, len(s))
	copy(sorted, s)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	out := sorted[:1]
	for _, obs := range sorted[1:] {
		if obs.Date.Equal(out[len(out)-1].Date) {
			out[len(out)-1] = obs
			continue
		}
		out = append(out, obs)
	}
	return out
}

// MonthEnd returns the last day of the month containing t, at UTC midnight.
func MonthEnd(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1)
}
