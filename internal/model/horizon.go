package model

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Horizon is an ordered, contiguous, gap-free list of dates.
type Horizon struct {
	Dates []time.Time
}

// NewHorizon parses and validates a list of YYYY-MM-DD date strings.
// It rejects empty input and any gap or out-of-order pair.
func NewHorizon(dateStrings []string) (Horizon, error) {
	if len(dateStrings) == 0 {
		return Horizon{}, ErrEmptyHorizon
	}
	dates := make([]time.Time, 0, len(dateStrings))
	for i, ds := range dateStrings {
		t, err := time.Parse(dateLayout, ds)
		if err != nil {
			return Horizon{}, fmt.Errorf("date %q at index %d: %w", ds, i, err)
		}
		t = t.UTC()
		if i > 0 {
			prev := dates[i-1]
			if !t.Equal(prev.AddDate(0, 0, 1)) {
				return Horizon{}, fmt.Errorf("horizon has a gap or is out of order between %s and %s", prev.Format(dateLayout), ds)
			}
		}
		dates = append(dates, t)
	}
	return Horizon{Dates: dates}, nil
}

// Len returns the number of dates in the horizon.
func (h Horizon) Len() int { return len(h.Dates) }

// At returns the date at index i formatted as YYYY-MM-DD.
func (h Horizon) At(i int) string { return h.Dates[i].Format(dateLayout) }

// Time returns the time.Time at index i.
func (h Horizon) Time(i int) time.Time { return h.Dates[i] }

// IndexOf returns the horizon index of a YYYY-MM-DD string, or -1 if
// the date falls outside the horizon.
func (h Horizon) IndexOf(dateStr string) int {
	t, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return -1
	}
	t = t.UTC()
	for i, d := range h.Dates {
		if d.Equal(t) {
			return i
		}
	}
	return -1
}

// Weekday returns the day-of-week at index i using the 0=Sunday
// convention the spec's priority rules use (matches time.Weekday
// already).
func (h Horizon) Weekday(i int) time.Weekday { return h.Dates[i].Weekday() }
