// Package employment implements the Employment Calendar: for every
// (staff, date) pair it decides whether a decision variable should
// exist at all. Skipped pairs never become variables; every
// downstream pass must consult this before touching a cell.
package employment

import (
	"time"

	"github.com/rostercore/shiftopt/internal/model"
)

// Calendar precomputes, for each staff id and horizon index, whether
// the staff is employed on that date.
type Calendar struct {
	horizon  model.Horizon
	employed map[string][]bool // staffID -> per-horizon-index employed flag
}

// New builds a Calendar for the given horizon and staff roster.
func New(h model.Horizon, staff []model.Staff) *Calendar {
	c := &Calendar{horizon: h, employed: make(map[string][]bool, len(staff))}
	for _, s := range staff {
		flags := make([]bool, h.Len())
		for i, d := range h.Dates {
			flags[i] = Employed(s, d)
		}
		c.employed[s.ID] = flags
	}
	return c
}

// Employed implements the §4.2 contract directly against a staff
// record and a date, without requiring a Calendar.
func Employed(s model.Staff, d time.Time) bool {
	if s.StartPeriod != nil && d.Before(s.StartPeriod.Date()) {
		return false
	}
	if s.EndPeriod != nil && d.After(s.EndPeriod.Date()) {
		return false
	}
	return true
}

// IsEmployed reports whether staffID is employed at horizon index i.
// Staff ids absent from the calendar (never built, e.g. unknown id
// referenced by a rule) are treated as not employed.
func (c *Calendar) IsEmployed(staffID string, i int) bool {
	flags, ok := c.employed[staffID]
	if !ok || i < 0 || i >= len(flags) {
		return false
	}
	return flags[i]
}

// EmployedIndices returns the sorted horizon indices on which staffID
// is employed.
func (c *Calendar) EmployedIndices(staffID string) []int {
	flags := c.employed[staffID]
	out := make([]int, 0, len(flags))
	for i, v := range flags {
		if v {
			out = append(out, i)
		}
	}
	return out
}

// Horizon returns the calendar's horizon.
func (c *Calendar) Horizon() model.Horizon { return c.horizon }
