package compiler

import (
	"github.com/rostercore/shiftopt/internal/model"
	"github.com/rostercore/shiftopt/internal/solver"
)

// compileCalendarRules implements spec §4.4.3. Calendar-off dates
// resolve to a HARD Off equality unless the staff carries an
// early-shift preference for the date, in which case a SOFT
// high-weight incentive toward Early is emitted instead. Calendar-work
// dates resolve to a HARD Work equality for every employed staff. Both
// sets are recorded for every later pass that must skip or
// special-case calendar-forced dates.
func (c *Context) compileCalendarRules() {
	for date, rule := range c.Constraints.CalendarRules {
		dateIdx := c.Horizon.IndexOf(date)
		if dateIdx < 0 {
			continue
		}

		if rule.MustDayOff {
			c.CalendarOffDates[dateIdx] = true
			for _, s := range c.Staff {
				if _, ok := c.Cell(s.ID, dateIdx); !ok {
					continue
				}
				if c.isFixed(s.ID, dateIdx) {
					continue
				}
				if c.earlyPreference(s.ID, date) {
					cell, _ := c.Cell(s.ID, dateIdx)
					c.Model.AddSoft("calendar must-day-off: early preference not honored at "+date, c.weights.EarlyPrefOnMustOff, func(a *solver.Assignment) int {
						if a.Kind(cell) != model.Early {
							return 1
						}
						return 0
					})
				} else {
					c.fixCell(s.ID, dateIdx, model.Off)
				}
			}
		}

		if rule.MustWork {
			c.CalendarWorkDates[dateIdx] = true
			for _, s := range c.Staff {
				if _, ok := c.Cell(s.ID, dateIdx); !ok {
					continue
				}
				c.fixCell(s.ID, dateIdx, model.Work)
			}
		}
	}
}

// earlyPreference implements the §3 "Early-shift preference" lookup:
// a per-date entry wins, falling back to the staff's `default` when
// no per-date entry exists.
func (c *Context) earlyPreference(staffID, date string) bool {
	pref, ok := c.Constraints.EarlyShiftPreferences[staffID]
	if !ok {
		return false
	}
	if v, ok := pref.ByDate[date]; ok {
		return v
	}
	if pref.Default != nil {
		return *pref.Default
	}
	return false
}
