package compiler

import "github.com/rostercore/shiftopt/internal/model"

// compileMonthlyLimitsPrep implements spec §4.4.9: an informational
// log of off-equivalent units forced by active, HARD priority rules
// prescribing Off or Early on named weekdays. Per spec §9 open
// question 2, this counter is never subtracted from any limit — the
// forced shifts already contribute to the same sum through the
// regular decision cells.
func (c *Context) compileMonthlyLimitsPrep() {
	seen := map[string]bool{}
	for _, rule := range c.Constraints.PriorityRules {
		if seen[rule.ID] {
			continue
		}
		seen[rule.ID] = true
		if !rule.IsActive || !rule.IsHard {
			continue
		}
		var add int
		switch rule.Kind {
		case model.Off:
			add = 2
		case model.Early:
			add = 1
		default:
			continue
		}
		for _, staffID := range rule.StaffIDs {
			for _, dateIdx := range c.EmployedDates(staffID) {
				if c.CalendarOffDates[dateIdx] {
					continue
				}
				if !rule.DaysOfWeek[int(c.Horizon.Weekday(dateIdx))] {
					continue
				}
				c.PriorityForcedOffEquiv[staffID] += add
			}
		}
	}
}
