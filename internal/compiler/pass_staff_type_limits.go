package compiler

import (
	"fmt"

	"github.com/rostercore/shiftopt/internal/model"
	"github.com/rostercore/shiftopt/internal/solver"
)

// unlimitedSentinel is the "disable this side of the bound" value
// spec §4.4.8 specifies for an absent max.
const unlimitedSentinel = 999

// compileStaffTypeDailyLimits implements spec §4.4.8: per-status daily
// bounds on the integer-scaled combination of Off and Early counts,
// always compiled SOFT — a nominally-HARD request is upgraded to a 3x
// penalty multiplier rather than a true HARD constraint, per spec §9
// open question 1 ("the reference... always overrides the requested
// HARD to SOFT").
func (c *Context) compileStaffTypeDailyLimits() {
	byStatus := map[string][]model.Staff{}
	for _, s := range c.nonBackupStaff() {
		byStatus[s.Status] = append(byStatus[s.Status], s)
	}

	for status, limit := range c.Constraints.StaffTypeLimits {
		members := byStatus[status]
		if len(members) == 0 {
			continue
		}
		maxOff := unlimitedSentinel
		if limit.MaxOffPerDay != nil {
			maxOff = *limit.MaxOffPerDay
		}
		maxEarly := unlimitedSentinel
		if limit.MaxEarlyPerDay != nil {
			maxEarly = *limit.MaxEarlyPerDay
		}
		multiplier := 1
		if limit.IsHard {
			multiplier = 3
		}
		weight := c.weights.StaffTypeLimit * multiplier

		for dateIdx := 0; dateIdx < c.Horizon.Len(); dateIdx++ {
			if c.CalendarOffDates[dateIdx] || c.CalendarWorkDates[dateIdx] {
				continue
			}
			var cells []solver.CellRef
			for _, s := range members {
				if cell, ok := c.Cell(s.ID, dateIdx); ok {
					cells = append(cells, cell)
				}
			}
			if len(cells) == 0 {
				continue
			}
			date := c.Horizon.At(dateIdx)
			rhs := 2*maxOff + 1*maxEarly

			c.Model.AddSoft(fmt.Sprintf("staff type %s daily upper bound on %s", status, date), weight, func(a *solver.Assignment) int {
				lhs := 2*countKind(cells, a, model.Off) + countKind(cells, a, model.Early)
				if lhs > rhs {
					return lhs - rhs
				}
				return 0
			})

			if limit.MinOffPerDay != nil {
				minOff := *limit.MinOffPerDay
				c.Model.AddSoft(fmt.Sprintf("staff type %s daily lower bound on %s", status, date), c.weights.StaffTypeLimit*2, func(a *solver.Assignment) int {
					n := countKind(cells, a, model.Off)
					if n < minOff {
						return minOff - n
					}
					return 0
				})
			}
		}
	}
}
