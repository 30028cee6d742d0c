package compiler

import (
	"fmt"

	"github.com/rostercore/shiftopt/internal/model"
	"github.com/rostercore/shiftopt/internal/solver"
)

// compileDailyLimits implements spec §4.4.7: a per-date bound on the
// total Off count across non-backup staff, skipped entirely when the
// flag is disabled and exempting every calendar-forced date (the
// count there is already fixed, bounding it again is meaningless).
func (c *Context) compileDailyLimits() {
	dl := c.Constraints.DailyLimits
	if !dl.Enabled {
		return
	}

	for dateIdx := 0; dateIdx < c.Horizon.Len(); dateIdx++ {
		if c.CalendarOffDates[dateIdx] || c.CalendarWorkDates[dateIdx] {
			continue
		}
		var cells []solver.CellRef
		for _, s := range c.nonBackupStaff() {
			if cell, ok := c.Cell(s.ID, dateIdx); ok {
				cells = append(cells, cell)
			}
		}
		if len(cells) == 0 {
			continue
		}
		date := c.Horizon.At(dateIdx)
		minOff, maxOff := dl.MinOffPerDay, dl.MaxOffPerDay

		if dl.IsHard {
			c.Model.AddHard(fmt.Sprintf("daily limit on %s", date), func(a *solver.Assignment) bool {
				n := countKind(cells, a, model.Off)
				if n < minOff {
					return false
				}
				if maxOff > 0 && n > maxOff {
					return false
				}
				return true
			})
			continue
		}

		c.Model.AddSoft(fmt.Sprintf("daily limit below minimum on %s", date), c.weights.DailyLimit, func(a *solver.Assignment) int {
			n := countKind(cells, a, model.Off)
			if n < minOff {
				return minOff - n
			}
			return 0
		})
		c.Model.AddSoft(fmt.Sprintf("daily limit above maximum on %s", date), c.weights.DailyLimitMax, func(a *solver.Assignment) int {
			if maxOff <= 0 {
				return 0
			}
			n := countKind(cells, a, model.Off)
			if n > maxOff {
				return n - maxOff
			}
			return 0
		})
	}
}
