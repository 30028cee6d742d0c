package compiler

import (
	"fmt"

	"github.com/rostercore/shiftopt/internal/model"
	"github.com/rostercore/shiftopt/internal/solver"
)

// compileMonthlyLimits implements spec §4.4.10. Unlike most limit
// passes, backup staff are not exempt here — they receive a relaxed
// bound (min=0, max=ceil(1.5*max)) instead of a full skip, per the
// spec's explicit parenthetical.
func (c *Context) compileMonthlyLimits() {
	ml := c.Constraints.MonthlyLimit
	if !ml.IsSet() {
		return
	}

	for _, s := range c.Staff {
		employed := c.EmployedDates(s.ID)
		if len(employed) == 0 {
			continue
		}

		effective := make([]int, 0, len(employed))
		for _, d := range employed {
			if ml.ExcludeCalendarRules && c.CalendarOffDates[d] {
				continue
			}
			effective = append(effective, d)
		}

		minLimit, maxLimit := ml.MinCount, ml.MaxCount
		isBackup := c.IsBackup(s.ID)
		switch {
		case isBackup:
			minLimit = 0
			maxLimit = ceilDiv(3*ml.MaxCount, 2)
		case len(employed) < c.Horizon.Len():
			workingDays := len(employed)
			totalDays := c.Horizon.Len()
			minLimit = workingDays * 4 / 17 // floor(workingDays/4.25) via *4/17
			ratio := float64(workingDays) / float64(totalDays)
			scaledMax := int(ratio * float64(ml.MaxCount))
			if scaledMax < minLimit+1 {
				scaledMax = minLimit + 1
			}
			maxLimit = scaledMax
		}

		var cells []solver.CellRef
		for _, d := range effective {
			if cell, ok := c.Cell(s.ID, d); ok {
				cells = append(cells, cell)
			}
		}
		starEquiv := c.PrefilledStarEquivByStaff[s.ID]
		lowerBound := 2 * minLimit
		upperBound := 2 * maxLimit
		staffID := s.ID

		sum := func(a *solver.Assignment) int {
			return 2*countKind(cells, a, model.Off) + countKind(cells, a, model.Early) + starEquiv
		}

		if ml.IsHard {
			c.Model.AddHard(fmt.Sprintf("monthly limit for %s", staffID), func(a *solver.Assignment) bool {
				v := sum(a)
				return v >= lowerBound && v <= upperBound
			})
			continue
		}

		c.Model.AddSoft(fmt.Sprintf("monthly limit below minimum for %s", staffID), c.weights.MonthlyLimit, func(a *solver.Assignment) int {
			v := sum(a)
			if v < lowerBound {
				return lowerBound - v
			}
			return 0
		})
		c.Model.AddSoft(fmt.Sprintf("monthly limit above maximum for %s", staffID), c.weights.MonthlyLimit, func(a *solver.Assignment) int {
			v := sum(a)
			if v > upperBound {
				return v - upperBound
			}
			return 0
		})
	}
}

func ceilDiv(numerator, denominator int) int {
	if denominator == 0 {
		return 0
	}
	q := numerator / denominator
	if numerator%denominator != 0 {
		q++
	}
	return q
}
