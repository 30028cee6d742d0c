package compiler

import (
	"fmt"

	"github.com/rostercore/shiftopt/internal/model"
	"github.com/rostercore/shiftopt/internal/solver"
)

// compilePriorityRestGuarantee implements spec §4.4.16, for staff
// targeted by an "avoid day-off with early allowed" rule: a
// VariantAvoidWithExceptions rule whose avoided kind is Off and whose
// exception list includes Early.
func (c *Context) compilePriorityRestGuarantee() {
	applicableDatesByStaff := map[string]map[int]bool{}
	for _, rule := range c.Constraints.PriorityRules {
		if !rule.IsActive || rule.Variant != model.VariantAvoidWithExceptions || rule.Kind != model.Off {
			continue
		}
		if !hasEarlyException(rule.Exceptions) {
			continue
		}
		for _, staffID := range rule.StaffIDs {
			set, ok := applicableDatesByStaff[staffID]
			if !ok {
				set = map[int]bool{}
				applicableDatesByStaff[staffID] = set
			}
			for _, dateIdx := range c.EmployedDates(staffID) {
				if rule.DaysOfWeek[int(c.Horizon.Weekday(dateIdx))] {
					set[dateIdx] = true
				}
			}
		}
	}

	for staffID, applicable := range applicableDatesByStaff {
		employed := c.EmployedDates(staffID)
		var freeCells, applicableCells, allCells []solver.CellRef
		for _, d := range employed {
			if c.CalendarOffDates[d] || c.CalendarWorkDates[d] {
				continue
			}
			cell, ok := c.Cell(staffID, d)
			if !ok {
				continue
			}
			allCells = append(allCells, cell)
			if applicable[d] {
				applicableCells = append(applicableCells, cell)
			} else {
				freeCells = append(freeCells, cell)
			}
		}
		if len(allCells) == 0 {
			continue
		}

		maxOffTarget := c.Constraints.MonthlyLimit.MaxCount
		if !c.Constraints.MonthlyLimit.IsSet() || maxOffTarget <= 0 {
			maxOffTarget = len(freeCells)/3 + 1
		}
		c.Model.AddSoft(fmt.Sprintf("priority rest guarantee: below-target day-offs on free dates for %s", staffID), c.weights.BelowTargetDayoffs, func(a *solver.Assignment) int {
			n := countKind(freeCells, a, model.Off)
			if n < maxOffTarget {
				return maxOffTarget - n
			}
			return 0
		})

		c.Model.AddSoft(fmt.Sprintf("priority rest guarantee: below-target early on applicable dates for %s", staffID), c.weights.BelowTargetEarly, func(a *solver.Assignment) int {
			n := countKind(applicableCells, a, model.Early)
			if n < 2 {
				return 2 - n
			}
			return 0
		})

		minRest := len(allCells) / 6
		if minRest < 4 {
			minRest = 4
		}
		c.Model.AddSoft(fmt.Sprintf("priority rest guarantee: minimum rest-equivalent for %s", staffID), c.weights.RestGuarantee, func(a *solver.Assignment) int {
			v := 2*countKind(allCells, a, model.Off) + countKind(allCells, a, model.Early)
			if v < minRest {
				return minRest - v
			}
			return 0
		})
	}
}

func hasEarlyException(exceptions []model.ShiftKind) bool {
	for _, k := range exceptions {
		if k == model.Early {
			return true
		}
	}
	return false
}
