package compiler

import (
	"fmt"

	"github.com/rostercore/shiftopt/internal/model"
	"github.com/rostercore/shiftopt/internal/solver"
)

// compilePriorityRules implements spec §4.4.15. Nominally-HARD rules
// are compiled as very-high-weight SOFT (hard_priority_as_soft) rather
// than true HARD constraints — the design always prefers a feasible
// schedule over an infeasibility error. Duplicate rule ids were
// already suppressed by the Normalizer, so no seen-set is needed here.
func (c *Context) compilePriorityRules() {
	for _, rule := range c.Constraints.PriorityRules {
		if !rule.IsActive {
			continue
		}
		for _, staffID := range rule.StaffIDs {
			for _, dateIdx := range c.EmployedDates(staffID) {
				if !rule.DaysOfWeek[int(c.Horizon.Weekday(dateIdx))] {
					continue
				}
				if c.CalendarOffDates[dateIdx] || c.CalendarWorkDates[dateIdx] {
					continue
				}
				cell, ok := c.Cell(staffID, dateIdx)
				if !ok {
					continue
				}
				c.compilePriorityRuleCell(rule, staffID, dateIdx, cell)
			}
		}
	}
}

func (c *Context) compilePriorityRuleCell(rule model.PriorityRule, staffID string, dateIdx int, cell solver.CellRef) {
	date := c.Horizon.At(dateIdx)
	avoidWeight := rule.PriorityLevel
	if rule.IsHard {
		avoidWeight = c.weights.HardPriorityAsSoft
	}
	if avoidWeight <= 0 {
		avoidWeight = c.weights.HardPriorityAsSoft
	}

	switch rule.Variant {
	case model.VariantAvoidWithExceptions:
		kind := rule.Kind
		c.Model.AddSoft(fmt.Sprintf("priority rule %s: avoid %s for %s on %s", rule.ID, kind, staffID, date), avoidWeight, func(a *solver.Assignment) int {
			if a.Kind(cell) == kind {
				return 1
			}
			return 0
		})
		for _, ex := range rule.Exceptions {
			ex := ex
			c.Model.AddBonus(fmt.Sprintf("priority rule %s: exception %s for %s on %s", rule.ID, ex, staffID, date), c.weights.PriorityException, func(a *solver.Assignment) int {
				if a.Kind(cell) == ex {
					return 1
				}
				return 0
			})
		}

	case model.VariantAvoidKind:
		kind := rule.Kind
		c.Model.AddSoft(fmt.Sprintf("priority rule %s: avoid %s for %s on %s", rule.ID, kind, staffID, date), avoidWeight, func(a *solver.Assignment) int {
			if a.Kind(cell) == kind {
				return 1
			}
			return 0
		})

	case model.VariantPreferKind:
		kind := rule.Kind
		if rule.IsHard {
			c.Model.AddSoft(fmt.Sprintf("priority rule %s: prefer %s for %s on %s", rule.ID, kind, staffID, date), c.weights.HardPriorityAsSoft, func(a *solver.Assignment) int {
				if a.Kind(cell) != kind {
					return 1
				}
				return 0
			})
		} else {
			bonus := rule.PriorityLevel
			if bonus <= 0 {
				bonus = 1
			}
			c.Model.AddBonus(fmt.Sprintf("priority rule %s: prefer %s for %s on %s", rule.ID, kind, staffID, date), bonus, func(a *solver.Assignment) int {
				if a.Kind(cell) == kind {
					return 1
				}
				return 0
			})
		}
	}
}
