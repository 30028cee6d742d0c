package compiler

import (
	"fmt"

	"github.com/rostercore/shiftopt/internal/model"
	"github.com/rostercore/shiftopt/internal/solver"
)

// compileStaffGroupConstraint implements spec §4.4.6: groups of two or
// more members get a "only one member off/early per day" coverage
// rule, with a hybrid HARD-cap-plus-SOFT-pressure encoding in HARD
// mode and a single combined SOFT penalty in SOFT mode.
func (c *Context) compileStaffGroupConstraint() {
	for _, group := range c.Constraints.StaffGroups {
		if len(group.Members) < 2 {
			continue
		}
		for dateIdx := 0; dateIdx < c.Horizon.Len(); dateIdx++ {
			if c.CalendarOffDates[dateIdx] {
				continue
			}
			var cells []solver.CellRef
			for _, m := range group.Members {
				if cell, ok := c.Cell(m, dateIdx); ok {
					cells = append(cells, cell)
				}
			}
			if len(cells) < 2 {
				continue
			}
			date := c.Horizon.At(dateIdx)

			if c.hard.StaffGroup {
				c.Model.AddHard(fmt.Sprintf("staff group %s: at most one off on %s", group.ID, date), func(a *solver.Assignment) bool {
					return countKind(cells, a, model.Off) <= 1
				})
				c.Model.AddSoft(fmt.Sprintf("staff group %s: early coverage pressure on %s", group.ID, date), c.weights.StaffGroup*2, func(a *solver.Assignment) int {
					if n := countKind(cells, a, model.Early); n > 1 {
						return n - 1
					}
					return 0
				})
			} else {
				c.Model.AddSoft(fmt.Sprintf("staff group %s: combined off+early on %s", group.ID, date), c.weights.StaffGroup, func(a *solver.Assignment) int {
					n := countKind(cells, a, model.Off) + countKind(cells, a, model.Early)
					if n > 1 {
						return n - 1
					}
					return 0
				})
			}
		}
	}
}

func countKind(cells []solver.CellRef, a *solver.Assignment, k model.ShiftKind) int {
	n := 0
	for _, c := range cells {
		if a.Kind(c) == k {
			n++
		}
	}
	return n
}
