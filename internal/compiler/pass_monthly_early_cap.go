package compiler

import (
	"fmt"

	"github.com/rostercore/shiftopt/internal/model"
	"github.com/rostercore/shiftopt/internal/solver"
)

// regularCohortEarlyCap is the policy constant of spec §4.4.11: the
// regular cohort may take at most this many Early shifts over the
// whole horizon.
const regularCohortEarlyCap = 3

// compileMonthlyEarlyCap implements spec §4.4.11.
func (c *Context) compileMonthlyEarlyCap() {
	for _, s := range c.nonBackupStaff() {
		if !c.isRegular(s.ID) {
			continue
		}
		var cells []solver.CellRef
		for _, d := range c.EmployedDates(s.ID) {
			if cell, ok := c.Cell(s.ID, d); ok {
				cells = append(cells, cell)
			}
		}
		if len(cells) == 0 {
			continue
		}
		c.Model.AddHard(fmt.Sprintf("monthly early-shift cap for %s", s.ID), func(a *solver.Assignment) bool {
			return countKind(cells, a, model.Early) <= regularCohortEarlyCap
		})
	}
}
