package compiler

import (
	"fmt"

	"github.com/rostercore/shiftopt/internal/model"
	"github.com/rostercore/shiftopt/internal/solver"
)

const restWindowSize = 6

// compileRollingRestWindow implements spec §4.4.13: every contiguous
// 6-date window on which the staff is employed throughout must
// contain at least one Off. Horizons shorter than the window
// contribute zero constraints (spec §8 boundary behavior).
func (c *Context) compileRollingRestWindow() {
	for _, s := range c.Staff {
		for start := 0; start+restWindowSize <= c.Horizon.Len(); start++ {
			var cells []solver.CellRef
			complete := true
			for d := start; d < start+restWindowSize; d++ {
				cell, ok := c.Cell(s.ID, d)
				if !ok {
					complete = false
					break
				}
				cells = append(cells, cell)
			}
			if !complete {
				continue
			}
			desc := fmt.Sprintf("6-day rest window for %s starting %s", s.ID, c.Horizon.At(start))
			if c.hard.FiveDayRest {
				c.Model.AddHard(desc, func(a *solver.Assignment) bool {
					return countKind(cells, a, model.Off) >= 1
				})
			} else {
				c.Model.AddSoft(desc, c.weights.FiveDayRest, func(a *solver.Assignment) int {
					if countKind(cells, a, model.Off) == 0 {
						return 1
					}
					return 0
				})
			}
		}
	}
}
