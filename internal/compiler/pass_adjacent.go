package compiler

import (
	"fmt"

	"github.com/rostercore/shiftopt/internal/model"
	"github.com/rostercore/shiftopt/internal/solver"
)

// compileAdjacentPairPrevention implements spec §4.4.12: SOFT
// penalties on undesirable consecutive-day kind pairs, plus a heavy
// penalty discouraging a day-off adjacent to a pre-filled non-off
// glyph.
func (c *Context) compileAdjacentPairPrevention() {
	for _, s := range c.Staff {
		for _, d1 := range c.EmployedDates(s.ID) {
			d2 := d1 + 1
			if d2 >= c.Horizon.Len() {
				continue
			}
			cell1, ok1 := c.Cell(s.ID, d1)
			cell2, ok2 := c.Cell(s.ID, d2)
			if !ok1 || !ok2 {
				continue
			}
			if c.CalendarOffDates[d1] && c.CalendarOffDates[d2] {
				continue
			}

			desc := fmt.Sprintf("adjacent-pair conflict for %s between %s and %s", s.ID, c.Horizon.At(d1), c.Horizon.At(d2))
			c.Model.AddSoft(desc, c.weights.AdjacentConflict, func(a *solver.Assignment) int {
				if isAdjacentConflictPair(a.Kind(cell1), a.Kind(cell2)) {
					return 1
				}
				return 0
			})

			if k, wasPrefilled := c.prefillKind[cellKey{staffID: s.ID, dateIdx: d1}]; wasPrefilled && k != model.Off {
				c.Model.AddSoft(desc+": day after pre-filled non-off", c.weights.PrefilledAdjacent, func(a *solver.Assignment) int {
					if a.Kind(cell2) == model.Off {
						return 1
					}
					return 0
				})
			}
			if k, wasPrefilled := c.prefillKind[cellKey{staffID: s.ID, dateIdx: d2}]; wasPrefilled && k != model.Off {
				c.Model.AddSoft(desc+": day before pre-filled non-off", c.weights.PrefilledAdjacent, func(a *solver.Assignment) int {
					if a.Kind(cell1) == model.Off {
						return 1
					}
					return 0
				})
			}
		}
	}
}

func isAdjacentConflictPair(k1, k2 model.ShiftKind) bool {
	isOffLike := func(k model.ShiftKind) bool { return k == model.Off || k == model.Early }
	return isOffLike(k1) && isOffLike(k2)
}
