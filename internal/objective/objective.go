// Package objective implements the Objective Assembler (spec §4.5):
// the last step before handing the model to the solver. The compiler
// passes already add every soft-violation indicator, every
// preference/avoidance bonus, and the post-period early incentive;
// the only terms this package contributes are the closing rest-bonus
// terms and the "no terms at all" feasibility fallback.
package objective

import (
	"fmt"

	"github.com/rostercore/shiftopt/internal/compiler"
	"github.com/rostercore/shiftopt/internal/model"
	"github.com/rostercore/shiftopt/internal/solver"
)

const (
	offRestBonus   = 30
	earlyRestBonus = 15
)

// Assemble adds the final rest-bonus terms to ctx.Model: +30 for Off
// and +15 for Early on every non-backup employed, non-fixed cell.
// Backup cells are excluded because their kind is derived by the
// backup-coverage pass (§4.4.4), not chosen for rest; fixed (pre-filled
// or calendar-pinned) cells are excluded because the bonus cannot
// change their outcome and would only dilute the objective's signal.
//
// If, after every compiler pass and this assembly step, the model
// carries no indicators or bonuses at all (an input with nothing to
// optimize), the solver falls back to seeking any feasible assignment
// — Model.Objective already returns 0 in that case, so no special
// casing is required here; this comment documents the invariant per
// spec §4.5's closing sentence.
func Assemble(ctx *compiler.Context) {
	for _, s := range ctx.NonBackupStaff() {
		for _, dateIdx := range ctx.EmployedDates(s.ID) {
			if ctx.IsFixed(s.ID, dateIdx) {
				continue
			}
			cell, ok := ctx.Cell(s.ID, dateIdx)
			if !ok {
				continue
			}
			ctx.Model.AddBonus(restBonusDesc(s.ID, dateIdx, "off"), offRestBonus, func(a *solver.Assignment) int {
				if a.Kind(cell) == model.Off {
					return 1
				}
				return 0
			})
			ctx.Model.AddBonus(restBonusDesc(s.ID, dateIdx, "early"), earlyRestBonus, func(a *solver.Assignment) int {
				if a.Kind(cell) == model.Early {
					return 1
				}
				return 0
			})
		}
	}
}

func restBonusDesc(staffID string, dateIdx int, kind string) string {
	return fmt.Sprintf("rest bonus (%s) for %s at date index %d", kind, staffID, dateIdx)
}
