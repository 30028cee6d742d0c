package compiler

import (
	"fmt"

	"github.com/rostercore/shiftopt/internal/model"
	"github.com/rostercore/shiftopt/internal/solver"
)

// compileStaffStatusShiftRestrictions implements spec §4.4.5. Absent
// an explicit `staffStatusShiftRestrictions` entry for a cohort, the
// default policy forbids Early and Late for the dispatch and
// part-time cohorts. Backup staff follow the general "exempt from
// limit passes" note (§4.4 preamble) since a backup's kind is derived
// from coverage, not preference.
func (c *Context) compileStaffStatusShiftRestrictions() {
	if c.Constraints.DisableStaffStatusShiftRestrictions {
		return
	}

	for _, s := range c.nonBackupStaff() {
		forbidden := c.forbiddenKindsFor(s)
		if len(forbidden) == 0 {
			continue
		}
		for _, dateIdx := range c.EmployedDates(s.ID) {
			cell, _ := c.Cell(s.ID, dateIdx)
			for _, k := range forbidden {
				k := k
				c.Model.AddSoft(
					fmt.Sprintf("staff-status restriction: %s forbidden for %s", k, s.ID),
					c.weights.StaffStatusShift,
					func(a *solver.Assignment) int {
						if a.Kind(cell) == k {
							return 1
						}
						return 0
					},
				)
			}
		}
	}
}

func (c *Context) forbiddenKindsFor(s model.Staff) []model.ShiftKind {
	if restriction, ok := c.Constraints.StaffStatusShiftRestrictions[s.Status]; ok {
		if len(restriction.ForbiddenShifts) > 0 {
			return restriction.ForbiddenShifts
		}
		if len(restriction.AllowedShifts) > 0 {
			allowed := map[model.ShiftKind]bool{}
			for _, k := range restriction.AllowedShifts {
				allowed[k] = true
			}
			var forbidden []model.ShiftKind
			for _, k := range []model.ShiftKind{model.Early, model.Late} {
				if !allowed[k] {
					forbidden = append(forbidden, k)
				}
			}
			return forbidden
		}
		return nil
	}
	if statusIs(s.StatusOrDefault(), cohortDispatch) || statusIs(s.StatusOrDefault(), cohortPartTime) {
		return []model.ShiftKind{model.Early, model.Late}
	}
	return nil
}
