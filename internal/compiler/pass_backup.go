package compiler

import (
	"fmt"

	"github.com/rostercore/shiftopt/internal/logging"
	"github.com/rostercore/shiftopt/internal/model"
	"github.com/rostercore/shiftopt/internal/solver"
)

// compileBackupCoverage implements spec §4.4.4. Every active backup
// assignment derives its backup's schedule from the aggregate
// off-status of the covered group rather than from quota passes; the
// backup id is registered in BackupStaffIDs so later limit passes can
// exempt it (except monthly limits, which apply a relaxed bound
// instead of a full exemption — see §4.4.10).
func (c *Context) compileBackupCoverage() {
	groupByID := make(map[string]model.StaffGroup, len(c.Constraints.StaffGroups))
	for _, g := range c.Constraints.StaffGroups {
		groupByID[g.ID] = g
	}

	for _, ba := range c.Constraints.BackupAssignments {
		if !ba.IsActive {
			continue
		}
		group, ok := groupByID[ba.GroupID]
		if !ok {
			c.Log.Warn("backup assignment references unknown group, skipped", logging.Fields{"groupId": ba.GroupID})
			continue
		}
		c.BackupStaffIDs[ba.StaffID] = true

		var validMembers []string
		for _, m := range group.Members {
			if _, ok := c.StaffByID[m]; ok {
				validMembers = append(validMembers, m)
			}
		}

		for dateIdx := 0; dateIdx < c.Horizon.Len(); dateIdx++ {
			if c.CalendarOffDates[dateIdx] {
				continue
			}
			backupCell, ok := c.Cell(ba.StaffID, dateIdx)
			if !ok {
				continue
			}
			key := cellKey{staffID: ba.StaffID, dateIdx: dateIdx}

			if c.IsHoliday(dateIdx) {
				c.fixCell(ba.StaffID, dateIdx, model.Off)
				c.BackupSlots[key] = BackupSlot{Kind: SlotHoliday}
				continue
			}

			var memberCells []solver.CellRef
			for _, m := range validMembers {
				if mc, ok := c.Cell(m, dateIdx); ok {
					memberCells = append(memberCells, mc)
				}
			}

			aux := c.Model.NewAux(fmt.Sprintf("anyMemberOff:%s:%d", ba.GroupID, dateIdx))
			c.Model.AddHard(fmt.Sprintf("backup coverage indicator for group %s on %s", ba.GroupID, c.Horizon.At(dateIdx)), func(a *solver.Assignment) bool {
				anyOff := false
				for _, mc := range memberCells {
					if a.Kind(mc) == model.Off {
						anyOff = true
						break
					}
				}
				return a.Bool(aux) == anyOff
			})
			c.BackupSlots[key] = BackupSlot{Kind: SlotCoverage, AnyMemberOff: aux}

			desc := fmt.Sprintf("backup %s coverage for group %s on %s", ba.StaffID, ba.GroupID, c.Horizon.At(dateIdx))
			if c.hard.Backup {
				c.Model.AddHard(desc+": must work when needed", func(a *solver.Assignment) bool {
					if !a.Bool(aux) {
						return true
					}
					return a.Kind(backupCell) == model.Work
				})
			} else {
				c.Model.AddSoft(desc+": not covering", c.weights.BackupCoverage, func(a *solver.Assignment) int {
					if a.Bool(aux) && a.Kind(backupCell) != model.Work {
						return 1
					}
					return 0
				})
				c.Model.AddSoft(desc+": early when coverage needed", c.weights.BackupCoverage/2, func(a *solver.Assignment) int {
					if a.Bool(aux) && a.Kind(backupCell) == model.Early {
						return 1
					}
					return 0
				})
				c.Model.AddSoft(desc+": late when coverage needed", c.weights.BackupCoverage/2, func(a *solver.Assignment) int {
					if a.Bool(aux) && a.Kind(backupCell) == model.Late {
						return 1
					}
					return 0
				})
			}
		}
	}
}
