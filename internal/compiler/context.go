// Package compiler implements the Constraint Compiler (spec §4.4): the
// ordered sequence of passes that lower the normalized constraint
// envelope into solver.Model HARD constraints and SOFT indicators.
// Per spec §9 ("pass ordering as an invariant... encode this with a
// compile-time state machine: each pass consumes a context type
// carrying the outputs of earlier passes"), every pass is a method on
// *Context, a single struct threading calendar-off/work sets, the
// backup-id set, the priority-forced off-equivalent log, and the
// pre-filled star-equivalent tally from the passes that populate them
// through to the passes that consume them.
package compiler

import (
	"github.com/rostercore/shiftopt/internal/employment"
	"github.com/rostercore/shiftopt/internal/logging"
	"github.com/rostercore/shiftopt/internal/model"
	"github.com/rostercore/shiftopt/internal/solver"
)

// BackupSlotKind tags why a backup (staff, date) cell's schedule is
// derived rather than quota-driven (spec §9 "backup-slot variant").
type BackupSlotKind int

const (
	// SlotHoliday marks a cell forced to Off because the date is an
	// external-calendar holiday, regardless of group coverage.
	SlotHoliday BackupSlotKind = iota
	// SlotCoverage marks a cell whose kind is gated by the group's
	// any-member-off indicator.
	SlotCoverage
)

// BackupSlot is the tagged variant spec §9 calls for: a holiday
// marker carries no variable, a coverage marker carries a handle to
// the any-member-off auxiliary boolean.
type BackupSlot struct {
	Kind         BackupSlotKind
	AnyMemberOff solver.AuxRef
}

type cellKey struct {
	staffID string
	dateIdx int
}

// Context is the threaded state every compiler pass reads from and
// writes to, populated in pass order (spec §9).
type Context struct {
	Log         logging.Sink
	Model       *solver.Model
	Staff       []model.Staff
	StaffByID   map[string]model.Staff
	Horizon     model.Horizon
	Calendar    *employment.Calendar
	Holidays    map[string]bool // date string -> true
	Constraints model.Constraints

	cells map[cellKey]solver.CellRef

	// CalendarOffDates / CalendarWorkDates are date indices recorded by
	// the calendar-rules pass (§4.4.3), consumed by every later pass
	// that must skip or special-case calendar-forced dates.
	CalendarOffDates  map[int]bool
	CalendarWorkDates map[int]bool

	// BackupStaffIDs is populated by the backup-coverage pass (§4.4.4);
	// later passes exempt these staff from limit enforcement.
	BackupStaffIDs map[string]bool

	// BackupSlots records, per (staffID, dateIdx), why a backup cell's
	// kind is derived rather than quota-driven — read by the solution
	// extractor.
	BackupSlots map[cellKey]BackupSlot

	// PriorityForcedOffEquiv is the informational-only log from the
	// monthly-limits preparation pass (§4.4.9); per spec §9 open
	// question 2 it is intentionally never subtracted from limits.
	PriorityForcedOffEquiv map[string]int

	// PrefilledStarEquivByStaff is the doubled-unit star-glyph tally
	// from the pre-filled-cells pass (§4.4.2), folded into monthly
	// limit bounds (§4.4.10).
	PrefilledStarEquivByStaff map[string]int

	// PostPeriodEscapeAux collects every escape-hatch auxiliary boolean
	// allocated by the post-period pass (§4.4.14) so optimize.Schedule
	// can report Stats.PostPeriodEscapes after solving.
	PostPeriodEscapeAux []solver.AuxRef

	weights model.PenaltyWeights
	hard    model.HardConstraintToggles

	fixedCells map[cellKey]bool
	// prefillKind/prefillNonBackup record, for cells fixed specifically
	// by the pre-filled-cells pass (§4.4.2, as opposed to a later
	// calendar-rule fix), the kind they were pinned to — the
	// adjacent-pair pass (§4.4.12) needs to tell "pre-filled non-off"
	// apart from "calendar-forced".
	prefillKind map[cellKey]model.ShiftKind
}

// NewContext builds an empty Context and allocates one decision cell
// per employed (staff, date) pair (Variable Builder, spec §4.3). No
// cell exists for an unemployed pair; later passes must use Cell to
// discover that.
func NewContext(log logging.Sink, staff []model.Staff, horizon model.Horizon, cal *employment.Calendar, holidays map[string]bool, constraints model.Constraints) *Context {
	log = logging.OrDefault(log)
	ctx := &Context{
		Log:                       log,
		Model:                     solver.NewModel(),
		Staff:                     staff,
		StaffByID:                 make(map[string]model.Staff, len(staff)),
		Horizon:                   horizon,
		Calendar:                  cal,
		Holidays:                  holidays,
		Constraints:               constraints,
		cells:                     make(map[cellKey]solver.CellRef),
		CalendarOffDates:          make(map[int]bool),
		CalendarWorkDates:         make(map[int]bool),
		BackupStaffIDs:            make(map[string]bool),
		BackupSlots:               make(map[cellKey]BackupSlot),
		PriorityForcedOffEquiv:    make(map[string]int),
		PrefilledStarEquivByStaff: make(map[string]int),
		weights:                   constraints.PenaltyWeights,
		hard:                      constraints.HardToggles,
		fixedCells:                make(map[cellKey]bool),
		prefillKind:               make(map[cellKey]model.ShiftKind),
	}
	for _, s := range staff {
		ctx.StaffByID[s.ID] = s
	}

	for _, s := range staff {
		indices := cal.EmployedIndices(s.ID)
		for _, d := range indices {
			key := cellKey{staffID: s.ID, dateIdx: d}
			ctx.cells[key] = ctx.Model.NewCell(s.ID, d)
		}
	}

	log.Debug("variable builder allocated cells", logging.Fields{
		"cells": len(ctx.cells), "staff": len(staff), "dates": horizon.Len(),
	})
	return ctx
}

// Cell returns the decision cell for (staffID, dateIdx) and whether
// one exists (false when the staff is not employed on that date).
func (c *Context) Cell(staffID string, dateIdx int) (solver.CellRef, bool) {
	ref, ok := c.cells[cellKey{staffID: staffID, dateIdx: dateIdx}]
	return ref, ok
}

// EmployedDates returns the sorted horizon indices on which staffID
// has a decision cell.
func (c *Context) EmployedDates(staffID string) []int {
	if _, ok := c.StaffByID[staffID]; !ok {
		return nil
	}
	return c.Calendar.EmployedIndices(staffID)
}

// IsBackup reports whether staffID is an active backup assignment's
// staff id (populated by the backup-coverage pass).
func (c *Context) IsBackup(staffID string) bool { return c.BackupStaffIDs[staffID] }

// BackupSlotFor returns the backup-slot metadata for (staffID,
// dateIdx), for the solution extractor to distinguish a holiday slot
// from a coverage slot when rendering a backup's glyph.
func (c *Context) BackupSlotFor(staffID string, dateIdx int) (BackupSlot, bool) {
	slot, ok := c.BackupSlots[cellKey{staffID: staffID, dateIdx: dateIdx}]
	return slot, ok
}

// IsHoliday reports whether the horizon date at dateIdx is an
// external-calendar holiday.
func (c *Context) IsHoliday(dateIdx int) bool {
	return c.Holidays[c.Horizon.At(dateIdx)]
}

// fixCell pins (staffID, dateIdx) to kind if a cell exists there and
// it has not already been pinned by an earlier pass — first pin wins,
// matching spec §8's boundary behavior that a pre-filled cell
// conflicting with a later calendar equality is "silently reconciled"
// rather than double-applied.
func (c *Context) fixCell(staffID string, dateIdx int, kind model.ShiftKind) {
	key := cellKey{staffID: staffID, dateIdx: dateIdx}
	ref, ok := c.cells[key]
	if !ok {
		return
	}
	if c.fixedCells[key] {
		return
	}
	c.Model.FixCell(ref, kind)
	c.fixedCells[key] = true
}

// isFixed reports whether (staffID, dateIdx) was already pinned by an
// earlier pass.
func (c *Context) isFixed(staffID string, dateIdx int) bool {
	return c.fixedCells[cellKey{staffID: staffID, dateIdx: dateIdx}]
}

// IsFixed exposes isFixed to packages outside compiler (the objective
// assembler excludes pinned cells from the rest bonus).
func (c *Context) IsFixed(staffID string, dateIdx int) bool {
	return c.isFixed(staffID, dateIdx)
}

// nonBackupStaff returns every staff member not registered as an
// active backup, in roster order — the population most limit passes
// iterate (spec §4.4 "backup staff are exempt from limit passes").
func (c *Context) nonBackupStaff() []model.Staff {
	out := make([]model.Staff, 0, len(c.Staff))
	for _, s := range c.Staff {
		if !c.IsBackup(s.ID) {
			out = append(out, s)
		}
	}
	return out
}

// NonBackupStaff exposes nonBackupStaff to packages outside compiler
// (the objective assembler applies the rest bonus only to non-backup
// cells).
func (c *Context) NonBackupStaff() []model.Staff {
	return c.nonBackupStaff()
}
