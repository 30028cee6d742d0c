package compiler

import (
	"github.com/rostercore/shiftopt/internal/employment"
	"github.com/rostercore/shiftopt/internal/logging"
	"github.com/rostercore/shiftopt/internal/model"
)

// Compile runs every pass of spec §4.4 in the prescribed fixed order
// and returns the populated Context: its Model is ready for
// internal/objective to add the final bonus terms, then for
// internal/solver to solve.
func Compile(log logging.Sink, staff []model.Staff, horizon model.Horizon, cal *employment.Calendar, holidays map[string]bool, constraints model.Constraints) *Context {
	ctx := NewContext(log, staff, horizon, cal, holidays, constraints)

	// §4.4.1 is enforced by construction (one CellRef domain variable
	// per employed cell, see NewContext / solver.Model) rather than by
	// an explicit pass; ExactlyOneHolds in exactly_one.go lets tests
	// assert it against a solved Assignment.
	ctx.compilePrefilledCells()
	ctx.compileCalendarRules()
	ctx.compileBackupCoverage()
	ctx.compileStaffStatusShiftRestrictions()
	ctx.compileStaffGroupConstraint()
	ctx.compileDailyLimits()
	ctx.compileStaffTypeDailyLimits()
	ctx.compileMonthlyLimitsPrep()
	ctx.compileMonthlyLimits()
	ctx.compileMonthlyEarlyCap()
	ctx.compileAdjacentPairPrevention()
	ctx.compileRollingRestWindow()
	ctx.compilePostPeriod()
	ctx.compilePriorityRules()
	ctx.compilePriorityRestGuarantee()

	return ctx
}
