package compiler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rostercore/shiftopt/internal/employment"
	"github.com/rostercore/shiftopt/internal/model"
	"github.com/rostercore/shiftopt/internal/solver"
)

func buildHorizon(t *testing.T, dates ...string) model.Horizon {
	h, err := model.NewHorizon(dates)
	require.NoError(t, err)
	return h
}

// TestCompile_CalendarOverrideWithEarlyPreference mirrors spec §8
// Scenario A: staff A has an early preference on the must-day-off
// date and should end up Early; staff without the preference are
// pinned Off by construction (a HARD equality), so the solver cannot
// violate it regardless of search noise.
func TestCompile_CalendarOverrideWithEarlyPreference(t *testing.T) {
	staff := []model.Staff{
		{ID: "A", Status: "R"},
		{ID: "B", Status: "R"},
		{ID: "C", Status: "R"},
	}
	horizon := buildHorizon(t, "2025-12-24", "2025-12-25", "2025-12-26")
	cal := employment.New(horizon, staff)

	constraints := model.Constraints{
		CalendarRules: map[string]model.CalendarRule{
			"2025-12-25": {MustDayOff: true},
		},
		EarlyShiftPreferences: map[string]model.EarlyPreference{
			"A": {ByDate: map[string]bool{"2025-12-25": true}},
		},
		PenaltyWeights: model.DefaultPenaltyWeights(),
		Solver:         model.DefaultSolverSettings(),
	}

	ctx := Compile(nil, staff, horizon, cal, map[string]bool{}, constraints)

	dateIdx := horizon.IndexOf("2025-12-25")
	bCell, _ := ctx.Cell("B", dateIdx)
	cCell, _ := ctx.Cell("C", dateIdx)

	eng := solver.NewEngine()
	res := eng.Solve(context.Background(), ctx.Model, solver.Params{TimeoutSeconds: 1, NumWorkers: 2, RandomSeed: 3})

	require.NotNil(t, res.Assignment)
	assert.Equal(t, model.Off, res.Assignment.Kind(bCell))
	assert.Equal(t, model.Off, res.Assignment.Kind(cCell))
	assert.True(t, ctx.ExactlyOneHolds(res.Assignment))
}

// TestCompile_BackupHolidayUnavailable mirrors Scenario C: a backup
// with no group member off on an external holiday is pinned Off, and
// the extractor-facing slot map records it as a holiday marker.
func TestCompile_BackupHolidayUnavailable(t *testing.T) {
	staff := []model.Staff{
		{ID: "ryo", Status: "R"},
		{ID: "nak", Status: "R"},
	}
	horizon := buildHorizon(t, "2024-12-30", "2024-12-31", "2025-01-01")
	cal := employment.New(horizon, staff)

	constraints := model.Constraints{
		StaffGroups:       []model.StaffGroup{{ID: "g1", Members: []string{"ryo"}}},
		BackupAssignments: []model.BackupAssignment{{StaffID: "nak", GroupID: "g1", IsActive: true}},
		PenaltyWeights:    model.DefaultPenaltyWeights(),
		Solver:            model.DefaultSolverSettings(),
	}
	holidays := map[string]bool{"2025-01-01": true}

	ctx := Compile(nil, staff, horizon, cal, holidays, constraints)

	dateIdx := horizon.IndexOf("2025-01-01")
	slot, ok := ctx.BackupSlots[cellKey{staffID: "nak", dateIdx: dateIdx}]
	require.True(t, ok)
	assert.Equal(t, SlotHoliday, slot.Kind)

	eng := solver.NewEngine()
	res := eng.Solve(context.Background(), ctx.Model, solver.Params{TimeoutSeconds: 1, NumWorkers: 2, RandomSeed: 1})
	require.NotNil(t, res.Assignment)
	nakCell, _ := ctx.Cell("nak", dateIdx)
	assert.Equal(t, model.Off, res.Assignment.Kind(nakCell))
}

// TestCompile_RollingRestWindowHard mirrors Scenario D: with HARD
// 6-day rest active, every 6-date window must contain an Off.
func TestCompile_RollingRestWindowHard(t *testing.T) {
	staff := []model.Staff{{ID: "s1", Status: "R"}}
	horizon := buildHorizon(t, "2026-01-01", "2026-01-02", "2026-01-03", "2026-01-04", "2026-01-05", "2026-01-06", "2026-01-07")
	cal := employment.New(horizon, staff)

	constraints := model.Constraints{
		PenaltyWeights: model.DefaultPenaltyWeights(),
		Solver:         model.DefaultSolverSettings(),
		HardToggles:    model.HardConstraintToggles{FiveDayRest: true},
	}

	ctx := Compile(nil, staff, horizon, cal, map[string]bool{}, constraints)
	eng := solver.NewEngine()
	res := eng.Solve(context.Background(), ctx.Model, solver.Params{TimeoutSeconds: 2, NumWorkers: 2, RandomSeed: 5})
	require.NotNil(t, res.Assignment)
	require.Equal(t, 0, res.HardViolations)

	hasOffInFirstSix, hasOffInLastSix := false, false
	for i := 0; i < 6; i++ {
		cell, _ := ctx.Cell("s1", i)
		if res.Assignment.Kind(cell) == model.Off {
			hasOffInFirstSix = true
		}
	}
	for i := 1; i < 7; i++ {
		cell, _ := ctx.Cell("s1", i)
		if res.Assignment.Kind(cell) == model.Off {
			hasOffInLastSix = true
		}
	}
	assert.True(t, hasOffInFirstSix)
	assert.True(t, hasOffInLastSix)
}
