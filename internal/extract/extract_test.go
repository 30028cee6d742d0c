package extract_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rostercore/shiftopt/internal/compiler"
	"github.com/rostercore/shiftopt/internal/employment"
	"github.com/rostercore/shiftopt/internal/extract"
	"github.com/rostercore/shiftopt/internal/model"
	"github.com/rostercore/shiftopt/internal/objective"
	"github.com/rostercore/shiftopt/internal/solver"
)

func TestGrid_PrefillEchoedVerbatimAndBackupHolidayMarked(t *testing.T) {
	staff := []model.Staff{
		{ID: "a", Status: "R"},
		{ID: "ryo", Status: "R"},
		{ID: "nak", Status: "R"},
	}
	horizon, err := model.NewHorizon([]string{"2025-01-01", "2025-01-02"})
	require.NoError(t, err)
	cal := employment.New(horizon, staff)

	constraints := model.Constraints{
		StaffGroups:       []model.StaffGroup{{ID: "g1", Members: []string{"ryo"}}},
		BackupAssignments: []model.BackupAssignment{{StaffID: "nak", GroupID: "g1", IsActive: true}},
		PrefilledSchedule: map[string]map[string]string{
			"a": {"2025-01-01": "x"},
		},
		PenaltyWeights: model.DefaultPenaltyWeights(),
		Solver:         model.DefaultSolverSettings(),
	}
	holidays := map[string]bool{"2025-01-01": true}

	ctx := compiler.Compile(nil, staff, horizon, cal, holidays, constraints)
	objective.Assemble(ctx)

	eng := solver.NewEngine()
	res := eng.Solve(context.Background(), ctx.Model, solver.Params{TimeoutSeconds: 1, NumWorkers: 2, RandomSeed: 7})
	require.NotNil(t, res.Assignment)

	extracted := extract.Grid(ctx, res.Assignment)
	require.Equal(t, "x", extracted.Schedule["a"]["2025-01-01"])
	require.Equal(t, model.GlyphUnavailable, extracted.Schedule["nak"]["2025-01-01"])
}

func TestViolations_GroupsByDescriptionAndSortsByPenalty(t *testing.T) {
	m := solver.NewModel()
	cell := m.NewCell("s1", 0)
	m.AddSoft("low", 1, func(a *solver.Assignment) int {
		if a.Kind(cell) == model.Off {
			return 1
		}
		return 0
	})
	m.AddSoft("high", 100, func(a *solver.Assignment) int {
		if a.Kind(cell) == model.Off {
			return 1
		}
		return 0
	})

	a := m.InitialAssignment(rand.New(rand.NewSource(1)))
	a.SetKind(cell, model.Off)

	violations := extract.Violations(m, a)
	require.Len(t, violations, 2)
	require.Equal(t, "high", violations[0].Description)
	require.Equal(t, 100, violations[0].Penalty)
}
