package objective_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rostercore/shiftopt/internal/compiler"
	"github.com/rostercore/shiftopt/internal/employment"
	"github.com/rostercore/shiftopt/internal/model"
	"github.com/rostercore/shiftopt/internal/objective"
)

func TestAssemble_RewardsOffOnFreeCell(t *testing.T) {
	staff := []model.Staff{{ID: "s1", Status: "R"}}
	horizon, err := model.NewHorizon([]string{"2026-02-01", "2026-02-02"})
	require.NoError(t, err)
	cal := employment.New(horizon, staff)

	constraints := model.Constraints{
		PenaltyWeights: model.DefaultPenaltyWeights(),
		Solver:         model.DefaultSolverSettings(),
	}
	ctx := compiler.Compile(nil, staff, horizon, cal, map[string]bool{}, constraints)
	objective.Assemble(ctx)

	cell, ok := ctx.Cell("s1", 0)
	require.True(t, ok)

	allOff := ctx.Model.InitialAssignment(rand.New(rand.NewSource(1)))
	allOff.SetKind(cell, model.Off)
	offScore := ctx.Model.Objective(allOff)

	allOff.SetKind(cell, model.Work)
	workScore := ctx.Model.Objective(allOff)

	require.Greater(t, offScore, workScore)
}
