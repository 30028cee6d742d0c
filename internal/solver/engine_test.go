package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rostercore/shiftopt/internal/model"
)

func TestEngine_RespectsFixedCells(t *testing.T) {
	m := NewModel()
	fixed := m.NewCell("s1", 0)
	m.FixCell(fixed, model.Off)
	free := m.NewCell("s1", 1)
	_ = free

	m.AddHard("no two offs in a row", func(a *Assignment) bool {
		return !(a.Kind(fixed) == model.Off && a.Kind(free) == model.Off)
	})

	eng := NewEngine()
	res := eng.Solve(context.Background(), m, Params{TimeoutSeconds: 1, NumWorkers: 2, RandomSeed: 7})

	require.NotNil(t, res.Assignment)
	assert.Equal(t, model.Off, res.Assignment.Kind(fixed))
	assert.Equal(t, 0, res.HardViolations)
}

func TestEngine_ModelInvalidWhenEmpty(t *testing.T) {
	m := NewModel()
	eng := NewEngine()
	res := eng.Solve(context.Background(), m, Params{})
	assert.Equal(t, StatusModelInvalid, res.Status)
}

func TestEngine_MaximizesBonusUnderSoftPenalty(t *testing.T) {
	m := NewModel()
	c := m.NewCell("s1", 0)
	m.AddBonus("prefer work", 10, func(a *Assignment) int {
		if a.Kind(c) == model.Work {
			return 1
		}
		return 0
	})

	eng := NewEngine()
	res := eng.Solve(context.Background(), m, Params{TimeoutSeconds: 1, NumWorkers: 2, RandomSeed: 1})

	require.NotNil(t, res.Assignment)
	assert.Equal(t, model.Work, res.Assignment.Kind(c))
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "optimal", StatusOptimal.String())
	assert.Equal(t, "infeasible", StatusInfeasible.String())
	assert.Equal(t, "model_invalid", StatusModelInvalid.String())
}
