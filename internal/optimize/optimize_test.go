package optimize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rostercore/shiftopt/internal/model"
	"github.com/rostercore/shiftopt/internal/optimize"
)

func TestSchedule_EmptyStaffFails(t *testing.T) {
	res := optimize.Schedule(optimize.Deps{}, nil, []string{"2026-01-01"}, nil, 1)
	assert.False(t, res.Success)
	assert.Equal(t, model.ErrNoStaff.Error(), res.Error)
}

func TestSchedule_EmptyHorizonFails(t *testing.T) {
	staff := []model.Staff{{ID: "a", Status: "R"}}
	res := optimize.Schedule(optimize.Deps{}, staff, nil, nil, 1)
	assert.False(t, res.Success)
	assert.Equal(t, model.ErrEmptyHorizon.Error(), res.Error)
}

func TestSchedule_ProducesAScheduleForABasicRoster(t *testing.T) {
	staff := []model.Staff{
		{ID: "a", Status: "R"},
		{ID: "b", Status: "R"},
	}
	dates := []string{"2026-03-01", "2026-03-02", "2026-03-03"}
	raw := map[string]any{
		"calendarRules": map[string]any{
			"2026-03-02": map[string]any{"mustDayOff": true},
		},
	}

	res := optimize.Schedule(optimize.Deps{}, staff, dates, raw, 1)
	require.True(t, res.Success)
	assert.NotEmpty(t, res.Schedule)
	assert.Equal(t, model.GlyphOff, res.Schedule["a"]["2026-03-02"])
	assert.Equal(t, model.GlyphOff, res.Schedule["b"]["2026-03-02"])
	assert.Equal(t, 2, res.Stats.StaffCount)
	assert.Equal(t, 3, res.Stats.DateCount)
}
