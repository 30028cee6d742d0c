package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rostercore/shiftopt/internal/model"
)

func testStaff() []model.Staff {
	return []model.Staff{
		{ID: "A", Name: "Alice", Status: "R"},
		{ID: "B", Name: "Bob", Status: "R"},
		{ID: "nak", Name: "Nak", Status: "R"},
	}
}

func testHorizon(t *testing.T) model.Horizon {
	h, err := model.NewHorizon([]string{"2025-12-24", "2025-12-25", "2025-12-26"})
	require.NoError(t, err)
	return h
}

func TestNormalize_CalendarRulesAndEarlyPreference(t *testing.T) {
	raw := map[string]any{
		"calendarRules": map[string]any{
			"2025-12-25": map[string]any{"must_day_off": true},
		},
		"earlyShiftPreferences": map[string]any{
			"A": map[string]any{"2025-12-25": true},
		},
	}
	res := Normalize(nil, testStaff(), testHorizon(t), raw)
	assert.Empty(t, res.Warnings)
	assert.True(t, res.Constraints.CalendarRules["2025-12-25"].MustDayOff)
	assert.True(t, res.Constraints.EarlyShiftPreferences["A"].ByDate["2025-12-25"])
}

func TestNormalize_PriorityRuleStaffIDFallbackChain(t *testing.T) {
	raw := map[string]any{
		"priorityRules": []any{
			map[string]any{
				"id":            "r1",
				"ruleDefinition": map[string]any{"staff_id": "A"},
				"shiftType":     "early",
				"daysOfWeek":    []any{"monday", 2},
				"isActive":      true,
				"priorityLevel": 5,
			},
		},
	}
	res := Normalize(nil, testStaff(), testHorizon(t), raw)
	require.Len(t, res.Constraints.PriorityRules, 1)
	rule := res.Constraints.PriorityRules[0]
	assert.Equal(t, []string{"A"}, rule.StaffIDs)
	assert.Equal(t, model.Early, rule.Kind)
	assert.True(t, rule.DaysOfWeek[1])
	assert.True(t, rule.DaysOfWeek[2])
}

func TestNormalize_DuplicateRuleIDSkipped(t *testing.T) {
	raw := map[string]any{
		"priorityRules": []any{
			map[string]any{"id": "r1", "staffId": "A"},
			map[string]any{"id": "r1", "staffId": "B"},
		},
	}
	res := Normalize(nil, testStaff(), testHorizon(t), raw)
	assert.Len(t, res.Constraints.PriorityRules, 1)
	assert.Equal(t, "A", res.Constraints.PriorityRules[0].StaffIDs[0])
}

func TestNormalize_PrefillDropsUnknownStaffAndOutOfHorizonDate(t *testing.T) {
	raw := map[string]any{
		"prefilledSchedule": map[string]any{
			"A":       map[string]any{"2025-12-24": "×", "2099-01-01": "×"},
			"ghost":   map[string]any{"2025-12-24": "×"},
		},
	}
	res := Normalize(nil, testStaff(), testHorizon(t), raw)
	assert.Equal(t, "×", res.Constraints.PrefilledSchedule["A"]["2025-12-24"])
	_, hasOutOfHorizon := res.Constraints.PrefilledSchedule["A"]["2099-01-01"]
	assert.False(t, hasOutOfHorizon)
	_, hasGhost := res.Constraints.PrefilledSchedule["ghost"]
	assert.False(t, hasGhost)
	assert.NotEmpty(t, res.Warnings)
}

func TestNormalize_BackupPrefillDropped(t *testing.T) {
	raw := map[string]any{
		"backupAssignments": []any{
			map[string]any{"staffId": "nak", "groupId": "g1", "isActive": true},
		},
		"prefilledSchedule": map[string]any{
			"nak": map[string]any{"2025-12-24": "×"},
		},
	}
	res := Normalize(nil, testStaff(), testHorizon(t), raw)
	_, ok := res.Constraints.PrefilledSchedule["nak"]
	assert.False(t, ok)
}

func TestNormalize_NegativeDailyLimitDisabled(t *testing.T) {
	raw := map[string]any{
		"dailyLimitsRaw": map[string]any{"minOffPerDay": -1, "maxOffPerDay": 2, "enabled": true},
	}
	res := Normalize(nil, testStaff(), testHorizon(t), raw)
	assert.Equal(t, model.DailyLimits{}, res.Constraints.DailyLimits)
	assert.NotEmpty(t, res.Warnings)
}

func TestNormalize_StaffTypeLimitMinExceedsMaxSkipped(t *testing.T) {
	raw := map[string]any{
		"staffTypeLimits": map[string]any{
			"R": map[string]any{"minOff": 5, "maxOff": 1},
		},
	}
	res := Normalize(nil, testStaff(), testHorizon(t), raw)
	_, ok := res.Constraints.StaffTypeLimits["R"]
	assert.False(t, ok)
}

func TestNormalize_PenaltyWeightOverride(t *testing.T) {
	raw := map[string]any{
		"ortoolsConfig": map[string]any{
			"penaltyWeights": map[string]any{"backup_coverage": 999},
			"solverSettings": map[string]any{"timeout": 45, "numWorkers": 8},
		},
	}
	res := Normalize(nil, testStaff(), testHorizon(t), raw)
	assert.Equal(t, 999, res.Constraints.PenaltyWeights.BackupCoverage)
	assert.Equal(t, 45, res.Constraints.Solver.TimeoutSeconds)
	assert.Equal(t, 8, res.Constraints.Solver.NumWorkers)
}
