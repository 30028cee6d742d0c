// Package normalize implements the Input Normalizer (spec §4.1): it
// walks the loosely-typed `constraints` envelope through the
// documented fallback chains and produces the canonical
// model.Constraints the rest of the pipeline consumes. Per spec §9
// ("never carry the raw input past the Normalizer"), nothing in this
// package's return value retains a reference into the raw tree.
package normalize

import (
	"strings"

	"github.com/rostercore/shiftopt/internal/logging"
	"github.com/rostercore/shiftopt/internal/model"
	"github.com/rostercore/shiftopt/internal/symbol"
)

// Result is the normalized constraints envelope plus the warnings
// collected while building it.
type Result struct {
	Constraints model.Constraints
	Warnings    []Warning
}

type builder struct {
	log      logging.Sink
	staffIdx map[string]model.Staff
	horizon  model.Horizon
	warnings []Warning
}

func (b *builder) warn(w Warning) {
	b.warnings = append(b.warnings, w)
	b.log.Warn(w.Message, logging.Fields{"code": w.Code, "key": w.Key})
}

// Normalize converts raw (the decoded `constraints` envelope) into a
// model.Constraints, given the already-typed staff roster and
// horizon (spec §6's staff/dates sequences carry a documented
// required-field shape and are not subject to the same fallback-chain
// treatment as the constraints envelope).
func Normalize(sink logging.Sink, staff []model.Staff, horizon model.Horizon, raw map[string]any) Result {
	b := &builder{
		log:      logging.OrDefault(sink),
		staffIdx: make(map[string]model.Staff, len(staff)),
		horizon:  horizon,
	}
	for _, s := range staff {
		b.staffIdx[s.ID] = s
	}

	c := model.Constraints{
		PenaltyWeights: model.DefaultPenaltyWeights(),
		Solver:         model.DefaultSolverSettings(),
	}

	c.CalendarRules = b.calendarRules(raw)
	c.EarlyShiftPreferences = b.earlyShiftPreferences(raw)
	c.StaffGroups = b.staffGroups(raw)
	c.BackupAssignments = b.backupAssignments(raw)

	backupIDs := make(map[string]bool, len(c.BackupAssignments))
	for _, ba := range c.BackupAssignments {
		if ba.IsActive {
			backupIDs[ba.StaffID] = true
		}
	}

	c.PriorityRules = b.priorityRules(raw)
	c.DailyLimits = b.dailyLimits(raw)
	c.MonthlyLimit = b.monthlyLimit(raw)
	c.StaffTypeLimits = b.staffTypeLimits(raw)
	c.StaffStatusShiftRestrictions = b.statusShiftRestrictions(raw)
	c.DisableStaffStatusShiftRestrictions = b.disableStatusRestrictions(raw)
	c.PrefilledSchedule = b.prefilledSchedule(raw, backupIDs)
	c.PostPeriod = b.postPeriod(raw)
	b.applyWeightOverrides(&c, raw)
	b.applySolverSettings(&c, raw)
	c.HardToggles = b.hardToggles(raw)

	return Result{Constraints: c, Warnings: b.warnings}
}

func (b *builder) calendarRules(raw map[string]any) map[string]model.CalendarRule {
	out := map[string]model.CalendarRule{}
	m := asMap(fieldOrNil(raw, "calendarRules"))
	for date, v := range m {
		entry := asMap(v)
		if entry == nil {
			continue
		}
		mustOff, _ := asBool(entry["must_day_off"])
		if !mustOff {
			mustOff, _ = asBool(entry["mustDayOff"])
		}
		mustWork, _ := asBool(entry["must_work"])
		if !mustWork {
			mustWork, _ = asBool(entry["mustWork"])
		}
		out[date] = model.CalendarRule{MustDayOff: mustOff, MustWork: mustWork}
	}
	return out
}

func (b *builder) earlyShiftPreferences(raw map[string]any) map[string]model.EarlyPreference {
	out := map[string]model.EarlyPreference{}
	m := asMap(fieldOrNil(raw, "earlyShiftPreferences"))
	for staffID, v := range m {
		entry := asMap(v)
		if entry == nil {
			continue
		}
		pref := model.EarlyPreference{ByDate: map[string]bool{}}
		for k, dv := range entry {
			if k == "default" {
				if asStrictTrue(dv) {
					t := true
					pref.Default = &t
				} else if _, isBool := dv.(bool); isBool {
					f := false
					pref.Default = &f
				}
				continue
			}
			pref.ByDate[k] = asStrictTrue(dv)
		}
		out[staffID] = pref
	}
	return out
}

func (b *builder) staffGroups(raw map[string]any) []model.StaffGroup {
	var out []model.StaffGroup
	for _, item := range asSlice(fieldOrNil(raw, "staffGroups")) {
		m := asMap(item)
		if m == nil {
			continue
		}
		id, _ := asString(m["id"])
		name, _ := asString(m["name"])
		var members []string
		for _, mv := range asSlice(m["members"]) {
			if s, ok := asString(mv); ok && s != "" {
				members = append(members, s)
			}
		}
		if id == "" {
			continue
		}
		out = append(out, model.StaffGroup{ID: id, Name: name, Members: members})
	}
	return out
}

func (b *builder) backupAssignments(raw map[string]any) []model.BackupAssignment {
	var out []model.BackupAssignment
	for _, item := range asSlice(fieldOrNil(raw, "backupAssignments")) {
		m := asMap(item)
		if m == nil {
			continue
		}
		staffID, _ := asString(m["staffId"])
		groupID, _ := asString(m["groupId"])
		active, _ := asBool(m["isActive"])
		if staffID == "" || groupID == "" {
			b.warn(newWarning(WarnMissingRuleStaff, "backupAssignments", "backup assignment missing staffId/groupId, dropped"))
			continue
		}
		out = append(out, model.BackupAssignment{StaffID: staffID, GroupID: groupID, IsActive: active})
	}
	return out
}

func (b *builder) disableStatusRestrictions(raw map[string]any) bool {
	v, _ := asBool(fieldOrNil(raw, "disableStaffStatusShiftRestrictions"))
	return v
}

func (b *builder) statusShiftRestrictions(raw map[string]any) map[string]model.ShiftRestriction {
	out := map[string]model.ShiftRestriction{}
	m := asMap(fieldOrNil(raw, "staffStatusShiftRestrictions"))
	for status, v := range m {
		entry := asMap(v)
		if entry == nil {
			continue
		}
		out[status] = model.ShiftRestriction{
			AllowedShifts:   decodeKindList(entry["allowedShifts"]),
			ForbiddenShifts: decodeKindList(entry["forbiddenShifts"]),
		}
	}
	return out
}

func decodeKindList(v any) []model.ShiftKind {
	var out []model.ShiftKind
	for _, item := range asSlice(v) {
		s, ok := asString(item)
		if !ok {
			continue
		}
		if k, ok := decodeShiftTypeName(s); ok {
			out = append(out, k)
		}
	}
	return out
}

// decodeShiftTypeName maps a recognized shiftType string (spec §4.1:
// "off, early, late, work, normal — the last two alias to Work") to a
// model.ShiftKind.
func decodeShiftTypeName(s string) (model.ShiftKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off":
		return model.Off, true
	case "early":
		return model.Early, true
	case "late":
		return model.Late, true
	case "work", "normal":
		return model.Work, true
	default:
		return 0, false
	}
}

func (b *builder) hardToggles(raw map[string]any) model.HardConstraintToggles {
	m := asMap(fieldOrNil(raw, "ortoolsConfig"))
	hc := asMap(fieldOrNil(m, "hardConstraints"))
	get := func(key string) bool {
		v, _ := asBool(hc[key])
		return v
	}
	return model.HardConstraintToggles{
		Backup:         get("backup"),
		StaffGroup:     get("staffGroup"),
		DailyLimit:     get("dailyLimit"),
		StaffTypeLimit: get("staffTypeLimit"),
		MonthlyLimit:   get("monthlyLimit"),
		FiveDayRest:    get("fiveDayRest"),
		PostPeriod:     get("postPeriod"),
	}
}

func (b *builder) applySolverSettings(c *model.Constraints, raw map[string]any) {
	m := asMap(fieldOrNil(raw, "ortoolsConfig"))
	ss := asMap(fieldOrNil(m, "solverSettings"))
	if ss == nil {
		return
	}
	if v, ok := asInt(ss["timeout"]); ok && v > 0 {
		c.Solver.TimeoutSeconds = v
	}
	if v, ok := asInt(ss["numWorkers"]); ok && v > 0 {
		c.Solver.NumWorkers = v
	}
}

func (b *builder) applyWeightOverrides(c *model.Constraints, raw map[string]any) {
	m := asMap(fieldOrNil(raw, "ortoolsConfig"))
	pw := asMap(fieldOrNil(m, "penaltyWeights"))
	apply := func(key string, dst *int) {
		if v, ok := asInt(pw[key]); ok {
			*dst = v
		}
	}
	apply("staff_group", &c.PenaltyWeights.StaffGroup)
	apply("daily_limit", &c.PenaltyWeights.DailyLimit)
	apply("daily_limit_max", &c.PenaltyWeights.DailyLimitMax)
	apply("monthly_limit", &c.PenaltyWeights.MonthlyLimit)
	apply("adjacent_conflict", &c.PenaltyWeights.AdjacentConflict)
	apply("5_day_rest", &c.PenaltyWeights.FiveDayRest)
	apply("staff_type_limit", &c.PenaltyWeights.StaffTypeLimit)
	apply("backup_coverage", &c.PenaltyWeights.BackupCoverage)
	apply("staff_status_shift", &c.PenaltyWeights.StaffStatusShift)
	apply("post_period_soft", &c.PenaltyWeights.PostPeriodSoft)
	apply("post_period_hard_escape", &c.PenaltyWeights.PostPeriodHardEscape)
	apply("prefilled_adjacent", &c.PenaltyWeights.PrefilledAdjacent)
	apply("hard_priority_as_soft", &c.PenaltyWeights.HardPriorityAsSoft)
	apply("early_pref_on_must_off", &c.PenaltyWeights.EarlyPrefOnMustOff)
	apply("rest_guarantee", &c.PenaltyWeights.RestGuarantee)
	apply("below_target_dayoffs", &c.PenaltyWeights.BelowTargetDayoffs)
	apply("below_target_early", &c.PenaltyWeights.BelowTargetEarly)
	apply("dayoff_bonus", &c.PenaltyWeights.DayoffBonus)
	apply("priority_exception", &c.PenaltyWeights.PriorityException)
}

// fieldOrNil is field() with the "no map, no entry" case collapsed to
// a bare nil so callers can chain asMap/asSlice without an extra check.
func fieldOrNil(m map[string]any, key string) any {
	v, _ := field(m, key)
	return v
}

// coerceGlyph decodes an input glyph, warning and defaulting to Work
// when unrecognized (spec §4.1: "Unknown glyphs are coerced to Work
// (preserving the glyph on output) with a warning").
func (b *builder) coerceGlyph(glyph, key string) (model.ShiftKind, bool) {
	if glyph == "" {
		b.warn(newWarning(WarnEmptyGlyph, key, "empty glyph dropped"))
		return model.Work, false
	}
	kind, known := symbol.Decode(glyph)
	if !known {
		b.warn(newWarning(WarnUnknownGlyph, key, "unknown glyph %q coerced to Work", glyph))
	}
	return kind, true
}
