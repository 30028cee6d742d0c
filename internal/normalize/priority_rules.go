package normalize

import (
	"strconv"
	"strings"

	"github.com/rostercore/shiftopt/internal/model"
)

var weekdayNames = map[string]int{
	"sunday": 0, "sun": 0,
	"monday": 1, "mon": 1,
	"tuesday": 2, "tue": 2, "tues": 2,
	"wednesday": 3, "wed": 3,
	"thursday": 4, "thu": 4, "thurs": 4,
	"friday": 5, "fri": 5,
	"saturday": 6, "sat": 6,
}

// priorityRules extracts spec §4.1's priority-rule list, applying the
// documented fallback chains for staff id / staff id list / shiftType,
// a mixed int-or-string dayOfWeek encoding, and first-seen duplicate
// ID suppression (spec §5 "duplicate-ID suppression uses a set that
// respects first-seen").
//
// The rule's HARD/SOFT/variant shape (prefer a kind, avoid a kind,
// avoid-with-exceptions) is not given an exact raw field name by
// spec §4.1 beyond the semantic description — this Normalizer follows
// the same "ruleDefinition"/"ruleConfig" nesting convention already
// established for staffId/shiftType and reads `ruleType` (or
// `rule_type`) as one of "prefer", "avoid", "avoid_with_exceptions",
// with `exceptions` as a parallel shiftType-string list under the
// same ruleDefinition/ruleConfig/preferences nesting.
func (b *builder) priorityRules(raw map[string]any) []model.PriorityRule {
	var out []model.PriorityRule
	seen := map[string]bool{}

	for i, item := range asSlice(fieldOrNil(raw, "priorityRules")) {
		m := asMap(item)
		if m == nil {
			continue
		}

		id := firstTopLevelString(m, "id", "ruleId")
		if id == "" {
			id = syntheticRuleID(i)
		}
		if seen[id] {
			b.warn(newWarning(WarnDuplicateRuleID, id, "duplicate priority rule id, skipped"))
			continue
		}
		seen[id] = true

		staffIDs := b.ruleStaffIDs(m, id)
		if len(staffIDs) == 0 {
			b.warn(newWarning(WarnMissingRuleStaff, id, "priority rule has no resolvable staff id, skipped"))
			continue
		}

		shiftTypeStr := firstNonEmptyString(m, "shiftType", "ruleDefinition.shift_type", "ruleDefinition.shiftType", "preferences.shiftType")
		if shiftTypeStr == "" {
			shiftTypeStr = "off"
		}
		kind, ok := decodeShiftTypeName(shiftTypeStr)
		if !ok {
			b.warn(newWarning(WarnUnrecognizedShiftType, id, "unrecognized shiftType %q defaulted to off", shiftTypeStr))
			kind = model.Off
		}

		days := b.ruleDaysOfWeek(m)

		isActive, _ := asBool(m["isActive"])
		if _, present := m["isActive"]; !present {
			isActive = true
		}
		priorityLevel, _ := asInt(m["priorityLevel"])
		isHard, _ := asBool(m["isHard"])
		if !isHard {
			isHard, _ = asBool(m["is_hard"])
		}

		variant, exceptions := b.ruleVariant(m, kind)

		out = append(out, model.PriorityRule{
			ID:            id,
			StaffIDs:      staffIDs,
			Kind:          kind,
			Exceptions:    exceptions,
			DaysOfWeek:    days,
			IsActive:      isActive,
			PriorityLevel: priorityLevel,
			IsHard:        isHard,
			Variant:       variant,
		})
	}
	return out
}

func (b *builder) ruleStaffIDs(m map[string]any, ruleID string) []string {
	single := firstNonEmptyString(m,
		"staffId", "staff_id",
		"ruleDefinition.staff_id", "ruleDefinition.staffId",
		"ruleConfig.staffId", "ruleConfig.staff_id",
		"preferences.staffId", "preferences.staff_id",
	)
	list := firstNonEmptyStringList(m,
		"staffIds", "staff_ids",
		"ruleDefinition.staff_ids", "ruleDefinition.staffIds",
		"ruleConfig.staffIds", "ruleConfig.staff_ids",
		"preferences.staffIds", "preferences.staff_ids",
	)

	ids := map[string]bool{}
	var ordered []string
	add := func(id string) {
		if id == "" || ids[id] {
			return
		}
		ids[id] = true
		ordered = append(ordered, id)
	}
	add(single)
	for _, id := range list {
		add(id)
	}

	var valid []string
	for _, id := range ordered {
		if _, ok := b.staffIdx[id]; !ok {
			b.warn(newWarning(WarnUnknownStaff, ruleID, "priority rule references unknown staff id %q, dropped", id))
			continue
		}
		valid = append(valid, id)
	}
	return valid
}

func (b *builder) ruleDaysOfWeek(m map[string]any) map[int]bool {
	out := map[int]bool{}
	raw := firstRawList(m, "daysOfWeek", "days_of_week")
	for _, item := range raw {
		if n, ok := asInt(item); ok {
			if n >= 0 && n <= 6 {
				out[n] = true
			}
			continue
		}
		if s, ok := asString(item); ok {
			if d, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]; ok {
				out[d] = true
			}
		}
	}
	return out
}

func (b *builder) ruleVariant(m map[string]any, kind model.ShiftKind) (model.PriorityVariant, []model.ShiftKind) {
	ruleType := strings.ToLower(strings.TrimSpace(firstNonEmptyString(m,
		"ruleType", "rule_type",
		"ruleDefinition.ruleType", "ruleDefinition.rule_type",
		"ruleConfig.ruleType", "ruleConfig.rule_type",
	)))

	exceptions := decodeKindList(firstRawValue(m, "exceptions", "ruleDefinition.exceptions", "ruleConfig.exceptions", "preferences.exceptions"))

	switch ruleType {
	case "avoid_with_exceptions", "avoidwithexceptions":
		return model.VariantAvoidWithExceptions, exceptions
	case "avoid", "block":
		return model.VariantAvoidKind, nil
	case "prefer", "required_off", "requiredoff":
		return model.VariantPreferKind, nil
	default:
		if len(exceptions) > 0 {
			return model.VariantAvoidWithExceptions, exceptions
		}
		return model.VariantPreferKind, nil
	}
}

func firstTopLevelString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if s, ok := asString(v); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

func firstRawList(m map[string]any, paths ...string) []any {
	for _, p := range paths {
		v, ok := path(m, p)
		if !ok {
			continue
		}
		if s := asSlice(v); len(s) > 0 {
			return s
		}
	}
	return nil
}

func firstRawValue(m map[string]any, paths ...string) any {
	for _, p := range paths {
		if v, ok := path(m, p); ok {
			return v
		}
	}
	return nil
}

func syntheticRuleID(index int) string {
	return "rule_" + strconv.Itoa(index)
}
