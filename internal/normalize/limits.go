package normalize

import "github.com/rostercore/shiftopt/internal/model"

func (b *builder) dailyLimits(raw map[string]any) model.DailyLimits {
	m := asMap(fieldOrNil(raw, "dailyLimitsRaw"))
	if m == nil {
		return model.DailyLimits{}
	}
	minOff, _ := asInt(m["minOffPerDay"])
	maxOff, _ := asInt(m["maxOffPerDay"])
	enabled, _ := asBool(m["enabled"])
	if _, present := m["enabled"]; !present {
		enabled = true
	}
	isHard, _ := asBool(m["isHardConstraint"])

	if minOff < 0 || maxOff < 0 {
		b.warn(newWarning(WarnNegativeLimit, "dailyLimitsRaw", "negative daily limit, daily limits disabled"))
		return model.DailyLimits{}
	}
	if maxOff > 0 && minOff > maxOff {
		b.warn(newWarning(WarnMinExceedsMax, "dailyLimitsRaw", "minOffPerDay exceeds maxOffPerDay, daily limits disabled"))
		return model.DailyLimits{}
	}
	return model.DailyLimits{MinOffPerDay: minOff, MaxOffPerDay: maxOff, Enabled: enabled, IsHard: isHard}
}

func (b *builder) monthlyLimit(raw map[string]any) model.MonthlyLimit {
	m := asMap(fieldOrNil(raw, "monthlyLimit"))
	if m == nil {
		return model.MonthlyLimit{}
	}
	minCount, _ := asInt(m["minCount"])
	maxCount, _ := asInt(m["maxCount"])
	exclude, _ := asBool(m["excludeCalendarRules"])
	isHard, _ := asBool(m["isHardConstraint"])

	if minCount < 0 || maxCount < 0 {
		b.warn(newWarning(WarnNegativeLimit, "monthlyLimit", "negative monthly limit, ignored"))
		return model.MonthlyLimit{}
	}
	if maxCount > 0 && minCount > maxCount {
		b.warn(newWarning(WarnMinExceedsMax, "monthlyLimit", "minCount exceeds maxCount, ignored"))
		return model.MonthlyLimit{}
	}
	return model.SetMonthlyLimit(model.MonthlyLimit{
		MinCount:             minCount,
		MaxCount:             maxCount,
		ExcludeCalendarRules: exclude,
		IsHard:               isHard,
	})
}

// staffTypeLimits extracts per-status limits, skipping (not failing)
// entries with a negative bound or an inverted min/max pair (spec §4.1
// "Error conditions").
func (b *builder) staffTypeLimits(raw map[string]any) map[string]model.PerTypeLimit {
	out := map[string]model.PerTypeLimit{}
	m := asMap(fieldOrNil(raw, "staffTypeLimits"))
	for status, v := range m {
		entry := asMap(v)
		if entry == nil {
			continue
		}
		minOff, hasMin := asOptionalInt(entry["minOff"])
		maxOff, hasMax := asOptionalInt(entry["maxOff"])
		maxEarly, hasMaxEarly := asOptionalInt(entry["maxEarly"])
		isHard, _ := asBool(entry["isHard"])

		if hasMin && minOff != nil && *minOff < 0 {
			b.warn(newWarning(WarnNegativeLimit, status, "negative minOff, staff type limit skipped"))
			continue
		}
		if hasMax && maxOff != nil && *maxOff < 0 {
			b.warn(newWarning(WarnNegativeLimit, status, "negative maxOff, staff type limit skipped"))
			continue
		}
		if hasMaxEarly && maxEarly != nil && *maxEarly < 0 {
			b.warn(newWarning(WarnNegativeLimit, status, "negative maxEarly, staff type limit skipped"))
			continue
		}
		if hasMin && hasMax && minOff != nil && maxOff != nil && *minOff > *maxOff {
			b.warn(newWarning(WarnMinExceedsMax, status, "minOff exceeds maxOff, staff type limit skipped"))
			continue
		}

		out[status] = model.PerTypeLimit{
			Status:         status,
			MinOffPerDay:   minOff,
			MaxOffPerDay:   maxOff,
			MaxEarlyPerDay: maxEarly,
			IsHard:         isHard,
		}
	}
	return out
}

func asOptionalInt(v any) (*int, bool) {
	if v == nil {
		return nil, false
	}
	n, ok := asInt(v)
	if !ok {
		return nil, false
	}
	return &n, true
}

func (b *builder) postPeriod(raw map[string]any) model.PostPeriodConstraint {
	m := asMap(fieldOrNil(raw, "earlyShiftConfig"))
	pp := asMap(fieldOrNil(m, "postPeriodConstraint"))
	if pp == nil {
		return model.PostPeriodConstraint{}
	}
	enabled, _ := asBool(pp["enabled"])
	isHard, _ := asBool(pp["isHardConstraint"])
	minLen, _ := asInt(pp["minPeriodLength"])
	postDays, _ := asInt(pp["postPeriodDays"])
	avoidRegular, _ := asBool(pp["avoidDayOffForShain"])
	avoidDispatch, _ := asBool(pp["avoidDayOffForHaken"])
	allowEarly, _ := asBool(pp["allowEarlyForShain"])

	return model.PostPeriodConstraint{
		Enabled:                enabled,
		IsHard:                 isHard,
		MinPeriodLength:        minLen,
		PostPeriodDays:         postDays,
		AvoidDayOffForRegular:  avoidRegular,
		AvoidDayOffForDispatch: avoidDispatch,
		AllowEarlyForRegular:   allowEarly,
	}
}
