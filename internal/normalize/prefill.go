package normalize

import "github.com/rostercore/shiftopt/internal/symbol"

// prefilledSchedule extracts the staff_id -> date -> glyph nested map
// (spec §4.1 "Pre-fills"). Entries referencing unknown staff, dates
// outside the horizon, empty strings, or backup staff are silently
// dropped (counted and logged) — backupIDs is the already-resolved
// set of active backup assignment staff ids.
func (b *builder) prefilledSchedule(raw map[string]any, backupIDs map[string]bool) map[string]map[string]string {
	out := map[string]map[string]string{}
	m := asMap(fieldOrNil(raw, "prefilledSchedule"))
	for staffID, v := range m {
		if _, ok := b.staffIdx[staffID]; !ok {
			b.warn(newWarning(WarnUnknownStaff, staffID, "prefilled schedule references unknown staff id, dropped"))
			continue
		}
		if backupIDs[staffID] {
			b.warn(newWarning(WarnBackupPrefillSkipped, staffID, "backup staff pre-fill ignored, schedule is coverage-driven"))
			continue
		}
		dateMap := asMap(v)
		if dateMap == nil {
			continue
		}
		kept := map[string]string{}
		for date, gv := range dateMap {
			glyph, ok := asString(gv)
			if !ok || glyph == "" {
				b.warn(newWarning(WarnEmptyGlyph, staffID+"/"+date, "empty pre-fill glyph dropped"))
				continue
			}
			if b.horizon.IndexOf(date) < 0 {
				b.warn(newWarning(WarnDateOutsideHorizon, staffID+"/"+date, "pre-fill date outside horizon, dropped"))
				continue
			}
			if _, known := symbol.Decode(glyph); !known {
				// unknown glyphs are still accepted as pre-fills (the
				// solver equality is to whatever kind it decodes to,
				// which for an unrecognized glyph is Work) but flagged.
				b.warn(newWarning(WarnUnknownGlyph, staffID+"/"+date, "unknown pre-fill glyph %q coerced to Work", glyph))
			}
			kept[date] = glyph
		}
		if len(kept) > 0 {
			out[staffID] = kept
		}
	}
	return out
}
