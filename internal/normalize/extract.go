package normalize

import "strings"

// The constraints envelope arrives as an open, loosely-typed value
// tree (spec §9: "the reference treats rule payloads as open
// dictionaries walked through fallback chains"). raw is always
// map[string]any at the top and at every named nesting level; list
// values are []any. These helpers never panic on an unexpected shape
// — a wrong type along the path is treated the same as "absent".

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// asStrictTrue implements spec §9 open question 4: the `enabled`
// field (and any field documented as using the same strict contract)
// is present only when the raw value is the JSON boolean `true` —
// truthy-but-not-bool values like `1` or `"true"` do not count.
func asStrictTrue(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func field(m map[string]any, key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m[key]
	return v, ok
}

// path walks a dotted path ("ruleDefinition.staff_id") through nested
// maps, returning the leaf value.
func path(m map[string]any, dotted string) (any, bool) {
	parts := strings.Split(dotted, ".")
	cur := m
	for i, p := range parts {
		v, ok := cur[p]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		cur = asMap(v)
		if cur == nil {
			return nil, false
		}
	}
	return nil, false
}

// firstNonEmptyString walks candidate dotted paths in order and
// returns the first one resolving to a non-empty string (the "try
// X, then Y, then Z — first non-empty wins" contract repeated
// throughout spec §4.1).
func firstNonEmptyString(m map[string]any, paths ...string) string {
	for _, p := range paths {
		v, ok := path(m, p)
		if !ok {
			continue
		}
		s, ok := asString(v)
		if ok && s != "" {
			return s
		}
	}
	return ""
}

// firstNonEmptyStringList is the list analogue: the candidate path
// must resolve to a non-empty []string to qualify.
func firstNonEmptyStringList(m map[string]any, paths ...string) []string {
	for _, p := range paths {
		v, ok := path(m, p)
		if !ok {
			continue
		}
		raw := asSlice(v)
		if len(raw) == 0 {
			continue
		}
		out := make([]string, 0, len(raw))
		for _, item := range raw {
			if s, ok := asString(item); ok && s != "" {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}
