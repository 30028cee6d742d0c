// Package symbol implements the bidirectional mapping between
// user-visible shift glyphs and the four internal shift kinds (the
// "Symbol Codec" component of the pipeline). It is consulted by the
// normalizer on input and the solution extractor on output.
package symbol

import "github.com/rostercore/shiftopt/internal/model"

// offAliases, earlyAliases and lateAliases are deliberately plain
// string sets rather than a single normalized map: per spec §9 open
// question 3, some glyphs are reachable two ways (a literal UTF-8
// rune and an ASCII stand-in) and the table is multivalued-to-one by
// design. Do not collapse these into a canonical-form lookup.
var offAliases = map[string]bool{
	model.GlyphOff: true,
	"x":            true,
	"X":            true,
}

var earlyAliases = map[string]bool{
	model.GlyphEarly: true,
	"s":              true,
	"S":              true,
}

var lateAliases = map[string]bool{
	model.GlyphLate: true,
}

// workDecorative glyphs map to Work for scheduling purposes but are
// preserved verbatim in the output grid by the extractor when they
// arrive as a pre-filled cell. "○" is the explicit backup work marker;
// "⊘" is nominally output-only but is accepted here too since the
// normalizer must tolerate a caller echoing it back as a pre-fill.
var workDecorative = map[string]bool{
	model.GlyphBackupWork:  true,
	model.GlyphUnavailable: true,
	"★":                    true,
	"☆":                    true,
	"●":                    true,
	"◎":                    true,
	"▣":                    true,
}

// starGlyphs are the subset of decorative Work glyphs that carry
// designated-off intent: a pre-filled star is tracked as an
// off-equivalent unit for monthly quotas even though its kind is Work.
var starGlyphs = map[string]bool{
	"★": true,
	"☆": true,
	"●": true,
	"◎": true,
	"▣": true,
}

// Decode maps an input glyph to its shift kind. The second return
// value is false when the glyph is unrecognized; callers must coerce
// to model.Work and preserve the original glyph, logging a warning
// (spec §4.1 "Unknown glyphs are coerced to Work").
func Decode(glyph string) (model.ShiftKind, bool) {
	switch {
	case glyph == "":
		return model.Work, true
	case offAliases[glyph]:
		return model.Off, true
	case earlyAliases[glyph]:
		return model.Early, true
	case lateAliases[glyph]:
		return model.Late, true
	case workDecorative[glyph]:
		return model.Work, true
	default:
		return model.Work, false
	}
}

// IsStarGlyph reports whether glyph is one of the designated-off
// decorative Work glyphs (star/circle family).
func IsStarGlyph(glyph string) bool {
	return starGlyphs[glyph]
}

// Encode returns the canonical output glyph for a solver-chosen kind.
// Encode(Decode(g)) need not reproduce g for aliased glyphs (e.g. "x");
// it always normalizes to the canonical representative.
func Encode(k model.ShiftKind) string {
	return model.DefaultGlyph(k)
}
