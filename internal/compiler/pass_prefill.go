package compiler

import (
	"github.com/rostercore/shiftopt/internal/logging"
	"github.com/rostercore/shiftopt/internal/symbol"
)

// compilePrefilledCells implements spec §4.4.2: HARD equalities on
// every pre-filled (staff, date), with star-family glyphs additionally
// tallied as doubled off-equivalent units for the monthly-limits pass.
// Backup staff pre-fills were already dropped by the Normalizer (their
// schedule is coverage-driven, spec §4.1), so nothing here needs to
// re-check backup membership.
func (c *Context) compilePrefilledCells() {
	count := 0
	for staffID, byDate := range c.Constraints.PrefilledSchedule {
		for date, glyph := range byDate {
			dateIdx := c.Horizon.IndexOf(date)
			if dateIdx < 0 {
				continue
			}
			key := cellKey{staffID: staffID, dateIdx: dateIdx}
			if _, ok := c.cells[key]; !ok {
				continue
			}
			kind, _ := symbol.Decode(glyph)
			c.fixCell(staffID, dateIdx, kind)
			c.prefillKind[key] = kind
			if symbol.IsStarGlyph(glyph) {
				c.PrefilledStarEquivByStaff[staffID] += 2
			}
			count++
		}
	}
	c.Log.Debug("pre-filled cells pinned", logging.Fields{"count": count})
}
