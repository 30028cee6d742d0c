// Package extract implements the Solution Extractor (spec §4.7): it
// turns a solved solver.Assignment back into the caller-facing glyph
// grid, a grouped violation report, and aggregate statistics.
package extract

import (
	"sort"

	"github.com/rostercore/shiftopt/internal/compiler"
	"github.com/rostercore/shiftopt/internal/model"
	"github.com/rostercore/shiftopt/internal/solver"
	"github.com/rostercore/shiftopt/internal/symbol"
)

// Extracted is everything the extractor produces from one solved
// assignment: the glyph grid plus the pieces optimize.Schedule folds
// into model.Result.
type Extracted struct {
	Schedule   map[string]map[string]string
	Violations []model.Violation
	TotalOff   int
}

// Grid reconstructs the glyph for every employed cell, per §4.7's
// precedence: pre-filled verbatim, then backup-slot derivation, then
// the assignment's own chosen kind.
func Grid(ctx *compiler.Context, a *solver.Assignment) Extracted {
	schedule := make(map[string]map[string]string, len(ctx.Staff))
	totalOff := 0

	for _, s := range ctx.Staff {
		byDate := make(map[string]string)
		for _, dateIdx := range ctx.EmployedDates(s.ID) {
			date := ctx.Horizon.At(dateIdx)
			cell, ok := ctx.Cell(s.ID, dateIdx)
			if !ok {
				continue
			}

			glyph, isOff := glyphFor(ctx, a, s.ID, dateIdx, date, cell)
			byDate[date] = glyph
			if isOff {
				totalOff++
			}
		}
		schedule[s.ID] = byDate
	}

	return Extracted{
		Schedule:   schedule,
		Violations: Violations(ctx.Model, a),
		TotalOff:   totalOff,
	}
}

func glyphFor(ctx *compiler.Context, a *solver.Assignment, staffID string, dateIdx int, date string, cell solver.CellRef) (string, bool) {
	if byDate, ok := ctx.Constraints.PrefilledSchedule[staffID]; ok {
		if glyph, ok := byDate[date]; ok {
			kind, _ := symbol.Decode(glyph)
			return glyph, kind == model.Off
		}
	}

	if slot, ok := ctx.BackupSlotFor(staffID, dateIdx); ok {
		switch slot.Kind {
		case compiler.SlotHoliday:
			return model.GlyphUnavailable, false
		case compiler.SlotCoverage:
			kind := a.Kind(cell)
			if kind == model.Work {
				return model.GlyphBackupWork, false
			}
			return symbol.Encode(kind), kind == model.Off
		}
	}

	kind := a.Kind(cell)
	return symbol.Encode(kind), kind == model.Off
}

// Violations groups every positive-valued soft indicator by
// description and sums count/penalty, per SPEC_FULL.md §C ("avoid a
// violations list with thousands of near-duplicate rows"). The
// returned slice is sorted by descending penalty so the caller's
// top-N truncation keeps the worst offenders.
func Violations(m *solver.Model, a *solver.Assignment) []model.Violation {
	byDesc := make(map[string]*model.Violation)
	var order []string

	for _, ind := range m.Indicators() {
		v := ind.Value(a)
		if v <= 0 {
			continue
		}
		row, ok := byDesc[ind.Desc]
		if !ok {
			row = &model.Violation{Description: ind.Desc}
			byDesc[ind.Desc] = row
			order = append(order, ind.Desc)
		}
		row.Count += v
		row.Penalty += v * ind.Weight
	}

	out := make([]model.Violation, 0, len(order))
	for _, desc := range order {
		out = append(out, *byDesc[desc])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Penalty > out[j].Penalty
	})
	return out
}
