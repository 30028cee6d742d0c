package compiler

import (
	"fmt"

	"github.com/rostercore/shiftopt/internal/model"
	"github.com/rostercore/shiftopt/internal/solver"
)

// compilePostPeriod implements spec §4.4.14: maximal runs of
// must-day-off dates of at least MinPeriodLength attract anti-day-off
// pressure on the PostPeriodDays dates that follow, for the configured
// cohorts.
func (c *Context) compilePostPeriod() {
	pp := c.Constraints.PostPeriod
	if !pp.Enabled {
		return
	}

	runs := maximalOffRuns(c.Horizon.Len(), c.CalendarOffDates)
	var targets []int
	seenTarget := map[int]bool{}
	for _, run := range runs {
		length := run.end - run.start + 1
		if length < pp.MinPeriodLength {
			continue
		}
		for i := 1; i <= pp.PostPeriodDays; i++ {
			idx := run.end + i
			if idx >= c.Horizon.Len() {
				break
			}
			if !seenTarget[idx] {
				seenTarget[idx] = true
				targets = append(targets, idx)
			}
		}
	}

	for _, dateIdx := range targets {
		date := c.Horizon.At(dateIdx)
		for _, s := range c.Staff {
			if !c.targetedByPostPeriod(s.ID, pp) {
				continue
			}
			cell, ok := c.Cell(s.ID, dateIdx)
			if !ok {
				continue
			}

			if pp.IsHard {
				escape := c.Model.NewAux(fmt.Sprintf("postPeriodEscape:%s:%d", s.ID, dateIdx))
				c.PostPeriodEscapeAux = append(c.PostPeriodEscapeAux, escape)
				c.Model.AddHard(fmt.Sprintf("post-period restriction for %s on %s", s.ID, date), func(a *solver.Assignment) bool {
					return a.Kind(cell) != model.Off || a.Bool(escape)
				})
				c.Model.AddSoft(fmt.Sprintf("post-period escape used by %s on %s", s.ID, date), c.weights.PostPeriodHardEscape, func(a *solver.Assignment) int {
					if a.Bool(escape) {
						return 1
					}
					return 0
				})
			} else {
				c.Model.AddSoft(fmt.Sprintf("post-period day-off for %s on %s", s.ID, date), c.weights.PostPeriodSoft, func(a *solver.Assignment) int {
					if a.Kind(cell) == model.Off {
						return 1
					}
					return 0
				})
			}

			if pp.AllowEarlyForRegular && c.isRegular(s.ID) {
				c.Model.AddBonus(fmt.Sprintf("post-period early incentive for %s on %s", s.ID, date), 20, func(a *solver.Assignment) int {
					if a.Kind(cell) == model.Early {
						return 1
					}
					return 0
				})
			}
		}
	}
}

func (c *Context) targetedByPostPeriod(staffID string, pp model.PostPeriodConstraint) bool {
	if pp.AvoidDayOffForRegular && c.isRegular(staffID) {
		return true
	}
	if pp.AvoidDayOffForDispatch && c.isDispatch(staffID) {
		return true
	}
	return false
}

type dateRun struct{ start, end int }

// maximalOffRuns finds maximal runs of consecutive indices flagged in
// offDates within [0, horizonLen).
func maximalOffRuns(horizonLen int, offDates map[int]bool) []dateRun {
	var runs []dateRun
	i := 0
	for i < horizonLen {
		if !offDates[i] {
			i++
			continue
		}
		start := i
		for i < horizonLen && offDates[i] {
			i++
		}
		runs = append(runs, dateRun{start: start, end: i - 1})
	}
	return runs
}
