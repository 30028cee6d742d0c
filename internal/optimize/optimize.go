// Package optimize wires the full pipeline together behind the
// single synchronous entry point spec §6 calls `optimize_schedule`:
// Normalizer → Employment Calendar → Constraint Compiler → Objective
// Assembler → Solver Engine → Solution Extractor.
package optimize

import (
	"context"
	"fmt"
	"time"

	"github.com/rostercore/shiftopt/internal/compiler"
	"github.com/rostercore/shiftopt/internal/employment"
	"github.com/rostercore/shiftopt/internal/extract"
	"github.com/rostercore/shiftopt/internal/holiday"
	"github.com/rostercore/shiftopt/internal/logging"
	"github.com/rostercore/shiftopt/internal/model"
	"github.com/rostercore/shiftopt/internal/normalize"
	"github.com/rostercore/shiftopt/internal/objective"
	"github.com/rostercore/shiftopt/internal/solver"
)

// Deps carries the caller-owned collaborators the core never
// constructs for itself: a logging sink and a Holiday Oracle (spec §5
// "the Holiday Oracle may maintain a process-wide memoized cache...
// access must be internally synchronized"). Both are optional; nil
// Log becomes the no-op sink and nil Oracle yields an empty holiday
// set rather than blocking the call.
type Deps struct {
	Log    logging.Sink
	Oracle holiday.Oracle
}

// Schedule is the core's single synchronous entry point (spec §6),
// equivalent to the spec's `optimize_schedule(staff, dates,
// constraints, timeout_seconds)`. rawConstraints is the recognized-
// options envelope; unrecognized keys are ignored by the Normalizer.
// A panic anywhere in compilation or extraction is recovered here and
// reported as a band-4 internal exception (spec §7) rather than
// propagated to the caller.
func Schedule(deps Deps, staff []model.Staff, dates []string, rawConstraints map[string]any, timeoutSeconds int) (result model.Result) {
	log := logging.OrDefault(deps.Log)

	defer func() {
		if r := recover(); r != nil {
			result = model.Result{
				Success: false,
				Error:   fmt.Sprintf("internal error: %v", r),
				Status:  "internal_error",
			}
		}
	}()

	if len(staff) == 0 {
		return failureResult(model.ErrNoStaff, "")
	}
	if len(dates) == 0 {
		return failureResult(model.ErrEmptyHorizon, "")
	}

	horizon, err := model.NewHorizon(dates)
	if err != nil {
		return failureResult(err, "")
	}

	cal := employment.New(horizon, staff)
	holidays := lookupHolidays(deps.Oracle, log, horizon)

	normalized := normalize.Normalize(log, staff, horizon, rawConstraints)
	for _, w := range normalized.Warnings {
		log.Warn(w.String(), logging.Fields{"code": w.Code, "key": w.Key})
	}
	constraints := normalized.Constraints

	ctx := compiler.Compile(log, staff, horizon, cal, holidays, constraints)
	objective.Assemble(ctx)

	effectiveTimeout := timeoutSeconds
	if effectiveTimeout <= 0 {
		effectiveTimeout = constraints.Solver.TimeoutSeconds
	}
	if effectiveTimeout <= 0 {
		effectiveTimeout = model.DefaultSolverSettings().TimeoutSeconds
	}
	numWorkers := constraints.Solver.NumWorkers
	if numWorkers <= 0 {
		numWorkers = model.DefaultSolverSettings().NumWorkers
	}

	params := solver.Params{
		TimeoutSeconds: effectiveTimeout,
		NumWorkers:     numWorkers,
		RandomSeed:     randomSeed(),
	}

	runCtx, cancel := context.WithTimeout(context.Background(), time.Duration(effectiveTimeout)*time.Second)
	defer cancel()

	start := time.Now()
	eng := solver.NewEngine()
	solveResult := eng.Solve(runCtx, ctx.Model, params)
	elapsed := time.Since(start)

	switch solveResult.Status {
	case solver.StatusInfeasible:
		return failureResult(model.ErrInfeasible, solveResult.Status.String())
	case solver.StatusModelInvalid:
		return failureResult(model.ErrModelInvalid, solveResult.Status.String())
	case solver.StatusUnknown:
		return failureResult(model.ErrSolverUnknown, solveResult.Status.String())
	}

	extracted := extract.Grid(ctx, solveResult.Assignment)

	totalPenalty := 0
	for _, v := range extracted.Violations {
		totalPenalty += v.Penalty
	}

	prefilledCells := 0
	for _, byDate := range constraints.PrefilledSchedule {
		prefilledCells += len(byDate)
	}

	return model.Result{
		Success:   true,
		Schedule:  extracted.Schedule,
		SolveTime: elapsed,
		IsOptimal: solveResult.Status == solver.StatusOptimal,
		Status:    solveResult.Status.String(),
		Stats: model.Stats{
			NumConflicts:          0,
			NumBranches:           int(solveResult.Iterations),
			WallTime:              elapsed,
			TotalOffDays:          extracted.TotalOff,
			StaffCount:            len(staff),
			DateCount:             horizon.Len(),
			TotalViolations:       len(extracted.Violations),
			TotalViolationPenalty: totalPenalty,
			PrefilledCells:        prefilledCells,
			PostPeriodEscapes:     countEscapes(ctx, solveResult.Assignment),
			OffEquivalentByStaff:  offEquivalentByStaff(ctx, solveResult.Assignment),
		},
		Violations: extracted.Violations,
		Config: model.ResultConfig{
			PenaltyWeights: constraints.PenaltyWeights,
			Timeout:        effectiveTimeout,
			NumWorkers:     numWorkers,
		},
	}
}

func failureResult(err error, status string) model.Result {
	return model.Result{
		Success:  false,
		Error:    err.Error(),
		Status:   status,
		Schedule: map[string]map[string]string{},
	}
}

// randomSeed derives a fresh seed per call from the wall clock, per
// spec §4.6 ("random_seed = wall-clock-ms mod 2^31-1"), so repeated
// calls diversify among equally-optimal solutions.
func randomSeed() int64 {
	const mod = int64(1) << 31 - 1 // 2^31 - 1
	return time.Now().UnixMilli() % mod
}

func lookupHolidays(oracle holiday.Oracle, log logging.Sink, horizon model.Horizon) map[string]bool {
	if oracle == nil || horizon.Len() == 0 {
		return map[string]bool{}
	}
	from := horizon.Time(0)
	to := horizon.Time(horizon.Len() - 1)
	set, err := oracle.Holidays(context.Background(), from, to)
	if err != nil {
		log.Warn("holiday oracle lookup failed, continuing with empty set", logging.Fields{"error": err.Error()})
		return map[string]bool{}
	}
	return set
}

func countEscapes(ctx *compiler.Context, a *solver.Assignment) int {
	if a == nil {
		return 0
	}
	n := 0
	for _, aux := range ctx.PostPeriodEscapeAux {
		if a.Bool(aux) {
			n++
		}
	}
	return n
}

func offEquivalentByStaff(ctx *compiler.Context, a *solver.Assignment) map[string]int {
	out := make(map[string]int, len(ctx.Staff))
	if a == nil {
		return out
	}
	for _, s := range ctx.Staff {
		total := 0
		for _, dateIdx := range ctx.EmployedDates(s.ID) {
			cell, ok := ctx.Cell(s.ID, dateIdx)
			if !ok {
				continue
			}
			total += a.Kind(cell).DoubledOffEquivalent()
		}
		out[s.ID] = total + ctx.PrefilledStarEquivByStaff[s.ID]
	}
	return out
}
