package solver

import (
	"context"
	"math/rand"
	"runtime"
	"sync"
	"time"
)

// Status classifies how a solve attempt ended, mirroring the
// small status enum a real CP-SAT wrapper returns.
type Status int

const (
	// StatusOptimal means the best found assignment has zero hard
	// violations and every worker stopped on its own (more than 50,000
	// moves since its last improvement) before the timeout.
	StatusOptimal Status = iota
	// StatusFeasible means the best found assignment has zero hard
	// violations but the timeout interrupted the search loop.
	StatusFeasible
	// StatusInfeasible means every candidate produced in the whole
	// budget carried at least one hard violation. With HARD-as-SOFT
	// upgrading active (spec §9 open question 1) this should not
	// occur in practice; it is kept as a defensive terminal state.
	StatusInfeasible
	// StatusModelInvalid means the model has zero cells to decide.
	StatusModelInvalid
	// StatusUnknown means no worker returned an assignment at all. A
	// budget that expires with only hard-violating candidates is
	// reported as StatusInfeasible, not as this status.
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	case StatusModelInvalid:
		return "model_invalid"
	default:
		return "unknown"
	}
}

// Params bounds one Solve call.
type Params struct {
	// TimeoutSeconds bounds wall-clock search time. Zero or negative
	// falls back to a 10 second default.
	TimeoutSeconds int
	// NumWorkers is how many independent local-search workers run
	// concurrently. Zero or negative uses GOMAXPROCS.
	NumWorkers int
	// RandomSeed seeds every worker's generator (worker i uses
	// RandomSeed+int64(i)), so each worker's move sequence is the same
	// for the same seed and worker count. When the timeout stops the
	// search, the result also depends on how many moves each worker
	// made before it.
	RandomSeed int64
}

func (p Params) normalized() Params {
	out := p
	if out.TimeoutSeconds <= 0 {
		out.TimeoutSeconds = 10
	}
	if out.NumWorkers <= 0 {
		out.NumWorkers = runtime.GOMAXPROCS(0)
	}
	return out
}

// Result is what Engine.Solve hands back: the best assignment found,
// its status, and the objective/violation counts needed to populate
// model.Stats without re-walking the model.
type Result struct {
	Status         Status
	Assignment     *Assignment
	HardViolations int
	Objective      int
	Iterations     int64
}

// Engine is a parallel randomized local-search solver standing in for
// a real CP-SAT backend (spec §9 "Solver abstraction... no assumption
// about which concrete engine backs it"). No Go CP-SAT binding exists
// anywhere in the reference corpus this package was grounded on, and
// fabricating one behind this interface is explicitly out of bounds,
// so Engine is a genuine, disclosed simplification: each worker starts
// from an independent random assignment and always accepts moves that
// strictly improve the lexicographic (hard violations, -objective)
// pair; a sideways or worsening move with no more hard violations is
// accepted with 2% probability while the worker has gone fewer than
// 2,000 moves without improving, to escape local optima. The
// caller only ever sees the trait (NewModel/AddHard/AddSoft/Solve), so
// swapping this for a real OR-tools CGo binding later is a localized
// change.
type Engine struct{}

// NewEngine returns an Engine. It holds no state; every Solve call is
// independent.
func NewEngine() *Engine { return &Engine{} }

// Solve runs parallel local search against m until ctx is cancelled,
// the timeout elapses, or every worker has stopped on its own. A
// worker stops on its own once its best assignment has zero hard
// violations and more than 50,000 moves have passed since its last
// improvement.
func (e *Engine) Solve(ctx context.Context, m *Model, params Params) Result {
	p := params.normalized()

	if m.NumCells() == 0 {
		return Result{Status: StatusModelInvalid}
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(p.TimeoutSeconds)*time.Second)
	defer cancel()

	type workerResult struct {
		assignment *Assignment
		hard       int
		obj        int
		iters      int64
	}

	results := make([]workerResult, p.NumWorkers)
	var wg sync.WaitGroup
	for w := 0; w < p.NumWorkers; w++ {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			rng := rand.New(rand.NewSource(p.RandomSeed + int64(w)))
			results[w] = workerResult{}
			best := m.InitialAssignment(rng)
			bestHard := m.HardViolations(best)
			bestObj := m.Objective(best)
			var iters int64

			stale := 0
			for {
				select {
				case <-ctx.Done():
					results[w] = workerResult{assignment: best, hard: bestHard, obj: bestObj, iters: iters}
					return
				default:
				}

				candidate := best.Clone()
				m.RandomMove(candidate, rng)
				iters++

				candHard := m.HardViolations(candidate)
				candObj := m.Objective(candidate)

				improved := candHard < bestHard || (candHard == bestHard && candObj > bestObj)
				accept := improved
				if !accept && candHard <= bestHard && rng.Float64() < 0.02 {
					// Occasional sideways/worsening acceptance to
					// escape local optima, annealed out as the run
					// goes stale.
					accept = stale < 2000
				}

				if accept {
					best = candidate
					bestHard = candHard
					bestObj = candObj
					if improved {
						stale = 0
					} else {
						stale++
					}
				} else {
					stale++
				}

				if bestHard == 0 && stale > 50000 {
					results[w] = workerResult{assignment: best, hard: bestHard, obj: bestObj, iters: iters}
					return
				}
			}
		}()
	}
	wg.Wait()

	bestIdx := 0
	for i := 1; i < len(results); i++ {
		if betterResult(results[i].hard, results[i].obj, results[bestIdx].hard, results[bestIdx].obj) {
			bestIdx = i
		}
	}

	var totalIters int64
	for _, r := range results {
		totalIters += r.iters
	}

	best := results[bestIdx]
	status := StatusFeasible
	switch {
	case best.hard > 0:
		status = StatusInfeasible
	case ctx.Err() == nil:
		status = StatusOptimal
	default:
		status = StatusFeasible
	}
	if best.assignment == nil {
		status = StatusUnknown
	}

	return Result{
		Status:         status,
		Assignment:     best.assignment,
		HardViolations: best.hard,
		Objective:      best.obj,
		Iterations:     totalIters,
	}
}

func betterResult(hardA, objA, hardB, objB int) bool {
	if hardA != hardB {
		return hardA < hardB
	}
	return objA > objB
}
