// Package solver hides the CP-SAT-style vendor behind a thin trait
// (spec §9 "Solver abstraction"): allocate decision cells and
// auxiliary booleans, register hard constraints as predicate checks
// over an assignment, accumulate weighted soft indicators and bonuses
// as the objective, then hand the model to an Engine that solves it
// under a timeout/worker-count/seed budget and classifies the result.
//
// Model represents each decision cell's "exactly one of four booleans"
// group (spec §4.3) as a single domain variable (CellRef) rather than
// four independent bools plus an exactly-one constraint — an
// equivalent encoding (one-hot vs. domain variable) that makes §4.4.1
// true by construction instead of by a runtime check, and makes the
// local-search moves below ("change this cell's kind") the natural
// primitive. Auxiliary free booleans (post-period escape variables,
// "any member off" indicators) use AuxRef, a conventional free
// boolean variable.
package solver

import (
	"math/rand"

	"github.com/rostercore/shiftopt/internal/model"
)

// Kind aliases model.ShiftKind so compiler passes can write solver
// code without importing both packages under different names.
type Kind = model.ShiftKind

// CellRef is a handle to one (staff, date) decision cell.
type CellRef int

// AuxRef is a handle to a free auxiliary boolean variable.
type AuxRef int

type cellMeta struct {
	staffID   string
	dateIdx   int
	fixed     bool
	fixedKind Kind
}

type auxMeta struct {
	name     string
	fixed    bool
	fixedVal bool
}

type hardConstraint struct {
	desc  string
	check func(*Assignment) bool
}

// Indicator is a handle to a soft-violation term. Value evaluates the
// violation's magnitude (its "positive part") against a final
// assignment; the objective subtracts Weight*Value(a). This is
// mathematically equivalent to a real CP-SAT indicator variable tied
// to the expression by `indicator >= expr, indicator >= 0` and
// minimized: the optimum indicator value is exactly max(0, expr), so
// computing it directly from the finished assignment reproduces what
// the solver would have been forced to choose anyway.
type Indicator struct {
	Desc   string
	Weight int
	Value  func(*Assignment) int
}

type bonusTerm struct {
	desc   string
	weight int
	value  func(*Assignment) int
}

// Model accumulates decision variables, hard constraints, soft
// violation indicators and objective bonuses for one optimization
// call. It is built once per call and handed to Engine.Solve.
type Model struct {
	cells      []cellMeta
	aux        []auxMeta
	hards      []hardConstraint
	indicators []*Indicator
	bonuses    []bonusTerm
}

// NewModel returns an empty Model.
func NewModel() *Model { return &Model{} }

// NewCell allocates a decision cell for (staffID, dateIdx). Unless it
// is fixed, InitialAssignment gives it a random starting kind.
func (m *Model) NewCell(staffID string, dateIdx int) CellRef {
	m.cells = append(m.cells, cellMeta{staffID: staffID, dateIdx: dateIdx})
	return CellRef(len(m.cells) - 1)
}

// FixCell pins a cell to a single kind (a HARD equality, spec §4.4.2
// pre-filled cells and §4.4.3 calendar overrides).
func (m *Model) FixCell(c CellRef, k Kind) {
	m.cells[c].fixed = true
	m.cells[c].fixedKind = k
}

// NewAux allocates a free auxiliary boolean (e.g. an "any member off"
// indicator or a post-period escape variable).
func (m *Model) NewAux(name string) AuxRef {
	m.aux = append(m.aux, auxMeta{name: name})
	return AuxRef(len(m.aux) - 1)
}

// FixAux pins an auxiliary boolean to a constant value.
func (m *Model) FixAux(v AuxRef, val bool) {
	m.aux[v].fixed = true
	m.aux[v].fixedVal = val
}

// AddHard registers a constraint that must hold in any accepted
// solution. desc is used only for diagnostics.
func (m *Model) AddHard(desc string, check func(*Assignment) bool) {
	m.hards = append(m.hards, hardConstraint{desc: desc, check: check})
}

// AddSoft registers a soft-violation indicator with a positive weight
// and returns a handle the caller can read back after solving (used
// by the solution extractor to build the violation report).
func (m *Model) AddSoft(desc string, weight int, value func(*Assignment) int) *Indicator {
	ind := &Indicator{Desc: desc, Weight: weight, Value: value}
	m.indicators = append(m.indicators, ind)
	return ind
}

// AddBonus registers a positive objective contribution (a preference
// or rest-bonus term), the mirror image of AddSoft.
func (m *Model) AddBonus(desc string, weight int, value func(*Assignment) int) {
	m.bonuses = append(m.bonuses, bonusTerm{desc: desc, weight: weight, value: value})
}

// Indicators returns every registered soft indicator, in registration
// order, for the solution extractor to read after solving.
func (m *Model) Indicators() []*Indicator { return m.indicators }

// NumCells returns the number of decision cells in the model.
func (m *Model) NumCells() int { return len(m.cells) }

// CellStaffID and CellDateIdx expose cell metadata for passes that
// need to recover (staffID, dateIdx) from a CellRef.
func (m *Model) CellStaffID(c CellRef) string { return m.cells[c].staffID }
func (m *Model) CellDateIdx(c CellRef) int    { return m.cells[c].dateIdx }

// Assignment is a concrete value for every cell and auxiliary
// variable in a Model. Independent Assignments are cheap to clone, so
// each search worker can own one without coordination.
type Assignment struct {
	cellKinds []Kind
	auxBools  []bool
}

// Kind returns the current kind of cell c.
func (a *Assignment) Kind(c CellRef) Kind { return a.cellKinds[c] }

// Bool returns the current value of auxiliary variable v.
func (a *Assignment) Bool(v AuxRef) bool { return a.auxBools[v] }

// SetKind assigns a new kind to cell c. Callers must not set a fixed
// cell to anything but its fixed kind; Model.RandomMove and
// InitialAssignment already respect this.
func (a *Assignment) SetKind(c CellRef, k Kind) { a.cellKinds[c] = k }

// SetBool assigns a new value to auxiliary variable v.
func (a *Assignment) SetBool(v AuxRef, val bool) { a.auxBools[v] = val }

// Clone returns an independent deep copy.
func (a *Assignment) Clone() *Assignment {
	cellKinds := make([]Kind, len(a.cellKinds))
	copy(cellKinds, a.cellKinds)
	auxBools := make([]bool, len(a.auxBools))
	copy(auxBools, a.auxBools)
	return &Assignment{cellKinds: cellKinds, auxBools: auxBools}
}

// InitialAssignment builds a starting point: fixed cells/vars take
// their pinned value, free ones are randomized.
func (m *Model) InitialAssignment(rng *rand.Rand) *Assignment {
	a := &Assignment{
		cellKinds: make([]Kind, len(m.cells)),
		auxBools:  make([]bool, len(m.aux)),
	}
	for i, c := range m.cells {
		if c.fixed {
			a.cellKinds[i] = c.fixedKind
		} else {
			a.cellKinds[i] = Kind(rng.Intn(model.NumShiftKinds))
		}
	}
	for i, v := range m.aux {
		if v.fixed {
			a.auxBools[i] = v.fixedVal
		} else {
			a.auxBools[i] = rng.Intn(2) == 0
		}
	}
	return a
}

// RandomMove mutates a in place by changing exactly one free cell's
// kind or one free auxiliary variable's value. It is the sole search
// primitive local search uses; fixed variables are never touched.
func (m *Model) RandomMove(a *Assignment, rng *rand.Rand) {
	freeCells := m.freeCellCount()
	freeAux := m.freeAuxCount()
	total := freeCells + freeAux
	if total == 0 {
		return
	}
	pick := rng.Intn(total)
	if pick < freeCells {
		idx := m.nthFreeCell(pick)
		cur := a.cellKinds[idx]
		next := Kind(rng.Intn(model.NumShiftKinds - 1))
		if next >= cur {
			next++
		}
		a.cellKinds[idx] = next
		return
	}
	idx := m.nthFreeAux(pick - freeCells)
	a.auxBools[idx] = !a.auxBools[idx]
}

func (m *Model) freeCellCount() int {
	n := 0
	for _, c := range m.cells {
		if !c.fixed {
			n++
		}
	}
	return n
}

func (m *Model) freeAuxCount() int {
	n := 0
	for _, v := range m.aux {
		if !v.fixed {
			n++
		}
	}
	return n
}

func (m *Model) nthFreeCell(n int) CellRef {
	for i, c := range m.cells {
		if c.fixed {
			continue
		}
		if n == 0 {
			return CellRef(i)
		}
		n--
	}
	return CellRef(len(m.cells) - 1)
}

func (m *Model) nthFreeAux(n int) AuxRef {
	for i, v := range m.aux {
		if v.fixed {
			continue
		}
		if n == 0 {
			return AuxRef(i)
		}
		n--
	}
	return AuxRef(len(m.aux) - 1)
}

// HardViolations counts how many registered hard constraints are
// unsatisfied in a.
func (m *Model) HardViolations(a *Assignment) int {
	n := 0
	for _, h := range m.hards {
		if !h.check(a) {
			n++
		}
	}
	return n
}

// Objective evaluates the scalar objective (bonuses minus weighted
// soft-violation values) for a.
func (m *Model) Objective(a *Assignment) int {
	total := 0
	for _, b := range m.bonuses {
		total += b.weight * b.value(a)
	}
	for _, ind := range m.indicators {
		total -= ind.Weight * ind.Value(a)
	}
	return total
}
