package compiler

import "github.com/rostercore/shiftopt/internal/solver"

// ExactlyOneHolds verifies spec §4.4.1 against a solved assignment:
// since each employed cell is represented as a single solver.CellRef
// domain variable rather than four one-hot booleans, "exactly one
// kind" holds by construction for every allocated cell — Assignment
// has no representation for "zero kinds" or "two kinds" at all. This
// helper exists so tests can assert the invariant explicitly rather
// than taking the encoding's word for it.
func (c *Context) ExactlyOneHolds(a *solver.Assignment) bool {
	for key := range c.cells {
		ref := c.cells[key]
		k := a.Kind(ref)
		if k < 0 || int(k) >= 4 {
			return false
		}
	}
	return true
}
