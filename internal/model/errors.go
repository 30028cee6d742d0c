package model

import "errors"

// Sentinel errors for the failure bands described in spec §7. Bands 1
// and 2 (recoverable input anomalies, semantic impossibilities
// silently upgraded to SOFT) never reach these — they are recorded as
// normalize.Warning and compilation continues. These sentinels cover
// bands 3 (solver non-success) and the basic shape checks that must
// hold before a model can even be built.
var (
	ErrEmptyHorizon  = errors.New("shiftopt: horizon must contain at least one date")
	ErrNoStaff       = errors.New("shiftopt: staff list must not be empty")
	ErrInfeasible    = errors.New("shiftopt: solver reported the model infeasible")
	ErrModelInvalid  = errors.New("shiftopt: solver reported the model invalid")
	ErrSolverUnknown = errors.New("shiftopt: solver returned status unknown")
)
