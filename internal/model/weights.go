package model

// PenaltyWeights holds the default soft-violation weights from spec
// §6. Every field can be overridden individually via
// `ortoolsConfig.penaltyWeights`.
type PenaltyWeights struct {
	StaffGroup           int
	DailyLimit           int
	DailyLimitMax        int
	MonthlyLimit         int
	AdjacentConflict     int
	FiveDayRest          int
	StaffTypeLimit       int
	BackupCoverage       int
	StaffStatusShift     int
	PostPeriodSoft       int
	PostPeriodHardEscape int
	PrefilledAdjacent    int
	HardPriorityAsSoft   int
	EarlyPrefOnMustOff   int
	RestGuarantee        int
	BelowTargetDayoffs   int
	BelowTargetEarly     int
	DayoffBonus          int
	PriorityException    int
}

// DefaultPenaltyWeights returns the spec §6 default weight table.
func DefaultPenaltyWeights() PenaltyWeights {
	return PenaltyWeights{
		StaffGroup:           100,
		DailyLimit:           50,
		DailyLimitMax:        50,
		MonthlyLimit:         80,
		AdjacentConflict:     30,
		FiveDayRest:          200,
		StaffTypeLimit:       60,
		BackupCoverage:       500,
		StaffStatusShift:     150,
		PostPeriodSoft:       500,
		PostPeriodHardEscape: 10000,
		PrefilledAdjacent:    500,
		HardPriorityAsSoft:   500,
		EarlyPrefOnMustOff:   1000,
		RestGuarantee:        300,
		BelowTargetDayoffs:   200,
		BelowTargetEarly:     100,
		DayoffBonus:          30,
		PriorityException:    15,
	}
}

// SolverSettings configures the Solver Adapter.
type SolverSettings struct {
	TimeoutSeconds int
	NumWorkers     int
}

// DefaultSolverSettings returns the spec §6 defaults.
func DefaultSolverSettings() SolverSettings {
	return SolverSettings{TimeoutSeconds: 30, NumWorkers: 4}
}
