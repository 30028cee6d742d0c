package model

// CalendarRule is a date-keyed pair of orthogonal overrides.
type CalendarRule struct {
	MustDayOff bool
	MustWork   bool
}

// EarlyPreference is a per-staff early-shift preference, consulted
// only on must-day-off dates. ByDate entries take priority; Default
// applies when no per-date entry exists. Per spec §9 open question 4,
// the `enabled` field upstream uses strict `== true` semantics — a
// staff's per-date preference is only "on" if explicitly true, never
// inferred from a truthy-but-not-bool value. Since this type is
// already normalized to bool, that strictness is enforced upstream in
// the normalizer, not here.
type EarlyPreference struct {
	ByDate  map[string]bool
	Default *bool
}

// PriorityVariant distinguishes the three priority-rule shapes of
// spec §4.4.15.
type PriorityVariant int

const (
	VariantPreferKind PriorityVariant = iota
	VariantAvoidKind
	VariantAvoidWithExceptions
)

// PriorityRule applies to a set of staff on a set of weekdays.
type PriorityRule struct {
	ID            string
	StaffIDs      []string
	Kind          ShiftKind
	Exceptions    []ShiftKind
	DaysOfWeek    map[int]bool // 0=Sunday .. 6=Saturday
	IsActive      bool
	PriorityLevel int
	IsHard        bool
	Variant       PriorityVariant
}

// PerTypeLimit bounds Off/Early counts per date for one status cohort.
type PerTypeLimit struct {
	Status         string
	MinOffPerDay   *int
	MaxOffPerDay   *int
	MaxEarlyPerDay *int
	IsHard         bool
}

// MonthlyLimit bounds the off-equivalent sum over the horizon.
type MonthlyLimit struct {
	MinCount             int
	MaxCount             int
	ExcludeCalendarRules bool
	IsHard               bool
	set                  bool
}

// IsSet reports whether the caller supplied a monthly limit at all.
func (m MonthlyLimit) IsSet() bool { return m.set }

// SetMonthlyLimit marks a MonthlyLimit as caller-supplied.
func SetMonthlyLimit(m MonthlyLimit) MonthlyLimit {
	m.set = true
	return m
}

// DailyLimits bounds the total Off count per date across all
// non-backup staff.
type DailyLimits struct {
	MinOffPerDay int
	MaxOffPerDay int
	Enabled      bool
	IsHard       bool
}

// ShiftRestriction names the allowed/forbidden kinds for a status
// cohort under the staff-status-shift-restriction pass.
type ShiftRestriction struct {
	AllowedShifts   []ShiftKind
	ForbiddenShifts []ShiftKind
}

// PostPeriodConstraint configures the anti-day-off pressure applied
// after a run of must-day-off dates.
type PostPeriodConstraint struct {
	Enabled                bool
	IsHard                 bool
	MinPeriodLength        int
	PostPeriodDays         int
	AvoidDayOffForRegular  bool // "shain" cohort in the original source
	AvoidDayOffForDispatch bool // "haken" cohort in the original source
	AllowEarlyForRegular   bool
}

// HardConstraintToggles is the per-family HARD/SOFT mode matrix from
// `ortoolsConfig.hardConstraints`.
type HardConstraintToggles struct {
	Backup         bool
	StaffGroup     bool
	DailyLimit     bool
	StaffTypeLimit bool
	MonthlyLimit   bool
	FiveDayRest    bool
	PostPeriod     bool
}

// Constraints is the canonical, typed form of the `constraints`
// envelope produced by the Input Normalizer.
type Constraints struct {
	CalendarRules                        map[string]CalendarRule // date -> rule
	EarlyShiftPreferences                map[string]EarlyPreference // staffID -> preference
	StaffGroups                          []StaffGroup
	BackupAssignments                    []BackupAssignment
	PriorityRules                        []PriorityRule
	DailyLimits                          DailyLimits
	MonthlyLimit                         MonthlyLimit
	StaffTypeLimits                      map[string]PerTypeLimit
	StaffStatusShiftRestrictions         map[string]ShiftRestriction
	DisableStaffStatusShiftRestrictions  bool
	PrefilledSchedule                    map[string]map[string]string // staffID -> date -> glyph
	PostPeriod                           PostPeriodConstraint
	PenaltyWeights                       PenaltyWeights
	Solver                               SolverSettings
	HardToggles                          HardConstraintToggles
}
