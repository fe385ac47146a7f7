package evaluation

// ViolationType names the scheduling rule a violation breached.
type ViolationType string

const (
	// ViolationRestDeficit: insufficient rest between two consecutive
	// working days given the first slot's mandated rest hours.
	ViolationRestDeficit ViolationType = "restDeficit"

	// ViolationStaffShortage: fewer staff assigned to a slot on a day
	// than its requirement demands.
	ViolationStaffShortage ViolationType = "staffShortage"

	// ViolationQualificationMissing: a slot/day lacks the required
	// count of a qualification.
	ViolationQualificationMissing ViolationType = "qualificationMissing"

	// ViolationSlotRestriction: a staff member was assigned outside
	// their allowed slot set, or on a day they marked unavailable.
	ViolationSlotRestriction ViolationType = "slotRestriction"

	// ViolationConsecutiveWork: a run of working days exceeds a staff
	// member's max-consecutive-days limit.
	ViolationConsecutiveWork ViolationType = "consecutiveWork"

	// ViolationLeaveIgnored: a staff member was scheduled to work on a
	// date they requested leave.
	ViolationLeaveIgnored ViolationType = "leaveRequestIgnored"
)

// ConstraintLevel grades violations into four tiers:
//  1. absolute (legal rest rules) — the schedule is unusable
//  2. operational (staffing, qualifications, hard restrictions)
//  3. effort targets (consecutive-day limits, leave wishes)
//  4. informational — no penalty
type ConstraintLevel int

const (
	LevelAbsolute      ConstraintLevel = 1
	LevelOperational   ConstraintLevel = 2
	LevelEffort        ConstraintLevel = 3
	LevelInformational ConstraintLevel = 4
)

// ConstraintViolation is one breached rule in a generated schedule.
// Violations are results, never errors: a schedule full of them is
// still a valid input.
type ConstraintViolation struct {
	Type        ViolationType   `json:"type"`
	Level       ConstraintLevel `json:"level"`
	Penalty     int             `json:"penalty"`
	Description string          `json:"description"`

	// Slot names the time slot the violation concerns, when slot
	// scoped. Kept structured so downstream analysis never has to
	// parse descriptions.
	Slot string `json:"slot,omitempty"`

	AffectedStaff []string `json:"affectedStaff,omitempty"`
	AffectedDates []string `json:"affectedDates,omitempty"`
	Suggestion    string   `json:"suggestion,omitempty"`
}

// LevelSummary aggregates the violations of one constraint level.
type LevelSummary struct {
	Count   int `json:"count"`
	Penalty int `json:"penalty"`
}

// EvaluationResult is the complete output of evaluating one generated
// schedule against its facility configuration.
type EvaluationResult struct {
	// Score is 0-100. Any level-1 violation forces 0; otherwise 100
	// minus the summed penalties, clamped to the range.
	Score int `json:"score"`

	// FulfillmentRate is the fraction of required slot/day positions
	// actually filled, 0-100.
	FulfillmentRate int `json:"fulfillmentRate"`

	Violations     []ConstraintViolation            `json:"violations"`
	LevelBreakdown map[ConstraintLevel]LevelSummary `json:"levelBreakdown"`
	EvaluatedAt    string                           `json:"evaluatedAt"`
}
