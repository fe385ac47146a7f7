package rootcause

// CauseType classifies what made violations occur, as opposed to what
// rule they broke.
type CauseType string

const (
	// CauseStaffShortage: the roster simply does not carry enough
	// capacity for the demand.
	CauseStaffShortage CauseType = "staffShortage"

	// CauseTimeSlotConstraint: capacity exists but time-slot
	// restrictions lock it away from the deficient slot.
	CauseTimeSlotConstraint CauseType = "timeSlotConstraint"

	// CauseLeaveConflict: concentrated leave requests drained specific
	// dates below their requirement.
	CauseLeaveConflict CauseType = "leaveConflict"

	// CauseOther: violations with no quantified configuration cause,
	// e.g. limits the generator failed to respect.
	CauseOther CauseType = "other"
)

// Evidence quantifies a cause. Shortage is always Required minus
// Available, and evidence is attached only when that difference is
// positive.
type Evidence struct {
	Required  int `json:"required"`
	Available int `json:"available"`
	Shortage  int `json:"shortage"`
}

// RootCause is one diagnosed reason behind a group of violations.
type RootCause struct {
	ID            string    `json:"id"`
	ViolationType string    `json:"violationType"`
	CauseType     CauseType `json:"causeType"`
	Description   string    `json:"description"`
	AffectedStaff []string  `json:"affectedStaff,omitempty"`
	AffectedDates []string  `json:"affectedDates,omitempty"`
	Evidence      *Evidence `json:"evidence,omitempty"`
}

// RootCauseAnalysis is the full output of analyzing a violation set.
type RootCauseAnalysis struct {
	Causes []RootCause `json:"causes"`

	// AICommentAddition is a short prose paragraph summarizing the most
	// significant causes, suitable for appending to a generated
	// schedule's commentary.
	AICommentAddition string `json:"aiCommentAddition"`

	AnalyzedAt string `json:"analyzedAt"`
}
