package diagnosis

// DiagnosisStatus classifies the overall outcome of a pre-generation
// diagnosis run.
//   - StatusOK: no problems found, generation can proceed
//   - StatusWarning: generation is possible but violations are likely
//   - StatusError: the configuration has a severe problem
type DiagnosisStatus string

const (
	StatusOK      DiagnosisStatus = "ok"
	StatusWarning DiagnosisStatus = "warning"
	StatusError   DiagnosisStatus = "error"
)

// IssueSeverity ranks a detected issue.
type IssueSeverity string

const (
	SeverityHigh   IssueSeverity = "high"
	SeverityMedium IssueSeverity = "medium"
	SeverityLow    IssueSeverity = "low"
)

// rank orders severities for sorting (higher first).
func (s IssueSeverity) rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

// IssueCategory classifies what kind of configuration problem an issue
// describes.
type IssueCategory string

const (
	CategorySupply   IssueCategory = "supply"
	CategoryTimeSlot IssueCategory = "timeSlot"
	CategoryLeave    IssueCategory = "leave"
	CategoryOther    IssueCategory = "other"
)

// TimeSlotBalance is the supply/demand balance of a single time slot
// over the target month, in person-days.
type TimeSlotBalance struct {
	Supply  int `json:"supply"`
	Demand  int `json:"demand"`
	Balance int `json:"balance"`

	// FulfillmentRate is supply/demand as a percentage. A slot with
	// zero demand reports 100 (documented convention; never divides by
	// zero). Rates above 100 indicate surplus.
	FulfillmentRate int `json:"fulfillmentRate"`
}

// SupplyDemandBalance aggregates per-slot balances. The per-slot
// supplies and demands sum exactly to the totals: a staff member
// eligible for several slots has their capacity partitioned between
// them, never double counted.
type SupplyDemandBalance struct {
	TotalSupply int                        `json:"totalSupply"`
	TotalDemand int                        `json:"totalDemand"`
	Balance     int                        `json:"balance"`
	ByTimeSlot  map[string]TimeSlotBalance `json:"byTimeSlot"`
}

// DiagnosisIssue is one detected configuration problem. Issues are
// immutable value objects created fresh per diagnosis run; their IDs
// are deterministic so identical inputs produce identical output.
type DiagnosisIssue struct {
	ID            string        `json:"id"`
	Severity      IssueSeverity `json:"severity"`
	Category      IssueCategory `json:"category"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	AffectedStaff []string      `json:"affectedStaff,omitempty"`
	AffectedDates []string      `json:"affectedDates,omitempty"`
	SettingsLink  string        `json:"settingsLink,omitempty"`
}

// SuggestionPriority ranks a suggestion.
type SuggestionPriority string

const (
	PriorityHigh   SuggestionPriority = "high"
	PriorityMedium SuggestionPriority = "medium"
	PriorityLow    SuggestionPriority = "low"
)

func (p SuggestionPriority) rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// DiagnosisSuggestion is one actionable recommendation derived from a
// detected issue.
type DiagnosisSuggestion struct {
	Priority     SuggestionPriority `json:"priority"`
	Action       string             `json:"action"`
	Impact       string             `json:"impact"`
	TargetStaff  string             `json:"targetStaff,omitempty"`
	SettingsLink string             `json:"settingsLink,omitempty"`
}

// DiagnosisResult is the complete output of a diagnosis run. Status is
// always derived from the issues and balance it summarises:
//   - error: the aggregate balance is severely negative, or a high
//     severity supply issue exists
//   - warning: the balance is negative or any issue exists
//   - ok: otherwise
type DiagnosisResult struct {
	Status              DiagnosisStatus       `json:"status"`
	Summary             string                `json:"summary"`
	SupplyDemandBalance *SupplyDemandBalance  `json:"supplyDemandBalance"`
	Issues              []DiagnosisIssue      `json:"issues"`
	Suggestions         []DiagnosisSuggestion `json:"suggestions"`
	ExecutedAt          string                `json:"executedAt"`
}

// Thresholds holds the tunable detection constants. Zero values are
// replaced by the defaults, so a partially filled struct is usable.
type Thresholds struct {
	// SevereShortageRatio: an aggregate shortage above this fraction of
	// total demand makes the supply issue high severity and the status
	// an error.
	SevereShortageRatio float64

	// SlotMaterialityRatio: restricted staff whose locked-away capacity
	// is at least this fraction of a deficient slot's demand trigger a
	// concentration issue.
	SlotMaterialityRatio float64

	// LeaveConcentrationRatio: a date where at least this fraction of
	// the roster has requested leave triggers a leave issue.
	LeaveConcentrationRatio float64
}

// DefaultThresholds returns the documented default detection constants.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SevereShortageRatio:     0.30,
		SlotMaterialityRatio:    0.10,
		LeaveConcentrationRatio: 0.30,
	}
}

func (t Thresholds) withDefaults() Thresholds {
	defaults := DefaultThresholds()
	if t.SevereShortageRatio <= 0 {
		t.SevereShortageRatio = defaults.SevereShortageRatio
	}
	if t.SlotMaterialityRatio <= 0 {
		t.SlotMaterialityRatio = defaults.SlotMaterialityRatio
	}
	if t.LeaveConcentrationRatio <= 0 {
		t.LeaveConcentrationRatio = defaults.LeaveConcentrationRatio
	}
	return t
}
