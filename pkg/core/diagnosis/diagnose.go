package diagnosis

import (
	"fmt"
	"time"

	"github.com/tkhrsasaki/shiftsense/pkg/core/model"
)

// Diagnose runs the pre-generation diagnosis with default thresholds.
// It is a pure function of its inputs: calling it twice with the same
// configuration produces identical output except ExecutedAt.
func Diagnose(cfg *model.FacilityConfig, month model.Month) (*DiagnosisResult, error) {
	return DiagnoseWithThresholds(cfg, month, DefaultThresholds())
}

// DiagnoseWithThresholds runs balance calculation, issue detection and
// suggestion generation, then derives the overall status and summary.
// It never fails for a syntactically valid configuration; the only
// error it returns is a ConfigurationError.
func DiagnoseWithThresholds(cfg *model.FacilityConfig, month model.Month, thresholds Thresholds) (*DiagnosisResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	thresholds = thresholds.withDefaults()

	balance, err := CalculateBalance(cfg, month)
	if err != nil {
		return nil, err
	}

	issues := DetectIssues(cfg, month, balance, thresholds)
	suggestions := GenerateSuggestions(cfg, month, balance, issues)
	status := deriveStatus(balance, issues, thresholds)

	return &DiagnosisResult{
		Status:              status,
		Summary:             summarize(status, balance, issues),
		SupplyDemandBalance: balance,
		Issues:              issues,
		Suggestions:         suggestions,
		ExecutedAt:          time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// deriveStatus implements the status invariant: error iff the aggregate
// balance is severely negative or a high severity supply issue exists;
// warning iff the balance is negative or any issue exists; ok otherwise.
func deriveStatus(balance *SupplyDemandBalance, issues []DiagnosisIssue, thresholds Thresholds) DiagnosisStatus {
	severelyNegative := balance.Balance < 0 &&
		float64(-balance.Balance) > thresholds.SevereShortageRatio*float64(balance.TotalDemand)

	highSupplyIssue := false
	for _, issue := range issues {
		if issue.Severity == SeverityHigh && issue.Category == CategorySupply {
			highSupplyIssue = true
			break
		}
	}

	switch {
	case severelyNegative || highSupplyIssue:
		return StatusError
	case balance.Balance < 0 || len(issues) > 0:
		return StatusWarning
	default:
		return StatusOK
	}
}

// summarize produces the one-line headline for the result, synthesizing
// the worst issue or a positive statement when there is none.
func summarize(status DiagnosisStatus, balance *SupplyDemandBalance, issues []DiagnosisIssue) string {
	switch status {
	case StatusOK:
		return "No configuration problems found. Schedule generation can proceed."
	case StatusError:
		if balance.Balance < 0 {
			return fmt.Sprintf(
				"Staffing capacity is severely short (%d person-days below demand). Review the configuration before generating.",
				-balance.Balance)
		}
		return "The configuration has a severe problem. Review it before generating."
	default:
		if len(issues) > 0 {
			return fmt.Sprintf("%s: %s", issues[0].Title, "review before generating a schedule.")
		}
		return fmt.Sprintf(
			"Capacity is %d person-days below demand. Generation is possible but shortfalls are likely.",
			-balance.Balance)
	}
}
