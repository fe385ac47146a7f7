package rootcause

import (
	"sort"
	"time"

	"github.com/tkhrsasaki/shiftsense/pkg/core/diagnosis"
	"github.com/tkhrsasaki/shiftsense/pkg/core/evaluation"
	"github.com/tkhrsasaki/shiftsense/pkg/core/model"
)

// Analyze explains why an evaluated schedule's violations occurred, by
// tracing them back to the facility configuration. It is read-only and
// deterministic: identical input yields identical causes, in a stable
// order (largest quantified shortage first).
//
// Violation types that cannot be traced to a quantifiable
// configuration cause (e.g. qualificationMissing) are not forced into
// a cause; absence of an explanation is itself information.
func Analyze(cfg *model.FacilityConfig, month model.Month, violations []evaluation.ConstraintViolation) (*RootCauseAnalysis, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	balance, err := diagnosis.CalculateBalance(cfg, month)
	if err != nil {
		return nil, err
	}

	byType := make(map[evaluation.ViolationType][]evaluation.ConstraintViolation)
	for _, v := range violations {
		byType[v.Type] = append(byType[v.Type], v)
	}

	causes := []RootCause{}
	causes = append(causes, analyzeStaffShortage(cfg, balance, byType[evaluation.ViolationStaffShortage])...)
	causes = append(causes, analyzeSlotRestrictions(cfg, balance, byType[evaluation.ViolationSlotRestriction])...)
	causes = append(causes, analyzeLeaveConflicts(cfg, byType[evaluation.ViolationLeaveIgnored])...)
	causes = append(causes, analyzeGeneratorFaults(byType[evaluation.ViolationRestDeficit])...)
	causes = append(causes, analyzeGeneratorFaults(byType[evaluation.ViolationConsecutiveWork])...)

	sort.SliceStable(causes, func(i, j int) bool {
		return shortageOf(causes[i]) > shortageOf(causes[j])
	})

	return &RootCauseAnalysis{
		Causes:            causes,
		AICommentAddition: composeComment(causes),
		AnalyzedAt:        time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func shortageOf(cause RootCause) int {
	if cause.Evidence == nil {
		return 0
	}
	return cause.Evidence.Shortage
}

// evidenceFor builds Evidence from a required/available pair, or nil
// when there is no positive shortage to report.
func evidenceFor(required, available int) *Evidence {
	if required <= available {
		return nil
	}
	return &Evidence{
		Required:  required,
		Available: available,
		Shortage:  required - available,
	}
}
