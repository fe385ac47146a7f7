package diagnosis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tkhrsasaki/shiftsense/pkg/core/model"
)

// GenerateSuggestions maps detected issues to actionable, prioritized
// recommendations. Every high severity issue yields at least one
// suggestion; impact text quantifies the expected effect in the same
// units as the issue (person-days, percentage points) where derivable.
func GenerateSuggestions(cfg *model.FacilityConfig, month model.Month, balance *SupplyDemandBalance, issues []DiagnosisIssue) []DiagnosisSuggestion {
	var suggestions []DiagnosisSuggestion

	for _, issue := range issues {
		switch {
		case issue.Category == CategorySupply:
			suggestions = append(suggestions, suggestForSupplyShortage(cfg, month, balance, issue)...)
		case strings.HasPrefix(issue.ID, "timeslot-concentration-"):
			suggestions = append(suggestions, suggestRelaxRestrictions(cfg, month, issue)...)
		case strings.HasPrefix(issue.ID, "slot-shortage-"):
			suggestions = append(suggestions, suggestForSlotShortage(issue))
		case issue.Category == CategoryLeave:
			suggestions = append(suggestions, suggestSpreadLeave(issue))
		case strings.HasPrefix(issue.ID, "no-eligible-staff-"):
			suggestions = append(suggestions, suggestAllowEligibility(issue))
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Priority.rank() > suggestions[j].Priority.rank()
	})
	return suggestions
}

// suggestForSupplyShortage recommends hiring. When the shortage exceeds
// what relaxing any single restricted member could recover, hiring is
// the only fix and outranks relaxation suggestions.
func suggestForSupplyShortage(cfg *model.FacilityConfig, month model.Month, balance *SupplyDemandBalance, issue DiagnosisIssue) []DiagnosisSuggestion {
	shortage := -balance.Balance
	if shortage <= 0 {
		return nil
	}

	// Average capacity of the current roster estimates how much one
	// hire covers; with an empty roster fall back to a 5-day week.
	totalCapacity := 0
	maxRestricted := 0
	for i := range cfg.Staff {
		capacity := StaffMonthlyCapacity(&cfg.Staff[i], month)
		totalCapacity += capacity
		if cfg.Staff[i].IsRestricted() && capacity > maxRestricted {
			maxRestricted = capacity
		}
	}
	perHire := int(math.Round(5.0 * float64(month.Days()) / 7.0))
	if len(cfg.Staff) > 0 && totalCapacity > 0 {
		perHire = totalCapacity / len(cfg.Staff)
	}
	if perHire < 1 {
		perHire = 1
	}
	needed := (shortage + perHire - 1) / perHire

	priority := priorityFor(issue.Severity)
	if shortage > maxRestricted {
		// No single relaxation can close the gap.
		priority = PriorityHigh
	}

	return []DiagnosisSuggestion{{
		Priority:     priority,
		Action:       fmt.Sprintf("Hire %d additional staff member(s).", needed),
		Impact:       fmt.Sprintf("Covers the %d person-day shortfall.", shortage),
		SettingsLink: "/settings/staff/new",
	}}
}

// suggestRelaxRestrictions recommends widening the preference of each
// staff member named by a concentration issue.
func suggestRelaxRestrictions(cfg *model.FacilityConfig, month model.Month, issue DiagnosisIssue) []DiagnosisSuggestion {
	slotName := strings.TrimPrefix(issue.ID, "timeslot-concentration-")

	var suggestions []DiagnosisSuggestion
	for _, name := range issue.AffectedStaff {
		var staff *model.StaffProfile
		for i := range cfg.Staff {
			if cfg.Staff[i].Name == name {
				staff = &cfg.Staff[i]
				break
			}
		}
		if staff == nil {
			continue
		}

		suggestions = append(suggestions, DiagnosisSuggestion{
			Priority: priorityFor(issue.Severity),
			Action:   fmt.Sprintf("Change %s's time-slot preference to \"any\".", staff.Name),
			Impact: fmt.Sprintf("Frees up to %d person-days for %q.",
				StaffMonthlyCapacity(staff, month), slotName),
			TargetStaff:  staff.Name,
			SettingsLink: "/settings/staff/" + staff.ID,
		})
	}
	return suggestions
}

func suggestForSlotShortage(issue DiagnosisIssue) DiagnosisSuggestion {
	slotName := strings.TrimPrefix(issue.ID, "slot-shortage-")
	return DiagnosisSuggestion{
		Priority:     priorityFor(issue.Severity),
		Action:       fmt.Sprintf("Add staff able to work %q or widen existing preferences.", slotName),
		Impact:       fmt.Sprintf("Raises the fulfillment rate of %q toward 100%%.", slotName),
		SettingsLink: "/settings/requirements",
	}
}

func suggestSpreadLeave(issue DiagnosisIssue) DiagnosisSuggestion {
	date := ""
	if len(issue.AffectedDates) > 0 {
		date = issue.AffectedDates[0]
	}
	return DiagnosisSuggestion{
		Priority: PriorityLow,
		Action:   fmt.Sprintf("Negotiate moving some leave requests away from %s.", date),
		Impact: fmt.Sprintf("Restores up to %d staff on %s.",
			len(issue.AffectedStaff), date),
	}
}

func suggestAllowEligibility(issue DiagnosisIssue) DiagnosisSuggestion {
	slotName := strings.TrimPrefix(issue.ID, "no-eligible-staff-")
	return DiagnosisSuggestion{
		Priority:     PriorityHigh,
		Action:       fmt.Sprintf("Allow at least one staff member to work %q.", slotName),
		Impact:       fmt.Sprintf("Without eligible staff, %q can never be filled.", slotName),
		SettingsLink: "/settings/staff",
	}
}

func priorityFor(severity IssueSeverity) SuggestionPriority {
	switch severity {
	case SeverityHigh:
		return PriorityHigh
	case SeverityMedium:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
