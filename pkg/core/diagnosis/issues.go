package diagnosis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tkhrsasaki/shiftsense/pkg/core/model"
)

// DetectIssues runs every detection rule against the configuration and
// the computed balance, and returns the issues sorted by severity
// (highest first). Rules run in a fixed order (supply, timeSlot, leave,
// other) and the sort is stable, so output ordering is reproducible for
// identical input.
func DetectIssues(cfg *model.FacilityConfig, month model.Month, balance *SupplyDemandBalance, thresholds Thresholds) []DiagnosisIssue {
	thresholds = thresholds.withDefaults()

	issues := []DiagnosisIssue{}
	issues = append(issues, detectSupplyShortage(balance, thresholds)...)
	issues = append(issues, detectSlotConcentration(cfg, month, balance, thresholds)...)
	issues = append(issues, detectSlotShortage(cfg, balance)...)
	issues = append(issues, detectLeaveConcentration(cfg, month, thresholds)...)
	issues = append(issues, detectSlotsWithoutEligibleStaff(cfg, balance)...)

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Severity.rank() > issues[j].Severity.rank()
	})
	return issues
}

// detectSupplyShortage reports a negative aggregate balance. The issue
// is high severity when the shortage exceeds the severe-shortage
// fraction of total demand; that is exactly the condition that makes
// the overall status an error.
func detectSupplyShortage(balance *SupplyDemandBalance, thresholds Thresholds) []DiagnosisIssue {
	if balance.Balance >= 0 {
		return nil
	}

	shortage := -balance.Balance
	severity := SeverityMedium
	if float64(shortage) > thresholds.SevereShortageRatio*float64(balance.TotalDemand) {
		severity = SeverityHigh
	}

	return []DiagnosisIssue{{
		ID:       "supply-shortage",
		Severity: severity,
		Category: CategorySupply,
		Title:    "Overall staffing shortfall",
		Description: fmt.Sprintf(
			"Total supply is %d person-days against a demand of %d: short by %d person-days.",
			balance.TotalSupply, balance.TotalDemand, shortage),
		SettingsLink: "/settings/staff",
	}}
}

// detectSlotConcentration finds deficient slots whose shortfall is
// plausibly caused by staff locked out of them. For each slot below
// 100% fulfillment, staff whose preference excludes the slot and whose
// locked-away capacity is material (at least the materiality fraction
// of the slot's demand) are named in a timeSlot issue.
func detectSlotConcentration(cfg *model.FacilityConfig, month model.Month, balance *SupplyDemandBalance, thresholds Thresholds) []DiagnosisIssue {
	var issues []DiagnosisIssue

	for _, slot := range cfg.TimeSlots {
		slotBalance, ok := balance.ByTimeSlot[slot.Name]
		if !ok || slotBalance.Demand == 0 || slotBalance.FulfillmentRate >= 100 {
			continue
		}

		var names []string
		excludedCapacity := 0
		for i := range cfg.Staff {
			staff := &cfg.Staff[i]
			if !staff.IsRestricted() || staff.CanWorkSlot(slot) {
				continue
			}
			capacity := StaffMonthlyCapacity(staff, month)
			if capacity == 0 {
				continue
			}
			names = append(names, staff.Name)
			excludedCapacity += capacity
		}

		if len(names) == 0 {
			continue
		}
		if float64(excludedCapacity) < thresholds.SlotMaterialityRatio*float64(slotBalance.Demand) {
			continue
		}

		issues = append(issues, DiagnosisIssue{
			ID:       "timeslot-concentration-" + slot.Name,
			Severity: SeverityHigh,
			Category: CategoryTimeSlot,
			Title:    fmt.Sprintf("Time-slot restrictions starve %q", slot.Name),
			Description: fmt.Sprintf(
				"%s cannot work %q due to time-slot restrictions, locking %d person-days away from a slot that is %d person-days short.",
				strings.Join(names, ", "), slot.Name, excludedCapacity, -slotBalance.Balance),
			AffectedStaff: names,
			SettingsLink:  "/settings/staff",
		})
	}

	return issues
}

// detectSlotShortage reports individual slots with a poor fulfillment
// rate, independent of cause. Below 50% is high severity, below 80%
// medium.
func detectSlotShortage(cfg *model.FacilityConfig, balance *SupplyDemandBalance) []DiagnosisIssue {
	var issues []DiagnosisIssue

	for _, slot := range cfg.TimeSlots {
		slotBalance, ok := balance.ByTimeSlot[slot.Name]
		if !ok || slotBalance.Balance >= 0 || slotBalance.FulfillmentRate >= 80 {
			continue
		}

		severity := SeverityMedium
		if slotBalance.FulfillmentRate < 50 {
			severity = SeverityHigh
		}

		issues = append(issues, DiagnosisIssue{
			ID:       "slot-shortage-" + slot.Name,
			Severity: severity,
			Category: CategoryTimeSlot,
			Title:    fmt.Sprintf("Understaffed slot %q", slot.Name),
			Description: fmt.Sprintf(
				"Slot %q is at %d%% fulfillment: short by %d person-days.",
				slot.Name, slotBalance.FulfillmentRate, -slotBalance.Balance),
		})
	}

	return issues
}

// detectLeaveConcentration reports dates where too much of the roster
// has requested leave at once. One issue per concentrated date, dates
// ascending.
func detectLeaveConcentration(cfg *model.FacilityConfig, month model.Month, thresholds Thresholds) []DiagnosisIssue {
	if len(cfg.LeaveRequests) == 0 {
		return nil
	}

	staffOnLeave := make(map[model.Date][]string)
	for staffID, dates := range cfg.LeaveRequests {
		for dateStr := range dates {
			date := model.Date(dateStr)
			if month.Contains(date) {
				staffOnLeave[date] = append(staffOnLeave[date], cfg.StaffNameByID(staffID))
			}
		}
	}

	threshold := int(math.Ceil(thresholds.LeaveConcentrationRatio * float64(len(cfg.Staff))))
	if threshold < 1 {
		threshold = 1
	}

	var concentrated []model.Date
	for date, names := range staffOnLeave {
		if len(names) >= threshold {
			concentrated = append(concentrated, date)
		}
	}
	sort.Slice(concentrated, func(i, j int) bool { return concentrated[i] < concentrated[j] })

	var issues []DiagnosisIssue
	for _, date := range concentrated {
		names := staffOnLeave[date]
		sort.Strings(names)
		issues = append(issues, DiagnosisIssue{
			ID:       "leave-concentration-" + date.String(),
			Severity: SeverityMedium,
			Category: CategoryLeave,
			Title:    fmt.Sprintf("Leave requests concentrated on %s", date),
			Description: fmt.Sprintf(
				"%d staff (%s) have requested leave on %s.",
				len(names), strings.Join(names, ", "), date),
			AffectedStaff: names,
			AffectedDates: []string{date.String()},
		})
	}

	return issues
}

// detectSlotsWithoutEligibleStaff is the catch-all structural check: a
// slot with demand that no staff member is even eligible to work can
// never be filled, whatever the capacity numbers say.
func detectSlotsWithoutEligibleStaff(cfg *model.FacilityConfig, balance *SupplyDemandBalance) []DiagnosisIssue {
	var issues []DiagnosisIssue

	for _, slot := range cfg.TimeSlots {
		slotBalance, ok := balance.ByTimeSlot[slot.Name]
		if !ok || slotBalance.Demand == 0 {
			continue
		}

		eligible := false
		for i := range cfg.Staff {
			if cfg.Staff[i].CanWorkSlot(slot) {
				eligible = true
				break
			}
		}
		if eligible {
			continue
		}

		issues = append(issues, DiagnosisIssue{
			ID:       "no-eligible-staff-" + slot.Name,
			Severity: SeverityHigh,
			Category: CategoryOther,
			Title:    fmt.Sprintf("No staff eligible for %q", slot.Name),
			Description: fmt.Sprintf(
				"Slot %q demands %d person-days but no staff member is eligible to work it.",
				slot.Name, slotBalance.Demand),
			SettingsLink: "/settings/staff",
		})
	}

	return issues
}
