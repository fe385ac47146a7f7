package rootcause

import (
	"fmt"
	"sort"

	"github.com/tkhrsasaki/shiftsense/pkg/core/diagnosis"
	"github.com/tkhrsasaki/shiftsense/pkg/core/evaluation"
	"github.com/tkhrsasaki/shiftsense/pkg/core/model"
)

// analyzeStaffShortage traces staffShortage violations back to the
// configuration, in preference order:
//  1. an aggregate capacity deficit explains everything at once
//  2. otherwise, per-slot deficits explain the slots they cover
//  3. shortages in slots with a non-negative balance mean the capacity
//     existed and the generator left it unused
func analyzeStaffShortage(cfg *model.FacilityConfig, balance *diagnosis.SupplyDemandBalance, violations []evaluation.ConstraintViolation) []RootCause {
	if len(violations) == 0 {
		return nil
	}

	dates := collectDates(violations)

	if evidence := evidenceFor(balance.TotalDemand, balance.TotalSupply); evidence != nil {
		return []RootCause{{
			ID:            "staff-shortage",
			ViolationType: string(evaluation.ViolationStaffShortage),
			CauseType:     CauseStaffShortage,
			Description: fmt.Sprintf(
				"The roster supplies %d person-days against a demand of %d; shortages were unavoidable.",
				balance.TotalSupply, balance.TotalDemand),
			AffectedDates: dates,
			Evidence:      evidence,
		}}
	}

	var causes []RootCause
	unexplained := map[string][]string{}

	for _, slotName := range slotsOf(cfg, violations) {
		slotDates := collectDates(filterBySlot(violations, slotName))
		slotBalance := balance.ByTimeSlot[slotName]

		evidence := evidenceFor(slotBalance.Demand, slotBalance.Supply)
		if evidence == nil {
			unexplained[slotName] = slotDates
			continue
		}

		causes = append(causes, RootCause{
			ID:            "slot-capacity-" + slotName,
			ViolationType: string(evaluation.ViolationStaffShortage),
			CauseType:     CauseTimeSlotConstraint,
			Description: fmt.Sprintf(
				"Slot %q carries %d person-days of eligible capacity against a demand of %d.",
				slotName, slotBalance.Supply, slotBalance.Demand),
			AffectedDates: slotDates,
			Evidence:      evidence,
		})
	}

	for _, slotName := range sortedKeys(unexplained) {
		causes = append(causes, RootCause{
			ID:            "generation-gap-" + slotName,
			ViolationType: string(evaluation.ViolationStaffShortage),
			CauseType:     CauseOther,
			Description: fmt.Sprintf(
				"Slot %q had sufficient eligible capacity; the generated schedule left it unused.",
				slotName),
			AffectedDates: unexplained[slotName],
		})
	}

	return causes
}

// analyzeSlotRestrictions explains out-of-preference assignments: the
// generator placed restricted staff into a slot their preference
// excludes, which happens when the slot's eligible capacity falls short.
func analyzeSlotRestrictions(cfg *model.FacilityConfig, balance *diagnosis.SupplyDemandBalance, violations []evaluation.ConstraintViolation) []RootCause {
	var causes []RootCause

	for _, slotName := range slotsOf(cfg, violations) {
		slotViolations := filterBySlot(violations, slotName)
		slotBalance := balance.ByTimeSlot[slotName]

		causes = append(causes, RootCause{
			ID:            "timeslot-restriction-" + slotName,
			ViolationType: string(evaluation.ViolationSlotRestriction),
			CauseType:     CauseTimeSlotConstraint,
			Description: fmt.Sprintf(
				"Time-slot restrictions left %q short of eligible staff, forcing assignments outside preferences.",
				slotName),
			AffectedStaff: collectStaff(slotViolations),
			AffectedDates: collectDates(slotViolations),
			Evidence:      evidenceFor(slotBalance.Demand, slotBalance.Supply),
		})
	}

	return causes
}

// analyzeLeaveConflicts groups ignored leave requests by date. Required
// is the total demand of slots operating that date; available is the
// count of staff able to work it after honoring every leave request.
func analyzeLeaveConflicts(cfg *model.FacilityConfig, violations []evaluation.ConstraintViolation) []RootCause {
	if len(violations) == 0 {
		return nil
	}

	byDate := make(map[string][]evaluation.ConstraintViolation)
	for _, v := range violations {
		for _, date := range v.AffectedDates {
			byDate[date] = append(byDate[date], v)
		}
	}

	var causes []RootCause
	for _, dateStr := range sortedViolationKeys(byDate) {
		date := model.Date(dateStr)
		required := demandOn(cfg, date)
		available := availableHonoringLeave(cfg, date)

		causes = append(causes, RootCause{
			ID:            "leave-conflict-" + dateStr,
			ViolationType: string(evaluation.ViolationLeaveIgnored),
			CauseType:     CauseLeaveConflict,
			Description: fmt.Sprintf(
				"Leave requests on %s left %d staff available against a demand of %d, so some requests were overridden.",
				dateStr, available, required),
			AffectedStaff: collectStaff(byDate[dateStr]),
			AffectedDates: []string{dateStr},
			Evidence:      evidenceFor(required, available),
		})
	}

	return causes
}

// analyzeGeneratorFaults covers violation types the configuration
// cannot explain: rest deficits and consecutive-day overruns are
// placement mistakes, so the cause is the generation itself.
func analyzeGeneratorFaults(violations []evaluation.ConstraintViolation) []RootCause {
	if len(violations) == 0 {
		return nil
	}

	return []RootCause{{
		ID:            "generation-" + string(violations[0].Type),
		ViolationType: string(violations[0].Type),
		CauseType:     CauseOther,
		Description: fmt.Sprintf(
			"%d %s violation(s) stem from shift placement rather than the configuration.",
			len(violations), violations[0].Type),
		AffectedStaff: collectStaff(violations),
		AffectedDates: collectDates(violations),
	}}
}

// demandOn sums totalStaff across slots operating on the date.
func demandOn(cfg *model.FacilityConfig, date model.Date) int {
	t, err := date.Time()
	if err != nil {
		return 0
	}
	month := model.Month{Year: t.Year(), Month: t.Month()}

	total := 0
	for _, req := range cfg.Requirements {
		operating, err := model.OperatingDates(month, req.ClosedDays)
		if err != nil {
			continue
		}
		for _, d := range operating {
			if d == date {
				total += req.TotalStaff
				break
			}
		}
	}
	return total
}

// availableHonoringLeave counts staff who could work the date if every
// leave request were honored.
func availableHonoringLeave(cfg *model.FacilityConfig, date model.Date) int {
	count := 0
	for i := range cfg.Staff {
		staff := &cfg.Staff[i]
		if !staff.CanWorkDate(date) {
			continue
		}
		if _, onLeave := cfg.LeaveRequests[staff.ID][date.String()]; onLeave {
			continue
		}
		count++
	}
	return count
}

// slotsOf returns the distinct slots the violations name, in the
// configuration's slot order.
func slotsOf(cfg *model.FacilityConfig, violations []evaluation.ConstraintViolation) []string {
	seen := make(map[string]bool)
	for _, v := range violations {
		if v.Slot != "" {
			seen[v.Slot] = true
		}
	}
	var slots []string
	for _, slot := range cfg.TimeSlots {
		if seen[slot.Name] {
			slots = append(slots, slot.Name)
		}
	}
	return slots
}

func filterBySlot(violations []evaluation.ConstraintViolation, slotName string) []evaluation.ConstraintViolation {
	var filtered []evaluation.ConstraintViolation
	for _, v := range violations {
		if v.Slot == slotName {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// collectDates gathers the distinct affected dates, ascending.
func collectDates(violations []evaluation.ConstraintViolation) []string {
	seen := make(map[string]bool)
	for _, v := range violations {
		for _, date := range v.AffectedDates {
			seen[date] = true
		}
	}
	return sortedKeys2(seen)
}

// collectStaff gathers the distinct affected staff names, sorted.
func collectStaff(violations []evaluation.ConstraintViolation) []string {
	seen := make(map[string]bool)
	for _, v := range violations {
		for _, name := range v.AffectedStaff {
			seen[name] = true
		}
	}
	return sortedKeys2(seen)
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedViolationKeys(m map[string][]evaluation.ConstraintViolation) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeys2(m map[string]bool) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
