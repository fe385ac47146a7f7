package evaluation

import "fmt"

// eligibilityChecker verifies that every assignment respects the staff
// member's hard restrictions.
//
// Two cases, both slotRestriction violations:
//   - the assigned slot is outside the member's time-slot preference
//   - the assignment falls on a weekday or date the member marked
//     unavailable
type eligibilityChecker struct{}

func (eligibilityChecker) Name() string { return "Eligibility" }

func (eligibilityChecker) Check(in *Input) []ConstraintViolation {
	var violations []ConstraintViolation

	for i := range in.Schedule.Staff {
		staffSchedule := &in.Schedule.Staff[i]
		staff := in.Config.StaffByID(staffSchedule.StaffID)

		for _, date := range in.WorkDates[staffSchedule.StaffID] {
			slotName := in.SlotByDate[staffSchedule.StaffID][date]
			slot, ok := in.Config.SlotByName(slotName)
			if !ok {
				continue
			}

			if !staff.CanWorkSlot(slot) {
				violations = append(violations, ConstraintViolation{
					Type: ViolationSlotRestriction,
					Slot: slot.Name,
					Description: fmt.Sprintf(
						"%s is assigned to %q on %s but their preference (%s) excludes it.",
						staff.Name, slot.Name, date, staff.TimeSlotPreference),
					AffectedStaff: []string{staff.Name},
					AffectedDates: []string{date.String()},
					Suggestion: fmt.Sprintf(
						"Reassign %s on %s or widen their time-slot preference.", staff.Name, date),
				})
			}

			if !staff.CanWorkDate(date) {
				violations = append(violations, ConstraintViolation{
					Type: ViolationSlotRestriction,
					Slot: slot.Name,
					Description: fmt.Sprintf(
						"%s is assigned on %s, a day they are unavailable.", staff.Name, date),
					AffectedStaff: []string{staff.Name},
					AffectedDates: []string{date.String()},
					Suggestion: fmt.Sprintf(
						"Move %s's shift on %s to an available day.", staff.Name, date),
				})
			}
		}
	}

	return violations
}
