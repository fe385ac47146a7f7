package evaluation

import "fmt"

// leaveChecker verifies that nobody works a date they requested leave
// on. Leave entries for staff absent from the schedule are ignored.
type leaveChecker struct{}

func (leaveChecker) Name() string { return "LeaveRequests" }

func (leaveChecker) Check(in *Input) []ConstraintViolation {
	var violations []ConstraintViolation

	for i := range in.Schedule.Staff {
		staffSchedule := &in.Schedule.Staff[i]
		requested := in.Config.LeaveRequests[staffSchedule.StaffID]
		if len(requested) == 0 {
			continue
		}
		staff := in.Config.StaffByID(staffSchedule.StaffID)

		for _, date := range in.WorkDates[staffSchedule.StaffID] {
			kind, ok := requested[date.String()]
			if !ok {
				continue
			}
			violations = append(violations, ConstraintViolation{
				Type: ViolationLeaveIgnored,
				Slot: in.SlotByDate[staffSchedule.StaffID][date],
				Description: fmt.Sprintf(
					"%s is scheduled on %s despite a %s leave request.", staff.Name, date, kind),
				AffectedStaff: []string{staff.Name},
				AffectedDates: []string{date.String()},
				Suggestion: fmt.Sprintf(
					"Free %s on %s and cover the shift with someone else.", staff.Name, date),
			})
		}
	}

	return violations
}
