package evaluation

import (
	"fmt"

	"github.com/tkhrsasaki/shiftsense/pkg/core/model"
)

// staffingChecker verifies headcount per slot per operating day.
//
// One violation per slot/day where fewer staff are assigned than the
// requirement's totalStaff. Non-operating days (closedDays) are
// skipped, so a dark slot never reports a shortage.
type staffingChecker struct{}

func (staffingChecker) Name() string { return "Staffing" }

func (staffingChecker) Check(in *Input) []ConstraintViolation {
	var violations []ConstraintViolation

	for _, slot := range in.Config.TimeSlots {
		req, ok := in.Config.Requirements[slot.Name]
		if !ok || req.TotalStaff == 0 {
			continue
		}
		for _, date := range in.Operating[slot.Name] {
			assigned := len(in.Assigned[date][slot.Name])
			if assigned >= req.TotalStaff {
				continue
			}
			violations = append(violations, ConstraintViolation{
				Type: ViolationStaffShortage,
				Slot: slot.Name,
				Description: fmt.Sprintf(
					"%s %q: %d of %d required staff assigned.",
					date, slot.Name, assigned, req.TotalStaff),
				AffectedDates: []string{date.String()},
				Suggestion:    fmt.Sprintf("Assign %d more staff to %q on %s.", req.TotalStaff-assigned, slot.Name, date),
			})
		}
	}

	return violations
}

// assignedProfiles resolves the staff assigned to a slot on a date.
func assignedProfiles(in *Input, date model.Date, slotName string) []*model.StaffProfile {
	ids := in.Assigned[date][slotName]
	profiles := make([]*model.StaffProfile, 0, len(ids))
	for _, id := range ids {
		if p := in.Config.StaffByID(id); p != nil {
			profiles = append(profiles, p)
		}
	}
	return profiles
}
