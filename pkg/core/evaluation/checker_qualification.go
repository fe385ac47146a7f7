package evaluation

import (
	"fmt"

	"github.com/tkhrsasaki/shiftsense/pkg/core/model"
)

// qualificationChecker verifies per-slot role and qualification
// coverage.
//
// For each slot/day, each requiredRoles entry must be met by that many
// assigned staff holding the position, and each requiredQualifications
// entry by that many holding the tag. One staff member satisfies one
// seat per entry, but may count toward several different entries at
// once. Both shortfalls are qualificationMissing violations.
type qualificationChecker struct{}

func (qualificationChecker) Name() string { return "Qualification" }

func (qualificationChecker) Check(in *Input) []ConstraintViolation {
	var violations []ConstraintViolation

	for _, slot := range in.Config.TimeSlots {
		req, ok := in.Config.Requirements[slot.Name]
		if !ok || (len(req.RequiredQualifications) == 0 && len(req.RequiredRoles) == 0) {
			continue
		}
		for _, date := range in.Operating[slot.Name] {
			assigned := assignedProfiles(in, date, slot.Name)

			for _, role := range req.RequiredRoles {
				holders := 0
				for _, staff := range assigned {
					if staff.Position == role.Role {
						holders++
					}
				}
				if holders >= role.Count {
					continue
				}
				violations = append(violations, shortfall(date, slot.Name, role.Role, holders, role.Count))
			}

			for _, qual := range req.RequiredQualifications {
				holders := 0
				for _, staff := range assigned {
					if staff.HasCertification(qual.Qualification) {
						holders++
					}
				}
				if holders >= qual.Count {
					continue
				}
				violations = append(violations, shortfall(date, slot.Name, qual.Qualification, holders, qual.Count))
			}
		}
	}

	return violations
}

func shortfall(date model.Date, slotName, need string, holders, count int) ConstraintViolation {
	return ConstraintViolation{
		Type: ViolationQualificationMissing,
		Slot: slotName,
		Description: fmt.Sprintf(
			"%s %q: %d of %d required %q holders assigned.",
			date, slotName, holders, count, need),
		AffectedDates: []string{date.String()},
		Suggestion: fmt.Sprintf(
			"Assign staff with %q to %q on %s.", need, slotName, date),
	}
}
