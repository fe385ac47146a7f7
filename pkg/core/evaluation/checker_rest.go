package evaluation

import (
	"fmt"
	"time"

	"github.com/tkhrsasaki/shiftsense/pkg/core/model"
)

// restChecker verifies the mandated rest period between shifts.
//
// For each staff member and each pair of shifts on adjacent calendar
// days, the gap between the first shift's end and the second shift's
// start must reach the first slot's restHours. A slot whose end is not
// after its start crosses midnight, so its end belongs to the next
// calendar day. Rest violations are absolute: a single one zeroes the
// schedule's score.
type restChecker struct{}

func (restChecker) Name() string { return "Rest" }

func (restChecker) Check(in *Input) []ConstraintViolation {
	var violations []ConstraintViolation

	for i := range in.Schedule.Staff {
		staffSchedule := &in.Schedule.Staff[i]
		dates := in.WorkDates[staffSchedule.StaffID]
		staff := in.Config.StaffByID(staffSchedule.StaffID)

		for j := 0; j+1 < len(dates); j++ {
			first, second := dates[j], dates[j+1]
			if !adjacentDays(first, second) {
				continue
			}

			firstSlot, okF := in.Config.SlotByName(in.SlotByDate[staffSchedule.StaffID][first])
			secondSlot, okS := in.Config.SlotByName(in.SlotByDate[staffSchedule.StaffID][second])
			if !okF || !okS || firstSlot.RestHours == 0 {
				continue
			}

			gap, ok := restGapHours(first, firstSlot, second, secondSlot)
			if !ok || gap >= float64(firstSlot.RestHours) {
				continue
			}

			violations = append(violations, ConstraintViolation{
				Type: ViolationRestDeficit,
				Slot: firstSlot.Name,
				Description: fmt.Sprintf(
					"%s has %.1fh rest between %q on %s and %q on %s; %dh required.",
					staff.Name, gap, firstSlot.Name, first, secondSlot.Name, second, firstSlot.RestHours),
				AffectedStaff: []string{staff.Name},
				AffectedDates: []string{first.String(), second.String()},
				Suggestion: fmt.Sprintf(
					"Give %s a rest day after %q on %s.", staff.Name, firstSlot.Name, first),
			})
		}
	}

	return violations
}

func adjacentDays(a, b model.Date) bool {
	ta, errA := a.Time()
	tb, errB := b.Time()
	if errA != nil || errB != nil {
		return false
	}
	return tb.Sub(ta) == 24*time.Hour
}

// restGapHours returns the hours between the end of the first shift and
// the start of the next day's shift. A midnight-crossing first shift
// ends on the second day.
func restGapHours(firstDate model.Date, firstSlot model.TimeSlotDefinition, secondDate model.Date, secondSlot model.TimeSlotDefinition) (float64, bool) {
	endMin, okE := model.ClockMinutes(firstSlot.End)
	startMin, okS := model.ClockMinutes(secondSlot.Start)
	if !okE || !okS {
		return 0, false
	}

	firstDay, err := firstDate.Time()
	if err != nil {
		return 0, false
	}
	secondDay, err := secondDate.Time()
	if err != nil {
		return 0, false
	}

	end := firstDay.Add(time.Duration(endMin) * time.Minute)
	if firstSlot.IsNight() {
		end = end.Add(24 * time.Hour)
	}
	start := secondDay.Add(time.Duration(startMin) * time.Minute)

	return start.Sub(end).Hours(), true
}
