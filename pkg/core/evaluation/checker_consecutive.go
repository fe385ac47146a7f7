package evaluation

import (
	"fmt"

	"github.com/tkhrsasaki/shiftsense/pkg/core/model"
)

// defaultMaxConsecutive applies when a profile leaves the limit unset.
const defaultMaxConsecutive = 5

// consecutiveChecker verifies per-staff consecutive working day limits.
//
// A run of exactly maxConsecutiveWorkDays days is fine; one violation
// is reported per run that exceeds it, covering the whole run.
type consecutiveChecker struct{}

func (consecutiveChecker) Name() string { return "ConsecutiveWork" }

func (consecutiveChecker) Check(in *Input) []ConstraintViolation {
	var violations []ConstraintViolation

	for i := range in.Schedule.Staff {
		staffSchedule := &in.Schedule.Staff[i]
		staff := in.Config.StaffByID(staffSchedule.StaffID)
		limit := staff.MaxConsecutiveWorkDays
		if limit <= 0 {
			limit = defaultMaxConsecutive
		}

		for _, run := range consecutiveRuns(in.WorkDates[staffSchedule.StaffID]) {
			if len(run) <= limit {
				continue
			}
			dates := make([]string, len(run))
			for k, d := range run {
				dates[k] = d.String()
			}
			violations = append(violations, ConstraintViolation{
				Type: ViolationConsecutiveWork,
				Description: fmt.Sprintf(
					"%s works %d consecutive days from %s; the limit is %d.",
					staff.Name, len(run), run[0], limit),
				AffectedStaff: []string{staff.Name},
				AffectedDates: dates,
				Suggestion: fmt.Sprintf(
					"Insert a rest day for %s within %s to %s.",
					staff.Name, run[0], run[len(run)-1]),
			})
		}
	}

	return violations
}

// consecutiveRuns splits ascending working dates into maximal runs of
// adjacent calendar days.
func consecutiveRuns(dates []model.Date) [][]model.Date {
	var runs [][]model.Date
	for i := 0; i < len(dates); {
		j := i
		for j+1 < len(dates) && adjacentDays(dates[j], dates[j+1]) {
			j++
		}
		runs = append(runs, dates[i:j+1])
		i = j + 1
	}
	return runs
}
