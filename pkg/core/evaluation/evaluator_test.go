package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkhrsasaki/shiftsense/pkg/core/model"
)

// sundayConfig: one day slot operating only on Sundays (4 days in June
// 2026), needing 1 staff, plus a night slot with no requirement. Keeps
// perfect schedules small.
func sundayConfig(staff ...model.StaffProfile) *model.FacilityConfig {
	return &model.FacilityConfig{
		Staff: staff,
		TimeSlots: []model.TimeSlotDefinition{
			{Name: "day", Start: "09:00", End: "17:00", RestHours: 8},
			{Name: "night", Start: "22:00", End: "06:00", RestHours: 11},
		},
		Requirements: map[string]model.DailyRequirement{
			"day": {TotalStaff: 1, ClosedDays: "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR,SA"},
		},
	}
}

func worker(id, name string) model.StaffProfile {
	return model.StaffProfile{ID: id, Name: name, TimeSlotPreference: model.PreferenceAny}
}

func shifts(slot string, dates ...model.Date) []model.ShiftAssignment {
	assignments := make([]model.ShiftAssignment, len(dates))
	for i, date := range dates {
		assignments[i] = model.ShiftAssignment{Date: date, Slot: slot}
	}
	return assignments
}

func TestEvaluate_PerfectSchedule(t *testing.T) {
	cfg := sundayConfig(worker("s1", "Aiko"))
	schedule := &model.Schedule{
		TargetMonth: "2026-06",
		Staff: []model.StaffSchedule{
			// June 2026 Sundays, non-adjacent so no rest or run issues
			{StaffID: "s1", Shifts: shifts("day", "2026-06-07", "2026-06-14", "2026-06-21", "2026-06-28")},
		},
	}

	result, err := Evaluate(cfg, schedule)
	require.NoError(t, err)

	assert.Equal(t, 100, result.Score)
	assert.Equal(t, 100, result.FulfillmentRate)
	assert.Empty(t, result.Violations)
	assert.Equal(t, 0, result.LevelBreakdown[LevelAbsolute].Count)
	assert.Equal(t, 0, result.LevelBreakdown[LevelOperational].Count)
}

func TestEvaluate_EmptyScheduleReportsShortages(t *testing.T) {
	cfg := sundayConfig(worker("s1", "Aiko"))
	schedule := &model.Schedule{TargetMonth: "2026-06"}

	result, err := Evaluate(cfg, schedule)
	require.NoError(t, err)

	// One shortage per operating Sunday: 4 * level-2 penalty of 12
	assert.Len(t, result.Violations, 4)
	assert.Equal(t, 52, result.Score)
	assert.Equal(t, 0, result.FulfillmentRate)
	for _, v := range result.Violations {
		assert.Equal(t, ViolationStaffShortage, v.Type)
		assert.Equal(t, LevelOperational, v.Level)
		assert.Equal(t, "day", v.Slot)
	}
	assert.Equal(t, 4, result.LevelBreakdown[LevelOperational].Count)
	assert.Equal(t, 48, result.LevelBreakdown[LevelOperational].Penalty)
}

func TestEvaluate_RestDeficitZeroesScore(t *testing.T) {
	cfg := sundayConfig(worker("s1", "Aiko"))
	schedule := &model.Schedule{
		TargetMonth: "2026-06",
		Staff: []model.StaffSchedule{
			// Night ends 06:00 on the 11th; day starts 09:00 the same
			// morning: 3h rest against a mandated 11h.
			{StaffID: "s1", Shifts: []model.ShiftAssignment{
				{Date: "2026-06-10", Slot: "night"},
				{Date: "2026-06-11", Slot: "day"},
			}},
		},
	}

	result, err := Evaluate(cfg, schedule)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Score)

	var rest *ConstraintViolation
	for i := range result.Violations {
		if result.Violations[i].Type == ViolationRestDeficit {
			rest = &result.Violations[i]
		}
	}
	require.NotNil(t, rest)
	assert.Equal(t, LevelAbsolute, rest.Level)
	assert.Equal(t, []string{"2026-06-10", "2026-06-11"}, rest.AffectedDates)
}

func TestEvaluate_AdequateRestIsNotAViolation(t *testing.T) {
	cfg := sundayConfig(worker("s1", "Aiko"))
	schedule := &model.Schedule{
		TargetMonth: "2026-06",
		Staff: []model.StaffSchedule{
			// Day ends 17:00, next day starts 09:00: 16h >= 8h required
			{StaffID: "s1", Shifts: []model.ShiftAssignment{
				{Date: "2026-06-10", Slot: "day"},
				{Date: "2026-06-11", Slot: "day"},
			}},
		},
	}

	result, err := Evaluate(cfg, schedule)
	require.NoError(t, err)
	for _, v := range result.Violations {
		assert.NotEqual(t, ViolationRestDeficit, v.Type)
	}
}

func TestEvaluate_ConsecutiveWorkLimit(t *testing.T) {
	staff := worker("s1", "Aiko")
	staff.MaxConsecutiveWorkDays = 3
	cfg := sundayConfig(staff)

	atLimit := &model.Schedule{
		TargetMonth: "2026-06",
		Staff: []model.StaffSchedule{
			{StaffID: "s1", Shifts: shifts("day", "2026-06-08", "2026-06-09", "2026-06-10")},
		},
	}
	result, err := Evaluate(cfg, atLimit)
	require.NoError(t, err)
	for _, v := range result.Violations {
		assert.NotEqual(t, ViolationConsecutiveWork, v.Type)
	}

	overLimit := &model.Schedule{
		TargetMonth: "2026-06",
		Staff: []model.StaffSchedule{
			{StaffID: "s1", Shifts: shifts("day", "2026-06-08", "2026-06-09", "2026-06-10", "2026-06-11")},
		},
	}
	result, err = Evaluate(cfg, overLimit)
	require.NoError(t, err)

	var run *ConstraintViolation
	for i := range result.Violations {
		if result.Violations[i].Type == ViolationConsecutiveWork {
			run = &result.Violations[i]
		}
	}
	require.NotNil(t, run)
	assert.Equal(t, LevelEffort, run.Level)
	assert.Equal(t, 4, run.Penalty)
	assert.Len(t, run.AffectedDates, 4)
}

func TestEvaluate_SlotRestriction(t *testing.T) {
	staff := worker("s1", "Aiko")
	staff.TimeSlotPreference = model.PreferenceNightOnly
	cfg := sundayConfig(staff)

	schedule := &model.Schedule{
		TargetMonth: "2026-06",
		Staff: []model.StaffSchedule{
			{StaffID: "s1", Shifts: shifts("day", "2026-06-07")},
		},
	}
	result, err := Evaluate(cfg, schedule)
	require.NoError(t, err)

	found := false
	for _, v := range result.Violations {
		if v.Type == ViolationSlotRestriction {
			found = true
			assert.Equal(t, LevelOperational, v.Level)
			assert.Equal(t, "day", v.Slot)
			assert.Equal(t, []string{"Aiko"}, v.AffectedStaff)
		}
	}
	assert.True(t, found)
}

func TestEvaluate_UnavailableDayAssignment(t *testing.T) {
	staff := worker("s1", "Aiko")
	staff.AvailableWeekdays = []int{0} // Sundays only
	cfg := sundayConfig(staff)

	schedule := &model.Schedule{
		TargetMonth: "2026-06",
		Staff: []model.StaffSchedule{
			{StaffID: "s1", Shifts: shifts("day", "2026-06-08")}, // Monday
		},
	}
	result, err := Evaluate(cfg, schedule)
	require.NoError(t, err)

	found := false
	for _, v := range result.Violations {
		if v.Type == ViolationSlotRestriction {
			found = true
		}
	}
	assert.True(t, found)
}

func TestEvaluate_IgnoredLeaveRequest(t *testing.T) {
	cfg := sundayConfig(worker("s1", "Aiko"))
	cfg.LeaveRequests = model.LeaveRequests{
		"s1": {"2026-06-07": "requested"},
	}

	schedule := &model.Schedule{
		TargetMonth: "2026-06",
		Staff: []model.StaffSchedule{
			{StaffID: "s1", Shifts: shifts("day", "2026-06-07")},
		},
	}
	result, err := Evaluate(cfg, schedule)
	require.NoError(t, err)

	found := false
	for _, v := range result.Violations {
		if v.Type == ViolationLeaveIgnored {
			found = true
			assert.Equal(t, LevelEffort, v.Level)
			assert.Equal(t, []string{"2026-06-07"}, v.AffectedDates)
		}
	}
	assert.True(t, found)
}

func TestEvaluate_QualificationMissing(t *testing.T) {
	qualified := worker("s1", "Aiko")
	qualified.Certifications = []string{"nurse"}
	unqualified := worker("s2", "Ben")

	cfg := sundayConfig(qualified, unqualified)
	cfg.Requirements["day"] = model.DailyRequirement{
		TotalStaff:             1,
		ClosedDays:             "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR,SA",
		RequiredQualifications: []model.QualificationRequirement{{Qualification: "nurse", Count: 1}},
	}

	covered := &model.Schedule{
		TargetMonth: "2026-06",
		Staff: []model.StaffSchedule{
			{StaffID: "s1", Shifts: shifts("day", "2026-06-07", "2026-06-14", "2026-06-21", "2026-06-28")},
		},
	}
	result, err := Evaluate(cfg, covered)
	require.NoError(t, err)
	for _, v := range result.Violations {
		assert.NotEqual(t, ViolationQualificationMissing, v.Type)
	}

	uncovered := &model.Schedule{
		TargetMonth: "2026-06",
		Staff: []model.StaffSchedule{
			{StaffID: "s2", Shifts: shifts("day", "2026-06-07", "2026-06-14", "2026-06-21", "2026-06-28")},
		},
	}
	result, err = Evaluate(cfg, uncovered)
	require.NoError(t, err)

	count := 0
	for _, v := range result.Violations {
		if v.Type == ViolationQualificationMissing {
			count++
			assert.Equal(t, LevelOperational, v.Level)
		}
	}
	assert.Equal(t, 4, count)
}

func TestEvaluate_RoleCoverage(t *testing.T) {
	leader := worker("s1", "Aiko")
	leader.Position = "leader"
	member := worker("s2", "Ben")
	member.Position = "member"

	cfg := sundayConfig(leader, member)
	cfg.Requirements["day"] = model.DailyRequirement{
		TotalStaff:    1,
		ClosedDays:    "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR,SA",
		RequiredRoles: []model.RoleRequirement{{Role: "leader", Count: 1}},
	}

	covered := &model.Schedule{
		TargetMonth: "2026-06",
		Staff: []model.StaffSchedule{
			{StaffID: "s1", Shifts: shifts("day", "2026-06-07", "2026-06-14", "2026-06-21", "2026-06-28")},
		},
	}
	result, err := Evaluate(cfg, covered)
	require.NoError(t, err)
	for _, v := range result.Violations {
		assert.NotEqual(t, ViolationQualificationMissing, v.Type)
	}

	// A member covers headcount but not the leader seat.
	uncovered := &model.Schedule{
		TargetMonth: "2026-06",
		Staff: []model.StaffSchedule{
			{StaffID: "s2", Shifts: shifts("day", "2026-06-07", "2026-06-14", "2026-06-21", "2026-06-28")},
		},
	}
	result, err = Evaluate(cfg, uncovered)
	require.NoError(t, err)

	count := 0
	for _, v := range result.Violations {
		if v.Type == ViolationQualificationMissing {
			count++
			assert.Contains(t, v.Description, "leader")
		}
	}
	assert.Equal(t, 4, count)
}

func TestEvaluate_ScoreClampsAtZero(t *testing.T) {
	cfg := &model.FacilityConfig{
		Staff: []model.StaffProfile{worker("s1", "Aiko")},
		TimeSlots: []model.TimeSlotDefinition{
			{Name: "day", Start: "09:00", End: "17:00", RestHours: 8},
		},
		Requirements: map[string]model.DailyRequirement{
			"day": {TotalStaff: 2},
		},
	}
	// Nobody assigned: 30 days * 12 points far exceeds 100
	schedule := &model.Schedule{TargetMonth: "2026-06"}

	result, err := Evaluate(cfg, schedule)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Score)
	assert.Len(t, result.Violations, 30)
}

func TestEvaluate_ViolationsSortedByLevelThenDate(t *testing.T) {
	staff := worker("s1", "Aiko")
	staff.MaxConsecutiveWorkDays = 2
	cfg := sundayConfig(staff)

	schedule := &model.Schedule{
		TargetMonth: "2026-06",
		Staff: []model.StaffSchedule{
			{StaffID: "s1", Shifts: shifts("day", "2026-06-08", "2026-06-09", "2026-06-10")},
		},
	}
	result, err := Evaluate(cfg, schedule)
	require.NoError(t, err)
	require.NotEmpty(t, result.Violations)

	for i := 1; i < len(result.Violations); i++ {
		prev, cur := result.Violations[i-1], result.Violations[i]
		assert.LessOrEqual(t, int(prev.Level), int(cur.Level))
	}
}

func TestEvaluate_UnknownStaffIsInputError(t *testing.T) {
	cfg := sundayConfig(worker("s1", "Aiko"))
	schedule := &model.Schedule{
		TargetMonth: "2026-06",
		Staff:       []model.StaffSchedule{{StaffID: "ghost"}},
	}

	_, err := Evaluate(cfg, schedule)
	var inputErr *model.InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestEvaluate_UnknownSlotIsInputError(t *testing.T) {
	cfg := sundayConfig(worker("s1", "Aiko"))
	schedule := &model.Schedule{
		TargetMonth: "2026-06",
		Staff: []model.StaffSchedule{
			{StaffID: "s1", Shifts: shifts("twilight", "2026-06-07")},
		},
	}

	_, err := Evaluate(cfg, schedule)
	var inputErr *model.InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestEvaluate_DateOutsideMonthIsInputError(t *testing.T) {
	cfg := sundayConfig(worker("s1", "Aiko"))
	schedule := &model.Schedule{
		TargetMonth: "2026-06",
		Staff: []model.StaffSchedule{
			{StaffID: "s1", Shifts: shifts("day", "2026-07-01")},
		},
	}

	_, err := Evaluate(cfg, schedule)
	var inputErr *model.InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestEvaluate_BadTargetMonthIsInputError(t *testing.T) {
	cfg := sundayConfig(worker("s1", "Aiko"))
	schedule := &model.Schedule{TargetMonth: "June"}

	_, err := Evaluate(cfg, schedule)
	var inputErr *model.InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestFulfillment_OverstaffingDoesNotCompensate(t *testing.T) {
	cfg := sundayConfig(worker("s1", "Aiko"), worker("s2", "Ben"))

	// Two staff on one Sunday, none on the other three: 1 of 4
	// positions counts as filled.
	schedule := &model.Schedule{
		TargetMonth: "2026-06",
		Staff: []model.StaffSchedule{
			{StaffID: "s1", Shifts: shifts("day", "2026-06-07")},
			{StaffID: "s2", Shifts: shifts("day", "2026-06-07")},
		},
	}
	result, err := Evaluate(cfg, schedule)
	require.NoError(t, err)
	assert.Equal(t, 25, result.FulfillmentRate)
}
