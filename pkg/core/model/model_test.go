package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth_Valid(t *testing.T) {
	month, err := ParseMonth("2026-06")
	require.NoError(t, err)
	assert.Equal(t, 2026, month.Year)
	assert.Equal(t, 30, month.Days())
	assert.Equal(t, Date("2026-06-01"), month.Date(1))
	assert.Equal(t, Date("2026-06-30"), month.Date(30))
}

func TestParseMonth_Invalid(t *testing.T) {
	_, err := ParseMonth("June 2026")
	require.Error(t, err)

	var inputErr *InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestMonth_Contains(t *testing.T) {
	month, err := ParseMonth("2026-06")
	require.NoError(t, err)

	assert.True(t, month.Contains("2026-06-15"))
	assert.False(t, month.Contains("2026-07-01"))
	assert.False(t, month.Contains("not-a-date"))
}

func TestDate_Weekday(t *testing.T) {
	// 2026-06-01 is a Monday
	assert.Equal(t, 1, Date("2026-06-01").Weekday())
	assert.Equal(t, 0, Date("2026-06-07").Weekday())
	assert.Equal(t, -1, Date("bogus").Weekday())
}

func TestTimeSlot_IsNight(t *testing.T) {
	day := TimeSlotDefinition{Name: "day", Start: "09:00", End: "17:00"}
	night := TimeSlotDefinition{Name: "night", Start: "22:00", End: "06:00"}

	assert.False(t, day.IsNight())
	assert.True(t, night.IsNight())
}

func TestStaff_CanWorkSlot(t *testing.T) {
	day := TimeSlotDefinition{Name: "day", Start: "09:00", End: "17:00"}
	night := TimeSlotDefinition{Name: "night", Start: "22:00", End: "06:00"}

	unrestricted := StaffProfile{TimeSlotPreference: PreferenceAny}
	assert.True(t, unrestricted.CanWorkSlot(day))
	assert.True(t, unrestricted.CanWorkSlot(night))
	assert.False(t, unrestricted.IsRestricted())

	nightOnly := StaffProfile{TimeSlotPreference: PreferenceNightOnly}
	assert.False(t, nightOnly.CanWorkSlot(day))
	assert.True(t, nightOnly.CanWorkSlot(night))
	assert.True(t, nightOnly.IsRestricted())

	dayOnly := StaffProfile{TimeSlotPreference: "day"}
	assert.True(t, dayOnly.CanWorkSlot(day))
	assert.False(t, dayOnly.CanWorkSlot(night))
	assert.True(t, dayOnly.IsRestricted())

	// Empty preference means no restriction
	blank := StaffProfile{}
	assert.True(t, blank.CanWorkSlot(day))
	assert.False(t, blank.IsRestricted())
}

func TestStaff_CanWorkDate(t *testing.T) {
	staff := StaffProfile{
		AvailableWeekdays: []int{0, 6}, // weekends only
		UnavailableDates:  []string{"2026-06-07"},
	}

	assert.True(t, staff.CanWorkDate("2026-06-06"))  // Saturday
	assert.False(t, staff.CanWorkDate("2026-06-08")) // Monday
	assert.False(t, staff.CanWorkDate("2026-06-07")) // Sunday, but blocked

	anyDay := StaffProfile{}
	assert.True(t, anyDay.CanWorkDate("2026-06-08"))
}

func TestStaff_WeeklyTarget(t *testing.T) {
	assert.Equal(t, 4, (&StaffProfile{WeeklyWorkCount: WeeklyWorkCount{Hope: 4, Must: 2}}).WeeklyTarget())
	assert.Equal(t, 2, (&StaffProfile{WeeklyWorkCount: WeeklyWorkCount{Must: 2}}).WeeklyTarget())
	assert.Equal(t, 5, (&StaffProfile{}).WeeklyTarget())
}

func TestOperatingDates_NoRule(t *testing.T) {
	month, err := ParseMonth("2026-06")
	require.NoError(t, err)

	dates, err := OperatingDates(month, "")
	require.NoError(t, err)
	assert.Len(t, dates, 30)
}

func TestOperatingDates_ClosedWeekends(t *testing.T) {
	month, err := ParseMonth("2026-06")
	require.NoError(t, err)

	dates, err := OperatingDates(month, "FREQ=WEEKLY;BYDAY=SA,SU")
	require.NoError(t, err)

	// June 2026 has 4 Saturdays and 4 Sundays
	assert.Len(t, dates, 22)
	for _, date := range dates {
		weekday := date.Weekday()
		assert.NotEqual(t, 0, weekday)
		assert.NotEqual(t, 6, weekday)
	}
}

func TestOperatingDates_InvalidRule(t *testing.T) {
	month, err := ParseMonth("2026-06")
	require.NoError(t, err)

	_, err = OperatingDates(month, "FREQ=BOGUS")
	require.Error(t, err)

	var cfgErr *ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestStaffSchedule_SlotOn(t *testing.T) {
	schedule := StaffSchedule{
		StaffID: "s1",
		Shifts: []ShiftAssignment{
			{Date: "2026-06-07", Slot: "day"},
			{Date: "2026-06-08", Slot: ""},
		},
	}

	assert.Equal(t, "day", schedule.SlotOn("2026-06-07"))
	assert.Equal(t, "", schedule.SlotOn("2026-06-08"))
	assert.Equal(t, "", schedule.SlotOn("2026-06-09"))
}

func validTestConfig() *FacilityConfig {
	return &FacilityConfig{
		Staff: []StaffProfile{
			{ID: "s1", Name: "Aiko", TimeSlotPreference: PreferenceAny},
		},
		TimeSlots: []TimeSlotDefinition{
			{Name: "day", Start: "09:00", End: "17:00", RestHours: 8},
		},
		Requirements: map[string]DailyRequirement{
			"day": {TotalStaff: 1},
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validTestConfig().Validate())
}

func TestValidate_DuplicateSlotNames(t *testing.T) {
	cfg := validTestConfig()
	cfg.TimeSlots = append(cfg.TimeSlots, TimeSlotDefinition{Name: "day", Start: "10:00", End: "18:00"})

	err := cfg.Validate()
	require.Error(t, err)

	var cfgErr *ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestValidate_RequirementForUndefinedSlot(t *testing.T) {
	cfg := validTestConfig()
	cfg.Requirements["evening"] = DailyRequirement{TotalStaff: 1}

	var cfgErr *ConfigurationError
	assert.ErrorAs(t, cfg.Validate(), &cfgErr)
}

func TestValidate_BadClockFormat(t *testing.T) {
	cfg := validTestConfig()
	cfg.TimeSlots[0].Start = "9am"

	var cfgErr *ConfigurationError
	assert.ErrorAs(t, cfg.Validate(), &cfgErr)
}

func TestValidate_DuplicateStaffIDs(t *testing.T) {
	cfg := validTestConfig()
	cfg.Staff = append(cfg.Staff, StaffProfile{ID: "s1", Name: "Ben"})

	var cfgErr *ConfigurationError
	assert.ErrorAs(t, cfg.Validate(), &cfgErr)
}

func TestValidate_PreferenceNamesUndefinedSlot(t *testing.T) {
	cfg := validTestConfig()
	cfg.Staff[0].TimeSlotPreference = "twilight"

	var cfgErr *ConfigurationError
	assert.ErrorAs(t, cfg.Validate(), &cfgErr)
}

func TestValidate_BadClosedDaysRule(t *testing.T) {
	cfg := validTestConfig()
	cfg.Requirements["day"] = DailyRequirement{TotalStaff: 1, ClosedDays: "NOT-A-RULE"}

	var cfgErr *ConfigurationError
	assert.ErrorAs(t, cfg.Validate(), &cfgErr)
}
