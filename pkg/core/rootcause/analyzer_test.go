package rootcause

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkhrsasaki/shiftsense/pkg/core/evaluation"
	"github.com/tkhrsasaki/shiftsense/pkg/core/model"
)

func june2026(t *testing.T) model.Month {
	t.Helper()
	month, err := model.ParseMonth("2026-06")
	require.NoError(t, err)
	return month
}

// shortageConfig has a single day slot needing 2 staff every day and an
// empty roster, so demand can never be met.
func shortageConfig(staff ...model.StaffProfile) *model.FacilityConfig {
	return &model.FacilityConfig{
		Staff: staff,
		TimeSlots: []model.TimeSlotDefinition{
			{Name: "day", Start: "09:00", End: "17:00", RestHours: 8},
			{Name: "night", Start: "22:00", End: "06:00", RestHours: 11},
		},
		Requirements: map[string]model.DailyRequirement{
			"day":   {TotalStaff: 2},
			"night": {TotalStaff: 1},
		},
	}
}

func TestAnalyze_AggregateShortage(t *testing.T) {
	cfg := shortageConfig()
	violations := []evaluation.ConstraintViolation{
		{Type: evaluation.ViolationStaffShortage, Slot: "day", AffectedDates: []string{"2026-06-01"}},
		{Type: evaluation.ViolationStaffShortage, Slot: "day", AffectedDates: []string{"2026-06-02"}},
	}

	analysis, err := Analyze(cfg, june2026(t), violations)
	require.NoError(t, err)
	require.Len(t, analysis.Causes, 1)

	cause := analysis.Causes[0]
	assert.Equal(t, "staff-shortage", cause.ID)
	assert.Equal(t, CauseStaffShortage, cause.CauseType)
	require.NotNil(t, cause.Evidence)
	assert.Equal(t, 90, cause.Evidence.Required)
	assert.Equal(t, 0, cause.Evidence.Available)
	assert.Equal(t, 90, cause.Evidence.Shortage)
	assert.Equal(t, []string{"2026-06-01", "2026-06-02"}, cause.AffectedDates)
	assert.NotEmpty(t, analysis.AICommentAddition)
}

func TestAnalyze_SlotScopedShortage(t *testing.T) {
	// Plenty of aggregate capacity, but everyone is locked to night:
	// day shortages trace to the slot, not the roster size.
	cfg := shortageConfig(
		model.StaffProfile{ID: "s1", Name: "Aiko", TimeSlotPreference: model.PreferenceNightOnly},
		model.StaffProfile{ID: "s2", Name: "Ben", TimeSlotPreference: model.PreferenceNightOnly},
		model.StaffProfile{ID: "s3", Name: "Chie", TimeSlotPreference: model.PreferenceNightOnly},
		model.StaffProfile{ID: "s4", Name: "Daniel", TimeSlotPreference: model.PreferenceNightOnly},
		model.StaffProfile{ID: "s5", Name: "Emi", TimeSlotPreference: model.PreferenceNightOnly},
	)
	violations := []evaluation.ConstraintViolation{
		{Type: evaluation.ViolationStaffShortage, Slot: "day", AffectedDates: []string{"2026-06-01"}},
	}

	analysis, err := Analyze(cfg, june2026(t), violations)
	require.NoError(t, err)
	require.Len(t, analysis.Causes, 1)

	cause := analysis.Causes[0]
	assert.Equal(t, "slot-capacity-day", cause.ID)
	assert.Equal(t, CauseTimeSlotConstraint, cause.CauseType)
	require.NotNil(t, cause.Evidence)
	assert.Equal(t, 60, cause.Evidence.Required)
	assert.Equal(t, 0, cause.Evidence.Available)
	assert.Equal(t, 60, cause.Evidence.Shortage)
}

func TestAnalyze_GenerationGapWhenCapacitySufficient(t *testing.T) {
	// 6 unrestricted staff cover the demand comfortably; a shortage
	// violation must be blamed on the generation, without evidence.
	var staff []model.StaffProfile
	for _, s := range []struct{ id, name string }{
		{"s1", "Aiko"}, {"s2", "Ben"}, {"s3", "Chie"},
		{"s4", "Daniel"}, {"s5", "Emi"}, {"s6", "Fumio"},
	} {
		staff = append(staff, model.StaffProfile{ID: s.id, Name: s.name, TimeSlotPreference: model.PreferenceAny})
	}
	cfg := shortageConfig(staff...)
	violations := []evaluation.ConstraintViolation{
		{Type: evaluation.ViolationStaffShortage, Slot: "day", AffectedDates: []string{"2026-06-03"}},
	}

	analysis, err := Analyze(cfg, june2026(t), violations)
	require.NoError(t, err)
	require.Len(t, analysis.Causes, 1)

	cause := analysis.Causes[0]
	assert.Equal(t, "generation-gap-day", cause.ID)
	assert.Equal(t, CauseOther, cause.CauseType)
	assert.Nil(t, cause.Evidence)
}

func TestAnalyze_LeaveConflict(t *testing.T) {
	cfg := shortageConfig(
		model.StaffProfile{ID: "s1", Name: "Aiko", TimeSlotPreference: model.PreferenceAny},
	)
	cfg.LeaveRequests = model.LeaveRequests{
		"s1": {"2026-06-10": "requested"},
	}
	violations := []evaluation.ConstraintViolation{
		{
			Type:          evaluation.ViolationLeaveIgnored,
			AffectedStaff: []string{"Aiko"},
			AffectedDates: []string{"2026-06-10"},
		},
	}

	analysis, err := Analyze(cfg, june2026(t), violations)
	require.NoError(t, err)
	require.Len(t, analysis.Causes, 1)

	cause := analysis.Causes[0]
	assert.Equal(t, "leave-conflict-2026-06-10", cause.ID)
	assert.Equal(t, CauseLeaveConflict, cause.CauseType)
	assert.Equal(t, []string{"Aiko"}, cause.AffectedStaff)
	require.NotNil(t, cause.Evidence)
	// Demand on the date is 3 (2 day + 1 night); honoring the leave
	// request leaves nobody available.
	assert.Equal(t, 3, cause.Evidence.Required)
	assert.Equal(t, 0, cause.Evidence.Available)
	assert.Equal(t, 3, cause.Evidence.Shortage)
}

func TestAnalyze_GeneratorFaults(t *testing.T) {
	cfg := shortageConfig(
		model.StaffProfile{ID: "s1", Name: "Aiko", TimeSlotPreference: model.PreferenceAny},
	)
	violations := []evaluation.ConstraintViolation{
		{
			Type:          evaluation.ViolationRestDeficit,
			AffectedStaff: []string{"Aiko"},
			AffectedDates: []string{"2026-06-10", "2026-06-11"},
		},
		{
			Type:          evaluation.ViolationConsecutiveWork,
			AffectedStaff: []string{"Aiko"},
			AffectedDates: []string{"2026-06-15", "2026-06-16", "2026-06-17"},
		},
	}

	analysis, err := Analyze(cfg, june2026(t), violations)
	require.NoError(t, err)
	require.Len(t, analysis.Causes, 2)

	for _, cause := range analysis.Causes {
		assert.Equal(t, CauseOther, cause.CauseType)
		assert.Nil(t, cause.Evidence)
	}
}

func TestAnalyze_EvidenceInvariant(t *testing.T) {
	cfg := shortageConfig(
		model.StaffProfile{ID: "s1", Name: "Aiko", TimeSlotPreference: model.PreferenceNightOnly},
	)
	violations := []evaluation.ConstraintViolation{
		{Type: evaluation.ViolationStaffShortage, Slot: "day", AffectedDates: []string{"2026-06-01"}},
		{Type: evaluation.ViolationSlotRestriction, Slot: "day", AffectedStaff: []string{"Aiko"}, AffectedDates: []string{"2026-06-02"}},
	}

	analysis, err := Analyze(cfg, june2026(t), violations)
	require.NoError(t, err)
	require.NotEmpty(t, analysis.Causes)

	for _, cause := range analysis.Causes {
		if cause.Evidence == nil {
			continue
		}
		assert.Equal(t, cause.Evidence.Required-cause.Evidence.Available, cause.Evidence.Shortage)
		assert.Positive(t, cause.Evidence.Shortage)
	}
}

func TestAnalyze_CausesOrderedByShortage(t *testing.T) {
	cfg := shortageConfig(
		model.StaffProfile{ID: "s1", Name: "Aiko", TimeSlotPreference: model.PreferenceAny},
	)
	cfg.LeaveRequests = model.LeaveRequests{"s1": {"2026-06-10": "requested"}}

	violations := []evaluation.ConstraintViolation{
		{Type: evaluation.ViolationStaffShortage, Slot: "day", AffectedDates: []string{"2026-06-01"}},
		{Type: evaluation.ViolationLeaveIgnored, AffectedStaff: []string{"Aiko"}, AffectedDates: []string{"2026-06-10"}},
		{Type: evaluation.ViolationRestDeficit, AffectedStaff: []string{"Aiko"}, AffectedDates: []string{"2026-06-11", "2026-06-12"}},
	}

	analysis, err := Analyze(cfg, june2026(t), violations)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(analysis.Causes), 2)

	last := int(^uint(0) >> 1)
	for _, cause := range analysis.Causes {
		assert.LessOrEqual(t, shortageOf(cause), last)
		last = shortageOf(cause)
	}
}

func TestAnalyze_NoViolationsNoCauses(t *testing.T) {
	cfg := shortageConfig(
		model.StaffProfile{ID: "s1", Name: "Aiko", TimeSlotPreference: model.PreferenceAny},
	)

	analysis, err := Analyze(cfg, june2026(t), nil)
	require.NoError(t, err)
	assert.Empty(t, analysis.Causes)
	assert.Empty(t, analysis.AICommentAddition)
}

func TestComposeComment_LimitsToTopCauses(t *testing.T) {
	causes := []RootCause{
		{Description: "First cause.", Evidence: &Evidence{Required: 10, Available: 2, Shortage: 8}},
		{Description: "Second cause.", Evidence: &Evidence{Required: 5, Available: 1, Shortage: 4}},
		{Description: "Third cause."},
		{Description: "Fourth cause."},
	}

	comment := composeComment(causes)
	assert.Contains(t, comment, "First cause (short by 8)")
	assert.Contains(t, comment, "Second cause (short by 4)")
	assert.Contains(t, comment, "Third cause.")
	assert.NotContains(t, comment, "Fourth")
}
