package model

// ShiftAssignment assigns one staff member to one time slot on one
// date. Dates without an assignment (or with an empty slot name) are
// rest days.
type ShiftAssignment struct {
	Date Date   `json:"date" validate:"required"`
	Slot string `json:"slot"`
}

// IsRest reports whether the assignment is a rest marker rather than a
// working shift.
func (a ShiftAssignment) IsRest() bool {
	return a.Slot == ""
}

// StaffSchedule is one staff member's month of assignments.
type StaffSchedule struct {
	StaffID string            `json:"staffId" validate:"required"`
	Shifts  []ShiftAssignment `json:"shifts" validate:"dive"`
}

// Schedule is a generated schedule for one month, produced by an
// external generator and evaluated by this core.
type Schedule struct {
	TargetMonth string          `json:"targetMonth" validate:"required"`
	Staff       []StaffSchedule `json:"staff" validate:"dive"`
}

// SlotOn returns the slot a staff schedule assigns on the given date,
// or "" for rest.
func (s *StaffSchedule) SlotOn(date Date) string {
	for _, shift := range s.Shifts {
		if shift.Date == date {
			return shift.Slot
		}
	}
	return ""
}
