package model

// TimeSlotPreference restricts which time slots a staff member may be
// assigned to. It is a hard eligibility filter, not a soft preference.
//
// Recognised values:
//   - PreferenceAny: the member may work any slot
//   - PreferenceNightOnly: the member may only work night slots
//   - any other non-empty value: the name of the single slot the member
//     may work (e.g. "day")
type TimeSlotPreference string

const (
	PreferenceAny       TimeSlotPreference = "any"
	PreferenceNightOnly TimeSlotPreference = "night-shift-only"
)

// WeeklyWorkCount is a staff member's weekly work-day target.
// Hope is the desired count, Must the contractual minimum.
type WeeklyWorkCount struct {
	Hope int `json:"hope" validate:"min=0,max=7"`
	Must int `json:"must" validate:"min=0,max=7"`
}

// StaffProfile describes one staff member's identity and scheduling
// constraints. Read-only input to the core.
type StaffProfile struct {
	ID                     string             `json:"id" validate:"required"`
	Name                   string             `json:"name" validate:"required"`
	Position               string             `json:"position"`
	Certifications         []string           `json:"certifications"`
	TimeSlotPreference     TimeSlotPreference `json:"timeSlotPreference"`
	MaxConsecutiveWorkDays int                `json:"maxConsecutiveWorkDays" validate:"min=0"`
	WeeklyWorkCount        WeeklyWorkCount    `json:"weeklyWorkCount"`

	// AvailableWeekdays lists workable weekdays (0=Sunday .. 6=Saturday).
	// Empty means every weekday is workable.
	AvailableWeekdays []int `json:"availableWeekdays" validate:"dive,min=0,max=6"`

	// UnavailableDates lists concrete dates (YYYY-MM-DD) the member can
	// never work, regardless of weekday.
	UnavailableDates []string `json:"unavailableDates"`
}

// WeeklyTarget returns the operative weekly work-day target: Hope when
// set, otherwise Must, otherwise a default of 5.
func (s *StaffProfile) WeeklyTarget() int {
	if s.WeeklyWorkCount.Hope > 0 {
		return s.WeeklyWorkCount.Hope
	}
	if s.WeeklyWorkCount.Must > 0 {
		return s.WeeklyWorkCount.Must
	}
	return 5
}

// CanWorkSlot reports whether the member's time-slot preference permits
// working the given slot.
func (s *StaffProfile) CanWorkSlot(slot TimeSlotDefinition) bool {
	switch s.TimeSlotPreference {
	case "", PreferenceAny:
		return true
	case PreferenceNightOnly:
		return slot.IsNight()
	default:
		return string(s.TimeSlotPreference) == slot.Name
	}
}

// IsRestricted reports whether the member carries any time-slot
// restriction at all.
func (s *StaffProfile) IsRestricted() bool {
	return s.TimeSlotPreference != "" && s.TimeSlotPreference != PreferenceAny
}

// HasCertification reports whether the member holds the named
// qualification tag.
func (s *StaffProfile) HasCertification(name string) bool {
	for _, c := range s.Certifications {
		if c == name {
			return true
		}
	}
	return false
}

// CanWorkDate reports whether the member's weekday availability and
// unavailable-date list permit working the given date.
func (s *StaffProfile) CanWorkDate(date Date) bool {
	for _, d := range s.UnavailableDates {
		if d == date.String() {
			return false
		}
	}
	if len(s.AvailableWeekdays) == 0 {
		return true
	}
	weekday := date.Weekday()
	for _, w := range s.AvailableWeekdays {
		if w == weekday {
			return true
		}
	}
	return false
}

// TimeSlotDefinition defines one named shift time slot. The order of
// slots in FacilityConfig.TimeSlots is significant: it fixes the
// deterministic distribution of split staff capacity.
type TimeSlotDefinition struct {
	Name  string `json:"name" validate:"required"`
	Start string `json:"start" validate:"required"` // HH:MM
	End   string `json:"end" validate:"required"`   // HH:MM

	// RestHours is the mandated rest period after working this slot.
	RestHours int `json:"restHours" validate:"min=0"`
}

// IsNight reports whether the slot crosses midnight (its end time is
// not after its start time). Night detection drives the
// "night-shift-only" preference.
func (t TimeSlotDefinition) IsNight() bool {
	start, okS := parseClock(t.Start)
	end, okE := parseClock(t.End)
	if !okS || !okE {
		return false
	}
	return end <= start
}

// RoleRequirement demands a minimum count of staff holding a role.
type RoleRequirement struct {
	Role  string `json:"role" validate:"required"`
	Count int    `json:"count" validate:"min=1"`
}

// QualificationRequirement demands a minimum count of staff holding a
// qualification tag.
type QualificationRequirement struct {
	Qualification string `json:"qualification" validate:"required"`
	Count         int    `json:"count" validate:"min=1"`
}

// DailyRequirement is the per-day staffing demand for one time slot.
type DailyRequirement struct {
	TotalStaff             int                        `json:"totalStaff" validate:"min=0"`
	RequiredRoles          []RoleRequirement          `json:"requiredRoles" validate:"dive"`
	RequiredQualifications []QualificationRequirement `json:"requiredQualifications" validate:"dive"`

	// ClosedDays is an optional RRULE (RFC 5545) naming non-operating
	// days for this slot, e.g. "FREQ=WEEKLY;BYDAY=SA,SU" for a slot
	// that does not run on weekends. Empty means the slot operates
	// every day of the month. The closed-day policy is always explicit
	// here, never inferred from slot names.
	ClosedDays string `json:"closedDays"`
}

// LeaveRequests maps staff ID -> date (YYYY-MM-DD) -> leave kind
// (e.g. "requested", "paid", "training"). The kind is informational.
type LeaveRequests map[string]map[string]string

// FacilityConfig is the full staffing configuration of one facility,
// loaded by the caller and passed to every core operation as an
// explicit, immutable snapshot.
type FacilityConfig struct {
	Staff         []StaffProfile              `json:"staff" validate:"dive"`
	TimeSlots     []TimeSlotDefinition        `json:"timeSlots" validate:"dive"`
	Requirements  map[string]DailyRequirement `json:"requirements" validate:"dive"`
	LeaveRequests LeaveRequests               `json:"leaveRequests"`
}

// SlotByName returns the slot definition with the given name, or false
// if no such slot exists.
func (c *FacilityConfig) SlotByName(name string) (TimeSlotDefinition, bool) {
	for _, slot := range c.TimeSlots {
		if slot.Name == name {
			return slot, true
		}
	}
	return TimeSlotDefinition{}, false
}

// StaffByID returns the staff profile with the given ID, or nil.
func (c *FacilityConfig) StaffByID(id string) *StaffProfile {
	for i := range c.Staff {
		if c.Staff[i].ID == id {
			return &c.Staff[i]
		}
	}
	return nil
}

// StaffNameByID resolves a staff ID to a display name, falling back to
// the raw ID for unknown members (e.g. leave entries for departed staff).
func (c *FacilityConfig) StaffNameByID(id string) string {
	if s := c.StaffByID(id); s != nil {
		return s.Name
	}
	return id
}
