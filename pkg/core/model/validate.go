package model

import (
	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate checks a facility configuration for structural and
// cross-reference consistency. Any failure is a ConfigurationError.
//
// Checks beyond struct tags:
//   - every requirement must reference a defined time slot
//   - time slot names must be unique
//   - slot start/end times must parse as HH:MM
//   - a slot-name preference must reference a defined time slot
//   - closedDays rules must parse as RRULEs
//   - staff IDs must be unique
func (c *FacilityConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return NewConfigurationError("invalid configuration: %v", err)
	}

	slotNames := make(map[string]bool, len(c.TimeSlots))
	for _, slot := range c.TimeSlots {
		if slotNames[slot.Name] {
			return NewConfigurationError("duplicate time slot %q", slot.Name)
		}
		slotNames[slot.Name] = true

		if _, ok := ClockMinutes(slot.Start); !ok {
			return NewConfigurationError("time slot %q has invalid start time %q", slot.Name, slot.Start)
		}
		if _, ok := ClockMinutes(slot.End); !ok {
			return NewConfigurationError("time slot %q has invalid end time %q", slot.Name, slot.End)
		}
	}

	for name, req := range c.Requirements {
		if !slotNames[name] {
			return NewConfigurationError("requirement references undefined time slot %q", name)
		}
		if req.ClosedDays != "" {
			if _, err := rrule.StrToRRule(req.ClosedDays); err != nil {
				return NewConfigurationError("requirement %q has invalid closedDays rule: %v", name, err)
			}
		}
	}

	staffIDs := make(map[string]bool, len(c.Staff))
	for _, staff := range c.Staff {
		if staffIDs[staff.ID] {
			return NewConfigurationError("duplicate staff ID %q", staff.ID)
		}
		staffIDs[staff.ID] = true

		switch staff.TimeSlotPreference {
		case "", PreferenceAny, PreferenceNightOnly:
		default:
			if !slotNames[string(staff.TimeSlotPreference)] {
				return NewConfigurationError(
					"staff %q has time-slot preference %q which is not a defined slot",
					staff.Name, staff.TimeSlotPreference)
			}
		}
	}

	return nil
}
