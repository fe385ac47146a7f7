package diagnosis

import (
	"math"

	"github.com/tkhrsasaki/shiftsense/pkg/core/model"
)

// StaffMonthlyCapacity returns the number of person-days one staff
// member can supply over the month: the count of days they can actually
// work (weekday availability and unavailable dates), capped by their
// weekly target scaled to the month length.
func StaffMonthlyCapacity(staff *model.StaffProfile, month model.Month) int {
	schedulable := 0
	for _, date := range month.Dates() {
		if staff.CanWorkDate(date) {
			schedulable++
		}
	}

	target := int(math.Round(float64(staff.WeeklyTarget()) * float64(month.Days()) / 7.0))
	if schedulable < target {
		return schedulable
	}
	return target
}

// CalculateBalance computes the supply/demand balance for the target
// month.
//
// Supply: each staff member's monthly capacity is partitioned between
// the slots their preference permits, in TimeSlots order; a member
// restricted to a single slot contributes all of their capacity to it.
// Partitioning is integral: base share plus one extra day to the
// earliest eligible slots until the remainder is spent, so the per-slot
// supplies always sum exactly to the member's capacity.
//
// Demand: requirement totalStaff times the slot's operating days, per
// its explicit closedDays rule.
//
// A requirement for an undefined slot is a ConfigurationError. Zero
// staff is not an error: every slot simply reports zero supply.
func CalculateBalance(cfg *model.FacilityConfig, month model.Month) (*SupplyDemandBalance, error) {
	balance := &SupplyDemandBalance{
		ByTimeSlot: make(map[string]TimeSlotBalance, len(cfg.Requirements)),
	}

	// Demand per slot.
	demandBySlot := make(map[string]int, len(cfg.Requirements))
	for slotName, req := range cfg.Requirements {
		if _, ok := cfg.SlotByName(slotName); !ok {
			return nil, model.NewConfigurationError("requirement references undefined time slot %q", slotName)
		}
		operating, err := model.OperatingDates(month, req.ClosedDays)
		if err != nil {
			return nil, err
		}
		demandBySlot[slotName] = req.TotalStaff * len(operating)
	}

	// Supply per slot.
	supplyBySlot := make(map[string]int, len(cfg.TimeSlots))
	for i := range cfg.Staff {
		staff := &cfg.Staff[i]
		capacity := StaffMonthlyCapacity(staff, month)
		if capacity == 0 {
			continue
		}

		var eligible []string
		for _, slot := range cfg.TimeSlots {
			if staff.CanWorkSlot(slot) {
				eligible = append(eligible, slot.Name)
			}
		}
		if len(eligible) == 0 {
			continue
		}

		base := capacity / len(eligible)
		remainder := capacity % len(eligible)
		for idx, slotName := range eligible {
			share := base
			if idx < remainder {
				share++
			}
			supplyBySlot[slotName] += share
		}
	}

	for slotName, demand := range demandBySlot {
		supply := supplyBySlot[slotName]
		balance.ByTimeSlot[slotName] = TimeSlotBalance{
			Supply:          supply,
			Demand:          demand,
			Balance:         supply - demand,
			FulfillmentRate: fulfillmentRate(supply, demand),
		}
		balance.TotalSupply += supply
		balance.TotalDemand += demand
	}

	// Slots with no requirement still carry supply so that the sum
	// property (per-slot balances sum to the aggregate) holds exactly.
	for _, slot := range cfg.TimeSlots {
		if _, hasRequirement := cfg.Requirements[slot.Name]; hasRequirement {
			continue
		}
		supply := supplyBySlot[slot.Name]
		if supply == 0 {
			continue
		}
		balance.ByTimeSlot[slot.Name] = TimeSlotBalance{
			Supply:          supply,
			Demand:          0,
			Balance:         supply,
			FulfillmentRate: fulfillmentRate(supply, 0),
		}
		balance.TotalSupply += supply
	}

	balance.Balance = balance.TotalSupply - balance.TotalDemand
	return balance, nil
}

// fulfillmentRate is supply/demand as a percentage. Zero demand
// reports 100: a slot nobody needs is trivially fulfilled.
func fulfillmentRate(supply, demand int) int {
	if demand == 0 {
		return 100
	}
	return int(math.Round(float64(supply) / float64(demand) * 100))
}
