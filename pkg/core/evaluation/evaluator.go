package evaluation

import (
	"sort"
	"time"

	"github.com/tkhrsasaki/shiftsense/pkg/core/model"
)

// Checker inspects one aspect of a generated schedule and reports the
// violations it finds. Checkers fill Type, Description, Slot and the
// affected fields; the evaluator assigns Level and Penalty so the
// grading policy lives in one place.
type Checker interface {
	Name() string
	Check(in *Input) []ConstraintViolation
}

// Input carries the evaluation subject plus indices prebuilt once so
// individual checkers stay simple and cheap.
type Input struct {
	Config   *model.FacilityConfig
	Schedule *model.Schedule
	Month    model.Month

	// Assigned maps date -> slot name -> staff IDs working that slot,
	// in Schedule.Staff order.
	Assigned map[model.Date]map[string][]string

	// WorkDates maps staff ID -> their working dates, ascending.
	WorkDates map[string][]model.Date

	// SlotByDate maps staff ID -> date -> assigned slot name.
	SlotByDate map[string]map[model.Date]string

	// Operating maps slot name -> the dates the slot runs this month.
	Operating map[string][]model.Date
}

// defaultCheckers run in a fixed order so the violation list is
// reproducible for identical input.
func defaultCheckers() []Checker {
	return []Checker{
		restChecker{},
		staffingChecker{},
		qualificationChecker{},
		eligibilityChecker{},
		consecutiveChecker{},
		leaveChecker{},
	}
}

// Evaluate grades a generated schedule against the facility
// configuration. Constraint violations are findings in the result,
// never errors; the returned error is reserved for malformed input
// (InputError) or a broken configuration (ConfigurationError).
func Evaluate(cfg *model.FacilityConfig, schedule *model.Schedule) (*EvaluationResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	in, err := buildInput(cfg, schedule)
	if err != nil {
		return nil, err
	}

	violations := []ConstraintViolation{}
	for _, checker := range defaultCheckers() {
		for _, v := range checker.Check(in) {
			v.Level = levelFor(v.Type)
			v.Penalty = penaltyFor(v.Level)
			violations = append(violations, v)
		}
	}

	sort.SliceStable(violations, func(i, j int) bool {
		if violations[i].Level != violations[j].Level {
			return violations[i].Level < violations[j].Level
		}
		return firstDate(violations[i]) < firstDate(violations[j])
	})

	return &EvaluationResult{
		Score:           scoreFrom(violations),
		FulfillmentRate: fulfillment(in),
		Violations:      violations,
		LevelBreakdown:  summarizeLevels(violations),
		EvaluatedAt:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// buildInput validates the schedule's referential integrity and builds
// the lookup indices. Unknown staff or slot references and out-of-month
// dates are input errors: the schedule does not belong to this
// configuration and month.
func buildInput(cfg *model.FacilityConfig, schedule *model.Schedule) (*Input, error) {
	month, err := model.ParseMonth(schedule.TargetMonth)
	if err != nil {
		return nil, err
	}

	in := &Input{
		Config:     cfg,
		Schedule:   schedule,
		Month:      month,
		Assigned:   make(map[model.Date]map[string][]string),
		WorkDates:  make(map[string][]model.Date),
		SlotByDate: make(map[string]map[model.Date]string),
		Operating:  make(map[string][]model.Date),
	}

	for slotName, req := range cfg.Requirements {
		operating, err := model.OperatingDates(month, req.ClosedDays)
		if err != nil {
			return nil, err
		}
		in.Operating[slotName] = operating
	}

	for i := range schedule.Staff {
		staffSchedule := &schedule.Staff[i]
		if cfg.StaffByID(staffSchedule.StaffID) == nil {
			return nil, model.NewInputError("schedule references unknown staff %q", staffSchedule.StaffID)
		}
		if _, dup := in.SlotByDate[staffSchedule.StaffID]; dup {
			return nil, model.NewInputError("schedule lists staff %q twice", staffSchedule.StaffID)
		}
		in.SlotByDate[staffSchedule.StaffID] = make(map[model.Date]string)

		for _, shift := range staffSchedule.Shifts {
			if !month.Contains(shift.Date) {
				return nil, model.NewInputError(
					"shift date %s for staff %q is outside target month %s",
					shift.Date, staffSchedule.StaffID, schedule.TargetMonth)
			}
			if shift.IsRest() {
				continue
			}
			if _, ok := cfg.SlotByName(shift.Slot); !ok {
				return nil, model.NewInputError(
					"shift for staff %q references undefined time slot %q",
					staffSchedule.StaffID, shift.Slot)
			}

			if in.Assigned[shift.Date] == nil {
				in.Assigned[shift.Date] = make(map[string][]string)
			}
			in.Assigned[shift.Date][shift.Slot] = append(in.Assigned[shift.Date][shift.Slot], staffSchedule.StaffID)
			in.WorkDates[staffSchedule.StaffID] = append(in.WorkDates[staffSchedule.StaffID], shift.Date)
			in.SlotByDate[staffSchedule.StaffID][shift.Date] = shift.Slot
		}

		sort.Slice(in.WorkDates[staffSchedule.StaffID], func(a, b int) bool {
			return in.WorkDates[staffSchedule.StaffID][a] < in.WorkDates[staffSchedule.StaffID][b]
		})
	}

	return in, nil
}

// fulfillment is filled positions over required positions, as a
// percentage. Overstaffing one slot never compensates for another:
// each slot/day contributes at most its requirement. Zero demand
// reports 100.
func fulfillment(in *Input) int {
	required := 0
	filled := 0
	for slotName, req := range in.Config.Requirements {
		for _, date := range in.Operating[slotName] {
			required += req.TotalStaff
			assigned := len(in.Assigned[date][slotName])
			if assigned > req.TotalStaff {
				assigned = req.TotalStaff
			}
			filled += assigned
		}
	}
	if required == 0 {
		return 100
	}
	return int(float64(filled) / float64(required) * 100)
}

func firstDate(v ConstraintViolation) string {
	if len(v.AffectedDates) == 0 {
		return ""
	}
	return v.AffectedDates[0]
}
