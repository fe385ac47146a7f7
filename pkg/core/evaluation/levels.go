package evaluation

// levelFor maps each violation type to its constraint level.
func levelFor(t ViolationType) ConstraintLevel {
	switch t {
	case ViolationRestDeficit:
		return LevelAbsolute
	case ViolationStaffShortage, ViolationQualificationMissing, ViolationSlotRestriction:
		return LevelOperational
	case ViolationConsecutiveWork, ViolationLeaveIgnored:
		return LevelEffort
	default:
		return LevelInformational
	}
}

// penaltyFor returns the score deduction for one violation at the given
// level. Level 1 carries the full score: a single absolute violation
// zeroes the schedule regardless of anything else.
func penaltyFor(level ConstraintLevel) int {
	switch level {
	case LevelAbsolute:
		return 100
	case LevelOperational:
		return 12
	case LevelEffort:
		return 4
	default:
		return 0
	}
}

// scoreFrom computes the final score from a violation set. Any
// level-1 violation forces 0; otherwise penalties are summed and the
// result clamped to [0, 100].
func scoreFrom(violations []ConstraintViolation) int {
	total := 0
	for _, v := range violations {
		if v.Level == LevelAbsolute {
			return 0
		}
		total += v.Penalty
	}
	score := 100 - total
	if score < 0 {
		return 0
	}
	return score
}

// summarizeLevels builds the per-level breakdown. Every level appears
// in the map even when empty, so consumers never nil-check.
func summarizeLevels(violations []ConstraintViolation) map[ConstraintLevel]LevelSummary {
	breakdown := map[ConstraintLevel]LevelSummary{
		LevelAbsolute:      {},
		LevelOperational:   {},
		LevelEffort:        {},
		LevelInformational: {},
	}
	for _, v := range violations {
		summary := breakdown[v.Level]
		summary.Count++
		summary.Penalty += v.Penalty
		breakdown[v.Level] = summary
	}
	return breakdown
}
