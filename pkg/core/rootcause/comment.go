package rootcause

import (
	"fmt"
	"strings"
)

// commentCauseLimit caps how many causes the prose summary mentions.
const commentCauseLimit = 3

// composeComment renders the most significant causes (already sorted
// by shortage) as a short prose paragraph. Empty input yields an empty
// string, not a "no issues" boilerplate line.
func composeComment(causes []RootCause) string {
	if len(causes) == 0 {
		return ""
	}

	limit := commentCauseLimit
	if len(causes) < limit {
		limit = len(causes)
	}

	lines := make([]string, 0, limit)
	for _, cause := range causes[:limit] {
		line := cause.Description
		if cause.Evidence != nil {
			line = fmt.Sprintf("%s (short by %d)", strings.TrimSuffix(line, "."), cause.Evidence.Shortage)
		}
		lines = append(lines, line)
	}

	return "Main factors behind the remaining issues: " + strings.Join(lines, " ")
}
