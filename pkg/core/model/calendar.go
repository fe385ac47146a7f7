package model

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// Month identifies a target month for diagnosis or evaluation.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses a "YYYY-MM" string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, NewInputError("invalid target month %q: must be YYYY-MM", s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Days returns the number of calendar days in the month.
func (m Month) Days() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Date returns the date for the given day of the month (1-based).
func (m Month) Date(day int) Date {
	return Date(time.Date(m.Year, m.Month, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02"))
}

// Dates returns every date of the month in order.
func (m Month) Dates() []Date {
	days := m.Days()
	dates := make([]Date, days)
	for day := 1; day <= days; day++ {
		dates[day-1] = m.Date(day)
	}
	return dates
}

// Contains reports whether the given date falls inside the month.
func (m Month) Contains(date Date) bool {
	t, err := date.Time()
	if err != nil {
		return false
	}
	return t.Year() == m.Year && t.Month() == m.Month
}

// Date is a calendar date in YYYY-MM-DD form.
type Date string

func (d Date) String() string { return string(d) }

// Time parses the date. Dates are treated as UTC calendar days.
func (d Date) Time() (time.Time, error) {
	return time.Parse("2006-01-02", string(d))
}

// Weekday returns the weekday of the date (0=Sunday .. 6=Saturday).
// Invalid dates return -1.
func (d Date) Weekday() int {
	t, err := d.Time()
	if err != nil {
		return -1
	}
	return int(t.Weekday())
}

// OperatingDates returns the dates of the month on which a slot with
// the given closed-days rule operates. An empty rule means every day.
// A malformed rule is a ConfigurationError.
func OperatingDates(m Month, closedDays string) ([]Date, error) {
	if closedDays == "" {
		return m.Dates(), nil
	}

	rule, err := rrule.StrToRRule(closedDays)
	if err != nil {
		return nil, NewConfigurationError("invalid closedDays rule %q: %v", closedDays, err)
	}

	start := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(m.Year, m.Month, m.Days(), 23, 59, 59, 0, time.UTC)
	rule.DTStart(start)

	closed := make(map[Date]bool)
	for _, occurrence := range rule.Between(start, end, true) {
		closed[Date(occurrence.Format("2006-01-02"))] = true
	}

	operating := make([]Date, 0, m.Days())
	for _, date := range m.Dates() {
		if !closed[date] {
			operating = append(operating, date)
		}
	}
	return operating, nil
}

// parseClock parses "HH:MM" into minutes since midnight.
func parseClock(s string) (int, bool) {
	var h, min int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &min); err != nil {
		return 0, false
	}
	if h < 0 || h > 23 || min < 0 || min > 59 {
		return 0, false
	}
	return h*60 + min, true
}

// ClockMinutes exposes a slot time as minutes since midnight for rest
// gap calculations. Returns false for malformed times.
func ClockMinutes(s string) (int, bool) {
	return parseClock(s)
}
