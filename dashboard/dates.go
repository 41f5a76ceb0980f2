// Package dashboard holds the filters, derived counts and in-memory joins
// behind the doctor portal views. Everything here is pure: callers fetch
// rows with gorm and hand them in together with a reference time.
package dashboard

import (
	"fmt"
	"time"
)

// DateLayout is the storage format of every date-only column.
const DateLayout = "2006-01-02"

// ParseDate parses a date-only value. Timestamps are accepted and truncated
// to their calendar date. The result is midnight UTC.
func ParseDate(s string) (time.Time, error) {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders the calendar date of t in t's own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// CalendarDay returns midnight UTC of the calendar date t falls on in its
// own location.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the signed number of whole calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(CalendarDay(b).Sub(CalendarDay(a)).Hours() / 24)
}

// WeekDates returns the seven dates of the Sunday-start week containing ref.
func WeekDates(ref time.Time) []string {
	start := CalendarDay(ref).AddDate(0, 0, -int(ref.Weekday()))
	dates := make([]string, 7)
	for i := range dates {
		dates[i] = FormatDate(start.AddDate(0, 0, i))
	}
	return dates
}

// ShiftWeek moves a week start by the given number of weeks.
func ShiftWeek(weekStart time.Time, weeks int) time.Time {
	return CalendarDay(weekStart).AddDate(0, 0, 7*weeks)
}
