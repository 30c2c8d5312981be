package store

import "time"

const dateLayout = "2006-01-02"

// ParseDueDate parses a caller-supplied local calendar date. Longer strings
// (full timestamps) are accepted as long as they start with YYYY-MM-DD.
func ParseDueDate(value string) (time.Time, bool) {
	if len(value) > len(dateLayout) {
		value = value[:len(dateLayout)]
	}
	t, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders a date back in the same local calendar form.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// clampDayOfMonth limits day to the valid range of the given month, so a
// due day of 31 requested in a 30-day month lands on the 30th.
func clampDayOfMonth(year int, month time.Month, day int) int {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
	if day < 1 {
		return 1
	}
	if day > lastDay {
		return lastDay
	}
	return day
}

// installmentDueDate computes the due date of installment index (0-based):
// the configured day-of-month in the calendar month index+1 months after
// the sale month, clamped to that month's length.
func installmentDueDate(saleDate time.Time, index, dueDay int) time.Time {
	// Normalizes month overflow, e.g. December + 2 becomes February.
	monthRef := time.Date(saleDate.Year(), saleDate.Month()+time.Month(index+1), 1, 0, 0, 0, 0, time.Local)
	day := clampDayOfMonth(monthRef.Year(), monthRef.Month(), dueDay)
	return time.Date(monthRef.Year(), monthRef.Month(), day, 0, 0, 0, 0, time.Local)
}

// plusDays returns the date the given number of days after now, at midnight.
func plusDays(now time.Time, days int) time.Time {
	d := now.AddDate(0, 0, days)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.Local)
}
