package util

import "time"

// LastDayOfMonth returns the number of days in the given month.
func LastDayOfMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampedDate returns the date for a target day in a given month, handling
// months with fewer days (e.g. day 31 in February returns Feb 28/29).
// Month may be out of the 1-12 range; it normalizes the way time.Date does.
func ClampedDate(year int, month time.Month, targetDay int) time.Time {
	norm := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	lastDay := LastDayOfMonth(norm.Year(), norm.Month())

	actualDay := targetDay
	if actualDay > lastDay {
		actualDay = lastDay
	}

	return time.Date(norm.Year(), norm.Month(), actualDay, 0, 0, 0, 0, time.UTC)
}

// MonthWindow returns the UTC half-open interval [first-of-month,
// first-of-next-month) for the given year and month.
func MonthWindow(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
