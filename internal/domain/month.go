package domain

import (
	"fmt"
	"time"
)

// MonthKey identifies a calendar month as a YYYY-MM string.
type MonthKey struct {
	Year  int
	Month time.Month
}

// ParseMonthKey parses a YYYY-MM string. Anything else, including valid
// dates with a day component, fails with ErrInvalidMonthKey.
func ParseMonthKey(key string) (MonthKey, error) {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return MonthKey{}, ErrInvalidMonthKey
	}
	return MonthKey{Year: t.Year(), Month: t.Month()}, nil
}

// String renders the key back to YYYY-MM.
func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

// Contains reports whether t falls within the month in UTC.
func (k MonthKey) Contains(t time.Time) bool {
	u := t.UTC()
	return u.Year() == k.Year && u.Month() == k.Month
}
