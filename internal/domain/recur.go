package domain

import (
	"time"

	"github.com/manatly/manatly-backend/internal/util"
)

// NextTrigger computes the next occurrence of a recurring transaction after
// base. The result is always strictly after base for every frequency.
//
// Monthly rules advance to the target day (the rule's dayOfMonth, or the base
// date's day when unset) in the following month; if that month is shorter the
// day clamps to the month's last day and never rolls over into the month
// after. Weekly rules with a weekday anchor advance to the next occurrence of
// that weekday, a full week when base already falls on it.
func NextTrigger(base time.Time, rule RepeatRule) time.Time {
	switch rule.Freq {
	case FrequencyWeekly:
		if rule.Weekday != nil {
			diff := (*rule.Weekday - int(base.Weekday()) + 7) % 7
			if diff == 0 {
				diff = 7
			}
			return base.AddDate(0, 0, diff)
		}
		return base.AddDate(0, 0, 7)

	case FrequencyMonthly:
		targetDay := base.Day()
		if rule.DayOfMonth != nil {
			targetDay = *rule.DayOfMonth
		}
		year, month, _ := base.Date()
		next := util.ClampedDate(year, month+1, targetDay)
		hour, minute, sec := base.Clock()
		return time.Date(next.Year(), next.Month(), next.Day(), hour, minute, sec, base.Nanosecond(), base.Location())

	default:
		// daily; dayOfMonth/weekday are irrelevant and ignored
		return base.AddDate(0, 0, 1)
	}
}
