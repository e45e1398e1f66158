package domain

// Frequency is how often a recurring transaction repeats.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// RepeatRule describes the recurrence of a transaction. It is a value type:
// editing a recurring transaction replaces the rule wholesale.
//
// DayOfMonth only matters for monthly rules and Weekday (0 = Sunday) only for
// weekly rules; either may be nil, in which case the next-trigger calculator
// anchors on the base date instead.
type RepeatRule struct {
	Freq       Frequency `json:"freq"`
	DayOfMonth *int      `json:"dayOfMonth,omitempty"`
	Weekday    *int      `json:"weekday,omitempty"`
}

// NormalizeRepeatRule validates a raw rule and returns its normalized form.
// Absent optional fields pass through as absent; they are never defaulted
// here. The function is pure and idempotent: normalizing an already
// normalized rule yields an identical value.
func NormalizeRepeatRule(raw RepeatRule) (RepeatRule, error) {
	switch raw.Freq {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
	default:
		return RepeatRule{}, ErrInvalidFrequency
	}

	if raw.DayOfMonth != nil && (*raw.DayOfMonth < 1 || *raw.DayOfMonth > 31) {
		return RepeatRule{}, ErrInvalidDayOfMonth
	}

	if raw.Weekday != nil && (*raw.Weekday < 0 || *raw.Weekday > 6) {
		return RepeatRule{}, ErrInvalidWeekday
	}

	return RepeatRule{
		Freq:       raw.Freq,
		DayOfMonth: raw.DayOfMonth,
		Weekday:    raw.Weekday,
	}, nil
}
