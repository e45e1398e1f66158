package domain

import (
	"errors"
	"testing"
)

func intPtr(v int) *int {
	return &v
}

func TestNormalizeRepeatRule_ValidFrequencies(t *testing.T) {
	for _, freq := range []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyMonthly} {
		rule, err := NormalizeRepeatRule(RepeatRule{Freq: freq})
		if err != nil {
			t.Fatalf("Expected no error for %s, got %v", freq, err)
		}
		if rule.Freq != freq {
			t.Errorf("Expected freq %s, got %s", freq, rule.Freq)
		}
	}
}

func TestNormalizeRepeatRule_InvalidFrequency(t *testing.T) {
	for _, freq := range []Frequency{"", "yearly", "Daily", "MONTHLY"} {
		_, err := NormalizeRepeatRule(RepeatRule{Freq: freq})
		if !errors.Is(err, ErrInvalidFrequency) {
			t.Errorf("Expected ErrInvalidFrequency for %q, got %v", freq, err)
		}
	}
}

func TestNormalizeRepeatRule_DayOfMonthBounds(t *testing.T) {
	for _, day := range []int{1, 15, 31} {
		rule, err := NormalizeRepeatRule(RepeatRule{Freq: FrequencyMonthly, DayOfMonth: intPtr(day)})
		if err != nil {
			t.Fatalf("Expected no error for day %d, got %v", day, err)
		}
		if rule.DayOfMonth == nil || *rule.DayOfMonth != day {
			t.Errorf("Expected dayOfMonth %d to pass through", day)
		}
	}

	for _, day := range []int{0, -1, 32} {
		_, err := NormalizeRepeatRule(RepeatRule{Freq: FrequencyMonthly, DayOfMonth: intPtr(day)})
		if !errors.Is(err, ErrInvalidDayOfMonth) {
			t.Errorf("Expected ErrInvalidDayOfMonth for day %d, got %v", day, err)
		}
	}
}

func TestNormalizeRepeatRule_WeekdayBounds(t *testing.T) {
	for _, weekday := range []int{0, 3, 6} {
		rule, err := NormalizeRepeatRule(RepeatRule{Freq: FrequencyWeekly, Weekday: intPtr(weekday)})
		if err != nil {
			t.Fatalf("Expected no error for weekday %d, got %v", weekday, err)
		}
		if rule.Weekday == nil || *rule.Weekday != weekday {
			t.Errorf("Expected weekday %d to pass through", weekday)
		}
	}

	for _, weekday := range []int{-1, 7, 100} {
		_, err := NormalizeRepeatRule(RepeatRule{Freq: FrequencyWeekly, Weekday: intPtr(weekday)})
		if !errors.Is(err, ErrInvalidWeekday) {
			t.Errorf("Expected ErrInvalidWeekday for weekday %d, got %v", weekday, err)
		}
	}
}

func TestNormalizeRepeatRule_AbsentOptionalFieldsStayAbsent(t *testing.T) {
	rule, err := NormalizeRepeatRule(RepeatRule{Freq: FrequencyMonthly})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rule.DayOfMonth != nil {
		t.Error("Expected dayOfMonth to remain nil")
	}
	if rule.Weekday != nil {
		t.Error("Expected weekday to remain nil")
	}
}

func TestNormalizeRepeatRule_Idempotent(t *testing.T) {
	first, err := NormalizeRepeatRule(RepeatRule{Freq: FrequencyWeekly, Weekday: intPtr(2)})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	second, err := NormalizeRepeatRule(first)
	if err != nil {
		t.Fatalf("Expected no error on second pass, got %v", err)
	}

	if second.Freq != first.Freq {
		t.Errorf("Expected freq %s, got %s", first.Freq, second.Freq)
	}
	if second.Weekday == nil || *second.Weekday != *first.Weekday {
		t.Error("Expected weekday unchanged by renormalization")
	}
}
