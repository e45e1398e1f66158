package handler

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/manatly/manatly-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// RepeatRuleRequest is the wire shape of a repeat rule
type RepeatRuleRequest struct {
	Freq       string `json:"freq"`
	DayOfMonth *int   `json:"dayOfMonth,omitempty"`
	Weekday    *int   `json:"weekday,omitempty"`
}

func (r RepeatRuleRequest) toDomain() domain.RepeatRule {
	return domain.RepeatRule{
		Freq:       domain.Frequency(r.Freq),
		DayOfMonth: r.DayOfMonth,
		Weekday:    r.Weekday,
	}
}

// OptionalString distinguishes an omitted field from an explicit null.
// Several patch endpoints treat the two differently: null clears the field,
// omission leaves it alone.
type OptionalString struct {
	Set   bool
	Valid bool
	Value string
}

// UnmarshalJSON implements json.Unmarshaler
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// parseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates (read as
// midnight UTC).
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Time{}, domain.ErrInvalidDate
}

// validationErrors are service errors reported to the caller as 400s with
// the constraint spelled out.
var validationErrors = []error{
	domain.ErrInvalidInput,
	domain.ErrCategoryRequired,
	domain.ErrCategoryTooLong,
	domain.ErrNegativeAmount,
	domain.ErrInvalidTransactionType,
	domain.ErrInvalidLimitAmount,
	domain.ErrRepeatRuleRequired,
	domain.ErrInvalidDate,
	domain.ErrInvalidFrequency,
	domain.ErrInvalidDayOfMonth,
	domain.ErrInvalidWeekday,
	domain.ErrInvalidMonthKey,
}

// respondServiceError maps a service error to the envelope: validation
// failures are 400 with the constraint, missing or foreign records are 404,
// anything else is a 500.
func respondServiceError(c echo.Context, err error) error {
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return NewValidationError(c, v.Error())
		}
	}

	if errors.Is(err, domain.ErrTransactionNotFound) ||
		errors.Is(err, domain.ErrCategoryLimitNotFound) ||
		errors.Is(err, domain.ErrNotFound) {
		return NewNotFoundError(c, "resource not found")
	}

	log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("Request failed")
	return NewInternalError(c, "internal error")
}
