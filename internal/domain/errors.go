package domain

import "errors"

// Domain errors
var (
	ErrNotFound      = errors.New("resource not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInternalError = errors.New("internal error")
	ErrUserNotFound  = errors.New("user not found")

	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrCategoryLimitNotFound = errors.New("category limit not found")

	ErrCategoryRequired       = errors.New("category is required")
	ErrCategoryTooLong        = errors.New("category exceeds maximum length")
	ErrNegativeAmount         = errors.New("amount must not be negative")
	ErrInvalidTransactionType = errors.New("transaction type must be income or expense")
	ErrInvalidLimitAmount     = errors.New("monthly limit must be positive")
	ErrRepeatRuleRequired     = errors.New("repeat rule is required for recurring transactions")
	ErrInvalidDate            = errors.New("date must be a valid RFC 3339 or YYYY-MM-DD date")

	ErrInvalidFrequency  = errors.New("frequency must be daily, weekly or monthly")
	ErrInvalidDayOfMonth = errors.New("dayOfMonth must be between 1 and 31")
	ErrInvalidWeekday    = errors.New("weekday must be between 0 and 6")

	ErrInvalidMonthKey = errors.New("month must be in YYYY-MM format")

	// ErrUpstreamFailure wraps failures of the durable store or the
	// notification capability.
	ErrUpstreamFailure = errors.New("upstream failure")
)

// Validation constants
const (
	MaxCategoryLength = 255
)
