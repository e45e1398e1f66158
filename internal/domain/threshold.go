package domain

import "github.com/shopspring/decimal"

// ThresholdKind classifies month-to-date category spend against a limit.
type ThresholdKind string

const (
	ThresholdWarning  ThresholdKind = "warning"  // spend at 80% of the limit or more
	ThresholdExceeded ThresholdKind = "exceeded" // spend at or over the limit
)

// ThresholdEvent is the notification-worthy outcome of evaluating an expense
// against its category limit. Percentage is the rounded spend/limit ratio.
type ThresholdEvent struct {
	Kind         ThresholdKind   `json:"kind"`
	Category     string          `json:"category"`
	MonthTotal   decimal.Decimal `json:"monthTotal"`
	MonthlyLimit decimal.Decimal `json:"monthlyLimit"`
	Percentage   int             `json:"percentage"`
}
