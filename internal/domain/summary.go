package domain

import "github.com/shopspring/decimal"

// CategorySpend is one category's expense total for a month, with the limit
// utilization when a limit is configured for it.
type CategorySpend struct {
	Category     string           `json:"category"`
	Total        decimal.Decimal  `json:"total"`
	MonthlyLimit *decimal.Decimal `json:"monthlyLimit,omitempty"`
	Percentage   *int             `json:"percentage,omitempty"`
}

// MonthlySummary aggregates a user's transactions for one calendar month.
type MonthlySummary struct {
	Month        string          `json:"month"`
	IncomeTotal  decimal.Decimal `json:"incomeTotal"`
	ExpenseTotal decimal.Decimal `json:"expenseTotal"`
	Categories   []CategorySpend `json:"categories"`
}
