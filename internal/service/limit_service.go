package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/manatly/manatly-backend/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	warningRatio = decimal.RequireFromString("0.8")
	hundred      = decimal.NewFromInt(100)
)

// LimitService manages per-category monthly limits and classifies
// month-to-date spend against them.
type LimitService struct {
	limitRepo domain.CategoryLimitRepository
}

// NewLimitService creates a new LimitService
func NewLimitService(limitRepo domain.CategoryLimitRepository) *LimitService {
	return &LimitService{limitRepo: limitRepo}
}

// SetLimit upserts the monthly limit for a category. Setting a limit for a
// category that already has one replaces it.
func (s *LimitService) SetLimit(userID uuid.UUID, category string, monthlyLimit decimal.Decimal) (*domain.CategoryLimit, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, domain.ErrCategoryRequired
	}
	if len(category) > domain.MaxCategoryLength {
		return nil, domain.ErrCategoryTooLong
	}
	if monthlyLimit.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidLimitAmount
	}

	return s.limitRepo.Upsert(&domain.CategoryLimit{
		UserID:       userID,
		Category:     category,
		MonthlyLimit: monthlyLimit,
	})
}

// ListLimits returns all of the user's category limits.
func (s *LimitService) ListLimits(userID uuid.UUID) ([]*domain.CategoryLimit, error) {
	return s.limitRepo.ListByUser(userID)
}

// DeleteLimit removes a limit. Past transactions are unaffected.
func (s *LimitService) DeleteLimit(userID uuid.UUID, id uuid.UUID) error {
	return s.limitRepo.Delete(userID, id)
}

// Evaluate classifies the month-to-date spend in newExpense's category
// against the user's configured limit for that category.
//
// monthTransactions is the transaction set for newExpense's calendar month
// and must already include newExpense itself. Categories match
// case-insensitively. The result is nil when there is nothing to report: the
// transaction is not an expense, no limit covers its category, the limit is
// non-positive, the month total is non-positive, or spend sits below 80% of
// the limit.
func (s *LimitService) Evaluate(newExpense *domain.Transaction, limits []*domain.CategoryLimit, monthTransactions []*domain.Transaction) *domain.ThresholdEvent {
	if newExpense == nil || newExpense.Type != domain.TransactionTypeExpense {
		return nil
	}

	var limit *domain.CategoryLimit
	for _, l := range limits {
		if strings.EqualFold(l.Category, newExpense.Category) {
			limit = l
			break
		}
	}
	if limit == nil || limit.MonthlyLimit.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	month := domain.MonthKey{Year: newExpense.Date.UTC().Year(), Month: newExpense.Date.UTC().Month()}

	monthTotal := decimal.Zero
	for _, t := range monthTransactions {
		if t.Type != domain.TransactionTypeExpense {
			continue
		}
		if !strings.EqualFold(t.Category, newExpense.Category) {
			continue
		}
		if !month.Contains(t.Date) {
			continue
		}
		monthTotal = monthTotal.Add(t.Amount.Abs())
	}
	if monthTotal.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	ratio := monthTotal.Div(limit.MonthlyLimit)
	percentage := int(ratio.Mul(hundred).Round(0).IntPart())

	event := &domain.ThresholdEvent{
		Category:     limit.Category,
		MonthTotal:   monthTotal,
		MonthlyLimit: limit.MonthlyLimit,
		Percentage:   percentage,
	}

	switch {
	case ratio.GreaterThanOrEqual(decimal.NewFromInt(1)):
		event.Kind = domain.ThresholdExceeded
	case ratio.GreaterThanOrEqual(warningRatio):
		event.Kind = domain.ThresholdWarning
	default:
		return nil
	}

	return event
}
