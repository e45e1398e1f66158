package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/manatly/manatly-backend/internal/domain"
	"github.com/manatly/manatly-backend/internal/websocket"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TransactionService handles transaction business logic: validation,
// next-trigger computation, limit evaluation and reminder scheduling.
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	limitRepo       domain.CategoryLimitRepository
	limits          *LimitService
	reminders       *ReminderService
	publisher       websocket.EventPublisher
	now             func() time.Time
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(
	transactionRepo domain.TransactionRepository,
	limitRepo domain.CategoryLimitRepository,
	limits *LimitService,
	reminders *ReminderService,
	publisher websocket.EventPublisher,
) *TransactionService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &TransactionService{
		transactionRepo: transactionRepo,
		limitRepo:       limitRepo,
		limits:          limits,
		reminders:       reminders,
		publisher:       publisher,
		now:             time.Now,
	}
}

// CreateTransactionInput holds the input for creating a transaction
type CreateTransactionInput struct {
	Type        domain.TransactionType
	Category    string
	Amount      decimal.Decimal
	Note        *string
	Date        *time.Time
	IsRecurring bool
	RepeatRule  *domain.RepeatRule
	Notify      bool
	// NextTriggerAt, when set, is used verbatim instead of the computed
	// value. Supports client-side precomputation.
	NextTriggerAt *time.Time
}

// CreateTransaction validates and persists a transaction. For recurring
// transactions it derives nextTriggerAt from the date and repeat rule unless
// the caller supplied a precomputed value. For expenses it evaluates the
// category limit afterwards and returns the threshold event, if any; limit
// evaluation and reminder scheduling are best-effort and never fail the
// write.
func (s *TransactionService) CreateTransaction(userID uuid.UUID, input CreateTransactionInput) (*domain.Transaction, *domain.ThresholdEvent, error) {
	if input.Type != domain.TransactionTypeIncome && input.Type != domain.TransactionTypeExpense {
		return nil, nil, domain.ErrInvalidTransactionType
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, nil, domain.ErrCategoryRequired
	}
	if len(category) > domain.MaxCategoryLength {
		return nil, nil, domain.ErrCategoryTooLong
	}

	if input.Amount.IsNegative() {
		return nil, nil, domain.ErrNegativeAmount
	}

	date := s.now()
	if input.Date != nil {
		date = *input.Date
	}

	transaction := &domain.Transaction{
		UserID:      userID,
		Type:        input.Type,
		Category:    category,
		Amount:      input.Amount,
		Note:        input.Note,
		Date:        date,
		IsRecurring: input.IsRecurring,
		Notify:      input.Notify,
	}

	if input.IsRecurring {
		if input.RepeatRule == nil {
			return nil, nil, domain.ErrRepeatRuleRequired
		}
		rule, err := domain.NormalizeRepeatRule(*input.RepeatRule)
		if err != nil {
			return nil, nil, err
		}
		transaction.RepeatRule = &rule

		next := domain.NextTrigger(date, rule)
		if input.NextTriggerAt != nil {
			next = *input.NextTriggerAt
		}
		transaction.NextTriggerAt = &next
	}

	created, err := s.transactionRepo.Create(transaction)
	if err != nil {
		return nil, nil, err
	}

	if created.IsRecurring {
		s.publisher.Publish(userID, websocket.RecurringCreated(created))
	} else {
		s.publisher.Publish(userID, websocket.TransactionCreated(created))
	}

	event := s.evaluateLimit(created)
	s.scheduleReminder(created)

	return created, event, nil
}

// UpdateTransactionInput holds a partial update. Nil fields are untouched.
// ClearNote distinguishes "note: null" from an omitted note.
type UpdateTransactionInput struct {
	Amount                 *decimal.Decimal
	Category               *string
	Note                   *string
	ClearNote              bool
	Type                   *domain.TransactionType
	Date                   *time.Time
	RepeatRule             *domain.RepeatRule
	Notify                 *bool
	RecalculateNextTrigger bool
	// NextTriggerAt overrides the computed value when recomputation runs.
	NextTriggerAt *time.Time
}

// UpdateTransaction applies a partial update scoped to the owner. Changing
// the date or the repeat rule, or setting RecalculateNextTrigger, recomputes
// nextTriggerAt from the updated date and rule.
func (s *TransactionService) UpdateTransaction(userID uuid.UUID, id uuid.UUID, input UpdateTransactionInput) (*domain.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	if input.Amount != nil {
		if input.Amount.IsNegative() {
			return nil, domain.ErrNegativeAmount
		}
		transaction.Amount = *input.Amount
	}

	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		if category == "" {
			return nil, domain.ErrCategoryRequired
		}
		if len(category) > domain.MaxCategoryLength {
			return nil, domain.ErrCategoryTooLong
		}
		transaction.Category = category
	}

	switch {
	case input.ClearNote:
		transaction.Note = nil
	case input.Note != nil:
		transaction.Note = input.Note
	}

	if input.Type != nil {
		if *input.Type != domain.TransactionTypeIncome && *input.Type != domain.TransactionTypeExpense {
			return nil, domain.ErrInvalidTransactionType
		}
		transaction.Type = *input.Type
	}

	recompute := input.RecalculateNextTrigger

	if input.Date != nil {
		transaction.Date = *input.Date
		recompute = true
	}

	if input.RepeatRule != nil {
		rule, err := domain.NormalizeRepeatRule(*input.RepeatRule)
		if err != nil {
			return nil, err
		}
		transaction.RepeatRule = &rule
		recompute = true
	}

	if input.Notify != nil {
		transaction.Notify = *input.Notify
	}

	if transaction.IsRecurring && recompute {
		rule := domain.RepeatRule{Freq: domain.FrequencyMonthly}
		if transaction.RepeatRule != nil {
			rule = *transaction.RepeatRule
		}
		next := domain.NextTrigger(transaction.Date, rule)
		if input.NextTriggerAt != nil {
			next = *input.NextTriggerAt
		}
		transaction.NextTriggerAt = &next
	}

	updated, err := s.transactionRepo.Update(transaction)
	if err != nil {
		return nil, err
	}

	if updated.IsRecurring {
		s.publisher.Publish(userID, websocket.RecurringUpdated(updated))
	} else {
		s.publisher.Publish(userID, websocket.TransactionUpdated(updated))
	}

	if input.Notify != nil && updated.IsRecurring {
		if *input.Notify {
			s.scheduleReminder(updated)
		} else if err := s.reminders.CancelReminder(updated.ID); err != nil {
			log.Warn().Err(err).Str("transaction_id", updated.ID.String()).Msg("Failed to cancel reminder")
		}
	}

	return updated, nil
}

// DeleteTransaction hard-deletes a transaction scoped to the owner and
// cancels any reminder still scheduled for it.
func (s *TransactionService) DeleteTransaction(userID uuid.UUID, id uuid.UUID) error {
	transaction, err := s.transactionRepo.GetByID(userID, id)
	if err != nil {
		return err
	}

	if err := s.transactionRepo.Delete(userID, id); err != nil {
		return err
	}

	if transaction.IsRecurring {
		if err := s.reminders.CancelReminder(id); err != nil {
			log.Warn().Err(err).Str("transaction_id", id.String()).Msg("Failed to cancel reminder")
		}
		s.publisher.Publish(userID, websocket.RecurringDeleted(transaction))
	} else {
		s.publisher.Publish(userID, websocket.TransactionDeleted(transaction))
	}

	return nil
}

// GetTransaction returns one transaction scoped to the owner.
func (s *TransactionService) GetTransaction(userID uuid.UUID, id uuid.UUID) (*domain.Transaction, error) {
	return s.transactionRepo.GetByID(userID, id)
}

// ListByMonth returns the user's transactions for the month, newest first.
func (s *TransactionService) ListByMonth(userID uuid.UUID, key domain.MonthKey) ([]*domain.Transaction, error) {
	return s.transactionRepo.ListByMonth(userID, key)
}

// ListRecurring returns the user's recurring transactions, soonest trigger
// first.
func (s *TransactionService) ListRecurring(userID uuid.UUID) ([]*domain.Transaction, error) {
	return s.transactionRepo.ListRecurring(userID)
}

// MonthlySummary aggregates income, expenses and per-category spend for one
// month, annotated with limit utilization where limits exist.
func (s *TransactionService) MonthlySummary(userID uuid.UUID, key domain.MonthKey) (*domain.MonthlySummary, error) {
	transactions, err := s.transactionRepo.ListByMonth(userID, key)
	if err != nil {
		return nil, err
	}

	limits, err := s.limitRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	summary := &domain.MonthlySummary{
		Month:        key.String(),
		IncomeTotal:  decimal.Zero,
		ExpenseTotal: decimal.Zero,
	}

	byCategory := make(map[string]*domain.CategorySpend)
	for _, t := range transactions {
		if t.Type == domain.TransactionTypeIncome {
			summary.IncomeTotal = summary.IncomeTotal.Add(t.Amount.Abs())
			continue
		}

		summary.ExpenseTotal = summary.ExpenseTotal.Add(t.Amount.Abs())
		lower := strings.ToLower(t.Category)
		spend, ok := byCategory[lower]
		if !ok {
			spend = &domain.CategorySpend{Category: t.Category, Total: decimal.Zero}
			byCategory[lower] = spend
		}
		spend.Total = spend.Total.Add(t.Amount.Abs())
	}

	for _, limit := range limits {
		spend, ok := byCategory[strings.ToLower(limit.Category)]
		if !ok || limit.MonthlyLimit.LessThanOrEqual(decimal.Zero) {
			continue
		}
		monthlyLimit := limit.MonthlyLimit
		percentage := int(spend.Total.Div(monthlyLimit).Mul(hundred).Round(0).IntPart())
		spend.MonthlyLimit = &monthlyLimit
		spend.Percentage = &percentage
	}

	summary.Categories = make([]domain.CategorySpend, 0, len(byCategory))
	for _, spend := range byCategory {
		summary.Categories = append(summary.Categories, *spend)
	}
	sort.Slice(summary.Categories, func(i, j int) bool {
		return summary.Categories[i].Total.GreaterThan(summary.Categories[j].Total)
	})

	return summary, nil
}

// evaluateLimit re-reads the month's transactions and classifies the new
// expense against its category limit. Best-effort: evaluation is a
// notification concern, not part of the write.
func (s *TransactionService) evaluateLimit(transaction *domain.Transaction) *domain.ThresholdEvent {
	if transaction.Type != domain.TransactionTypeExpense {
		return nil
	}

	limits, err := s.limitRepo.ListByUser(transaction.UserID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", transaction.UserID.String()).Msg("Failed to load limits for evaluation")
		return nil
	}
	if len(limits) == 0 {
		return nil
	}

	date := transaction.Date.UTC()
	key := domain.MonthKey{Year: date.Year(), Month: date.Month()}
	monthTransactions, err := s.transactionRepo.ListByMonth(transaction.UserID, key)
	if err != nil {
		log.Warn().Err(err).Str("user_id", transaction.UserID.String()).Msg("Failed to load month transactions for evaluation")
		return nil
	}

	event := s.limits.Evaluate(transaction, limits, monthTransactions)
	if event == nil {
		return nil
	}

	if event.Kind == domain.ThresholdExceeded {
		s.publisher.Publish(transaction.UserID, websocket.LimitExceeded(event))
	} else {
		s.publisher.Publish(transaction.UserID, websocket.LimitWarning(event))
	}

	log.Info().
		Str("user_id", transaction.UserID.String()).
		Str("category", event.Category).
		Str("kind", string(event.Kind)).
		Int("percentage", event.Percentage).
		Msg("Category limit threshold reached")

	return event
}

// scheduleReminder schedules the transaction's reminder when requested.
// Failures are logged and swallowed: a missed reminder must not fail or roll
// back the write.
func (s *TransactionService) scheduleReminder(transaction *domain.Transaction) {
	if !transaction.Notify {
		return
	}

	date := transaction.Date
	if transaction.IsRecurring && transaction.NextTriggerAt != nil {
		date = *transaction.NextTriggerAt
	}

	title := "Payment reminder"
	if transaction.Type == domain.TransactionTypeIncome {
		title = "Income reminder"
	}
	body := fmt.Sprintf("%s: %s", transaction.Category, transaction.Amount.String())

	var err error
	if transaction.IsRecurring {
		_, err = s.reminders.ScheduleRecurringReminder(transaction.ID, transaction.Type, date, title, body)
	} else {
		_, err = s.reminders.ScheduleReminder(transaction.Type, date, title, body)
	}
	if err != nil {
		log.Warn().Err(err).Str("transaction_id", transaction.ID.String()).Msg("Failed to schedule reminder")
		return
	}

	s.publisher.Publish(transaction.UserID, websocket.ReminderScheduled(map[string]string{
		"transactionId": transaction.ID.String(),
		"title":         title,
	}))
}
