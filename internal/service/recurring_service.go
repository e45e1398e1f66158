package service

import (
	"github.com/google/uuid"
	"github.com/manatly/manatly-backend/internal/domain"
)

// RecurringService exposes the recurring-transaction surface. It narrows
// TransactionService: creation always requires a repeat rule and every
// record it touches is recurring.
type RecurringService struct {
	transactions *TransactionService
}

// NewRecurringService creates a new RecurringService
func NewRecurringService(transactions *TransactionService) *RecurringService {
	return &RecurringService{transactions: transactions}
}

// CreateRecurring creates a recurring transaction. The repeat rule is
// mandatory here, unlike the general transaction surface.
func (s *RecurringService) CreateRecurring(userID uuid.UUID, input CreateTransactionInput) (*domain.Transaction, *domain.ThresholdEvent, error) {
	if input.RepeatRule == nil {
		return nil, nil, domain.ErrRepeatRuleRequired
	}
	input.IsRecurring = true
	return s.transactions.CreateTransaction(userID, input)
}

// ListRecurring returns the user's recurring transactions ordered by next
// trigger, soonest first.
func (s *RecurringService) ListRecurring(userID uuid.UUID) ([]*domain.Transaction, error) {
	return s.transactions.ListRecurring(userID)
}

// UpdateRecurring applies a partial update to a recurring transaction.
func (s *RecurringService) UpdateRecurring(userID uuid.UUID, id uuid.UUID, input UpdateTransactionInput) (*domain.Transaction, error) {
	transaction, err := s.transactions.GetTransaction(userID, id)
	if err != nil {
		return nil, err
	}
	if !transaction.IsRecurring {
		// The recurring surface never exposes one-off transactions
		return nil, domain.ErrTransactionNotFound
	}
	return s.transactions.UpdateTransaction(userID, id, input)
}

// DeleteRecurring hard-deletes a recurring transaction and cancels its
// reminder.
func (s *RecurringService) DeleteRecurring(userID uuid.UUID, id uuid.UUID) error {
	return s.transactions.DeleteTransaction(userID, id)
}
