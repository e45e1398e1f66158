package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction is the aggregate root. A recurring transaction always carries
// a RepeatRule and a computed NextTriggerAt; both are nil otherwise.
type Transaction struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"userId"`
	Type          TransactionType `json:"type"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	Note          *string         `json:"note,omitempty"`
	Date          time.Time       `json:"date"`
	IsRecurring   bool            `json:"isRecurring"`
	RepeatRule    *RepeatRule     `json:"repeatRule,omitempty"`
	Notify        bool            `json:"notify"`
	NextTriggerAt *time.Time      `json:"nextTriggerAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type TransactionRepository interface {
	Create(transaction *Transaction) (*Transaction, error)
	GetByID(userID uuid.UUID, id uuid.UUID) (*Transaction, error)
	Update(transaction *Transaction) (*Transaction, error)
	Delete(userID uuid.UUID, id uuid.UUID) error
	// ListRecurring returns the user's recurring transactions ordered by
	// next_trigger_at ascending, ties broken by created_at descending.
	ListRecurring(userID uuid.UUID) ([]*Transaction, error)
	// ListByMonth returns all of the user's transactions whose date falls in
	// [first-of-month, first-of-next-month) UTC, ordered by date descending.
	ListByMonth(userID uuid.UUID, key MonthKey) ([]*Transaction, error)
}
