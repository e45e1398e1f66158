package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryLimit is a per-user monthly spending ceiling for one category.
// The (user, category) pair is unique; setting a limit for a category that
// already has one replaces it.
type CategoryLimit struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"userId"`
	Category     string          `json:"category"`
	MonthlyLimit decimal.Decimal `json:"monthlyLimit"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type CategoryLimitRepository interface {
	Upsert(limit *CategoryLimit) (*CategoryLimit, error)
	ListByUser(userID uuid.UUID) ([]*CategoryLimit, error)
	Delete(userID uuid.UUID, id uuid.UUID) error
}
