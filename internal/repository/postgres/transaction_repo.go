package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/manatly/manatly-backend/internal/domain"
	"github.com/manatly/manatly-backend/internal/util"
	"github.com/shopspring/decimal"
)

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `id, user_id, type, category, amount::text, note, date,
	is_recurring, repeat_freq, repeat_day_of_month, repeat_weekday,
	notify, next_trigger_at, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var t domain.Transaction
	var amount string
	var freq *string
	var dayOfMonth, weekday *int

	err := row.Scan(
		&t.ID, &t.UserID, &t.Type, &t.Category, &amount, &t.Note, &t.Date,
		&t.IsRecurring, &freq, &dayOfMonth, &weekday,
		&t.Notify, &t.NextTriggerAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse amount: %w", err)
	}

	if freq != nil {
		t.RepeatRule = &domain.RepeatRule{
			Freq:       domain.Frequency(*freq),
			DayOfMonth: dayOfMonth,
			Weekday:    weekday,
		}
	}

	return &t, nil
}

func repeatRuleColumns(t *domain.Transaction) (freq *string, dayOfMonth, weekday *int) {
	if t.RepeatRule == nil {
		return nil, nil, nil
	}
	f := string(t.RepeatRule.Freq)
	return &f, t.RepeatRule.DayOfMonth, t.RepeatRule.Weekday
}

// Create inserts a transaction and returns the stored record.
func (r *TransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	ctx := context.Background()

	freq, dayOfMonth, weekday := repeatRuleColumns(transaction)

	row := r.pool.QueryRow(ctx,
		`INSERT INTO transactions
			(user_id, type, category, amount, note, date,
			 is_recurring, repeat_freq, repeat_day_of_month, repeat_weekday,
			 notify, next_trigger_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING `+transactionColumns,
		transaction.UserID, string(transaction.Type), transaction.Category,
		transaction.Amount.String(), transaction.Note, transaction.Date,
		transaction.IsRecurring, freq, dayOfMonth, weekday,
		transaction.Notify, transaction.NextTriggerAt,
	)

	return scanTransaction(row)
}

// GetByID retrieves a transaction scoped to its owner. Records owned by
// other users are indistinguishable from absent ones.
func (r *TransactionRepository) GetByID(userID uuid.UUID, id uuid.UUID) (*domain.Transaction, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE user_id = $1 AND id = $2`,
		userID, id,
	)

	transaction, err := scanTransaction(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return transaction, nil
}

// Update persists all mutable fields of a transaction.
func (r *TransactionRepository) Update(transaction *domain.Transaction) (*domain.Transaction, error) {
	ctx := context.Background()

	freq, dayOfMonth, weekday := repeatRuleColumns(transaction)

	row := r.pool.QueryRow(ctx,
		`UPDATE transactions
		 SET type = $3, category = $4, amount = $5, note = $6, date = $7,
		     repeat_freq = $8, repeat_day_of_month = $9, repeat_weekday = $10,
		     notify = $11, next_trigger_at = $12, updated_at = now()
		 WHERE user_id = $1 AND id = $2
		 RETURNING `+transactionColumns,
		transaction.UserID, transaction.ID,
		string(transaction.Type), transaction.Category, transaction.Amount.String(),
		transaction.Note, transaction.Date,
		freq, dayOfMonth, weekday,
		transaction.Notify, transaction.NextTriggerAt,
	)

	updated, err := scanTransaction(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete hard-deletes a transaction scoped to its owner.
func (r *TransactionRepository) Delete(userID uuid.UUID, id uuid.UUID) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx,
		`DELETE FROM transactions WHERE user_id = $1 AND id = $2`,
		userID, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// ListRecurring returns the user's recurring transactions, soonest trigger
// first, ties broken by most recently created.
func (r *TransactionRepository) ListRecurring(userID uuid.UUID) ([]*domain.Transaction, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE user_id = $1 AND is_recurring
		 ORDER BY next_trigger_at ASC NULLS LAST, created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// ListByMonth returns the user's transactions with a date in the month's UTC
// window, newest first.
func (r *TransactionRepository) ListByMonth(userID uuid.UUID, key domain.MonthKey) ([]*domain.Transaction, error) {
	ctx := context.Background()

	start, end := util.MonthWindow(key.Year, key.Month)

	rows, err := r.pool.Query(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE user_id = $1 AND date >= $2 AND date < $3
		 ORDER BY date DESC, created_at DESC`,
		userID, start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func collectTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	transactions := make([]*domain.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}
