package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/manatly/manatly-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// CategoryLimitRepository implements domain.CategoryLimitRepository using PostgreSQL
type CategoryLimitRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryLimitRepository creates a new CategoryLimitRepository
func NewCategoryLimitRepository(pool *pgxpool.Pool) *CategoryLimitRepository {
	return &CategoryLimitRepository{pool: pool}
}

const limitColumns = `id, user_id, category, monthly_limit::text, created_at, updated_at`

func scanLimit(row rowScanner) (*domain.CategoryLimit, error) {
	var l domain.CategoryLimit
	var monthlyLimit string

	err := row.Scan(&l.ID, &l.UserID, &l.Category, &monthlyLimit, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}

	l.MonthlyLimit, err = decimal.NewFromString(monthlyLimit)
	if err != nil {
		return nil, fmt.Errorf("parse monthly limit: %w", err)
	}

	return &l, nil
}

// Upsert inserts or replaces the limit for (user, category). Category matches
// case-insensitively, so "Qida" replaces "qida".
func (r *CategoryLimitRepository) Upsert(limit *domain.CategoryLimit) (*domain.CategoryLimit, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx,
		`INSERT INTO category_limits (user_id, category, monthly_limit)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, lower(category))
		 DO UPDATE SET category = EXCLUDED.category,
		               monthly_limit = EXCLUDED.monthly_limit,
		               updated_at = now()
		 RETURNING `+limitColumns,
		limit.UserID, limit.Category, limit.MonthlyLimit.String(),
	)

	return scanLimit(row)
}

// ListByUser returns all of the user's limits ordered by category.
func (r *CategoryLimitRepository) ListByUser(userID uuid.UUID) ([]*domain.CategoryLimit, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx,
		`SELECT `+limitColumns+` FROM category_limits
		 WHERE user_id = $1
		 ORDER BY lower(category)`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	limits := make([]*domain.CategoryLimit, 0)
	for rows.Next() {
		l, err := scanLimit(rows)
		if err != nil {
			return nil, err
		}
		limits = append(limits, l)
	}
	return limits, rows.Err()
}

// Delete removes a limit scoped to its owner.
func (r *CategoryLimitRepository) Delete(userID uuid.UUID, id uuid.UUID) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx,
		`DELETE FROM category_limits WHERE user_id = $1 AND id = $2`,
		userID, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryLimitNotFound
	}
	return nil
}
