package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/manatly/manatly-backend/internal/domain"
)

// UserRepository implements domain.UserRepository using PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, subject, email, name, created_at`

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Subject, &u.Email, &u.Name, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetBySubject retrieves a user by identity-provider subject.
func (r *UserRepository) GetBySubject(subject string) (*domain.User, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE subject = $1`, subject)

	user, err := scanUser(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// CreateOrGetBySubject provisions the user on first sight. Concurrent first
// requests race benignly: ON CONFLICT keeps the existing row.
func (r *UserRepository) CreateOrGetBySubject(subject, email string, name *string) (*domain.User, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx,
		`INSERT INTO users (subject, email, name)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (subject)
		 DO UPDATE SET email = EXCLUDED.email
		 RETURNING `+userColumns,
		subject, email, name,
	)

	return scanUser(row)
}
