package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `json:"id"`
	Subject   string    `json:"-"` // identity-provider subject (JWT sub)
	Email     string    `json:"email"`
	Name      *string   `json:"name,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type UserRepository interface {
	GetBySubject(subject string) (*User, error)
	// CreateOrGetBySubject provisions the user on first sight.
	CreateOrGetBySubject(subject, email string, name *string) (*User, error)
}
