package service

import "github.com/manatly/manatly-backend/internal/domain"

// AuthService resolves identity-provider subjects to users, provisioning a
// user record the first time a subject is seen.
type AuthService struct {
	userRepo domain.UserRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// ResolveUser returns the user for a validated token, creating it on first
// sight.
func (s *AuthService) ResolveUser(subject, email string, name *string) (*domain.User, error) {
	return s.userRepo.CreateOrGetBySubject(subject, email, name)
}

// GetUserBySubject returns the user for a subject without provisioning.
func (s *AuthService) GetUserBySubject(subject string) (*domain.User, error) {
	return s.userRepo.GetBySubject(subject)
}
