package testutil

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/manatly/manatly-backend/internal/domain"
)

// MockTransactionRepository is a mock implementation of domain.TransactionRepository
type MockTransactionRepository struct {
	Transactions map[uuid.UUID]*domain.Transaction
	CreateErr    error
	UpdateErr    error
	ListErr      error

	createSeq int
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make(map[uuid.UUID]*domain.Transaction),
	}
}

// Create stores a transaction, assigning an id and timestamps
func (m *MockTransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}

	m.createSeq++
	transaction.ID = uuid.New()
	// Distinct created_at per record so ordering ties resolve as in SQL
	transaction.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(m.createSeq) * time.Second)
	transaction.UpdatedAt = transaction.CreatedAt

	m.Transactions[transaction.ID] = transaction
	return transaction, nil
}

// GetByID retrieves a transaction scoped to its owner
func (m *MockTransactionRepository) GetByID(userID uuid.UUID, id uuid.UUID) (*domain.Transaction, error) {
	transaction, ok := m.Transactions[id]
	if !ok || transaction.UserID != userID {
		return nil, domain.ErrTransactionNotFound
	}
	return transaction, nil
}

// Update replaces a stored transaction
func (m *MockTransactionRepository) Update(transaction *domain.Transaction) (*domain.Transaction, error) {
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}

	stored, ok := m.Transactions[transaction.ID]
	if !ok || stored.UserID != transaction.UserID {
		return nil, domain.ErrTransactionNotFound
	}

	transaction.CreatedAt = stored.CreatedAt
	transaction.UpdatedAt = stored.UpdatedAt.Add(time.Second)
	m.Transactions[transaction.ID] = transaction
	return transaction, nil
}

// Delete removes a transaction scoped to its owner
func (m *MockTransactionRepository) Delete(userID uuid.UUID, id uuid.UUID) error {
	transaction, ok := m.Transactions[id]
	if !ok || transaction.UserID != userID {
		return domain.ErrTransactionNotFound
	}
	delete(m.Transactions, id)
	return nil
}

// ListRecurring returns recurring transactions ordered by next trigger
// ascending, created descending
func (m *MockTransactionRepository) ListRecurring(userID uuid.UUID) ([]*domain.Transaction, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}

	result := make([]*domain.Transaction, 0)
	for _, t := range m.Transactions {
		if t.UserID == userID && t.IsRecurring {
			result = append(result, t)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		switch {
		case a.NextTriggerAt == nil && b.NextTriggerAt == nil:
		case a.NextTriggerAt == nil:
			return false
		case b.NextTriggerAt == nil:
			return true
		case !a.NextTriggerAt.Equal(*b.NextTriggerAt):
			return a.NextTriggerAt.Before(*b.NextTriggerAt)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	return result, nil
}

// ListByMonth returns the user's transactions in the month's UTC window,
// newest first
func (m *MockTransactionRepository) ListByMonth(userID uuid.UUID, key domain.MonthKey) ([]*domain.Transaction, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}

	result := make([]*domain.Transaction, 0)
	for _, t := range m.Transactions {
		if t.UserID == userID && key.Contains(t.Date) {
			result = append(result, t)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

// AddTransaction adds a transaction to the mock repository (helper for tests)
func (m *MockTransactionRepository) AddTransaction(transaction *domain.Transaction) {
	if transaction.ID == uuid.Nil {
		transaction.ID = uuid.New()
	}
	m.Transactions[transaction.ID] = transaction
}

// MockCategoryLimitRepository is a mock implementation of domain.CategoryLimitRepository
type MockCategoryLimitRepository struct {
	Limits  map[uuid.UUID]*domain.CategoryLimit
	ListErr error
}

// NewMockCategoryLimitRepository creates a new MockCategoryLimitRepository
func NewMockCategoryLimitRepository() *MockCategoryLimitRepository {
	return &MockCategoryLimitRepository{
		Limits: make(map[uuid.UUID]*domain.CategoryLimit),
	}
}

// Upsert inserts or replaces the limit for (user, category),
// case-insensitively on category
func (m *MockCategoryLimitRepository) Upsert(limit *domain.CategoryLimit) (*domain.CategoryLimit, error) {
	for _, existing := range m.Limits {
		if existing.UserID == limit.UserID && strings.EqualFold(existing.Category, limit.Category) {
			existing.Category = limit.Category
			existing.MonthlyLimit = limit.MonthlyLimit
			existing.UpdatedAt = time.Now()
			return existing, nil
		}
	}

	limit.ID = uuid.New()
	limit.CreatedAt = time.Now()
	limit.UpdatedAt = limit.CreatedAt
	m.Limits[limit.ID] = limit
	return limit, nil
}

// ListByUser returns the user's limits
func (m *MockCategoryLimitRepository) ListByUser(userID uuid.UUID) ([]*domain.CategoryLimit, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}

	result := make([]*domain.CategoryLimit, 0)
	for _, l := range m.Limits {
		if l.UserID == userID {
			result = append(result, l)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return strings.ToLower(result[i].Category) < strings.ToLower(result[j].Category)
	})
	return result, nil
}

// Delete removes a limit scoped to its owner
func (m *MockCategoryLimitRepository) Delete(userID uuid.UUID, id uuid.UUID) error {
	limit, ok := m.Limits[id]
	if !ok || limit.UserID != userID {
		return domain.ErrCategoryLimitNotFound
	}
	delete(m.Limits, id)
	return nil
}

// AddLimit adds a limit to the mock repository (helper for tests)
func (m *MockCategoryLimitRepository) AddLimit(limit *domain.CategoryLimit) {
	if limit.ID == uuid.Nil {
		limit.ID = uuid.New()
	}
	m.Limits[limit.ID] = limit
}

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users map[string]*domain.User
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[string]*domain.User)}
}

// GetBySubject retrieves a user by subject
func (m *MockUserRepository) GetBySubject(subject string) (*domain.User, error) {
	if user, ok := m.Users[subject]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// CreateOrGetBySubject provisions the user on first sight
func (m *MockUserRepository) CreateOrGetBySubject(subject, email string, name *string) (*domain.User, error) {
	if user, ok := m.Users[subject]; ok {
		return user, nil
	}
	user := &domain.User{
		ID:        uuid.New(),
		Subject:   subject,
		Email:     email,
		Name:      name,
		CreatedAt: time.Now(),
	}
	m.Users[subject] = user
	return user, nil
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.Users[user.Subject] = user
}
