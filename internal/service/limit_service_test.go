package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/manatly/manatly-backend/internal/domain"
	"github.com/manatly/manatly-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func setupLimitServiceTest() (*LimitService, *testutil.MockCategoryLimitRepository) {
	limitRepo := testutil.NewMockCategoryLimitRepository()
	return NewLimitService(limitRepo), limitRepo
}

func expenseOn(userID uuid.UUID, category string, amount string, date time.Time) *domain.Transaction {
	return &domain.Transaction{
		ID:       uuid.New(),
		UserID:   userID,
		Type:     domain.TransactionTypeExpense,
		Category: category,
		Amount:   decimal.RequireFromString(amount),
		Date:     date,
	}
}

// SetLimit tests

func TestSetLimit_Success(t *testing.T) {
	service, _ := setupLimitServiceTest()
	userID := uuid.New()

	limit, err := service.SetLimit(userID, "Qida", decimal.RequireFromString("500"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if limit.Category != "Qida" {
		t.Errorf("Expected category 'Qida', got %s", limit.Category)
	}
	if !limit.MonthlyLimit.Equal(decimal.RequireFromString("500")) {
		t.Errorf("Expected limit 500, got %s", limit.MonthlyLimit.String())
	}
}

func TestSetLimit_TrimsCategory(t *testing.T) {
	service, _ := setupLimitServiceTest()

	limit, err := service.SetLimit(uuid.New(), "  Transport  ", decimal.RequireFromString("100"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if limit.Category != "Transport" {
		t.Errorf("Expected trimmed category 'Transport', got %q", limit.Category)
	}
}

func TestSetLimit_EmptyCategory(t *testing.T) {
	service, _ := setupLimitServiceTest()

	_, err := service.SetLimit(uuid.New(), "   ", decimal.RequireFromString("100"))
	if !errors.Is(err, domain.ErrCategoryRequired) {
		t.Errorf("Expected ErrCategoryRequired, got %v", err)
	}
}

func TestSetLimit_NonPositiveAmount(t *testing.T) {
	service, _ := setupLimitServiceTest()

	for _, amount := range []string{"0", "-50"} {
		_, err := service.SetLimit(uuid.New(), "Qida", decimal.RequireFromString(amount))
		if !errors.Is(err, domain.ErrInvalidLimitAmount) {
			t.Errorf("Expected ErrInvalidLimitAmount for %s, got %v", amount, err)
		}
	}
}

func TestSetLimit_ReplacesExistingCaseInsensitively(t *testing.T) {
	service, limitRepo := setupLimitServiceTest()
	userID := uuid.New()

	if _, err := service.SetLimit(userID, "qida", decimal.RequireFromString("300")); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := service.SetLimit(userID, "Qida", decimal.RequireFromString("500")); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	limits, _ := limitRepo.ListByUser(userID)
	if len(limits) != 1 {
		t.Fatalf("Expected 1 limit after replacement, got %d", len(limits))
	}
	if !limits[0].MonthlyLimit.Equal(decimal.RequireFromString("500")) {
		t.Errorf("Expected replaced limit 500, got %s", limits[0].MonthlyLimit.String())
	}
}

func TestDeleteLimit_NotFound(t *testing.T) {
	service, _ := setupLimitServiceTest()

	err := service.DeleteLimit(uuid.New(), uuid.New())
	if !errors.Is(err, domain.ErrCategoryLimitNotFound) {
		t.Errorf("Expected ErrCategoryLimitNotFound, got %v", err)
	}
}

// Evaluate tests

func TestEvaluate_BelowWarningThreshold(t *testing.T) {
	service, _ := setupLimitServiceTest()
	userID := uuid.New()
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	expense := expenseOn(userID, "Qida", "79.99", day)
	limits := []*domain.CategoryLimit{{UserID: userID, Category: "Qida", MonthlyLimit: decimal.RequireFromString("100")}}

	event := service.Evaluate(expense, limits, []*domain.Transaction{expense})
	if event != nil {
		t.Errorf("Expected no event below 80%%, got %s at %d%%", event.Kind, event.Percentage)
	}
}

func TestEvaluate_WarningAtEightyPercent(t *testing.T) {
	service, _ := setupLimitServiceTest()
	userID := uuid.New()
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	expense := expenseOn(userID, "Qida", "80", day)
	limits := []*domain.CategoryLimit{{UserID: userID, Category: "Qida", MonthlyLimit: decimal.RequireFromString("100")}}

	event := service.Evaluate(expense, limits, []*domain.Transaction{expense})
	if event == nil {
		t.Fatal("Expected a warning event at exactly 80%")
	}
	if event.Kind != domain.ThresholdWarning {
		t.Errorf("Expected warning, got %s", event.Kind)
	}
	if event.Percentage != 80 {
		t.Errorf("Expected percentage 80, got %d", event.Percentage)
	}
}

func TestEvaluate_WarningJustUnderLimit(t *testing.T) {
	service, _ := setupLimitServiceTest()
	userID := uuid.New()
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	expense := expenseOn(userID, "Qida", "99.99", day)
	limits := []*domain.CategoryLimit{{UserID: userID, Category: "Qida", MonthlyLimit: decimal.RequireFromString("100")}}

	event := service.Evaluate(expense, limits, []*domain.Transaction{expense})
	if event == nil {
		t.Fatal("Expected a warning event at 99.99%")
	}
	if event.Kind != domain.ThresholdWarning {
		t.Errorf("Expected warning, got %s", event.Kind)
	}
	if event.Percentage != 100 {
		t.Errorf("Expected rounded percentage 100, got %d", event.Percentage)
	}
}

func TestEvaluate_ExceededAtLimit(t *testing.T) {
	service, _ := setupLimitServiceTest()
	userID := uuid.New()
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	expense := expenseOn(userID, "Qida", "100", day)
	limits := []*domain.CategoryLimit{{UserID: userID, Category: "Qida", MonthlyLimit: decimal.RequireFromString("100")}}

	event := service.Evaluate(expense, limits, []*domain.Transaction{expense})
	if event == nil {
		t.Fatal("Expected an exceeded event at exactly 100%")
	}
	if event.Kind != domain.ThresholdExceeded {
		t.Errorf("Expected exceeded, got %s", event.Kind)
	}
	if event.Percentage != 100 {
		t.Errorf("Expected percentage 100, got %d", event.Percentage)
	}
}

func TestEvaluate_SumsMonthSpendAcrossTransactions(t *testing.T) {
	service, _ := setupLimitServiceTest()
	userID := uuid.New()
	day := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)

	earlier := expenseOn(userID, "Qida", "60", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
	expense := expenseOn(userID, "qida", "30", day)
	limits := []*domain.CategoryLimit{{UserID: userID, Category: "Qida", MonthlyLimit: decimal.RequireFromString("100")}}

	event := service.Evaluate(expense, limits, []*domain.Transaction{earlier, expense})
	if event == nil {
		t.Fatal("Expected a warning event at 90%")
	}
	if event.Kind != domain.ThresholdWarning {
		t.Errorf("Expected warning, got %s", event.Kind)
	}
	if event.Percentage != 90 {
		t.Errorf("Expected percentage 90, got %d", event.Percentage)
	}
	if !event.MonthTotal.Equal(decimal.RequireFromString("90")) {
		t.Errorf("Expected month total 90, got %s", event.MonthTotal.String())
	}
	if event.Category != "Qida" {
		t.Errorf("Expected event category from the limit, got %s", event.Category)
	}
}

func TestEvaluate_IgnoresOtherMonthsAndCategories(t *testing.T) {
	service, _ := setupLimitServiceTest()
	userID := uuid.New()
	day := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)

	lastMonth := expenseOn(userID, "Qida", "500", time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC))
	otherCategory := expenseOn(userID, "Transport", "500", day)
	income := &domain.Transaction{
		UserID:   userID,
		Type:     domain.TransactionTypeIncome,
		Category: "Qida",
		Amount:   decimal.RequireFromString("500"),
		Date:     day,
	}
	expense := expenseOn(userID, "Qida", "50", day)
	limits := []*domain.CategoryLimit{{UserID: userID, Category: "Qida", MonthlyLimit: decimal.RequireFromString("100")}}

	event := service.Evaluate(expense, limits, []*domain.Transaction{lastMonth, otherCategory, income, expense})
	if event != nil {
		t.Errorf("Expected no event at 50%%, got %s at %d%%", event.Kind, event.Percentage)
	}
}

func TestEvaluate_AbsoluteAmounts(t *testing.T) {
	service, _ := setupLimitServiceTest()
	userID := uuid.New()
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	// Negative stored amounts still count by magnitude
	expense := expenseOn(userID, "Qida", "-90", day)
	limits := []*domain.CategoryLimit{{UserID: userID, Category: "Qida", MonthlyLimit: decimal.RequireFromString("100")}}

	event := service.Evaluate(expense, limits, []*domain.Transaction{expense})
	if event == nil {
		t.Fatal("Expected a warning event at 90%")
	}
	if !event.MonthTotal.Equal(decimal.RequireFromString("90")) {
		t.Errorf("Expected month total 90, got %s", event.MonthTotal.String())
	}
}

func TestEvaluate_NoLimitForCategory(t *testing.T) {
	service, _ := setupLimitServiceTest()
	userID := uuid.New()
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	expense := expenseOn(userID, "Qida", "1000", day)
	limits := []*domain.CategoryLimit{{UserID: userID, Category: "Transport", MonthlyLimit: decimal.RequireFromString("100")}}

	event := service.Evaluate(expense, limits, []*domain.Transaction{expense})
	if event != nil {
		t.Errorf("Expected no event without a matching limit, got %s", event.Kind)
	}
}

func TestEvaluate_IncomeNeverEvaluated(t *testing.T) {
	service, _ := setupLimitServiceTest()
	userID := uuid.New()
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	income := &domain.Transaction{
		UserID:   userID,
		Type:     domain.TransactionTypeIncome,
		Category: "Qida",
		Amount:   decimal.RequireFromString("1000"),
		Date:     day,
	}
	limits := []*domain.CategoryLimit{{UserID: userID, Category: "Qida", MonthlyLimit: decimal.RequireFromString("100")}}

	event := service.Evaluate(income, limits, []*domain.Transaction{income})
	if event != nil {
		t.Errorf("Expected no event for income, got %s", event.Kind)
	}
}
