package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/manatly/manatly-backend/internal/domain"
	"github.com/shopspring/decimal"
)

func TestCreateRecurring_Success(t *testing.T) {
	e := echo.New()
	f := setupHandlers()
	userID := uuid.New()

	reqBody := `{"type": "expense", "category": "Rent", "amount": 800, "date": "2024-01-31", "repeatRule": {"freq": "monthly"}, "notify": true}`
	req := httptest.NewRequest(http.MethodPost, "/api/recurring", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupUserContext(c, userID)

	if err := f.recurringHandler.CreateRecurring(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	env := decodeEnvelope(t, rec.Body.Bytes())
	var transaction domain.Transaction
	if err := json.Unmarshal(env.Data, &transaction); err != nil {
		t.Fatalf("Failed to unmarshal transaction: %v", err)
	}

	if !transaction.IsRecurring {
		t.Error("Expected IsRecurring true")
	}
	if transaction.RepeatRule == nil || transaction.RepeatRule.Freq != domain.FrequencyMonthly {
		t.Error("Expected monthly repeat rule")
	}
	if transaction.NextTriggerAt == nil || !transaction.NextTriggerAt.Equal(utcDate(2024, 2, 29)) {
		t.Errorf("Expected nextTriggerAt 2024-02-29, got %v", transaction.NextTriggerAt)
	}
	if !transaction.Notify {
		t.Error("Expected notify true")
	}
	if f.scheduler.PendingCount() != 1 {
		t.Errorf("Expected 1 scheduled reminder, got %d", f.scheduler.PendingCount())
	}
}

func TestCreateRecurring_MissingRule(t *testing.T) {
	e := echo.New()
	f := setupHandlers()

	reqBody := `{"type": "expense", "category": "Rent", "amount": 800}`
	req := httptest.NewRequest(http.MethodPost, "/api/recurring", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupUserContext(c, uuid.New())

	_ = f.recurringHandler.CreateRecurring(c)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCreateRecurring_InvalidRule(t *testing.T) {
	e := echo.New()
	f := setupHandlers()

	reqBody := `{"type": "expense", "category": "Rent", "amount": 800, "repeatRule": {"freq": "monthly", "dayOfMonth": 32}}`
	req := httptest.NewRequest(http.MethodPost, "/api/recurring", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupUserContext(c, uuid.New())

	_ = f.recurringHandler.CreateRecurring(c)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetRecurring_Success(t *testing.T) {
	e := echo.New()
	f := setupHandlers()
	userID := uuid.New()

	next := utcDate(2024, 4, 1)
	f.transactionRepo.AddTransaction(&domain.Transaction{
		UserID:        userID,
		Type:          domain.TransactionTypeExpense,
		Category:      "Rent",
		Amount:        decimal.RequireFromString("800"),
		Date:          utcDate(2024, 3, 1),
		IsRecurring:   true,
		RepeatRule:    &domain.RepeatRule{Freq: domain.FrequencyMonthly},
		NextTriggerAt: &next,
	})
	f.transactionRepo.AddTransaction(&domain.Transaction{
		UserID:   userID,
		Type:     domain.TransactionTypeExpense,
		Category: "Qida",
		Amount:   decimal.RequireFromString("20"),
		Date:     utcDate(2024, 3, 5),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/recurring", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupUserContext(c, userID)

	if err := f.recurringHandler.GetRecurring(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	env := decodeEnvelope(t, rec.Body.Bytes())
	var transactions []domain.Transaction
	if err := json.Unmarshal(env.Data, &transactions); err != nil {
		t.Fatalf("Failed to unmarshal transactions: %v", err)
	}

	if len(transactions) != 1 {
		t.Fatalf("Expected 1 recurring transaction, got %d", len(transactions))
	}
	if transactions[0].Category != "Rent" {
		t.Errorf("Expected 'Rent', got %s", transactions[0].Category)
	}
}

func TestUpdateRecurring_DateRecomputesNextTrigger(t *testing.T) {
	e := echo.New()
	f := setupHandlers()
	userID := uuid.New()

	next := utcDate(2024, 2, 29)
	existing := &domain.Transaction{
		UserID:        userID,
		Type:          domain.TransactionTypeExpense,
		Category:      "Rent",
		Amount:        decimal.RequireFromString("800"),
		Date:          utcDate(2024, 1, 31),
		IsRecurring:   true,
		RepeatRule:    &domain.RepeatRule{Freq: domain.FrequencyMonthly},
		NextTriggerAt: &next,
	}
	f.transactionRepo.AddTransaction(existing)

	reqBody := `{"date": "2024-03-15", "recalculateNextTrigger": true}`
	req := httptest.NewRequest(http.MethodPatch, "/api/recurring/"+existing.ID.String(), strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(existing.ID.String())
	setupUserContext(c, userID)

	if err := f.recurringHandler.UpdateRecurring(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	env := decodeEnvelope(t, rec.Body.Bytes())
	var transaction domain.Transaction
	if err := json.Unmarshal(env.Data, &transaction); err != nil {
		t.Fatalf("Failed to unmarshal transaction: %v", err)
	}

	if transaction.NextTriggerAt == nil || !transaction.NextTriggerAt.Equal(utcDate(2024, 4, 15)) {
		t.Errorf("Expected nextTriggerAt 2024-04-15, got %v", transaction.NextTriggerAt)
	}
}

func TestUpdateRecurring_OneOffRejected(t *testing.T) {
	e := echo.New()
	f := setupHandlers()
	userID := uuid.New()

	existing := &domain.Transaction{
		UserID:   userID,
		Type:     domain.TransactionTypeExpense,
		Category: "Qida",
		Amount:   decimal.RequireFromString("20"),
		Date:     utcDate(2024, 3, 5),
	}
	f.transactionRepo.AddTransaction(existing)

	reqBody := `{"amount": 30}`
	req := httptest.NewRequest(http.MethodPatch, "/api/recurring/"+existing.ID.String(), strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(existing.ID.String())
	setupUserContext(c, userID)

	_ = f.recurringHandler.UpdateRecurring(c)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for one-off id on recurring surface, got %d", rec.Code)
	}
}

func TestDeleteRecurring_Success(t *testing.T) {
	e := echo.New()
	f := setupHandlers()
	userID := uuid.New()

	next := utcDate(2024, 4, 1)
	existing := &domain.Transaction{
		UserID:        userID,
		Type:          domain.TransactionTypeExpense,
		Category:      "Rent",
		Amount:        decimal.RequireFromString("800"),
		Date:          utcDate(2024, 3, 1),
		IsRecurring:   true,
		RepeatRule:    &domain.RepeatRule{Freq: domain.FrequencyMonthly},
		NextTriggerAt: &next,
	}
	f.transactionRepo.AddTransaction(existing)

	req := httptest.NewRequest(http.MethodDelete, "/api/recurring/"+existing.ID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(existing.ID.String())
	setupUserContext(c, userID)

	if err := f.recurringHandler.DeleteRecurring(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if len(f.transactionRepo.Transactions) != 0 {
		t.Errorf("Expected transaction removed, %d left", len(f.transactionRepo.Transactions))
	}
}
