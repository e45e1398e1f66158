package handler

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/manatly/manatly-backend/internal/middleware"
	"github.com/manatly/manatly-backend/internal/notify"
	"github.com/manatly/manatly-backend/internal/service"
	"github.com/manatly/manatly-backend/internal/testutil"
)

// handlerFixture bundles the handlers and their backing mocks for tests.
type handlerFixture struct {
	transactionHandler *TransactionHandler
	recurringHandler   *RecurringHandler
	limitHandler       *LimitHandler

	transactionRepo *testutil.MockTransactionRepository
	limitRepo       *testutil.MockCategoryLimitRepository
	scheduler       *notify.MemoryScheduler

	transactionService *service.TransactionService
	recurringService   *service.RecurringService
	limitService       *service.LimitService
}

func setupHandlers() *handlerFixture {
	transactionRepo := testutil.NewMockTransactionRepository()
	limitRepo := testutil.NewMockCategoryLimitRepository()
	scheduler := notify.NewMemoryScheduler()
	handles := notify.NewMemoryHandleStore()

	limitService := service.NewLimitService(limitRepo)
	reminderService := service.NewReminderService(scheduler, handles)
	transactionService := service.NewTransactionService(transactionRepo, limitRepo, limitService, reminderService, nil)
	recurringService := service.NewRecurringService(transactionService)

	return &handlerFixture{
		transactionHandler: NewTransactionHandler(transactionService),
		recurringHandler:   NewRecurringHandler(recurringService),
		limitHandler:       NewLimitHandler(limitService),
		transactionRepo:    transactionRepo,
		limitRepo:          limitRepo,
		scheduler:          scheduler,
		transactionService: transactionService,
		recurringService:   recurringService,
		limitService:       limitService,
	}
}

// setupUserContext injects a resolved user id the way the auth middleware
// does.
func setupUserContext(c echo.Context, userID uuid.UUID) {
	ctx := context.WithValue(c.Request().Context(), middleware.UserIDKey, userID)
	c.SetRequest(c.Request().WithContext(ctx))
}

// testEnvelope mirrors Envelope with raw data for per-test decoding.
type testEnvelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) testEnvelope {
	t.Helper()
	var env testEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("Failed to unmarshal envelope: %v", err)
	}
	return env
}

func utcDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
