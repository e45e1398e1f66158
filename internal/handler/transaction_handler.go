package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/manatly/manatly-backend/internal/domain"
	"github.com/manatly/manatly-backend/internal/middleware"
	"github.com/manatly/manatly-backend/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the create transaction request body
type CreateTransactionRequest struct {
	Type          string             `json:"type"`
	Category      string             `json:"category"`
	Amount        decimal.Decimal    `json:"amount"`
	Note          *string            `json:"note,omitempty"`
	Date          *string            `json:"date,omitempty"`
	IsRecurring   *bool              `json:"isRecurring,omitempty"`
	RepeatRule    *RepeatRuleRequest `json:"repeatRule,omitempty"`
	Notify        *bool              `json:"notify,omitempty"`
	NextTriggerAt *string            `json:"nextTriggerAt,omitempty"`
}

func (req *CreateTransactionRequest) toInput() (service.CreateTransactionInput, error) {
	input := service.CreateTransactionInput{
		Type:     domain.TransactionType(req.Type),
		Category: req.Category,
		Amount:   req.Amount,
		Note:     req.Note,
	}

	if req.Date != nil && *req.Date != "" {
		date, err := parseDate(*req.Date)
		if err != nil {
			return input, err
		}
		input.Date = &date
	}

	if req.IsRecurring != nil {
		input.IsRecurring = *req.IsRecurring
	}
	if req.Notify != nil {
		input.Notify = *req.Notify
	}
	if req.RepeatRule != nil {
		rule := req.RepeatRule.toDomain()
		input.RepeatRule = &rule
	}

	// An explicit nextTriggerAt is honored verbatim; it still has to be a
	// parseable date.
	if req.NextTriggerAt != nil && *req.NextTriggerAt != "" {
		next, err := parseDate(*req.NextTriggerAt)
		if err != nil {
			return input, err
		}
		input.NextTriggerAt = &next
	}

	return input, nil
}

// CreateTransaction handles POST /api/transactions
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "authentication required")
	}

	var req CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body")
	}

	input, err := req.toInput()
	if err != nil {
		return respondServiceError(c, err)
	}

	transaction, _, err := h.transactionService.CreateTransaction(userID, input)
	if err != nil {
		return respondServiceError(c, err)
	}

	log.Info().
		Str("user_id", userID.String()).
		Str("transaction_id", transaction.ID.String()).
		Str("type", string(transaction.Type)).
		Bool("is_recurring", transaction.IsRecurring).
		Msg("Transaction created")

	return OK(c, http.StatusCreated, transaction)
}

// GetTransactions handles GET /api/transactions?month=YYYY-MM
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "authentication required")
	}

	key, err := domain.ParseMonthKey(c.QueryParam("month"))
	if err != nil {
		return respondServiceError(c, err)
	}

	transactions, err := h.transactionService.ListByMonth(userID, key)
	if err != nil {
		return respondServiceError(c, err)
	}

	return OK(c, http.StatusOK, transactions)
}

// GetSummary handles GET /api/transactions/summary?month=YYYY-MM
func (h *TransactionHandler) GetSummary(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "authentication required")
	}

	key, err := domain.ParseMonthKey(c.QueryParam("month"))
	if err != nil {
		return respondServiceError(c, err)
	}

	summary, err := h.transactionService.MonthlySummary(userID, key)
	if err != nil {
		return respondServiceError(c, err)
	}

	return OK(c, http.StatusOK, summary)
}

// UpdateTransactionRequest represents the partial update request body for
// one-off transactions: only amount, category and note may change here.
type UpdateTransactionRequest struct {
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	Category *string          `json:"category,omitempty"`
	Note     OptionalString   `json:"note"`
}

// UpdateTransaction handles PATCH /api/transactions/:id
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewNotFoundError(c, "resource not found")
	}

	var req UpdateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body")
	}

	input := service.UpdateTransactionInput{
		Amount:   req.Amount,
		Category: req.Category,
	}
	if req.Note.Set {
		if req.Note.Valid {
			note := req.Note.Value
			input.Note = &note
		} else {
			input.ClearNote = true
		}
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, id, input)
	if err != nil {
		return respondServiceError(c, err)
	}

	return OK(c, http.StatusOK, transaction)
}

// DeleteTransaction handles DELETE /api/transactions/:id
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewNotFoundError(c, "resource not found")
	}

	if err := h.transactionService.DeleteTransaction(userID, id); err != nil {
		return respondServiceError(c, err)
	}

	log.Info().
		Str("user_id", userID.String()).
		Str("transaction_id", id.String()).
		Msg("Transaction deleted")

	return OK(c, http.StatusOK, nil)
}
