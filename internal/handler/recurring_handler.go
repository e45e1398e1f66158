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

// RecurringHandler handles recurring-transaction HTTP requests
type RecurringHandler struct {
	recurringService *service.RecurringService
}

// NewRecurringHandler creates a new RecurringHandler
func NewRecurringHandler(recurringService *service.RecurringService) *RecurringHandler {
	return &RecurringHandler{recurringService: recurringService}
}

// CreateRecurringRequest represents the create recurring transaction request
// body. The repeat rule is mandatory on this surface.
type CreateRecurringRequest struct {
	Type          string             `json:"type"`
	Category      string             `json:"category"`
	Amount        decimal.Decimal    `json:"amount"`
	Note          *string            `json:"note,omitempty"`
	Date          *string            `json:"date,omitempty"`
	RepeatRule    *RepeatRuleRequest `json:"repeatRule"`
	Notify        *bool              `json:"notify,omitempty"`
	NextTriggerAt *string            `json:"nextTriggerAt,omitempty"`
}

// CreateRecurring handles POST /api/recurring
func (h *RecurringHandler) CreateRecurring(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "authentication required")
	}

	var req CreateRecurringRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body")
	}

	if req.RepeatRule == nil {
		return NewValidationError(c, domain.ErrRepeatRuleRequired.Error())
	}

	rule := req.RepeatRule.toDomain()
	input := service.CreateTransactionInput{
		Type:       domain.TransactionType(req.Type),
		Category:   req.Category,
		Amount:     req.Amount,
		Note:       req.Note,
		RepeatRule: &rule,
	}

	if req.Date != nil && *req.Date != "" {
		date, err := parseDate(*req.Date)
		if err != nil {
			return respondServiceError(c, err)
		}
		input.Date = &date
	}
	if req.Notify != nil {
		input.Notify = *req.Notify
	}
	if req.NextTriggerAt != nil && *req.NextTriggerAt != "" {
		next, err := parseDate(*req.NextTriggerAt)
		if err != nil {
			return respondServiceError(c, err)
		}
		input.NextTriggerAt = &next
	}

	transaction, _, err := h.recurringService.CreateRecurring(userID, input)
	if err != nil {
		return respondServiceError(c, err)
	}

	log.Info().
		Str("user_id", userID.String()).
		Str("transaction_id", transaction.ID.String()).
		Str("freq", string(transaction.RepeatRule.Freq)).
		Msg("Recurring transaction created")

	return OK(c, http.StatusCreated, transaction)
}

// GetRecurring handles GET /api/recurring
func (h *RecurringHandler) GetRecurring(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "authentication required")
	}

	transactions, err := h.recurringService.ListRecurring(userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return OK(c, http.StatusOK, transactions)
}

// UpdateRecurringRequest represents the partial update request body for
// recurring transactions.
type UpdateRecurringRequest struct {
	Amount                 *decimal.Decimal   `json:"amount,omitempty"`
	Category               *string            `json:"category,omitempty"`
	Note                   OptionalString     `json:"note"`
	Type                   *string            `json:"type,omitempty"`
	Date                   *string            `json:"date,omitempty"`
	RepeatRule             *RepeatRuleRequest `json:"repeatRule,omitempty"`
	Notify                 *bool              `json:"notify,omitempty"`
	RecalculateNextTrigger bool               `json:"recalculateNextTrigger,omitempty"`
	NextTriggerAt          *string            `json:"nextTriggerAt,omitempty"`
}

// UpdateRecurring handles PATCH /api/recurring/:id
func (h *RecurringHandler) UpdateRecurring(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewNotFoundError(c, "resource not found")
	}

	var req UpdateRecurringRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body")
	}

	input := service.UpdateTransactionInput{
		Amount:                 req.Amount,
		Category:               req.Category,
		Notify:                 req.Notify,
		RecalculateNextTrigger: req.RecalculateNextTrigger,
	}

	if req.Note.Set {
		if req.Note.Valid {
			note := req.Note.Value
			input.Note = &note
		} else {
			input.ClearNote = true
		}
	}
	if req.Type != nil {
		transactionType := domain.TransactionType(*req.Type)
		input.Type = &transactionType
	}
	if req.Date != nil && *req.Date != "" {
		date, err := parseDate(*req.Date)
		if err != nil {
			return respondServiceError(c, err)
		}
		input.Date = &date
	}
	if req.RepeatRule != nil {
		rule := req.RepeatRule.toDomain()
		input.RepeatRule = &rule
	}
	if req.NextTriggerAt != nil && *req.NextTriggerAt != "" {
		next, err := parseDate(*req.NextTriggerAt)
		if err != nil {
			return respondServiceError(c, err)
		}
		input.NextTriggerAt = &next
	}

	transaction, err := h.recurringService.UpdateRecurring(userID, id, input)
	if err != nil {
		return respondServiceError(c, err)
	}

	return OK(c, http.StatusOK, transaction)
}

// DeleteRecurring handles DELETE /api/recurring/:id
func (h *RecurringHandler) DeleteRecurring(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewNotFoundError(c, "resource not found")
	}

	if err := h.recurringService.DeleteRecurring(userID, id); err != nil {
		return respondServiceError(c, err)
	}

	log.Info().
		Str("user_id", userID.String()).
		Str("transaction_id", id.String()).
		Msg("Recurring transaction deleted")

	return OK(c, http.StatusOK, nil)
}
