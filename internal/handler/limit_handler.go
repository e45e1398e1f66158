package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/manatly/manatly-backend/internal/middleware"
	"github.com/manatly/manatly-backend/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// LimitHandler handles category-limit HTTP requests
type LimitHandler struct {
	limitService *service.LimitService
}

// NewLimitHandler creates a new LimitHandler
func NewLimitHandler(limitService *service.LimitService) *LimitHandler {
	return &LimitHandler{limitService: limitService}
}

// SetLimitRequest represents the upsert limit request body
type SetLimitRequest struct {
	Category     string          `json:"category"`
	MonthlyLimit decimal.Decimal `json:"monthlyLimit"`
}

// GetLimits handles GET /api/settings/limits
func (h *LimitHandler) GetLimits(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "authentication required")
	}

	limits, err := h.limitService.ListLimits(userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return OK(c, http.StatusOK, limits)
}

// SetLimit handles POST /api/settings/limits (upsert by category)
func (h *LimitHandler) SetLimit(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "authentication required")
	}

	var req SetLimitRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body")
	}

	limit, err := h.limitService.SetLimit(userID, req.Category, req.MonthlyLimit)
	if err != nil {
		return respondServiceError(c, err)
	}

	log.Info().
		Str("user_id", userID.String()).
		Str("category", limit.Category).
		Str("monthly_limit", limit.MonthlyLimit.String()).
		Msg("Category limit set")

	return OK(c, http.StatusCreated, limit)
}

// DeleteLimit handles DELETE /api/settings/limits/:id
func (h *LimitHandler) DeleteLimit(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewNotFoundError(c, "resource not found")
	}

	if err := h.limitService.DeleteLimit(userID, id); err != nil {
		return respondServiceError(c, err)
	}

	return OK(c, http.StatusOK, nil)
}
