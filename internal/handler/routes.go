package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/manatly/manatly-backend/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, transactionHandler *TransactionHandler, recurringHandler *RecurringHandler, limitHandler *LimitHandler, wsHandler *WebSocketHandler) {
	api := e.Group("/api")

	// WebSocket upgrade authenticates through its own query-param token
	if wsHandler != nil {
		api.GET("/ws", wsHandler.HandleWS)
	}

	protected := api.Group("")
	protected.Use(authMiddleware.Authenticate())
	if rateLimiter != nil {
		protected.Use(middleware.RateLimitMiddleware(rateLimiter))
	}

	// Transaction routes
	protected.POST("/transactions", transactionHandler.CreateTransaction)
	protected.GET("/transactions", transactionHandler.GetTransactions)
	protected.GET("/transactions/summary", transactionHandler.GetSummary)
	protected.PATCH("/transactions/:id", transactionHandler.UpdateTransaction)
	protected.DELETE("/transactions/:id", transactionHandler.DeleteTransaction)

	// Recurring transaction routes
	protected.POST("/recurring", recurringHandler.CreateRecurring)
	protected.GET("/recurring", recurringHandler.GetRecurring)
	protected.PATCH("/recurring/:id", recurringHandler.UpdateRecurring)
	protected.DELETE("/recurring/:id", recurringHandler.DeleteRecurring)

	// Category limit routes
	protected.GET("/settings/limits", limitHandler.GetLimits)
	protected.POST("/settings/limits", limitHandler.SetLimit)
	protected.DELETE("/settings/limits/:id", limitHandler.DeleteLimit)
}
