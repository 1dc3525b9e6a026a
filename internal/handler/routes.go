package handler

import (
	"github.com/centavo-app/centavo-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.GatewayAuthMiddleware, rateLimiter *middleware.RateLimiter, analyticsHandler *AnalyticsHandler, budgetHandler *BudgetHandler, goalHandler *GoalHandler, wsHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")
	api.Use(authMiddleware.Authenticate())
	api.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Analytics routes
	analytics := api.Group("/analytics")
	analytics.GET("/summary", analyticsHandler.GetSummary)
	analytics.GET("/expenses-by-category", analyticsHandler.GetExpensesByCategory)
	analytics.GET("/income-vs-expense", analyticsHandler.GetIncomeVsExpense)
	analytics.GET("/cash-flow", analyticsHandler.GetCashFlow)
	analytics.GET("/alerts", analyticsHandler.GetAlerts)

	// Budget routes
	budgets := api.Group("/budgets")
	budgets.GET("", budgetHandler.GetAll)
	budgets.GET("/summary", budgetHandler.GetSummary)
	budgets.GET("/:id", budgetHandler.GetByID)

	// Goal routes
	goals := api.Group("/goals")
	goals.GET("", goalHandler.GetAll)
	goals.GET("/summary", goalHandler.GetSummary)
	goals.GET("/:id", goalHandler.GetByID)

	// WebSocket endpoint, authenticated by the same gateway header
	ws := e.Group("/ws")
	ws.Use(authMiddleware.Authenticate())
	ws.GET("", wsHandler.HandleWS)
}
