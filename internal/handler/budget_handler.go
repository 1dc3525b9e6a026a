package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/centavo-app/centavo-backend/internal/middleware"
	"github.com/centavo-app/centavo-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// BudgetHandler handles budget-progress HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// BudgetProgressResponse is one budget with its derived progress
type BudgetProgressResponse struct {
	ID          string `json:"id"`
	CategoryID  string `json:"categoryId"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	PeriodStart string `json:"periodStart"`
	PeriodEnd   string `json:"periodEnd"`
	Repeat      bool   `json:"repeat"`
	Spent       string `json:"spent"`
	Remaining   string `json:"remaining"`
	Percentage  string `json:"percentage"`
	NearLimit   bool   `json:"nearLimit"`
	Exceeded    bool   `json:"exceeded"`
}

func toBudgetProgressResponse(p *domain.BudgetProgress) BudgetProgressResponse {
	return BudgetProgressResponse{
		ID:          p.Budget.ID.String(),
		CategoryID:  p.Budget.CategoryID.String(),
		Amount:      p.Budget.Amount.StringFixed(2),
		Currency:    string(p.Budget.Currency),
		PeriodStart: p.Budget.PeriodStart.Format(time.DateOnly),
		PeriodEnd:   p.Budget.PeriodEnd.Format(time.DateOnly),
		Repeat:      p.Budget.Repeat,
		Spent:       p.Spent.StringFixed(2),
		Remaining:   p.Remaining.StringFixed(2),
		Percentage:  p.Percentage.StringFixed(2),
		NearLimit:   p.NearLimit(),
		Exceeded:    p.Exceeded(),
	}
}

// GetAll handles GET /api/v1/budgets
func (h *BudgetHandler) GetAll(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	window, verrs := parseDateRange(c)
	if verrs != nil {
		return NewValidationError(c, "Invalid date range", verrs)
	}

	all, err := h.budgetService.GetAll(c.Request().Context(), userID, window)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get budgets")
		return NewInternalError(c, "Failed to get budgets")
	}

	resp := make([]BudgetProgressResponse, 0, len(all))
	for _, p := range all {
		resp = append(resp, toBudgetProgressResponse(p))
	}
	return c.JSON(http.StatusOK, resp)
}

// GetByID handles GET /api/v1/budgets/:id
func (h *BudgetHandler) GetByID(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid budget id", []ValidationError{{Field: "id", Message: "Must be a valid UUID"}})
	}

	progress, err := h.budgetService.GetByID(c.Request().Context(), userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("budget_id", id.String()).Msg("Failed to get budget")
		return NewInternalError(c, "Failed to get budget")
	}

	return c.JSON(http.StatusOK, toBudgetProgressResponse(progress))
}

// BudgetSummaryResponse is the budgets roll-up response
type BudgetSummaryResponse struct {
	TotalBudget    string `json:"totalBudget"`
	TotalSpent     string `json:"totalSpent"`
	TotalRemaining string `json:"totalRemaining"`
	Percentage     string `json:"percentage"`
	NearLimitCount int    `json:"nearLimitCount"`
	ExceededCount  int    `json:"exceededCount"`
}

// GetSummary handles GET /api/v1/budgets/summary
func (h *BudgetHandler) GetSummary(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	window, verrs := parseDateRange(c)
	if verrs != nil {
		return NewValidationError(c, "Invalid date range", verrs)
	}

	summary, err := h.budgetService.GetSummary(c.Request().Context(), userID, window)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get budget summary")
		return NewInternalError(c, "Failed to get budget summary")
	}

	return c.JSON(http.StatusOK, BudgetSummaryResponse{
		TotalBudget:    summary.TotalBudget.StringFixed(2),
		TotalSpent:     summary.TotalSpent.StringFixed(2),
		TotalRemaining: summary.TotalRemaining.StringFixed(2),
		Percentage:     summary.Percentage.StringFixed(2),
		NearLimitCount: summary.NearLimitCount,
		ExceededCount:  summary.ExceededCount,
	})
}
