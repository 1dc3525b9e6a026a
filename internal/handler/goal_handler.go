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

// GoalHandler handles goal-progress HTTP requests
type GoalHandler struct {
	goalService *service.GoalService
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// GoalProgressResponse is one goal with its derived progress
type GoalProgressResponse struct {
	ID                           string `json:"id"`
	Name                         string `json:"name"`
	TargetAmount                 string `json:"targetAmount"`
	Currency                     string `json:"currency"`
	TargetDate                   string `json:"targetDate"`
	CalculationMode              string `json:"calculationMode"`
	Status                       string `json:"status"`
	CurrentAmount                string `json:"currentAmount"`
	Remaining                    string `json:"remaining"`
	Percentage                   string `json:"percentage"`
	MonthsRemaining              int    `json:"monthsRemaining"`
	SuggestedMonthlyContribution string `json:"suggestedMonthlyContribution"`
	IsAtRisk                     bool   `json:"isAtRisk"`
}

func toGoalProgressResponse(p *domain.GoalProgress) GoalProgressResponse {
	return GoalProgressResponse{
		ID:                           p.Goal.ID.String(),
		Name:                         p.Goal.Name,
		TargetAmount:                 p.Goal.TargetAmount.StringFixed(2),
		Currency:                     string(p.Goal.Currency),
		TargetDate:                   p.Goal.TargetDate.Format(time.DateOnly),
		CalculationMode:              string(p.Goal.CalculationMode),
		Status:                       string(p.Goal.Status),
		CurrentAmount:                p.CurrentAmount.StringFixed(2),
		Remaining:                    p.Remaining.StringFixed(2),
		Percentage:                   p.Percentage.StringFixed(2),
		MonthsRemaining:              p.MonthsRemaining,
		SuggestedMonthlyContribution: p.SuggestedMonthlyContribution.StringFixed(2),
		IsAtRisk:                     p.IsAtRisk,
	}
}

// GetAll handles GET /api/v1/goals
func (h *GoalHandler) GetAll(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	var status *domain.GoalStatus
	if raw := c.QueryParam("status"); raw != "" {
		st := domain.GoalStatus(raw)
		switch st {
		case domain.GoalStatusActive, domain.GoalStatusCompleted, domain.GoalStatusPaused:
			status = &st
		default:
			return NewValidationError(c, "Invalid status", []ValidationError{{Field: "status", Message: "Must be ACTIVE, COMPLETED or PAUSED"}})
		}
	}

	all, err := h.goalService.GetAll(c.Request().Context(), userID, status)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get goals")
		return NewInternalError(c, "Failed to get goals")
	}

	resp := make([]GoalProgressResponse, 0, len(all))
	for _, p := range all {
		resp = append(resp, toGoalProgressResponse(p))
	}
	return c.JSON(http.StatusOK, resp)
}

// GetByID handles GET /api/v1/goals/:id
func (h *GoalHandler) GetByID(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid goal id", []ValidationError{{Field: "id", Message: "Must be a valid UUID"}})
	}

	progress, err := h.goalService.GetByID(c.Request().Context(), userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			return NewNotFoundError(c, "Goal not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("goal_id", id.String()).Msg("Failed to get goal")
		return NewInternalError(c, "Failed to get goal")
	}

	return c.JSON(http.StatusOK, toGoalProgressResponse(progress))
}

// GoalSummaryResponse is the goals roll-up response (ACTIVE goals only)
type GoalSummaryResponse struct {
	TotalTarget     string `json:"totalTarget"`
	TotalCurrent    string `json:"totalCurrent"`
	Percentage      string `json:"percentage"`
	CompletedCount  int    `json:"completedCount"`
	InProgressCount int    `json:"inProgressCount"`
	AtRiskCount     int    `json:"atRiskCount"`
}

// GetSummary handles GET /api/v1/goals/summary
func (h *GoalHandler) GetSummary(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	summary, err := h.goalService.GetSummary(c.Request().Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get goal summary")
		return NewInternalError(c, "Failed to get goal summary")
	}

	return c.JSON(http.StatusOK, GoalSummaryResponse{
		TotalTarget:     summary.TotalTarget.StringFixed(2),
		TotalCurrent:    summary.TotalCurrent.StringFixed(2),
		Percentage:      summary.Percentage.StringFixed(2),
		CompletedCount:  summary.CompletedCount,
		InProgressCount: summary.InProgressCount,
		AtRiskCount:     summary.AtRiskCount,
	})
}
