package handler

import (
	"net/http"
	"sort"
	"time"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/centavo-app/centavo-backend/internal/middleware"
	"github.com/centavo-app/centavo-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// AnalyticsHandler handles analytics-related HTTP requests
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
	alertService     *service.AlertService
	pair             domain.CurrencyPair
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService *service.AnalyticsService, alertService *service.AlertService, pair domain.CurrencyPair) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		alertService:     alertService,
		pair:             pair,
	}
}

// CurrencyTotalsResponse is one currency's figures in the summary response
type CurrencyTotalsResponse struct {
	Currency       string `json:"currency"`
	Income         string `json:"income"`
	Expenses       string `json:"expenses"`
	Balance        string `json:"balance"`
	SavingsRate    string `json:"savingsRate"`
	DepositCount   int    `json:"depositCount"`
	DepositValue   string `json:"depositValue"`
	PortfolioValue string `json:"portfolioValue"`
	NetWorth       string `json:"netWorth"`
}

// SummaryResponse is the summary API response
type SummaryResponse struct {
	Totals     []CurrencyTotalsResponse `json:"totals"`
	FoldedInto *string                  `json:"foldedInto,omitempty"`
}

// GetSummary handles GET /api/v1/analytics/summary
func (h *AnalyticsHandler) GetSummary(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	rng, verrs := parseDateRange(c)
	if verrs != nil {
		return NewValidationError(c, "Invalid date range", verrs)
	}

	var target *domain.Currency
	if cur := c.QueryParam("currency"); cur != "" {
		t := domain.Currency(cur)
		if !h.pair.Contains(t) {
			return NewValidationError(c, "Unsupported currency", []ValidationError{{Field: "currency", Message: "Must be one of the configured currencies"}})
		}
		target = &t
	}

	summary, err := h.analyticsService.GetSummary(c.Request().Context(), userID, rng, target)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get summary")
		return NewInternalError(c, "Failed to get summary")
	}

	return c.JSON(http.StatusOK, toSummaryResponse(summary, h.pair))
}

func toSummaryResponse(s *domain.Summary, pair domain.CurrencyPair) SummaryResponse {
	currencies := make([]domain.Currency, 0, len(s.Totals))
	for cur := range s.Totals {
		if !pair.Contains(cur) {
			currencies = append(currencies, cur)
		}
	}
	sort.Slice(currencies, func(i, j int) bool { return currencies[i] < currencies[j] })
	// Configured pair first, extras after in code order
	currencies = append([]domain.Currency{pair.Primary, pair.Secondary}, currencies...)

	resp := SummaryResponse{Totals: make([]CurrencyTotalsResponse, 0, len(currencies))}
	for _, cur := range currencies {
		t, ok := s.Totals[cur]
		if !ok {
			continue
		}
		resp.Totals = append(resp.Totals, CurrencyTotalsResponse{
			Currency:       string(t.Currency),
			Income:         t.Income.StringFixed(2),
			Expenses:       t.Expenses.StringFixed(2),
			Balance:        t.Balance.StringFixed(2),
			SavingsRate:    t.SavingsRate.StringFixed(2),
			DepositCount:   t.DepositCount,
			DepositValue:   t.DepositValue.StringFixed(2),
			PortfolioValue: t.PortfolioValue.StringFixed(2),
			NetWorth:       t.NetWorth.StringFixed(2),
		})
	}
	if s.FoldedInto != nil {
		folded := string(*s.FoldedInto)
		resp.FoldedInto = &folded
	}
	return resp
}

// CategoryBreakdownResponse is one row of the expenses-by-category response
type CategoryBreakdownResponse struct {
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	Total        string `json:"total"`
	Percentage   string `json:"percentage"`
}

// GetExpensesByCategory handles GET /api/v1/analytics/expenses-by-category
func (h *AnalyticsHandler) GetExpensesByCategory(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	rng, verrs := parseDateRange(c)
	if verrs != nil {
		return NewValidationError(c, "Invalid date range", verrs)
	}

	rows, err := h.analyticsService.GetExpensesByCategory(c.Request().Context(), userID, rng)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get expenses by category")
		return NewInternalError(c, "Failed to get expenses by category")
	}

	resp := make([]CategoryBreakdownResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, CategoryBreakdownResponse{
			CategoryID:   row.CategoryID.String(),
			CategoryName: row.CategoryName,
			Total:        row.Total.StringFixed(2),
			Percentage:   row.Percentage.StringFixed(2),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// DailyFlowResponse is one day of the income-vs-expense response
type DailyFlowResponse struct {
	Date    string `json:"date"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

// GetIncomeVsExpense handles GET /api/v1/analytics/income-vs-expense
func (h *AnalyticsHandler) GetIncomeVsExpense(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	rng, verrs := parseDateRange(c)
	if verrs != nil {
		return NewValidationError(c, "Invalid date range", verrs)
	}

	flows, err := h.analyticsService.GetIncomeVsExpense(c.Request().Context(), userID, rng)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get income vs expense")
		return NewInternalError(c, "Failed to get income vs expense")
	}

	resp := make([]DailyFlowResponse, 0, len(flows))
	for _, f := range flows {
		resp = append(resp, DailyFlowResponse{
			Date:    f.Date.Format(time.DateOnly),
			Income:  f.Income.StringFixed(2),
			Expense: f.Expense.StringFixed(2),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// MonthlyFlowResponse is one month of the cash-flow response
type MonthlyFlowResponse struct {
	Month   string `json:"month"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Balance string `json:"balance"`
}

// GetCashFlow handles GET /api/v1/analytics/cash-flow
func (h *AnalyticsHandler) GetCashFlow(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	rng, verrs := parseDateRange(c)
	if verrs != nil {
		return NewValidationError(c, "Invalid date range", verrs)
	}

	flows, err := h.analyticsService.GetCashFlow(c.Request().Context(), userID, rng)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get cash flow")
		return NewInternalError(c, "Failed to get cash flow")
	}

	resp := make([]MonthlyFlowResponse, 0, len(flows))
	for _, f := range flows {
		resp = append(resp, MonthlyFlowResponse{
			Month:   f.Month,
			Income:  f.Income.StringFixed(2),
			Expense: f.Expense.StringFixed(2),
			Balance: f.Balance.StringFixed(2),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// AlertResponse is one alert in the alerts response
type AlertResponse struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// GetAlerts handles GET /api/v1/analytics/alerts
func (h *AnalyticsHandler) GetAlerts(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	alerts, err := h.alertService.GetAlerts(c.Request().Context(), userID, time.Now())
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get alerts")
		return NewInternalError(c, "Failed to get alerts")
	}

	resp := make([]AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		resp = append(resp, AlertResponse{
			Type:     string(a.Type),
			Severity: string(a.Severity),
			Message:  a.Message,
		})
	}
	return c.JSON(http.StatusOK, resp)
}
