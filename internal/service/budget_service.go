package service

import (
	"context"
	"fmt"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetService derives budget progress by joining budgets to matching
// expense sums. Read-only; budgets themselves are created and edited by the
// CRUD layer.
type BudgetService struct {
	budgetReader  domain.BudgetReader
	expenseReader domain.ExpenseReader
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetReader domain.BudgetReader, expenseReader domain.ExpenseReader) *BudgetService {
	return &BudgetService{
		budgetReader:  budgetReader,
		expenseReader: expenseReader,
	}
}

// GetAll returns progress for every budget whose period overlaps the window
// (all budgets when window is nil). Spent always sums over the budget's own
// period, not the filter window.
func (s *BudgetService) GetAll(ctx context.Context, userID uuid.UUID, window *domain.DateRange) ([]*domain.BudgetProgress, error) {
	budgets, err := s.budgetReader.GetByUser(ctx, userID, window)
	if err != nil {
		return nil, fmt.Errorf("read budgets: %w", err)
	}

	out := make([]*domain.BudgetProgress, 0, len(budgets))
	for _, b := range budgets {
		progress, err := s.progressFor(ctx, b)
		if err != nil {
			return nil, err
		}
		out = append(out, progress)
	}
	return out, nil
}

// GetByID returns progress for a single budget. An id not owned by the user
// resolves to domain.ErrBudgetNotFound.
func (s *BudgetService) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.BudgetProgress, error) {
	budget, err := s.budgetReader.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return s.progressFor(ctx, budget)
}

// GetSummary aggregates all budgets overlapping the window into totals and
// near-limit / exceeded counts
func (s *BudgetService) GetSummary(ctx context.Context, userID uuid.UUID, window *domain.DateRange) (*domain.BudgetSummary, error) {
	all, err := s.GetAll(ctx, userID, window)
	if err != nil {
		return nil, err
	}

	summary := &domain.BudgetSummary{
		TotalBudget:    decimal.Zero,
		TotalSpent:     decimal.Zero,
		TotalRemaining: decimal.Zero,
		Percentage:     decimal.Zero,
	}
	for _, p := range all {
		summary.TotalBudget = summary.TotalBudget.Add(p.Budget.Amount)
		summary.TotalSpent = summary.TotalSpent.Add(p.Spent)
		if p.NearLimit() {
			summary.NearLimitCount++
		}
		if p.Exceeded() {
			summary.ExceededCount++
		}
	}
	summary.TotalRemaining = summary.TotalBudget.Sub(summary.TotalSpent)
	if summary.TotalBudget.IsPositive() {
		summary.Percentage = summary.TotalSpent.Div(summary.TotalBudget).Mul(oneHundred).Round(2)
	}

	return summary, nil
}

func (s *BudgetService) progressFor(ctx context.Context, b *domain.Budget) (*domain.BudgetProgress, error) {
	spent, err := s.expenseReader.SumByCategory(ctx, b.UserID, b.CategoryID, b.Currency, b.PeriodStart, b.PeriodEnd)
	if err != nil {
		return nil, fmt.Errorf("sum budget expenses: %w", err)
	}

	// Never clamped: a blown budget reports percentage > 100 and negative
	// remaining
	percentage := decimal.Zero
	if b.Amount.IsPositive() {
		percentage = spent.Div(b.Amount).Mul(oneHundred).Round(2)
	}

	return &domain.BudgetProgress{
		Budget:     b,
		Spent:      spent,
		Remaining:  b.Amount.Sub(spent),
		Percentage: percentage,
	}, nil
}
