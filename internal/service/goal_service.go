package service

import (
	"context"
	"fmt"
	"time"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/centavo-app/centavo-backend/internal/util"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(domain.GoalRiskWindowMonths)

// GoalService derives savings-goal progress. Read-only; goals themselves are
// created and edited by the CRUD layer.
type GoalService struct {
	goalReader    domain.GoalReader
	expenseReader domain.ExpenseReader
	now           func() time.Time
}

// NewGoalService creates a new GoalService
func NewGoalService(goalReader domain.GoalReader, expenseReader domain.ExpenseReader) *GoalService {
	return &GoalService{
		goalReader:    goalReader,
		expenseReader: expenseReader,
		now:           time.Now,
	}
}

// GetAll returns progress for the user's goals, optionally filtered by status
func (s *GoalService) GetAll(ctx context.Context, userID uuid.UUID, status *domain.GoalStatus) ([]*domain.GoalProgress, error) {
	goals, err := s.goalReader.GetByUser(ctx, userID, status)
	if err != nil {
		return nil, fmt.Errorf("read goals: %w", err)
	}

	out := make([]*domain.GoalProgress, 0, len(goals))
	for _, g := range goals {
		progress, err := s.progressFor(ctx, g)
		if err != nil {
			return nil, err
		}
		out = append(out, progress)
	}
	return out, nil
}

// GetByID returns progress for a single goal. An id not owned by the user
// resolves to domain.ErrGoalNotFound.
func (s *GoalService) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.GoalProgress, error) {
	goal, err := s.goalReader.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return s.progressFor(ctx, goal)
}

// GetSummary aggregates ACTIVE goals only
func (s *GoalService) GetSummary(ctx context.Context, userID uuid.UUID) (*domain.GoalSummary, error) {
	active := domain.GoalStatusActive
	all, err := s.GetAll(ctx, userID, &active)
	if err != nil {
		return nil, err
	}

	summary := &domain.GoalSummary{
		TotalTarget:  decimal.Zero,
		TotalCurrent: decimal.Zero,
		Percentage:   decimal.Zero,
	}
	for _, p := range all {
		summary.TotalTarget = summary.TotalTarget.Add(p.Goal.TargetAmount)
		summary.TotalCurrent = summary.TotalCurrent.Add(p.CurrentAmount)
		switch {
		case p.Percentage.GreaterThanOrEqual(oneHundred):
			summary.CompletedCount++
		case p.Percentage.IsPositive():
			summary.InProgressCount++
		}
		if p.IsAtRisk {
			summary.AtRiskCount++
		}
	}
	if summary.TotalTarget.IsPositive() {
		summary.Percentage = summary.TotalCurrent.Div(summary.TotalTarget).Mul(oneHundred).Round(2)
	}

	return summary, nil
}

func (s *GoalService) progressFor(ctx context.Context, g *domain.Goal) (*domain.GoalProgress, error) {
	current, err := s.currentAmount(ctx, g)
	if err != nil {
		return nil, err
	}

	percentage := decimal.Zero
	if g.TargetAmount.IsPositive() {
		percentage = current.Div(g.TargetAmount).Mul(oneHundred).Round(2)
	}
	remaining := g.TargetAmount.Sub(current)
	months := monthsRemaining(s.now(), g.TargetDate)

	suggested := decimal.Zero
	if months > 0 {
		suggested = remaining.Div(decimal.NewFromInt(int64(months))).Round(2)
	}

	return &domain.GoalProgress{
		Goal:                         g,
		CurrentAmount:                current,
		Remaining:                    remaining,
		Percentage:                   percentage,
		MonthsRemaining:              months,
		SuggestedMonthlyContribution: suggested,
		IsAtRisk:                     isAtRisk(current, g.TargetAmount, months),
	}, nil
}

// currentAmount resolves the goal's accumulated amount. TAG_SUM sums tagged
// expenses; ACCOUNT_BALANCE has no balance model yet and contributes 0 unless
// a tag key is also configured (see GoalCalculationAccountBalance).
func (s *GoalService) currentAmount(ctx context.Context, g *domain.Goal) (decimal.Decimal, error) {
	if g.TagKey == nil || *g.TagKey == "" {
		return decimal.Zero, nil
	}
	amount, err := s.expenseReader.SumTagged(ctx, g.UserID, *g.TagKey)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum tagged expenses: %w", err)
	}
	return amount, nil
}

// monthsRemaining is ceil(days until target / 30), floored at zero
func monthsRemaining(now, target time.Time) int {
	days := util.DaysUntil(now, target)
	if days <= 0 {
		return 0
	}
	return (days + 29) / 30
}

// isAtRisk applies the linear-pace heuristic: with m months left, progress
// below 1 - m/12 flags the goal. The 12-month window is fixed regardless of
// the goal's actual duration.
func isAtRisk(current, target decimal.Decimal, months int) bool {
	if months <= 0 || !target.IsPositive() {
		return false
	}
	pace := decimal.NewFromInt(1).Sub(decimal.NewFromInt(int64(months)).Div(twelve))
	return current.Div(target).LessThan(pace)
}
