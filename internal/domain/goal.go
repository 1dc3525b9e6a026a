package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "ACTIVE"
	GoalStatusCompleted GoalStatus = "COMPLETED"
	GoalStatusPaused    GoalStatus = "PAUSED"
)

type GoalCalculationMode string

const (
	// GoalCalculationAccountBalance is a placeholder policy pending a real
	// balance model: it contributes 0 unless the goal also carries a tag key,
	// in which case the tag sum is used. Flagged for product clarification.
	GoalCalculationAccountBalance GoalCalculationMode = "ACCOUNT_BALANCE"
	GoalCalculationTagSum         GoalCalculationMode = "TAG_SUM"
)

// GoalRiskWindowMonths is the fixed normalization window for the linear-pace
// at-risk heuristic, regardless of the goal's actual total duration. A known
// approximation, not a general risk model.
const GoalRiskWindowMonths = 12

type Goal struct {
	ID              uuid.UUID           `json:"id"`
	UserID          uuid.UUID           `json:"userId"`
	Name            string              `json:"name"`
	TargetAmount    decimal.Decimal     `json:"targetAmount"`
	Currency        Currency            `json:"currency"`
	TargetDate      time.Time           `json:"targetDate"`
	CalculationMode GoalCalculationMode `json:"calculationMode"`
	TagKey          *string             `json:"tagKey,omitempty"`
	Status          GoalStatus          `json:"status"`
}

type GoalReader interface {
	GetByUser(ctx context.Context, userID uuid.UUID, status *GoalStatus) ([]*Goal, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*Goal, error)
}

// GoalProgress is derived on every call, never stored
type GoalProgress struct {
	Goal                         *Goal           `json:"goal"`
	CurrentAmount                decimal.Decimal `json:"currentAmount"`
	Remaining                    decimal.Decimal `json:"remaining"`
	Percentage                   decimal.Decimal `json:"percentage"`
	MonthsRemaining              int             `json:"monthsRemaining"`
	SuggestedMonthlyContribution decimal.Decimal `json:"suggestedMonthlyContribution"`
	IsAtRisk                     bool            `json:"isAtRisk"`
}

type GoalSummary struct {
	TotalTarget     decimal.Decimal `json:"totalTarget"`
	TotalCurrent    decimal.Decimal `json:"totalCurrent"`
	Percentage      decimal.Decimal `json:"percentage"`
	CompletedCount  int             `json:"completedCount"`
	InProgressCount int             `json:"inProgressCount"`
	AtRiskCount     int             `json:"atRiskCount"`
}
