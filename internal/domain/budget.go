package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget thresholds, in percent. Fixed design constants, not configurable.
var (
	BudgetNearLimitPercent = decimal.NewFromInt(70)
	BudgetExceededPercent  = decimal.NewFromInt(100)
)

type Budget struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"userId"`
	CategoryID  uuid.UUID       `json:"categoryId"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    Currency        `json:"currency"`
	PeriodStart time.Time       `json:"periodStart"`
	PeriodEnd   time.Time       `json:"periodEnd"`
	Repeat      bool            `json:"repeat"`
	Notes       *string         `json:"notes,omitempty"`
}

type BudgetReader interface {
	// GetByUser returns budgets whose period overlaps window, or all budgets
	// when window is nil
	GetByUser(ctx context.Context, userID uuid.UUID, window *DateRange) ([]*Budget, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*Budget, error)
}

// BudgetProgress is derived on every call, never stored
type BudgetProgress struct {
	Budget     *Budget         `json:"budget"`
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage decimal.Decimal `json:"percentage"`
}

// NearLimit reports 70% <= percentage < 100%
func (p *BudgetProgress) NearLimit() bool {
	return p.Percentage.GreaterThanOrEqual(BudgetNearLimitPercent) &&
		p.Percentage.LessThan(BudgetExceededPercent)
}

// Exceeded reports percentage >= 100%
func (p *BudgetProgress) Exceeded() bool {
	return p.Percentage.GreaterThanOrEqual(BudgetExceededPercent)
}

type BudgetSummary struct {
	TotalBudget    decimal.Decimal `json:"totalBudget"`
	TotalSpent     decimal.Decimal `json:"totalSpent"`
	TotalRemaining decimal.Decimal `json:"totalRemaining"`
	Percentage     decimal.Decimal `json:"percentage"`
	NearLimitCount int             `json:"nearLimitCount"`
	ExceededCount  int             `json:"exceededCount"`
}
