package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a single expense record. Tags carry free-form labels used by
// goal tag sums.
type Expense struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"userId"`
	CategoryID    *uuid.UUID      `json:"categoryId,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      Currency        `json:"currency"`
	Date          time.Time       `json:"date"`
	Description   *string         `json:"description,omitempty"`
	PaymentMethod *string         `json:"paymentMethod,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
}

// ExpenseReader exposes filtered range-reads and narrow aggregate queries
// over expense records
type ExpenseReader interface {
	GetByUser(ctx context.Context, userID uuid.UUID, rng *DateRange) ([]*Expense, error)
	// SumByCategory sums expenses for one category in one currency between
	// from and to (inclusive)
	SumByCategory(ctx context.Context, userID, categoryID uuid.UUID, currency Currency, from, to time.Time) (decimal.Decimal, error)
	// SumTagged sums expenses carrying the given tag, regardless of date
	SumTagged(ctx context.Context, userID uuid.UUID, tagKey string) (decimal.Decimal, error)
}
