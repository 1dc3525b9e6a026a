package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Income is a single income record. Owned and mutated by the CRUD layer; the
// engine only reads it.
type Income struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"userId"`
	CategoryID  *uuid.UUID      `json:"categoryId,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    Currency        `json:"currency"`
	Date        time.Time       `json:"date"`
	Description *string         `json:"description,omitempty"`
}

// IncomeReader exposes filtered range-reads over income records
type IncomeReader interface {
	GetByUser(ctx context.Context, userID uuid.UUID, rng *DateRange) ([]*Income, error)
}
