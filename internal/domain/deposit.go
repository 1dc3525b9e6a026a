package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FixedTermDeposit is a fixed-term deposit. MaturityDate and InterestAmount
// are derived fields kept consistent by the owning CRUD layer
// (maturity = start + term days; interest = principal * tna/100 * term/365,
// simple interest). The engine treats them as already correct.
type FixedTermDeposit struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"userId"`
	Principal      decimal.Decimal `json:"principalAmount"`
	Currency       Currency        `json:"currency"`
	TNA            decimal.Decimal `json:"tna"`
	StartDate      time.Time       `json:"startDate"`
	TermDays       int             `json:"termInDays"`
	MaturityDate   time.Time       `json:"maturityDate"`
	InterestAmount decimal.Decimal `json:"interestAmount"`
}

// Value returns principal plus accrued interest at maturity
func (d *FixedTermDeposit) Value() decimal.Decimal {
	return d.Principal.Add(d.InterestAmount)
}

type DepositReader interface {
	GetByUser(ctx context.Context, userID uuid.UUID) ([]*FixedTermDeposit, error)
}
