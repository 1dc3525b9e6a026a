package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvestmentPosition is a holding in one instrument, joined to the
// instrument's currency/ticker and the most recent price snapshot when one
// exists.
type InvestmentPosition struct {
	ID                 uuid.UUID        `json:"id"`
	UserID             uuid.UUID        `json:"userId"`
	InstrumentID       uuid.UUID        `json:"instrumentId"`
	InstrumentTicker   string           `json:"ticker"`
	InstrumentCurrency Currency         `json:"currency"`
	Quantity           decimal.Decimal  `json:"quantity"`
	AverageBuyPrice    decimal.Decimal  `json:"averageBuyPrice"`
	LatestPrice        *decimal.Decimal `json:"latestPrice,omitempty"`
}

// CurrentValue returns quantity times the latest snapshot price, falling back
// to cost basis when no snapshot exists
func (p *InvestmentPosition) CurrentValue() decimal.Decimal {
	if p.LatestPrice != nil {
		return p.Quantity.Mul(*p.LatestPrice)
	}
	return p.Quantity.Mul(p.AverageBuyPrice)
}

type PositionReader interface {
	GetByUser(ctx context.Context, userID uuid.UUID) ([]*InvestmentPosition, error)
}
