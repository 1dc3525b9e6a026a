package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CurrencyTotals holds every summary figure for a single currency. Amounts in
// different currencies are never summed together; a CurrencyTotals depends
// only on records of its own currency.
type CurrencyTotals struct {
	Currency       Currency        `json:"currency"`
	Income         decimal.Decimal `json:"income"`
	Expenses       decimal.Decimal `json:"expenses"`
	Balance        decimal.Decimal `json:"balance"`
	SavingsRate    decimal.Decimal `json:"savingsRate"`
	DepositCount   int             `json:"depositCount"`
	DepositValue   decimal.Decimal `json:"depositValue"`
	PortfolioValue decimal.Decimal `json:"portfolioValue"`
	NetWorth       decimal.Decimal `json:"netWorth"`
}

// Summary is the per-currency roll-up produced by the aggregation core.
// Derived on every call, never stored.
type Summary struct {
	Totals map[Currency]*CurrencyTotals `json:"totals"`
	// FoldedInto is set when the caller asked for a single-currency view and
	// at least one conversion was applied
	FoldedInto *Currency `json:"foldedInto,omitempty"`
}

// NewSummary returns a Summary with zero-valued totals for the given pair
func NewSummary(pair CurrencyPair) *Summary {
	s := &Summary{Totals: make(map[Currency]*CurrencyTotals)}
	s.Get(pair.Primary)
	s.Get(pair.Secondary)
	return s
}

// Get returns the totals for c, materializing a zero-valued entry if absent
func (s *Summary) Get(c Currency) *CurrencyTotals {
	if t, ok := s.Totals[c]; ok {
		return t
	}
	t := &CurrencyTotals{
		Currency:       c,
		Income:         decimal.Zero,
		Expenses:       decimal.Zero,
		Balance:        decimal.Zero,
		SavingsRate:    decimal.Zero,
		DepositValue:   decimal.Zero,
		PortfolioValue: decimal.Zero,
		NetWorth:       decimal.Zero,
	}
	s.Totals[c] = t
	return t
}

// CategoryBreakdown is one row of the expenses-by-category view
type CategoryBreakdown struct {
	CategoryID   uuid.UUID       `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Total        decimal.Decimal `json:"total"`
	Percentage   decimal.Decimal `json:"percentage"`
}

// DailyFlow is one calendar-day bucket of the income-vs-expense series
type DailyFlow struct {
	Date    time.Time       `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// MonthlyFlow is one "YYYY-MM" bucket of the cash-flow series
type MonthlyFlow struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}
