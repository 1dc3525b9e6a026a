package domain

import "time"

// Currency is an ISO-4217-style currency code. The set is open; ARS and USD
// are the pair this deployment runs with.
type Currency string

const (
	CurrencyARS Currency = "ARS"
	CurrencyUSD Currency = "USD"
)

// CurrencyPair is the primary/secondary pair the engine materializes in every
// summary even when no records exist for one side.
type CurrencyPair struct {
	Primary   Currency
	Secondary Currency
}

// DefaultCurrencyPair returns the ARS/USD pair used in production
func DefaultCurrencyPair() CurrencyPair {
	return CurrencyPair{Primary: CurrencyARS, Secondary: CurrencyUSD}
}

// Contains reports whether c is one of the pair's currencies
func (p CurrencyPair) Contains(c Currency) bool {
	return c == p.Primary || c == p.Secondary
}

// DateRange is an inclusive [From, To] date window. A nil *DateRange means
// unbounded.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether d falls within the range (inclusive bounds,
// date precision)
func (r *DateRange) Contains(d time.Time) bool {
	if r == nil {
		return true
	}
	day := d.Truncate(24 * time.Hour)
	return !day.Before(r.From.Truncate(24*time.Hour)) && !day.After(r.To.Truncate(24*time.Hour))
}

// Overlaps reports whether the range intersects [start, end]
func (r *DateRange) Overlaps(start, end time.Time) bool {
	if r == nil {
		return true
	}
	return !end.Before(r.From) && !start.After(r.To)
}
