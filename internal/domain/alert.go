package domain

import "github.com/shopspring/decimal"

type AlertType string

const (
	AlertTypeSpendingIncrease AlertType = "spending_increase"
	AlertTypeSavingsRate      AlertType = "savings_rate"
	AlertTypeDepositMaturity  AlertType = "deposit_maturity"
)

type AlertSeverity string

const (
	AlertSeverityInfo    AlertSeverity = "info"
	AlertSeverityWarning AlertSeverity = "warning"
	AlertSeverityDanger  AlertSeverity = "danger"
)

// Alert rule constants. Thresholds are the contract; message text is
// presentation.
var (
	// SpendingIncreaseRatio: current must be at least 1.3x the prior month
	SpendingIncreaseRatio = decimal.NewFromFloat(1.3)
	// SpendingIncreaseMinAmount: absolute floor, in primary currency units
	SpendingIncreaseMinAmount = decimal.NewFromInt(10000)
	// SpendingIncreaseDangerPercent: increase >= 50% escalates to danger
	SpendingIncreaseDangerPercent = decimal.NewFromInt(50)
	// SavingsRateWarnBelow: rates in [0, 10) warn
	SavingsRateWarnBelow = decimal.NewFromInt(10)
	// SavingsRateMinIncome: no savings warning below this income floor
	SavingsRateMinIncome = decimal.NewFromInt(50000)
)

const (
	// DepositMaturityWindowDays: deposits maturing within this many days alert
	DepositMaturityWindowDays = 7
	// DepositMaturityUrgentDays: within this many days, severity is warning
	DepositMaturityUrgentDays = 3
)

// Alert carries no identity and is not persisted; the full set is recomputed
// on every call.
type Alert struct {
	Type     AlertType     `json:"type"`
	Severity AlertSeverity `json:"severity"`
	Message  string        `json:"message"`
}
