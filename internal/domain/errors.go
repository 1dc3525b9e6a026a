package domain

import "errors"

// Domain errors
var (
	ErrNotFound        = errors.New("resource not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrBudgetNotFound  = errors.New("budget not found")
	ErrGoalNotFound    = errors.New("goal not found")
	ErrRateUnavailable = errors.New("exchange rate unavailable")
)
