package domain

import (
	"context"

	"github.com/google/uuid"
)

type CategoryType string

const (
	CategoryTypeExpense CategoryType = "EXPENSE"
	CategoryTypeIncome  CategoryType = "INCOME"
	CategoryTypeBoth    CategoryType = "BOTH"
)

type Category struct {
	ID     uuid.UUID    `json:"id"`
	UserID uuid.UUID    `json:"userId"`
	Name   string       `json:"name"`
	Type   CategoryType `json:"type"`
	Color  *string      `json:"color,omitempty"`
	Icon   *string      `json:"icon,omitempty"`
}

type CategoryReader interface {
	GetByUser(ctx context.Context, userID uuid.UUID) ([]*Category, error)
}
