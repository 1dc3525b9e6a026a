package postgres

import (
	"context"
	"time"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ExpenseRepository implements domain.ExpenseReader using PostgreSQL
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

const expensesByUserQuery = `
SELECT id, user_id, category_id, amount, currency, date, description, payment_method, tags
FROM expenses
WHERE user_id = $1
  AND ($2::date IS NULL OR date >= $2)
  AND ($3::date IS NULL OR date <= $3)
ORDER BY date, id`

// GetByUser returns expenses for a user, optionally bounded by rng
func (r *ExpenseRepository) GetByUser(ctx context.Context, userID uuid.UUID, rng *domain.DateRange) ([]*domain.Expense, error) {
	var from, to pgtype.Date
	if rng != nil {
		from = pgtype.Date{Time: rng.From, Valid: true}
		to = pgtype.Date{Time: rng.To, Valid: true}
	}

	rows, err := r.pool.Query(ctx, expensesByUserQuery, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*domain.Expense
	for rows.Next() {
		var (
			expense    domain.Expense
			categoryID pgtype.UUID
			amount     pgtype.Numeric
			currency   string
		)
		if err := rows.Scan(&expense.ID, &expense.UserID, &categoryID, &amount, &currency, &expense.Date, &expense.Description, &expense.PaymentMethod, &expense.Tags); err != nil {
			return nil, err
		}
		if categoryID.Valid {
			id := uuid.UUID(categoryID.Bytes)
			expense.CategoryID = &id
		}
		expense.Amount = pgNumericToDecimal(amount)
		expense.Currency = domain.Currency(currency)
		expenses = append(expenses, &expense)
	}
	return expenses, rows.Err()
}

const sumByCategoryQuery = `
SELECT COALESCE(SUM(amount), 0)
FROM expenses
WHERE user_id = $1 AND category_id = $2 AND currency = $3
  AND date >= $4 AND date <= $5`

// SumByCategory sums expenses for one category in one currency between from
// and to (inclusive)
func (r *ExpenseRepository) SumByCategory(ctx context.Context, userID, categoryID uuid.UUID, currency domain.Currency, from, to time.Time) (decimal.Decimal, error) {
	var total pgtype.Numeric
	err := r.pool.QueryRow(ctx, sumByCategoryQuery, userID, categoryID, string(currency), from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return pgNumericToDecimal(total), nil
}

const sumTaggedQuery = `
SELECT COALESCE(SUM(amount), 0)
FROM expenses
WHERE user_id = $1 AND $2 = ANY(tags)`

// SumTagged sums expenses carrying the given tag, regardless of date
func (r *ExpenseRepository) SumTagged(ctx context.Context, userID uuid.UUID, tagKey string) (decimal.Decimal, error) {
	var total pgtype.Numeric
	err := r.pool.QueryRow(ctx, sumTaggedQuery, userID, tagKey).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return pgNumericToDecimal(total), nil
}
