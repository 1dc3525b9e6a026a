package postgres

import (
	"context"
	"errors"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BudgetRepository implements domain.BudgetReader using PostgreSQL
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

const budgetsByUserQuery = `
SELECT id, user_id, category_id, amount, currency, period_start, period_end, repeat, notes
FROM budgets
WHERE user_id = $1
  AND ($2::date IS NULL OR period_end >= $2)
  AND ($3::date IS NULL OR period_start <= $3)
ORDER BY period_start, id`

// GetByUser returns budgets whose period overlaps window, or all budgets when
// window is nil
func (r *BudgetRepository) GetByUser(ctx context.Context, userID uuid.UUID, window *domain.DateRange) ([]*domain.Budget, error) {
	var from, to pgtype.Date
	if window != nil {
		from = pgtype.Date{Time: window.From, Valid: true}
		to = pgtype.Date{Time: window.To, Valid: true}
	}

	rows, err := r.pool.Query(ctx, budgetsByUserQuery, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []*domain.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	return budgets, rows.Err()
}

const budgetByIDQuery = `
SELECT id, user_id, category_id, amount, currency, period_start, period_end, repeat, notes
FROM budgets
WHERE user_id = $1 AND id = $2`

// GetByID returns one budget, or domain.ErrBudgetNotFound
func (r *BudgetRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Budget, error) {
	row := r.pool.QueryRow(ctx, budgetByIDQuery, userID, id)
	budget, err := scanBudget(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return budget, nil
}

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var (
		budget   domain.Budget
		amount   pgtype.Numeric
		currency string
	)
	if err := row.Scan(&budget.ID, &budget.UserID, &budget.CategoryID, &amount, &currency, &budget.PeriodStart, &budget.PeriodEnd, &budget.Repeat, &budget.Notes); err != nil {
		return nil, err
	}
	budget.Amount = pgNumericToDecimal(amount)
	budget.Currency = domain.Currency(currency)
	return &budget, nil
}
