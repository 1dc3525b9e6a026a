package postgres

import (
	"context"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// IncomeRepository implements domain.IncomeReader using PostgreSQL
type IncomeRepository struct {
	pool *pgxpool.Pool
}

// NewIncomeRepository creates a new IncomeRepository
func NewIncomeRepository(pool *pgxpool.Pool) *IncomeRepository {
	return &IncomeRepository{pool: pool}
}

const incomesByUserQuery = `
SELECT id, user_id, category_id, amount, currency, date, description
FROM incomes
WHERE user_id = $1
  AND ($2::date IS NULL OR date >= $2)
  AND ($3::date IS NULL OR date <= $3)
ORDER BY date, id`

// GetByUser returns incomes for a user, optionally bounded by rng
func (r *IncomeRepository) GetByUser(ctx context.Context, userID uuid.UUID, rng *domain.DateRange) ([]*domain.Income, error) {
	var from, to pgtype.Date
	if rng != nil {
		from = pgtype.Date{Time: rng.From, Valid: true}
		to = pgtype.Date{Time: rng.To, Valid: true}
	}

	rows, err := r.pool.Query(ctx, incomesByUserQuery, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var incomes []*domain.Income
	for rows.Next() {
		var (
			income     domain.Income
			categoryID pgtype.UUID
			amount     pgtype.Numeric
			currency   string
		)
		if err := rows.Scan(&income.ID, &income.UserID, &categoryID, &amount, &currency, &income.Date, &income.Description); err != nil {
			return nil, err
		}
		if categoryID.Valid {
			id := uuid.UUID(categoryID.Bytes)
			income.CategoryID = &id
		}
		income.Amount = pgNumericToDecimal(amount)
		income.Currency = domain.Currency(currency)
		incomes = append(incomes, &income)
	}
	return incomes, rows.Err()
}
