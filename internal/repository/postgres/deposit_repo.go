package postgres

import (
	"context"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DepositRepository implements domain.DepositReader using PostgreSQL
type DepositRepository struct {
	pool *pgxpool.Pool
}

// NewDepositRepository creates a new DepositRepository
func NewDepositRepository(pool *pgxpool.Pool) *DepositRepository {
	return &DepositRepository{pool: pool}
}

const depositsByUserQuery = `
SELECT id, user_id, principal_amount, currency, tna, start_date, term_days, maturity_date, interest_amount
FROM fixed_term_deposits
WHERE user_id = $1
ORDER BY maturity_date, id`

// GetByUser returns all fixed-term deposits owned by a user
func (r *DepositRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]*domain.FixedTermDeposit, error) {
	rows, err := r.pool.Query(ctx, depositsByUserQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deposits []*domain.FixedTermDeposit
	for rows.Next() {
		var (
			deposit   domain.FixedTermDeposit
			principal pgtype.Numeric
			currency  string
			tna       pgtype.Numeric
			interest  pgtype.Numeric
		)
		if err := rows.Scan(&deposit.ID, &deposit.UserID, &principal, &currency, &tna, &deposit.StartDate, &deposit.TermDays, &deposit.MaturityDate, &interest); err != nil {
			return nil, err
		}
		deposit.Principal = pgNumericToDecimal(principal)
		deposit.Currency = domain.Currency(currency)
		deposit.TNA = pgNumericToDecimal(tna)
		deposit.InterestAmount = pgNumericToDecimal(interest)
		deposits = append(deposits, &deposit)
	}
	return deposits, rows.Err()
}
