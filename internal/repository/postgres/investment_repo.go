package postgres

import (
	"context"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InvestmentRepository implements domain.PositionReader using PostgreSQL
type InvestmentRepository struct {
	pool *pgxpool.Pool
}

// NewInvestmentRepository creates a new InvestmentRepository
func NewInvestmentRepository(pool *pgxpool.Pool) *InvestmentRepository {
	return &InvestmentRepository{pool: pool}
}

// Positions join against the newest price snapshot per instrument; a position
// with no snapshot yet comes back with a NULL latest price.
const positionsByUserQuery = `
SELECT p.id, p.user_id, p.instrument_id, i.ticker, i.currency, p.quantity, p.average_buy_price, s.price
FROM investment_positions p
JOIN instruments i ON i.id = p.instrument_id
LEFT JOIN LATERAL (
	SELECT price
	FROM price_snapshots
	WHERE instrument_id = p.instrument_id
	ORDER BY taken_at DESC
	LIMIT 1
) s ON true
WHERE p.user_id = $1
ORDER BY i.ticker, p.id`

// GetByUser returns all investment positions owned by a user
func (r *InvestmentRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]*domain.InvestmentPosition, error) {
	rows, err := r.pool.Query(ctx, positionsByUserQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var positions []*domain.InvestmentPosition
	for rows.Next() {
		var (
			position    domain.InvestmentPosition
			currency    string
			quantity    pgtype.Numeric
			avgBuyPrice pgtype.Numeric
			latestPrice pgtype.Numeric
		)
		if err := rows.Scan(&position.ID, &position.UserID, &position.InstrumentID, &position.InstrumentTicker, &currency, &quantity, &avgBuyPrice, &latestPrice); err != nil {
			return nil, err
		}
		position.InstrumentCurrency = domain.Currency(currency)
		position.Quantity = pgNumericToDecimal(quantity)
		position.AverageBuyPrice = pgNumericToDecimal(avgBuyPrice)
		if latestPrice.Valid {
			price := pgNumericToDecimal(latestPrice)
			position.LatestPrice = &price
		}
		positions = append(positions, &position)
	}
	return positions, rows.Err()
}
