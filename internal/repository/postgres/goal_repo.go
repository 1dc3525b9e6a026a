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

// GoalRepository implements domain.GoalReader using PostgreSQL
type GoalRepository struct {
	pool *pgxpool.Pool
}

// NewGoalRepository creates a new GoalRepository
func NewGoalRepository(pool *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{pool: pool}
}

const goalsByUserQuery = `
SELECT id, user_id, name, target_amount, currency, target_date, calculation_mode, tag_key, status
FROM goals
WHERE user_id = $1
  AND ($2::text IS NULL OR status = $2)
ORDER BY target_date, id`

// GetByUser returns goals for a user, optionally filtered by status
func (r *GoalRepository) GetByUser(ctx context.Context, userID uuid.UUID, status *domain.GoalStatus) ([]*domain.Goal, error) {
	var statusFilter *string
	if status != nil {
		s := string(*status)
		statusFilter = &s
	}

	rows, err := r.pool.Query(ctx, goalsByUserQuery, userID, statusFilter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []*domain.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

const goalByIDQuery = `
SELECT id, user_id, name, target_amount, currency, target_date, calculation_mode, tag_key, status
FROM goals
WHERE user_id = $1 AND id = $2`

// GetByID returns one goal, or domain.ErrGoalNotFound
func (r *GoalRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Goal, error) {
	row := r.pool.QueryRow(ctx, goalByIDQuery, userID, id)
	goal, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	return goal, nil
}

func scanGoal(row pgx.Row) (*domain.Goal, error) {
	var (
		goal     domain.Goal
		target   pgtype.Numeric
		currency string
		mode     string
		status   string
	)
	if err := row.Scan(&goal.ID, &goal.UserID, &goal.Name, &target, &currency, &goal.TargetDate, &mode, &goal.TagKey, &status); err != nil {
		return nil, err
	}
	goal.TargetAmount = pgNumericToDecimal(target)
	goal.Currency = domain.Currency(currency)
	goal.CalculationMode = domain.GoalCalculationMode(mode)
	goal.Status = domain.GoalStatus(status)
	return &goal, nil
}
