package postgres

import (
	"context"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CategoryRepository implements domain.CategoryReader using PostgreSQL
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

const categoriesByUserQuery = `
SELECT id, user_id, name, type, color, icon
FROM categories
WHERE user_id = $1
ORDER BY name`

// GetByUser returns all categories owned by a user
func (r *CategoryRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	rows, err := r.pool.Query(ctx, categoriesByUserQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		var (
			category     domain.Category
			categoryType string
		)
		if err := rows.Scan(&category.ID, &category.UserID, &category.Name, &categoryType, &category.Color, &category.Icon); err != nil {
			return nil, err
		}
		category.Type = domain.CategoryType(categoryType)
		categories = append(categories, &category)
	}
	return categories, rows.Err()
}
