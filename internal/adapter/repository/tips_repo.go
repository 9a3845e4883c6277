package repository

import (
	"context"
	"errors"
	"fmt"

	"careerprep/internal/domain"

	"github.com/jackc/pgx/v4/pgxpool"
)

type TipsRepo struct {
	pool *pgxpool.Pool
}

func NewTipsRepo(pool *pgxpool.Pool) *TipsRepo {
	return &TipsRepo{pool: pool}
}

// ListByCareer returns the tips for one career ordered by order_index.
// An empty result is valid, not an error.
func (r *TipsRepo) ListByCareer(ctx context.Context, careerID string) ([]domain.Tip, error) {
	if r.pool == nil {
		return nil, errors.New("tips db not available")
	}

	rows, err := r.pool.Query(ctx, `SELECT id, career_id, COALESCE(category, ''), text, order_index
		FROM interview_tips WHERE career_id = $1 ORDER BY order_index`, careerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var tips []domain.Tip
	for rows.Next() {
		var t domain.Tip
		if err := rows.Scan(&t.ID, &t.CareerID, &t.Category, &t.Text, &t.OrderIndex); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		tips = append(tips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tips, nil
}
