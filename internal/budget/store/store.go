package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/skarbonka/internal/budget"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) IncomeTotal(ctx context.Context, userID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM incomes
		WHERE user_id = $1 AND date >= $2 AND date <= $3
	`

	var total decimal.Decimal
	if err := s.db.QueryRowContext(ctx, query, userID, start, end).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("querying income total: %w", err)
	}

	return total, nil
}

func (s *Store) ExpensesByCategory(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]budget.CategorySum, error) {
	query := `
		SELECT c.name, COALESCE(SUM(e.amount), 0)
		FROM categories c
		LEFT JOIN expenses e
			ON e.category_id = c.id
			AND e.user_id = c.user_id
			AND e.date >= $2 AND e.date <= $3
		WHERE c.user_id = $1
		GROUP BY c.id, c.name
	`

	rows, err := s.db.QueryContext(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying category sums: %w", err)
	}
	defer rows.Close()

	var sums []budget.CategorySum

	for rows.Next() {
		var sum budget.CategorySum
		if err := rows.Scan(&sum.CategoryName, &sum.Amount); err != nil {
			return nil, fmt.Errorf("scanning category sum: %w", err)
		}

		sums = append(sums, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category sums: %w", err)
	}

	return sums, nil
}
