package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/skarbonka/internal/goal"
	"github.com/MrJamesThe3rd/skarbonka/internal/report"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) MonthlyExpenses(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]report.LineItem, error) {
	query := `
		SELECT e.date, e.amount, c.name
		FROM expenses e
		JOIN categories c ON c.id = e.category_id
		WHERE e.user_id = $1 AND e.date >= $2 AND e.date <= $3
		ORDER BY e.date ASC, e.created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying monthly expenses: %w", err)
	}
	defer rows.Close()

	var items []report.LineItem

	for rows.Next() {
		var it report.LineItem
		if err := rows.Scan(&it.Date, &it.Amount, &it.Category); err != nil {
			return nil, fmt.Errorf("scanning report line: %w", err)
		}

		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating report lines: %w", err)
	}

	return items, nil
}

func (s *Store) Goals(ctx context.Context, userID uuid.UUID) ([]*goal.Goal, error) {
	query := `
		SELECT id, user_id, name, target_amount, current_amount, created_at, updated_at
		FROM goals
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying goals: %w", err)
	}
	defer rows.Close()

	var goals []*goal.Goal

	for rows.Next() {
		var g goal.Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}

		goals = append(goals, &g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goals: %w", err)
	}

	return goals, nil
}
