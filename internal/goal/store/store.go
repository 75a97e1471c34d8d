package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/skarbonka/internal/database"
	"github.com/MrJamesThe3rd/skarbonka/internal/goal"
	"github.com/MrJamesThe3rd/skarbonka/internal/listing"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectGoalColumns = `id, user_id, name, target_amount, current_amount, created_at, updated_at`

func scanGoal(s scanner) (*goal.Goal, error) {
	var g goal.Goal
	if err := s.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}

	return &g, nil
}

const selectContributionColumns = `id, user_id, goal_id, amount, date, description, created_at`

func scanContribution(s scanner) (*goal.Contribution, error) {
	var c goal.Contribution

	var desc sql.NullString

	if err := s.Scan(&c.ID, &c.UserID, &c.GoalID, &c.Amount, &c.Date, &desc, &c.CreatedAt); err != nil {
		return nil, err
	}

	c.Description = desc.String

	return &c, nil
}

func direction(d listing.Direction) string {
	if d == listing.Asc {
		return "ASC"
	}

	return "DESC"
}

func orderBy(sort listing.Sort[goal.SortField]) string {
	col := "created_at"

	switch sort.Field {
	case goal.SortByName:
		col = "name"
	case goal.SortByTargetAmount:
		col = "target_amount"
	case goal.SortByCurrentAmount:
		col = "current_amount"
	case goal.SortByCreatedAt:
		col = "created_at"
	}

	dir := direction(sort.Direction)

	return fmt.Sprintf(" ORDER BY %s %s, id %s", col, dir, dir)
}

func contributionOrderBy(sort listing.Sort[goal.ContributionSortField]) string {
	col := "date"

	switch sort.Field {
	case goal.ContributionSortByAmount:
		col = "amount"
	case goal.ContributionSortByDate:
		col = "date"
	case goal.ContributionSortByCreatedAt:
		col = "created_at"
	}

	dir := direction(sort.Direction)

	return fmt.Sprintf(" ORDER BY %s %s, id %s", col, dir, dir)
}

func (s *Store) List(ctx context.Context, userID uuid.UUID, q goal.ListQuery) (listing.Page[*goal.Goal], error) {
	query := `SELECT ` + selectGoalColumns + ` FROM goals WHERE user_id = $1` +
		orderBy(q.Sort) + ` LIMIT $2 OFFSET $3`

	rows, err := s.db.QueryContext(ctx, query, userID, q.Page.Limit, q.Page.Offset())
	if err != nil {
		return listing.Page[*goal.Goal]{}, fmt.Errorf("listing goals: %w", err)
	}
	defer rows.Close()

	var goals []*goal.Goal

	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return listing.Page[*goal.Goal]{}, fmt.Errorf("scanning goal: %w", err)
		}

		goals = append(goals, g)
	}

	if err := rows.Err(); err != nil {
		return listing.Page[*goal.Goal]{}, fmt.Errorf("iterating goal rows: %w", err)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM goals WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return listing.Page[*goal.Goal]{}, fmt.Errorf("counting goals: %w", err)
	}

	return listing.NewPage(goals, q.Page, total), nil
}

func (s *Store) Get(ctx context.Context, id, userID uuid.UUID) (*goal.Goal, error) {
	query := `SELECT ` + selectGoalColumns + ` FROM goals WHERE id = $1 AND user_id = $2`

	g, err := scanGoal(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goal.ErrNotFound
		}

		return nil, fmt.Errorf("getting goal: %w", err)
	}

	return g, nil
}

func (s *Store) Create(ctx context.Context, g *goal.Goal) error {
	query := `
		INSERT INTO goals (user_id, name, target_amount, current_amount, created_at, updated_at)
		VALUES ($1, $2, $3, 0, NOW(), NOW())
		RETURNING id, current_amount, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query, g.UserID, g.Name, g.TargetAmount).
		Scan(&g.ID, &g.CurrentAmount, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return goal.ErrDuplicateName
		}

		return fmt.Errorf("creating goal: %w", err)
	}

	return nil
}

func (s *Store) Update(ctx context.Context, g *goal.Goal) error {
	query := `
		UPDATE goals
		SET name = $1, target_amount = $2, updated_at = NOW()
		WHERE id = $3 AND user_id = $4
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query, g.Name, g.TargetAmount, g.ID, g.UserID).Scan(&g.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return goal.ErrNotFound
		case database.IsUniqueViolation(err):
			return goal.ErrDuplicateName
		}

		return fmt.Errorf("updating goal: %w", err)
	}

	return nil
}

// Delete removes the goal. Its contributions go with it through the cascade.
func (s *Store) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return goal.ErrNotFound
	}

	return nil
}

func (s *Store) BelongsToUser(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	var exists bool

	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM goals WHERE id = $1 AND user_id = $2)`, id, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking goal owner: %w", err)
	}

	return exists, nil
}

func (s *Store) ListContributions(
	ctx context.Context,
	userID uuid.UUID,
	q goal.ContributionListQuery,
) (listing.Page[*goal.Contribution], error) {
	query := `SELECT ` + selectContributionColumns + `
		FROM goal_contributions
		WHERE goal_id = $1 AND user_id = $2` + contributionOrderBy(q.Sort) + ` LIMIT $3 OFFSET $4`

	rows, err := s.db.QueryContext(ctx, query, q.GoalID, userID, q.Page.Limit, q.Page.Offset())
	if err != nil {
		return listing.Page[*goal.Contribution]{}, fmt.Errorf("listing contributions: %w", err)
	}
	defer rows.Close()

	contributions, err := collectContributions(rows)
	if err != nil {
		return listing.Page[*goal.Contribution]{}, err
	}

	var total int

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM goal_contributions WHERE goal_id = $1 AND user_id = $2`, q.GoalID, userID,
	).Scan(&total)
	if err != nil {
		return listing.Page[*goal.Contribution]{}, fmt.Errorf("counting contributions: %w", err)
	}

	return listing.NewPage(contributions, q.Page, total), nil
}

func (s *Store) Contributions(ctx context.Context, goalID, userID uuid.UUID) ([]*goal.Contribution, error) {
	query := `SELECT ` + selectContributionColumns + `
		FROM goal_contributions
		WHERE goal_id = $1 AND user_id = $2
		ORDER BY date DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, goalID, userID)
	if err != nil {
		return nil, fmt.Errorf("loading contributions: %w", err)
	}
	defer rows.Close()

	return collectContributions(rows)
}

func collectContributions(rows *sql.Rows) ([]*goal.Contribution, error) {
	var contributions []*goal.Contribution

	for rows.Next() {
		c, err := scanContribution(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning contribution: %w", err)
		}

		contributions = append(contributions, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contribution rows: %w", err)
	}

	return contributions, nil
}

func (s *Store) AddContribution(ctx context.Context, c *goal.Contribution) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	insert := `
		INSERT INTO goal_contributions (user_id, goal_id, amount, date, description, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NOW())
		RETURNING id, created_at
	`

	err = tx.QueryRowContext(ctx, insert, c.UserID, c.GoalID, c.Amount, c.Date, c.Description).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return goal.ErrNotFound
		}

		return fmt.Errorf("creating contribution: %w", err)
	}

	if err := adjustCurrent(ctx, tx, c.GoalID, c.UserID, c.Amount); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing contribution: %w", err)
	}

	return nil
}

func (s *Store) DeleteContribution(ctx context.Context, id, goalID, userID uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var amount decimal.Decimal

	err = tx.QueryRowContext(ctx, `
		DELETE FROM goal_contributions
		WHERE id = $1 AND goal_id = $2 AND user_id = $3
		RETURNING amount
	`, id, goalID, userID).Scan(&amount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return goal.ErrContributionNotFound
		}

		return fmt.Errorf("deleting contribution: %w", err)
	}

	if err := adjustCurrent(ctx, tx, goalID, userID, amount.Neg()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing contribution removal: %w", err)
	}

	return nil
}

// adjustCurrent shifts a goal's current amount by delta inside tx.
func adjustCurrent(ctx context.Context, tx *sql.Tx, goalID, userID uuid.UUID, delta decimal.Decimal) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE goals
		SET current_amount = current_amount + $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
	`, delta, goalID, userID)
	if err != nil {
		if database.IsCheckViolation(err) {
			return goal.ErrNegativeBalance
		}

		return fmt.Errorf("adjusting goal amount: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return goal.ErrNotFound
	}

	return nil
}
