package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/skarbonka/internal/income"
	"github.com/MrJamesThe3rd/skarbonka/internal/listing"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, user_id, amount, date, description, source, created_at
func scanIncome(s scanner) (*income.Income, error) {
	var inc income.Income

	var desc, source sql.NullString

	if err := s.Scan(&inc.ID, &inc.UserID, &inc.Amount, &inc.Date, &desc, &source, &inc.CreatedAt); err != nil {
		return nil, err
	}

	inc.Description = desc.String
	inc.Source = source.String

	return &inc, nil
}

const selectIncomeColumns = `id, user_id, amount, date, description, source, created_at`

func filter(userID uuid.UUID, q income.ListQuery) (string, []any) {
	where := " WHERE user_id = $1"
	args := []any{userID}

	if q.Month != nil {
		start, end := q.Month.Range()
		where += " AND date >= $2 AND date <= $3"

		args = append(args, start, end)
	}

	return where, args
}

func orderBy(sort listing.Sort[income.SortField]) string {
	col := "date"

	switch sort.Field {
	case income.SortByDate:
		col = "date"
	case income.SortByAmount:
		col = "amount"
	case income.SortByCreatedAt:
		col = "created_at"
	}

	dir := "DESC"
	if sort.Direction == listing.Asc {
		dir = "ASC"
	}

	return fmt.Sprintf(" ORDER BY %s %s, id %s", col, dir, dir)
}

func (s *Store) List(ctx context.Context, userID uuid.UUID, q income.ListQuery) (listing.Page[*income.Income], error) {
	where, args := filter(userID, q)

	query := `SELECT ` + selectIncomeColumns + ` FROM incomes` + where + orderBy(q.Sort) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)

	rows, err := s.db.QueryContext(ctx, query, append(args, q.Page.Limit, q.Page.Offset())...)
	if err != nil {
		return listing.Page[*income.Income]{}, fmt.Errorf("listing incomes: %w", err)
	}
	defer rows.Close()

	var incomes []*income.Income

	for rows.Next() {
		inc, err := scanIncome(rows)
		if err != nil {
			return listing.Page[*income.Income]{}, fmt.Errorf("scanning income: %w", err)
		}

		incomes = append(incomes, inc)
	}

	if err := rows.Err(); err != nil {
		return listing.Page[*income.Income]{}, fmt.Errorf("iterating income rows: %w", err)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM incomes`+where, args...).Scan(&total); err != nil {
		return listing.Page[*income.Income]{}, fmt.Errorf("counting incomes: %w", err)
	}

	return listing.NewPage(incomes, q.Page, total), nil
}

func (s *Store) Get(ctx context.Context, id, userID uuid.UUID) (*income.Income, error) {
	query := `SELECT ` + selectIncomeColumns + ` FROM incomes WHERE id = $1 AND user_id = $2`

	inc, err := scanIncome(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, income.ErrNotFound
		}

		return nil, fmt.Errorf("getting income: %w", err)
	}

	return inc, nil
}

func (s *Store) Create(ctx context.Context, inc *income.Income) error {
	query := `
		INSERT INTO incomes (user_id, amount, date, description, source, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		inc.UserID,
		inc.Amount,
		inc.Date,
		inc.Description,
		inc.Source,
	).Scan(&inc.ID, &inc.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating income: %w", err)
	}

	return nil
}

func (s *Store) Update(ctx context.Context, inc *income.Income) error {
	query := `
		UPDATE incomes
		SET amount = $1, date = $2, description = NULLIF($3, ''), source = NULLIF($4, '')
		WHERE id = $5 AND user_id = $6
	`

	res, err := s.db.ExecContext(ctx, query,
		inc.Amount,
		inc.Date,
		inc.Description,
		inc.Source,
		inc.ID,
		inc.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating income: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading updated rows: %w", err)
	}

	if n == 0 {
		return income.ErrNotFound
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM incomes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting income: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading deleted rows: %w", err)
	}

	if n == 0 {
		return income.ErrNotFound
	}

	return nil
}

func (s *Store) BelongsToUser(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	var exists bool

	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM incomes WHERE id = $1 AND user_id = $2)`, id, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking income owner: %w", err)
	}

	return exists, nil
}
