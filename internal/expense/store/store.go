package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/skarbonka/internal/database"
	"github.com/MrJamesThe3rd/skarbonka/internal/expense"
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

// scanExpense reads an expense row.
// Expected column order: id, user_id, category_id, category_name, amount, date, description, created_at
func scanExpense(s scanner) (*expense.Expense, error) {
	var e expense.Expense

	var desc sql.NullString

	if err := s.Scan(
		&e.ID, &e.UserID, &e.CategoryID, &e.CategoryName, &e.Amount, &e.Date, &desc, &e.CreatedAt,
	); err != nil {
		return nil, err
	}

	e.Description = desc.String

	return &e, nil
}

const selectExpenseColumns = `
	e.id, e.user_id, e.category_id, c.name AS category_name, e.amount, e.date, e.description, e.created_at
`

// filter renders the WHERE clause shared by the data and the count query.
func filter(userID uuid.UUID, q expense.ListQuery) (string, []any) {
	where := " WHERE e.user_id = $1"
	args := []any{userID}
	argIdx := 2

	if q.Month != nil {
		start, end := q.Month.Range()
		where += fmt.Sprintf(" AND e.date >= $%d AND e.date <= $%d", argIdx, argIdx+1)

		args = append(args, start, end)
		argIdx += 2
	}

	if q.CategoryID != nil {
		where += fmt.Sprintf(" AND e.category_id = $%d", argIdx)

		args = append(args, *q.CategoryID)
	}

	return where, args
}

func orderBy(sort listing.Sort[expense.SortField]) string {
	col := "e.date"

	switch sort.Field {
	case expense.SortByDate:
		col = "e.date"
	case expense.SortByAmount:
		col = "e.amount"
	case expense.SortByCreatedAt:
		col = "e.created_at"
	}

	dir := "DESC"
	if sort.Direction == listing.Asc {
		dir = "ASC"
	}

	return fmt.Sprintf(" ORDER BY %s %s, e.id %s", col, dir, dir)
}

func (s *Store) List(ctx context.Context, userID uuid.UUID, q expense.ListQuery) (listing.Page[*expense.Expense], error) {
	where, args := filter(userID, q)

	query := `SELECT ` + selectExpenseColumns + `
		FROM expenses e
		JOIN categories c ON c.id = e.category_id` + where + orderBy(q.Sort) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)

	rows, err := s.db.QueryContext(ctx, query, append(args, q.Page.Limit, q.Page.Offset())...)
	if err != nil {
		return listing.Page[*expense.Expense]{}, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*expense.Expense

	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return listing.Page[*expense.Expense]{}, fmt.Errorf("scanning expense: %w", err)
		}

		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return listing.Page[*expense.Expense]{}, fmt.Errorf("iterating expense rows: %w", err)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM expenses e`+where, args...).Scan(&total); err != nil {
		return listing.Page[*expense.Expense]{}, fmt.Errorf("counting expenses: %w", err)
	}

	return listing.NewPage(expenses, q.Page, total), nil
}

func (s *Store) Get(ctx context.Context, id, userID uuid.UUID) (*expense.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + `
		FROM expenses e
		JOIN categories c ON c.id = e.category_id
		WHERE e.id = $1 AND e.user_id = $2`

	e, err := scanExpense(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, expense.ErrNotFound
		}

		return nil, fmt.Errorf("getting expense: %w", err)
	}

	return e, nil
}

func (s *Store) Create(ctx context.Context, e *expense.Expense) error {
	query := `
		INSERT INTO expenses (user_id, category_id, amount, date, description, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.UserID,
		e.CategoryID,
		e.Amount,
		e.Date,
		e.Description,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return expense.ErrCategoryNotFound
		}

		return fmt.Errorf("creating expense: %w", err)
	}

	return nil
}

func (s *Store) Update(ctx context.Context, e *expense.Expense) error {
	query := `
		UPDATE expenses
		SET amount = $1, date = $2, category_id = $3, description = NULLIF($4, '')
		WHERE id = $5 AND user_id = $6
	`

	res, err := s.db.ExecContext(ctx, query,
		e.Amount,
		e.Date,
		e.CategoryID,
		e.Description,
		e.ID,
		e.UserID,
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return expense.ErrCategoryNotFound
		}

		return fmt.Errorf("updating expense: %w", err)
	}

	return requireAffected(res, expense.ErrNotFound)
}

func (s *Store) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}

	return requireAffected(res, expense.ErrNotFound)
}

func (s *Store) BelongsToUser(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	var exists bool

	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM expenses WHERE id = $1 AND user_id = $2)`, id, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking expense owner: %w", err)
	}

	return exists, nil
}

func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return notFound
	}

	return nil
}
