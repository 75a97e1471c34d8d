package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/skarbonka/internal/category"
	"github.com/MrJamesThe3rd/skarbonka/internal/database"
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

const selectCategoryColumns = `id, user_id, name, is_default, created_at, updated_at`

func scanCategory(s scanner) (*category.Category, error) {
	var c category.Category
	if err := s.Scan(&c.ID, &c.UserID, &c.Name, &c.IsDefault, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}

	return &c, nil
}

func orderBy(sort listing.Sort[category.SortField]) string {
	col := "created_at"

	switch sort.Field {
	case category.SortByName:
		col = "name"
	case category.SortByCreatedAt:
		col = "created_at"
	}

	dir := "DESC"
	if sort.Direction == listing.Asc {
		dir = "ASC"
	}

	return fmt.Sprintf(" ORDER BY %s %s, id %s", col, dir, dir)
}

func (s *Store) List(ctx context.Context, userID uuid.UUID, q category.ListQuery) (listing.Page[*category.Category], error) {
	query := `SELECT ` + selectCategoryColumns + ` FROM categories WHERE user_id = $1` +
		orderBy(q.Sort) + ` LIMIT $2 OFFSET $3`

	rows, err := s.db.QueryContext(ctx, query, userID, q.Page.Limit, q.Page.Offset())
	if err != nil {
		return listing.Page[*category.Category]{}, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []*category.Category

	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return listing.Page[*category.Category]{}, fmt.Errorf("scanning category: %w", err)
		}

		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return listing.Page[*category.Category]{}, fmt.Errorf("iterating category rows: %w", err)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return listing.Page[*category.Category]{}, fmt.Errorf("counting categories: %w", err)
	}

	return listing.NewPage(categories, q.Page, total), nil
}

func (s *Store) Get(ctx context.Context, id, userID uuid.UUID) (*category.Category, error) {
	query := `SELECT ` + selectCategoryColumns + ` FROM categories WHERE id = $1 AND user_id = $2`

	c, err := scanCategory(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, category.ErrNotFound
		}

		return nil, fmt.Errorf("getting category: %w", err)
	}

	return c, nil
}

func (s *Store) Create(ctx context.Context, c *category.Category) error {
	query := `
		INSERT INTO categories (user_id, name, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query, c.UserID, c.Name, c.IsDefault).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return category.ErrDuplicateName
		}

		return fmt.Errorf("creating category: %w", err)
	}

	return nil
}

func (s *Store) Update(ctx context.Context, c *category.Category) error {
	query := `
		UPDATE categories
		SET name = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query, c.Name, c.ID, c.UserID).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return category.ErrNotFound
		}

		if database.IsUniqueViolation(err) {
			return category.ErrDuplicateName
		}

		return fmt.Errorf("updating category: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1 AND user_id = $2 AND NOT is_default`, id, userID)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return category.ErrInUse
		}

		return fmt.Errorf("deleting category: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading deleted rows: %w", err)
	}

	if n == 0 {
		return category.ErrNotFound
	}

	return nil
}

func (s *Store) BelongsToUser(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	var exists bool

	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1 AND user_id = $2)`, id, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking category owner: %w", err)
	}

	return exists, nil
}
