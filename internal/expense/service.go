package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/skarbonka/internal/listing"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	List(ctx context.Context, userID uuid.UUID, q ListQuery) (listing.Page[*Expense], error)
	Get(ctx context.Context, id, userID uuid.UUID) (*Expense, error)
	Create(ctx context.Context, e *Expense) error
	Update(ctx context.Context, e *Expense) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	BelongsToUser(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

// CategoryOwnership checks that a referenced category is owned by the user.
type CategoryOwnership interface {
	BelongsToUser(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

type Service struct {
	repo       Repository
	categories CategoryOwnership
}

func NewService(repo Repository, categories CategoryOwnership) *Service {
	return &Service{repo: repo, categories: categories}
}

type CreateParams struct {
	Amount      decimal.Decimal
	Date        time.Time
	CategoryID  uuid.UUID
	Description string
}

// UpdateParams carries only the fields being changed.
type UpdateParams struct {
	Amount      *decimal.Decimal
	Date        *time.Time
	CategoryID  *uuid.UUID
	Description *string
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, q ListQuery) (listing.Page[*Expense], error) {
	return s.repo.List(ctx, userID, q)
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, params CreateParams) (*Expense, error) {
	if err := s.requireCategory(ctx, params.CategoryID, userID); err != nil {
		return nil, err
	}

	e := &Expense{
		UserID:      userID,
		CategoryID:  params.CategoryID,
		Amount:      params.Amount,
		Date:        params.Date,
		Description: params.Description,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, params UpdateParams) (*Expense, error) {
	if err := s.requireOwned(ctx, id, userID); err != nil {
		return nil, err
	}

	if params.CategoryID != nil {
		if err := s.requireCategory(ctx, *params.CategoryID, userID); err != nil {
			return nil, err
		}
	}

	e, err := s.repo.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if params.Amount != nil {
		e.Amount = *params.Amount
	}

	if params.Date != nil {
		e.Date = *params.Date
	}

	if params.CategoryID != nil {
		e.CategoryID = *params.CategoryID
	}

	if params.Description != nil {
		e.Description = *params.Description
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.requireOwned(ctx, id, userID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id, userID)
}

func (s *Service) requireOwned(ctx context.Context, id, userID uuid.UUID) error {
	ok, err := s.repo.BelongsToUser(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("checking expense ownership: %w", err)
	}

	if !ok {
		return ErrNotFound
	}

	return nil
}

func (s *Service) requireCategory(ctx context.Context, categoryID, userID uuid.UUID) error {
	ok, err := s.categories.BelongsToUser(ctx, categoryID, userID)
	if err != nil {
		return fmt.Errorf("checking category ownership: %w", err)
	}

	if !ok {
		return ErrCategoryNotFound
	}

	return nil
}
