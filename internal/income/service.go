package income

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/skarbonka/internal/listing"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=income
type Repository interface {
	List(ctx context.Context, userID uuid.UUID, q ListQuery) (listing.Page[*Income], error)
	Get(ctx context.Context, id, userID uuid.UUID) (*Income, error)
	Create(ctx context.Context, inc *Income) error
	Update(ctx context.Context, inc *Income) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	BelongsToUser(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	Source      string
}

type UpdateParams struct {
	Amount      *decimal.Decimal
	Date        *time.Time
	Description *string
	Source      *string
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, q ListQuery) (listing.Page[*Income], error) {
	return s.repo.List(ctx, userID, q)
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, params CreateParams) (*Income, error) {
	inc := &Income{
		UserID:      userID,
		Amount:      params.Amount,
		Date:        params.Date,
		Description: params.Description,
		Source:      params.Source,
	}
	if err := s.repo.Create(ctx, inc); err != nil {
		return nil, err
	}

	return inc, nil
}

func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, params UpdateParams) (*Income, error) {
	if err := s.requireOwned(ctx, id, userID); err != nil {
		return nil, err
	}

	inc, err := s.repo.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if params.Amount != nil {
		inc.Amount = *params.Amount
	}

	if params.Date != nil {
		inc.Date = *params.Date
	}

	if params.Description != nil {
		inc.Description = *params.Description
	}

	if params.Source != nil {
		inc.Source = *params.Source
	}

	if err := s.repo.Update(ctx, inc); err != nil {
		return nil, err
	}

	return inc, nil
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
		return fmt.Errorf("checking income ownership: %w", err)
	}

	if !ok {
		return ErrNotFound
	}

	return nil
}
