package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/skarbonka/internal/listing"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	List(ctx context.Context, userID uuid.UUID, q ListQuery) (listing.Page[*Category], error)
	Get(ctx context.Context, id, userID uuid.UUID) (*Category, error)
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
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
	Name string
}

type UpdateParams struct {
	Name string
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, q ListQuery) (listing.Page[*Category], error) {
	return s.repo.List(ctx, userID, q)
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, params CreateParams) (*Category, error) {
	c := &Category{
		UserID: userID,
		Name:   params.Name,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, params UpdateParams) (*Category, error) {
	c, err := s.repo.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	c.Name = params.Name
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	c, err := s.repo.Get(ctx, id, userID)
	if err != nil {
		return err
	}

	if c.IsDefault {
		return ErrDefaultCategory
	}

	return s.repo.Delete(ctx, id, userID)
}

// BelongsToUser reports whether the category exists and is owned by userID.
func (s *Service) BelongsToUser(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	ok, err := s.repo.BelongsToUser(ctx, id, userID)
	if err != nil {
		return false, fmt.Errorf("checking category ownership: %w", err)
	}

	return ok, nil
}
