package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/skarbonka/internal/listing"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=goal
type Repository interface {
	List(ctx context.Context, userID uuid.UUID, q ListQuery) (listing.Page[*Goal], error)
	Get(ctx context.Context, id, userID uuid.UUID) (*Goal, error)
	Create(ctx context.Context, g *Goal) error
	Update(ctx context.Context, g *Goal) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	BelongsToUser(ctx context.Context, id, userID uuid.UUID) (bool, error)

	ListContributions(ctx context.Context, userID uuid.UUID, q ContributionListQuery) (listing.Page[*Contribution], error)
	// Contributions returns every contribution of a goal, newest first.
	Contributions(ctx context.Context, goalID, userID uuid.UUID) ([]*Contribution, error)
	// AddContribution stores c and raises the goal's current amount by c.Amount.
	AddContribution(ctx context.Context, c *Contribution) error
	// DeleteContribution removes a contribution and lowers the goal's current amount.
	DeleteContribution(ctx context.Context, id, goalID, userID uuid.UUID) error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type CreateParams struct {
	Name         string
	TargetAmount decimal.Decimal
}

type UpdateParams struct {
	Name         *string
	TargetAmount *decimal.Decimal
}

type ContributionParams struct {
	Amount      decimal.Decimal
	Date        time.Time
	Description string
}

// Prediction is the forecast for a single goal. PredictedCompletionDate is
// nil when there is not enough recent activity to extrapolate from.
type Prediction struct {
	GoalID                  uuid.UUID
	RemainingAmount         decimal.Decimal
	PredictedCompletionDate *time.Time
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, q ListQuery) (listing.Page[*Goal], error) {
	return s.repo.List(ctx, userID, q)
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Goal, error) {
	return s.repo.Get(ctx, id, userID)
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, params CreateParams) (*Goal, error) {
	if !params.TargetAmount.IsPositive() {
		return nil, ErrInvalidTarget
	}

	g := &Goal{
		UserID:        userID,
		Name:          params.Name,
		TargetAmount:  params.TargetAmount,
		CurrentAmount: decimal.Zero,
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}

	return g, nil
}

func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, params UpdateParams) (*Goal, error) {
	if params.TargetAmount != nil && !params.TargetAmount.IsPositive() {
		return nil, ErrInvalidTarget
	}

	if err := s.requireOwned(ctx, id, userID); err != nil {
		return nil, err
	}

	g, err := s.repo.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		g.Name = *params.Name
	}

	if params.TargetAmount != nil {
		g.TargetAmount = *params.TargetAmount
	}

	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}

	return g, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.requireOwned(ctx, id, userID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id, userID)
}

func (s *Service) ListContributions(ctx context.Context, userID uuid.UUID, q ContributionListQuery) (listing.Page[*Contribution], error) {
	if err := s.requireOwned(ctx, q.GoalID, userID); err != nil {
		return listing.Page[*Contribution]{}, err
	}

	return s.repo.ListContributions(ctx, userID, q)
}

func (s *Service) AddContribution(ctx context.Context, userID, goalID uuid.UUID, params ContributionParams) (*Contribution, error) {
	if err := s.requireOwned(ctx, goalID, userID); err != nil {
		return nil, err
	}

	c := &Contribution{
		UserID:      userID,
		GoalID:      goalID,
		Amount:      params.Amount,
		Date:        params.Date,
		Description: params.Description,
	}
	if err := s.repo.AddContribution(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) DeleteContribution(ctx context.Context, userID, goalID, id uuid.UUID) error {
	if err := s.requireOwned(ctx, goalID, userID); err != nil {
		return err
	}

	return s.repo.DeleteContribution(ctx, id, goalID, userID)
}

// Predict forecasts when the goal will be reached at the current pace.
func (s *Service) Predict(ctx context.Context, userID, id uuid.UUID) (*Prediction, error) {
	g, err := s.repo.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	contributions, err := s.repo.Contributions(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("loading contributions: %w", err)
	}

	remaining := g.TargetAmount.Sub(g.CurrentAmount)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return &Prediction{
		GoalID:                  g.ID,
		RemainingAmount:         remaining,
		PredictedCompletionDate: Predict(g.TargetAmount, g.CurrentAmount, contributions, s.now()),
	}, nil
}

func (s *Service) requireOwned(ctx context.Context, id, userID uuid.UUID) error {
	ok, err := s.repo.BelongsToUser(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("checking goal ownership: %w", err)
	}

	if !ok {
		return ErrNotFound
	}

	return nil
}
