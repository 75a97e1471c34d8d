package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/skarbonka/internal/goal"
	"github.com/MrJamesThe3rd/skarbonka/internal/listing"
)

// predictionWorkers bounds the contribution lookups run for one goals report.
const predictionWorkers = 4

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=report
type Repository interface {
	// MonthlyExpenses returns the user's expenses in [start, end] ordered by date.
	MonthlyExpenses(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]LineItem, error)
	// Goals returns every goal of the user.
	Goals(ctx context.Context, userID uuid.UUID) ([]*goal.Goal, error)
}

type ContributionSource interface {
	Contributions(ctx context.Context, goalID, userID uuid.UUID) ([]*goal.Contribution, error)
}

type Service struct {
	repo          Repository
	contributions ContributionSource
	now           func() time.Time
}

func NewService(repo Repository, contributions ContributionSource) *Service {
	return &Service{repo: repo, contributions: contributions, now: time.Now}
}

type GoalsOptions struct {
	IncludePredictions bool
}

func (s *Service) Monthly(ctx context.Context, userID uuid.UUID, month listing.Month) (*MonthlyReport, error) {
	start, end := month.Range()

	items, err := s.repo.MonthlyExpenses(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("loading monthly expenses: %w", err)
	}

	return BuildMonthly(month, items), nil
}

func (s *Service) Goals(ctx context.Context, userID uuid.UUID, opts GoalsOptions) ([]GoalProgress, error) {
	goals, err := s.repo.Goals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading goals: %w", err)
	}

	report := BuildGoals(goals)
	if !opts.IncludePredictions {
		return report, nil
	}

	now := s.now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(predictionWorkers)

	for i, gl := range goals {
		// Reached goals never get a prediction.
		if gl.CurrentAmount.GreaterThanOrEqual(gl.TargetAmount) {
			continue
		}

		i, gl := i, gl
		g.Go(func() error {
			contributions, err := s.contributions.Contributions(gctx, gl.ID, userID)
			if err != nil {
				return fmt.Errorf("loading contributions for goal %s: %w", gl.ID, err)
			}

			report[i].PredictedCompletionDate = goal.Predict(gl.TargetAmount, gl.CurrentAmount, contributions, now)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return report, nil
}
