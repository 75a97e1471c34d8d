package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/skarbonka/internal/listing"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=budget
type Repository interface {
	// IncomeTotal sums the user's incomes dated within [start, end].
	IncomeTotal(ctx context.Context, userID uuid.UUID, start, end time.Time) (decimal.Decimal, error)
	// ExpensesByCategory returns one row per category of the user, including
	// categories with no expenses in [start, end].
	ExpensesByCategory(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]CategorySum, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) MonthlyBudget(ctx context.Context, userID uuid.UUID, month listing.Month) (*MonthlyBudget, error) {
	start, end := month.Range()

	var (
		income decimal.Decimal
		sums   []CategorySum
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error

		income, err = s.repo.IncomeTotal(gctx, userID, start, end)
		if err != nil {
			return fmt.Errorf("summing incomes: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		var err error

		sums, err = s.repo.ExpensesByCategory(gctx, userID, start, end)
		if err != nil {
			return fmt.Errorf("summing expenses by category: %w", err)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Aggregate(month, income, sums), nil
}
