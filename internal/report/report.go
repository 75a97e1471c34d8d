// Package report builds the read-only views over a user's records: the
// monthly expense report and the savings goals overview.
package report

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/MrJamesThe3rd/skarbonka/internal/goal"
	"github.com/MrJamesThe3rd/skarbonka/internal/listing"
)

var hundred = decimal.NewFromInt(100)

// LineItem is one expense as it appears on the monthly report.
type LineItem struct {
	Date     time.Time
	Amount   decimal.Decimal
	Category string
}

type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

type MonthlyReport struct {
	Month          listing.Month
	Expenses       []LineItem
	CategoryTotals []CategoryTotal
	Total          decimal.Decimal
}

// BuildMonthly turns the month's expenses, already ordered by date, into a
// report. Category totals are ordered by category name.
func BuildMonthly(month listing.Month, items []LineItem) *MonthlyReport {
	totals := make(map[string]decimal.Decimal)
	sum := decimal.Zero

	for _, it := range items {
		totals[it.Category] = totals[it.Category].Add(it.Amount)
		sum = sum.Add(it.Amount)
	}

	categoryTotals := make([]CategoryTotal, 0, len(totals))
	for name, total := range totals {
		categoryTotals = append(categoryTotals, CategoryTotal{Category: name, Total: total})
	}

	col := collate.New(language.Polish)

	slices.SortFunc(categoryTotals, func(a, b CategoryTotal) int {
		return col.CompareString(a.Category, b.Category)
	})

	if items == nil {
		items = []LineItem{}
	}

	return &MonthlyReport{
		Month:          month,
		Expenses:       items,
		CategoryTotals: categoryTotals,
		Total:          sum,
	}
}

type GoalProgress struct {
	ID                 uuid.UUID
	Name               string
	TargetAmount       decimal.Decimal
	CurrentAmount      decimal.Decimal
	ProgressPercentage decimal.Decimal
	RemainingAmount    decimal.Decimal
	// PredictedCompletionDate is only filled in when predictions are requested.
	PredictedCompletionDate *time.Time
}

// BuildGoals computes progress for each goal. Progress is not capped at 100;
// remaining never drops below zero.
func BuildGoals(goals []*goal.Goal) []GoalProgress {
	out := make([]GoalProgress, 0, len(goals))

	for _, g := range goals {
		progress := decimal.Zero
		if !g.TargetAmount.IsZero() {
			progress = g.CurrentAmount.Mul(hundred).Div(g.TargetAmount).Round(2)
		}

		remaining := g.TargetAmount.Sub(g.CurrentAmount)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}

		out = append(out, GoalProgress{
			ID:                 g.ID,
			Name:               g.Name,
			TargetAmount:       g.TargetAmount,
			CurrentAmount:      g.CurrentAmount,
			ProgressPercentage: progress,
			RemainingAmount:    remaining,
		})
	}

	return out
}
