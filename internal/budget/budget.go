// Package budget derives the monthly budget summary: income against expenses
// and how the expenses split across the user's categories.
package budget

import (
	"slices"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/MrJamesThe3rd/skarbonka/internal/listing"
)

var hundred = decimal.NewFromInt(100)

// CategorySum is the amount spent in one category over a period.
type CategorySum struct {
	CategoryName string
	Amount       decimal.Decimal
}

type CategoryShare struct {
	CategoryName string
	Amount       decimal.Decimal
	// Percentage of the month's expenses, rounded to two places.
	Percentage decimal.Decimal
}

type MonthlyBudget struct {
	Month             listing.Month
	TotalIncome       decimal.Decimal
	TotalExpenses     decimal.Decimal
	Remaining         decimal.Decimal
	CategoryBreakdown []CategoryShare
}

// Aggregate builds the budget for a month from the income total and the
// per-category expense sums.
//
// With any spending the breakdown holds only the categories that were spent
// in, ordered by amount, largest first, ties broken by name. Without spending
// every category is listed with a 0 share, alphabetically.
func Aggregate(month listing.Month, income decimal.Decimal, sums []CategorySum) *MonthlyBudget {
	total := decimal.Zero
	for _, s := range sums {
		total = total.Add(s.Amount)
	}

	breakdown := make([]CategoryShare, 0, len(sums))

	for _, s := range sums {
		pct := decimal.Zero

		if total.IsPositive() {
			if !s.Amount.IsPositive() {
				continue
			}

			pct = s.Amount.Mul(hundred).Div(total).Round(2)
		}

		breakdown = append(breakdown, CategoryShare{
			CategoryName: s.CategoryName,
			Amount:       s.Amount,
			Percentage:   pct,
		})
	}

	col := collate.New(language.Polish)

	slices.SortStableFunc(breakdown, func(a, b CategoryShare) int {
		if total.IsPositive() {
			if c := b.Amount.Cmp(a.Amount); c != 0 {
				return c
			}
		}

		return col.CompareString(a.CategoryName, b.CategoryName)
	})

	return &MonthlyBudget{
		Month:             month,
		TotalIncome:       income,
		TotalExpenses:     total,
		Remaining:         income.Sub(total),
		CategoryBreakdown: breakdown,
	}
}
