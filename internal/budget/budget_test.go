package budget_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/skarbonka/internal/budget"
	"github.com/MrJamesThe3rd/skarbonka/internal/listing"
)

var march = listing.Month{Year: 2024, Month: time.March}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func names(shares []budget.CategoryShare) []string {
	out := make([]string, 0, len(shares))
	for _, s := range shares {
		out = append(out, s.CategoryName)
	}

	return out
}

func TestAggregate(t *testing.T) {
	got := budget.Aggregate(march, d("1000"), []budget.CategorySum{
		{CategoryName: "Transport", Amount: d("200")},
		{CategoryName: "Food", Amount: d("300")},
	})

	assert.True(t, d("1000").Equal(got.TotalIncome))
	assert.True(t, d("500").Equal(got.TotalExpenses))
	assert.True(t, d("500").Equal(got.Remaining))
	assert.Equal(t, march, got.Month)

	require.Len(t, got.CategoryBreakdown, 2)
	assert.Equal(t, "Food", got.CategoryBreakdown[0].CategoryName)
	assert.True(t, d("60").Equal(got.CategoryBreakdown[0].Percentage))
	assert.Equal(t, "Transport", got.CategoryBreakdown[1].CategoryName)
	assert.True(t, d("40").Equal(got.CategoryBreakdown[1].Percentage))
}

func TestAggregate_OmitsUnusedCategoriesWhenSpending(t *testing.T) {
	got := budget.Aggregate(march, d("1000"), []budget.CategorySum{
		{CategoryName: "Housing", Amount: decimal.Zero},
		{CategoryName: "Transport", Amount: d("200")},
		{CategoryName: "Food", Amount: d("300")},
		{CategoryName: "Health", Amount: decimal.Zero},
	})

	require.Len(t, got.CategoryBreakdown, 2)
	assert.Equal(t, []string{"Food", "Transport"}, names(got.CategoryBreakdown))
	assert.True(t, d("300").Equal(got.CategoryBreakdown[0].Amount))
	assert.True(t, d("60").Equal(got.CategoryBreakdown[0].Percentage))
	assert.True(t, d("200").Equal(got.CategoryBreakdown[1].Amount))
	assert.True(t, d("40").Equal(got.CategoryBreakdown[1].Percentage))
	assert.True(t, d("500").Equal(got.TotalExpenses))
}

func TestAggregate_Ordering(t *testing.T) {
	type testCase struct {
		name      string
		sums      []budget.CategorySum
		wantOrder []string
	}

	tests := []testCase{
		{
			name: "AmountDescendingTiesByName",
			sums: []budget.CategorySum{
				{CategoryName: "Rozrywka", Amount: d("50")},
				{CategoryName: "Jedzenie", Amount: d("50")},
				{CategoryName: "Mieszkanie", Amount: d("1200")},
				{CategoryName: "Zdrowie", Amount: d("0")},
			},
			wantOrder: []string{"Mieszkanie", "Jedzenie", "Rozrywka"},
		},
		{
			name: "NoSpendingIsAlphabeticalInPolish",
			sums: []budget.CategorySum{
				{CategoryName: "Zdrowie", Amount: d("0")},
				{CategoryName: "Ćwiczenia", Amount: d("0")},
				{CategoryName: "Łazienka", Amount: d("0")},
				{CategoryName: "Lody", Amount: d("0")},
				{CategoryName: "Czynsz", Amount: d("0")},
				{CategoryName: "Auto", Amount: d("0")},
			},
			wantOrder: []string{"Auto", "Czynsz", "Ćwiczenia", "Lody", "Łazienka", "Zdrowie"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := budget.Aggregate(march, decimal.Zero, tt.sums)
			assert.Equal(t, tt.wantOrder, names(got.CategoryBreakdown))
		})
	}
}

func TestAggregate_NoExpenses(t *testing.T) {
	got := budget.Aggregate(march, d("2500.50"), []budget.CategorySum{
		{CategoryName: "Transport", Amount: decimal.Zero},
		{CategoryName: "Jedzenie", Amount: decimal.Zero},
	})

	assert.True(t, got.TotalExpenses.IsZero())
	assert.True(t, d("2500.50").Equal(got.Remaining))

	for _, share := range got.CategoryBreakdown {
		assert.True(t, share.Percentage.IsZero(), share.CategoryName)
	}
}

func TestAggregate_BreakdownSumsToTotal(t *testing.T) {
	got := budget.Aggregate(march, d("100"), []budget.CategorySum{
		{CategoryName: "A", Amount: d("10.01")},
		{CategoryName: "B", Amount: d("10.01")},
		{CategoryName: "C", Amount: d("10.01")},
		{CategoryName: "D", Amount: d("0")},
	})

	sum := decimal.Zero
	for _, share := range got.CategoryBreakdown {
		sum = sum.Add(share.Amount)
		assert.False(t, share.Amount.IsNegative())
	}

	assert.True(t, got.TotalExpenses.Equal(sum))
	assert.True(t, d("30.03").Equal(got.TotalExpenses))
	assert.True(t, d("69.97").Equal(got.Remaining))
	assert.True(t, d("33.33").Equal(got.CategoryBreakdown[0].Percentage))
}

func TestAggregate_PercentagesSumToHundred(t *testing.T) {
	type testCase struct {
		name    string
		amounts []string
	}

	tests := []testCase{
		{name: "Thirds", amounts: []string{"10.01", "10.01", "10.01"}},
		{name: "Lopsided", amounts: []string{"1", "998", "1"}},
		{name: "Sevenths", amounts: []string{"1", "1", "1", "1", "1", "1", "1"}},
		{name: "Single", amounts: []string{"42.42"}},
		{name: "WithUnusedCategory", amounts: []string{"33.33", "66.67", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sums := make([]budget.CategorySum, len(tt.amounts))
			for i, a := range tt.amounts {
				sums[i] = budget.CategorySum{CategoryName: string(rune('A' + i)), Amount: d(a)}
			}

			got := budget.Aggregate(march, decimal.Zero, sums)
			require.True(t, got.TotalExpenses.IsPositive())

			pctSum := decimal.Zero
			amountSum := decimal.Zero

			for _, share := range got.CategoryBreakdown {
				pctSum = pctSum.Add(share.Percentage)
				amountSum = amountSum.Add(share.Amount)
			}

			tolerance := d("0.01").Mul(decimal.NewFromInt(int64(len(got.CategoryBreakdown))))

			assert.True(t, pctSum.Sub(d("100")).Abs().LessThanOrEqual(tolerance),
				"percentages sum to %s", pctSum)
			assert.True(t, got.TotalExpenses.Equal(amountSum))
		})
	}
}

func TestAggregate_OverspentGoesNegative(t *testing.T) {
	got := budget.Aggregate(march, d("100"), []budget.CategorySum{{CategoryName: "Auto", Amount: d("150.25")}})

	assert.True(t, d("-50.25").Equal(got.Remaining))
	assert.True(t, d("100").Equal(got.CategoryBreakdown[0].Percentage))
}

func TestAggregate_Empty(t *testing.T) {
	got := budget.Aggregate(march, decimal.Zero, nil)

	assert.NotNil(t, got.CategoryBreakdown)
	assert.Empty(t, got.CategoryBreakdown)
	assert.True(t, got.Remaining.IsZero())
}
