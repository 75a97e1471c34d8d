package validation_test

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/skarbonka/internal/category"
	"github.com/MrJamesThe3rd/skarbonka/internal/expense"
	"github.com/MrJamesThe3rd/skarbonka/internal/goal"
	"github.com/MrJamesThe3rd/skarbonka/internal/income"
	"github.com/MrJamesThe3rd/skarbonka/internal/listing"
	"github.com/MrJamesThe3rd/skarbonka/internal/validation"
)

func query(pairs ...string) url.Values {
	q := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		q.Set(pairs[i], pairs[i+1])
	}

	return q
}

func TestValidateGetExpensesQuery(t *testing.T) {
	type testCase struct {
		name       string
		query      url.Values
		wantErrors []string
	}

	tests := []testCase{
		{name: "Empty", query: query()},
		{
			name:  "AllValid",
			query: query("page", "2", "limit", "100", "sort", "amount desc", "month", "2024-02", "category_id", uuid.NewString()),
		},
		{name: "PageZero", query: query("page", "0"), wantErrors: []string{"page must be an integer greater than or equal to 1"}},
		{name: "PageNotNumber", query: query("page", "abc"), wantErrors: []string{"page must be an integer greater than or equal to 1"}},
		{name: "LimitTooHigh", query: query("limit", "101"), wantErrors: []string{"limit must be an integer between 1 and 100"}},
		{name: "LimitZero", query: query("limit", "0"), wantErrors: []string{"limit must be an integer between 1 and 100"}},
		{
			name:       "UnknownDirection",
			query:      query("sort", "amount FOO"),
			wantErrors: []string{`Invalid sort direction "FOO" for amount. Allowed directions: ASC, DESC`},
		},
		{
			name:       "UnknownField",
			query:      query("sort", "user_id ASC"),
			wantErrors: []string{`Invalid sort field "user_id". Allowed fields: date, amount, created_at`},
		},
		{
			name:       "TooManySortParts",
			query:      query("sort", "date ASC now"),
			wantErrors: []string{`Invalid sort format "date ASC now". Expected "<field> [ASC|DESC]"`},
		},
		{name: "MonthOutOfRange", query: query("month", "2024-13"), wantErrors: []string{"month must be in YYYY-MM format"}},
		{name: "YearTooEarly", query: query("month", "1999-12"), wantErrors: []string{"month year must be between 2000 and 2100"}},
		{name: "BadCategory", query: query("category_id", "42"), wantErrors: []string{"category_id must be a valid UUID v4"}},
		{
			name:  "Several",
			query: query("page", "-1", "limit", "1000"),
			wantErrors: []string{
				"page must be an integer greater than or equal to 1",
				"limit must be an integer between 1 and 100",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validation.ValidateGetExpensesQuery(tt.query)

			if len(tt.wantErrors) == 0 {
				assert.True(t, got.IsValid, got.Errors)
				assert.Empty(t, got.Errors)

				return
			}

			assert.False(t, got.IsValid)
			assert.Equal(t, tt.wantErrors, got.Errors)
		})
	}
}

func TestSanitizeGetExpensesQuery(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		got, ok := validation.SanitizeGetExpensesQuery(query())
		require.True(t, ok)
		assert.Equal(t, listing.DefaultPageRequest(), got.Page)
		assert.Equal(t, expense.DefaultSort, got.Sort)
		assert.Nil(t, got.Month)
		assert.Nil(t, got.CategoryID)
	})

	t.Run("BadSortFallsBackToDefault", func(t *testing.T) {
		got, ok := validation.SanitizeGetExpensesQuery(query("sort", "amount FOO", "page", "-3", "limit", "500"))
		require.True(t, ok)
		assert.Equal(t, expense.DefaultSort, got.Sort)
		assert.Equal(t, listing.DefaultPage, got.Page.Page)
		assert.Equal(t, listing.DefaultLimit, got.Page.Limit)
	})

	t.Run("CaseInsensitiveSort", func(t *testing.T) {
		got, ok := validation.SanitizeGetExpensesQuery(query("sort", "AMOUNT desc"))
		require.True(t, ok)
		assert.Equal(t, listing.Sort[expense.SortField]{Field: expense.SortByAmount, Direction: listing.Desc}, got.Sort)
	})

	t.Run("DirectionDefaultsToAsc", func(t *testing.T) {
		got, ok := validation.SanitizeGetExpensesQuery(query("sort", "date"))
		require.True(t, ok)
		assert.Equal(t, listing.Asc, got.Sort.Direction)
	})

	t.Run("Filters", func(t *testing.T) {
		categoryID := uuid.New()

		got, ok := validation.SanitizeGetExpensesQuery(query("month", "2024-02", "category_id", categoryID.String(), "page", "3"))
		require.True(t, ok)
		require.NotNil(t, got.Month)
		assert.Equal(t, listing.Month{Year: 2024, Month: time.February}, *got.Month)
		require.NotNil(t, got.CategoryID)
		assert.Equal(t, categoryID, *got.CategoryID)
		assert.Equal(t, 3, got.Page.Page)
		assert.Equal(t, 20, got.Page.Offset())
	})

	t.Run("BadFilterIsRejected", func(t *testing.T) {
		_, ok := validation.SanitizeGetExpensesQuery(query("month", "February"))
		assert.False(t, ok)
	})
}

func TestSortAllowLists(t *testing.T) {
	t.Run("Categories", func(t *testing.T) {
		got := validation.ValidateGetCategoriesQuery(query("sort", "amount"))
		assert.Equal(t, []string{`Invalid sort field "amount". Allowed fields: name, created_at`}, got.Errors)

		q, ok := validation.SanitizeGetCategoriesQuery(query("sort", "name asc"))
		require.True(t, ok)
		assert.Equal(t, category.SortByName, q.Sort.Field)
	})

	t.Run("Incomes", func(t *testing.T) {
		got := validation.ValidateGetIncomesQuery(query("sort", "source"))
		assert.Equal(t, []string{`Invalid sort field "source". Allowed fields: date, amount, created_at`}, got.Errors)

		q, ok := validation.SanitizeGetIncomesQuery(query("sort", "source"))
		require.True(t, ok)
		assert.Equal(t, income.DefaultSort, q.Sort)
	})

	t.Run("Goals", func(t *testing.T) {
		assert.True(t, validation.ValidateGetGoalsQuery(query("sort", "current_amount DESC")).IsValid)

		got := validation.ValidateGetGoalsQuery(query("sort", "date"))
		assert.Equal(t, []string{
			`Invalid sort field "date". Allowed fields: name, target_amount, current_amount, created_at`,
		}, got.Errors)

		q, ok := validation.SanitizeGetGoalsQuery(query())
		require.True(t, ok)
		assert.Equal(t, goal.DefaultSort, q.Sort)
	})

	t.Run("Contributions", func(t *testing.T) {
		goalID := uuid.New()

		got := validation.ValidateGetContributionsQuery(goalID.String(), query("sort", "name"))
		assert.Equal(t, []string{`Invalid sort field "name". Allowed fields: amount, date, created_at`}, got.Errors)

		q, ok := validation.SanitizeGetContributionsQuery(goalID.String(), query("sort", "amount"))
		require.True(t, ok)
		assert.Equal(t, goalID, q.GoalID)
		assert.Equal(t, goal.ContributionSortByAmount, q.Sort.Field)
		assert.Equal(t, listing.Asc, q.Sort.Direction)

		_, ok = validation.SanitizeGetContributionsQuery("not-a-uuid", query())
		assert.False(t, ok)
	})
}

func TestBudgetQuery(t *testing.T) {
	type testCase struct {
		name      string
		month     string
		wantValid bool
		wantMonth listing.Month
	}

	tests := []testCase{
		{name: "LeapFebruary", month: "2024-02", wantValid: true, wantMonth: listing.Month{Year: 2024, Month: time.February}},
		{name: "LowerBound", month: "2000-01", wantValid: true, wantMonth: listing.Month{Year: 2000, Month: time.January}},
		{name: "UpperBound", month: "2100-12", wantValid: true, wantMonth: listing.Month{Year: 2100, Month: time.December}},
		{name: "Missing", month: ""},
		{name: "AfterUpperBound", month: "2101-01"},
		{name: "SingleDigitMonth", month: "2024-2"},
		{name: "FullDate", month: "2024-02-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := query("month", tt.month)

			assert.Equal(t, tt.wantValid, validation.ValidateBudgetQuery(q).IsValid)

			got, ok := validation.SanitizeBudgetQuery(q)
			assert.Equal(t, tt.wantValid, ok)

			if tt.wantValid {
				assert.Equal(t, tt.wantMonth, got)
			}
		})
	}

	assert.Equal(t, []string{"month is required"}, validation.ValidateBudgetQuery(url.Values{}).Errors)
}

func TestReportMonth(t *testing.T) {
	assert.True(t, validation.ValidateReportMonth("2023-11").IsValid)
	assert.False(t, validation.ValidateReportMonth("11-2023").IsValid)

	m, ok := validation.SanitizeReportMonth("2023-11")
	require.True(t, ok)
	assert.Equal(t, "2023-11", m.String())
}

func TestSanitizeGoalsReportQuery(t *testing.T) {
	assert.True(t, validation.SanitizeGoalsReportQuery(query("include_predictions", "true")))
	assert.True(t, validation.SanitizeGoalsReportQuery(query("include_predictions", "TRUE")))
	assert.False(t, validation.SanitizeGoalsReportQuery(query("include_predictions", "nope")))
	assert.False(t, validation.SanitizeGoalsReportQuery(query()))
}

func TestValidateID(t *testing.T) {
	type testCase struct {
		name  string
		raw   string
		valid bool
	}

	tests := []testCase{
		{name: "V4", raw: "3f1c7f9e-8d4b-4a8e-9c2d-1b2e3f4a5b6c", valid: true},
		{name: "UpperCaseV4", raw: "3F1C7F9E-8D4B-4A8E-9C2D-1B2E3F4A5B6C", valid: true},
		{name: "MixedCaseV4", raw: "3f1C7f9E-8d4b-4A8e-9c2d-1B2e3f4a5b6C", valid: true},
		{name: "UpperCaseV1", raw: "6BA7B810-9DAD-11D1-80B4-00C04FD430C8"},
		{name: "V1", raw: "6ba7b810-9dad-11d1-80b4-00c04fd430c8"},
		{name: "NoDashes", raw: "3f1c7f9e8d4b4a8e9c2d1b2e3f4a5b6c"},
		{name: "Garbage", raw: "1; DROP TABLE expenses"},
		{name: "Empty", raw: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, validation.ValidateID(tt.raw).IsValid)

			id, ok := validation.SanitizeID(tt.raw)
			assert.Equal(t, tt.valid, ok)

			if tt.valid {
				assert.Equal(t, strings.ToLower(tt.raw), id.String())
			}
		})
	}
}
