package validation

import (
	"math"
	"net/url"
	"strings"

	"github.com/MrJamesThe3rd/skarbonka/internal/category"
	"github.com/MrJamesThe3rd/skarbonka/internal/expense"
	"github.com/MrJamesThe3rd/skarbonka/internal/goal"
	"github.com/MrJamesThe3rd/skarbonka/internal/income"
	"github.com/MrJamesThe3rd/skarbonka/internal/listing"
)

// parsedQuery carries a list query together with two kinds of problems:
// lenient ones that Sanitize replaces with defaults and strict ones that make
// the whole query unusable.
type parsedQuery[T any] struct {
	value   T
	lenient problems
	strict  problems
}

func (p parsedQuery[T]) result() Result {
	return newResult(append(append(problems{}, p.lenient...), p.strict...))
}

func (p parsedQuery[T]) sanitized() (T, bool) {
	return p.value, len(p.strict) == 0
}

func readPage(q url.Values, errs *problems) listing.PageRequest {
	req := listing.DefaultPageRequest()

	if raw := q.Get("page"); raw != "" {
		if n, ok := parsePositiveInt(raw, 1, math.MaxInt32); ok {
			req.Page = n
		} else {
			errs.add("page must be an integer greater than or equal to 1")
		}
	}

	if raw := q.Get("limit"); raw != "" {
		if n, ok := parsePositiveInt(raw, 1, listing.MaxLimit); ok {
			req.Limit = n
		} else {
			errs.addf("limit must be an integer between 1 and %d", listing.MaxLimit)
		}
	}

	return req
}

func readSort[F ~string](q url.Values, allowed []F, def listing.Sort[F], errs *problems) listing.Sort[F] {
	raw := strings.TrimSpace(q.Get("sort"))
	if raw == "" {
		return def
	}

	s, msg := parseSort(raw, allowed)
	if msg != "" {
		errs.add(msg)
		return def
	}

	return s
}

func readMonthFilter(q url.Values, errs *problems) *listing.Month {
	raw := strings.TrimSpace(q.Get("month"))
	if raw == "" {
		return nil
	}

	m, msg := parseMonth(raw, "month")
	if msg != "" {
		errs.add(msg)
		return nil
	}

	return &m
}

func parseCategoriesQuery(q url.Values) parsedQuery[category.ListQuery] {
	var p parsedQuery[category.ListQuery]

	p.value.Page = readPage(q, &p.lenient)
	p.value.Sort = readSort(q, category.SortFields, category.DefaultSort, &p.lenient)

	return p
}

func ValidateGetCategoriesQuery(q url.Values) Result {
	return parseCategoriesQuery(q).result()
}

func SanitizeGetCategoriesQuery(q url.Values) (category.ListQuery, bool) {
	return parseCategoriesQuery(q).sanitized()
}

func parseExpensesQuery(q url.Values) parsedQuery[expense.ListQuery] {
	var p parsedQuery[expense.ListQuery]

	p.value.Page = readPage(q, &p.lenient)
	p.value.Sort = readSort(q, expense.SortFields, expense.DefaultSort, &p.lenient)
	p.value.Month = readMonthFilter(q, &p.strict)

	if raw := strings.TrimSpace(q.Get("category_id")); raw != "" {
		id, msg := parseID(raw, "category_id")
		if msg != "" {
			p.strict.add(msg)
		} else {
			p.value.CategoryID = &id
		}
	}

	return p
}

func ValidateGetExpensesQuery(q url.Values) Result {
	return parseExpensesQuery(q).result()
}

func SanitizeGetExpensesQuery(q url.Values) (expense.ListQuery, bool) {
	return parseExpensesQuery(q).sanitized()
}

func parseIncomesQuery(q url.Values) parsedQuery[income.ListQuery] {
	var p parsedQuery[income.ListQuery]

	p.value.Page = readPage(q, &p.lenient)
	p.value.Sort = readSort(q, income.SortFields, income.DefaultSort, &p.lenient)
	p.value.Month = readMonthFilter(q, &p.strict)

	return p
}

func ValidateGetIncomesQuery(q url.Values) Result {
	return parseIncomesQuery(q).result()
}

func SanitizeGetIncomesQuery(q url.Values) (income.ListQuery, bool) {
	return parseIncomesQuery(q).sanitized()
}

func parseGoalsQuery(q url.Values) parsedQuery[goal.ListQuery] {
	var p parsedQuery[goal.ListQuery]

	p.value.Page = readPage(q, &p.lenient)
	p.value.Sort = readSort(q, goal.SortFields, goal.DefaultSort, &p.lenient)

	return p
}

func ValidateGetGoalsQuery(q url.Values) Result {
	return parseGoalsQuery(q).result()
}

func SanitizeGetGoalsQuery(q url.Values) (goal.ListQuery, bool) {
	return parseGoalsQuery(q).sanitized()
}

func parseContributionsQuery(goalID string, q url.Values) parsedQuery[goal.ContributionListQuery] {
	var p parsedQuery[goal.ContributionListQuery]

	id, msg := parseID(goalID, "goal id")
	p.strict.add(msg)
	p.value.GoalID = id

	p.value.Page = readPage(q, &p.lenient)
	p.value.Sort = readSort(q, goal.ContributionSortFields, goal.DefaultContributionSort, &p.lenient)

	return p
}

// ValidateGetContributionsQuery checks the goal id from the path together
// with the list parameters.
func ValidateGetContributionsQuery(goalID string, q url.Values) Result {
	return parseContributionsQuery(goalID, q).result()
}

func SanitizeGetContributionsQuery(goalID string, q url.Values) (goal.ContributionListQuery, bool) {
	return parseContributionsQuery(goalID, q).sanitized()
}

func parseRequiredMonth(raw string) (listing.Month, problems) {
	var errs problems

	raw = strings.TrimSpace(raw)
	if raw == "" {
		errs.add("month is required")
		return listing.Month{}, errs
	}

	m, msg := parseMonth(raw, "month")
	errs.add(msg)

	return m, errs
}

// ValidateBudgetQuery checks the mandatory month parameter of the budget view.
func ValidateBudgetQuery(q url.Values) Result {
	_, errs := parseRequiredMonth(q.Get("month"))
	return newResult(errs)
}

func SanitizeBudgetQuery(q url.Values) (listing.Month, bool) {
	m, errs := parseRequiredMonth(q.Get("month"))
	return m, len(errs) == 0
}

// ValidateReportMonth checks the month path parameter of the monthly report.
func ValidateReportMonth(raw string) Result {
	_, errs := parseRequiredMonth(raw)
	return newResult(errs)
}

func SanitizeReportMonth(raw string) (listing.Month, bool) {
	m, errs := parseRequiredMonth(raw)
	return m, len(errs) == 0
}

// SanitizeGoalsReportQuery reads the optional include_predictions flag.
// Anything other than a true value leaves predictions off.
func SanitizeGoalsReportQuery(q url.Values) bool {
	switch strings.ToLower(strings.TrimSpace(q.Get("include_predictions"))) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

