package validation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/skarbonka/internal/category"
	"github.com/MrJamesThe3rd/skarbonka/internal/expense"
	"github.com/MrJamesThe3rd/skarbonka/internal/goal"
	"github.com/MrJamesThe3rd/skarbonka/internal/income"
)

const (
	maxCategoryName            = 50
	maxGoalName                = 100
	maxExpenseDescription      = 1000
	maxIncomeDescription       = 500
	maxIncomeSource            = 100
	maxContributionDescription = 500
)

// Body is a JSON object decoded with json.Decoder.UseNumber.
type Body map[string]any

func (b Body) required(key string, errs *problems) (any, bool) {
	v, ok := b[key]
	if !ok || v == nil {
		errs.add(key + " is required")
		return nil, false
	}

	return v, true
}

func (b Body) anyOf(errs *problems, keys ...string) bool {
	for _, k := range keys {
		if _, ok := b[k]; ok {
			return true
		}
	}

	errs.add("at least one field must be provided")

	return false
}

func amountField(v any, key string, maxAmount decimal.Decimal, errs *problems) decimal.Decimal {
	d, msg := parseAmount(v, key, maxAmount)
	errs.add(msg)

	return d
}

func dateField(v any, key string, allowFuture bool, errs *problems) time.Time {
	s, _ := v.(string)

	t, msg := parseDate(s, key, allowFuture)
	errs.add(msg)

	return t
}

func idField(v any, key string, errs *problems) uuid.UUID {
	s, _ := v.(string)

	id, msg := parseID(s, key)
	errs.add(msg)

	return id
}

func textField(v any, key string, maxLen int, errs *problems) string {
	s, msg := parseText(v, key, maxLen)
	errs.add(msg)

	return s
}

func parseCreateCategory(b Body) (category.CreateParams, problems) {
	var errs problems

	name, msg := parseName(b["name"], "name", maxCategoryName, categoryNamePattern)
	errs.add(msg)

	return category.CreateParams{Name: name}, errs
}

func ValidateCreateCategory(b Body) Result {
	_, errs := parseCreateCategory(b)
	return newResult(errs)
}

func SanitizeCreateCategory(b Body) (category.CreateParams, bool) {
	params, errs := parseCreateCategory(b)
	return params, len(errs) == 0
}

func parseUpdateCategory(b Body) (category.UpdateParams, problems) {
	var errs problems

	if !b.anyOf(&errs, "name") {
		return category.UpdateParams{}, errs
	}

	name, msg := parseName(b["name"], "name", maxCategoryName, categoryNamePattern)
	errs.add(msg)

	return category.UpdateParams{Name: name}, errs
}

func ValidateUpdateCategory(b Body) Result {
	_, errs := parseUpdateCategory(b)
	return newResult(errs)
}

func SanitizeUpdateCategory(b Body) (category.UpdateParams, bool) {
	params, errs := parseUpdateCategory(b)
	return params, len(errs) == 0
}

func parseCreateExpense(b Body) (expense.CreateParams, problems) {
	var (
		params expense.CreateParams
		errs   problems
	)

	if v, ok := b.required("amount", &errs); ok {
		params.Amount = amountField(v, "amount", MaxExpenseAmount, &errs)
	}

	if v, ok := b.required("date", &errs); ok {
		params.Date = dateField(v, "date", false, &errs)
	}

	if v, ok := b.required("category_id", &errs); ok {
		params.CategoryID = idField(v, "category_id", &errs)
	}

	params.Description = textField(b["description"], "description", maxExpenseDescription, &errs)

	return params, errs
}

func ValidateCreateExpense(b Body) Result {
	_, errs := parseCreateExpense(b)
	return newResult(errs)
}

func SanitizeCreateExpense(b Body) (expense.CreateParams, bool) {
	params, errs := parseCreateExpense(b)
	return params, len(errs) == 0
}

func parseUpdateExpense(b Body) (expense.UpdateParams, problems) {
	var (
		params expense.UpdateParams
		errs   problems
	)

	if !b.anyOf(&errs, "amount", "date", "category_id", "description") {
		return params, errs
	}

	if v, ok := b["amount"]; ok {
		val := amountField(v, "amount", MaxExpenseAmount, &errs)
		params.Amount = &val
	}

	if v, ok := b["date"]; ok {
		val := dateField(v, "date", false, &errs)
		params.Date = &val
	}

	if v, ok := b["category_id"]; ok {
		val := idField(v, "category_id", &errs)
		params.CategoryID = &val
	}

	if v, ok := b["description"]; ok {
		val := textField(v, "description", maxExpenseDescription, &errs)
		params.Description = &val
	}

	return params, errs
}

func ValidateUpdateExpense(b Body) Result {
	_, errs := parseUpdateExpense(b)
	return newResult(errs)
}

func SanitizeUpdateExpense(b Body) (expense.UpdateParams, bool) {
	params, errs := parseUpdateExpense(b)
	return params, len(errs) == 0
}

func parseCreateIncome(b Body) (income.CreateParams, problems) {
	var (
		params income.CreateParams
		errs   problems
	)

	if v, ok := b.required("amount", &errs); ok {
		params.Amount = amountField(v, "amount", MaxIncomeAmount, &errs)
	}

	if v, ok := b.required("date", &errs); ok {
		params.Date = dateField(v, "date", true, &errs)
	}

	params.Description = textField(b["description"], "description", maxIncomeDescription, &errs)
	params.Source = textField(b["source"], "source", maxIncomeSource, &errs)

	return params, errs
}

func ValidateCreateIncome(b Body) Result {
	_, errs := parseCreateIncome(b)
	return newResult(errs)
}

func SanitizeCreateIncome(b Body) (income.CreateParams, bool) {
	params, errs := parseCreateIncome(b)
	return params, len(errs) == 0
}

func parseUpdateIncome(b Body) (income.UpdateParams, problems) {
	var (
		params income.UpdateParams
		errs   problems
	)

	if !b.anyOf(&errs, "amount", "date", "description", "source") {
		return params, errs
	}

	if v, ok := b["amount"]; ok {
		val := amountField(v, "amount", MaxIncomeAmount, &errs)
		params.Amount = &val
	}

	if v, ok := b["date"]; ok {
		val := dateField(v, "date", true, &errs)
		params.Date = &val
	}

	if v, ok := b["description"]; ok {
		val := textField(v, "description", maxIncomeDescription, &errs)
		params.Description = &val
	}

	if v, ok := b["source"]; ok {
		val := textField(v, "source", maxIncomeSource, &errs)
		params.Source = &val
	}

	return params, errs
}

func ValidateUpdateIncome(b Body) Result {
	_, errs := parseUpdateIncome(b)
	return newResult(errs)
}

func SanitizeUpdateIncome(b Body) (income.UpdateParams, bool) {
	params, errs := parseUpdateIncome(b)
	return params, len(errs) == 0
}

func parseCreateGoal(b Body) (goal.CreateParams, problems) {
	var (
		params goal.CreateParams
		errs   problems
	)

	name, msg := parseName(b["name"], "name", maxGoalName, goalNamePattern)
	errs.add(msg)
	params.Name = name

	if v, ok := b.required("target_amount", &errs); ok {
		params.TargetAmount = amountField(v, "target_amount", MaxGoalTarget, &errs)
	}

	return params, errs
}

func ValidateCreateGoal(b Body) Result {
	_, errs := parseCreateGoal(b)
	return newResult(errs)
}

func SanitizeCreateGoal(b Body) (goal.CreateParams, bool) {
	params, errs := parseCreateGoal(b)
	return params, len(errs) == 0
}

// parseUpdateGoal rejects current_amount: it only moves through contributions.
func parseUpdateGoal(b Body) (goal.UpdateParams, problems) {
	var (
		params goal.UpdateParams
		errs   problems
	)

	if _, ok := b["current_amount"]; ok {
		errs.add("current_amount cannot be set directly, add a contribution instead")
	}

	if !b.anyOf(&errs, "name", "target_amount") {
		return params, errs
	}

	if v, ok := b["name"]; ok {
		name, msg := parseName(v, "name", maxGoalName, goalNamePattern)
		errs.add(msg)
		params.Name = &name
	}

	if v, ok := b["target_amount"]; ok {
		val := amountField(v, "target_amount", MaxGoalTarget, &errs)
		params.TargetAmount = &val
	}

	return params, errs
}

func ValidateUpdateGoal(b Body) Result {
	_, errs := parseUpdateGoal(b)
	return newResult(errs)
}

func SanitizeUpdateGoal(b Body) (goal.UpdateParams, bool) {
	params, errs := parseUpdateGoal(b)
	return params, len(errs) == 0
}

func parseCreateContribution(b Body) (goal.ContributionParams, problems) {
	var (
		params goal.ContributionParams
		errs   problems
	)

	if v, ok := b.required("amount", &errs); ok {
		params.Amount = amountField(v, "amount", MaxContributionAmount, &errs)
	}

	if v, ok := b.required("date", &errs); ok {
		params.Date = dateField(v, "date", false, &errs)
	}

	params.Description = textField(b["description"], "description", maxContributionDescription, &errs)

	return params, errs
}

func ValidateCreateContribution(b Body) Result {
	_, errs := parseCreateContribution(b)
	return newResult(errs)
}

func SanitizeCreateContribution(b Body) (goal.ContributionParams, bool) {
	params, errs := parseCreateContribution(b)
	return params, len(errs) == 0
}
