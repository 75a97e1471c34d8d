// Package validation checks untrusted query strings and JSON bodies and turns
// them into typed service parameters.
//
// Every input has a Validate function reporting all problems at once and a
// Sanitize function producing the typed value. The two are deliberately not
// equivalent: for list queries Sanitize substitutes defaults for a bad page,
// limit or sort instead of failing.
package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/skarbonka/internal/listing"
)

const (
	MinYear = 2000
	MaxYear = 2100
)

var (
	MaxExpenseAmount      = decimal.NewFromInt(1_000_000)
	MaxIncomeAmount       = decimal.NewFromInt(1_000_000)
	MaxContributionAmount = decimal.NewFromInt(1_000_000)
	MaxGoalTarget         = decimal.NewFromInt(10_000_000)
)

var (
	categoryNamePattern = regexp.MustCompile(`^[a-zA-ZąćęłńóśźżĄĆĘŁŃÓŚŹŻ0-9 _-]+$`)
	goalNamePattern     = regexp.MustCompile(`^[a-zA-ZąćęłńóśźżĄĆĘŁŃÓŚŹŻ0-9 _\-.,!?()&'":/+]+$`)
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// now is the clock used for the no-future-dates rule.
var now = time.Now

// Result is the outcome of a Validate call.
type Result struct {
	IsValid bool
	Errors  []string
}

// Message joins the errors into a single line.
func (r Result) Message() string {
	return strings.Join(r.Errors, ", ")
}

func newResult(errs []string) Result {
	return Result{IsValid: len(errs) == 0, Errors: errs}
}

// problems collects error messages while a value is being parsed.
type problems []string

func (p *problems) add(msg string) {
	if msg != "" {
		*p = append(*p, msg)
	}
}

func (p *problems) addf(format string, args ...any) {
	*p = append(*p, fmt.Sprintf(format, args...))
}

// ValidateID checks a path identifier.
func ValidateID(raw string) Result {
	_, msg := parseID(raw, "id")

	var errs problems
	errs.add(msg)

	return newResult(errs)
}

// SanitizeID parses a path identifier.
func SanitizeID(raw string) (uuid.UUID, bool) {
	id, msg := parseID(raw, "id")
	return id, msg == ""
}

// parseID accepts a v4 UUID in canonical form, in either letter case.
func parseID(raw, label string) (uuid.UUID, string) {
	raw = strings.ToLower(raw)

	if err := validate.Var(raw, "required,uuid4"); err != nil {
		return uuid.Nil, label + " must be a valid UUID v4"
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, label + " must be a valid UUID v4"
	}

	return id, ""
}

func today() time.Time {
	n := now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

func parseDate(raw, label string, allowFuture bool) (time.Time, string) {
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, label + " must be a valid date in YYYY-MM-DD format"
	}

	if !allowFuture && t.After(today()) {
		return time.Time{}, label + " cannot be in the future"
	}

	return t, ""
}

func parseMonth(raw, label string) (listing.Month, string) {
	m, err := listing.ParseMonth(raw)
	if err != nil {
		return listing.Month{}, label + " must be in YYYY-MM format"
	}

	if m.Year < MinYear || m.Year > MaxYear {
		return listing.Month{}, fmt.Sprintf("%s year must be between %d and %d", label, MinYear, MaxYear)
	}

	return m, ""
}

func parseAmount(v any, label string, maxAmount decimal.Decimal) (decimal.Decimal, string) {
	var (
		d   decimal.Decimal
		err error
	)

	switch n := v.(type) {
	case json.Number:
		d, err = decimal.NewFromString(n.String())
	case float64:
		d = decimal.NewFromFloat(n)
	default:
		return decimal.Zero, label + " must be a number"
	}

	if err != nil {
		return decimal.Zero, label + " must be a number"
	}

	switch {
	case !d.IsPositive():
		return decimal.Zero, label + " must be greater than 0"
	case d.GreaterThan(maxAmount):
		return decimal.Zero, fmt.Sprintf("%s must not exceed %s", label, maxAmount.String())
	case !d.Equal(d.Round(2)):
		return decimal.Zero, label + " must have at most 2 decimal places"
	}

	return d, ""
}

func parseText(v any, label string, maxLen int) (string, string) {
	if v == nil {
		return "", ""
	}

	s, ok := v.(string)
	if !ok {
		return "", label + " must be a string"
	}

	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > maxLen {
		return "", fmt.Sprintf("%s must be at most %d characters", label, maxLen)
	}

	return s, ""
}

func parseName(v any, label string, maxLen int, pattern *regexp.Regexp) (string, string) {
	if v == nil {
		return "", label + " is required"
	}

	s, msg := parseText(v, label, maxLen)
	if msg != "" {
		return "", msg
	}

	if s == "" {
		return "", label + " is required"
	}

	if !pattern.MatchString(s) {
		return "", label + " contains invalid characters"
	}

	return s, ""
}

func parseSort[F ~string](raw string, allowed []F) (listing.Sort[F], string) {
	parts := strings.Fields(raw)
	if len(parts) == 0 || len(parts) > 2 {
		return listing.Sort[F]{}, fmt.Sprintf("Invalid sort format %q. Expected \"<field> [ASC|DESC]\"", raw)
	}

	field := F(strings.ToLower(parts[0]))
	if !slices.Contains(allowed, field) {
		names := make([]string, len(allowed))
		for i, f := range allowed {
			names[i] = string(f)
		}

		return listing.Sort[F]{}, fmt.Sprintf("Invalid sort field %q. Allowed fields: %s", parts[0], strings.Join(names, ", "))
	}

	dir := listing.Asc

	if len(parts) == 2 {
		switch strings.ToUpper(parts[1]) {
		case string(listing.Asc):
		case string(listing.Desc):
			dir = listing.Desc
		default:
			return listing.Sort[F]{}, fmt.Sprintf(
				"Invalid sort direction %q for %s. Allowed directions: ASC, DESC", parts[1], field,
			)
		}
	}

	return listing.Sort[F]{Field: field, Direction: dir}, ""
}

func parsePositiveInt(raw string, lo, hi int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < lo || n > hi {
		return 0, false
	}

	return n, true
}
