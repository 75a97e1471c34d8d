// Package listing holds the paging and sorting primitives shared by every
// list endpoint.
package listing

import "time"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Sort is a validated sort specification over a closed set of fields F.
type Sort[F ~string] struct {
	Field     F
	Direction Direction
}

func (s Sort[F]) String() string {
	return string(s.Field) + " " + string(s.Direction)
}

// PageRequest is a validated page/limit pair.
type PageRequest struct {
	Page  int
	Limit int
}

// DefaultPageRequest returns page 1 with the default limit.
func DefaultPageRequest() PageRequest {
	return PageRequest{Page: DefaultPage, Limit: DefaultLimit}
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination describes the page that was returned.
type Pagination struct {
	Page  int
	Limit int
	Total int
}

// Page is one page of rows plus its pagination metadata.
type Page[T any] struct {
	Data       []T
	Pagination Pagination
}

// NewPage wraps rows fetched for req, with total counted separately.
func NewPage[T any](data []T, req PageRequest, total int) Page[T] {
	if data == nil {
		data = []T{}
	}

	return Page[T]{
		Data: data,
		Pagination: Pagination{
			Page:  req.Page,
			Limit: req.Limit,
			Total: total,
		},
	}
}

// Month is a calendar month used as a date-range filter.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses a YYYY-MM string. Range checks are the caller's job.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, err
	}

	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// Range returns the first and the last calendar day of the month.
func (m Month) Range() (time.Time, time.Time) {
	start := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	return start, end
}

func (m Month) String() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}
