package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/skarbonka/internal/apperr"
	"github.com/MrJamesThe3rd/skarbonka/internal/listing"
)

// Expense is money spent on a given day within one of the user's categories.
type Expense struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	CategoryID   uuid.UUID
	CategoryName string // Loaded via JOIN
	Amount       decimal.Decimal
	Date         time.Time
	Description  string
	CreatedAt    time.Time
}

type SortField string

const (
	SortByDate      SortField = "date"
	SortByAmount    SortField = "amount"
	SortByCreatedAt SortField = "created_at"
)

var SortFields = []SortField{SortByDate, SortByAmount, SortByCreatedAt}

var DefaultSort = listing.Sort[SortField]{Field: SortByDate, Direction: listing.Desc}

type ListQuery struct {
	Page       listing.PageRequest
	Sort       listing.Sort[SortField]
	Month      *listing.Month
	CategoryID *uuid.UUID
}

var (
	ErrNotFound         = apperr.NotFound("expense not found")
	ErrCategoryNotFound = apperr.NotFound("category not found")
)
