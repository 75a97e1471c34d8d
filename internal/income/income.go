package income

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/skarbonka/internal/apperr"
	"github.com/MrJamesThe3rd/skarbonka/internal/listing"
)

// Income is money received on a given day.
type Income struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	Source      string
	CreatedAt   time.Time
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
	Page  listing.PageRequest
	Sort  listing.Sort[SortField]
	Month *listing.Month
}

var ErrNotFound = apperr.NotFound("income not found")
