package goal

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/skarbonka/internal/apperr"
	"github.com/MrJamesThe3rd/skarbonka/internal/listing"
)

// Goal is a savings target. CurrentAmount only moves through contributions.
type Goal struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Contribution is a deposit towards a goal.
type Contribution struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	GoalID      uuid.UUID
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	CreatedAt   time.Time
}

type SortField string

const (
	SortByName          SortField = "name"
	SortByTargetAmount  SortField = "target_amount"
	SortByCurrentAmount SortField = "current_amount"
	SortByCreatedAt     SortField = "created_at"
)

var SortFields = []SortField{SortByName, SortByTargetAmount, SortByCurrentAmount, SortByCreatedAt}

var DefaultSort = listing.Sort[SortField]{Field: SortByCreatedAt, Direction: listing.Desc}

type ListQuery struct {
	Page listing.PageRequest
	Sort listing.Sort[SortField]
}

type ContributionSortField string

const (
	ContributionSortByAmount    ContributionSortField = "amount"
	ContributionSortByDate      ContributionSortField = "date"
	ContributionSortByCreatedAt ContributionSortField = "created_at"
)

var ContributionSortFields = []ContributionSortField{
	ContributionSortByAmount,
	ContributionSortByDate,
	ContributionSortByCreatedAt,
}

var DefaultContributionSort = listing.Sort[ContributionSortField]{
	Field:     ContributionSortByDate,
	Direction: listing.Desc,
}

type ContributionListQuery struct {
	GoalID uuid.UUID
	Page   listing.PageRequest
	Sort   listing.Sort[ContributionSortField]
}

var (
	ErrNotFound             = apperr.NotFound("goal not found")
	ErrContributionNotFound = apperr.NotFound("contribution not found")
	ErrDuplicateName        = apperr.Conflict("goal with this name already exists")
	ErrInvalidTarget        = apperr.Conflict("target amount must be greater than 0")
	ErrNegativeBalance      = apperr.Conflict("goal amount cannot drop below 0")
)
