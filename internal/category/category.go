package category

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/skarbonka/internal/apperr"
	"github.com/MrJamesThe3rd/skarbonka/internal/listing"
)

// Category groups expenses. Default categories are provisioned per user and
// cannot be deleted.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SortField is a column categories can be listed by.
type SortField string

const (
	SortByName      SortField = "name"
	SortByCreatedAt SortField = "created_at"
)

// SortFields is the allow-list, in the order it is reported to callers.
var SortFields = []SortField{SortByName, SortByCreatedAt}

var DefaultSort = listing.Sort[SortField]{Field: SortByCreatedAt, Direction: listing.Desc}

type ListQuery struct {
	Page listing.PageRequest
	Sort listing.Sort[SortField]
}

var (
	ErrNotFound        = apperr.NotFound("category not found")
	ErrDuplicateName   = apperr.Conflict("category with this name already exists")
	ErrDefaultCategory = apperr.Conflict("default categories cannot be deleted")
	ErrInUse           = apperr.Conflict("category has expenses and cannot be deleted")
)
