package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/skarbonka/internal/expense"
	"github.com/MrJamesThe3rd/skarbonka/internal/listing"
)

func TestFilter(t *testing.T) {
	userID := uuid.New()
	categoryID := uuid.New()
	month := listing.Month{Year: 2024, Month: time.February}

	type testCase struct {
		name      string
		query     expense.ListQuery
		wantWhere string
		wantArgs  []any
	}

	tests := []testCase{
		{
			name:      "OwnerOnly",
			query:     expense.ListQuery{},
			wantWhere: " WHERE e.user_id = $1",
			wantArgs:  []any{userID},
		},
		{
			name:      "Month",
			query:     expense.ListQuery{Month: &month},
			wantWhere: " WHERE e.user_id = $1 AND e.date >= $2 AND e.date <= $3",
			wantArgs: []any{
				userID,
				time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:      "MonthAndCategory",
			query:     expense.ListQuery{Month: &month, CategoryID: &categoryID},
			wantWhere: " WHERE e.user_id = $1 AND e.date >= $2 AND e.date <= $3 AND e.category_id = $4",
			wantArgs: []any{
				userID,
				time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
				categoryID,
			},
		},
		{
			name:      "CategoryOnly",
			query:     expense.ListQuery{CategoryID: &categoryID},
			wantWhere: " WHERE e.user_id = $1 AND e.category_id = $2",
			wantArgs:  []any{userID, categoryID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := filter(userID, tt.query)
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestOrderBy(t *testing.T) {
	assert.Equal(t, " ORDER BY e.date DESC, e.id DESC", orderBy(expense.DefaultSort))
	assert.Equal(t, " ORDER BY e.amount ASC, e.id ASC",
		orderBy(listing.Sort[expense.SortField]{Field: expense.SortByAmount, Direction: listing.Asc}))
	assert.Equal(t, " ORDER BY e.created_at DESC, e.id DESC",
		orderBy(listing.Sort[expense.SortField]{Field: expense.SortByCreatedAt, Direction: listing.Desc}))
}
