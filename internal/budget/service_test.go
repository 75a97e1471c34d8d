package budget_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/skarbonka/internal/budget"
	"github.com/MrJamesThe3rd/skarbonka/internal/listing"
)

func TestService_MonthlyBudget(t *testing.T) {
	userID := uuid.New()
	feb := listing.Month{Year: 2024, Month: time.February}
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name      string
		setupMock func(m *budget.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().IncomeTotal(gomock.Any(), userID, start, end).Return(d("1000"), nil)
				m.EXPECT().ExpensesByCategory(gomock.Any(), userID, start, end).Return([]budget.CategorySum{
					{CategoryName: "Food", Amount: d("300")},
					{CategoryName: "Transport", Amount: d("200")},
				}, nil)
			},
		},
		{
			name: "IncomeQueryFails",
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().IncomeTotal(gomock.Any(), userID, start, end).Return(decimal.Zero, errors.New("db error"))
				m.EXPECT().ExpensesByCategory(gomock.Any(), userID, start, end).Return(nil, nil).AnyTimes()
			},
			wantErr: true,
		},
		{
			name: "ExpenseQueryFails",
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().IncomeTotal(gomock.Any(), userID, start, end).Return(d("1"), nil).AnyTimes()
				m.EXPECT().ExpensesByCategory(gomock.Any(), userID, start, end).Return(nil, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := budget.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := budget.NewService(repo).MonthlyBudget(context.Background(), userID, feb)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.True(t, d("500").Equal(got.Remaining))
			require.Len(t, got.CategoryBreakdown, 2)
			assert.Equal(t, "Food", got.CategoryBreakdown[0].CategoryName)
		})
	}
}
