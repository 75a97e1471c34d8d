package report_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/skarbonka/internal/goal"
	"github.com/MrJamesThe3rd/skarbonka/internal/http/auth"
	reporthttp "github.com/MrJamesThe3rd/skarbonka/internal/http/report"
	"github.com/MrJamesThe3rd/skarbonka/internal/report"
)

func newServer(repo *report.MockRepository, contributions *report.MockContributionSource, userID uuid.UUID) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(auth.WithUserID(req.Context(), userID)))
		})
	})

	reporthttp.NewHandler(report.NewService(repo, contributions)).Routes(r)

	return r
}

func marchItems() []report.LineItem {
	return []report.LineItem{
		{Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), Amount: decimal.RequireFromString("20.5"), Category: "Transport"},
		{Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Amount: decimal.RequireFromString("100"), Category: "Jedzenie"},
		{Date: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), Amount: decimal.RequireFromString("4.5"), Category: "Transport"},
	}
}

func TestHandler_Monthly(t *testing.T) {
	userID := uuid.New()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name       string
		path       string
		setupMock  func(m *report.MockRepository)
		wantStatus int
		wantBody   string
	}

	tests := []testCase{
		{
			name: "Success",
			path: "/monthly/2024-03",
			setupMock: func(m *report.MockRepository) {
				m.EXPECT().MonthlyExpenses(gomock.Any(), userID, start, end).Return(marchItems(), nil)
			},
			wantStatus: http.StatusOK,
			wantBody: `{"month":"2024-03","expenses":[` +
				`{"date":"2024-03-02","amount":20.50,"category":"Transport"},` +
				`{"date":"2024-03-05","amount":100.00,"category":"Jedzenie"},` +
				`{"date":"2024-03-09","amount":4.50,"category":"Transport"}],` +
				`"category_totals":[{"category":"Jedzenie","total":100.00},{"category":"Transport","total":25.00}],` +
				`"total":125.00}`,
		},
		{
			name: "EmptyMonth",
			path: "/monthly/2024-03",
			setupMock: func(m *report.MockRepository) {
				m.EXPECT().MonthlyExpenses(gomock.Any(), userID, start, end).Return(nil, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"month":"2024-03","expenses":[],"category_totals":[],"total":0.00}`,
		},
		{
			name:       "BadMonth",
			path:       "/monthly/2024-13",
			setupMock:  func(_ *report.MockRepository) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"month must be in YYYY-MM format"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := report.NewMockRepository(ctrl)
			tt.setupMock(repo)

			rec := httptest.NewRecorder()
			newServer(repo, report.NewMockContributionSource(ctrl), userID).
				ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestHandler_ExportMonthly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	repo := report.NewMockRepository(ctrl)
	repo.EXPECT().MonthlyExpenses(gomock.Any(), userID, gomock.Any(), gomock.Any()).Return(marchItems(), nil)

	rec := httptest.NewRecorder()
	newServer(repo, report.NewMockContributionSource(ctrl), userID).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/monthly/2024-03/export", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="report_2024-03.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "date,category,amount\n"+
		"2024-03-02,Transport,20.50\n"+
		"2024-03-05,Jedzenie,100.00\n"+
		"2024-03-09,Transport,4.50\n"+
		"\n"+
		"category,total\n"+
		"Jedzenie,100.00\n"+
		"Transport,25.00\n"+
		"TOTAL,125.00\n", rec.Body.String())
}

func TestHandler_Goals(t *testing.T) {
	userID := uuid.New()
	reachedID := uuid.New()
	openID := uuid.New()

	goals := []*goal.Goal{
		{
			ID: reachedID, UserID: userID, Name: "Rower",
			TargetAmount: decimal.RequireFromString("1000"), CurrentAmount: decimal.RequireFromString("1200"),
		},
		{
			ID: openID, UserID: userID, Name: "Wakacje",
			TargetAmount: decimal.RequireFromString("4000"), CurrentAmount: decimal.RequireFromString("1000"),
		},
	}

	wantGoals := `{"goals":[` +
		`{"id":"` + reachedID.String() + `","name":"Rower","target_amount":1000.00,"current_amount":1200.00,` +
		`"progress_percentage":120.00,"remaining_amount":0.00},` +
		`{"id":"` + openID.String() + `","name":"Wakacje","target_amount":4000.00,"current_amount":1000.00,` +
		`"progress_percentage":25.00,"remaining_amount":3000.00}]}`

	type testCase struct {
		name      string
		target    string
		setupMock func(m *report.MockRepository, c *report.MockContributionSource)
		wantBody  string
	}

	tests := []testCase{
		{
			name:   "WithoutPredictions",
			target: "/goals",
			setupMock: func(m *report.MockRepository, _ *report.MockContributionSource) {
				m.EXPECT().Goals(gomock.Any(), userID).Return(goals, nil)
			},
			wantBody: wantGoals,
		},
		{
			name:   "PredictionsWithoutHistory",
			target: "/goals?include_predictions=true",
			setupMock: func(m *report.MockRepository, c *report.MockContributionSource) {
				m.EXPECT().Goals(gomock.Any(), userID).Return(goals, nil)
				c.EXPECT().Contributions(gomock.Any(), openID, userID).Return(nil, nil)
			},
			wantBody: wantGoals,
		},
		{
			name:   "NoGoals",
			target: "/goals",
			setupMock: func(m *report.MockRepository, _ *report.MockContributionSource) {
				m.EXPECT().Goals(gomock.Any(), userID).Return(nil, nil)
			},
			wantBody: `{"goals":[]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := report.NewMockRepository(ctrl)
			contributions := report.NewMockContributionSource(ctrl)
			tt.setupMock(repo, contributions)

			rec := httptest.NewRecorder()
			newServer(repo, contributions, userID).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
