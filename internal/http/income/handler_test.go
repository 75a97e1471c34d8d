package income_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/skarbonka/internal/http/auth"
	incomehttp "github.com/MrJamesThe3rd/skarbonka/internal/http/income"
	"github.com/MrJamesThe3rd/skarbonka/internal/income"
)

func newServer(repo income.Repository, userID uuid.UUID) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(auth.WithUserID(req.Context(), userID)))
		})
	})

	incomehttp.NewHandler(income.NewService(repo)).Routes(r)

	return r
}

func TestHandler_Create_AllowsFutureDates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	repo := income.NewMockRepository(ctrl)
	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inc *income.Income) error {
			assert.Equal(t, time.Date(2999, 1, 10, 0, 0, 0, 0, time.UTC), inc.Date)
			assert.Equal(t, "Pracodawca", inc.Source)
			inc.ID = uuid.New()

			return nil
		})

	req := httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"amount":8500,"date":"2999-01-10","source":"Pracodawca"}`))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	newServer(repo, userID).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestHandler_Update(t *testing.T) {
	userID := uuid.New()
	id := uuid.New()

	type testCase struct {
		name       string
		body       string
		setupMock  func(m *income.MockRepository)
		wantStatus int
		wantMsg    string
	}

	tests := []testCase{
		{
			name:       "NoFields",
			body:       `{}`,
			setupMock:  func(_ *income.MockRepository) {},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "at least one field must be provided",
		},
		{
			name: "OtherUsersIncome",
			body: `{"source":"Premia"}`,
			setupMock: func(m *income.MockRepository) {
				m.EXPECT().BelongsToUser(gomock.Any(), id, userID).Return(false, nil)
			},
			wantStatus: http.StatusNotFound,
			wantMsg:    income.ErrNotFound.Message,
		},
		{
			name: "Updated",
			body: `{"source":"Premia"}`,
			setupMock: func(m *income.MockRepository) {
				m.EXPECT().BelongsToUser(gomock.Any(), id, userID).Return(true, nil)
				m.EXPECT().Get(gomock.Any(), id, userID).Return(&income.Income{ID: id, UserID: userID}, nil)
				m.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := income.NewMockRepository(ctrl)
			tt.setupMock(repo)

			req := httptest.NewRequest(http.MethodPatch, "/"+id.String(), strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			rec := httptest.NewRecorder()
			newServer(repo, userID).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantMsg != "" {
				assert.JSONEq(t, `{"message":"`+tt.wantMsg+`"}`, rec.Body.String())
			}
		})
	}
}
