package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/skarbonka/internal/http/auth"
)

var secret = []byte("test-secret")

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.RegisteredClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)

	return token
}

func TestMiddleware(t *testing.T) {
	userID := uuid.New()
	valid := jwt.RegisteredClaims{
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	type testCase struct {
		name       string
		header     string
		wantStatus int
	}

	tests := []testCase{
		{name: "Valid", header: "Bearer " + sign(t, jwt.SigningMethodHS256, secret, valid), wantStatus: http.StatusOK},
		{name: "LowercaseScheme", header: "bearer " + sign(t, jwt.SigningMethodHS256, secret, valid), wantStatus: http.StatusOK},
		{name: "Missing", header: "", wantStatus: http.StatusUnauthorized},
		{name: "WrongScheme", header: "Basic dXNlcjpwYXNz", wantStatus: http.StatusUnauthorized},
		{
			name:       "WrongSecret",
			header:     "Bearer " + sign(t, jwt.SigningMethodHS256, []byte("other"), valid),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "WrongAlgorithm",
			header:     "Bearer " + sign(t, jwt.SigningMethodHS512, secret, valid),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "Expired",
			header: "Bearer " + sign(t, jwt.SigningMethodHS256, secret, jwt.RegisteredClaims{
				Subject:   userID.String(),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "NoExpiry",
			header:     "Bearer " + sign(t, jwt.SigningMethodHS256, secret, jwt.RegisteredClaims{Subject: userID.String()}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "SubjectNotUUID",
			header: "Bearer " + sign(t, jwt.SigningMethodHS256, secret, jwt.RegisteredClaims{
				Subject:   "42",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			}),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen uuid.UUID

			h := auth.Middleware(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = auth.UserID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, userID, seen)
			} else {
				assert.Equal(t, uuid.Nil, seen)
				assert.Contains(t, rec.Body.String(), "message")
			}
		})
	}
}
