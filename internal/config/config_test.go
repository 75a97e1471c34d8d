package config_test

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/skarbonka/internal/config"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", secret)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "Skarbonka", cfg.App.Name)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 20, cfg.DB.MaxOpenConns)
	assert.Equal(t, 30*time.Minute, cfg.DB.ConnMaxLifetime)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
	assert.Equal(t, "postgres://postgres:@localhost:5432/skarbonka?sslmode=disable", cfg.ConnectionString())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", secret)
	t.Setenv("PORT", "9090")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "p@ss word")
	t.Setenv("DB_SSLMODE", "require")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
	assert.Equal(t, "postgres://app:p%40ss%20word@db:5432/skarbonka?sslmode=require", cfg.ConnectionString())
}

func TestLoad_Secret(t *testing.T) {
	type testCase struct {
		name    string
		secret  string
		wantErr string
	}

	tests := []testCase{
		{name: "Missing", secret: "", wantErr: "JWT_SECRET"},
		{name: "TooShort", secret: "short", wantErr: "at least 32 characters"},
		{name: "LongEnough", secret: strings.Repeat("x", 32)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", tt.secret)

			_, err := config.Load()
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}
