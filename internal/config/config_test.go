package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/inventory-insights/internal/stock"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, "gemini-3-pro-preview", cfg.Insights.AnalysisModel)
	assert.Equal(t, "gemini-2.5-flash-image", cfg.Insights.ImageModel)
	assert.Equal(t, 45*time.Second, cfg.Insights.Timeout)
	assert.Equal(t, stock.DefaultScoring, cfg.Insights.Scoring)
	assert.Equal(t, "admin", cfg.Auth.AdminUsername)
	assert.Equal(t, 100, cfg.Cache.NotificationMax)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("OFFLINE_MODE", "true")
	t.Setenv("OPTIMIZATION_SCORE_MODE", "Derived")
	t.Setenv("INSIGHT_TIMEOUT_SECONDS", "5")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("SEED_SALES", "99")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.Insights.Offline)
	assert.Equal(t, stock.ScoreDerived, cfg.Insights.Scoring.Mode)
	assert.Equal(t, 5*time.Second, cfg.Insights.Timeout)
	assert.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
	assert.EqualValues(t, 99, cfg.App.SeedSales)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{"JWT_SECRET": ""}},
		{"unknown score mode", map[string]string{"JWT_SECRET": "s", "OPTIMIZATION_SCORE_MODE": "magic"}},
		{"zero rate", map[string]string{"JWT_SECRET": "s", "RATE_LIMIT_RPS": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
