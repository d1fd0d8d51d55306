package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, ":9090", cfg.HTTP.MetricsAddr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 10*time.Minute, cfg.Engine.ReportCacheTTL)
	assert.Equal(t, 4, cfg.Engine.PortfolioWorkers)
	assert.False(t, cfg.Engine.ApproximateDebtSplit)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":18080")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/hotels")
	t.Setenv("REPORT_CACHE_TTL", "90s")
	t.Setenv("PORTFOLIO_WORKERS", "8")
	t.Setenv("APPROXIMATE_DEBT_SPLIT", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":18080", cfg.HTTP.Addr)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "postgres://u:p@localhost:5432/hotels", cfg.Postgres.URL)
	assert.Equal(t, 90*time.Second, cfg.Engine.ReportCacheTTL)
	assert.Equal(t, 8, cfg.Engine.PortfolioWorkers)
	assert.True(t, cfg.Engine.ApproximateDebtSplit)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("PORTFOLIO_WORKERS", "0")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("PORTFOLIO_WORKERS", "many")
	_, err = Load()
	assert.Error(t, err)
}
