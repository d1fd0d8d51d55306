// Package config loads process configuration from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTP     HTTP
	Log      Log
	Postgres Postgres
	Engine   Engine
}

type HTTP struct {
	Addr        string `env:"HTTP_ADDR" envDefault:":8080"`
	MetricsAddr string `env:"METRICS_ADDR" envDefault:":9090"`
	// AllowedOrigin is echoed in Access-Control-Allow-Origin.
	AllowedOrigin   string        `env:"CORS_ALLOWED_ORIGIN" envDefault:"*"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"console"`
}

// Postgres is optional: without a URL the API keeps deals in memory.
type Postgres struct {
	URL string `env:"DATABASE_URL"`
}

type Engine struct {
	StaffingAssumptionsFile string        `env:"STAFFING_ASSUMPTIONS_FILE"`
	ReportCacheTTL          time.Duration `env:"REPORT_CACHE_TTL" envDefault:"10m"`
	PortfolioWorkers        int           `env:"PORTFOLIO_WORKERS" envDefault:"4"`
	ApproximateDebtSplit    bool          `env:"APPROXIMATE_DEBT_SPLIT" envDefault:"false"`
}

// Load reads .env when present, then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}
	if config.Engine.PortfolioWorkers < 1 {
		return Config{}, fmt.Errorf("PORTFOLIO_WORKERS must be >= 1, got %d", config.Engine.PortfolioWorkers)
	}

	return config, nil
}
