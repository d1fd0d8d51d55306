package config

import (
	"encoding/json"
	"net/http"

	"hotel_underwriting/pkg/core/cashflow"
	"hotel_underwriting/pkg/core/staffing"
	"hotel_underwriting/pkg/core/underwriting"
)

type Response struct {
	ApproximateDebtSplit bool                 `json:"approximate_debt_split"`
	PortfolioWorkers     int                  `json:"portfolio_workers"`
	ReportCacheTTL       string               `json:"report_cache_ttl"`
	Staffing             staffing.Assumptions `json:"staffing"`
}

// Handler serves the engine settings in effect
type Handler struct {
	Engine  *underwriting.Engine
	Options cashflow.Options
	Workers int
	TTL     string
}

// NewHandler creates a new config handler
func NewHandler(engine *underwriting.Engine, opts cashflow.Options, workers int, ttl string) *Handler {
	return &Handler{
		Engine:  engine,
		Options: opts,
		Workers: workers,
		TTL:     ttl,
	}
}

func (h *Handler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	resp := Response{
		ApproximateDebtSplit: h.Options.ApproximateDebtSplit,
		PortfolioWorkers:     h.Workers,
		ReportCacheTTL:       h.TTL,
		Staffing:             h.Engine.Staffing(),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
