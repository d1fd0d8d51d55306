// Package underwriting serves underwriting reports over HTTP.
package underwriting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"hotel_underwriting/pkg/core/calc"
	"hotel_underwriting/pkg/core/logger"
	"hotel_underwriting/pkg/core/staffing"
	"hotel_underwriting/pkg/core/store"
	engine "hotel_underwriting/pkg/core/underwriting"
	"hotel_underwriting/pkg/core/valuation"
	"hotel_underwriting/pkg/models"
)

const maxBodyBytes = 4 << 20

// Options tune the handler.
type Options struct {
	CacheTTL         time.Duration
	PortfolioWorkers int
	AllowedOrigin    string
}

// Handler holds dependencies for the underwriting endpoints.
type Handler struct {
	engine  *engine.Engine
	repo    store.DealRepository
	reports *cache.Cache
	log     *zap.Logger
	opts    Options
}

// NewHandler creates a handler. Reports of stored deals are cached for
// opts.CacheTTL, keyed by deal id and update time.
func NewHandler(e *engine.Engine, repo store.DealRepository, log *zap.Logger, opts Options) *Handler {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 10 * time.Minute
	}
	if opts.PortfolioWorkers < 1 {
		opts.PortfolioWorkers = 1
	}
	if opts.AllowedOrigin == "" {
		opts.AllowedOrigin = "*"
	}
	return &Handler{
		engine:  e,
		repo:    repo,
		reports: cache.New(opts.CacheTTL, 2*opts.CacheTTL),
		log:     logger.OrNop(log).Named("api"),
		opts:    opts,
	}
}

// RegisterRoutes mounts the API on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Use(h.cors)
	r.Route("/api", func(r chi.Router) {
		r.Route("/underwriting", func(r chi.Router) {
			r.Post("/report", h.handler(h.postReport))
			r.Post("/portfolio", h.handler(h.postPortfolio))
			r.Post("/irr", h.handler(h.postIRR))
		})
		r.Route("/deals", func(r chi.Router) {
			r.Post("/", h.handler(h.postDeal))
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.handler(h.getDeal))
				r.Delete("/", h.handler(h.deleteDeal))
				r.Get("/report", h.handler(h.getDealReport))
				r.Get("/debt-schedule", h.handler(h.getDebtSchedule))
				r.Get("/staffing", h.handler(h.getStaffing))
			})
		})
	})
}

type httpError struct {
	status int
	msg    string
}

func (e *httpError) Error() string { return e.msg }

func badRequest(msg string) error {
	return &httpError{status: http.StatusBadRequest, msg: msg}
}

func (h *Handler) handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			h.replyError(w, r, err)
		}
	}
}

func (h *Handler) replyError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"

	var he *httpError
	switch {
	case errors.As(err, &he):
		status, msg = he.status, he.msg
	case errors.Is(err, store.ErrDealNotFound):
		status, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, context.Canceled):
		status, msg = http.StatusServiceUnavailable, "request cancelled"
	}

	RequestErrors.WithLabelValues(strconv.Itoa(status)).Inc()
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	} else {
		h.log.Debug("request rejected", zap.String("path", r.URL.Path), zap.Int("status", status), zap.String("error", msg))
	}
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func readJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return badRequest(fmt.Sprintf("invalid JSON: %v", err))
	}
	return nil
}

func (h *Handler) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", h.opts.AllowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// POST /api/underwriting/report computes a report for the posted deal
// without storing it.
func (h *Handler) postReport(w http.ResponseWriter, r *http.Request) error {
	var deal models.Deal
	if err := readJSON(w, r, &deal); err != nil {
		return err
	}
	if err := checkDeal(&deal); err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, h.run(&deal, "adhoc"))
	ReportsComputed.WithLabelValues("adhoc", "none").Inc()
	return nil
}

func (h *Handler) postPortfolio(w http.ResponseWriter, r *http.Request) error {
	var req portfolioRequest
	if err := readJSON(w, r, &req); err != nil {
		return err
	}
	if err := validate.Struct(req); err != nil {
		return validationError(err)
	}
	for i, d := range req.Deals {
		if err := checkDeal(d); err != nil {
			return badRequest(fmt.Sprintf("deals[%d]: %v", i, err))
		}
	}

	timer := prometheus.NewTimer(ReportDuration.WithLabelValues("portfolio"))
	reports, err := h.engine.RunAll(r.Context(), req.Deals, h.opts.PortfolioWorkers)
	timer.ObserveDuration()
	if err != nil {
		return err
	}
	ReportsComputed.WithLabelValues("portfolio", "none").Add(float64(len(reports)))
	writeJSON(w, http.StatusOK, map[string]any{"reports": reports})
	return nil
}

func (h *Handler) postIRR(w http.ResponseWriter, r *http.Request) error {
	var req irrRequest
	if err := readJSON(w, r, &req); err != nil {
		return err
	}
	if err := validate.Struct(req); err != nil {
		return validationError(err)
	}

	resp := irrResponse{IRR: valuation.Rate(valuation.IRR(req.Flows))}
	if req.DiscountRatePct != nil {
		dcf := valuation.CalculateDCF(req.Flows, calc.Pct(*req.DiscountRatePct))
		resp.DCF = &dcf
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}

func (h *Handler) postDeal(w http.ResponseWriter, r *http.Request) error {
	var deal models.Deal
	if err := readJSON(w, r, &deal); err != nil {
		return err
	}
	if err := checkDeal(&deal); err != nil {
		return err
	}
	saved, err := h.repo.Save(r.Context(), &deal)
	if err != nil {
		return err
	}
	h.log.Info("deal saved", zap.String("deal_id", saved.ID), zap.String("name", saved.Name))
	writeJSON(w, http.StatusCreated, saved)
	return nil
}

func (h *Handler) getDeal(w http.ResponseWriter, r *http.Request) error {
	deal, err := h.repo.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, deal)
	return nil
}

func (h *Handler) deleteDeal(w http.ResponseWriter, r *http.Request) error {
	if err := h.repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (h *Handler) getDealReport(w http.ResponseWriter, r *http.Request) error {
	_, report, err := h.storedReport(r)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, report)
	return nil
}

func (h *Handler) getDebtSchedule(w http.ResponseWriter, r *http.Request) error {
	_, report, err := h.storedReport(r)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, report.Debt)
	return nil
}

// GET /api/deals/{id}/staffing defaults to the stabilization year of the
// deal's report.
func (h *Handler) getStaffing(w http.ResponseWriter, r *http.Request) error {
	deal, report, err := h.storedReport(r)
	if err != nil {
		return err
	}
	year, overrides, err := staffingQuery(r.URL.Query(), report.Summary.StabilizationYear)
	if err != nil {
		return err
	}
	if year == report.Staffing.Year && overrides.CoversPerDay == nil &&
		overrides.RoomsSoldPerDay == nil && overrides.TreatmentsPerDay == nil {
		writeJSON(w, http.StatusOK, report.Staffing)
		return nil
	}
	writeJSON(w, http.StatusOK, staffing.BuildReport(deal, year, h.engine.Staffing(), overrides))
	return nil
}

// storedReport loads the deal named in the path and returns its report,
// computing it on a cache miss.
func (h *Handler) storedReport(r *http.Request) (*models.Deal, engine.Report, error) {
	deal, err := h.repo.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return nil, engine.Report{}, err
	}

	key := reportKey(deal)
	if cached, ok := h.reports.Get(key); ok {
		ReportsComputed.WithLabelValues("stored", "hit").Inc()
		return deal, cached.(engine.Report), nil
	}

	report := h.run(deal, "stored")
	h.reports.Set(key, report, cache.DefaultExpiration)
	ReportsComputed.WithLabelValues("stored", "miss").Inc()
	return deal, report, nil
}

func (h *Handler) run(deal *models.Deal, source string) engine.Report {
	timer := prometheus.NewTimer(ReportDuration.WithLabelValues(source))
	defer timer.ObserveDuration()
	return h.engine.Run(deal)
}

func reportKey(d *models.Deal) string {
	return d.ID + "@" + strconv.FormatInt(d.UpdatedAt.UnixNano(), 10)
}
