// Package underwriting runs the full projection chain for a deal and
// assembles the report consumed by the API and the CLI.
package underwriting

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"hotel_underwriting/pkg/core/calc"
	"hotel_underwriting/pkg/core/cashflow"
	"hotel_underwriting/pkg/core/debt"
	"hotel_underwriting/pkg/core/logger"
	"hotel_underwriting/pkg/core/projection"
	"hotel_underwriting/pkg/core/staffing"
	"hotel_underwriting/pkg/core/valuation"
	"hotel_underwriting/pkg/models"
)

// DebtTable is the amortization schedule with its annual roll-up.
type DebtTable struct {
	debt.Schedule
	Annual []debt.AnnualDebt `json:"annual"`
}

// Report is everything computed for one deal snapshot.
type Report struct {
	DealID      string    `json:"deal_id"`
	DealName    string    `json:"deal_name"`
	Currency    string    `json:"currency"`
	GeneratedAt time.Time `json:"generated_at"`
	Horizon     int       `json:"horizon"`

	Operating    projection.OperatingProjection `json:"operating"`
	Debt         DebtTable                      `json:"debt"`
	Cashflow     cashflow.Levered               `json:"cashflow"`
	Summary      valuation.Summary              `json:"summary"`
	Staffing     staffing.Report                `json:"staffing"`
	Verification calc.VerificationResult        `json:"verification"`
	Diagnostics  cashflow.Diagnostics           `json:"diagnostics"`
}

// Engine is safe for concurrent use: it holds only read-only configuration.
type Engine struct {
	log      *zap.Logger
	staffing staffing.Assumptions
	opts     cashflow.Options
	now      func() time.Time
}

// NewEngine builds an engine. A nil logger is replaced by a no-op one.
func NewEngine(log *zap.Logger, staffingAssumptions staffing.Assumptions, opts cashflow.Options) *Engine {
	return &Engine{
		log:      logger.OrNop(log).Named("underwriting"),
		staffing: staffingAssumptions,
		opts:     opts,
		now:      time.Now,
	}
}

// Staffing exposes the staffing assumptions the engine was built with.
func (e *Engine) Staffing() staffing.Assumptions {
	return e.staffing
}

// Run computes the report. Stages run in dependency order:
// ramp/projection -> debt -> cash flow -> returns -> staffing.
func (e *Engine) Run(deal *models.Deal) Report {
	log := e.log
	if deal != nil {
		log = log.With(zap.String("deal_id", deal.ID))
	}

	st := cashflow.Compute(deal, e.opts)
	log.Debug("cash flow computed",
		zap.Int("horizon", st.Levered.Unlevered.Years),
		zap.Bool("approximate_debt_split", e.opts.ApproximateDebtSplit))

	summary := valuation.Summarize(deal, st, nil)
	log.Debug("returns computed", zap.Int("through_year", summary.Irrs.ThroughYear))

	staffingYear := summary.StabilizationYear
	staff := staffing.BuildReport(deal, staffingYear, e.staffing, staffing.Overrides{})
	log.Debug("staffing computed", zap.Int("year", staffingYear), zap.Int("flags", len(staff.Flags)))

	r := Report{
		GeneratedAt: e.now().UTC(),
		Horizon:     st.Levered.Unlevered.Years,
		Operating:   st.Operating,
		Debt: DebtTable{
			Schedule: st.Levered.Schedule,
			Annual:   st.Levered.Schedule.Annual(st.Levered.Schedule.TermYears()),
		},
		Cashflow:     st.Levered,
		Summary:      summary,
		Staffing:     staff,
		Verification: st.Levered.Verify(),
		Diagnostics:  st.Levered.Diagnostics,
	}
	if deal != nil {
		r.DealID, r.DealName, r.Currency = deal.ID, deal.Name, deal.Currency
	}

	if !r.Verification.IsBalanced {
		log.Warn("cash flow verification failed", zap.Strings("warnings", r.Verification.Warnings))
	}
	log.Info("underwriting report ready",
		irrField("unlevered_irr", summary.Irrs.Unlevered),
		irrField("levered_irr", summary.Irrs.Levered),
		zap.Strings("missing", r.Diagnostics.Missing))
	return r
}

// RunAll evaluates deals concurrently with at most workers in flight and
// returns the reports in input order.
func (e *Engine) RunAll(ctx context.Context, deals []*models.Deal, workers int) ([]Report, error) {
	if workers < 1 {
		workers = 1
	}
	reports := make([]Report, len(deals))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, deal := range deals {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("portfolio run cancelled at deal %d: %w", i, err)
			}
			reports[i] = e.Run(deal)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.log.Info("portfolio evaluated", zap.Int("deals", len(deals)), zap.Int("workers", workers))
	return reports, nil
}

func irrField(key string, v *float64) zap.Field {
	if v == nil {
		return zap.String(key, "n/a")
	}
	return zap.Float64(key, *v)
}
