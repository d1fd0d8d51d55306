package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"

	"hotel_underwriting/pkg/core/calc"
	"hotel_underwriting/pkg/core/cashflow"
	"hotel_underwriting/pkg/core/dealfile"
	"hotel_underwriting/pkg/core/logger"
	"hotel_underwriting/pkg/core/staffing"
	"hotel_underwriting/pkg/core/underwriting"
	"hotel_underwriting/pkg/models"
)

func main() {
	mode := flag.String("mode", "calculate", "Mode: calculate, check, schedule, staffing, portfolio or sample")
	dealPath := flag.String("deal", "", "Deal file (JSON, Hjson or YAML); comma-separated for portfolio")
	staffingPath := flag.String("staffing", "", "Optional staffing assumptions YAML")
	approx := flag.Bool("approx-debt-split", false, "Use the 80/20 interest/principal split")
	asJSON := flag.Bool("json", false, "Print the full report as JSON")
	workers := flag.Int("workers", 4, "Parallel deals in portfolio mode")
	logLevel := flag.String("log-level", "warn", "Log level")
	flag.Parse()

	log := logger.New(*logLevel, "console")
	defer func() { _ = log.Sync() }()

	if err := run(os.Stdout, log, options{
		mode:         *mode,
		dealPath:     *dealPath,
		staffingPath: *staffingPath,
		approx:       *approx,
		asJSON:       *asJSON,
		workers:      *workers,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	mode         string
	dealPath     string
	staffingPath string
	approx       bool
	asJSON       bool
	workers      int
}

func run(out io.Writer, log *zap.Logger, o options) error {
	if o.mode == "sample" {
		if o.dealPath == "" {
			return printJSON(out, models.SampleDeal())
		}
		return dealfile.Save(o.dealPath, models.SampleDeal())
	}
	if o.dealPath == "" {
		return fmt.Errorf("no deal file provided (-deal)")
	}

	assumptions := staffing.DefaultAssumptions()
	if o.staffingPath != "" {
		a, err := staffing.LoadAssumptions(o.staffingPath)
		if err != nil {
			return err
		}
		assumptions = a
	}
	engine := underwriting.NewEngine(log, assumptions, cashflow.Options{ApproximateDebtSplit: o.approx})

	if o.mode == "portfolio" {
		return runPortfolio(out, engine, o)
	}

	deal, format, err := dealfile.Load(o.dealPath)
	if err != nil {
		return err
	}
	log.Debug("deal loaded", zap.String("file", o.dealPath), zap.String("format", string(format)))

	report := engine.Run(deal)
	if o.asJSON {
		return printJSON(out, report)
	}

	switch o.mode {
	case "calculate":
		printProForma(out, report)
	case "check":
		return runChecks(out, report)
	case "schedule":
		printSchedule(out, report.Debt)
	case "staffing":
		printStaffing(out, report.Staffing)
	default:
		return fmt.Errorf("unknown mode: %s", o.mode)
	}
	return nil
}

func runPortfolio(out io.Writer, engine *underwriting.Engine, o options) error {
	var deals []*models.Deal
	for _, p := range strings.Split(o.dealPath, ",") {
		d, _, err := dealfile.Load(strings.TrimSpace(p))
		if err != nil {
			return err
		}
		deals = append(deals, d)
	}

	reports, err := engine.RunAll(context.Background(), deals, o.workers)
	if err != nil {
		return err
	}
	if o.asJSON {
		return printJSON(out, reports)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Deal\tExit\tUnlev IRR\tLev IRR\tLev x\tMin DSCR\t")
	for _, r := range reports {
		fmt.Fprintf(tw, "%s\t%s y%d\t%s\t%s\t%.2f\t%s\t\n",
			r.DealName,
			r.Cashflow.Unlevered.Exit.Strategy, r.Summary.Irrs.ThroughYear,
			pct(r.Summary.Irrs.Unlevered), pct(r.Summary.Irrs.Levered),
			r.Summary.LeveredMultiple, ratio(r.Summary.MinDSCR))
	}
	return tw.Flush()
}

func runChecks(out io.Writer, r underwriting.Report) error {
	if len(r.Diagnostics.Missing) > 0 {
		fmt.Fprintf(out, "Warning: missing inputs: %s\n", strings.Join(r.Diagnostics.Missing, ", "))
	}
	if r.Verification.IsBalanced {
		fmt.Fprintln(out, "Success: levered = unlevered + draw + interest + principal, year 0 clamped")
		return nil
	}
	for _, w := range r.Verification.Warnings {
		fmt.Fprintf(out, "Error: %s\n", w)
	}
	return fmt.Errorf("cash flow identity imbalance (max gap %f)", r.Verification.MaxGap)
}

func printProForma(out io.Writer, r underwriting.Report) {
	op, cf := r.Operating, r.Cashflow
	rows := []struct {
		label  string
		series models.YearSeries
	}{
		{"Rooms revenue", op.RoomsRevenue},
		{"F&B revenue", op.FnBRevenue},
		{"Other revenue", op.OtherRevenue},
		{"Total revenue", op.TotalRevenue},
		{"Payroll", op.Payroll},
		{"GOP", op.GOP},
		{"EBITDA", op.EBITDA},
		{"Cash taxes", cf.Unlevered.CashTaxes},
		{"Capex", cf.Unlevered.Capex},
		{"Net sale proceeds", cf.Unlevered.NetSaleProceeds},
		{"Unlevered CF", cf.Unlevered.UnleveredCF},
		{"Debt draw", cf.DebtDraw},
		{"Interest", cf.InterestExpense},
		{"Principal", cf.PrincipalRepayment},
		{"Levered CF", cf.LeveredCF},
	}

	fmt.Fprintf(out, "%s (%s)\n\n", r.DealName, r.Currency)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "\t")
	for y := 0; y <= r.Horizon; y++ {
		fmt.Fprintf(tw, "%s\t", models.YearKey(y))
	}
	fmt.Fprintln(tw)
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t", row.label)
		for y := 0; y <= r.Horizon; y++ {
			fmt.Fprintf(tw, "%.0f\t", row.series.Get(y))
		}
		fmt.Fprintln(tw)
	}
	_ = tw.Flush()

	s := r.Summary
	fmt.Fprintf(out, "\nIRR through y%d: unlevered %s, levered %s\n", s.Irrs.ThroughYear, pct(s.Irrs.Unlevered), pct(s.Irrs.Levered))
	fmt.Fprintf(out, "Equity multiple: unlevered %.2fx, levered %.2fx; peak equity %.0f\n", s.UnleveredMultiple, s.LeveredMultiple, s.PeakEquity)
	fmt.Fprintf(out, "Min DSCR %s; stabilized (y%d) DSCR %.2f, yield on cost %.2f%%, cash-on-cash %.2f%%\n",
		ratio(s.MinDSCR), s.StabilizationYear, s.StabilizedDSCR, s.YieldOnCost*100, s.CashOnCash*100)
	if len(r.Diagnostics.Missing) > 0 {
		fmt.Fprintf(out, "Missing inputs: %s\n", strings.Join(r.Diagnostics.Missing, ", "))
	}
}

func printSchedule(out io.Writer, d underwriting.DebtTable) {
	fmt.Fprintf(out, "Loan %.2f, equity %.2f, payment %.2f (IO %.2f)\n\n", d.LoanAmount, d.Equity, d.MonthlyPayment, d.MonthlyIOPayment)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Month\tPayment\tInterest\tPrincipal\tBalance\t")
	for _, m := range d.Months {
		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%.2f\t%.2f\t\n", m.Month, m.Payment, m.Interest, m.Principal, m.EndingBalance)
	}
	_ = tw.Flush()
	if d.HasBalloon {
		fmt.Fprintf(out, "\nBalloon at maturity: %.2f\n", d.BalloonPayment)
	}
}

func printStaffing(out io.Writer, s staffing.Report) {
	fmt.Fprintf(out, "Staffing, year %d\n\n", s.Year)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Department\tRole\tRequired\tProvided\tGap\tStatus\t")
	for _, l := range s.Lines {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.2f\t%+.2f\t%s\t\n", l.Department, l.Role, l.RequiredFTE, l.ProvidedFTE, l.GapFTE, l.Status)
	}
	fmt.Fprintf(tw, "Total\t\t%.2f\t%.2f\t%+.2f\t\t\n", s.TotalRequired, s.TotalProvided, s.TotalGap)
	_ = tw.Flush()
	for _, f := range s.Flags {
		fmt.Fprintf(out, "[%s] %s\n", f.Code, f.Message)
	}
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func pct(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", calc.Finite(*v)*100)
}

func ratio(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2fx", *v)
}
