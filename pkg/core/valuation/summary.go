package valuation

import (
	"math"

	"hotel_underwriting/pkg/core/calc"
	"hotel_underwriting/pkg/core/cashflow"
	"hotel_underwriting/pkg/models"
)

// Summary is the scalar KPI block of an underwriting report. Rates, ratios
// and yields are decimal fractions.
type Summary struct {
	Irrs ProjectIrrs `json:"irrs"`

	UnleveredMultiple float64 `json:"unlevered_multiple"`
	LeveredMultiple   float64 `json:"levered_multiple"`
	UnleveredProfit   float64 `json:"unlevered_profit"`
	LeveredProfit     float64 `json:"levered_profit"`
	PeakEquity        float64 `json:"peak_equity"`

	DSCR              models.YearSeries `json:"dscr"`
	MinDSCR           *float64          `json:"min_dscr"`
	StabilizationYear int               `json:"stabilization_year"`
	StabilizedDSCR    float64           `json:"stabilized_dscr"`
	YieldOnCost       float64           `json:"yield_on_cost"`
	CashOnCash        float64           `json:"cash_on_cash"`
	// RevenueCAGR runs from year 1 to the last summarized year.
	RevenueCAGR float64 `json:"revenue_cagr"`

	DCF          *DCFResult          `json:"dcf,omitempty"`
	AbilityToPay *AbilityToPayResult `json:"ability_to_pay,omitempty"`
}

// Summarize derives the KPIs from computed statements through a year index,
// or through the terminal year when throughYear is nil.
func Summarize(deal *models.Deal, st cashflow.Statements, throughYear *int) Summary {
	l := st.Levered
	u := l.Unlevered

	through := u.TerminalYear
	if throughYear != nil {
		through = *throughYear
	}
	irrs := IrrsFor(l, through)
	through = irrs.ThroughYear

	unlevered := u.UnleveredCF.Truncate(through)
	levered := l.LeveredCF.Truncate(through)

	s := Summary{
		Irrs:              irrs,
		UnleveredMultiple: EquityMultiple(unlevered),
		LeveredMultiple:   EquityMultiple(levered),
		UnleveredProfit:   unlevered.Sum(-1),
		LeveredProfit:     levered.Sum(-1),
		PeakEquity:        PeakEquity(levered),
		DSCR:              DSCRSeries(u.EBITDA, l.DebtService),
		StabilizationYear: st.Operating.Multipliers.StabilizationYear(),
	}

	minDSCR := math.Inf(1)
	for y := 1; y <= through && y < len(s.DSCR); y++ {
		if l.DebtService[y] > 0 && s.DSCR[y] < minDSCR {
			minDSCR = s.DSCR[y]
		}
	}
	if !math.IsInf(minDSCR, 1) {
		s.MinDSCR = &minDSCR
	}

	stab := s.StabilizationYear
	s.StabilizedDSCR = s.DSCR.Get(stab)
	s.YieldOnCost = calc.SafeDivide(u.EBITDA.Get(stab), u.ProjectCost)
	s.CashOnCash = calc.SafeDivide(u.EBITDA.Get(stab)+u.CashTaxes.Get(stab)-l.DebtService.Get(stab), l.Equity)
	rev := st.Operating.TotalRevenue
	s.RevenueCAGR = calc.CAGR(rev.Get(through), rev.Get(1), through-1)

	if deal != nil && deal.Assumptions != nil {
		if r := deal.Assumptions.DiscountRatePct; r > 0 {
			dcf := CalculateDCF(levered, calc.Pct(r))
			s.DCF = &dcf
		}
		if r := deal.Assumptions.TargetLeveredIRRPct; r > 0 {
			atp := CalculateAbilityToPay(levered, calc.Pct(r))
			s.AbilityToPay = &atp
		}
	}
	return s
}

// EquityMultiple is total inflows over total outflows, 0 without outflows.
func EquityMultiple(flows []float64) float64 {
	var in, out float64
	for _, f := range flows {
		if f > 0 {
			in += f
		} else {
			out -= f
		}
	}
	return calc.SafeDivide(in, out)
}

// PeakEquity is the deepest cumulative cash position, as a positive amount.
func PeakEquity(flows []float64) float64 {
	cumulative, peak := 0.0, 0.0
	for _, f := range flows {
		cumulative += f
		if -cumulative > peak {
			peak = -cumulative
		}
	}
	return peak
}

// DSCRSeries is NOI over scheduled debt service per year, 0 where no debt
// service is due.
func DSCRSeries(noi, debtService models.YearSeries) models.YearSeries {
	out := models.NewYearSeries(len(noi) - 1)
	for y := 1; y < len(noi); y++ {
		out[y] = calc.SafeDivide(noi[y], debtService.Get(y))
	}
	return out
}
