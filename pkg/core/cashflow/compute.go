package cashflow

import (
	"hotel_underwriting/pkg/core/calc"
	"hotel_underwriting/pkg/core/debt"
	"hotel_underwriting/pkg/core/projection"
	"hotel_underwriting/pkg/models"
)

// ComputeUnleveredCashflowByYear returns the property-level statement with
// the exact interest split.
func ComputeUnleveredCashflowByYear(deal *models.Deal) Unlevered {
	return Compute(deal, Options{}).Levered.Unlevered
}

// ComputeLeveredCashflowByYear returns the levered statement with the exact
// interest split.
func ComputeLeveredCashflowByYear(deal *models.Deal) Levered {
	return Compute(deal, Options{}).Levered
}

// Compute runs projection, debt schedule and exit in dependency order and
// assembles both statements.
//
// A deal without a budget yields all-zero statements. A deal without
// financing yields zero debt legs, so levered equals unlevered. Both cases
// are listed in Diagnostics.Missing.
func Compute(deal *models.Deal, opts Options) Statements {
	years := deal.Horizon()
	op := projection.Project(deal, years)

	missing := append([]string{}, op.Missing...)
	hasBudget := deal != nil && deal.Budget != nil
	if !hasBudget {
		missing = append(missing, MissingBudget)
	}
	fin := financing(deal)
	if fin == nil {
		missing = append(missing, MissingFinancing)
	}
	diag := Diagnostics{Missing: missing}

	lev := newLevered(years)
	lev.Diagnostics = diag
	lev.Unlevered.Diagnostics = diag
	lev.Unlevered.TerminalYear = deal.TerminalYear()
	lev.Unlevered.Exit.Strategy = models.ExitHoldForever

	out := Statements{Operating: op, Levered: lev, Options: opts}
	if !hasBudget {
		return out
	}

	u := &out.Levered.Unlevered
	l := &out.Levered

	u.ProjectCost = deal.ProjectCost()
	u.Capex[0] = -u.ProjectCost
	copy(u.EBITDA, op.EBITDA)

	var assumptions models.Assumptions
	if deal.Assumptions != nil {
		assumptions = *deal.Assumptions
	}
	u.Depreciation = calc.Pct(assumptions.Ramp.DepreciationPct) * u.ProjectCost

	ex := planExit(assumptions.Exit, years)
	if ex.Strategy == models.ExitRefinance && fin == nil {
		ex = Exit{Strategy: models.ExitHoldForever}
	}
	financingEnd := years
	if ex.Year > 0 {
		financingEnd = ex.Year
	}

	if fin != nil {
		sched := debt.BuildSchedule(fin, u.ProjectCost)
		l.Schedule = sched
		l.Equity = sched.Equity
		l.DebtDraw[0] = sched.LoanAmount
		bookDebtService(l, sched, financingEnd, opts)
		ex.DebtPayoff, ex.DebtPayoffYear = bookPayoff(l, sched, ex, years)
	} else {
		l.Equity = u.ProjectCost
	}

	taxRate := calc.Pct(assumptions.TaxRatePct)
	for y := 1; y <= years; y++ {
		taxable := u.EBITDA[y] - u.Depreciation + l.InterestExpense[y]
		if tax := calc.Finite(taxable * taxRate); tax > 0 {
			u.CashTaxes[y] = -tax
		}
	}

	switch ex.Strategy {
	case models.ExitSale:
		applySale(u, &ex, assumptions.Exit)
	case models.ExitRefinance:
		applyRefinance(l, &ex, assumptions.Exit)
	}
	u.Exit = ex

	for _, s := range []models.YearSeries{u.EBITDA, u.CashTaxes, u.Capex, u.NetSaleProceeds,
		l.DebtDraw, l.InterestExpense, l.PrincipalRepayment, l.DebtService} {
		calc.FiniteSeries(s)
	}
	for y := 0; y <= years; y++ {
		u.UnleveredCF[y] = u.EBITDA[y] + u.CashTaxes[y] + u.Capex[y] + u.NetSaleProceeds[y]
		l.LeveredCF[y] = u.UnleveredCF[y] + l.DebtDraw[y] + l.InterestExpense[y] + l.PrincipalRepayment[y]
	}
	return out
}

func financing(deal *models.Deal) *models.FinancingSettings {
	if deal == nil || deal.Assumptions == nil {
		return nil
	}
	return deal.Assumptions.Financing
}

func newLevered(years int) Levered {
	return Levered{
		Unlevered: Unlevered{
			Years:           years,
			EBITDA:          models.NewYearSeries(years),
			CashTaxes:       models.NewYearSeries(years),
			Capex:           models.NewYearSeries(years),
			NetSaleProceeds: models.NewYearSeries(years),
			UnleveredCF:     models.NewYearSeries(years),
		},
		DebtDraw:           models.NewYearSeries(years),
		InterestExpense:    models.NewYearSeries(years),
		PrincipalRepayment: models.NewYearSeries(years),
		LeveredCF:          models.NewYearSeries(years),
		DebtService:        models.NewYearSeries(years),
	}
}

// bookDebtService fills interest, principal and debt service for the
// financed years 1..financingEnd.
func bookDebtService(l *Levered, sched debt.Schedule, financingEnd int, opts Options) {
	if len(sched.Months) == 0 {
		return
	}
	annual := sched.Annual(financingEnd)
	term := sched.TermYears()
	for y := 1; y <= financingEnd && y <= term; y++ {
		var interest, principal, payment float64
		if opts.ApproximateDebtSplit {
			payment = sched.AnnualDebtService
			interest = payment * ApproxInterestShare
			principal = payment - interest
		} else {
			row := annual[y-1]
			payment, interest, principal = row.Payment, row.Interest, row.Principal
		}
		l.InterestExpense[y] = -interest
		l.PrincipalRepayment[y] = -principal
		l.DebtService[y] = payment
	}
}

// bookPayoff repays what is left of the loan at the exit, or the balloon at
// maturity when the loan matures first. Nothing is booked past the horizon.
func bookPayoff(l *Levered, sched debt.Schedule, ex Exit, years int) (float64, int) {
	if len(sched.Months) == 0 {
		return 0, 0
	}
	term := sched.TermYears()
	year := term
	if ex.Year > 0 && ex.Year < term {
		year = ex.Year
	}
	if year < 1 || year > years {
		return 0, 0
	}
	balance := sched.BalanceAfterYear(year)
	if balance <= debt.BalloonThreshold {
		return 0, 0
	}
	l.PrincipalRepayment[year] -= balance
	return balance, year
}
