// Package cashflow assembles the unlevered and levered cash-flow statements
// of a deal from the operating projection, the debt schedule and the exit.
//
// Sign convention: inflows are positive, outflows negative. Year 0 carries
// only the acquisition (CapEx outflow) and, on the levered side, the loan
// draw; every operating series is exactly 0 there.
//
// All series cover the full horizon. Financing stops at the exit: after a
// SALE or REFINANCE year, interest and principal entries are 0.
package cashflow

import (
	"hotel_underwriting/pkg/core/debt"
	"hotel_underwriting/pkg/core/projection"
	"hotel_underwriting/pkg/models"
)

// Interest share of annual debt service under the approximate split.
const ApproxInterestShare = 0.8

// Names reported in Diagnostics.Missing next to the operating ones.
const (
	MissingBudget    = "budget"
	MissingFinancing = "financing"
)

// Options tune how the statements are assembled.
type Options struct {
	// ApproximateDebtSplit books 80% of the first-year debt service as
	// interest and 20% as principal for every financed year, instead of the
	// exact per-year sums of the amortization table.
	ApproximateDebtSplit bool `json:"approximate_debt_split"`
}

// Diagnostics lets callers detect an incomplete deal without an error.
type Diagnostics struct {
	Missing []string `json:"missing,omitempty"`
}

// Complete reports whether nothing was missing.
func (d Diagnostics) Complete() bool {
	return len(d.Missing) == 0
}

// Exit describes the terminal or refinancing event that was applied.
type Exit struct {
	Strategy models.ExitStrategy `json:"strategy"`
	Year     int                 `json:"year"`

	NOI             float64 `json:"noi"`
	GrossSalePrice  float64 `json:"gross_sale_price"`
	NetSaleProceeds float64 `json:"net_sale_proceeds"`

	PropertyValue     float64 `json:"property_value"`
	NewLoanAmount     float64 `json:"new_loan_amount"`
	RefinanceProceeds float64 `json:"refinance_proceeds"`

	// DebtPayoff is the balance repaid at the exit or at maturity.
	DebtPayoff     float64 `json:"debt_payoff"`
	DebtPayoffYear int     `json:"debt_payoff_year"`
}

// Unlevered is the property-level statement.
type Unlevered struct {
	Years        int     `json:"years"`
	TerminalYear int     `json:"terminal_year"`
	ProjectCost  float64 `json:"project_cost"`
	Depreciation float64 `json:"depreciation"`

	EBITDA          models.YearSeries `json:"ebitda"`
	CashTaxes       models.YearSeries `json:"cash_taxes"`
	Capex           models.YearSeries `json:"capex"`
	NetSaleProceeds models.YearSeries `json:"net_sale_proceeds"`
	UnleveredCF     models.YearSeries `json:"unlevered_cf"`

	Exit        Exit        `json:"exit"`
	Diagnostics Diagnostics `json:"diagnostics"`
}

// Levered adds the financing legs on top of the unlevered statement.
//
// Financing legs stop at the exit year. After a REFINANCE the new loan's net
// proceeds appear in DebtDraw that year, but the new loan is never serviced
// or repaid inside the horizon, so levered IRR and multiples over y0..horizon
// exclude its interest and principal.
type Levered struct {
	Unlevered Unlevered `json:"unlevered"`

	DebtDraw           models.YearSeries `json:"debt_draw"`
	InterestExpense    models.YearSeries `json:"interest_expense"`
	PrincipalRepayment models.YearSeries `json:"principal_repayment"`
	LeveredCF          models.YearSeries `json:"levered_cf"`

	// DebtService is the scheduled payment per year as a positive amount,
	// without payoffs. It is the denominator of DSCR.
	DebtService models.YearSeries `json:"debt_service"`

	Schedule    debt.Schedule `json:"-"`
	Equity      float64       `json:"equity"`
	Diagnostics Diagnostics   `json:"diagnostics"`
}

// Statements is the full output of one cash-flow run.
type Statements struct {
	Operating projection.OperatingProjection `json:"operating"`
	Levered   Levered                        `json:"levered"`
	Options   Options                        `json:"options"`
}

// Unlevered is a shortcut to the property-level statement.
func (s Statements) Unlevered() Unlevered {
	return s.Levered.Unlevered
}
