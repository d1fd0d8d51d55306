package cashflow

import (
	"hotel_underwriting/pkg/core/calc"
)

// Legs exposes the series tied by the levered identity.
func (l Levered) Legs() calc.CashflowLegs {
	return calc.CashflowLegs{
		Unlevered:          l.Unlevered.UnleveredCF,
		DebtDraw:           l.DebtDraw,
		InterestExpense:    l.InterestExpense,
		PrincipalRepayment: l.PrincipalRepayment,
		Levered:            l.LeveredCF,
	}
}

// OperatingSeries are the series that must be 0 in year 0.
func (l Levered) OperatingSeries() map[string][]float64 {
	return map[string][]float64{
		"ebitda":              l.Unlevered.EBITDA,
		"cash_taxes":          l.Unlevered.CashTaxes,
		"net_sale_proceeds":   l.Unlevered.NetSaleProceeds,
		"interest_expense":    l.InterestExpense,
		"principal_repayment": l.PrincipalRepayment,
		"debt_service":        l.DebtService,
	}
}

// Verify runs the levered identity and the year-0 clamp checks together.
func (l Levered) Verify() calc.VerificationResult {
	identity := calc.CheckLeveredIdentity(l.Legs())
	clamp := calc.CheckYearZeroClamp(l.OperatingSeries())

	res := calc.VerificationResult{
		IsBalanced: identity.IsBalanced && clamp.IsBalanced,
		MaxGap:     identity.MaxGap,
		Warnings:   append(identity.Warnings, clamp.Warnings...),
	}
	if clamp.MaxGap > res.MaxGap {
		res.MaxGap = clamp.MaxGap
	}
	return res
}
