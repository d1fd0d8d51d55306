package cashflow

import (
	"hotel_underwriting/pkg/core/calc"
	"hotel_underwriting/pkg/models"
)

// planExit resolves the strategy and event year. A SALE or REFINANCE whose
// year falls outside 1..years has no event and is treated as a hold.
func planExit(settings models.ExitSettings, years int) Exit {
	switch settings.Strategy {
	case models.ExitSale:
		if settings.ExitYear >= 1 && settings.ExitYear <= years {
			return Exit{Strategy: models.ExitSale, Year: settings.ExitYear}
		}
	case models.ExitRefinance:
		if settings.RefinanceYear >= 1 && settings.RefinanceYear <= years {
			return Exit{Strategy: models.ExitRefinance, Year: settings.RefinanceYear}
		}
	}
	return Exit{Strategy: models.ExitHoldForever}
}

// applySale books the net sale proceeds in the exit year:
//
//	gross = NOI_exit / exitCap
//	net   = max(0, gross × (1 - sellingCosts))
func applySale(u *Unlevered, ex *Exit, settings models.ExitSettings) {
	ex.NOI = u.EBITDA.Get(ex.Year)
	ex.GrossSalePrice = calc.SafeDivide(ex.NOI, calc.Pct(settings.ExitCapRatePct))
	ex.NetSaleProceeds = calc.PositiveOrZero(ex.GrossSalePrice * (1 - calc.Pct(settings.SellingCostsPct)))
	u.NetSaleProceeds[ex.Year] = ex.NetSaleProceeds
}

// applyRefinance values the property on the refinance-year NOI at the exit
// cap rate, sizes the new loan at the new LTV and draws it net of costs.
// The old loan is repaid by bookPayoff in the same year.
func applyRefinance(l *Levered, ex *Exit, settings models.ExitSettings) {
	ex.NOI = l.Unlevered.EBITDA.Get(ex.Year)
	ex.PropertyValue = calc.PositiveOrZero(calc.SafeDivide(ex.NOI, calc.Pct(settings.ExitCapRatePct)))
	ex.NewLoanAmount = ex.PropertyValue * calc.Pct(settings.RefinanceLTVPct)
	ex.RefinanceProceeds = calc.PositiveOrZero(ex.NewLoanAmount * (1 - calc.Pct(settings.RefinanceCostsPct)))
	l.DebtDraw[ex.Year] += ex.RefinanceProceeds
}
