package valuation

import (
	"hotel_underwriting/pkg/core/calc"
)

// DCFResult discounts a cash-flow series at a single hurdle rate.
type DCFResult struct {
	DiscountRate       float64 `json:"discount_rate"`
	NPV                float64 `json:"npv"`
	PVInflows          float64 `json:"pv_inflows"`
	PVOutflows         float64 `json:"pv_outflows"`
	ProfitabilityIndex float64 `json:"profitability_index"`
	// DiscountedPayback is the first year cumulative discounted flow turns
	// non-negative, -1 when it never does.
	DiscountedPayback int `json:"discounted_payback_year"`
}

// CalculateDCF discounts flows (y0 undiscounted) at rate, a decimal fraction.
func CalculateDCF(flows []float64, rate float64) DCFResult {
	res := DCFResult{DiscountRate: rate, DiscountedPayback: -1}

	cumulative := 0.0
	for y, f := range flows {
		pv := calc.PresentValue(f, rate, y)
		if pv >= 0 {
			res.PVInflows += pv
		} else {
			res.PVOutflows -= pv
		}
		cumulative += pv
		if res.DiscountedPayback < 0 && y > 0 && cumulative >= 0 {
			res.DiscountedPayback = y
		}
	}

	res.NPV = res.PVInflows - res.PVOutflows
	res.ProfitabilityIndex = calc.SafeDivide(res.PVInflows, res.PVOutflows)
	return res
}
