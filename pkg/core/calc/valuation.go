package calc

import (
	"math"
)

// PresentValue discounts one cash flow received at the end of period t.
//
// FORMULA: PV = CF / (1 + r)^t
func PresentValue(cashFlow, discountRate float64, periods int) float64 {
	if periods < 0 {
		return 0
	}
	return Finite(cashFlow / math.Pow(1+discountRate, float64(periods)))
}

// GrowthRate is the change from prior to current, relative to |prior|.
func GrowthRate(current, prior float64) float64 {
	if prior == 0 {
		return 0
	}
	return Finite((current - prior) / math.Abs(prior))
}

// CAGR is the compound annual growth from beginningValue to endingValue.
// Sign changes and non-positive spans yield 0.
func CAGR(endingValue, beginningValue float64, years int) float64 {
	if beginningValue == 0 || years <= 0 || endingValue/beginningValue < 0 {
		return 0
	}
	return Finite(math.Pow(endingValue/beginningValue, 1.0/float64(years)) - 1)
}
