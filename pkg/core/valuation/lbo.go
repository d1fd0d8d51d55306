package valuation

import (
	"math"
)

// AbilityToPayResult answers: holding this capital structure's distributions
// fixed, how large an equity cheque still earns the target levered IRR?
type AbilityToPayResult struct {
	TargetIRR      float64 `json:"target_irr"`
	MaxEquityCheck float64 `json:"max_equity_check"`
	EquityRequired float64 `json:"equity_required"`
	// Headroom is MaxEquityCheck - EquityRequired; negative means the deal
	// misses the target at the modeled price.
	Headroom float64 `json:"headroom"`
}

// CalculateAbilityToPay discounts the levered distributions of years
// 1..len-1 at the target IRR and compares the result with the year-0 equity.
func CalculateAbilityToPay(levered []float64, targetIRR float64) AbilityToPayResult {
	res := AbilityToPayResult{TargetIRR: targetIRR}
	if len(levered) == 0 || targetIRR <= -1 {
		return res
	}

	res.EquityRequired = math.Max(0, -levered[0])
	for y := 1; y < len(levered); y++ {
		res.MaxEquityCheck += levered[y] / math.Pow(1+targetIRR, float64(y))
	}
	res.Headroom = res.MaxEquityCheck - res.EquityRequired
	return res
}
