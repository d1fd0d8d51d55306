package calc

import (
	"fmt"
	"maps"
	"math"
	"slices"
)

// IdentityTolerance is the absolute gap accepted between two sides of an identity.
const IdentityTolerance = 1e-6

// CashflowLegs is a year-by-year snapshot of the series tied by the levered identity.
type CashflowLegs struct {
	Unlevered          []float64
	DebtDraw           []float64
	InterestExpense    []float64
	PrincipalRepayment []float64
	Levered            []float64
}

// VerificationResult holds the status of integrity checks
type VerificationResult struct {
	IsBalanced bool     `json:"is_balanced"`
	MaxGap     float64  `json:"max_gap"`
	Warnings   []string `json:"warnings,omitempty"`
}

// CheckLeveredIdentity verifies levered = unlevered + draw + interest + principal for every year.
func CheckLeveredIdentity(legs CashflowLegs) VerificationResult {
	res := VerificationResult{IsBalanced: true}
	for y := range legs.Levered {
		expected := at(legs.Unlevered, y) + at(legs.DebtDraw, y) + at(legs.InterestExpense, y) + at(legs.PrincipalRepayment, y)
		gap := legs.Levered[y] - expected
		if math.Abs(gap) > res.MaxGap {
			res.MaxGap = math.Abs(gap)
		}
		if math.Abs(gap) > IdentityTolerance {
			res.IsBalanced = false
			res.Warnings = append(res.Warnings, fmt.Sprintf("y%d: levered cash flow off by %.6f", y, gap))
		}
	}
	return res
}

// CheckYearZeroClamp verifies that each named operating series is exactly zero
// at year 0. Warnings are ordered by series name.
func CheckYearZeroClamp(series map[string][]float64) VerificationResult {
	res := VerificationResult{IsBalanced: true}
	for _, name := range slices.Sorted(maps.Keys(series)) {
		v := at(series[name], 0)
		if v != 0 {
			res.IsBalanced = false
			if math.Abs(v) > res.MaxGap {
				res.MaxGap = math.Abs(v)
			}
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s: y0 is %.2f, expected 0", name, v))
		}
	}
	return res
}

func at(s []float64, i int) float64 {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}
