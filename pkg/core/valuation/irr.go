package valuation

import (
	"math"

	"hotel_underwriting/pkg/core/calc"
	"hotel_underwriting/pkg/core/cashflow"
	"hotel_underwriting/pkg/models"
)

// Solver bounds. Rates are decimal fractions (0.10 = 10%).
const (
	minRate      = -0.9999
	maxRate      = 10.0
	scanStep     = 0.01
	irrTolerance = 1e-10
	maxBisection = 200
)

// NPV discounts flows at rate; flows[0] is undiscounted.
func NPV(rate float64, flows []float64) float64 {
	total := 0.0
	factor := 1.0
	for _, f := range flows {
		total += f / factor
		factor *= 1 + rate
	}
	return total
}

// IRR solves NPV(r) = 0. It returns false when the flows do not change sign
// or no root lies in [-99.99%, 1000%]. Brackets are scanned outward from 0
// in both directions at once, so the root closest to zero wins when several
// exist.
func IRR(flows []float64) (float64, bool) {
	if !hasSignChange(flows) {
		return 0, false
	}
	npv := func(r float64) float64 { return NPV(r, flows) }

	if v := npv(0); v == 0 {
		return 0, true
	}
	// Brackets alternate above and below 0, one step further out each round.
	for k := 0; ; k++ {
		near := float64(k) * scanStep
		far := float64(k+1) * scanStep
		if near >= maxRate && -near <= minRate {
			return 0, false
		}
		up, upOK := 0.0, false
		if near < maxRate {
			up, upOK = bisect(npv, near, math.Min(far, maxRate))
		}
		down, downOK := 0.0, false
		if -near > minRate {
			down, downOK = bisect(npv, math.Max(-far, minRate), -near)
		}
		switch {
		case upOK && downOK:
			if math.Abs(down) < math.Abs(up) {
				return down, true
			}
			return up, true
		case upOK:
			return up, true
		case downOK:
			return down, true
		}
	}
}

func bisect(f func(float64) float64, lo, hi float64) (float64, bool) {
	flo, fhi := f(lo), f(hi)
	if math.IsNaN(flo) || math.IsNaN(fhi) || math.IsInf(flo, 0) || math.IsInf(fhi, 0) {
		return 0, false
	}
	if flo == 0 {
		return lo, true
	}
	if fhi == 0 {
		return hi, true
	}
	if flo*fhi > 0 {
		return 0, false
	}
	for i := 0; i < maxBisection && hi-lo > irrTolerance; i++ {
		mid := (lo + hi) / 2
		fmid := f(mid)
		if fmid == 0 {
			return mid, true
		}
		if flo*fmid < 0 {
			hi = mid
		} else {
			lo, flo = mid, fmid
		}
	}
	return (lo + hi) / 2, true
}

func hasSignChange(flows []float64) bool {
	var pos, neg bool
	for _, f := range flows {
		if f > 0 {
			pos = true
		} else if f < 0 {
			neg = true
		}
	}
	return pos && neg
}

// Rate wraps a solver result as a nullable value for serialization.
func Rate(r float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	r = calc.Finite(r)
	return &r
}

// ProjectIrrs are the unlevered and levered IRRs of a deal. A nil rate means
// the flows admit no solution.
type ProjectIrrs struct {
	ThroughYear int      `json:"through_year"`
	Unlevered   *float64 `json:"unlevered_irr"`
	Levered     *float64 `json:"levered_irr"`
}

// ComputeProjectIrrs solves both IRRs through throughYearIndex, or through the
// deal's terminal year when it is nil.
func ComputeProjectIrrs(deal *models.Deal, throughYearIndex *int) ProjectIrrs {
	st := cashflow.Compute(deal, cashflow.Options{})
	through := st.Unlevered().TerminalYear
	if throughYearIndex != nil {
		through = *throughYearIndex
	}
	return IrrsFor(st.Levered, through)
}

// IrrsFor solves both IRRs of already computed statements through a year index.
func IrrsFor(l cashflow.Levered, through int) ProjectIrrs {
	if through >= len(l.LeveredCF) {
		through = len(l.LeveredCF) - 1
	}
	if through < 0 {
		through = 0
	}
	return ProjectIrrs{
		ThroughYear: through,
		Unlevered:   Rate(IRR(l.Unlevered.UnleveredCF.Truncate(through))),
		Levered:     Rate(IRR(l.LeveredCF.Truncate(through))),
	}
}
