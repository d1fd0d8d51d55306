package projection

import (
	"math"
)

// RampYears is the number of years covered by the revenue and cost ramp curves.
const RampYears = 4

// Multipliers are year-indexed factors. Every slice has Years+1 entries;
// index 0 is the 1.00 baseline of the acquisition year.
type Multipliers struct {
	Years         int       `json:"years"`
	Inflation     []float64 `json:"inflation"`
	ToplineGrowth []float64 `json:"topline_growth"`
	RevenueRamp   []float64 `json:"revenue_ramp"`
	CostRamp      []float64 `json:"cost_ramp"`
}

// BuildMultipliers produces the ramp and macro factors for years 1..years.
//
//	inflation[i]     = (1 + inflationPct/100)^i
//	toplineGrowth[i] = (1 + growthPct/100)^i
//	revenueRamp[i]   = revenueRamp4[i-1] for i <= 4, else 1
//	costRamp[i]      = costRamp4[i-1] for i <= 4, else 1
//
// Curves shorter than 4 entries are padded with 1; extra entries are ignored.
func BuildMultipliers(years int, revenueRamp4, costRamp4 []float64, growthPct, inflationPct float64) Multipliers {
	if years < 0 {
		years = 0
	}
	m := Multipliers{
		Years:         years,
		Inflation:     make([]float64, years+1),
		ToplineGrowth: make([]float64, years+1),
		RevenueRamp:   make([]float64, years+1),
		CostRamp:      make([]float64, years+1),
	}

	inflation := 1 + inflationPct/100
	growth := 1 + growthPct/100

	for i := 0; i <= years; i++ {
		m.Inflation[i] = math.Pow(inflation, float64(i))
		m.ToplineGrowth[i] = math.Pow(growth, float64(i))
		m.RevenueRamp[i] = rampAt(revenueRamp4, i)
		m.CostRamp[i] = rampAt(costRamp4, i)
	}
	return m
}

func rampAt(curve []float64, year int) float64 {
	if year < 1 || year > RampYears || year > len(curve) {
		return 1.0
	}
	return curve[year-1]
}

// RevenueFactor selects the revenue regime for a year: the ramp curve during
// years 1-4, compounding topline growth from year 5 on. The two are never
// multiplied together, so growth compounds on the stabilized baseline rather
// than on the ramped year-4 value.
func (m Multipliers) RevenueFactor(year int) float64 {
	if year < 1 || year > m.Years {
		return 1.0
	}
	if year <= RampYears {
		return m.RevenueRamp[year]
	}
	return m.ToplineGrowth[year]
}

// VolumeFactor is the occupancy-driven part of RevenueFactor: the ramp only.
// Topline growth beyond stabilization is rate growth and does not add room nights.
func (m Multipliers) VolumeFactor(year int) float64 {
	if year < 1 || year > m.Years {
		return 1.0
	}
	return m.RevenueRamp[year]
}

// CostFactor applies the cost-ramp premium and price inflation. Both run from year 1.
func (m Multipliers) CostFactor(year int) float64 {
	if year < 1 || year > m.Years {
		return 1.0
	}
	return m.CostRamp[year] * m.Inflation[year]
}

// StabilizationYear is the first year whose revenue ramp reaches 1.0, or the
// first year after the ramp when the curve never gets there.
func (m Multipliers) StabilizationYear() int {
	for y := 1; y <= m.Years && y <= RampYears; y++ {
		if m.RevenueRamp[y] >= 1.0 {
			return y
		}
	}
	if m.Years < RampYears+1 {
		return m.Years
	}
	return RampYears + 1
}
