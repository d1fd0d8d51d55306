package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMultipliers_RampOnlyCoversFirstFourYears(t *testing.T) {
	for _, rates := range [][2]float64{{0, 0}, {3, 2}, {10, 7.5}} {
		m := BuildMultipliers(10, []float64{0.8, 0.9, 1, 1}, []float64{1.1, 1.05, 1, 1}, rates[0], rates[1])
		require.Len(t, m.RevenueRamp, 11)
		for y := 5; y <= 10; y++ {
			assert.Equal(t, 1.0, m.RevenueRamp[y], "revenue ramp year %d", y)
			assert.Equal(t, 1.0, m.CostRamp[y], "cost ramp year %d", y)
		}
		assert.Equal(t, 0.8, m.RevenueRamp[1])
		assert.Equal(t, 1.1, m.CostRamp[1])
	}
}

func TestBuildMultipliers_ZeroRatesYieldOne(t *testing.T) {
	m := BuildMultipliers(6, nil, nil, 0, 0)
	for y := 0; y <= 6; y++ {
		assert.Equal(t, 1.0, m.Inflation[y])
		assert.Equal(t, 1.0, m.ToplineGrowth[y])
		assert.Equal(t, 1.0, m.RevenueRamp[y])
		assert.Equal(t, 1.0, m.CostRamp[y])
	}
}

func TestBuildMultipliers_Compounding(t *testing.T) {
	m := BuildMultipliers(3, nil, nil, 10, 2)
	// 1.1^3 = 1.331, 1.02^3 = 1.061208
	assert.InDelta(t, 1.331, m.ToplineGrowth[3], 1e-12)
	assert.InDelta(t, 1.061208, m.Inflation[3], 1e-12)
	assert.Equal(t, 1.0, m.Inflation[0])
}

func TestMultipliers_RevenueRegimes(t *testing.T) {
	m := BuildMultipliers(7, []float64{0.5, 0.75, 0.9, 0.95}, nil, 10, 0)

	// Ramp years ignore growth
	assert.Equal(t, 0.5, m.RevenueFactor(1))
	assert.Equal(t, 0.95, m.RevenueFactor(4))

	// Year 5 compounds on the stabilized base, not on 0.95
	assert.InDelta(t, 1.61051, m.RevenueFactor(5), 1e-9)
	assert.Equal(t, 1.0, m.VolumeFactor(5))
	assert.Equal(t, 0.75, m.VolumeFactor(2))

	// Outside the horizon
	assert.Equal(t, 1.0, m.RevenueFactor(0))
	assert.Equal(t, 1.0, m.RevenueFactor(8))
}

func TestMultipliers_CostFactor(t *testing.T) {
	m := BuildMultipliers(5, nil, []float64{1.2, 1.1}, 0, 5)
	assert.InDelta(t, 1.2*1.05, m.CostFactor(1), 1e-12)
	assert.InDelta(t, 1.1*1.05*1.05, m.CostFactor(2), 1e-12)
	assert.InDelta(t, 1.05*1.05*1.05, m.CostFactor(3), 1e-12)
}

func TestMultipliers_StabilizationYear(t *testing.T) {
	assert.Equal(t, 3, BuildMultipliers(10, []float64{0.8, 0.9, 1, 1}, nil, 0, 0).StabilizationYear())
	assert.Equal(t, 5, BuildMultipliers(10, []float64{0.6, 0.7, 0.8, 0.9}, nil, 0, 0).StabilizationYear())
	assert.Equal(t, 1, BuildMultipliers(10, nil, nil, 0, 0).StabilizationYear())
	assert.Equal(t, 3, BuildMultipliers(3, []float64{0.6, 0.7, 0.8, 0.9}, nil, 0, 0).StabilizationYear())
}

func TestBuildMultipliers_NegativeYears(t *testing.T) {
	m := BuildMultipliers(-2, nil, nil, 5, 5)
	assert.Equal(t, 0, m.Years)
	assert.Len(t, m.Inflation, 1)
}
