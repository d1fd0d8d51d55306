package valuation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_underwriting/pkg/core/cashflow"
	"hotel_underwriting/pkg/models"
)

func TestIRR_KnownRoots(t *testing.T) {
	r, ok := IRR([]float64{-100, 110})
	require.True(t, ok)
	assert.InDelta(t, 0.10, r, 1e-4)

	r, ok = IRR([]float64{-100, 90})
	require.True(t, ok)
	assert.InDelta(t, -0.10, r, 1e-4)

	flows := []float64{-100, 50, 60}
	r, ok = IRR(flows)
	require.True(t, ok)
	assert.InDelta(t, 0.0639, r, 1e-4)
	assert.InDelta(t, 0, NPV(r, flows), 1e-6)

	r, ok = IRR([]float64{-100, 0, 0, 100})
	require.True(t, ok)
	assert.InDelta(t, 0, r, 1e-9)
}

func TestIRR_PrefersRootNearestZero(t *testing.T) {
	// NPV roots at -5% and +50%
	flows := []float64{1, -2.45, 1.425}
	r, ok := IRR(flows)
	require.True(t, ok)
	assert.InDelta(t, -0.05, r, 1e-6)

	// NPV roots at +3% and -40%
	flows = []float64{1, -1.63, 0.618}
	r, ok = IRR(flows)
	require.True(t, ok)
	assert.InDelta(t, 0.03, r, 1e-6)
}

func TestIRR_NoSolution(t *testing.T) {
	for name, flows := range map[string][]float64{
		"all positive": {100, 10, 20},
		"all negative": {-100, -10, -20},
		"all zero":     {0, 0, 0},
		"empty":        nil,
	} {
		_, ok := IRR(flows)
		assert.False(t, ok, name)
		assert.Nil(t, Rate(IRR(flows)), name)
	}
}

func TestComputeProjectIrrs(t *testing.T) {
	irrs := ComputeProjectIrrs(models.SampleDeal(), nil)
	assert.Equal(t, 7, irrs.ThroughYear)
	require.NotNil(t, irrs.Unlevered)
	require.NotNil(t, irrs.Levered)
	// Positive leverage at a 6% loan
	assert.Greater(t, *irrs.Levered, *irrs.Unlevered)

	zero := 0
	irrs = ComputeProjectIrrs(models.SampleDeal(), &zero)
	assert.Nil(t, irrs.Unlevered)
	assert.Nil(t, irrs.Levered)

	far := 50
	irrs = ComputeProjectIrrs(models.SampleDeal(), &far)
	assert.Equal(t, 10, irrs.ThroughYear)
}

func TestComputeProjectIrrs_IncompleteDeal(t *testing.T) {
	irrs := ComputeProjectIrrs(&models.Deal{}, nil)
	assert.Nil(t, irrs.Unlevered)
	assert.Nil(t, irrs.Levered)
}

func TestCalculateDCF(t *testing.T) {
	res := CalculateDCF([]float64{-100, 110}, 0.10)
	assert.InDelta(t, 0, res.NPV, 1e-9)
	assert.InDelta(t, 1, res.ProfitabilityIndex, 1e-9)
	assert.Equal(t, 1, res.DiscountedPayback)

	res = CalculateDCF([]float64{-100, 50}, 0.10)
	assert.Equal(t, -1, res.DiscountedPayback)
	assert.Less(t, res.NPV, 0.0)
}

func TestCalculateAbilityToPay(t *testing.T) {
	res := CalculateAbilityToPay([]float64{-100, 110}, 0.10)
	assert.InDelta(t, 100, res.MaxEquityCheck, 1e-9)
	assert.InDelta(t, 100, res.EquityRequired, 1e-9)
	assert.InDelta(t, 0, res.Headroom, 1e-9)

	assert.Equal(t, AbilityToPayResult{TargetIRR: 0.1}, CalculateAbilityToPay(nil, 0.1))
}

func TestMultiplesAndPeakEquity(t *testing.T) {
	assert.InDelta(t, 1.3, EquityMultiple([]float64{-100, 50, 80}), 1e-9)
	assert.Equal(t, 0.0, EquityMultiple([]float64{10, 20}))
	assert.InDelta(t, 120, PeakEquity([]float64{-100, 30, -50, 200}), 1e-9)
	assert.Equal(t, 0.0, PeakEquity([]float64{10, 20}))
}

func TestSummarize_SampleDeal(t *testing.T) {
	deal := models.SampleDeal()
	st := cashflow.Compute(deal, cashflow.Options{})
	s := Summarize(deal, st, nil)

	assert.Equal(t, 7, s.Irrs.ThroughYear)
	assert.Equal(t, 3, s.StabilizationYear)
	assert.Equal(t, 0.0, s.DSCR[0])
	require.NotNil(t, s.MinDSCR)

	u := st.Unlevered()
	assert.InDelta(t, u.EBITDA[3]/2_400_000, s.YieldOnCost, 1e-12)
	assert.InDelta(t, u.EBITDA[3]/st.Levered.DebtService[3], s.StabilizedDSCR, 1e-12)
	assert.InDelta(t, u.UnleveredCF.Sum(7), s.UnleveredProfit, 1e-6)
	assert.GreaterOrEqual(t, s.PeakEquity, 960_000.0)

	rev := st.Operating.TotalRevenue
	assert.InDelta(t, math.Pow(rev[7]/rev[1], 1.0/6)-1, s.RevenueCAGR, 1e-12)
	assert.Greater(t, s.RevenueCAGR, 0.0)

	require.NotNil(t, s.DCF)
	assert.Equal(t, 0.10, s.DCF.DiscountRate)
	require.NotNil(t, s.AbilityToPay)
	assert.InDelta(t, 960_000, s.AbilityToPay.EquityRequired, 1e-6)
}

func TestSummarize_NoDebt(t *testing.T) {
	deal := models.SampleDeal()
	deal.Assumptions.Financing = nil
	deal.Assumptions.DiscountRatePct = 0
	st := cashflow.Compute(deal, cashflow.Options{})
	s := Summarize(deal, st, nil)

	assert.Nil(t, s.MinDSCR)
	assert.Equal(t, 0.0, s.StabilizedDSCR)
	assert.Nil(t, s.DCF)
	assert.InDelta(t, s.UnleveredMultiple, s.LeveredMultiple, 1e-12)
}
