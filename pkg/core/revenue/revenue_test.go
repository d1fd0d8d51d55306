package revenue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_underwriting/pkg/models"
)

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 28, DaysInMonth(0, 2))
	assert.Equal(t, 29, DaysInMonth(2024, 2))
	assert.Equal(t, 28, DaysInMonth(2025, 2))
	assert.Equal(t, 31, DaysInMonth(2025, 12))
	assert.Equal(t, 0, DaysInMonth(2025, 13))
	assert.Equal(t, 365, DaysInYear(0))
	assert.Equal(t, 366, DaysInYear(2024))
}

func TestWeightedADR(t *testing.T) {
	types := []models.RoomType{
		{Name: "Standard", Count: 15, ADR: 100, Weight: 3},
		{Name: "Suite", Count: 5, ADR: 200, Weight: 1},
	}
	// (100*3 + 200*1) / 4 = 125
	assert.InDelta(t, 125, WeightedADR(types), 1e-9)

	// No weights: room counts are used, (100*15 + 200*5) / 20 = 125
	types[0].Weight, types[1].Weight = 0, 0
	assert.InDelta(t, 125, WeightedADR(types), 1e-9)

	assert.Equal(t, 0.0, WeightedADR(nil))
}

func TestComputeRooms(t *testing.T) {
	model := &models.RoomsModel{
		RoomTypes:    []models.RoomType{{Name: "Double", Count: 20, ADR: 150}},
		OccupancyPct: 70,
	}
	res := ComputeRooms(model, 20, 0)

	require.Len(t, res.Months, 12)
	// 365 * 20 = 7300 available, 70% sold = 5110
	assert.InDelta(t, 7300, res.Available, 1e-9)
	assert.InDelta(t, 5110, res.Sold, 1e-9)
	assert.InDelta(t, 5110*150, res.Revenue, 1e-6)
	assert.InDelta(t, 70, res.OccupancyPct, 1e-9)
	// RevPAR = ADR x occupancy
	assert.InDelta(t, 105, res.RevPAR, 1e-9)
	assert.InDelta(t, 14, res.SoldPerDay(), 1e-9)
	assert.InDelta(t, 20*28*0.7, res.Months[1].Sold, 1e-9)
}

func TestComputeRooms_MonthlyOccupancyAndRoomMix(t *testing.T) {
	monthly := make([]float64, 12)
	monthly[6] = 100 // July only
	model := &models.RoomsModel{
		RoomTypes:           []models.RoomType{{Count: 4, ADR: 50}, {Count: 6, ADR: 50}},
		MonthlyOccupancyPct: monthly,
	}
	res := ComputeRooms(model, 0, 2025)

	// Room count falls back to the mix (10)
	assert.InDelta(t, 3650, res.Available, 1e-9)
	assert.InDelta(t, 310, res.Sold, 1e-9)
	assert.InDelta(t, 310*50, res.Revenue, 1e-9)
}

func TestComputeRooms_Degenerate(t *testing.T) {
	res := ComputeRooms(nil, 20, 0)
	assert.Equal(t, 0.0, res.Revenue)
	assert.Equal(t, 0.0, res.SoldPerDay())

	// No rooms at all: every ratio falls back to 0
	res = ComputeRooms(&models.RoomsModel{OccupancyPct: 80}, 0, 0)
	assert.Equal(t, 0.0, res.OccupancyPct)
	assert.Equal(t, 0.0, res.RevPAR)
	assert.Equal(t, 0.0, res.WeightedADR)
}

func TestComputeFnB(t *testing.T) {
	model := &models.FnBModel{
		GuestsPerRoom: 1.5,
		MealPeriods: []models.MealPeriod{
			{Name: "Breakfast", CapturePct: 80, AvgCheck: 20},
			{Name: "Dinner", CapturePct: 30, AvgCheck: 45, ExternalCoversPerDay: 10, AvgExternalCheck: 50},
		},
	}
	res := ComputeFnB(model, 5110, 365)

	require.Len(t, res.Meals, 2)
	// Breakfast: 5110 * 1.5 * 0.8 = 6132 covers * 20
	assert.InDelta(t, 6132, res.Meals[0].InternalCovers, 1e-9)
	assert.InDelta(t, 122_640, res.Meals[0].Revenue, 1e-6)
	// Dinner: 5110 * 1.5 * 0.3 = 2299.5 * 45 ; external 3650 * 50
	assert.InDelta(t, 2299.5*45, res.Meals[1].InternalRevenue, 1e-6)
	assert.InDelta(t, 182_500, res.Meals[1].ExternalRevenue, 1e-6)
	assert.InDelta(t, res.InternalRevenue+res.ExternalRevenue, res.Revenue, 1e-6)

	covers := res.CoversPerDay()
	assert.InDelta(t, 6132.0/365, covers["Breakfast"], 1e-9)
	assert.InDelta(t, (2299.5+3650)/365, covers["Dinner"], 1e-9)
}

func TestComputeFnBMonthly_SumsToAnnual(t *testing.T) {
	rooms := ComputeRooms(&models.RoomsModel{
		RoomTypes:    []models.RoomType{{Count: 20, ADR: 150}},
		OccupancyPct: 70,
	}, 20, 2024)
	model := &models.FnBModel{
		GuestsPerRoom: 2,
		MealPeriods:   []models.MealPeriod{{Name: "Lunch", CapturePct: 25, AvgCheck: 30, ExternalCoversPerDay: 5, AvgExternalCheck: 35}},
	}

	months := ComputeFnBMonthly(model, rooms)
	require.Len(t, months, 12)
	assert.Equal(t, 29, months[1].Days)

	total := 0.0
	for _, m := range months {
		total += m.Revenue
	}
	annual := ComputeFnBAnnual(model, rooms)
	assert.Equal(t, 366, annual.Days)
	assert.InDelta(t, annual.Revenue, total, 1e-6)
}

func TestComputeFnB_Nil(t *testing.T) {
	res := ComputeFnB(nil, 1000, 365)
	assert.Equal(t, 0.0, res.Revenue)
	assert.Empty(t, res.Meals)
	assert.Equal(t, 365, ComputeFnBAnnual(nil, RoomsResult{}).Days)
}

func TestComputeOther(t *testing.T) {
	spa := models.SpaModel{TreatmentsPerDay: 4, AvgPrice: 90}

	pct := ComputeOther(&models.OtherRevenueModel{Spa: spa, Mode: models.OtherPercentOfRooms, PercentOfRooms: 5, FixedMonthly: 1000}, 800_000)
	// 4 * 365 * 90 = 131,400
	assert.InDelta(t, 131_400, pct.SpaRevenue, 1e-9)
	assert.InDelta(t, 40_000, pct.OtherRevenue, 1e-9)

	fixed := ComputeOther(&models.OtherRevenueModel{Spa: spa, Mode: models.OtherFixedMonthly, PercentOfRooms: 5, FixedMonthly: 1000}, 800_000)
	assert.InDelta(t, 12_000, fixed.OtherRevenue, 1e-9)
	assert.InDelta(t, 143_400, fixed.Revenue, 1e-9)

	unknown := ComputeOther(&models.OtherRevenueModel{Mode: "BOTH", PercentOfRooms: 5, FixedMonthly: 1000}, 800_000)
	assert.Equal(t, 0.0, unknown.Revenue)

	assert.Equal(t, OtherResult{}, ComputeOther(nil, 800_000))
}
