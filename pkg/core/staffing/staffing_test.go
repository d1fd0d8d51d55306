package staffing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_underwriting/pkg/models"
)

func line(t *testing.T, lines []RequiredStaffing, role string) RequiredStaffing {
	t.Helper()
	l, ok := lo.Find(lines, func(l RequiredStaffing) bool { return l.Role == role })
	require.True(t, ok, "missing line %q", role)
	return l
}

func TestCalculateRequiredStaffing_SampleDeal(t *testing.T) {
	a := DefaultAssumptions()
	lines := CalculateRequiredStaffing(models.SampleDeal(), 0, a, Overrides{})
	require.Len(t, lines, 6)

	// Productive hours: 40 x 0.85 = 34
	assert.InDelta(t, 34, a.ProductiveHours(), 1e-12)

	// Front office: 1 x 40 + 1 x 128 = 168h
	fo := line(t, lines, "Reception")
	assert.InDelta(t, 168.0/34, fo.RequiredFTE, 1e-9)
	assert.InDelta(t, 5.5, fo.ProvidedFTE, 1e-9)
	assert.Equal(t, StatusOK, fo.Status)

	// 14.4 rooms/day at 14 per attendant -> 2 attendants x 8h x 7
	hk := line(t, lines, "Room Attendants")
	assert.InDelta(t, 112.0/34, hk.RequiredFTE, 1e-9)
	assert.InDelta(t, 5, hk.ProvidedFTE, 1e-9)
	assert.Equal(t, StatusOverstaffed, hk.Status)

	// Breakfast 17.3 covers -> 1 x 4h, dinner 13.8 covers -> 1 x 5h
	service := line(t, lines, "Service")
	assert.InDelta(t, 63.0/34, service.RequiredFTE, 1e-9)
	assert.InDelta(t, 3, service.ProvidedFTE, 1e-9)

	kitchen := line(t, lines, "Kitchen")
	assert.InDelta(t, 70.0/34, kitchen.RequiredFTE, 1e-9)
	assert.InDelta(t, 3, kitchen.ProvidedFTE, 1e-9)

	bar := line(t, lines, "Bar")
	assert.InDelta(t, 42.0/34, bar.RequiredFTE, 1e-9)
	assert.InDelta(t, 1, bar.ProvidedFTE, 1e-9)

	// 6 treatments x 1h x 7
	spa := line(t, lines, "Therapists")
	assert.InDelta(t, 42.0/34, spa.RequiredFTE, 1e-9)
	assert.InDelta(t, 2, spa.ProvidedFTE, 1e-9)

	for _, l := range lines {
		assert.Equal(t, l.RequiredFTE-l.ProvidedFTE, l.GapFTE, l.Role)
		assert.NotEmpty(t, l.Justification, l.Role)
	}
}

func TestCalculateRequiredStaffing_RampedYear(t *testing.T) {
	lines := CalculateRequiredStaffing(models.SampleDeal(), 1, DefaultAssumptions(), Overrides{})
	// 80% of 14.4 rooms/day = 11.52 -> 1 attendant
	assert.InDelta(t, 56.0/34, line(t, lines, "Room Attendants").RequiredFTE, 1e-9)
}

func TestCalculateRequiredStaffing_ZeroProvidedKitchen(t *testing.T) {
	deal := models.SampleDeal()
	deal.Payroll.Roles = lo.Reject(deal.Payroll.Roles, func(r models.PayrollRole, _ int) bool {
		return r.Department == "F&B"
	})

	report := BuildReport(deal, 0, DefaultAssumptions(), Overrides{})
	kitchen := line(t, report.Lines, "Kitchen")
	assert.Equal(t, 0.0, kitchen.ProvidedFTE)
	assert.Greater(t, kitchen.GapFTE, 0.0)
	assert.Equal(t, StatusCritical, kitchen.Status)

	zeroStaff := lo.Filter(report.Flags, func(f Flag, _ int) bool { return f.Code == FlagZeroStaff })
	assert.Len(t, zeroStaff, 3)
	assert.ElementsMatch(t, []string{"Service", "Kitchen", "Bar"}, lo.Map(zeroStaff, func(f Flag, _ int) string { return f.Role }))
}

func TestBuildReport_FrontOfficeCoverageFlag(t *testing.T) {
	deal := models.SampleDeal()
	deal.Payroll.Roles = lo.Reject(deal.Payroll.Roles, func(r models.PayrollRole, _ int) bool {
		return r.Department == "Front Office"
	})

	report := BuildReport(deal, 0, DefaultAssumptions(), Overrides{})
	fo := line(t, report.Lines, "Reception")
	assert.Equal(t, StatusCritical, fo.Status)
	assert.True(t, lo.ContainsBy(report.Flags, func(f Flag) bool { return f.Code == FlagFrontOfficeCoverage }))
	assert.InDelta(t, report.TotalRequired-report.TotalProvided, report.TotalGap, 1e-9)
}

func TestBuildReport_HousekeepingProductivity(t *testing.T) {
	// Sample: 14.4 rooms/day over 5 FTE = 2.9, under the 5-15 band
	report := BuildReport(models.SampleDeal(), 0, DefaultAssumptions(), Overrides{})
	assert.True(t, lo.ContainsBy(report.Flags, func(f Flag) bool { return f.Code == FlagHousekeepingProductivity }))

	rooms := 50.0
	report = BuildReport(models.SampleDeal(), 0, DefaultAssumptions(), Overrides{RoomsSoldPerDay: &rooms})
	assert.False(t, lo.ContainsBy(report.Flags, func(f Flag) bool { return f.Code == FlagHousekeepingProductivity }))
}

func TestCalculateRequiredStaffing_Overrides(t *testing.T) {
	zero := 0.0
	lines := CalculateRequiredStaffing(models.SampleDeal(), 0, DefaultAssumptions(), Overrides{
		CoversPerDay:     map[string]float64{"Dinner": 100},
		TreatmentsPerDay: &zero,
	})

	// Dinner 100 covers at 15 -> 7 servers x 5h, plus breakfast 1 x 4h
	assert.InDelta(t, 39.0*7/34, line(t, lines, "Service").RequiredFTE, 1e-9)
	assert.False(t, lo.ContainsBy(lines, func(l RequiredStaffing) bool { return l.Role == "Therapists" }))
}

func TestCalculateRequiredStaffing_OverrideMatchesMealCaseInsensitively(t *testing.T) {
	want := line(t, CalculateRequiredStaffing(models.SampleDeal(), 0, DefaultAssumptions(), Overrides{
		CoversPerDay: map[string]float64{"Dinner": 100},
	}), "Service").RequiredFTE
	assert.InDelta(t, 39.0*7/34, want, 1e-9)

	for i := 0; i < 50; i++ {
		lines := CalculateRequiredStaffing(models.SampleDeal(), 0, DefaultAssumptions(), Overrides{
			CoversPerDay: map[string]float64{" dinner ": 100},
		})
		require.Equal(t, want, line(t, lines, "Service").RequiredFTE)
	}

	v := VolumesFor(models.SampleDeal(), 0, Overrides{CoversPerDay: map[string]float64{"DINNER": 100, "Tea": 5}})
	assert.Equal(t, 100.0, v.CoversPerDay["Dinner"])
	assert.Equal(t, 5.0, v.CoversPerDay["Tea"])
	assert.NotContains(t, v.CoversPerDay, "DINNER")
	assert.Len(t, v.CoversPerDay, 3)
}

func TestBands_Classify(t *testing.T) {
	b := DefaultAssumptions().Bands
	assert.Equal(t, StatusCritical, b.Classify(2))
	assert.Equal(t, StatusUnderstaffed, b.Classify(0.5))
	assert.Equal(t, StatusOK, b.Classify(0.49))
	assert.Equal(t, StatusOK, b.Classify(-0.99))
	assert.Equal(t, StatusOverstaffed, b.Classify(-1))
}

func TestFunction_Provides(t *testing.T) {
	fn := DefaultAssumptions().FnB[1].Function
	assert.True(t, fn.Provides(models.PayrollRole{Department: "food & beverage", Title: "Sous CHEF"}))
	assert.False(t, fn.Provides(models.PayrollRole{Department: "Spa", Title: "Chef"}))
	assert.False(t, fn.Provides(models.PayrollRole{Department: "F&B", Title: "Waiter"}))
}

func TestCalculateRequiredStaffing_EmptyDeal(t *testing.T) {
	assert.NotPanics(t, func() {
		lines := CalculateRequiredStaffing(nil, 3, DefaultAssumptions(), Overrides{})
		for _, l := range lines {
			assert.Equal(t, 0.0, l.ProvidedFTE)
		}
	})
}

func TestLoadAssumptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "staffing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
hours_per_week: 38
utilization: 0.8
fnb:
  - department: F&B
    role: Service
    departments: ["F&B"]
    keywords: ["waiter"]
    periods:
      - meal_period: Breakfast
        hours: 3
        throughput: 25
`), 0o644))

	a, err := LoadAssumptions(path)
	require.NoError(t, err)
	assert.InDelta(t, 30.4, a.ProductiveHours(), 1e-12)
	require.Len(t, a.FnB, 1)
	assert.Equal(t, 25.0, a.FnB[0].Periods[0].Throughput)
	// Untouched keys keep defaults
	assert.Equal(t, 14.0, a.Housekeeping.RoomsPerAttendant)
	assert.Equal(t, "Reception", a.FrontOffice.Role)

	require.NoError(t, os.WriteFile(path, []byte("utilization: 1.2\n"), 0o644))
	_, err = LoadAssumptions(path)
	assert.Error(t, err)

	_, err = LoadAssumptions(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadAssumptions_ExampleFile(t *testing.T) {
	a, err := LoadAssumptions(filepath.Join("..", "..", "..", "config", "staffing.example.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 38.5, a.HoursPerWeek)
	assert.Equal(t, 0.82, a.Utilization)
	assert.Equal(t, 13.0, a.Housekeeping.RoomsPerAttendant)
	assert.Equal(t, DefaultAssumptions().FrontOffice, a.FrontOffice)
}
