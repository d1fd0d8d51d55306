package cost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_underwriting/pkg/models"
)

func samplePayroll() *models.PayrollModel {
	return &models.PayrollModel{Roles: []models.PayrollRole{
		{Department: "Rooms", Title: "Receptionist", FTE: 4, BaseSalary: 30_000, EmployerCostPct: 25},
		{Department: "Rooms", Title: "Housekeeping Attendant", FTE: 3, BaseSalary: 25_000, EmployerCostPct: 25},
		{Department: "F&B", Title: "Chef", FTE: 1, BaseSalary: 50_000, EmployerCostPct: 20},
	}}
}

func TestComputePayroll(t *testing.T) {
	res := ComputePayroll(samplePayroll(), 20)

	require.Len(t, res.Roles, 3)
	// 4 * 30,000 * 1.25 = 150,000
	assert.InDelta(t, 150_000, res.Roles[0].AnnualCost, 1e-9)

	require.Len(t, res.Departments, 2)
	assert.Equal(t, "F&B", res.Departments[0].Department)
	assert.Equal(t, "Rooms", res.Departments[1].Department)
	// 150,000 + 93,750
	assert.InDelta(t, 243_750, res.Department("Rooms").AnnualCost, 1e-9)
	assert.InDelta(t, 7, res.Department("Rooms").FTE, 1e-9)
	assert.InDelta(t, 60_000, res.Department("F&B").AnnualCost, 1e-9)

	assert.InDelta(t, 8, res.TotalFTE, 1e-9)
	assert.InDelta(t, 303_750, res.AnnualCost, 1e-9)
	assert.InDelta(t, 303_750.0/12, res.MonthlyCost, 1e-9)
	assert.InDelta(t, 303_750.0/20, res.CostPerRoom, 1e-9)

	assert.Equal(t, DepartmentCost{}, res.Department("Spa"))
}

func TestComputePayroll_Degenerate(t *testing.T) {
	res := ComputePayroll(nil, 20)
	assert.Equal(t, 0.0, res.AnnualCost)
	assert.Empty(t, res.Departments)

	res = ComputePayroll(samplePayroll(), 0)
	assert.Equal(t, 0.0, res.CostPerRoom)
}

func TestComputeOpex(t *testing.T) {
	state := &models.OpexState{Items: []models.OpexItem{
		{Name: "Rooms supplies", Section: models.SectionDirect, Driver: models.DriverPctRoomsRevenue, Value: 3},
		{Name: "F&B cost of sales", Section: models.SectionDirect, Driver: models.DriverPctFnBRevenue, Value: 30},
		{Name: "Spa consumables", Section: models.SectionDirect, Driver: models.DriverPctOtherRevenue, Value: 10},
		{Name: "Amenities", Section: models.SectionDirect, Driver: models.DriverPerRoomNightSold, Value: 4},
		{Name: "Sales & marketing", Section: models.SectionIndirect, Driver: models.DriverPctTotalRevenue, Value: 5},
		{Name: "Insurance", Section: models.SectionOther, Driver: models.DriverFixedPerMonth, Value: 2_000},
		{Name: "Mystery", Section: "", Driver: "PER_GUEST", Value: 99},
	}}
	base := OpexBase{RoomsRevenue: 1_000_000, FnBRevenue: 300_000, OtherRevenue: 100_000, RoomNightsSold: 5_000}

	res := ComputeOpex(state, base)
	require.Len(t, res.Lines, 7)

	// 30,000 + 90,000 + 10,000 + 20,000
	assert.InDelta(t, 150_000, res.Direct, 1e-9)
	// 5% of 1,400,000
	assert.InDelta(t, 70_000, res.Indirect, 1e-9)
	assert.InDelta(t, 24_000, res.Other, 1e-9)
	assert.InDelta(t, 244_000, res.Total, 1e-9)

	assert.Equal(t, models.SectionOther, res.Lines[6].Section)
	assert.Equal(t, 0.0, res.Lines[6].Amount)
	assert.InDelta(t, 70_000, res.Section(models.SectionIndirect), 1e-9)
}

func TestComputeOpexScaled_OnlyScalesNonRevenueDrivers(t *testing.T) {
	state := &models.OpexState{Items: []models.OpexItem{
		{Name: "Rooms supplies", Section: models.SectionDirect, Driver: models.DriverPctRoomsRevenue, Value: 3},
		{Name: "Insurance", Section: models.SectionOther, Driver: models.DriverFixedPerMonth, Value: 1_000},
	}}
	res := ComputeOpexScaled(state, OpexBase{RoomsRevenue: 100_000}, 1.1)
	assert.InDelta(t, 3_000, res.Direct, 1e-9)
	assert.InDelta(t, 13_200, res.Other, 1e-9)
}

func TestComputeOpex_ZeroBase(t *testing.T) {
	state := &models.OpexState{Items: []models.OpexItem{
		{Name: "Rooms supplies", Section: models.SectionDirect, Driver: models.DriverPctRoomsRevenue, Value: 3},
	}}
	assert.Equal(t, 0.0, ComputeOpex(state, OpexBase{}).Total)
	assert.Equal(t, 0.0, ComputeOpex(nil, OpexBase{RoomsRevenue: 1}).Total)
}
