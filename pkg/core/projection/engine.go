package projection

import (
	"hotel_underwriting/pkg/core/calc"
	"hotel_underwriting/pkg/core/cost"
	"hotel_underwriting/pkg/core/revenue"
	"hotel_underwriting/pkg/models"
)

// Names reported in OperatingProjection.Missing.
const (
	MissingRooms       = "rooms"
	MissingFnB         = "fnb"
	MissingOther       = "other_revenue"
	MissingPayroll     = "payroll"
	MissingOpex        = "opex"
	MissingAssumptions = "assumptions"
)

// StabilizedYear prices every department of the deal at multiplier 1.
func StabilizedYear(deal *models.Deal) Stabilized {
	if deal == nil {
		return Stabilized{}
	}
	rooms := revenue.ComputeRooms(deal.Rooms, deal.Property.Rooms, deal.Property.CalendarYear)
	fnb := revenue.ComputeFnBAnnual(deal.FnB, rooms)
	other := revenue.ComputeOther(deal.OtherRevenue, rooms.Revenue)

	return Stabilized{
		Rooms:   rooms,
		FnB:     fnb,
		Other:   other,
		Payroll: cost.ComputePayroll(deal.Payroll, deal.Property.Rooms),
		Opex: cost.ComputeOpex(deal.Opex, cost.OpexBase{
			RoomsRevenue:   rooms.Revenue,
			FnBRevenue:     fnb.Revenue,
			OtherRevenue:   other.Revenue,
			RoomNightsSold: rooms.Sold,
		}),
	}
}

// MultipliersFor builds the ramp and macro factors of a deal over years.
func MultipliersFor(deal *models.Deal, years int) Multipliers {
	if deal == nil || deal.Assumptions == nil {
		return BuildMultipliers(years, nil, nil, 0, 0)
	}
	r := deal.Assumptions.Ramp
	return BuildMultipliers(years, r.RevenueRamp, r.CostRamp, r.ToplineGrowthPct, r.InflationPct)
}

// Project scales the stabilized year across y1..yYears.
//
//	revenue[y]    = stabilized × RevenueFactor(y)
//	roomNights[y] = stabilized × VolumeFactor(y)
//	payroll[y]    = stabilized × CostFactor(y)
//	opex[y]       = opex priced on year-y revenue, non-revenue drivers × CostFactor(y)
//	GOP           = revenue - payroll - DIRECT - INDIRECT
//	EBITDA        = GOP - OTHER
//
// Year 0 is the acquisition year and carries no operations.
func Project(deal *models.Deal, years int) OperatingProjection {
	if years < 0 {
		years = 0
	}
	p := OperatingProjection{
		Years:          years,
		Multipliers:    MultipliersFor(deal, years),
		Stabilized:     StabilizedYear(deal),
		RoomNightsSold: models.NewYearSeries(years),
		RoomsRevenue:   models.NewYearSeries(years),
		FnBRevenue:     models.NewYearSeries(years),
		OtherRevenue:   models.NewYearSeries(years),
		TotalRevenue:   models.NewYearSeries(years),
		Payroll:        models.NewYearSeries(years),
		OpexDirect:     models.NewYearSeries(years),
		OpexIndirect:   models.NewYearSeries(years),
		OpexOther:      models.NewYearSeries(years),
		GOP:            models.NewYearSeries(years),
		EBITDA:         models.NewYearSeries(years),
		Missing:        missingOperatingInputs(deal),
	}
	if deal == nil {
		return p
	}

	s := p.Stabilized
	for y := 1; y <= years; y++ {
		revFactor := p.Multipliers.RevenueFactor(y)
		costFactor := p.Multipliers.CostFactor(y)

		p.RoomNightsSold[y] = s.Rooms.Sold * p.Multipliers.VolumeFactor(y)
		p.RoomsRevenue[y] = s.Rooms.Revenue * revFactor
		p.FnBRevenue[y] = s.FnB.Revenue * revFactor
		p.OtherRevenue[y] = s.Other.Revenue * revFactor
		p.TotalRevenue[y] = p.RoomsRevenue[y] + p.FnBRevenue[y] + p.OtherRevenue[y]

		p.Payroll[y] = s.Payroll.AnnualCost * costFactor

		opex := cost.ComputeOpexScaled(deal.Opex, cost.OpexBase{
			RoomsRevenue:   p.RoomsRevenue[y],
			FnBRevenue:     p.FnBRevenue[y],
			OtherRevenue:   p.OtherRevenue[y],
			RoomNightsSold: p.RoomNightsSold[y],
		}, costFactor)
		p.OpexDirect[y] = opex.Direct
		p.OpexIndirect[y] = opex.Indirect
		p.OpexOther[y] = opex.Other

		p.GOP[y] = p.TotalRevenue[y] - p.Payroll[y] - opex.Direct - opex.Indirect
		p.EBITDA[y] = p.GOP[y] - opex.Other
	}

	for _, series := range []models.YearSeries{
		p.RoomNightsSold, p.RoomsRevenue, p.FnBRevenue, p.OtherRevenue, p.TotalRevenue,
		p.Payroll, p.OpexDirect, p.OpexIndirect, p.OpexOther, p.GOP, p.EBITDA,
	} {
		calc.FiniteSeries(series)
	}
	return p
}

func missingOperatingInputs(deal *models.Deal) []string {
	if deal == nil {
		return []string{MissingRooms, MissingFnB, MissingOther, MissingPayroll, MissingOpex, MissingAssumptions}
	}
	var missing []string
	if deal.Rooms == nil {
		missing = append(missing, MissingRooms)
	}
	if deal.FnB == nil {
		missing = append(missing, MissingFnB)
	}
	if deal.OtherRevenue == nil {
		missing = append(missing, MissingOther)
	}
	if deal.Payroll == nil {
		missing = append(missing, MissingPayroll)
	}
	if deal.Opex == nil {
		missing = append(missing, MissingOpex)
	}
	if deal.Assumptions == nil {
		missing = append(missing, MissingAssumptions)
	}
	return missing
}
