package projection

import (
	"hotel_underwriting/pkg/core/cost"
	"hotel_underwriting/pkg/core/revenue"
	"hotel_underwriting/pkg/models"
)

// Stabilized holds the per-department results of a stabilized operating
// year (multiplier 1) that every projected year is scaled from.
type Stabilized struct {
	Rooms   revenue.RoomsResult `json:"rooms"`
	FnB     revenue.FnBResult   `json:"fnb"`
	Other   revenue.OtherResult `json:"other"`
	Payroll cost.PayrollResult  `json:"payroll"`
	Opex    cost.OpexResult     `json:"opex"`
}

// TotalRevenue sums the three revenue departments.
func (s Stabilized) TotalRevenue() float64 {
	return s.Rooms.Revenue + s.FnB.Revenue + s.Other.Revenue
}

// EBITDA of the stabilized year.
func (s Stabilized) EBITDA() float64 {
	return s.TotalRevenue() - s.Payroll.AnnualCost - s.Opex.Total
}

// OperatingProjection is the year-by-year operating statement. Every series
// covers y0..yYears and is 0 at y0.
type OperatingProjection struct {
	Years       int         `json:"years"`
	Multipliers Multipliers `json:"multipliers"`
	Stabilized  Stabilized  `json:"stabilized"`

	RoomNightsSold models.YearSeries `json:"room_nights_sold"`
	RoomsRevenue   models.YearSeries `json:"rooms_revenue"`
	FnBRevenue     models.YearSeries `json:"fnb_revenue"`
	OtherRevenue   models.YearSeries `json:"other_revenue"`
	TotalRevenue   models.YearSeries `json:"total_revenue"`

	Payroll      models.YearSeries `json:"payroll"`
	OpexDirect   models.YearSeries `json:"opex_direct"`
	OpexIndirect models.YearSeries `json:"opex_indirect"`
	OpexOther    models.YearSeries `json:"opex_other"`

	GOP    models.YearSeries `json:"gop"`
	EBITDA models.YearSeries `json:"ebitda"`

	// Missing lists the operating inputs the deal did not provide.
	Missing []string `json:"missing,omitempty"`
}

// GOPMargin is GOP over total revenue for a year, 0 without revenue.
func (p OperatingProjection) GOPMargin(year int) float64 {
	rev := p.TotalRevenue.Get(year)
	if rev == 0 {
		return 0
	}
	return p.GOP.Get(year) / rev
}
