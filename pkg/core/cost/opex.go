package cost

import (
	"hotel_underwriting/pkg/core/calc"
	"hotel_underwriting/pkg/models"
)

// OpexBase carries the drivers expense lines are computed from.
type OpexBase struct {
	RoomsRevenue   float64 `json:"rooms_revenue"`
	FnBRevenue     float64 `json:"fnb_revenue"`
	OtherRevenue   float64 `json:"other_revenue"`
	RoomNightsSold float64 `json:"room_nights_sold"`
}

// TotalRevenue is the sum of the three revenue bases.
func (b OpexBase) TotalRevenue() float64 {
	return b.RoomsRevenue + b.FnBRevenue + b.OtherRevenue
}

// OpexLine is one priced expense item.
type OpexLine struct {
	Name    string             `json:"name"`
	Section models.OpexSection `json:"section"`
	Driver  models.OpexDriver  `json:"driver"`
	Amount  float64            `json:"amount"`
}

// OpexResult groups the priced lines into statement sections.
type OpexResult struct {
	Lines    []OpexLine `json:"lines"`
	Direct   float64    `json:"direct"`
	Indirect float64    `json:"indirect"`
	Other    float64    `json:"other"`
	Total    float64    `json:"total"`
}

// Section returns the total of one section.
func (o OpexResult) Section(s models.OpexSection) float64 {
	switch s {
	case models.SectionDirect:
		return o.Direct
	case models.SectionIndirect:
		return o.Indirect
	default:
		return o.Other
	}
}

// ComputeOpex prices every item against base for a stabilized year.
func ComputeOpex(state *models.OpexState, base OpexBase) OpexResult {
	return ComputeOpexScaled(state, base, 1)
}

// ComputeOpexScaled prices every item, multiplying the non-revenue drivers
// (per room night, fixed per month) by costFactor. Percentage drivers follow
// their revenue base and are not scaled again.
//
// Items with an unknown driver price at 0. Items without a recognised
// section land in OTHER.
func ComputeOpexScaled(state *models.OpexState, base OpexBase, costFactor float64) OpexResult {
	res := OpexResult{Lines: []OpexLine{}}
	if state == nil {
		return res
	}

	for _, item := range state.Items {
		amount := 0.0
		switch item.Driver {
		case models.DriverPctRoomsRevenue:
			amount = base.RoomsRevenue * calc.Pct(item.Value)
		case models.DriverPctFnBRevenue:
			amount = base.FnBRevenue * calc.Pct(item.Value)
		case models.DriverPctOtherRevenue:
			amount = base.OtherRevenue * calc.Pct(item.Value)
		case models.DriverPctTotalRevenue:
			amount = base.TotalRevenue() * calc.Pct(item.Value)
		case models.DriverPerRoomNightSold:
			amount = base.RoomNightsSold * item.Value * costFactor
		case models.DriverFixedPerMonth:
			amount = item.Value * 12 * costFactor
		}
		amount = calc.Finite(amount)

		section := item.Section
		switch section {
		case models.SectionDirect:
			res.Direct += amount
		case models.SectionIndirect:
			res.Indirect += amount
		default:
			section = models.SectionOther
			res.Other += amount
		}

		res.Lines = append(res.Lines, OpexLine{
			Name:    item.Name,
			Section: section,
			Driver:  item.Driver,
			Amount:  amount,
		})
	}
	res.Total = res.Direct + res.Indirect + res.Other
	return res
}
