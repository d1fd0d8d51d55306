package revenue

import (
	"hotel_underwriting/pkg/core/calc"
	"hotel_underwriting/pkg/models"
)

// SpaDaysPerYear is the operating-day count of the spa revenue formula.
const SpaDaysPerYear = 365

// OtherResult is spa plus miscellaneous revenue for the stabilized year.
type OtherResult struct {
	SpaRevenue   float64                 `json:"spa_revenue"`
	OtherRevenue float64                 `json:"other_revenue"`
	Mode         models.OtherRevenueMode `json:"mode"`
	Revenue      float64                 `json:"revenue"`
}

// ComputeOther prices the spa (treatments/day × 365 × price) and the "other"
// line, which is either a percentage of rooms revenue or a fixed monthly
// amount × 12. An unknown mode contributes nothing.
func ComputeOther(model *models.OtherRevenueModel, roomsRevenue float64) OtherResult {
	if model == nil {
		return OtherResult{}
	}
	res := OtherResult{
		Mode:       model.Mode,
		SpaRevenue: model.Spa.TreatmentsPerDay * SpaDaysPerYear * model.Spa.AvgPrice,
	}

	switch model.Mode {
	case models.OtherPercentOfRooms:
		res.OtherRevenue = roomsRevenue * calc.Pct(model.PercentOfRooms)
	case models.OtherFixedMonthly:
		res.OtherRevenue = model.FixedMonthly * 12
	}

	res.SpaRevenue = calc.Finite(res.SpaRevenue)
	res.OtherRevenue = calc.Finite(res.OtherRevenue)
	res.Revenue = res.SpaRevenue + res.OtherRevenue
	return res
}
