package revenue

import (
	"hotel_underwriting/pkg/core/calc"
	"hotel_underwriting/pkg/models"
)

// MealResult is one meal period over a period of days.
type MealResult struct {
	Name            string  `json:"name"`
	InternalCovers  float64 `json:"internal_covers"`
	ExternalCovers  float64 `json:"external_covers"`
	InternalRevenue float64 `json:"internal_revenue"`
	ExternalRevenue float64 `json:"external_revenue"`
	Revenue         float64 `json:"revenue"`
}

// CoversPerDay averages the covers of the period over its days.
func (m MealResult) CoversPerDay(days int) float64 {
	return calc.SafeDivide(m.InternalCovers+m.ExternalCovers, float64(days))
}

// FnBResult is food & beverage revenue for a period (a year or a month).
type FnBResult struct {
	Days            int          `json:"days"`
	Meals           []MealResult `json:"meals"`
	InternalRevenue float64      `json:"internal_revenue"`
	ExternalRevenue float64      `json:"external_revenue"`
	Revenue         float64      `json:"revenue"`
}

// CoversPerDay maps each meal period name to its average daily covers.
func (f FnBResult) CoversPerDay() map[string]float64 {
	out := make(map[string]float64, len(f.Meals))
	for _, m := range f.Meals {
		out[m.Name] = m.CoversPerDay(f.Days)
	}
	return out
}

// ComputeFnB prices each meal period for roomsSold room nights over days:
//
//	internal = roomsSold × guestsPerRoom × capture% × avgCheck
//	external = externalCovers/day × days × avgExternalCheck
func ComputeFnB(model *models.FnBModel, roomsSold float64, days int) FnBResult {
	res := FnBResult{Days: days, Meals: []MealResult{}}
	if model == nil {
		return res
	}

	for _, mp := range model.MealPeriods {
		internalCovers := roomsSold * model.GuestsPerRoom * calc.Pct(mp.CapturePct)
		externalCovers := mp.ExternalCoversPerDay * float64(days)
		meal := MealResult{
			Name:            mp.Name,
			InternalCovers:  internalCovers,
			ExternalCovers:  externalCovers,
			InternalRevenue: internalCovers * mp.AvgCheck,
			ExternalRevenue: externalCovers * mp.AvgExternalCheck,
		}
		meal.Revenue = meal.InternalRevenue + meal.ExternalRevenue

		res.Meals = append(res.Meals, meal)
		res.InternalRevenue += meal.InternalRevenue
		res.ExternalRevenue += meal.ExternalRevenue
		res.Revenue += meal.Revenue
	}
	return res
}

// ComputeFnBMonthly prices each month with its actual days and rooms sold.
func ComputeFnBMonthly(model *models.FnBModel, rooms RoomsResult) []FnBResult {
	out := make([]FnBResult, 0, len(rooms.Months))
	for _, m := range rooms.Months {
		out = append(out, ComputeFnB(model, m.Sold, m.Days))
	}
	return out
}

// ComputeFnBAnnual prices the stabilized year from the rooms result.
func ComputeFnBAnnual(model *models.FnBModel, rooms RoomsResult) FnBResult {
	days := 0
	for _, m := range rooms.Months {
		days += m.Days
	}
	if days == 0 {
		days = DaysInYear(0)
	}
	return ComputeFnB(model, rooms.Sold, days)
}
