// Package revenue converts the operating revenue assumptions of a deal into
// stabilized-year currency amounts. Every function is pure and tolerates nil
// models, returning zero results instead of failing.
package revenue

import (
	"time"

	"hotel_underwriting/pkg/core/calc"
	"hotel_underwriting/pkg/models"
)

// standardDays is used when no calendar year is configured (non-leap year).
var standardDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the days of month m (1-12) for a calendar year; year <= 0 uses a non-leap year.
func DaysInMonth(year, m int) int {
	if m < 1 || m > 12 {
		return 0
	}
	if year <= 0 {
		return standardDays[m-1]
	}
	return time.Date(year, time.Month(m)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysInYear sums DaysInMonth over the calendar year.
func DaysInYear(year int) int {
	total := 0
	for m := 1; m <= 12; m++ {
		total += DaysInMonth(year, m)
	}
	return total
}

// RoomsMonth is one calendar month of rooms inventory and sales.
type RoomsMonth struct {
	Month     int     `json:"month"`
	Days      int     `json:"days"`
	Available float64 `json:"available"`
	Sold      float64 `json:"sold"`
	Revenue   float64 `json:"revenue"`
}

// RoomsResult is the stabilized-year rooms department.
type RoomsResult struct {
	Months       []RoomsMonth `json:"months"`
	Available    float64      `json:"available_room_nights"`
	Sold         float64      `json:"sold_room_nights"`
	OccupancyPct float64      `json:"occupancy_pct"`
	WeightedADR  float64      `json:"weighted_adr"`
	RevPAR       float64      `json:"revpar"`
	Revenue      float64      `json:"revenue"`
}

// SoldPerDay is the average number of rooms sold per night.
func (r RoomsResult) SoldPerDay() float64 {
	days := 0
	for _, m := range r.Months {
		days += m.Days
	}
	return calc.SafeDivide(r.Sold, float64(days))
}

// WeightedADR blends the room-type rates by their weights. Types without a
// weight fall back to their room count; an all-zero mix yields 0.
func WeightedADR(types []models.RoomType) float64 {
	var num, den float64
	for _, rt := range types {
		w := rt.Weight
		if w == 0 {
			w = float64(rt.Count)
		}
		num += rt.ADR * w
		den += w
	}
	return calc.SafeDivide(num, den)
}

// ComputeRooms rolls month-by-month availability and sales into annual totals.
// Room count is the property count, or the sum of the room mix when the
// property count is unset.
func ComputeRooms(model *models.RoomsModel, rooms int, calendarYear int) RoomsResult {
	res := RoomsResult{Months: make([]RoomsMonth, 0, 12)}
	if model == nil {
		return res
	}
	if rooms <= 0 {
		for _, rt := range model.RoomTypes {
			rooms += rt.Count
		}
	}

	adr := WeightedADR(model.RoomTypes)
	for m := 1; m <= 12; m++ {
		occ := model.OccupancyPct
		if len(model.MonthlyOccupancyPct) == 12 {
			occ = model.MonthlyOccupancyPct[m-1]
		}
		days := DaysInMonth(calendarYear, m)
		available := float64(days * rooms)
		sold := available * calc.Pct(occ)
		month := RoomsMonth{
			Month:     m,
			Days:      days,
			Available: available,
			Sold:      sold,
			Revenue:   sold * adr,
		}
		res.Months = append(res.Months, month)
		res.Available += available
		res.Sold += sold
		res.Revenue += month.Revenue
	}

	res.WeightedADR = adr
	res.OccupancyPct = calc.SafeDivide(res.Sold, res.Available) * 100
	res.RevPAR = calc.SafeDivide(res.Revenue, res.Available)
	return res
}
