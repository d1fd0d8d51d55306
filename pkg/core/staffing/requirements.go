package staffing

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/samber/lo"

	"hotel_underwriting/pkg/core/calc"
	"hotel_underwriting/pkg/core/projection"
	"hotel_underwriting/pkg/models"
)

// DaysPerWeek every function is staffed.
const DaysPerWeek = 7

// Status classifies a gap.
type Status string

const (
	StatusCritical     Status = "critical"
	StatusUnderstaffed Status = "understaffed"
	StatusOK           Status = "ok"
	StatusOverstaffed  Status = "overstaffed"
)

// RequiredStaffing compares the FTE one function needs with the FTE the
// payroll provides. GapFTE = RequiredFTE - ProvidedFTE.
type RequiredStaffing struct {
	Department    string  `json:"department"`
	Role          string  `json:"role"`
	RequiredFTE   float64 `json:"required_fte"`
	ProvidedFTE   float64 `json:"provided_fte"`
	GapFTE        float64 `json:"gap_fte"`
	Status        Status  `json:"status"`
	Justification string  `json:"justification"`

	// Active is false when the function has no volume to serve.
	Active bool `json:"active"`
	kind   kind
}

type kind int

const (
	kindFrontOffice kind = iota
	kindHousekeeping
	kindFnB
	kindSpa
)

// Overrides replace volumes the revenue model would otherwise supply.
type Overrides struct {
	CoversPerDay     map[string]float64 `json:"covers_per_day,omitempty"`
	RoomsSoldPerDay  *float64           `json:"rooms_sold_per_day,omitempty"`
	TreatmentsPerDay *float64           `json:"treatments_per_day,omitempty"`
}

// Volumes are the daily drivers of one analysis year.
type Volumes struct {
	Year             int                `json:"year"`
	RoomsSoldPerDay  float64            `json:"rooms_sold_per_day"`
	CoversPerDay     map[string]float64 `json:"covers_per_day"`
	TreatmentsPerDay float64            `json:"treatments_per_day"`
}

// VolumesFor reads the daily drivers from the revenue model, ramped to year.
// Year <= 0 uses stabilized volumes. Overrides are taken as given, unramped.
func VolumesFor(deal *models.Deal, year int, overrides Overrides) Volumes {
	stab := projection.StabilizedYear(deal)
	factor := 1.0
	if year > 0 {
		horizon := deal.Horizon()
		if year > horizon {
			horizon = year
		}
		factor = projection.MultipliersFor(deal, horizon).VolumeFactor(year)
	}

	v := Volumes{
		Year:            year,
		RoomsSoldPerDay: stab.Rooms.SoldPerDay() * factor,
		CoversPerDay:    lo.MapValues(stab.FnB.CoversPerDay(), func(c float64, _ string) float64 { return c * factor }),
	}
	if deal != nil && deal.OtherRevenue != nil {
		v.TreatmentsPerDay = deal.OtherRevenue.Spa.TreatmentsPerDay * factor
	}

	if overrides.RoomsSoldPerDay != nil {
		v.RoomsSoldPerDay = *overrides.RoomsSoldPerDay
	}
	if overrides.TreatmentsPerDay != nil {
		v.TreatmentsPerDay = *overrides.TreatmentsPerDay
	}
	for _, meal := range slices.Sorted(maps.Keys(overrides.CoversPerDay)) {
		setCovers(v.CoversPerDay, meal, overrides.CoversPerDay[meal])
	}
	return v
}

// setCovers replaces the covers of the meal periods matching meal
// case-insensitively, keeping the first matching name, or adds meal when
// none matches.
func setCovers(covers map[string]float64, meal string, value float64) {
	key := strings.TrimSpace(meal)
	matches := lo.Filter(slices.Sorted(maps.Keys(covers)), func(name string, _ int) bool { return sameMeal(name, meal) })
	if len(matches) > 0 {
		key = matches[0]
	}
	for _, name := range matches {
		delete(covers, name)
	}
	covers[key] = value
}

// CalculateRequiredStaffing derives required FTE per function for year and
// compares it with the deal's payroll.
func CalculateRequiredStaffing(deal *models.Deal, year int, a Assumptions, overrides Overrides) []RequiredStaffing {
	return Lines(VolumesFor(deal, year, overrides), payrollRoles(deal), a)
}

// Lines computes the staffing lines from explicit volumes and roles.
func Lines(v Volumes, roles []models.PayrollRole, a Assumptions) []RequiredStaffing {
	productive := a.ProductiveHours()
	lines := []RequiredStaffing{
		frontOffice(a, productive),
		housekeeping(v, a, productive),
	}
	for _, fn := range a.FnB {
		lines = append(lines, fnbFunction(v, fn, productive))
	}
	if v.TreatmentsPerDay > 0 {
		lines = append(lines, spa(v, a, productive))
	}

	for i := range lines {
		l := &lines[i]
		l.RequiredFTE = calc.Finite(l.RequiredFTE)
		l.ProvidedFTE = ProvidedFTE(roles, functionFor(a, l))
		l.GapFTE = l.RequiredFTE - l.ProvidedFTE
		l.Status = a.Bands.Classify(l.GapFTE)
	}
	return lines
}

// Classify places a gap in the critical/understaffed/ok/overstaffed bands.
func (b Bands) Classify(gap float64) Status {
	switch {
	case gap >= b.Critical:
		return StatusCritical
	case gap >= b.Understaffed:
		return StatusUnderstaffed
	case gap <= b.Overstaffed:
		return StatusOverstaffed
	default:
		return StatusOK
	}
}

// ProvidedFTE sums the payroll roles whose department matches fn and whose
// title contains one of its keywords.
func ProvidedFTE(roles []models.PayrollRole, fn Function) float64 {
	matching := lo.Filter(roles, func(r models.PayrollRole, _ int) bool {
		return fn.Provides(r)
	})
	return lo.SumBy(matching, func(r models.PayrollRole) float64 { return r.FTE })
}

// Provides reports whether a payroll role staffs this function.
func (fn Function) Provides(r models.PayrollRole) bool {
	deptOK := lo.ContainsBy(fn.Departments, func(d string) bool {
		return strings.EqualFold(strings.TrimSpace(d), strings.TrimSpace(r.Department))
	})
	if !deptOK {
		return false
	}
	title := strings.ToLower(r.Title)
	return lo.ContainsBy(fn.Keywords, func(k string) bool {
		return k != "" && strings.Contains(title, strings.ToLower(k))
	})
}

func functionFor(a Assumptions, l *RequiredStaffing) Function {
	switch l.kind {
	case kindFrontOffice:
		return a.FrontOffice.Function
	case kindHousekeeping:
		return a.Housekeeping.Function
	case kindSpa:
		return a.Spa.Function
	}
	fn, _ := lo.Find(a.FnB, func(f FnBFunctionAssumptions) bool { return f.Role == l.Role })
	return fn.Function
}

func payrollRoles(deal *models.Deal) []models.PayrollRole {
	if deal == nil || deal.Payroll == nil {
		return nil
	}
	return deal.Payroll.Roles
}

func frontOffice(a Assumptions, productive float64) RequiredStaffing {
	fo := a.FrontOffice
	nightHours := 168 - a.HoursPerWeek
	hours := fo.DayPosts*a.HoursPerWeek + fo.NightPosts*nightHours
	return RequiredStaffing{
		Department:  fo.Department,
		Role:        fo.Role,
		RequiredFTE: calc.SafeDivide(hours, productive),
		Active:      hours > 0,
		kind:        kindFrontOffice,
		Justification: fmt.Sprintf("%.0f day post(s) x %.0fh + %.0f night post(s) x %.0fh = %.0fh/week over %.1f productive h/FTE",
			fo.DayPosts, a.HoursPerWeek, fo.NightPosts, nightHours, hours, productive),
	}
}

func housekeeping(v Volumes, a Assumptions, productive float64) RequiredStaffing {
	hk := a.Housekeeping
	attendants := calc.CeilPositive(calc.SafeDivide(v.RoomsSoldPerDay, hk.RoomsPerAttendant))
	hours := attendants * hk.ShiftHours * DaysPerWeek
	return RequiredStaffing{
		Department:  hk.Department,
		Role:        hk.Role,
		RequiredFTE: calc.SafeDivide(hours, productive),
		Active:      v.RoomsSoldPerDay > 0,
		kind:        kindHousekeeping,
		Justification: fmt.Sprintf("%.1f rooms sold/day at %.0f rooms/attendant = %.0f attendant(s) x %.0fh x %d days = %.0fh/week",
			v.RoomsSoldPerDay, hk.RoomsPerAttendant, attendants, hk.ShiftHours, DaysPerWeek, hours),
	}
}

func fnbFunction(v Volumes, fn FnBFunctionAssumptions, productive float64) RequiredStaffing {
	daily := 0.0
	var parts []string
	for _, p := range fn.Periods {
		covers := coversFor(v.CoversPerDay, p.MealPeriod)
		if covers <= 0 {
			continue
		}
		staff := calc.CeilPositive(calc.SafeDivide(covers, p.Throughput))
		daily += staff * p.Hours
		parts = append(parts, fmt.Sprintf("%s %.0f covers -> %.0f x %.0fh", p.MealPeriod, covers, staff, p.Hours))
	}
	hours := daily * DaysPerWeek

	justification := "no active meal period"
	if len(parts) > 0 {
		justification = fmt.Sprintf("%s; %.0fh/week", strings.Join(parts, ", "), hours)
	}
	return RequiredStaffing{
		Department:    fn.Department,
		Role:          fn.Role,
		RequiredFTE:   calc.SafeDivide(hours, productive),
		Active:        hours > 0,
		kind:          kindFnB,
		Justification: justification,
	}
}

// coversFor sums the covers of every meal period matching meal
// case-insensitively, in name order.
func coversFor(covers map[string]float64, meal string) float64 {
	total := 0.0
	for _, name := range slices.Sorted(maps.Keys(covers)) {
		if sameMeal(name, meal) {
			total += covers[name]
		}
	}
	return total
}

func sameMeal(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func spa(v Volumes, a Assumptions, productive float64) RequiredStaffing {
	s := a.Spa
	hours := v.TreatmentsPerDay * s.TreatmentDurationHours * DaysPerWeek
	return RequiredStaffing{
		Department:  s.Department,
		Role:        s.Role,
		RequiredFTE: calc.SafeDivide(hours, productive),
		Active:      true,
		kind:        kindSpa,
		Justification: fmt.Sprintf("%.1f treatments/day x %.1fh x %d days = %.0fh/week",
			v.TreatmentsPerDay, s.TreatmentDurationHours, DaysPerWeek, hours),
	}
}
