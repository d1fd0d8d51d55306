package staffing

import (
	"fmt"

	"github.com/samber/lo"

	"hotel_underwriting/pkg/core/calc"
	"hotel_underwriting/pkg/models"
)

// FlagCode names a hard-rule diagnostic. Flags are independent of the gap bands.
type FlagCode string

const (
	FlagFrontOfficeCoverage      FlagCode = "FRONT_OFFICE_COVERAGE"
	FlagZeroStaff                FlagCode = "ZERO_STAFF"
	FlagHousekeepingProductivity FlagCode = "HOUSEKEEPING_PRODUCTIVITY"
)

// Flag is one hard-rule finding. It signals an outlier, not an error.
type Flag struct {
	Code       FlagCode `json:"code"`
	Department string   `json:"department"`
	Role       string   `json:"role"`
	Message    string   `json:"message"`
}

// Report is the staffing gap report of one analysis year.
type Report struct {
	Year          int                `json:"year"`
	Volumes       Volumes            `json:"volumes"`
	Lines         []RequiredStaffing `json:"lines"`
	Flags         []Flag             `json:"flags"`
	TotalRequired float64            `json:"total_required_fte"`
	TotalProvided float64            `json:"total_provided_fte"`
	TotalGap      float64            `json:"total_gap_fte"`
}

// BuildReport computes lines, totals and hard-rule flags for a year.
func BuildReport(deal *models.Deal, year int, a Assumptions, overrides Overrides) Report {
	v := VolumesFor(deal, year, overrides)
	roles := payrollRoles(deal)
	lines := Lines(v, roles, a)

	r := Report{
		Year:          year,
		Volumes:       v,
		Lines:         lines,
		TotalRequired: lo.SumBy(lines, func(l RequiredStaffing) float64 { return l.RequiredFTE }),
		TotalProvided: lo.SumBy(lines, func(l RequiredStaffing) float64 { return l.ProvidedFTE }),
	}
	r.TotalGap = r.TotalRequired - r.TotalProvided
	r.Flags = HardRules(lines, v, a)
	return r
}

// HardRules flags:
//   - a front-office gap at or above FrontOfficeGapFlag (24/7 cover impossible)
//   - an active F&B function with no provided staff
//   - rooms cleaned per provided housekeeping FTE outside the productivity band
func HardRules(lines []RequiredStaffing, v Volumes, a Assumptions) []Flag {
	flags := []Flag{}
	for _, l := range lines {
		switch l.kind {
		case kindFrontOffice:
			if l.GapFTE >= a.FrontOfficeGapFlag {
				flags = append(flags, Flag{
					Code:       FlagFrontOfficeCoverage,
					Department: l.Department,
					Role:       l.Role,
					Message:    fmt.Sprintf("front office short by %.1f FTE: 24/7 coverage cannot be rostered", l.GapFTE),
				})
			}
		case kindFnB:
			if l.Active && l.ProvidedFTE == 0 {
				flags = append(flags, Flag{
					Code:       FlagZeroStaff,
					Department: l.Department,
					Role:       l.Role,
					Message:    fmt.Sprintf("%s is active (%.1f FTE required) but payroll provides no staff", l.Role, l.RequiredFTE),
				})
			}
		case kindHousekeeping:
			if f, ok := housekeepingProductivity(l, v, a.Housekeeping); ok {
				flags = append(flags, f)
			}
		}
	}
	return flags
}

func housekeepingProductivity(l RequiredStaffing, v Volumes, hk HousekeepingAssumptions) (Flag, bool) {
	if v.RoomsSoldPerDay <= 0 {
		return Flag{}, false
	}
	flag := Flag{Code: FlagHousekeepingProductivity, Department: l.Department, Role: l.Role}
	if l.ProvidedFTE <= 0 {
		flag.Message = fmt.Sprintf("%.1f rooms sold/day with no housekeeping staff", v.RoomsSoldPerDay)
		return flag, true
	}
	perFTE := calc.SafeDivide(v.RoomsSoldPerDay, l.ProvidedFTE)
	if perFTE < hk.MinRoomsPerFTE || perFTE > hk.MaxRoomsPerFTE {
		flag.Message = fmt.Sprintf("%.1f rooms cleaned per FTE per day, expected %.0f-%.0f",
			perFTE, hk.MinRoomsPerFTE, hk.MaxRoomsPerFTE)
		return flag, true
	}
	return Flag{}, false
}
