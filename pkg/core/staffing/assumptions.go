// Package staffing derives the labour a hotel needs from its volumes and
// compares it with the payroll the deal carries.
package staffing

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Function identifies one staffed operating function.
type Function struct {
	Department string `yaml:"department" json:"department"`
	Role       string `yaml:"role" json:"role"`
	// Departments and Keywords select the payroll roles providing this
	// function: department equal to one of Departments and title containing
	// one of Keywords, both case-insensitive.
	Departments []string `yaml:"departments" json:"departments"`
	Keywords    []string `yaml:"keywords" json:"keywords"`
}

// FrontOfficeAssumptions covers the reception desk.
type FrontOfficeAssumptions struct {
	Function `yaml:",inline"`

	DayPosts   float64 `yaml:"day_posts" json:"day_posts"`
	NightPosts float64 `yaml:"night_posts" json:"night_posts"`
}

// HousekeepingAssumptions covers room attendants.
type HousekeepingAssumptions struct {
	Function `yaml:",inline"`

	RoomsPerAttendant float64 `yaml:"rooms_per_attendant" json:"rooms_per_attendant"`
	ShiftHours        float64 `yaml:"shift_hours" json:"shift_hours"`
	// Realistic rooms cleaned per provided FTE per day.
	MinRoomsPerFTE float64 `yaml:"min_rooms_per_fte" json:"min_rooms_per_fte"`
	MaxRoomsPerFTE float64 `yaml:"max_rooms_per_fte" json:"max_rooms_per_fte"`
}

// ServicePeriod is one meal period an F&B function works.
type ServicePeriod struct {
	MealPeriod string  `yaml:"meal_period" json:"meal_period"`
	Hours      float64 `yaml:"hours" json:"hours"`
	// Throughput is the covers one staff member handles in the period.
	Throughput float64 `yaml:"throughput" json:"throughput"`
}

// FnBFunctionAssumptions covers service, kitchen and bar.
type FnBFunctionAssumptions struct {
	Function `yaml:",inline"`

	Periods []ServicePeriod `yaml:"periods" json:"periods"`
}

// SpaAssumptions covers therapists.
type SpaAssumptions struct {
	Function `yaml:",inline"`

	TreatmentDurationHours float64 `yaml:"treatment_duration_hours" json:"treatment_duration_hours"`
}

// Bands classify a gap; they apply uniformly to every department.
type Bands struct {
	Critical     float64 `yaml:"critical" json:"critical"`
	Understaffed float64 `yaml:"understaffed" json:"understaffed"`
	Overstaffed  float64 `yaml:"overstaffed" json:"overstaffed"`
}

// Assumptions parameterise the staffing model.
type Assumptions struct {
	HoursPerWeek float64 `yaml:"hours_per_week" json:"hours_per_week"`
	// Utilization is the productive share of paid hours (holidays, sick
	// leave, training). Always below 1.
	Utilization float64 `yaml:"utilization" json:"utilization"`

	FrontOffice  FrontOfficeAssumptions   `yaml:"front_office" json:"front_office"`
	Housekeeping HousekeepingAssumptions  `yaml:"housekeeping" json:"housekeeping"`
	FnB          []FnBFunctionAssumptions `yaml:"fnb" json:"fnb"`
	Spa          SpaAssumptions           `yaml:"spa" json:"spa"`
	Bands        Bands                    `yaml:"bands" json:"bands"`

	// FrontOfficeGapFlag is the gap from which 24/7 coverage is impossible.
	FrontOfficeGapFlag float64 `yaml:"front_office_gap_flag" json:"front_office_gap_flag"`
}

// ProductiveHours per FTE per week.
func (a Assumptions) ProductiveHours() float64 {
	return a.HoursPerWeek * a.Utilization
}

var fnbDepartments = []string{"F&B", "Food & Beverage", "Food and Beverage", "Restaurant", "Kitchen", "Bar"}

// DefaultAssumptions returns market-typical values for a limited-service
// European property.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		HoursPerWeek: 40,
		Utilization:  0.85,
		FrontOffice: FrontOfficeAssumptions{
			Function: Function{
				Department:  "Front Office",
				Role:        "Reception",
				Departments: []string{"Front Office", "Rooms", "Reception"},
				Keywords:    []string{"reception", "front desk", "night", "concierge", "guest service"},
			},
			DayPosts:   1,
			NightPosts: 1,
		},
		Housekeeping: HousekeepingAssumptions{
			Function: Function{
				Department:  "Housekeeping",
				Role:        "Room Attendants",
				Departments: []string{"Housekeeping", "Rooms"},
				Keywords:    []string{"housekeep", "attendant", "maid", "cleaner"},
			},
			RoomsPerAttendant: 14,
			ShiftHours:        8,
			MinRoomsPerFTE:    5,
			MaxRoomsPerFTE:    15,
		},
		FnB: []FnBFunctionAssumptions{
			{
				Function: Function{
					Department:  "F&B",
					Role:        "Service",
					Departments: fnbDepartments,
					Keywords:    []string{"waiter", "waitress", "server", "host", "service"},
				},
				Periods: []ServicePeriod{
					{MealPeriod: "Breakfast", Hours: 4, Throughput: 20},
					{MealPeriod: "Lunch", Hours: 4, Throughput: 15},
					{MealPeriod: "Dinner", Hours: 5, Throughput: 15},
				},
			},
			{
				Function: Function{
					Department:  "F&B",
					Role:        "Kitchen",
					Departments: fnbDepartments,
					Keywords:    []string{"chef", "cook", "kitchen", "steward"},
				},
				Periods: []ServicePeriod{
					{MealPeriod: "Breakfast", Hours: 4, Throughput: 40},
					{MealPeriod: "Lunch", Hours: 5, Throughput: 25},
					{MealPeriod: "Dinner", Hours: 6, Throughput: 25},
				},
			},
			{
				Function: Function{
					Department:  "F&B",
					Role:        "Bar",
					Departments: fnbDepartments,
					Keywords:    []string{"bar", "mixolog", "sommelier"},
				},
				Periods: []ServicePeriod{
					{MealPeriod: "Dinner", Hours: 6, Throughput: 40},
				},
			},
		},
		Spa: SpaAssumptions{
			Function: Function{
				Department:  "Spa",
				Role:        "Therapists",
				Departments: []string{"Spa", "Wellness", "Leisure"},
				Keywords:    []string{"therap", "spa", "massage", "beauty"},
			},
			TreatmentDurationHours: 1,
		},
		Bands: Bands{
			Critical:     2,
			Understaffed: 0.5,
			Overstaffed:  -1,
		},
		FrontOfficeGapFlag: 1,
	}
}

// LoadAssumptions reads a YAML file over the defaults: keys absent from the
// file keep their default value, lists present in the file replace the
// default list.
func LoadAssumptions(path string) (Assumptions, error) {
	a := DefaultAssumptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return a, fmt.Errorf("failed to read staffing assumptions: %w", err)
	}
	if err := ParseAssumptions(data, &a); err != nil {
		return DefaultAssumptions(), err
	}
	return a, nil
}

// ParseAssumptions decodes YAML into a, which should already hold defaults.
func ParseAssumptions(data []byte, a *Assumptions) error {
	if err := yaml.Unmarshal(data, a); err != nil {
		return fmt.Errorf("failed to parse staffing assumptions: %w", err)
	}
	if a.Utilization <= 0 || a.Utilization >= 1 {
		return fmt.Errorf("utilization must be in (0, 1), got %v", a.Utilization)
	}
	if a.HoursPerWeek <= 0 || a.HoursPerWeek > 168 {
		return fmt.Errorf("hours_per_week must be in (0, 168], got %v", a.HoursPerWeek)
	}
	return nil
}
