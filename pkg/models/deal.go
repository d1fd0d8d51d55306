package models

import (
	"time"
)

// ExitStrategy selects the terminal event of the hold period.
type ExitStrategy string

const (
	ExitSale        ExitStrategy = "SALE"
	ExitRefinance   ExitStrategy = "REFINANCE"
	ExitHoldForever ExitStrategy = "HOLD_FOREVER"
)

// DefaultHorizonYears is the analysis horizon used when a deal does not set one (y0..y10).
const DefaultHorizonYears = 10

// Deal is the root aggregate handed to the engine. The engine treats it as an
// immutable snapshot: nothing below pkg/core writes to it.
type Deal struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Currency  string    `json:"currency" yaml:"currency"`
	UpdatedAt time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`

	Property Property `json:"property" yaml:"property"`
	Budget   *Budget  `json:"budget,omitempty" yaml:"budget,omitempty"`

	Rooms        *RoomsModel        `json:"rooms,omitempty" yaml:"rooms,omitempty"`
	FnB          *FnBModel          `json:"fnb,omitempty" yaml:"fnb,omitempty"`
	OtherRevenue *OtherRevenueModel `json:"other_revenue,omitempty" yaml:"other_revenue,omitempty"`
	Payroll      *PayrollModel      `json:"payroll,omitempty" yaml:"payroll,omitempty"`
	Opex         *OpexState         `json:"opex,omitempty" yaml:"opex,omitempty"`

	Assumptions *Assumptions `json:"assumptions,omitempty" yaml:"assumptions,omitempty"`
}

// Property holds the physical and acquisition facts of the hotel.
type Property struct {
	Rooms         int     `json:"rooms" yaml:"rooms"`
	GFA           float64 `json:"gfa" yaml:"gfa"` // Gross floor area, m2
	PurchasePrice float64 `json:"purchase_price" yaml:"purchase_price"`
	Country       string  `json:"country,omitempty" yaml:"country,omitempty"`
	CalendarYear  int     `json:"calendar_year,omitempty" yaml:"calendar_year,omitempty"` // First operating year, drives days-in-month
}

// BudgetLine is one CapEx category (renovation, FF&E, soft costs...).
type BudgetLine struct {
	Category string  `json:"category" yaml:"category"`
	Amount   float64 `json:"amount" yaml:"amount"`
}

// Budget is the CapEx breakdown spent at acquisition (year 0).
type Budget struct {
	Lines      []BudgetLine `json:"lines,omitempty" yaml:"lines,omitempty"`
	GrandTotal float64      `json:"grand_total" yaml:"grand_total"`
}

// Total returns GrandTotal, or the sum of the lines when no grand total was entered.
func (b *Budget) Total() float64 {
	if b == nil {
		return 0
	}
	if b.GrandTotal != 0 {
		return b.GrandTotal
	}
	total := 0.0
	for _, l := range b.Lines {
		total += l.Amount
	}
	return total
}

// ProjectCost is the all-in acquisition cost: purchase price plus CapEx budget.
func (d *Deal) ProjectCost() float64 {
	if d == nil {
		return 0
	}
	return d.Property.PurchasePrice + d.Budget.Total()
}

// Assumptions bundles the macro, financing and exit settings.
type Assumptions struct {
	Ramp         RampSettings       `json:"ramp" yaml:"ramp"`
	Financing    *FinancingSettings `json:"financing,omitempty" yaml:"financing,omitempty"`
	Exit         ExitSettings       `json:"exit" yaml:"exit"`
	TaxRatePct   float64            `json:"tax_rate_pct" yaml:"tax_rate_pct"`
	HorizonYears int                `json:"horizon_years,omitempty" yaml:"horizon_years,omitempty"`

	// Optional return targets used by the valuation KPIs.
	DiscountRatePct     float64 `json:"discount_rate_pct,omitempty" yaml:"discount_rate_pct,omitempty"`
	TargetLeveredIRRPct float64 `json:"target_levered_irr_pct,omitempty" yaml:"target_levered_irr_pct,omitempty"`
}

// RampSettings drives the year-indexed multipliers.
// RevenueRamp and CostRamp are expected to carry exactly 4 entries (years 1-4).
type RampSettings struct {
	RevenueRamp      []float64 `json:"revenue_ramp" yaml:"revenue_ramp"` // e.g. [0.8, 0.9, 1, 1]
	CostRamp         []float64 `json:"cost_ramp" yaml:"cost_ramp"`       // >= 1 in early years
	ToplineGrowthPct float64   `json:"topline_growth_pct" yaml:"topline_growth_pct"`
	InflationPct     float64   `json:"inflation_pct" yaml:"inflation_pct"`
	DepreciationPct  float64   `json:"depreciation_pct" yaml:"depreciation_pct"` // % of project cost per year
}

// FinancingSettings describes the acquisition loan.
// IOPeriodYears <= LoanTermYears is a caller precondition; it is not checked.
type FinancingSettings struct {
	LTCPct          float64 `json:"ltc_pct" yaml:"ltc_pct"`
	InterestRatePct float64 `json:"interest_rate_pct" yaml:"interest_rate_pct"`
	AmortYears      int     `json:"amort_years" yaml:"amort_years"`
	LoanTermYears   int     `json:"loan_term_years" yaml:"loan_term_years"`
	IOPeriodYears   int     `json:"io_period_years" yaml:"io_period_years"`
}

// ExitSettings carries the fields of all three strategies; only the ones
// belonging to Strategy are read.
type ExitSettings struct {
	Strategy ExitStrategy `json:"strategy" yaml:"strategy"`

	// SALE
	ExitYear        int     `json:"exit_year,omitempty" yaml:"exit_year,omitempty"`
	ExitCapRatePct  float64 `json:"exit_cap_rate_pct,omitempty" yaml:"exit_cap_rate_pct,omitempty"`
	SellingCostsPct float64 `json:"selling_costs_pct,omitempty" yaml:"selling_costs_pct,omitempty"`

	// REFINANCE (valued at ExitCapRatePct)
	RefinanceYear     int     `json:"refinance_year,omitempty" yaml:"refinance_year,omitempty"`
	RefinanceLTVPct   float64 `json:"refinance_ltv_pct,omitempty" yaml:"refinance_ltv_pct,omitempty"`
	RefinanceCostsPct float64 `json:"refinance_costs_pct,omitempty" yaml:"refinance_costs_pct,omitempty"`
}

// RoomType is one line of the room mix.
type RoomType struct {
	Name   string  `json:"name" yaml:"name"`
	Count  int     `json:"count" yaml:"count"`
	ADR    float64 `json:"adr" yaml:"adr"`
	Weight float64 `json:"weight,omitempty" yaml:"weight,omitempty"` // Share of sold nights; falls back to Count
}

// RoomsModel configures rooms revenue for a stabilized year.
type RoomsModel struct {
	RoomTypes    []RoomType `json:"room_types" yaml:"room_types"`
	OccupancyPct float64    `json:"occupancy_pct" yaml:"occupancy_pct"`
	// Optional seasonality; when set, month m uses MonthlyOccupancyPct[m] instead of OccupancyPct.
	MonthlyOccupancyPct []float64 `json:"monthly_occupancy_pct,omitempty" yaml:"monthly_occupancy_pct,omitempty"`
}

// MealPeriod is one F&B outlet/service period (breakfast, lunch, dinner, bar...).
type MealPeriod struct {
	Name                 string  `json:"name" yaml:"name"`
	CapturePct           float64 `json:"capture_pct" yaml:"capture_pct"`
	AvgCheck             float64 `json:"avg_check" yaml:"avg_check"`
	ExternalCoversPerDay float64 `json:"external_covers_per_day" yaml:"external_covers_per_day"`
	AvgExternalCheck     float64 `json:"avg_external_check" yaml:"avg_external_check"`
}

// FnBModel configures food & beverage revenue.
type FnBModel struct {
	GuestsPerRoom float64      `json:"guests_per_room" yaml:"guests_per_room"`
	MealPeriods   []MealPeriod `json:"meal_periods" yaml:"meal_periods"`
}

// OtherRevenueMode selects how "other" revenue is derived. The two modes are exclusive.
type OtherRevenueMode string

const (
	OtherPercentOfRooms OtherRevenueMode = "PERCENT_OF_ROOMS"
	OtherFixedMonthly   OtherRevenueMode = "FIXED_MONTHLY"
)

// SpaModel configures spa revenue.
type SpaModel struct {
	TreatmentsPerDay float64 `json:"treatments_per_day" yaml:"treatments_per_day"`
	AvgPrice         float64 `json:"avg_price" yaml:"avg_price"`
}

// OtherRevenueModel configures spa and miscellaneous revenue.
type OtherRevenueModel struct {
	Spa            SpaModel         `json:"spa" yaml:"spa"`
	Mode           OtherRevenueMode `json:"mode" yaml:"mode"`
	PercentOfRooms float64          `json:"percent_of_rooms,omitempty" yaml:"percent_of_rooms,omitempty"`
	FixedMonthly   float64          `json:"fixed_monthly,omitempty" yaml:"fixed_monthly,omitempty"`
}

// PayrollRole is one position in the staffing plan.
type PayrollRole struct {
	Department      string  `json:"department" yaml:"department"`
	Title           string  `json:"title" yaml:"title"`
	FTE             float64 `json:"fte" yaml:"fte"`
	BaseSalary      float64 `json:"base_salary" yaml:"base_salary"`
	EmployerCostPct float64 `json:"employer_cost_pct" yaml:"employer_cost_pct"`
}

// PayrollModel is the configured staffing plan for a stabilized year.
type PayrollModel struct {
	Roles []PayrollRole `json:"roles" yaml:"roles"`
}

// OpexSection groups expense lines on the USALI-style statement.
type OpexSection string

const (
	SectionDirect   OpexSection = "DIRECT"
	SectionIndirect OpexSection = "INDIRECT"
	SectionOther    OpexSection = "OTHER"
)

// OpexDriver declares what an expense line is computed from.
type OpexDriver string

const (
	DriverPctRoomsRevenue  OpexDriver = "PCT_ROOMS_REVENUE"
	DriverPctFnBRevenue    OpexDriver = "PCT_FNB_REVENUE"
	DriverPctOtherRevenue  OpexDriver = "PCT_OTHER_REVENUE"
	DriverPctTotalRevenue  OpexDriver = "PCT_TOTAL_REVENUE"
	DriverPerRoomNightSold OpexDriver = "PER_ROOM_NIGHT_SOLD"
	DriverFixedPerMonth    OpexDriver = "FIXED_PER_MONTH"
)

// OpexItem is one operating expense line.
type OpexItem struct {
	Name    string      `json:"name" yaml:"name"`
	Section OpexSection `json:"section" yaml:"section"`
	Driver  OpexDriver  `json:"driver" yaml:"driver"`
	Value   float64     `json:"value" yaml:"value"` // Percent (0-100), amount per room night, or amount per month
}

// OpexState holds the configured expense lines.
type OpexState struct {
	Items []OpexItem `json:"items" yaml:"items"`
}

// Horizon is the last projected year index. It defaults to
// DefaultHorizonYears and stretches to a later SALE exit year.
func (d *Deal) Horizon() int {
	years := DefaultHorizonYears
	if d == nil || d.Assumptions == nil {
		return years
	}
	if d.Assumptions.HorizonYears > 0 {
		years = d.Assumptions.HorizonYears
	}
	if ex := d.Assumptions.Exit; ex.Strategy == ExitSale && ex.ExitYear > years {
		years = ex.ExitYear
	}
	return years
}

// TerminalYear is the last year returns are measured through: the exit year
// of a SALE, the horizon otherwise.
func (d *Deal) TerminalYear() int {
	if d != nil && d.Assumptions != nil {
		if ex := d.Assumptions.Exit; ex.Strategy == ExitSale && ex.ExitYear > 0 {
			return ex.ExitYear
		}
	}
	return d.Horizon()
}
