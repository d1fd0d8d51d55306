package models

// SampleDeal returns a complete 20-room deal. It backs the calc-engine
// "sample" mode and the engine tests.
func SampleDeal() *Deal {
	return &Deal{
		ID:       "sample-20-room",
		Name:     "Harbour Boutique Hotel",
		Currency: "EUR",
		Property: Property{
			Rooms:         20,
			GFA:           1_400,
			PurchasePrice: 2_000_000,
			Country:       "PT",
			CalendarYear:  2025,
		},
		Budget: &Budget{Lines: []BudgetLine{
			{Category: "Renovation", Amount: 300_000},
			{Category: "FF&E", Amount: 100_000},
		}},
		Rooms: &RoomsModel{
			RoomTypes: []RoomType{
				{Name: "Standard", Count: 15, ADR: 120},
				{Name: "Suite", Count: 5, ADR: 220},
			},
			OccupancyPct: 72,
		},
		FnB: &FnBModel{
			GuestsPerRoom: 1.6,
			MealPeriods: []MealPeriod{
				{Name: "Breakfast", CapturePct: 75, AvgCheck: 18},
				{Name: "Dinner", CapturePct: 25, AvgCheck: 45, ExternalCoversPerDay: 8, AvgExternalCheck: 50},
			},
		},
		OtherRevenue: &OtherRevenueModel{
			Spa:            SpaModel{TreatmentsPerDay: 6, AvgPrice: 85},
			Mode:           OtherPercentOfRooms,
			PercentOfRooms: 3,
		},
		Payroll: &PayrollModel{Roles: []PayrollRole{
			{Department: "Front Office", Title: "Receptionist", FTE: 4.5, BaseSalary: 24_000, EmployerCostPct: 24},
			{Department: "Front Office", Title: "Night Auditor", FTE: 1, BaseSalary: 25_000, EmployerCostPct: 24},
			{Department: "Housekeeping", Title: "Room Attendant", FTE: 4, BaseSalary: 19_000, EmployerCostPct: 24},
			{Department: "Housekeeping", Title: "Housekeeping Supervisor", FTE: 1, BaseSalary: 23_000, EmployerCostPct: 24},
			{Department: "F&B", Title: "Chef", FTE: 1, BaseSalary: 36_000, EmployerCostPct: 24},
			{Department: "F&B", Title: "Cook", FTE: 2, BaseSalary: 22_000, EmployerCostPct: 24},
			{Department: "F&B", Title: "Waiter", FTE: 3, BaseSalary: 19_000, EmployerCostPct: 24},
			{Department: "F&B", Title: "Bartender", FTE: 1, BaseSalary: 20_000, EmployerCostPct: 24},
			{Department: "Spa", Title: "Spa Therapist", FTE: 2, BaseSalary: 21_000, EmployerCostPct: 24},
			{Department: "Administration", Title: "General Manager", FTE: 1, BaseSalary: 60_000, EmployerCostPct: 24},
		}},
		Opex: &OpexState{Items: []OpexItem{
			{Name: "Commissions", Section: SectionDirect, Driver: DriverPctRoomsRevenue, Value: 12},
			{Name: "Guest amenities", Section: SectionDirect, Driver: DriverPerRoomNightSold, Value: 6},
			{Name: "F&B cost of sales", Section: SectionDirect, Driver: DriverPctFnBRevenue, Value: 30},
			{Name: "Spa consumables", Section: SectionDirect, Driver: DriverPctOtherRevenue, Value: 10},
			{Name: "Sales & marketing", Section: SectionIndirect, Driver: DriverPctTotalRevenue, Value: 4},
			{Name: "Utilities", Section: SectionIndirect, Driver: DriverFixedPerMonth, Value: 4_500},
			{Name: "Repairs & maintenance", Section: SectionIndirect, Driver: DriverPctTotalRevenue, Value: 3},
			{Name: "Management fee", Section: SectionOther, Driver: DriverPctTotalRevenue, Value: 3},
			{Name: "Insurance & property tax", Section: SectionOther, Driver: DriverFixedPerMonth, Value: 2_500},
		}},
		Assumptions: &Assumptions{
			Ramp: RampSettings{
				RevenueRamp:      []float64{0.8, 0.9, 1, 1},
				CostRamp:         []float64{1.1, 1.05, 1, 1},
				ToplineGrowthPct: 3,
				InflationPct:     2,
				DepreciationPct:  3,
			},
			Financing: &FinancingSettings{
				LTCPct:          60,
				InterestRatePct: 6,
				AmortYears:      20,
				LoanTermYears:   10,
				IOPeriodYears:   2,
			},
			Exit: ExitSettings{
				Strategy:        ExitSale,
				ExitYear:        7,
				ExitCapRatePct:  8,
				SellingCostsPct: 2,
			},
			TaxRatePct:          25,
			DiscountRatePct:     10,
			TargetLeveredIRRPct: 15,
		},
	}
}
