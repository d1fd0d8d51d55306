// Package cost aggregates the payroll and operating-expense models of a deal
// into stabilized-year amounts.
package cost

import (
	"sort"

	"github.com/samber/lo"

	"hotel_underwriting/pkg/core/calc"
	"hotel_underwriting/pkg/models"
)

// RoleCost is the loaded annual cost of one payroll role.
type RoleCost struct {
	Department string  `json:"department"`
	Title      string  `json:"title"`
	FTE        float64 `json:"fte"`
	AnnualCost float64 `json:"annual_cost"`
}

// DepartmentCost rolls the roles of one department up.
type DepartmentCost struct {
	Department string  `json:"department"`
	FTE        float64 `json:"fte"`
	AnnualCost float64 `json:"annual_cost"`
}

// PayrollResult is the company-wide payroll for a stabilized year.
type PayrollResult struct {
	Roles       []RoleCost       `json:"roles"`
	Departments []DepartmentCost `json:"departments"`
	TotalFTE    float64          `json:"total_fte"`
	AnnualCost  float64          `json:"annual_cost"`
	MonthlyCost float64          `json:"monthly_cost"`
	CostPerRoom float64          `json:"cost_per_room"`
}

// RoleAnnualCost is FTE × base salary × (1 + employer-cost%).
func RoleAnnualCost(r models.PayrollRole) float64 {
	return calc.Finite(r.FTE * r.BaseSalary * (1 + calc.Pct(r.EmployerCostPct)))
}

// ComputePayroll prices every role and rolls the result up by department.
// Departments are returned in name order.
func ComputePayroll(model *models.PayrollModel, rooms int) PayrollResult {
	res := PayrollResult{Roles: []RoleCost{}, Departments: []DepartmentCost{}}
	if model == nil {
		return res
	}

	res.Roles = lo.Map(model.Roles, func(r models.PayrollRole, _ int) RoleCost {
		return RoleCost{
			Department: r.Department,
			Title:      r.Title,
			FTE:        r.FTE,
			AnnualCost: RoleAnnualCost(r),
		}
	})

	byDept := lo.GroupBy(res.Roles, func(rc RoleCost) string { return rc.Department })
	for dept, roles := range byDept {
		res.Departments = append(res.Departments, DepartmentCost{
			Department: dept,
			FTE:        lo.SumBy(roles, func(rc RoleCost) float64 { return rc.FTE }),
			AnnualCost: lo.SumBy(roles, func(rc RoleCost) float64 { return rc.AnnualCost }),
		})
	}
	sort.Slice(res.Departments, func(i, j int) bool {
		return res.Departments[i].Department < res.Departments[j].Department
	})

	res.TotalFTE = lo.SumBy(res.Departments, func(d DepartmentCost) float64 { return d.FTE })
	res.AnnualCost = lo.SumBy(res.Departments, func(d DepartmentCost) float64 { return d.AnnualCost })
	res.MonthlyCost = res.AnnualCost / 12
	res.CostPerRoom = calc.SafeDivide(res.AnnualCost, float64(rooms))
	return res
}

// Department returns the roll-up for one department, or a zero value.
func (p PayrollResult) Department(name string) DepartmentCost {
	d, _ := lo.Find(p.Departments, func(d DepartmentCost) bool { return d.Department == name })
	return d
}
