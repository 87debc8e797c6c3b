package payroll

import (
	"github.com/shopspring/decimal"

	"staffpay/internal/domain/employee"
)

// Policy decides the allowances and deductions applied on top of a basic salary.
type Policy interface {
	Allowances(e employee.Employee, basicSalary float64) float64
	Deductions(e employee.Employee, basicSalary float64) float64
}

// FixedPolicy applies the same amounts to every employee.
type FixedPolicy struct {
	Allowance float64
	Deduction float64
}

var DefaultPolicy = FixedPolicy{Allowance: DefaultAllowances, Deduction: DefaultDeductions}

func (p FixedPolicy) Allowances(employee.Employee, float64) float64 { return p.Allowance }

func (p FixedPolicy) Deductions(employee.Employee, float64) float64 { return p.Deduction }

// HandleAllowances returns salary + allowances.
func HandleAllowances(salary, allowances *float64) (float64, error) {
	if salary == nil {
		return 0, ErrSalaryRequired
	}
	if allowances == nil {
		return 0, ErrAllowancesRequired
	}
	return decimal.NewFromFloat(*salary).Add(decimal.NewFromFloat(*allowances)).InexactFloat64(), nil
}

// HandleDeductions returns salary - deductions.
func HandleDeductions(salary, deductions *float64) (float64, error) {
	if salary == nil {
		return 0, ErrSalaryRequired
	}
	if deductions == nil {
		return 0, ErrDeductionsRequired
	}
	return decimal.NewFromFloat(*salary).Sub(decimal.NewFromFloat(*deductions)).InexactFloat64(), nil
}

// ComputeNet composes the two primitives: basic + allowances - deductions.
func ComputeNet(basicSalary, allowances, deductions float64) float64 {
	gross, _ := HandleAllowances(&basicSalary, &allowances)
	net, _ := HandleDeductions(&gross, &deductions)
	return net
}

// RecomputeNet derives the net salary from the snapshot's own figures.
func (p Payroll) RecomputeNet() float64 {
	return ComputeNet(p.BasicSalary, p.Allowances, p.Deductions)
}

// Summarize totals a set of snapshots for one period.
func Summarize(month string, year int, payrolls []Payroll) PeriodSummary {
	var basic, allowances, deductions, net decimal.Decimal
	for _, p := range payrolls {
		basic = basic.Add(decimal.NewFromFloat(p.BasicSalary))
		allowances = allowances.Add(decimal.NewFromFloat(p.Allowances))
		deductions = deductions.Add(decimal.NewFromFloat(p.Deductions))
		net = net.Add(decimal.NewFromFloat(p.NetSalary))
	}
	return PeriodSummary{
		Month:           month,
		Year:            year,
		TotalBasic:      basic.InexactFloat64(),
		TotalAllowances: allowances.InexactFloat64(),
		TotalDeductions: deductions.InexactFloat64(),
		TotalNet:        net.InexactFloat64(),
		PayrollCount:    len(payrolls),
	}
}
