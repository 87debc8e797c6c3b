package employee

import "github.com/shopspring/decimal"

var (
	fullTimeUplift      = decimal.RequireFromString("0.15")
	projectBonus        = decimal.NewFromInt(1000)
	bugBonus            = decimal.NewFromInt(50)
	managedEmployeeRate = decimal.NewFromInt(200)
)

// CalculateSalary applies the salary rule of the employee's variant.
// Absent numeric fields contribute zero; it never fails.
func CalculateSalary(e Employee) float64 {
	return Salary(e).InexactFloat64()
}

// Salary is CalculateSalary in decimal form, for callers that keep composing amounts.
func Salary(e Employee) decimal.Decimal {
	base := amount(e.BaseSalary)

	switch v := e.Variant.(type) {
	case FullTime:
		return base.Add(base.Mul(fullTimeUplift))
	case PartTime:
		if v.HourlyRate == nil || v.HoursWorked == nil || *v.HourlyRate <= 0 || *v.HoursWorked <= 0 {
			return decimal.Zero
		}
		return decimal.NewFromFloat(*v.HourlyRate).Mul(decimal.NewFromInt(int64(*v.HoursWorked)))
	case Contract:
		if v.ContractAmount == nil {
			return decimal.Zero
		}
		months := int64(1)
		if v.ContractDuration != nil && *v.ContractDuration > 0 {
			months = int64(*v.ContractDuration)
		}
		return decimal.NewFromFloat(*v.ContractAmount).Div(decimal.NewFromInt(months))
	case Developer:
		return base.Add(count(v.ProjectsCompleted).Mul(projectBonus))
	case Tester:
		return base.Add(count(v.BugsFound).Mul(bugBonus))
	case HR:
		return base.Add(count(v.EmployeesManaged).Mul(managedEmployeeRate))
	default:
		return base
	}
}

func amount(v *float64) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*v)
}

func count(v *int) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(*v))
}
