package payroll

import "time"

// Payroll is an immutable snapshot of one employee's pay for a period.
type Payroll struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employeeId"`
	Month       string    `json:"month"`
	Year        int       `json:"year"`
	BasicSalary float64   `json:"basicSalary"`
	Allowances  float64   `json:"allowances"`
	Deductions  float64   `json:"deductions"`
	NetSalary   float64   `json:"netSalary"`
	PaymentDate time.Time `json:"paymentDate"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RegisterRow is one line of the monthly payroll export.
type RegisterRow struct {
	PayrollID    string  `csv:"payroll_id"`
	EmployeeID   string  `csv:"employee_id"`
	EmployeeName string  `csv:"employee_name"`
	Department   string  `csv:"department"`
	EmployeeType string  `csv:"employee_type"`
	Month        string  `csv:"month"`
	Year         int     `csv:"year"`
	BasicSalary  float64 `csv:"basic_salary"`
	Allowances   float64 `csv:"allowances"`
	Deductions   float64 `csv:"deductions"`
	NetSalary    float64 `csv:"net_salary"`
	PaymentDate  string  `csv:"payment_date"`
	Status       string  `csv:"status"`
}

type PeriodSummary struct {
	Month           string  `json:"month"`
	Year            int     `json:"year"`
	TotalBasic      float64 `json:"totalBasic"`
	TotalAllowances float64 `json:"totalAllowances"`
	TotalDeductions float64 `json:"totalDeductions"`
	TotalNet        float64 `json:"totalNet"`
	PayrollCount    int     `json:"payrollCount"`
}
