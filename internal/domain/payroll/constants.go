package payroll

const (
	StatusProcessed = "PROCESSED"

	DefaultAllowances = 2000.0
	DefaultDeductions = 500.0
)
