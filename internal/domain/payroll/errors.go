package payroll

import (
	"errors"
	"fmt"

	"staffpay/internal/domain/apperr"
)

var (
	ErrEmployeeIDRequired  = apperr.InvalidInput("employee ID cannot be null")
	ErrPayrollIDRequired   = apperr.InvalidInput("payroll ID cannot be null")
	ErrMonthRequired       = apperr.InvalidInput("month cannot be null or empty")
	ErrYearRequired        = apperr.InvalidInput("year cannot be null")
	ErrDepartmentRequired  = apperr.InvalidInput("department cannot be null or empty")
	ErrSalaryRequired      = apperr.InvalidInput("salary cannot be null")
	ErrAllowancesRequired  = apperr.InvalidInput("allowances cannot be null")
	ErrDeductionsRequired  = apperr.InvalidInput("deductions cannot be null")
	ErrPayslipsUnavailable = errors.New("payslip rendering is not configured")
)

// NotFoundError is what repositories return for an unknown payroll id.
func NotFoundError(id string) error {
	return apperr.NotFound("Payroll", "ID", id)
}

func periodNotFound(employeeID, month string, year int) error {
	return apperr.NotFound("Payroll", "employee/period", fmt.Sprintf("%s %s %d", employeeID, month, year))
}
