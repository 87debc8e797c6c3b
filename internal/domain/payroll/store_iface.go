package payroll

import (
	"context"

	"staffpay/internal/domain/employee"
)

// Repository persists payroll snapshots. Save always inserts a new row and
// assigns its ID; snapshots are never updated. FindByID returns an error
// matching apperr.ErrNotFound for unknown ids.
type Repository interface {
	Save(ctx context.Context, p Payroll) (Payroll, error)
	FindByID(ctx context.Context, id string) (Payroll, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Payroll, error)
	FindByMonthAndYear(ctx context.Context, month string, year int) ([]Payroll, error)
	FindByEmployeeAndMonthAndYear(ctx context.Context, employeeID, month string, year int) ([]Payroll, error)
}

// Employees is the part of the employee repository payroll needs.
type Employees interface {
	FindByID(ctx context.Context, id string) (employee.Employee, error)
	FindByDepartment(ctx context.Context, department string) ([]employee.Employee, error)
}
