package attendance

import (
	"context"
	"time"
)

// Repository persists attendance records. FindByID returns an error matching
// apperr.ErrNotFound for unknown ids. Save inserts when the ID is empty.
type Repository interface {
	FindByID(ctx context.Context, id string) (Attendance, error)
	Save(ctx context.Context, a Attendance) (Attendance, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Attendance, error)
	FindByDate(ctx context.Context, date time.Time) ([]Attendance, error)
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]Attendance, error)
}

// Employees is the part of the employee repository attendance needs.
type Employees interface {
	ExistsByID(ctx context.Context, id string) (bool, error)
}
