package attendance

import (
	"context"
	"strings"
	"time"

	"staffpay/internal/domain/apperr"
)

type Service struct {
	repo      Repository
	employees Employees
	Now       func() time.Time
}

func NewService(repo Repository, employees Employees) *Service {
	return &Service{repo: repo, employees: employees, Now: time.Now}
}

// TrackAttendance opens a record for the employee on date with the current time
// as check-in. A zero date means the day of the check-in.
func (s *Service) TrackAttendance(ctx context.Context, employeeID string, date time.Time, status string) (Attendance, error) {
	if strings.TrimSpace(employeeID) == "" {
		return Attendance{}, ErrEmployeeIDRequired
	}
	exists, err := s.employees.ExistsByID(ctx, employeeID)
	if err != nil {
		return Attendance{}, err
	}
	if !exists {
		return Attendance{}, apperr.NotFound("Employee", "ID", employeeID)
	}

	now := s.Now().UTC()
	if date.IsZero() {
		date = now
	}
	checkIn := now
	return s.repo.Save(ctx, Attendance{
		EmployeeID: employeeID,
		Date:       Day(date),
		Status:     status,
		CheckIn:    &checkIn,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

// MarkCheckOut stamps the check-out time and derives worked hours. Records
// without a check-in keep WorkedHours unset.
func (s *Service) MarkCheckOut(ctx context.Context, attendanceID string) (Attendance, error) {
	if strings.TrimSpace(attendanceID) == "" {
		return Attendance{}, ErrAttendanceIDRequired
	}
	record, err := s.repo.FindByID(ctx, attendanceID)
	if err != nil {
		return Attendance{}, err
	}

	now := s.Now().UTC()
	record.CheckOut = &now
	if record.CheckIn != nil {
		hours := WorkedHours(*record.CheckIn, now)
		record.WorkedHours = &hours
	}
	record.UpdatedAt = now
	return s.repo.Save(ctx, record)
}

func (s *Service) GetEmployeeAttendanceLogs(ctx context.Context, employeeID string) ([]Attendance, error) {
	if strings.TrimSpace(employeeID) == "" {
		return nil, ErrEmployeeIDRequired
	}
	return s.repo.FindByEmployee(ctx, employeeID)
}

func (s *Service) GetAttendanceByDate(ctx context.Context, date time.Time) ([]Attendance, error) {
	if date.IsZero() {
		return nil, ErrDateRequired
	}
	return s.repo.FindByDate(ctx, Day(date))
}

func (s *Service) GetEmployeeAttendanceOnDate(ctx context.Context, employeeID string, date time.Time) ([]Attendance, error) {
	if strings.TrimSpace(employeeID) == "" {
		return nil, ErrEmployeeIDRequired
	}
	if date.IsZero() {
		return nil, ErrDateRequired
	}
	return s.repo.FindByEmployeeAndDate(ctx, employeeID, Day(date))
}
