package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"staffpay/internal/domain/attendance"
)

type AttendanceStore struct {
	db *sql.DB
	mu *sync.RWMutex
}

const attendanceColumns = `
	id, employee_id, attendance_date, COALESCE(status, ''),
	check_in_time, check_out_time, hours_worked, created_at, updated_at`

func scanAttendance(row rowScanner) (attendance.Attendance, error) {
	var (
		a                    attendance.Attendance
		date                 string
		checkIn, checkOut    sql.NullString
		createdAt, updatedAt string
	)
	if err := row.Scan(&a.ID, &a.EmployeeID, &date, &a.Status, &checkIn, &checkOut, &a.WorkedHours, &createdAt, &updatedAt); err != nil {
		return attendance.Attendance{}, err
	}

	var err error
	if a.Date, err = time.Parse(dateLayout, date); err != nil {
		return attendance.Attendance{}, fmt.Errorf("bad attendance date %q: %w", date, err)
	}
	if a.CheckIn, err = parseTimePtr(checkIn); err != nil {
		return attendance.Attendance{}, err
	}
	if a.CheckOut, err = parseTimePtr(checkOut); err != nil {
		return attendance.Attendance{}, err
	}
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return attendance.Attendance{}, err
	}
	if a.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return attendance.Attendance{}, err
	}
	return a, nil
}

func (s *AttendanceStore) FindByID(ctx context.Context, id string) (attendance.Attendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, err := scanAttendance(s.db.QueryRowContext(ctx,
		"SELECT "+attendanceColumns+" FROM attendance WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return attendance.Attendance{}, attendance.NotFoundError(id)
	}
	return a, err
}

func (s *AttendanceStore) Save(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.Date = attendance.Day(a.Date)
	if a.ID == "" {
		a.ID = uuid.NewString()
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO attendance
			(id, employee_id, attendance_date, status, check_in_time, check_out_time, hours_worked, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, a.ID, a.EmployeeID, a.Date.Format(dateLayout), nullString(a.Status),
			formatTimePtr(a.CheckIn), formatTimePtr(a.CheckOut), a.WorkedHours,
			formatTime(a.CreatedAt), formatTime(a.UpdatedAt))
		if err != nil {
			return attendance.Attendance{}, fmt.Errorf("failed to insert attendance: %w", err)
		}
		return a, nil
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE attendance
		SET attendance_date = ?, status = ?, check_in_time = ?, check_out_time = ?,
		    hours_worked = ?, updated_at = ?
		WHERE id = ?
	`, a.Date.Format(dateLayout), nullString(a.Status),
		formatTimePtr(a.CheckIn), formatTimePtr(a.CheckOut), a.WorkedHours,
		formatTime(a.UpdatedAt), a.ID)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return attendance.Attendance{}, attendance.NotFoundError(a.ID)
	}
	return a, nil
}

func (s *AttendanceStore) FindByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendance
		WHERE employee_id = ?
		ORDER BY attendance_date, created_at
	`, employeeID)
}

func (s *AttendanceStore) FindByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendance
		WHERE attendance_date = ?
		ORDER BY created_at
	`, attendance.Day(date).Format(dateLayout))
}

func (s *AttendanceStore) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]attendance.Attendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendance
		WHERE employee_id = ? AND attendance_date = ?
		ORDER BY created_at
	`, employeeID, attendance.Day(date).Format(dateLayout))
}

func (s *AttendanceStore) query(ctx context.Context, query string, args ...any) ([]attendance.Attendance, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	out := []attendance.Attendance{}
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
