package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"staffpay/internal/domain/attendance"
)

type AttendanceStore struct {
	DB *pgxpool.Pool
}

const attendanceColumns = `
    id, employee_id, attendance_date, COALESCE(status, ''),
    check_in_time, check_out_time, hours_worked, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(&a.ID, &a.EmployeeID, &a.Date, &a.Status, &a.CheckIn, &a.CheckOut, &a.WorkedHours, &a.CreatedAt, &a.UpdatedAt)
	a.Date = attendance.Day(a.Date)
	return a, err
}

func (s *AttendanceStore) FindByID(ctx context.Context, id string) (attendance.Attendance, error) {
	a, err := scanAttendance(s.DB.QueryRow(ctx, `
    SELECT `+attendanceColumns+`
    FROM attendance
    WHERE id = $1
  `, id))
	if err != nil {
		if isNoRows(err) {
			return attendance.Attendance{}, attendance.NotFoundError(id)
		}
		return attendance.Attendance{}, err
	}
	return a, nil
}

func (s *AttendanceStore) Save(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	if a.ID == "" {
		err := s.DB.QueryRow(ctx, `
      INSERT INTO attendance (employee_id, attendance_date, status, check_in_time, check_out_time, hours_worked, created_at, updated_at)
      VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
      RETURNING id
    `, a.EmployeeID, attendance.Day(a.Date), nullIfEmpty(a.Status), a.CheckIn, a.CheckOut, a.WorkedHours, a.CreatedAt, a.UpdatedAt).Scan(&a.ID)
		if err != nil {
			return attendance.Attendance{}, err
		}
		return a, nil
	}

	cmd, err := s.DB.Exec(ctx, `
    UPDATE attendance
    SET attendance_date = $1,
        status = $2,
        check_in_time = $3,
        check_out_time = $4,
        hours_worked = $5,
        updated_at = $6
    WHERE id = $7
  `, attendance.Day(a.Date), nullIfEmpty(a.Status), a.CheckIn, a.CheckOut, a.WorkedHours, a.UpdatedAt, a.ID)
	if err != nil {
		return attendance.Attendance{}, err
	}
	if cmd.RowsAffected() == 0 {
		return attendance.Attendance{}, attendance.NotFoundError(a.ID)
	}
	return a, nil
}

func (s *AttendanceStore) FindByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	return s.query(ctx, `
    SELECT `+attendanceColumns+`
    FROM attendance
    WHERE employee_id = $1
    ORDER BY attendance_date, created_at
  `, employeeID)
}

func (s *AttendanceStore) FindByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	return s.query(ctx, `
    SELECT `+attendanceColumns+`
    FROM attendance
    WHERE attendance_date = $1
    ORDER BY created_at
  `, attendance.Day(date))
}

func (s *AttendanceStore) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]attendance.Attendance, error) {
	return s.query(ctx, `
    SELECT `+attendanceColumns+`
    FROM attendance
    WHERE employee_id = $1 AND attendance_date = $2
    ORDER BY created_at
  `, employeeID, attendance.Day(date))
}

func (s *AttendanceStore) query(ctx context.Context, sql string, args ...any) ([]attendance.Attendance, error) {
	rows, err := s.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
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
