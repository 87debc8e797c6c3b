package mysql

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"staffpay/internal/domain/attendance"
)

type AttendanceStore struct {
	db *gorm.DB
}

func (s *AttendanceStore) FindByID(ctx context.Context, id string) (attendance.Attendance, error) {
	var row attendanceRow
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return attendance.Attendance{}, attendance.NotFoundError(id)
		}
		return attendance.Attendance{}, err
	}
	return row.toDomain(), nil
}

func (s *AttendanceStore) Save(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	a.Date = attendance.Day(a.Date)
	if a.ID == "" {
		a.ID = uuid.NewString()
		row := toAttendanceRow(a)
		if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
			return attendance.Attendance{}, err
		}
		return a, nil
	}

	row := toAttendanceRow(a)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&attendanceRow{}).Where("id = ?", row.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return attendance.NotFoundError(row.ID)
		}
		return tx.Model(&attendanceRow{ID: row.ID}).Select("*").Omit("id", "employee_id", "created_at").Updates(&row).Error
	})
	if err != nil {
		return attendance.Attendance{}, err
	}
	return a, nil
}

func (s *AttendanceStore) FindByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	return s.find(s.db.WithContext(ctx).Where("employee_id = ?", employeeID).Order("attendance_date, created_at"))
}

func (s *AttendanceStore) FindByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	return s.find(s.db.WithContext(ctx).Where("attendance_date = ?", attendance.Day(date)).Order("created_at"))
}

func (s *AttendanceStore) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]attendance.Attendance, error) {
	return s.find(s.db.WithContext(ctx).
		Where("employee_id = ? AND attendance_date = ?", employeeID, attendance.Day(date)).
		Order("created_at"))
}

func (s *AttendanceStore) find(query *gorm.DB) ([]attendance.Attendance, error) {
	var rows []attendanceRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]attendance.Attendance, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
