package mysql

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"staffpay/internal/domain/employee"
)

type EmployeeStore struct {
	db *gorm.DB
}

func (s *EmployeeStore) FindByID(ctx context.Context, id string) (employee.Employee, error) {
	var row employeeRow
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return employee.Employee{}, employee.NotFoundError(id)
		}
		return employee.Employee{}, err
	}
	return row.toDomain()
}

func (s *EmployeeStore) FindAll(ctx context.Context) ([]employee.Employee, error) {
	var rows []employeeRow
	if err := s.db.WithContext(ctx).Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEmployees(rows)
}

func (s *EmployeeStore) FindByDepartment(ctx context.Context, department string) ([]employee.Employee, error) {
	var rows []employeeRow
	if err := s.db.WithContext(ctx).Where("department = ?", department).Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEmployees(rows)
}

func toEmployees(rows []employeeRow) ([]employee.Employee, error) {
	out := make([]employee.Employee, 0, len(rows))
	for _, row := range rows {
		e, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *EmployeeStore) Save(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
		row := toEmployeeRow(e)
		if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
			return employee.Employee{}, err
		}
		return e, nil
	}

	row := toEmployeeRow(e)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&employeeRow{}).Where("id = ?", row.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return employee.NotFoundError(row.ID)
		}
		// Select("*") writes nil variant columns too; the tag and creation time never change.
		return tx.Model(&employeeRow{ID: row.ID}).Select("*").Omit("id", "employee_type", "created_at").Updates(&row).Error
	})
	if err != nil {
		return employee.Employee{}, err
	}
	return e, nil
}

func (s *EmployeeStore) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&employeeRow{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// DeleteByID removes the employee and its attendance rows. Payroll snapshots are kept.
func (s *EmployeeStore) DeleteByID(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", id).Delete(&attendanceRow{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&employeeRow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return employee.NotFoundError(id)
		}
		return nil
	})
}
