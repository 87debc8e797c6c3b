package mysql

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"staffpay/internal/domain/payroll"
)

// PayrollStore only inserts; snapshots are never updated.
type PayrollStore struct {
	db *gorm.DB
}

func (s *PayrollStore) Save(ctx context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	p.ID = uuid.NewString()
	row := toPayrollRow(p)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return payroll.Payroll{}, err
	}
	return p, nil
}

func (s *PayrollStore) FindByID(ctx context.Context, id string) (payroll.Payroll, error) {
	var row payrollRow
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return payroll.Payroll{}, payroll.NotFoundError(id)
		}
		return payroll.Payroll{}, err
	}
	return row.toDomain(), nil
}

func (s *PayrollStore) FindByEmployee(ctx context.Context, employeeID string) ([]payroll.Payroll, error) {
	return s.find(s.db.WithContext(ctx).Where("employee_id = ?", employeeID))
}

func (s *PayrollStore) FindByMonthAndYear(ctx context.Context, month string, year int) ([]payroll.Payroll, error) {
	return s.find(s.db.WithContext(ctx).Where("month = ? AND year = ?", month, year))
}

func (s *PayrollStore) FindByEmployeeAndMonthAndYear(ctx context.Context, employeeID, month string, year int) ([]payroll.Payroll, error) {
	return s.find(s.db.WithContext(ctx).Where("employee_id = ? AND month = ? AND year = ?", employeeID, month, year))
}

func (s *PayrollStore) find(query *gorm.DB) ([]payroll.Payroll, error) {
	var rows []payrollRow
	if err := query.Order("created_at").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]payroll.Payroll, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
