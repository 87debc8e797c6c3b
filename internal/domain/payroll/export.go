package payroll

import (
	"context"
	"io"

	"github.com/gocarina/gocsv"

	"staffpay/internal/domain/apperr"
)

// RegisterRows joins the month's snapshots with their employees. Snapshots
// whose employee has since been deleted keep empty name columns.
func (s *Service) RegisterRows(ctx context.Context, month string, year int) ([]RegisterRow, error) {
	payrolls, err := s.GetPayrollByMonth(ctx, month, year)
	if err != nil {
		return nil, err
	}

	rows := make([]RegisterRow, 0, len(payrolls))
	for _, p := range payrolls {
		row := RegisterRow{
			PayrollID:   p.ID,
			EmployeeID:  p.EmployeeID,
			Month:       p.Month,
			Year:        p.Year,
			BasicSalary: p.BasicSalary,
			Allowances:  p.Allowances,
			Deductions:  p.Deductions,
			NetSalary:   p.NetSalary,
			PaymentDate: p.PaymentDate.Format("2006-01-02"),
			Status:      p.Status,
		}
		emp, err := s.employees.FindByID(ctx, p.EmployeeID)
		switch {
		case err == nil:
			row.EmployeeName = emp.Name
			row.Department = emp.Department
			row.EmployeeType = string(emp.Kind())
		case !apperr.IsNotFound(err):
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ExportMonthCSV writes the month's register as CSV with a header row.
func (s *Service) ExportMonthCSV(ctx context.Context, w io.Writer, month string, year int) error {
	rows, err := s.RegisterRows(ctx, month, year)
	if err != nil {
		return err
	}
	return gocsv.Marshal(rows, w)
}
