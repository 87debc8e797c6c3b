package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"staffpay/internal/domain/payroll"
)

type PayrollStore struct {
	DB *pgxpool.Pool
}

const payrollColumns = `
    id, employee_id, month, year, basic_salary, allowances, deductions,
    net_salary, payment_date, status, created_at`

func scanPayroll(row pgx.Row) (payroll.Payroll, error) {
	var p payroll.Payroll
	err := row.Scan(&p.ID, &p.EmployeeID, &p.Month, &p.Year, &p.BasicSalary, &p.Allowances, &p.Deductions,
		&p.NetSalary, &p.PaymentDate, &p.Status, &p.CreatedAt)
	return p, err
}

// Save always inserts. Payroll rows are snapshots and are never updated.
func (s *PayrollStore) Save(ctx context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO payroll (employee_id, month, year, basic_salary, allowances, deductions,
      net_salary, payment_date, status, created_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    RETURNING id
  `, p.EmployeeID, p.Month, p.Year, p.BasicSalary, p.Allowances, p.Deductions,
		p.NetSalary, p.PaymentDate, p.Status, p.CreatedAt).Scan(&p.ID)
	if err != nil {
		return payroll.Payroll{}, err
	}
	return p, nil
}

func (s *PayrollStore) FindByID(ctx context.Context, id string) (payroll.Payroll, error) {
	p, err := scanPayroll(s.DB.QueryRow(ctx, `
    SELECT `+payrollColumns+`
    FROM payroll
    WHERE id = $1
  `, id))
	if err != nil {
		if isNoRows(err) {
			return payroll.Payroll{}, payroll.NotFoundError(id)
		}
		return payroll.Payroll{}, err
	}
	return p, nil
}

func (s *PayrollStore) FindByEmployee(ctx context.Context, employeeID string) ([]payroll.Payroll, error) {
	return s.query(ctx, `
    SELECT `+payrollColumns+`
    FROM payroll
    WHERE employee_id = $1
    ORDER BY created_at
  `, employeeID)
}

func (s *PayrollStore) FindByMonthAndYear(ctx context.Context, month string, year int) ([]payroll.Payroll, error) {
	return s.query(ctx, `
    SELECT `+payrollColumns+`
    FROM payroll
    WHERE month = $1 AND year = $2
    ORDER BY created_at
  `, month, year)
}

func (s *PayrollStore) FindByEmployeeAndMonthAndYear(ctx context.Context, employeeID, month string, year int) ([]payroll.Payroll, error) {
	return s.query(ctx, `
    SELECT `+payrollColumns+`
    FROM payroll
    WHERE employee_id = $1 AND month = $2 AND year = $3
    ORDER BY created_at
  `, employeeID, month, year)
}

func (s *PayrollStore) query(ctx context.Context, sql string, args ...any) ([]payroll.Payroll, error) {
	rows, err := s.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []payroll.Payroll{}
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
