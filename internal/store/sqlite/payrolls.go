package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"staffpay/internal/domain/payroll"
)

// PayrollStore is append-only: there is no UPDATE or DELETE on payroll.
type PayrollStore struct {
	db *sql.DB
	mu *sync.RWMutex
}

const payrollColumns = `
	id, employee_id, month, year, basic_salary, allowances, deductions,
	net_salary, payment_date, status, created_at`

func scanPayroll(row rowScanner) (payroll.Payroll, error) {
	var (
		p                      payroll.Payroll
		paymentDate, createdAt string
	)
	if err := row.Scan(&p.ID, &p.EmployeeID, &p.Month, &p.Year, &p.BasicSalary, &p.Allowances, &p.Deductions,
		&p.NetSalary, &paymentDate, &p.Status, &createdAt); err != nil {
		return payroll.Payroll{}, err
	}
	var err error
	if p.PaymentDate, err = parseTime(paymentDate); err != nil {
		return payroll.Payroll{}, err
	}
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return payroll.Payroll{}, err
	}
	return p, nil
}

func (s *PayrollStore) Save(ctx context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO payroll
		(id, employee_id, month, year, basic_salary, allowances, deductions,
		 net_salary, payment_date, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.EmployeeID, p.Month, p.Year, p.BasicSalary, p.Allowances, p.Deductions,
		p.NetSalary, formatTime(p.PaymentDate), p.Status, formatTime(p.CreatedAt))
	if err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to insert payroll: %w", err)
	}
	return p, nil
}

func (s *PayrollStore) FindByID(ctx context.Context, id string) (payroll.Payroll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, err := scanPayroll(s.db.QueryRowContext(ctx,
		"SELECT "+payrollColumns+" FROM payroll WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return payroll.Payroll{}, payroll.NotFoundError(id)
	}
	return p, err
}

func (s *PayrollStore) FindByEmployee(ctx context.Context, employeeID string) ([]payroll.Payroll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query(ctx, "SELECT "+payrollColumns+" FROM payroll WHERE employee_id = ? ORDER BY created_at, rowid", employeeID)
}

func (s *PayrollStore) FindByMonthAndYear(ctx context.Context, month string, year int) ([]payroll.Payroll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query(ctx, "SELECT "+payrollColumns+" FROM payroll WHERE month = ? AND year = ? ORDER BY created_at, rowid", month, year)
}

func (s *PayrollStore) FindByEmployeeAndMonthAndYear(ctx context.Context, employeeID, month string, year int) ([]payroll.Payroll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query(ctx, `
		SELECT `+payrollColumns+`
		FROM payroll
		WHERE employee_id = ? AND month = ? AND year = ?
		ORDER BY created_at, rowid
	`, employeeID, month, year)
}

func (s *PayrollStore) query(ctx context.Context, query string, args ...any) ([]payroll.Payroll, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll: %w", err)
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
