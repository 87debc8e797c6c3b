package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"staffpay/internal/domain/employee"
)

type EmployeeStore struct {
	db *sql.DB
	mu *sync.RWMutex
}

const employeeColumns = `
	id, name, COALESCE(department, ''), salary, COALESCE(role_type, ''), employee_type,
	COALESCE(benefits, ''), annual_leave, hourly_rate, hours_worked,
	contract_duration, contract_amount,
	COALESCE(programming_languages, ''), projects_completed,
	COALESCE(testing_tools, ''), bugs_found,
	COALESCE(hr_specialization, ''), employees_managed,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (employee.Employee, error) {
	var rec employee.Record
	var createdAt, updatedAt string
	if err := row.Scan(
		&rec.ID, &rec.Name, &rec.Department, &rec.BaseSalary, &rec.RoleType, &rec.EmployeeType,
		&rec.Benefits, &rec.AnnualLeave, &rec.HourlyRate, &rec.HoursWorked,
		&rec.ContractDuration, &rec.ContractAmount,
		&rec.ProgrammingLanguages, &rec.ProjectsCompleted,
		&rec.TestingTools, &rec.BugsFound,
		&rec.Specialization, &rec.EmployeesManaged,
		&createdAt, &updatedAt,
	); err != nil {
		return employee.Employee{}, err
	}
	var err error
	if rec.CreatedAt, err = parseTime(createdAt); err != nil {
		return employee.Employee{}, err
	}
	if rec.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return employee.Employee{}, err
	}
	return rec.Employee()
}

func (s *EmployeeStore) FindByID(ctx context.Context, id string) (employee.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, err := scanEmployee(s.db.QueryRowContext(ctx,
		"SELECT "+employeeColumns+" FROM employees WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return employee.Employee{}, employee.NotFoundError(id)
	}
	return e, err
}

func (s *EmployeeStore) FindAll(ctx context.Context) ([]employee.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query(ctx, "SELECT "+employeeColumns+" FROM employees ORDER BY created_at, rowid")
}

func (s *EmployeeStore) FindByDepartment(ctx context.Context, department string) ([]employee.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query(ctx, "SELECT "+employeeColumns+" FROM employees WHERE department = ? ORDER BY created_at, rowid", department)
}

func (s *EmployeeStore) query(ctx context.Context, query string, args ...any) ([]employee.Employee, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	out := []employee.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *EmployeeStore) Save(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.NewString()
		rec := employee.ToRecord(e)
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO employees
			(id, name, department, salary, role_type, employee_type,
			 benefits, annual_leave, hourly_rate, hours_worked, contract_duration, contract_amount,
			 programming_languages, projects_completed, testing_tools, bugs_found,
			 hr_specialization, employees_managed, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			rec.ID, rec.Name, nullString(rec.Department), rec.BaseSalary, nullString(rec.RoleType), rec.EmployeeType,
			nullString(rec.Benefits), rec.AnnualLeave, rec.HourlyRate, rec.HoursWorked, rec.ContractDuration, rec.ContractAmount,
			nullString(rec.ProgrammingLanguages), rec.ProjectsCompleted, nullString(rec.TestingTools), rec.BugsFound,
			nullString(rec.Specialization), rec.EmployeesManaged, formatTime(rec.CreatedAt), formatTime(rec.UpdatedAt),
		)
		if err != nil {
			return employee.Employee{}, fmt.Errorf("failed to insert employee: %w", err)
		}
		return e, nil
	}

	rec := employee.ToRecord(e)
	res, err := s.db.ExecContext(ctx, `
		UPDATE employees
		SET name = ?, department = ?, salary = ?, role_type = ?,
		    benefits = ?, annual_leave = ?, hourly_rate = ?, hours_worked = ?,
		    contract_duration = ?, contract_amount = ?,
		    programming_languages = ?, projects_completed = ?,
		    testing_tools = ?, bugs_found = ?,
		    hr_specialization = ?, employees_managed = ?,
		    updated_at = ?
		WHERE id = ?
	`,
		rec.Name, nullString(rec.Department), rec.BaseSalary, nullString(rec.RoleType),
		nullString(rec.Benefits), rec.AnnualLeave, rec.HourlyRate, rec.HoursWorked,
		rec.ContractDuration, rec.ContractAmount,
		nullString(rec.ProgrammingLanguages), rec.ProjectsCompleted,
		nullString(rec.TestingTools), rec.BugsFound,
		nullString(rec.Specialization), rec.EmployeesManaged,
		formatTime(rec.UpdatedAt), rec.ID,
	)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to update employee: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return employee.Employee{}, employee.NotFoundError(rec.ID)
	}
	return e, nil
}

func (s *EmployeeStore) ExistsByID(ctx context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM employees WHERE id = ?", id).Scan(&count)
	return count > 0, err
}

func (s *EmployeeStore) DeleteByID(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM employees WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return employee.NotFoundError(id)
	}
	return nil
}
