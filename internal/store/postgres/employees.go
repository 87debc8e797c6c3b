package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"staffpay/internal/domain/employee"
)

type EmployeeStore struct {
	DB *pgxpool.Pool
}

const employeeColumns = `
    id, name, COALESCE(department, ''), salary, COALESCE(role_type, ''), employee_type,
    COALESCE(benefits, ''), annual_leave,
    hourly_rate, hours_worked,
    contract_duration, contract_amount,
    COALESCE(programming_languages, ''), projects_completed,
    COALESCE(testing_tools, ''), bugs_found,
    COALESCE(hr_specialization, ''), employees_managed,
    created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var rec employee.Record
	if err := row.Scan(
		&rec.ID, &rec.Name, &rec.Department, &rec.BaseSalary, &rec.RoleType, &rec.EmployeeType,
		&rec.Benefits, &rec.AnnualLeave,
		&rec.HourlyRate, &rec.HoursWorked,
		&rec.ContractDuration, &rec.ContractAmount,
		&rec.ProgrammingLanguages, &rec.ProjectsCompleted,
		&rec.TestingTools, &rec.BugsFound,
		&rec.Specialization, &rec.EmployeesManaged,
		&rec.CreatedAt, &rec.UpdatedAt,
	); err != nil {
		return employee.Employee{}, err
	}
	return rec.Employee()
}

func (s *EmployeeStore) FindByID(ctx context.Context, id string) (employee.Employee, error) {
	e, err := scanEmployee(s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE id = $1
  `, id))
	if err != nil {
		if isNoRows(err) {
			return employee.Employee{}, employee.NotFoundError(id)
		}
		return employee.Employee{}, err
	}
	return e, nil
}

func (s *EmployeeStore) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return s.query(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    ORDER BY created_at, id
  `)
}

func (s *EmployeeStore) FindByDepartment(ctx context.Context, department string) ([]employee.Employee, error) {
	return s.query(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE department = $1
    ORDER BY created_at, id
  `, department)
}

func (s *EmployeeStore) query(ctx context.Context, sql string, args ...any) ([]employee.Employee, error) {
	rows, err := s.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
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
	rec := employee.ToRecord(e)
	if rec.ID == "" {
		err := s.DB.QueryRow(ctx, `
      INSERT INTO employees (name, department, salary, role_type, employee_type,
        benefits, annual_leave, hourly_rate, hours_worked, contract_duration, contract_amount,
        programming_languages, projects_completed, testing_tools, bugs_found,
        hr_specialization, employees_managed, created_at, updated_at)
      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
      RETURNING id
    `,
			rec.Name, nullIfEmpty(rec.Department), rec.BaseSalary, nullIfEmpty(rec.RoleType), rec.EmployeeType,
			nullIfEmpty(rec.Benefits), rec.AnnualLeave, rec.HourlyRate, rec.HoursWorked, rec.ContractDuration, rec.ContractAmount,
			nullIfEmpty(rec.ProgrammingLanguages), rec.ProjectsCompleted, nullIfEmpty(rec.TestingTools), rec.BugsFound,
			nullIfEmpty(rec.Specialization), rec.EmployeesManaged, rec.CreatedAt, rec.UpdatedAt,
		).Scan(&e.ID)
		if err != nil {
			return employee.Employee{}, err
		}
		return e, nil
	}

	cmd, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET name = $1,
        department = $2,
        salary = $3,
        role_type = $4,
        benefits = $5,
        annual_leave = $6,
        hourly_rate = $7,
        hours_worked = $8,
        contract_duration = $9,
        contract_amount = $10,
        programming_languages = $11,
        projects_completed = $12,
        testing_tools = $13,
        bugs_found = $14,
        hr_specialization = $15,
        employees_managed = $16,
        updated_at = $17
    WHERE id = $18
  `,
		rec.Name, nullIfEmpty(rec.Department), rec.BaseSalary, nullIfEmpty(rec.RoleType),
		nullIfEmpty(rec.Benefits), rec.AnnualLeave, rec.HourlyRate, rec.HoursWorked, rec.ContractDuration, rec.ContractAmount,
		nullIfEmpty(rec.ProgrammingLanguages), rec.ProjectsCompleted, nullIfEmpty(rec.TestingTools), rec.BugsFound,
		nullIfEmpty(rec.Specialization), rec.EmployeesManaged, rec.UpdatedAt, rec.ID,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	if cmd.RowsAffected() == 0 {
		return employee.Employee{}, employee.NotFoundError(rec.ID)
	}
	return e, nil
}

func (s *EmployeeStore) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE id = $1", id).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *EmployeeStore) DeleteByID(ctx context.Context, id string) error {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return employee.NotFoundError(id)
	}
	return nil
}
