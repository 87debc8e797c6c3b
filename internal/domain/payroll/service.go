package payroll

import (
	"context"
	"strings"
	"time"

	"staffpay/internal/domain/employee"
)

type Service struct {
	payrolls  Repository
	employees Employees
	policy    Policy
	payslips  *PayslipWriter
	Now       func() time.Time
}

// NewService wires the generator. A nil policy means DefaultPolicy.
func NewService(payrolls Repository, employees Employees, policy Policy) *Service {
	if policy == nil {
		policy = DefaultPolicy
	}
	return &Service{payrolls: payrolls, employees: employees, policy: policy, Now: time.Now}
}

// WithPayslips enables GeneratePayslipPDF.
func (s *Service) WithPayslips(w *PayslipWriter) *Service {
	s.payslips = w
	return s
}

func (s *Service) CalculateSalary(ctx context.Context, employeeID string) (float64, error) {
	if strings.TrimSpace(employeeID) == "" {
		return 0, ErrEmployeeIDRequired
	}
	emp, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		return 0, err
	}
	return employee.CalculateSalary(emp), nil
}

// GeneratePayrollReport snapshots the employee's calculated salary with the
// policy's allowances and deductions and stores it as a new PROCESSED record.
func (s *Service) GeneratePayrollReport(ctx context.Context, employeeID, month string, year int) (Payroll, error) {
	if strings.TrimSpace(employeeID) == "" {
		return Payroll{}, ErrEmployeeIDRequired
	}
	if err := ValidatePeriod(month, year); err != nil {
		return Payroll{}, err
	}
	emp, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		return Payroll{}, err
	}
	return s.payrolls.Save(ctx, s.snapshot(emp, month, year, s.Now().UTC()))
}

// GenerateDepartmentPayroll generates one snapshot per employee of the department.
// It stops at the first failure and returns the snapshots stored so far.
func (s *Service) GenerateDepartmentPayroll(ctx context.Context, department, month string, year int) ([]Payroll, error) {
	if strings.TrimSpace(department) == "" {
		return nil, ErrDepartmentRequired
	}
	if err := ValidatePeriod(month, year); err != nil {
		return nil, err
	}
	members, err := s.employees.FindByDepartment(ctx, department)
	if err != nil {
		return nil, err
	}

	now := s.Now().UTC()
	out := make([]Payroll, 0, len(members))
	for _, emp := range members {
		saved, err := s.payrolls.Save(ctx, s.snapshot(emp, month, year, now))
		if err != nil {
			return out, err
		}
		out = append(out, saved)
	}
	return out, nil
}

func (s *Service) snapshot(emp employee.Employee, month string, year int, now time.Time) Payroll {
	basic := employee.CalculateSalary(emp)
	allowances := s.policy.Allowances(emp, basic)
	deductions := s.policy.Deductions(emp, basic)
	return Payroll{
		EmployeeID:  emp.ID,
		Month:       strings.TrimSpace(month),
		Year:        year,
		BasicSalary: basic,
		Allowances:  allowances,
		Deductions:  deductions,
		NetSalary:   ComputeNet(basic, allowances, deductions),
		PaymentDate: now,
		Status:      StatusProcessed,
		CreatedAt:   now,
	}
}

func (s *Service) HandleAllowances(salary, allowances *float64) (float64, error) {
	return HandleAllowances(salary, allowances)
}

func (s *Service) HandleDeductions(salary, deductions *float64) (float64, error) {
	return HandleDeductions(salary, deductions)
}

func (s *Service) GetPayroll(ctx context.Context, payrollID string) (Payroll, error) {
	if strings.TrimSpace(payrollID) == "" {
		return Payroll{}, ErrPayrollIDRequired
	}
	return s.payrolls.FindByID(ctx, payrollID)
}

func (s *Service) GetEmployeePayrollHistory(ctx context.Context, employeeID string) ([]Payroll, error) {
	if strings.TrimSpace(employeeID) == "" {
		return nil, ErrEmployeeIDRequired
	}
	return s.payrolls.FindByEmployee(ctx, employeeID)
}

func (s *Service) GetPayrollByMonth(ctx context.Context, month string, year int) ([]Payroll, error) {
	if err := ValidatePeriod(month, year); err != nil {
		return nil, err
	}
	return s.payrolls.FindByMonthAndYear(ctx, strings.TrimSpace(month), year)
}

// GetEmployeePayrollForMonth returns the most recent snapshot of the period.
func (s *Service) GetEmployeePayrollForMonth(ctx context.Context, employeeID, month string, year int) (Payroll, error) {
	if strings.TrimSpace(employeeID) == "" {
		return Payroll{}, ErrEmployeeIDRequired
	}
	if err := ValidatePeriod(month, year); err != nil {
		return Payroll{}, err
	}
	found, err := s.payrolls.FindByEmployeeAndMonthAndYear(ctx, employeeID, strings.TrimSpace(month), year)
	if err != nil {
		return Payroll{}, err
	}
	if len(found) == 0 {
		return Payroll{}, periodNotFound(employeeID, month, year)
	}
	latest := found[0]
	for _, p := range found[1:] {
		if p.CreatedAt.After(latest.CreatedAt) {
			latest = p
		}
	}
	return latest, nil
}

func (s *Service) MonthSummary(ctx context.Context, month string, year int) (PeriodSummary, error) {
	payrolls, err := s.GetPayrollByMonth(ctx, month, year)
	if err != nil {
		return PeriodSummary{}, err
	}
	return Summarize(strings.TrimSpace(month), year, payrolls), nil
}

// ValidatePeriod rejects a blank month label or a non-positive year.
func ValidatePeriod(month string, year int) error {
	if strings.TrimSpace(month) == "" {
		return ErrMonthRequired
	}
	if year <= 0 {
		return ErrYearRequired
	}
	return nil
}
