package mysql

import (
	"time"

	"staffpay/internal/domain/attendance"
	"staffpay/internal/domain/auth"
	"staffpay/internal/domain/employee"
	"staffpay/internal/domain/payroll"
)

// Timestamps are assigned by the domain services, so gorm's automatic
// created/updated tracking is switched off on every row.

type employeeRow struct {
	ID                   string `gorm:"primaryKey;size:36"`
	Name                 string `gorm:"size:255;not null"`
	Department           string `gorm:"size:255;index"`
	Salary               *float64
	RoleType             string `gorm:"size:255"`
	EmployeeType         string `gorm:"size:32;not null;default:EMPLOYEE"`
	Benefits             string `gorm:"size:255"`
	AnnualLeave          *int
	HourlyRate           *float64
	HoursWorked          *int
	ContractDuration     *int
	ContractAmount       *float64
	ProgrammingLanguages string `gorm:"size:255"`
	ProjectsCompleted    *int
	TestingTools         string `gorm:"size:255"`
	BugsFound            *int
	HRSpecialization     string `gorm:"column:hr_specialization;size:255"`
	EmployeesManaged     *int
	CreatedAt            time.Time `gorm:"type:datetime(6);autoCreateTime:false"`
	UpdatedAt            time.Time `gorm:"type:datetime(6);autoUpdateTime:false"`
}

func (employeeRow) TableName() string { return "employees" }

func toEmployeeRow(e employee.Employee) employeeRow {
	rec := employee.ToRecord(e)
	return employeeRow{
		ID:                   rec.ID,
		Name:                 rec.Name,
		Department:           rec.Department,
		Salary:               rec.BaseSalary,
		RoleType:             rec.RoleType,
		EmployeeType:         rec.EmployeeType,
		Benefits:             rec.Benefits,
		AnnualLeave:          rec.AnnualLeave,
		HourlyRate:           rec.HourlyRate,
		HoursWorked:          rec.HoursWorked,
		ContractDuration:     rec.ContractDuration,
		ContractAmount:       rec.ContractAmount,
		ProgrammingLanguages: rec.ProgrammingLanguages,
		ProjectsCompleted:    rec.ProjectsCompleted,
		TestingTools:         rec.TestingTools,
		BugsFound:            rec.BugsFound,
		HRSpecialization:     rec.Specialization,
		EmployeesManaged:     rec.EmployeesManaged,
		CreatedAt:            rec.CreatedAt.UTC(),
		UpdatedAt:            rec.UpdatedAt.UTC(),
	}
}

func (r employeeRow) toDomain() (employee.Employee, error) {
	return employee.Record{
		ID:                   r.ID,
		Name:                 r.Name,
		Department:           r.Department,
		BaseSalary:           r.Salary,
		RoleType:             r.RoleType,
		EmployeeType:         r.EmployeeType,
		Benefits:             r.Benefits,
		AnnualLeave:          r.AnnualLeave,
		HourlyRate:           r.HourlyRate,
		HoursWorked:          r.HoursWorked,
		ContractDuration:     r.ContractDuration,
		ContractAmount:       r.ContractAmount,
		ProgrammingLanguages: r.ProgrammingLanguages,
		ProjectsCompleted:    r.ProjectsCompleted,
		TestingTools:         r.TestingTools,
		BugsFound:            r.BugsFound,
		Specialization:       r.HRSpecialization,
		EmployeesManaged:     r.EmployeesManaged,
		CreatedAt:            r.CreatedAt.UTC(),
		UpdatedAt:            r.UpdatedAt.UTC(),
	}.Employee()
}

type attendanceRow struct {
	ID             string     `gorm:"primaryKey;size:36"`
	EmployeeID     string     `gorm:"size:36;not null;index:idx_attendance_employee_date,priority:1"`
	AttendanceDate time.Time  `gorm:"type:date;not null;index:idx_attendance_employee_date,priority:2;index"`
	Status         string     `gorm:"size:32"`
	CheckInTime    *time.Time `gorm:"type:datetime(6)"`
	CheckOutTime   *time.Time `gorm:"type:datetime(6)"`
	HoursWorked    *int
	CreatedAt      time.Time `gorm:"type:datetime(6);autoCreateTime:false"`
	UpdatedAt      time.Time `gorm:"type:datetime(6);autoUpdateTime:false"`
}

func (attendanceRow) TableName() string { return "attendance" }

func toAttendanceRow(a attendance.Attendance) attendanceRow {
	return attendanceRow{
		ID:             a.ID,
		EmployeeID:     a.EmployeeID,
		AttendanceDate: attendance.Day(a.Date),
		Status:         a.Status,
		CheckInTime:    utcPtr(a.CheckIn),
		CheckOutTime:   utcPtr(a.CheckOut),
		HoursWorked:    a.WorkedHours,
		CreatedAt:      a.CreatedAt.UTC(),
		UpdatedAt:      a.UpdatedAt.UTC(),
	}
}

func (r attendanceRow) toDomain() attendance.Attendance {
	return attendance.Attendance{
		ID:          r.ID,
		EmployeeID:  r.EmployeeID,
		Date:        attendance.Day(r.AttendanceDate),
		Status:      r.Status,
		CheckIn:     utcPtr(r.CheckInTime),
		CheckOut:    utcPtr(r.CheckOutTime),
		WorkedHours: r.HoursWorked,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

type payrollRow struct {
	ID          string    `gorm:"primaryKey;size:36"`
	EmployeeID  string    `gorm:"size:36;not null;index"`
	Month       string    `gorm:"size:32;not null;index:idx_payroll_period,priority:1"`
	Year        int       `gorm:"not null;index:idx_payroll_period,priority:2"`
	BasicSalary float64   `gorm:"not null"`
	Allowances  float64   `gorm:"not null"`
	Deductions  float64   `gorm:"not null"`
	NetSalary   float64   `gorm:"not null"`
	PaymentDate time.Time `gorm:"type:datetime(6);not null"`
	Status      string    `gorm:"size:32;not null"`
	CreatedAt   time.Time `gorm:"type:datetime(6);autoCreateTime:false"`
}

func (payrollRow) TableName() string { return "payroll" }

func toPayrollRow(p payroll.Payroll) payrollRow {
	return payrollRow{
		ID:          p.ID,
		EmployeeID:  p.EmployeeID,
		Month:       p.Month,
		Year:        p.Year,
		BasicSalary: p.BasicSalary,
		Allowances:  p.Allowances,
		Deductions:  p.Deductions,
		NetSalary:   p.NetSalary,
		PaymentDate: p.PaymentDate.UTC(),
		Status:      p.Status,
		CreatedAt:   p.CreatedAt.UTC(),
	}
}

func (r payrollRow) toDomain() payroll.Payroll {
	return payroll.Payroll{
		ID:          r.ID,
		EmployeeID:  r.EmployeeID,
		Month:       r.Month,
		Year:        r.Year,
		BasicSalary: r.BasicSalary,
		Allowances:  r.Allowances,
		Deductions:  r.Deductions,
		NetSalary:   r.NetSalary,
		PaymentDate: r.PaymentDate.UTC(),
		Status:      r.Status,
		CreatedAt:   r.CreatedAt.UTC(),
	}
}

type userRow struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Username     string    `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string    `gorm:"size:255;not null"`
	Role         string    `gorm:"size:32;not null"`
	CreatedAt    time.Time `gorm:"type:datetime(6);autoCreateTime:false"`
}

func (userRow) TableName() string { return "users" }

func (r userRow) toDomain() auth.User {
	return auth.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		Role:         r.Role,
		CreatedAt:    r.CreatedAt.UTC(),
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
