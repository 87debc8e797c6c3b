// Package storetest is a repository conformance suite shared by every store
// backend. Fixtures use unique names so it can run against a shared database.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staffpay/internal/domain/apperr"
	"staffpay/internal/domain/attendance"
	"staffpay/internal/domain/auth"
	"staffpay/internal/domain/employee"
	"staffpay/internal/domain/payroll"
)

type Repos struct {
	Employees  employee.Repository
	Attendance attendance.Repository
	Payrolls   payroll.Repository
	Users      auth.Repository
}

func Run(t *testing.T, repos Repos) {
	t.Run("employees", func(t *testing.T) { testEmployees(t, repos) })
	t.Run("attendance", func(t *testing.T) { testAttendance(t, repos) })
	t.Run("payrolls", func(t *testing.T) { testPayrolls(t, repos) })
	t.Run("users", func(t *testing.T) { testUsers(t, repos) })
}

func at(hour, minute int) time.Time {
	return time.Date(2024, time.March, 15, hour, minute, 0, 0, time.UTC)
}

func newEmployee(department string, variant employee.Variant) employee.Employee {
	return employee.Employee{
		Name:       "Employee " + uuid.NewString()[:8],
		Department: department,
		BaseSalary: employee.Float(50000),
		RoleType:   "Engineer",
		Variant:    variant,
		CreatedAt:  at(9, 0),
		UpdatedAt:  at(9, 0),
	}
}

func testEmployees(t *testing.T, repos Repos) {
	ctx := context.Background()
	department := "dept-" + uuid.NewString()

	variants := []employee.Variant{
		employee.Base{},
		employee.FullTime{Benefits: "Health", AnnualLeave: employee.Int(20)},
		employee.PartTime{HourlyRate: employee.Float(25), HoursWorked: employee.Int(80)},
		employee.Contract{ContractDuration: employee.Int(12), ContractAmount: employee.Float(72000)},
		employee.Developer{ProgrammingLanguages: "Go", ProjectsCompleted: employee.Int(5)},
		employee.Tester{TestingTools: "Selenium", BugsFound: employee.Int(40)},
		employee.HR{Specialization: "Recruiting", EmployeesManaged: employee.Int(10)},
	}

	saved := make([]employee.Employee, 0, len(variants))
	for _, v := range variants {
		e, err := repos.Employees.Save(ctx, newEmployee(department, v))
		require.NoError(t, err)
		require.NotEmpty(t, e.ID)
		saved = append(saved, e)
	}

	for _, want := range saved {
		got, err := repos.Employees.FindByID(ctx, want.ID)
		require.NoError(t, err)
		assert.Equal(t, want.Name, got.Name)
		assert.Equal(t, want.Kind(), got.Kind())
		assert.Equal(t, want.Variant, got.Variant)
		assert.Equal(t, employee.CalculateSalary(want), employee.CalculateSalary(got))
		assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
	}

	members, err := repos.Employees.FindByDepartment(ctx, department)
	require.NoError(t, err)
	assert.Len(t, members, len(variants))

	none, err := repos.Employees.FindByDepartment(ctx, "dept-"+uuid.NewString())
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	all, err := repos.Employees.FindAll(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(all), len(variants))

	// Absent numerics stay absent through a round trip.
	bare, err := repos.Employees.Save(ctx, employee.Employee{
		Name: "Bare", Department: department, Variant: employee.PartTime{},
		CreatedAt: at(9, 0), UpdatedAt: at(9, 0),
	})
	require.NoError(t, err)
	bareGot, err := repos.Employees.FindByID(ctx, bare.ID)
	require.NoError(t, err)
	assert.Nil(t, bareGot.BaseSalary)
	assert.Equal(t, employee.PartTime{}, bareGot.Variant)

	update := saved[1]
	update.Name = "Renamed"
	update.Variant = employee.FullTime{Benefits: "Dental", AnnualLeave: employee.Int(25)}
	update.UpdatedAt = at(10, 0)
	_, err = repos.Employees.Save(ctx, update)
	require.NoError(t, err)
	updated, err := repos.Employees.FindByID(ctx, update.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, update.Variant, updated.Variant)
	assert.True(t, at(10, 0).Equal(updated.UpdatedAt))

	ghost := newEmployee(department, employee.Base{})
	ghost.ID = uuid.NewString()
	_, err = repos.Employees.Save(ctx, ghost)
	assert.True(t, apperr.IsNotFound(err), "update of missing id should be not found, got %v", err)

	exists, err := repos.Employees.ExistsByID(ctx, saved[0].ID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repos.Employees.DeleteByID(ctx, saved[0].ID))
	exists, err = repos.Employees.ExistsByID(ctx, saved[0].ID)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repos.Employees.FindByID(ctx, saved[0].ID)
	assert.True(t, apperr.IsNotFound(err))
	assert.True(t, apperr.IsNotFound(repos.Employees.DeleteByID(ctx, saved[0].ID)))
}

func testAttendance(t *testing.T, repos Repos) {
	ctx := context.Background()
	emp, err := repos.Employees.Save(ctx, newEmployee("dept-"+uuid.NewString(), employee.Base{}))
	require.NoError(t, err)

	checkIn := at(9, 0)
	rec, err := repos.Attendance.Save(ctx, attendance.Attendance{
		EmployeeID: emp.ID,
		Date:       at(0, 0),
		Status:     attendance.StatusPresent,
		CheckIn:    &checkIn,
		CreatedAt:  checkIn,
		UpdatedAt:  checkIn,
	})
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)

	got, err := repos.Attendance.FindByID(ctx, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CheckIn)
	assert.True(t, checkIn.Equal(*got.CheckIn))
	assert.Nil(t, got.CheckOut)
	assert.Nil(t, got.WorkedHours)
	assert.True(t, attendance.Day(at(0, 0)).Equal(got.Date))

	checkOut := at(17, 30)
	hours := attendance.WorkedHours(checkIn, checkOut)
	got.CheckOut = &checkOut
	got.WorkedHours = &hours
	got.UpdatedAt = checkOut
	_, err = repos.Attendance.Save(ctx, got)
	require.NoError(t, err)

	closed, err := repos.Attendance.FindByID(ctx, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, closed.WorkedHours)
	assert.Equal(t, 8, *closed.WorkedHours)

	// A second record on the same day is allowed.
	_, err = repos.Attendance.Save(ctx, attendance.Attendance{
		EmployeeID: emp.ID, Date: at(13, 0), Status: "half day",
		CreatedAt: at(13, 0), UpdatedAt: at(13, 0),
	})
	require.NoError(t, err)

	logs, err := repos.Attendance.FindByEmployee(ctx, emp.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 2)

	onDay, err := repos.Attendance.FindByEmployeeAndDate(ctx, emp.ID, at(23, 59))
	require.NoError(t, err)
	assert.Len(t, onDay, 2)

	byDate, err := repos.Attendance.FindByDate(ctx, at(12, 0))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(byDate), 2)

	otherDay, err := repos.Attendance.FindByEmployeeAndDate(ctx, emp.ID, at(0, 0).AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, otherDay)

	_, err = repos.Attendance.FindByID(ctx, uuid.NewString())
	assert.True(t, apperr.IsNotFound(err))

	// Attendance history outlives the employee, like payroll snapshots.
	require.NoError(t, repos.Employees.DeleteByID(ctx, emp.ID))
	kept, err := repos.Attendance.FindByEmployee(ctx, emp.ID)
	require.NoError(t, err)
	require.Len(t, kept, 2)
	assert.Equal(t, attendance.StatusPresent, kept[0].Status)
	assert.Equal(t, "half day", kept[1].Status)
}

func testPayrolls(t *testing.T, repos Repos) {
	ctx := context.Background()
	employeeID := uuid.NewString()
	month := "Month-" + uuid.NewString()[:8]

	first := payroll.Payroll{
		EmployeeID: employeeID, Month: month, Year: 2024,
		BasicSalary: 57500, Allowances: 2000, Deductions: 500, NetSalary: 59000,
		PaymentDate: at(9, 0), Status: payroll.StatusProcessed, CreatedAt: at(9, 0),
	}
	a, err := repos.Payrolls.Save(ctx, first)
	require.NoError(t, err)
	second := first
	second.CreatedAt = at(10, 0)
	second.PaymentDate = at(10, 0)
	b, err := repos.Payrolls.Save(ctx, second)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID, "regeneration must append a new row")

	got, err := repos.Payrolls.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 59000.0, got.NetSalary)
	assert.Equal(t, got.NetSalary, got.RecomputeNet())

	history, err := repos.Payrolls.FindByEmployee(ctx, employeeID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, history[0].CreatedAt.Before(history[1].CreatedAt))

	period, err := repos.Payrolls.FindByMonthAndYear(ctx, month, 2024)
	require.NoError(t, err)
	assert.Len(t, period, 2)

	otherYear, err := repos.Payrolls.FindByMonthAndYear(ctx, month, 2023)
	require.NoError(t, err)
	assert.NotNil(t, otherYear)
	assert.Empty(t, otherYear)

	mine, err := repos.Payrolls.FindByEmployeeAndMonthAndYear(ctx, employeeID, month, 2024)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	_, err = repos.Payrolls.FindByID(ctx, uuid.NewString())
	assert.True(t, apperr.IsNotFound(err))
}

func testUsers(t *testing.T, repos Repos) {
	ctx := context.Background()
	username := "user-" + uuid.NewString()

	_, err := repos.Users.FindByUsername(ctx, username)
	assert.True(t, apperr.IsNotFound(err))

	saved, err := repos.Users.Save(ctx, auth.User{
		Username: username, PasswordHash: "hash", Role: auth.RoleHR, CreatedAt: at(9, 0),
	})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	got, err := repos.Users.FindByUsername(ctx, username)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, auth.RoleHR, got.Role)
	assert.Equal(t, "hash", got.PasswordHash)
}
