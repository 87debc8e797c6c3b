// Package memory provides mutex-guarded in-memory repositories for tests and
// local development.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"staffpay/internal/domain/attendance"
	"staffpay/internal/domain/auth"
	"staffpay/internal/domain/employee"
	"staffpay/internal/domain/payroll"
)

type Store struct {
	Employees  *Employees
	Attendance *Attendance
	Payrolls   *Payrolls
	Users      *Users
}

func New() *Store {
	return &Store{
		Employees:  NewEmployees(),
		Attendance: NewAttendance(),
		Payrolls:   NewPayrolls(),
		Users:      NewUsers(),
	}
}

// =============================================================================
// EMPLOYEES
// =============================================================================

type Employees struct {
	mu    sync.RWMutex
	byID  map[string]employee.Employee
	order []string
}

func NewEmployees() *Employees {
	return &Employees{byID: make(map[string]employee.Employee)}
}

func (m *Employees) FindByID(_ context.Context, id string) (employee.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.byID[id]
	if !ok {
		return employee.Employee{}, employee.NotFoundError(id)
	}
	return e, nil
}

func (m *Employees) FindAll(_ context.Context) ([]employee.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]employee.Employee, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id])
	}
	return out, nil
}

func (m *Employees) FindByDepartment(_ context.Context, department string) ([]employee.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []employee.Employee{}
	for _, id := range m.order {
		if e := m.byID[id]; e.Department == department {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *Employees) Save(_ context.Context, e employee.Employee) (employee.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
		m.order = append(m.order, e.ID)
	} else if _, ok := m.byID[e.ID]; !ok {
		return employee.Employee{}, employee.NotFoundError(e.ID)
	}
	m.byID[e.ID] = e
	return e, nil
}

func (m *Employees) ExistsByID(_ context.Context, id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.byID[id]
	return ok, nil
}

func (m *Employees) DeleteByID(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return employee.NotFoundError(id)
	}
	delete(m.byID, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// =============================================================================
// ATTENDANCE
// =============================================================================

type Attendance struct {
	mu      sync.RWMutex
	records map[string]attendance.Attendance
	order   []string
}

func NewAttendance() *Attendance {
	return &Attendance{records: make(map[string]attendance.Attendance)}
}

func (m *Attendance) FindByID(_ context.Context, id string) (attendance.Attendance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.NotFoundError(id)
	}
	return a, nil
}

func (m *Attendance) Save(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
		m.order = append(m.order, a.ID)
	} else if _, ok := m.records[a.ID]; !ok {
		return attendance.Attendance{}, attendance.NotFoundError(a.ID)
	}
	m.records[a.ID] = a
	return a, nil
}

func (m *Attendance) FindByEmployee(_ context.Context, employeeID string) ([]attendance.Attendance, error) {
	return m.filter(func(a attendance.Attendance) bool { return a.EmployeeID == employeeID }), nil
}

func (m *Attendance) FindByDate(_ context.Context, date time.Time) ([]attendance.Attendance, error) {
	day := attendance.Day(date)
	return m.filter(func(a attendance.Attendance) bool { return a.Date.Equal(day) }), nil
}

func (m *Attendance) FindByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) ([]attendance.Attendance, error) {
	day := attendance.Day(date)
	return m.filter(func(a attendance.Attendance) bool {
		return a.EmployeeID == employeeID && a.Date.Equal(day)
	}), nil
}

func (m *Attendance) filter(keep func(attendance.Attendance) bool) []attendance.Attendance {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []attendance.Attendance{}
	for _, id := range m.order {
		if a := m.records[id]; keep(a) {
			out = append(out, a)
		}
	}
	return out
}

// =============================================================================
// PAYROLLS
// =============================================================================

type Payrolls struct {
	mu       sync.RWMutex
	payrolls []payroll.Payroll
}

func NewPayrolls() *Payrolls {
	return &Payrolls{}
}

// Save appends; snapshots are never replaced.
func (m *Payrolls) Save(_ context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = uuid.NewString()
	m.payrolls = append(m.payrolls, p)
	return p, nil
}

func (m *Payrolls) FindByID(_ context.Context, id string) (payroll.Payroll, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.payrolls {
		if p.ID == id {
			return p, nil
		}
	}
	return payroll.Payroll{}, payroll.NotFoundError(id)
}

func (m *Payrolls) FindByEmployee(_ context.Context, employeeID string) ([]payroll.Payroll, error) {
	return m.filter(func(p payroll.Payroll) bool { return p.EmployeeID == employeeID }), nil
}

func (m *Payrolls) FindByMonthAndYear(_ context.Context, month string, year int) ([]payroll.Payroll, error) {
	return m.filter(func(p payroll.Payroll) bool { return p.Month == month && p.Year == year }), nil
}

func (m *Payrolls) FindByEmployeeAndMonthAndYear(_ context.Context, employeeID, month string, year int) ([]payroll.Payroll, error) {
	return m.filter(func(p payroll.Payroll) bool {
		return p.EmployeeID == employeeID && p.Month == month && p.Year == year
	}), nil
}

func (m *Payrolls) filter(keep func(payroll.Payroll) bool) []payroll.Payroll {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []payroll.Payroll{}
	for _, p := range m.payrolls {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// =============================================================================
// USERS
// =============================================================================

type Users struct {
	mu         sync.RWMutex
	byUsername map[string]auth.User
}

func NewUsers() *Users {
	return &Users{byUsername: make(map[string]auth.User)}
}

func (m *Users) FindByUsername(_ context.Context, username string) (auth.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.byUsername[username]
	if !ok {
		return auth.User{}, auth.NotFoundError(username)
	}
	return u, nil
}

func (m *Users) Save(_ context.Context, u auth.User) (auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	m.byUsername[u.Username] = u
	return u, nil
}
