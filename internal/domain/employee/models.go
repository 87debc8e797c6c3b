package employee

import (
	"fmt"
	"time"
)

// Variant is the closed set of engagement payloads. Only the types in this
// package implement it.
type Variant interface {
	Kind() Kind
	variant()
}

type Base struct{}

type FullTime struct {
	Benefits    string
	AnnualLeave *int
}

type PartTime struct {
	HourlyRate  *float64
	HoursWorked *int
}

type Contract struct {
	ContractDuration *int
	ContractAmount   *float64
}

type Developer struct {
	ProgrammingLanguages string
	ProjectsCompleted    *int
}

type Tester struct {
	TestingTools string
	BugsFound    *int
}

type HR struct {
	Specialization   string
	EmployeesManaged *int
}

func (Base) Kind() Kind      { return KindBase }
func (FullTime) Kind() Kind  { return KindFullTime }
func (PartTime) Kind() Kind  { return KindPartTime }
func (Contract) Kind() Kind  { return KindContract }
func (Developer) Kind() Kind { return KindDeveloper }
func (Tester) Kind() Kind    { return KindTester }
func (HR) Kind() Kind        { return KindHR }

func (Base) variant()      {}
func (FullTime) variant()  {}
func (PartTime) variant()  {}
func (Contract) variant()  {}
func (Developer) variant() {}
func (Tester) variant()    {}
func (HR) variant()        {}

type Employee struct {
	ID         string
	Name       string
	Department string
	BaseSalary *float64
	RoleType   string
	Variant    Variant
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Kind reports the variant tag; an employee without a payload is the base variant.
func (e Employee) Kind() Kind {
	if e.Variant == nil {
		return KindBase
	}
	return e.Variant.Kind()
}

func (e Employee) Details() string {
	var salary float64
	if e.BaseSalary != nil {
		salary = *e.BaseSalary
	}
	return fmt.Sprintf("ID: %s, Name: %s, Department: %s, Salary: %.2f", e.ID, e.Name, e.Department, salary)
}

func Float(v float64) *float64 { return &v }

func Int(v int) *int { return &v }
