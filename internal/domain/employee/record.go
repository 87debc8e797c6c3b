package employee

import (
	"encoding/json"
	"time"

	"staffpay/internal/domain/apperr"
)

// Record is the flat, single-table shape of an Employee: the common columns
// plus every variant column, of which only the tagged variant's are set.
// Stores persist it and the HTTP layer uses it as the wire format.
type Record struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Department           string    `json:"department"`
	BaseSalary           *float64  `json:"salary,omitempty"`
	RoleType             string    `json:"roleType,omitempty"`
	EmployeeType         string    `json:"employeeType"`
	Benefits             string    `json:"benefits,omitempty"`
	AnnualLeave          *int      `json:"annualLeave,omitempty"`
	HourlyRate           *float64  `json:"hourlyRate,omitempty"`
	HoursWorked          *int      `json:"hoursWorked,omitempty"`
	ContractDuration     *int      `json:"contractDuration,omitempty"`
	ContractAmount       *float64  `json:"contractAmount,omitempty"`
	ProgrammingLanguages string    `json:"programmingLanguages,omitempty"`
	ProjectsCompleted    *int      `json:"projectsCompleted,omitempty"`
	TestingTools         string    `json:"testingTools,omitempty"`
	BugsFound            *int      `json:"bugsFound,omitempty"`
	Specialization       string    `json:"specialization,omitempty"`
	EmployeesManaged     *int      `json:"employeesManaged,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

func ToRecord(e Employee) Record {
	rec := Record{
		ID:           e.ID,
		Name:         e.Name,
		Department:   e.Department,
		BaseSalary:   e.BaseSalary,
		RoleType:     e.RoleType,
		EmployeeType: string(e.Kind()),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
	switch v := e.Variant.(type) {
	case FullTime:
		rec.Benefits = v.Benefits
		rec.AnnualLeave = v.AnnualLeave
	case PartTime:
		rec.HourlyRate = v.HourlyRate
		rec.HoursWorked = v.HoursWorked
	case Contract:
		rec.ContractDuration = v.ContractDuration
		rec.ContractAmount = v.ContractAmount
	case Developer:
		rec.ProgrammingLanguages = v.ProgrammingLanguages
		rec.ProjectsCompleted = v.ProjectsCompleted
	case Tester:
		rec.TestingTools = v.TestingTools
		rec.BugsFound = v.BugsFound
	case HR:
		rec.Specialization = v.Specialization
		rec.EmployeesManaged = v.EmployeesManaged
	}
	return rec
}

// Employee rebuilds the tagged value. Columns of other variants are ignored.
func (r Record) Employee() (Employee, error) {
	kind, ok := ParseKind(r.EmployeeType)
	if !ok {
		return Employee{}, apperr.InvalidInput("unknown employee type %q", r.EmployeeType)
	}
	e := Employee{
		ID:         r.ID,
		Name:       r.Name,
		Department: r.Department,
		BaseSalary: r.BaseSalary,
		RoleType:   r.RoleType,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	switch kind {
	case KindFullTime:
		e.Variant = FullTime{Benefits: r.Benefits, AnnualLeave: r.AnnualLeave}
	case KindPartTime:
		e.Variant = PartTime{HourlyRate: r.HourlyRate, HoursWorked: r.HoursWorked}
	case KindContract:
		e.Variant = Contract{ContractDuration: r.ContractDuration, ContractAmount: r.ContractAmount}
	case KindDeveloper:
		e.Variant = Developer{ProgrammingLanguages: r.ProgrammingLanguages, ProjectsCompleted: r.ProjectsCompleted}
	case KindTester:
		e.Variant = Tester{TestingTools: r.TestingTools, BugsFound: r.BugsFound}
	case KindHR:
		e.Variant = HR{Specialization: r.Specialization, EmployeesManaged: r.EmployeesManaged}
	default:
		e.Variant = Base{}
	}
	return e, nil
}

func (e Employee) MarshalJSON() ([]byte, error) {
	return json.Marshal(ToRecord(e))
}

func (e *Employee) UnmarshalJSON(data []byte) error {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	decoded, err := rec.Employee()
	if err != nil {
		return err
	}
	*e = decoded
	return nil
}
