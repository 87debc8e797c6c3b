package employee

import "testing"

func TestCalculateSalary(t *testing.T) {
	tests := []struct {
		name string
		emp  Employee
		want float64
	}{
		{name: "base", emp: Employee{BaseSalary: Float(3000)}, want: 3000},
		{name: "base without salary", emp: Employee{}, want: 0},
		{name: "full time uplift", emp: Employee{BaseSalary: Float(5000), Variant: FullTime{}}, want: 5750},
		{name: "full time without salary", emp: Employee{Variant: FullTime{Benefits: "health"}}, want: 0},
		{name: "part time", emp: Employee{Variant: PartTime{HourlyRate: Float(25.5), HoursWorked: Int(80)}}, want: 2040},
		{name: "part time ignores base", emp: Employee{BaseSalary: Float(9999), Variant: PartTime{HourlyRate: Float(10), HoursWorked: Int(10)}}, want: 100},
		{name: "part time missing hours", emp: Employee{Variant: PartTime{HourlyRate: Float(10)}}, want: 0},
		{name: "part time negative rate", emp: Employee{Variant: PartTime{HourlyRate: Float(-10), HoursWorked: Int(10)}}, want: 0},
		{name: "contract monthly", emp: Employee{Variant: Contract{ContractDuration: Int(12), ContractAmount: Float(60000)}}, want: 5000},
		{name: "contract zero duration", emp: Employee{Variant: Contract{ContractDuration: Int(0), ContractAmount: Float(7000)}}, want: 7000},
		{name: "contract missing duration", emp: Employee{Variant: Contract{ContractAmount: Float(7000)}}, want: 7000},
		{name: "contract missing amount", emp: Employee{Variant: Contract{ContractDuration: Int(6)}}, want: 0},
		{name: "developer", emp: Employee{BaseSalary: Float(4000), Variant: Developer{ProjectsCompleted: Int(3)}}, want: 7000},
		{name: "developer no projects", emp: Employee{BaseSalary: Float(4000), Variant: Developer{}}, want: 4000},
		{name: "tester", emp: Employee{BaseSalary: Float(3000), Variant: Tester{BugsFound: Int(10)}}, want: 3500},
		{name: "hr", emp: Employee{BaseSalary: Float(3500), Variant: HR{EmployeesManaged: Int(5)}}, want: 4500},
		{name: "hr without salary", emp: Employee{Variant: HR{EmployeesManaged: Int(2)}}, want: 400},
		{name: "full time 50000", emp: Employee{BaseSalary: Float(50000), Variant: FullTime{}}, want: 57500},
		{name: "part time 25x160", emp: Employee{Variant: PartTime{HourlyRate: Float(25), HoursWorked: Int(160)}}, want: 4000},
		{name: "contract 72000 over 12", emp: Employee{Variant: Contract{ContractDuration: Int(12), ContractAmount: Float(72000)}}, want: 6000},
		{name: "developer 75000 with 5 projects", emp: Employee{BaseSalary: Float(75000), Variant: Developer{ProjectsCompleted: Int(5)}}, want: 80000},
		{name: "tester 65000 with 150 bugs", emp: Employee{BaseSalary: Float(65000), Variant: Tester{BugsFound: Int(150)}}, want: 72500},
		{name: "hr 70000 managing 25", emp: Employee{BaseSalary: Float(70000), Variant: HR{EmployeesManaged: Int(25)}}, want: 75000},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CalculateSalary(tc.emp); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestContractSalaryKeepsDecimalPrecision(t *testing.T) {
	emp := Employee{Variant: Contract{ContractDuration: Int(3), ContractAmount: Float(1000)}}
	got := Salary(emp).StringFixed(2)
	if got != "333.33" {
		t.Fatalf("expected 333.33, got %s", got)
	}
}

func TestKindDefaultsToBase(t *testing.T) {
	if kind := (Employee{}).Kind(); kind != KindBase {
		t.Fatalf("expected base kind, got %s", kind)
	}
	if kind, ok := ParseKind(""); !ok || kind != KindBase {
		t.Fatalf("expected empty tag to parse as base, got %s %v", kind, ok)
	}
	if _, ok := ParseKind("MANAGER"); ok {
		t.Fatal("expected unknown tag to be rejected")
	}
}

func TestDetails(t *testing.T) {
	emp := Employee{ID: "e1", Name: "Ada", Department: "Engineering", BaseSalary: Float(5000.5)}
	if got := emp.Details(); got != "ID: e1, Name: Ada, Department: Engineering, Salary: 5000.50" {
		t.Fatalf("unexpected details %q", got)
	}
	if got := (Employee{ID: "e2", Name: "Bo"}).Details(); got != "ID: e2, Name: Bo, Department: , Salary: 0.00" {
		t.Fatalf("unexpected details without salary %q", got)
	}
}
