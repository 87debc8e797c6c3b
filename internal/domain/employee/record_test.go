package employee

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRecordKeepsOnlyTaggedVariantColumns(t *testing.T) {
	rec := Record{
		Name:              "Grace",
		EmployeeType:      string(KindTester),
		BugsFound:         Int(4),
		ProjectsCompleted: Int(9),
	}
	e, err := rec.Employee()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tester, ok := e.Variant.(Tester)
	if !ok {
		t.Fatalf("expected tester variant, got %T", e.Variant)
	}
	if *tester.BugsFound != 4 {
		t.Fatalf("expected 4 bugs, got %d", *tester.BugsFound)
	}

	back := ToRecord(e)
	if back.ProjectsCompleted != nil {
		t.Fatal("expected developer column to be dropped")
	}
}

func TestRecordRejectsUnknownType(t *testing.T) {
	_, err := Record{Name: "x", EmployeeType: "INTERN"}.Employee()
	if err == nil {
		t.Fatal("expected error for unknown employee type")
	}
}

func TestEmployeeJSONUsesFlatShape(t *testing.T) {
	e := Employee{ID: "e1", Name: "Ada", BaseSalary: Float(5000), Variant: FullTime{Benefits: "health", AnnualLeave: Int(20)}}
	raw, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	body := string(raw)
	for _, want := range []string{`"employeeType":"FULL_TIME"`, `"benefits":"health"`, `"annualLeave":20`, `"salary":5000`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %s in %s", want, body)
		}
	}

	var decoded Employee
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if decoded.Kind() != KindFullTime || CalculateSalary(decoded) != 5750 {
		t.Fatalf("unexpected decoded employee %+v", decoded)
	}
}
