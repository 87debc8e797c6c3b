package apperr

import (
	"fmt"
	"testing"
)

func TestInvalidInputMatchesKind(t *testing.T) {
	err := InvalidInput("month cannot be empty")
	if !IsInvalidInput(err) {
		t.Fatalf("expected invalid input kind, got %v", err)
	}
	if IsNotFound(err) {
		t.Fatal("invalid input must not match not found")
	}
	if err.Error() != "invalid input: month cannot be empty" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestNotFoundSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("load payroll: %w", NotFound("Employee", "ID", "e-1"))
	if !IsNotFound(err) {
		t.Fatalf("expected not found kind, got %v", err)
	}
	if IsInvalidInput(err) {
		t.Fatal("not found must not match invalid input")
	}
}
