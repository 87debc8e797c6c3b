package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"staffpay/internal/domain/apperr"
	"staffpay/internal/domain/auth"
	"staffpay/internal/store/memory"
)

func newService(t *testing.T) *auth.Service {
	t.Helper()
	svc := auth.NewService(memory.NewUsers(), "test-secret", time.Hour)
	if _, err := svc.EnsureUser(context.Background(), "hr", "Secret123!", auth.RoleHR); err != nil {
		t.Fatalf("seed error: %v", err)
	}
	return svc
}

func TestLoginIssuesParsableToken(t *testing.T) {
	svc := newService(t)

	token, user, err := svc.Login(context.Background(), "hr", "Secret123!")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}
	if user.Role != auth.RoleHR {
		t.Fatalf("expected HR role, got %s", user.Role)
	}

	parsed, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if parsed.UserID != user.ID || parsed.Username != "hr" {
		t.Fatalf("unexpected user context %+v", parsed)
	}
}

func TestLoginFailures(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	if _, _, err := svc.Login(ctx, "hr", "wrong"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for wrong password, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "ghost", "Secret123!"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown user, got %v", err)
	}
	if _, _, err := svc.Login(ctx, " ", "x"); !apperr.IsInvalidInput(err) {
		t.Fatalf("expected invalid input for blank username, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "hr", ""); !apperr.IsInvalidInput(err) {
		t.Fatalf("expected invalid input for blank password, got %v", err)
	}
}

func TestEnsureUserKeepsExisting(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	again, err := svc.EnsureUser(ctx, "hr", "Different123!", auth.RoleAdmin)
	if err != nil {
		t.Fatalf("ensure error: %v", err)
	}
	if again.Role != auth.RoleHR {
		t.Fatalf("expected existing HR user to be kept, got %s", again.Role)
	}
	if !svc.ValidateCredentials(ctx, "hr", "Secret123!") {
		t.Fatal("expected original password to remain valid")
	}
	if _, err := svc.EnsureUser(ctx, "new", "Secret123!", "MANAGER"); !errors.Is(err, auth.ErrUnknownRole) {
		t.Fatalf("expected unknown role error, got %v", err)
	}
}

func TestVerifyUserAuthorization(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	if !svc.VerifyUserAuthorization(ctx, "hr", auth.RoleHR) {
		t.Fatal("expected HR authorization")
	}
	if svc.VerifyUserAuthorization(ctx, "hr", auth.RoleAdmin) {
		t.Fatal("did not expect ADMIN authorization")
	}
	if svc.VerifyUserAuthorization(ctx, "ghost", auth.RoleHR) {
		t.Fatal("did not expect authorization for unknown user")
	}
}
