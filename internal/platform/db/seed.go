package db

import (
	"context"
	"strings"

	"staffpay/internal/domain/auth"
)

type UserSeeder interface {
	EnsureUser(ctx context.Context, username, password, role string) (auth.User, error)
}

// Seed creates the bootstrap admin account. It is a no-op when no password is
// configured and leaves an existing account untouched.
func Seed(ctx context.Context, users UserSeeder, username, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return nil
	}
	_, err := users.EnsureUser(ctx, username, password, auth.RoleAdmin)
	return err
}
