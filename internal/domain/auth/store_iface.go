package auth

import "context"

// Repository persists users. FindByUsername returns an error matching
// apperr.ErrNotFound for unknown usernames. Save inserts when the ID is empty.
type Repository interface {
	FindByUsername(ctx context.Context, username string) (User, error)
	Save(ctx context.Context, u User) (User, error)
}
