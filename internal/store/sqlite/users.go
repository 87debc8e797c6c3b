package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"staffpay/internal/domain/auth"
)

type UserStore struct {
	db *sql.DB
	mu *sync.RWMutex
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		u         auth.User
		createdAt string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, role, created_at FROM users WHERE username = ?", username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.User{}, auth.NotFoundError(username)
	}
	if err != nil {
		return auth.User{}, err
	}
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return auth.User{}, err
	}
	return u, nil
}

// Save upserts on username and keeps the original id.
func (s *UserStore) Save(ctx context.Context, u auth.User) (auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, password_hash, role, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(username) DO UPDATE SET password_hash = excluded.password_hash, role = excluded.role
	`, u.ID, u.Username, u.PasswordHash, u.Role, formatTime(u.CreatedAt))
	if err != nil {
		return auth.User{}, fmt.Errorf("failed to save user: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, "SELECT id FROM users WHERE username = ?", u.Username).Scan(&u.ID); err != nil {
		return auth.User{}, err
	}
	return u, nil
}
