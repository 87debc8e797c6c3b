package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"staffpay/internal/domain/auth"
)

type UserStore struct {
	DB *pgxpool.Pool
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (auth.User, error) {
	var u auth.User
	err := s.DB.QueryRow(ctx, `
    SELECT id, username, password_hash, role, created_at
    FROM users
    WHERE username = $1
  `, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return auth.User{}, auth.NotFoundError(username)
		}
		return auth.User{}, err
	}
	return u, nil
}

// Save upserts on username.
func (s *UserStore) Save(ctx context.Context, u auth.User) (auth.User, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO users (username, password_hash, role, created_at)
    VALUES ($1, $2, $3, $4)
    ON CONFLICT (username) DO UPDATE
    SET password_hash = EXCLUDED.password_hash,
        role = EXCLUDED.role
    RETURNING id
  `, u.Username, u.PasswordHash, u.Role, u.CreatedAt).Scan(&u.ID)
	if err != nil {
		return auth.User{}, err
	}
	return u, nil
}
