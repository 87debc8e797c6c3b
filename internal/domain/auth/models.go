package auth

import "time"

const (
	RoleAdmin    = "ADMIN"
	RoleHR       = "HR"
	RoleEmployee = "EMPLOYEE"
)

var Roles = []string{RoleAdmin, RoleHR, RoleEmployee}

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserContext is the authenticated caller carried on a request context.
type UserContext struct {
	UserID   string
	Username string
	Role     string
}

// CanWrite reports whether the role may mutate employees, attendance or payroll.
func (u UserContext) CanWrite() bool {
	return u.Role == RoleAdmin || u.Role == RoleHR
}
