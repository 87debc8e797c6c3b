// Package postgres implements the domain repositories on PostgreSQL via pgx.
// The schema lives in migrations/ and is applied by platform/db.Migrate.
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	Employees  *EmployeeStore
	Attendance *AttendanceStore
	Payrolls   *PayrollStore
	Users      *UserStore
}

func New(db *pgxpool.Pool) *Store {
	return &Store{
		Employees:  &EmployeeStore{DB: db},
		Attendance: &AttendanceStore{DB: db},
		Payrolls:   &PayrollStore{DB: db},
		Users:      &UserStore{DB: db},
	}
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
