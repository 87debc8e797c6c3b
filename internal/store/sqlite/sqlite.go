/*
Package sqlite provides a SQLite-backed implementation of the domain repositories.

The schema is created on New. Timestamps are stored as fixed-width UTC text so
that ORDER BY on them is chronological, and calendar days as YYYY-MM-DD.

A single connection is used: SQLite allows one writer at a time and every
":memory:" connection would otherwise open its own empty database. Writes are
additionally serialized with a sync.RWMutex.

USAGE:

	store, err := sqlite.New("./data/staffpay.db")
	if err != nil {
	    log.Fatal(err)
	}
	defer store.Close()
*/
package sqlite

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	timeLayout = "2006-01-02T15:04:05.000000000Z"
	dateLayout = "2006-01-02"
)

type Store struct {
	db *sql.DB
	mu *sync.RWMutex

	Employees  *EmployeeStore
	Attendance *AttendanceStore
	Payrolls   *PayrollStore
	Users      *UserStore
}

// New opens the database at dbPath. Use ":memory:" for a throwaway database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	mu := &sync.RWMutex{}
	return &Store{
		db:         db,
		mu:         mu,
		Employees:  &EmployeeStore{db: db, mu: mu},
		Attendance: &AttendanceStore{db: db, mu: mu},
		Payrolls:   &PayrollStore{db: db, mu: mu},
		Users:      &UserStore{db: db, mu: mu},
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping() error {
	return s.db.Ping()
}

func migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		department TEXT,
		salary REAL,
		role_type TEXT,
		employee_type TEXT NOT NULL DEFAULT 'EMPLOYEE',
		benefits TEXT,
		annual_leave INTEGER,
		hourly_rate REAL,
		hours_worked INTEGER,
		contract_duration INTEGER,
		contract_amount REAL,
		programming_languages TEXT,
		projects_completed INTEGER,
		testing_tools TEXT,
		bugs_found INTEGER,
		hr_specialization TEXT,
		employees_managed INTEGER,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_employees_department
		ON employees(department);

	CREATE TABLE IF NOT EXISTS attendance (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		attendance_date TEXT NOT NULL,
		status TEXT,
		check_in_time TEXT,
		check_out_time TEXT,
		hours_worked INTEGER,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_attendance_employee_date
		ON attendance(employee_id, attendance_date);
	CREATE INDEX IF NOT EXISTS idx_attendance_date
		ON attendance(attendance_date);

	-- Payroll rows are snapshots and outlive the employee they describe.
	CREATE TABLE IF NOT EXISTS payroll (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		month TEXT NOT NULL,
		year INTEGER NOT NULL,
		basic_salary REAL NOT NULL,
		allowances REAL NOT NULL,
		deductions REAL NOT NULL,
		net_salary REAL NOT NULL,
		payment_date TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_payroll_employee
		ON payroll(employee_id);
	CREATE INDEX IF NOT EXISTS idx_payroll_period
		ON payroll(month, year);

	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`

	_, err := db.Exec(schema)
	return err
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad timestamp %q: %w", raw, err)
	}
	return t, nil
}

func parseTimePtr(raw sql.NullString) (*time.Time, error) {
	if !raw.Valid {
		return nil, nil
	}
	t, err := parseTime(raw.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
