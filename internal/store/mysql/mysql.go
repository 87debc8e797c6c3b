// Package mysql implements the domain repositories on MySQL through gorm.
// Tables are created with AutoMigrate on Open.
package mysql

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Store struct {
	DB *gorm.DB

	Employees  *EmployeeStore
	Attendance *AttendanceStore
	Payrolls   *PayrollStore
	Users      *UserStore
}

// Open connects and migrates. parseTime and a UTC location are added to the
// DSN when missing so DATETIME columns scan into time.Time.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(mysql.Open(withTimeParams(dsn)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mysql: %w", err)
	}
	if err := migrateOrClose(db); err != nil {
		return nil, err
	}
	return New(db), nil
}

// migrateOrClose releases the connection pool when the schema cannot be
// brought up to date.
func migrateOrClose(db *gorm.DB) error {
	err := db.AutoMigrate(&employeeRow{}, &attendanceRow{}, &payrollRow{}, &userRow{})
	if err == nil {
		return nil
	}
	if sqlDB, dbErr := db.DB(); dbErr == nil {
		_ = sqlDB.Close()
	}
	return fmt.Errorf("failed to migrate mysql: %w", err)
}

func New(db *gorm.DB) *Store {
	return &Store{
		DB:         db,
		Employees:  &EmployeeStore{db: db},
		Attendance: &AttendanceStore{db: db},
		Payrolls:   &PayrollStore{db: db},
		Users:      &UserStore{db: db},
	}
}

func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) Ping() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func withTimeParams(dsn string) string {
	var params []string
	if !strings.Contains(dsn, "parseTime=") {
		params = append(params, "parseTime=true")
	}
	if !strings.Contains(dsn, "loc=") {
		params = append(params, "loc=UTC")
	}
	if len(params) == 0 {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
