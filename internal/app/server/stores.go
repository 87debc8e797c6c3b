package server

import (
	"context"
	"fmt"

	"staffpay/internal/domain/attendance"
	"staffpay/internal/domain/auth"
	"staffpay/internal/domain/employee"
	"staffpay/internal/domain/payroll"
	"staffpay/internal/platform/config"
	"staffpay/internal/platform/db"
	"staffpay/internal/store/memory"
	"staffpay/internal/store/mysql"
	"staffpay/internal/store/postgres"
	"staffpay/internal/store/sqlite"
)

// repositories is the driver-neutral view of whichever store STORE_DRIVER selects.
type repositories struct {
	employees  employee.Repository
	attendance attendance.Repository
	payrolls   payroll.Repository
	users      auth.Repository
	ping       func(ctx context.Context) error
	close      func()
}

func openStore(ctx context.Context, cfg config.Config) (repositories, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		store := memory.New()
		return repositories{
			employees:  store.Employees,
			attendance: store.Attendance,
			payrolls:   store.Payrolls,
			users:      store.Users,
			ping:       func(context.Context) error { return nil },
			close:      func() {},
		}, nil

	case config.StorePostgres:
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return repositories{}, fmt.Errorf("db connect failed: %w", err)
		}
		if cfg.RunMigrations {
			if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
				pool.Close()
				return repositories{}, fmt.Errorf("migrations failed: %w", err)
			}
		}
		store := postgres.New(pool)
		return repositories{
			employees:  store.Employees,
			attendance: store.Attendance,
			payrolls:   store.Payrolls,
			users:      store.Users,
			ping:       pool.Ping,
			close:      pool.Close,
		}, nil

	case config.StoreMySQL:
		store, err := mysql.Open(cfg.MySQLDSN)
		if err != nil {
			return repositories{}, err
		}
		return repositories{
			employees:  store.Employees,
			attendance: store.Attendance,
			payrolls:   store.Payrolls,
			users:      store.Users,
			ping:       func(context.Context) error { return store.Ping() },
			close:      func() { _ = store.Close() },
		}, nil

	case config.StoreSQLite:
		store, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return repositories{}, err
		}
		return repositories{
			employees:  store.Employees,
			attendance: store.Attendance,
			payrolls:   store.Payrolls,
			users:      store.Users,
			ping:       func(context.Context) error { return store.Ping() },
			close:      func() { _ = store.Close() },
		}, nil
	}
	return repositories{}, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
