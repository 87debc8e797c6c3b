package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staffpay/internal/domain/employee"
	"staffpay/internal/store/storetest"
)

func TestSQLiteStore(t *testing.T) {
	store, err := New(":memory:")
	require.NoError(t, err)
	defer store.Close()

	storetest.Run(t, storetest.Repos{
		Employees:  store.Employees,
		Attendance: store.Attendance,
		Payrolls:   store.Payrolls,
		Users:      store.Users,
	})
}

func TestFileDatabaseSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "staffpay.db")
	ctx := context.Background()
	now := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)

	store, err := New(path)
	require.NoError(t, err)
	emp, err := store.Employees.Save(ctx, employee.Employee{Name: "Ana", Variant: employee.Tester{BugsFound: employee.Int(4)}, CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()
	got, err := reopened.Employees.FindByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, employee.Tester{BugsFound: employee.Int(4)}, got.Variant)
}
