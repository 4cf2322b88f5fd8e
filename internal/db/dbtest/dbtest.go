// Package dbtest opens a migrated SQLite ledger store for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"finance_tracker/internal/config"
	"finance_tracker/internal/db"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Open returns a fresh store backed by a file in the test's temp dir
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.Open(config.DriverSQLite, filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb, config.DriverSQLite))

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}
