package testutil

import (
	"path/filepath"
	"testing"

	"streakboard/internal/db"

	"gorm.io/gorm"
)

// NewTestDatabase returns a migrated SQLite database that lives for the
// duration of the test.
func NewTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.OpenSQLite(filepath.Join(t.TempDir(), "streakboard-test.db"))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	if err := db.AutoMigrateAndIndexes(gdb); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return gdb
}
