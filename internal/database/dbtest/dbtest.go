// Package dbtest provides throwaway databases for tests.
package dbtest

import (
	"testing"

	"gorm.io/gorm"

	"forum/backend/internal/database"
)

// NewDB returns a migrated in-memory SQLite database that is closed when the
// test finishes. Every call gets its own database.
func NewDB(tb testing.TB) *gorm.DB {
	tb.Helper()

	db, err := database.Open("sqlite://file::memory:")
	if err != nil {
		tb.Fatalf("open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		tb.Fatalf("migrate test database: %v", err)
	}

	tb.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}
