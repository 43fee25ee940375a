package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/allot/internal/db"
)

// NewTestDB opens a private in-memory SQLite store with the projects,
// resources and resource_assignments tables migrated. It is closed by
// t.Cleanup.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("opening in-memory store: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// NewTestUoW wraps database in the unit of work SQLiteTransactor expects.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
