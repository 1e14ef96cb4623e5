package duckdbtesting

import (
	"database/sql"
	"testing"

	"learner/internal/duckdb"
	"learner/internal/testutil"
)

// Open opens a DuckDB database for the test and closes it on cleanup. An
// empty path opens an in-memory database.
func Open(t testing.TB, path string) *sql.DB {
	t.Helper()
	db, err := duckdb.Open(testutil.Context(t, 0), path)
	if err != nil {
		t.Fatalf("open duckdb: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// QueryInt returns a single integer value from db.
func QueryInt(t testing.TB, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var out int
	if err := db.QueryRowContext(testutil.Context(t, 0), query, args...).Scan(&out); err != nil {
		t.Fatalf("query int: %v", err)
	}
	return out
}
