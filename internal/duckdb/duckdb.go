package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/duckdb/duckdb-go/v2"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Open opens a DuckDB database at path and verifies it responds. An empty
// path opens an in-memory database. Parent directories are created.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if ctx == nil {
		return nil, errors.New("duckdb: context is nil")
	}
	dsn := path
	if dsn == "" || dsn == MemoryPath {
		dsn = ""
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("duckdb: create dir: %w", err)
	}
	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("duckdb: open %s: %w", displayPath(path), err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("duckdb: ping %s: %w", displayPath(path), err)
	}
	return db, nil
}

// EnsureSchema applies idempotent DDL to db.
func EnsureSchema(ctx context.Context, db *sql.DB, ddl string) error {
	if db == nil {
		return errors.New("duckdb: db is nil")
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("duckdb: apply schema: %w", err)
	}
	return nil
}

func displayPath(path string) string {
	if path == "" {
		return MemoryPath
	}
	return path
}
