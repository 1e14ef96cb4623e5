package kvstore

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"learner/internal/duckdb"
)

//go:embed schema.sql
var schemaDDL string

// DuckDB stores keys in a kv table.
type DuckDB struct {
	db     *sql.DB
	ownsDB bool
}

// OpenDuckDB opens the database at path and prepares the kv table.
func OpenDuckDB(ctx context.Context, path string) (*DuckDB, error) {
	db, err := duckdb.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	store, err := NewDuckDB(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	store.ownsDB = true
	return store, nil
}

// NewDuckDB wraps an open database. Close leaves db open.
func NewDuckDB(ctx context.Context, db *sql.DB) (*DuckDB, error) {
	if err := duckdb.EnsureSchema(ctx, db, schemaDDL); err != nil {
		return nil, fmt.Errorf("kvstore: %w", err)
	}
	return &DuckDB{db: db}, nil
}

func (s *DuckDB) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kvstore: get %q: %w", key, err)
	}
	return value, nil
}

func (s *DuckDB) Put(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	if _, err := s.db.ExecContext(
		ctx,
		`INSERT INTO kv (key, value, updated_at)
		 VALUES (?, ?, now())
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key,
		value,
	); err != nil {
		return fmt.Errorf("kvstore: put %q: %w", key, err)
	}
	return nil
}

func (s *DuckDB) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("kvstore: delete %q: %w", key, err)
	}
	return nil
}

// Close closes the database when this store opened it.
func (s *DuckDB) Close() error {
	if !s.ownsDB {
		return nil
	}
	return s.db.Close()
}
