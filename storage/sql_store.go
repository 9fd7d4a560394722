package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
)

// Dialect selects the placeholder style of the SQL backend
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// SQLStore persists keys in a single kv_store table.
// Works with both the pgx stdlib driver and modernc.org/sqlite.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
}

// NewSQLStore creates a SQLStore over an open connection
func NewSQLStore(db *sql.DB, dialect Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect}
}

var _ Storage = (*SQLStore)(nil)

// EnsureSchema creates the kv_store table if it does not exist
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS kv_store (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		log.Printf("❌ Error creating kv_store table: %v", err)
		return fmt.Errorf("failed to create kv_store table: %w", err)
	}
	log.Printf("✓ kv_store table ready (dialect=%s)", s.dialect)
	return nil
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	query := fmt.Sprintf(`SELECT value FROM kv_store WHERE key = %s`, s.placeholder(1))

	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		log.Printf("❌ Error reading key %s: %v", key, err)
		return "", false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value string) error {
	query := fmt.Sprintf(`
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (%s, %s, CURRENT_TIMESTAMP)
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = CURRENT_TIMESTAMP
	`, s.placeholder(1), s.placeholder(2))

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		log.Printf("❌ Error writing key %s: %v", key, err)
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Remove(ctx context.Context, key string) error {
	query := fmt.Sprintf(`DELETE FROM kv_store WHERE key = %s`, s.placeholder(1))
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		log.Printf("❌ Error removing key %s: %v", key, err)
		return fmt.Errorf("failed to remove key %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) placeholder(n int) string {
	if s.dialect == DialectPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}
