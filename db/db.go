package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// DB holds the database connection backing the SQL storage drivers
var DB *sql.DB

// PostgresConnString builds the connection string from environment variables.
// DATABASE_URL wins when set.
func PostgresConnString() (string, error) {
	connStr := os.Getenv("DATABASE_URL")
	if connStr != "" {
		return connStr, nil
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	sslmode := os.Getenv("DB_SSLMODE")

	if host == "" || user == "" || dbname == "" {
		return "", fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}

	if port == "" {
		port = "5432"
	}
	if sslmode == "" {
		sslmode = "disable"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode), nil
}

// InitPostgres opens a PostgreSQL connection through the pgx stdlib driver
func InitPostgres(ctx context.Context) error {
	connStr, err := PostgresConnString()
	if err != nil {
		return err
	}
	return open(ctx, "pgx", connStr)
}

// InitSQLite opens (or creates) a SQLite database file
func InitSQLite(ctx context.Context, path string) error {
	return open(ctx, "sqlite", path)
}

func open(ctx context.Context, driver, dsn string) error {
	var err error
	DB, err = sql.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := DB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("✓ Database connection established successfully (driver=%s)", driver)
	return nil
}

// CloseDB closes the database connection
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
