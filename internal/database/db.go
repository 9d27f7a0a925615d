package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"todo-service/internal/config"
	"todo-service/pkg/logger"
)

// Open opens the database for the configured backend. sqlite runs on a single
// connection so submitted statements serialize instead of fighting over the
// file lock; postgres gets a real pool.
func Open(ctx context.Context) (*sql.DB, string, error) {
	cfg := config.Get()
	switch cfg.StoreBackend {
	case "sqlite":
		db, err := sql.Open("sqlite3", cfg.SQLitePath)
		if err != nil {
			return nil, "", fmt.Errorf("open sqlite %q: %w", cfg.SQLitePath, err)
		}
		db.SetMaxOpenConns(1)
		logger.Info(ctx, "SQLite database opened", "path", cfg.SQLitePath)
		return db, "sqlite3", nil
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, "", fmt.Errorf("DATABASE_URL is not set")
		}
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, "", fmt.Errorf("open postgres: %w", err)
		}
		db.SetMaxOpenConns(cfg.DBPoolSize)
		db.SetMaxIdleConns(cfg.DBPoolSize / 2)
		logger.Info(ctx, "Database pool initialized", "max_open", cfg.DBPoolSize)
		return db, "postgres", nil
	default:
		return nil, "", fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// CreateSchema creates the todos table if it does not exist. Safe to call on
// every startup. The postgres variant carries an explicit seq column because
// heap order is not insertion order there; sqlite already has rowid.
func CreateSchema(ctx context.Context, db *sql.DB, driver string) error {
	ddl := `CREATE TABLE IF NOT EXISTS todos (
		id INTEGER PRIMARY KEY,
		text TEXT NOT NULL,
		completed BOOLEAN NOT NULL
	)`
	if driver == "postgres" {
		ddl = `CREATE TABLE IF NOT EXISTS todos (
			seq BIGSERIAL,
			id BIGINT PRIMARY KEY,
			text TEXT NOT NULL,
			completed BOOLEAN NOT NULL
		)`
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create todos table: %w", err)
	}
	return nil
}
