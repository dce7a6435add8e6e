// Package postgres implements the observation and goal repositories on
// PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// DB wraps a *sql.DB and implements the domain repository interfaces.
type DB struct {
	sql *sql.DB
}

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// NewFromDB wraps an existing connection without running migrations; used by
// tests with a mock driver.
func NewFromDB(s *sql.DB) *DB {
	return &DB{sql: s}
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS observations (day DATE PRIMARY KEY, weight DOUBLE PRECISION NOT NULL CHECK(weight > 0), height DOUBLE PRECISION, recorded_at TIMESTAMPTZ NOT NULL);",
		"CREATE TABLE IF NOT EXISTS goals (id SMALLINT PRIMARY KEY CHECK(id = 1), target_weight DOUBLE PRECISION NOT NULL CHECK(target_weight > 0), target_date DATE, updated_at TIMESTAMPTZ NOT NULL);",
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
