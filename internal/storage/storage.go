package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store is the persistence gateway: leads, seen URLs, per-chat
// preferences, scan state, tenant profiles and the listing inventory.
// All writes go through a single connection, which is what SQLite wants.
type Store struct {
	db *sql.DB
}

// Open opens (and creates if needed) the SQLite database at path and
// ensures the schema exists.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	s := &Store{db: db}
	if err := s.init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS seen (
			url TEXT PRIMARY KEY,
			first_seen TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS leads (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT,
			url TEXT UNIQUE,
			published TEXT,
			source TEXT,
			summary TEXT,
			demand_score INTEGER,
			segment TEXT,
			timing TEXT,
			company_guess TEXT,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads(created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_leads_score ON leads(demand_score);`,
		`CREATE TABLE IF NOT EXISTS chat_prefs (
			chat_id INTEGER PRIMARY KEY,
			period_hours INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS scan_state (
			name TEXT PRIMARY KEY,
			last_run TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS tenant_profiles (
			chat_id INTEGER PRIMARY KEY,
			budget_min INTEGER,
			budget_max INTEGER,
			district TEXT,
			move_in TEXT,
			property_type TEXT,
			occupants INTEGER,
			pets TEXT,
			parking TEXT,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS listings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			price INTEGER NOT NULL,
			district TEXT,
			property_type TEXT,
			area REAL,
			pets_allowed INTEGER NOT NULL DEFAULT 0,
			parking INTEGER NOT NULL DEFAULT 0,
			verified_at TEXT,
			url TEXT
		);`,
	}

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	return tx.Commit()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
