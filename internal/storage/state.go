package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// DefaultPeriodHours is the lookback window applied to a chat that never
// configured one (7 days).
const DefaultPeriodHours = 168

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// LastScanTime returns the recorded completion time of a named recurring
// scan. ok is false when the scan never ran.
func (s *Store) LastScanTime(ctx context.Context, name string) (t time.Time, ok bool, err error) {
	var raw string
	err = s.db.QueryRowContext(ctx, `SELECT last_run FROM scan_state WHERE name = ?`, name).Scan(&raw)
	if err != nil {
		if isNoRows(err) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("scan state lookup: %w", err)
	}
	t, err = time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("scan state parse: %w", err)
	}
	return t, true, nil
}

// SetLastScanTime upserts the completion timestamp for a named scan.
func (s *Store) SetLastScanTime(ctx context.Context, name string, t time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scan_state (name, last_run) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET last_run = excluded.last_run`,
		name, t.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("set scan state: %w", err)
	}
	return nil
}

// PeriodHours returns the chat's lookback window, creating the default
// row on first access.
func (s *Store) PeriodHours(ctx context.Context, chatID int64) (int, error) {
	var hours int
	err := s.db.QueryRowContext(ctx, `SELECT period_hours FROM chat_prefs WHERE chat_id = ?`, chatID).Scan(&hours)
	if err == nil {
		return hours, nil
	}
	if !isNoRows(err) {
		return 0, fmt.Errorf("period lookup: %w", err)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO chat_prefs (chat_id, period_hours) VALUES (?, ?)`,
		chatID, DefaultPeriodHours); err != nil {
		return 0, fmt.Errorf("period default insert: %w", err)
	}
	return DefaultPeriodHours, nil
}

// SetPeriodHours upserts the chat's lookback window.
func (s *Store) SetPeriodHours(ctx context.Context, chatID int64, hours int) error {
	if hours <= 0 {
		return fmt.Errorf("period must be positive, got %d", hours)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_prefs (chat_id, period_hours) VALUES (?, ?)
		ON CONFLICT(chat_id) DO UPDATE SET period_hours = excluded.period_hours`,
		chatID, hours)
	if err != nil {
		return fmt.Errorf("set period: %w", err)
	}
	return nil
}
