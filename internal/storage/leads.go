package storage

import (
	"context"
	"fmt"
	"time"
)

// Lead is a persisted, scored market signal. Leads are append-only and
// unique by URL.
type Lead struct {
	ID           int64
	Title        string
	URL          string
	Published    string
	Source       string
	Summary      string
	DemandScore  int
	Segment      string
	Timing       string
	CompanyGuess string
	CreatedAt    time.Time
}

// IsSeen reports whether the URL was processed before, whether or not it
// qualified as a lead.
func (s *Store) IsSeen(ctx context.Context, url string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM seen WHERE url = ?`, url).Scan(&one)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("seen lookup: %w", err)
	}
	return true, nil
}

// MarkSeen records the URL as processed. Idempotent.
func (s *Store) MarkSeen(ctx context.Context, url string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO seen (url, first_seen) VALUES (?, ?)`,
		url, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("mark seen: %w", err)
	}
	return nil
}

// SaveLead inserts a lead and reports whether it was newly inserted. A
// repeated URL is a no-op returning false, never an error.
func (s *Store) SaveLead(ctx context.Context, lead Lead) (bool, error) {
	createdAt := lead.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO leads
			(title, url, published, source, summary, demand_score, segment, timing, company_guess, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		lead.Title, lead.URL, lead.Published, lead.Source, lead.Summary,
		lead.DemandScore, lead.Segment, lead.Timing, lead.CompanyGuess,
		createdAt.Format(time.RFC3339))
	if err != nil {
		return false, fmt.Errorf("insert lead: %w", err)
	}

	// INSERT OR IGNORE does not report rows affected reliably across
	// drivers; changes() does.
	var changes int
	if err := s.db.QueryRowContext(ctx, `SELECT changes()`).Scan(&changes); err != nil {
		return false, fmt.Errorf("insert lead changes: %w", err)
	}
	return changes > 0, nil
}

// LeadsSince returns leads created within the trailing window of the
// given hours, newest first. minScore and source are optional filters
// (zero values disable them).
func (s *Store) LeadsSince(ctx context.Context, hours int, minScore int, source string, limit int) ([]Lead, error) {
	if hours <= 0 {
		hours = DefaultPeriodHours
	}
	if limit <= 0 {
		limit = 10
	}
	cutoff := time.Now().UTC().Add(-time.Duration(hours) * time.Hour).Format(time.RFC3339)

	query := `SELECT id, title, url, published, source, summary, demand_score, segment, timing, company_guess, created_at
		FROM leads WHERE created_at >= ?`
	args := []any{cutoff}
	if minScore > 0 {
		query += ` AND demand_score >= ?`
		args = append(args, minScore)
	}
	if source != "" {
		query += ` AND source = ?`
		args = append(args, source)
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query leads: %w", err)
	}
	defer rows.Close()

	var leads []Lead
	for rows.Next() {
		var l Lead
		var createdAt string
		if err := rows.Scan(&l.ID, &l.Title, &l.URL, &l.Published, &l.Source, &l.Summary,
			&l.DemandScore, &l.Segment, &l.Timing, &l.CompanyGuess, &createdAt); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		l.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		leads = append(leads, l)
	}
	return leads, rows.Err()
}
