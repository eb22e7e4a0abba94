package storage

import (
	"context"
	"fmt"
	"time"
)

// Answer values pets/parking questionnaire replies normalize to.
const (
	AnswerYes = "да"
	AnswerNo  = "нет"
)

// TenantProfile is a prospective tenant's stated requirements, written
// wholesale when the questionnaire completes. Zero budget bounds mean
// "unset".
type TenantProfile struct {
	ChatID       int64
	BudgetMin    int
	BudgetMax    int
	District     string
	MoveIn       string
	PropertyType string
	Occupants    int
	Pets         string
	Parking      string
}

// TenantProfile returns the stored profile for a chat, or nil when the
// questionnaire was never completed.
func (s *Store) TenantProfile(ctx context.Context, chatID int64) (*TenantProfile, error) {
	var p TenantProfile
	err := s.db.QueryRowContext(ctx, `
		SELECT chat_id, budget_min, budget_max, district, move_in, property_type, occupants, pets, parking
		FROM tenant_profiles WHERE chat_id = ?`, chatID).
		Scan(&p.ChatID, &p.BudgetMin, &p.BudgetMax, &p.District, &p.MoveIn,
			&p.PropertyType, &p.Occupants, &p.Pets, &p.Parking)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("tenant profile lookup: %w", err)
	}
	return &p, nil
}

// UpsertTenantProfile overwrites the chat's profile.
func (s *Store) UpsertTenantProfile(ctx context.Context, p TenantProfile) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tenant_profiles
			(chat_id, budget_min, budget_max, district, move_in, property_type, occupants, pets, parking, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(chat_id) DO UPDATE SET
			budget_min = excluded.budget_min,
			budget_max = excluded.budget_max,
			district = excluded.district,
			move_in = excluded.move_in,
			property_type = excluded.property_type,
			occupants = excluded.occupants,
			pets = excluded.pets,
			parking = excluded.parking,
			updated_at = excluded.updated_at`,
		p.ChatID, p.BudgetMin, p.BudgetMax, p.District, p.MoveIn,
		p.PropertyType, p.Occupants, p.Pets, p.Parking,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upsert tenant profile: %w", err)
	}
	return nil
}
