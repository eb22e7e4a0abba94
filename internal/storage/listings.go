package storage

import (
	"context"
	"fmt"
)

// Listing is a property record, read-only from the pipeline's point of
// view: the inventory is populated out of band (listings import).
type Listing struct {
	ID           int64   `yaml:"-"`
	Price        int     `yaml:"price"`
	District     string  `yaml:"district"`
	PropertyType string  `yaml:"property_type"`
	Area         float64 `yaml:"area"`
	PetsAllowed  bool    `yaml:"pets_allowed"`
	Parking      bool    `yaml:"parking"`
	VerifiedAt   string  `yaml:"verified_at"`
	URL          string  `yaml:"url"`
}

// Listings returns up to limit listings in insertion order.
func (s *Store) Listings(ctx context.Context, limit int) ([]Listing, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, price, district, property_type, area, pets_allowed, parking, verified_at, url
		FROM listings ORDER BY id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}
	defer rows.Close()

	var listings []Listing
	for rows.Next() {
		var l Listing
		if err := rows.Scan(&l.ID, &l.Price, &l.District, &l.PropertyType, &l.Area,
			&l.PetsAllowed, &l.Parking, &l.VerifiedAt, &l.URL); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// InsertListing adds one listing to the inventory.
func (s *Store) InsertListing(ctx context.Context, l Listing) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO listings (price, district, property_type, area, pets_allowed, parking, verified_at, url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		l.Price, l.District, l.PropertyType, l.Area, l.PetsAllowed, l.Parking, l.VerifiedAt, l.URL)
	if err != nil {
		return fmt.Errorf("insert listing: %w", err)
	}
	return nil
}
