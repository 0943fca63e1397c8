package entity

import "time"

// Product is a catalogue item managed from the dashboard.
// Name and Slug are unique across the catalogue.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Brand         string    `json:"brand"`
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	CountInStock  int       `json:"countInStock"`
	Rating        float64   `json:"rating"`
	NumReviews    int       `json:"numReviews"`
	Image         string    `json:"image"`
	ImagePublicID string    `json:"imagePublicId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
