package entities

import (
	"time"
)

// Store represents a store owned by a PARTNER user.
//
// Rating is a cached aggregate of the store's reviews; the review set is
// the source of truth and the cache is recomputed synchronously after every
// review mutation.
type Store struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	OwnerID     string    `json:"owner_id" db:"owner_id"`
	Location    Location  `json:"location" db:"-"`
	Rating      float64   `json:"rating" db:"rating"`
	ReviewCount int       `json:"review_count" db:"review_count"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Location represents geographical coordinates
type Location struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

// StoreSummary is a store projection returned by ranked listings.
// Distance is the caller-relative great-circle distance in kilometres and
// is only populated for distance-sorted listings.
type StoreSummary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	OwnerID     string   `json:"owner_id"`
	Rating      float64  `json:"rating"`
	Location    Location `json:"location"`
	Distance    float64  `json:"distance"`
}
