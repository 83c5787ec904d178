package entities

import "time"

// Review rating bounds. Values outside the range are rejected, never
// clamped.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a customer review of a store. Creation requires the author to
// hold at least one confirmed reservation at the store.
type Review struct {
	ID        string    `json:"id" db:"id"`
	StoreID   string    `json:"store_id" db:"store_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Content   string    `json:"content" db:"content"`
	Rating    int       `json:"rating" db:"rating"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ValidRating reports whether rating is within [MinRating, MaxRating].
func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}
