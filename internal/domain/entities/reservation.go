package entities

import (
	"time"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "PENDING"
	ReservationStatusConfirmed ReservationStatus = "CONFIRMED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
	ReservationStatusRejected  ReservationStatus = "REJECTED"
)

// ArrivalWindow is how early a customer may check in and still count as
// arrived. The window is the open interval (reservedAt-10m, reservedAt).
const ArrivalWindow = 10 * time.Minute

// Reservation represents a reserved time slot at a store.
//
// Reservations are never deleted; CANCELLED and REJECTED are terminal
// states recorded on the status field.
type Reservation struct {
	ID           string            `json:"id" db:"id"`
	StoreID      string            `json:"store_id" db:"store_id"`
	UserID       string            `json:"user_id" db:"user_id"`
	PhoneNumber  string            `json:"phone_number" db:"phone_number"`
	ReservedAt   time.Time         `json:"reserved_at" db:"reserved_at"`
	Status       ReservationStatus `json:"status" db:"status"`
	RejectReason string            `json:"reject_reason,omitempty" db:"reject_reason"`
	CreatedAt    time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at" db:"updated_at"`
}

// ArrivedAt reports whether arrivalTime falls inside the arrival window.
// Both bounds are exclusive: arriving exactly at reservedAt or exactly
// ten minutes early does not count.
func (r *Reservation) ArrivedAt(arrivalTime time.Time) bool {
	return arrivalTime.After(r.ReservedAt.Add(-ArrivalWindow)) &&
		arrivalTime.Before(r.ReservedAt)
}

// ArrivalCheck is the result of a kiosk arrival check.
type ArrivalCheck struct {
	ReservationID string `json:"reservation_id"`
	Arrived       bool   `json:"arrived"`
}
