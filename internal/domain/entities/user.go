package entities

import (
	"time"
)

// Role is the access role assigned to a user at signup. It never changes
// afterwards; there is no promotion flow.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RolePartner  Role = "PARTNER"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RolePartner
}

// User represents a user in the system
type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
