package models

import (
	"time"

	"github.com/google/uuid"
)

// Staff roles. An explicit enumeration rather than a generic is_staff flag so
// dispatch access can be granted without admin rights.
const (
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

func ValidRole(role string) bool {
	return role == RoleManager || role == RoleAdmin
}

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
