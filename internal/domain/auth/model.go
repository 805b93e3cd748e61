// Package auth provides the slim authentication boundary: login with
// bcrypt-hashed passwords and JWT bearer tokens.
package auth

import (
	"time"

	"pharmacore/internal/core/entity"
)

// User is an operator account.
type User struct {
	entity.BaseCatalog

	Email        string `db:"email" json:"email"`
	Name         string `db:"name" json:"name"`
	PasswordHash string `db:"password_hash" json:"-"`
	Role         string `db:"role" json:"role"`
	Active       bool   `db:"active" json:"active"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Roles known to the system.
const (
	RoleAdmin      = "admin"
	RolePharmacist = "pharmacist"
	RoleCashier    = "cashier"
)

// LoginResult carries the issued token and user profile.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *User     `json:"user"`
}
