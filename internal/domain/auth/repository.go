package auth

import (
	"context"

	"pharmacore/internal/core/id"
)

// Repository defines storage operations for user accounts.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, userID id.ID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
