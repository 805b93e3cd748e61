// Package customer provides the customer catalog.
package customer

import (
	"context"
	"time"

	"pharmacore/internal/core/apperror"
	"pharmacore/internal/core/entity"
)

// Customer represents a buyer known to the system.
// POS orders may reference the built-in walk-in customer.
type Customer struct {
	entity.BaseCatalog

	Name    string `db:"name" json:"name"`
	Email   string `db:"email" json:"email,omitempty"`
	Phone   string `db:"phone" json:"phone,omitempty"`
	Address string `db:"address" json:"address,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// New creates a new Customer with generated ID.
func New(name string) *Customer {
	now := time.Now().UTC()
	return &Customer{
		BaseCatalog: entity.NewBaseCatalog(),
		Name:        name,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate implements entity.Validatable.
func (c *Customer) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}

var _ entity.Validatable = (*Customer)(nil)
