package customer

import (
	"context"

	"pharmacore/internal/core/id"
	"pharmacore/internal/domain"
)

// Repository defines storage operations for customers.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, customerID id.ID) (*Customer, error)
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, customerID id.ID) error
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Customer], error)
	Exists(ctx context.Context, customerID id.ID) (bool, error)
}
