package orders

import (
	"context"

	"pharmacore/internal/core/id"
	"pharmacore/internal/domain"
)

// Repository defines storage operations for orders.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	SaveItems(ctx context.Context, orderID id.ID, items []Item) error
	GetByID(ctx context.Context, orderID id.ID) (*Order, error)
	GetItems(ctx context.Context, orderID id.ID) ([]Item, error)
	UpdateStatus(ctx context.Context, orderID id.ID, status Status) error
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Order], error)
}
