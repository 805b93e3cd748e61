package purchases

import (
	"context"

	"pharmacore/internal/core/id"
	"pharmacore/internal/domain"
)

// Repository defines storage operations for purchase orders.
type Repository interface {
	Create(ctx context.Context, po *PurchaseOrder) error
	SaveLines(ctx context.Context, purchaseID id.ID, lines []Line) error
	GetByID(ctx context.Context, purchaseID id.ID) (*PurchaseOrder, error)
	GetLines(ctx context.Context, purchaseID id.ID) ([]Line, error)
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*PurchaseOrder], error)
}
