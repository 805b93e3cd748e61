package sales

import (
	"context"

	"pharmacore/internal/core/id"
	"pharmacore/internal/domain"
)

// Repository defines storage operations for the sales ledger.
type Repository interface {
	// Append inserts sale rows; sales are never updated or deleted.
	Append(ctx context.Context, rows []*Sale) error

	ListByOrder(ctx context.Context, orderID id.ID) ([]*Sale, error)
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Sale], error)
}
