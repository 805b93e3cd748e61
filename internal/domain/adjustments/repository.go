package adjustments

import (
	"context"

	"pharmacore/internal/core/id"
	"pharmacore/internal/domain"
)

// Repository defines storage operations for stock adjustments.
type Repository interface {
	Create(ctx context.Context, a *StockAdjustment) error
	GetByID(ctx context.Context, adjustmentID id.ID) (*StockAdjustment, error)
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*StockAdjustment], error)
}
