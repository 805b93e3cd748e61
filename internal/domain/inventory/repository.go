package inventory

import (
	"context"

	"pharmacore/internal/core/id"
)

// Repository defines storage operations for product batches.
type Repository interface {
	Create(ctx context.Context, b *ProductBatch) error
	GetByID(ctx context.Context, batchID id.ID) (*ProductBatch, error)

	// ListByProduct returns all batches for a product, expiry ascending.
	ListByProduct(ctx context.Context, productID id.ID) ([]*ProductBatch, error)

	// ListDrawableForUpdate returns active batches with positive quantity
	// for a product, expiry ascending, locked FOR UPDATE.
	// Requires transaction context.
	ListDrawableForUpdate(ctx context.Context, productID id.ID) ([]*ProductBatch, error)

	// ApplyDraw decrements a batch quantity and deactivates it when drained.
	// Requires transaction context. Fails if the decrement would go negative.
	ApplyDraw(ctx context.Context, batchID id.ID, qty int64) error

	// SumDrawable returns the total drawable quantity for a product.
	SumDrawable(ctx context.Context, productID id.ID) (int64, error)
}
