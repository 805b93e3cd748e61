package product

import (
	"context"

	"pharmacore/internal/core/id"
	"pharmacore/internal/domain"
)

// Repository defines storage operations for products.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, productID id.ID) (*Product, error)
	GetByCode(ctx context.Context, code string) (*Product, error)

	// GetByIDs loads multiple products in one query (order commit pre-checks).
	GetByIDs(ctx context.Context, ids []id.ID) ([]*Product, error)

	// GetByIDForUpdate loads a product with a row lock; requires transaction context.
	GetByIDForUpdate(ctx context.Context, productID id.ID) (*Product, error)

	// Update modifies an existing product with optimistic locking.
	Update(ctx context.Context, p *Product) error

	// AdjustStock changes stock_qty by delta (may be negative); requires
	// transaction context. Returns the resulting stock quantity.
	AdjustStock(ctx context.Context, productID id.ID, delta int64) (int64, error)

	Delete(ctx context.Context, productID id.ID) error
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
