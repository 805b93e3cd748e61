// Package inventory_repo provides the PostgreSQL product batch repository.
package inventory_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"pharmacore/internal/core/apperror"
	"pharmacore/internal/core/id"
	"pharmacore/internal/domain/inventory"
	"pharmacore/internal/infrastructure/storage/postgres"
	"pharmacore/internal/infrastructure/storage/postgres/catalog_repo"
)

const batchesTable = "cat_product_batches"

// BatchRepo implements inventory.Repository.
type BatchRepo struct {
	*catalog_repo.BaseCatalogRepo[*inventory.ProductBatch]
}

// NewBatchRepo creates a new batch repository.
func NewBatchRepo(txManager *postgres.TxManager) *BatchRepo {
	return &BatchRepo{
		BaseCatalogRepo: catalog_repo.NewBaseCatalogRepo(
			txManager,
			batchesTable,
			postgres.ExtractDBColumns[inventory.ProductBatch](),
			func() *inventory.ProductBatch { return &inventory.ProductBatch{} },
		),
	}
}

// ListByProduct returns all batches for a product, expiry ascending.
func (r *BatchRepo) ListByProduct(ctx context.Context, productID id.ID) ([]*inventory.ProductBatch, error) {
	q := r.Builder().
		Select(postgres.ExtractDBColumns[inventory.ProductBatch]()...).
		From(batchesTable).
		Where(squirrel.Eq{"product_id": productID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("expiry_date ASC", "received_at ASC", "batch_number ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*inventory.ProductBatch
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list by product: %w", err)
	}
	return items, nil
}

// ListDrawableForUpdate returns active batches with positive quantity for a
// product, expiry ascending, locked FOR UPDATE. Requires transaction context.
func (r *BatchRepo) ListDrawableForUpdate(ctx context.Context, productID id.ID) ([]*inventory.ProductBatch, error) {
	q := r.Builder().
		Select(postgres.ExtractDBColumns[inventory.ProductBatch]()...).
		From(batchesTable).
		Where(squirrel.Eq{"product_id": productID}).
		Where(squirrel.Eq{"status": inventory.BatchStatusActive}).
		Where(squirrel.Gt{"quantity": 0}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("expiry_date ASC", "received_at ASC", "batch_number ASC").
		Suffix("FOR UPDATE")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*inventory.ProductBatch
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list drawable for update: %w", err)
	}
	return items, nil
}

// ApplyDraw decrements a batch quantity and deactivates the batch when it
// drains to zero. The WHERE guard rejects decrements that would go negative.
func (r *BatchRepo) ApplyDraw(ctx context.Context, batchID id.ID, qty int64) error {
	if qty <= 0 {
		return apperror.NewValidation("draw quantity must be positive").
			WithDetail("quantity", qty)
	}

	const sql = `
		UPDATE cat_product_batches
		SET quantity = quantity - $1,
		    status = CASE WHEN quantity - $1 = 0 THEN 'inactive' ELSE status END
		WHERE id = $2 AND status = 'active' AND quantity >= $1`

	result, err := r.Querier(ctx).Exec(ctx, sql, qty, batchID)
	if err != nil {
		return fmt.Errorf("apply draw: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConflict("batch cannot cover draw").
			WithDetail("batchId", batchID).
			WithDetail("quantity", qty)
	}
	return nil
}

// SumDrawable returns the total drawable quantity for a product.
func (r *BatchRepo) SumDrawable(ctx context.Context, productID id.ID) (int64, error) {
	q := r.Builder().
		Select("COALESCE(SUM(quantity), 0)").
		From(batchesTable).
		Where(squirrel.Eq{"product_id": productID}).
		Where(squirrel.Eq{"status": inventory.BatchStatusActive}).
		Where(squirrel.Eq{"deletion_mark": false})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var total int64
	if err := r.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum drawable: %w", err)
	}
	return total, nil
}

var _ inventory.Repository = (*BatchRepo)(nil)
