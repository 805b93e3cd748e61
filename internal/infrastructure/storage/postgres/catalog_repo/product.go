package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"pharmacore/internal/core/apperror"
	"pharmacore/internal/core/id"
	"pharmacore/internal/domain/analytics"
	"pharmacore/internal/domain/catalogs/product"
	"pharmacore/internal/infrastructure/storage/postgres"
)

const productsTable = "cat_products"

// ProductRepo implements product.Repository and analytics.ProductReader.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txManager *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			productsTable,
			postgres.ExtractDBColumns[product.Product](),
			func() *product.Product { return &product.Product{} },
		),
	}
}

// GetByIDs loads multiple products in one query.
func (r *ProductRepo) GetByIDs(ctx context.Context, ids []id.ID) ([]*product.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	q := r.baseSelect().
		Where(squirrel.Eq{"id": ids}).
		Where(squirrel.Eq{"deletion_mark": false})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*product.Product
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("get by ids: %w", err)
	}

	return items, nil
}

// GetByIDForUpdate loads a product with a row lock.
func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, productID id.ID) (*product.Product, error) {
	return r.GetForUpdate(ctx, productID)
}

// AdjustStock changes stock_qty by delta and returns the resulting quantity.
// The guard keeps stock_qty from going negative even under concurrent commits.
// Version is not bumped: stock movements are ledger-driven, not catalog edits.
func (r *ProductRepo) AdjustStock(ctx context.Context, productID id.ID, delta int64) (int64, error) {
	const sql = `
		UPDATE cat_products
		SET stock_qty = stock_qty + $1, updated_at = now()
		WHERE id = $2 AND deletion_mark = false AND stock_qty + $1 >= 0
		RETURNING stock_qty`

	var newStock int64
	err := r.Querier(ctx).QueryRow(ctx, sql, delta, productID).Scan(&newStock)
	if err == nil {
		return newStock, nil
	}
	if err != pgx.ErrNoRows {
		return 0, fmt.Errorf("adjust stock: %w", err)
	}

	// No row matched: either the product is gone or the guard rejected the delta.
	p, getErr := r.GetByID(ctx, productID)
	if getErr != nil {
		return 0, getErr
	}
	return 0, apperror.NewInsufficientStock(p.Name, -delta, p.StockQty)
}

// --- analytics.ProductReader ---

// ListForAnalysis returns product snapshots for the analytics engine,
// name ascending, with the total count before pagination.
func (r *ProductRepo) ListForAnalysis(ctx context.Context, filter analytics.Filter) ([]analytics.ProductInput, int64, error) {
	filter.Normalize()

	q := r.Builder().
		Select("id", "name", "stock_qty", "alert_qty", "cost", "price").
		From(productsTable).
		Where(squirrel.Eq{"deletion_mark": false})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"code": pattern},
		})
	}

	countQ := r.Builder().Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count: %w", err)
	}

	querier := r.Querier(ctx)
	var total int64
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}

	q = q.OrderBy("name ASC").
		Limit(uint64(filter.Limit)).
		Offset(uint64((filter.Page - 1) * filter.Limit))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build query: %w", err)
	}

	var rows []*product.Product
	if err := pgxscan.Select(ctx, querier, &rows, sql, args...); err != nil {
		return nil, 0, fmt.Errorf("list for analysis: %w", err)
	}

	inputs := make([]analytics.ProductInput, 0, len(rows))
	for _, p := range rows {
		inputs = append(inputs, toProductInput(p))
	}
	return inputs, total, nil
}

// GetForAnalysis returns one product snapshot.
func (r *ProductRepo) GetForAnalysis(ctx context.Context, productID id.ID) (analytics.ProductInput, error) {
	p, err := r.GetByID(ctx, productID)
	if err != nil {
		return analytics.ProductInput{}, err
	}
	return toProductInput(p), nil
}

func toProductInput(p *product.Product) analytics.ProductInput {
	return analytics.ProductInput{
		ProductID: p.ID,
		Name:      p.Name,
		StockQty:  p.StockQty,
		AlertQty:  p.AlertQty,
		Cost:      p.Cost.InexactFloat64(),
		Price:     p.Price.InexactFloat64(),
	}
}

var (
	_ product.Repository      = (*ProductRepo)(nil)
	_ analytics.ProductReader = (*ProductRepo)(nil)
)
