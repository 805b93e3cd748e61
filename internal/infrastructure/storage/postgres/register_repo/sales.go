// Package register_repo provides the PostgreSQL sales ledger repository.
// Sales are an append-only register: one row per committed order line.
package register_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"pharmacore/internal/core/apperror"
	"pharmacore/internal/core/id"
	"pharmacore/internal/domain"
	"pharmacore/internal/domain/analytics"
	"pharmacore/internal/domain/sales"
	"pharmacore/internal/infrastructure/storage/postgres"
)

const salesTable = "reg_sales"

// SalesRepo implements sales.Repository and analytics.SalesReader.
type SalesRepo struct {
	txManager *postgres.TxManager
}

// NewSalesRepo creates a new sales ledger repository.
func NewSalesRepo(txManager *postgres.TxManager) *SalesRepo {
	return &SalesRepo{txManager: txManager}
}

func (r *SalesRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *SalesRepo) querier(ctx context.Context) postgres.Querier {
	return r.txManager.GetQuerier(ctx)
}

func (r *SalesRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder().
		Select(postgres.ExtractDBColumns[sales.Sale]()...).
		From(salesTable)
}

// Append inserts sale rows. The ledger is append-only: rows are never
// updated or deleted.
func (r *SalesRepo) Append(ctx context.Context, rows []*sales.Sale) error {
	if len(rows) == 0 {
		return nil
	}

	q := r.builder().
		Insert(salesTable).
		Columns(
			"id", "order_id", "order_number",
			"product_id", "product_name", "product_image",
			"quantity", "unit_price", "total",
			"customer_id", "customer_name", "payment_method", "created_at",
		)

	for _, s := range rows {
		q = q.Values(
			s.ID, s.OrderID, s.OrderNumber,
			s.ProductID, s.ProductName, s.ProductImage,
			s.Quantity, s.UnitPrice, s.Total,
			s.CustomerID, s.CustomerName, s.PaymentMethod, s.CreatedAt,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert sales: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("append sales: %w", err)
	}

	return nil
}

// ListByOrder returns the sale rows for one order.
func (r *SalesRepo) ListByOrder(ctx context.Context, orderID id.ID) ([]*sales.Sale, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"order_id": orderID}).
		OrderBy("created_at ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*sales.Sale
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list by order: %w", err)
	}
	return items, nil
}

// List retrieves sale rows with filtering and pagination.
func (r *SalesRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*sales.Sale], error) {
	result := domain.ListResult[*sales.Sale]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"product_name": pattern},
			squirrel.ILike{"order_number": pattern},
			squirrel.ILike{"customer_name": pattern},
		})
	}

	countQ := r.builder().Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}

	querier := r.querier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy, err := r.parseOrderBy(filter.OrderBy)
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy)

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list sales: %w", err)
	}

	return result, nil
}

// MonthlySales implements analytics.SalesReader over the ledger.
// Individual rows are returned rather than aggregates: the engine derives
// per-month average prices from them.
func (r *SalesRepo) MonthlySales(ctx context.Context, productIDs []id.ID, from, to time.Time) (map[id.ID][]analytics.SaleInput, error) {
	if len(productIDs) == 0 {
		return map[id.ID][]analytics.SaleInput{}, nil
	}

	q := r.builder().
		Select(
			"product_id",
			"quantity",
			"unit_price",
			"EXTRACT(YEAR FROM created_at)::int AS year",
			"EXTRACT(MONTH FROM created_at)::int AS month",
		).
		From(salesTable).
		Where(squirrel.Eq{"product_id": productIDs}).
		Where(squirrel.GtOrEq{"created_at": from}).
		Where(squirrel.Lt{"created_at": to}).
		OrderBy("created_at ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	type saleRow struct {
		ProductID id.ID   `db:"product_id"`
		Quantity  int64   `db:"quantity"`
		UnitPrice float64 `db:"unit_price"`
		Year      int     `db:"year"`
		Month     int     `db:"month"`
	}

	var rows []saleRow
	if err := pgxscan.Select(ctx, r.querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("monthly sales: %w", err)
	}

	byProduct := make(map[id.ID][]analytics.SaleInput, len(productIDs))
	for _, row := range rows {
		byProduct[row.ProductID] = append(byProduct[row.ProductID], analytics.SaleInput{
			Quantity:  row.Quantity,
			SalePrice: row.UnitPrice,
			Year:      row.Year,
			Month:     row.Month,
		})
	}
	return byProduct, nil
}

func (r *SalesRepo) parseOrderBy(orderBy string) (string, error) {
	allowed := map[string]struct{}{}
	for _, col := range postgres.ExtractDBColumns[sales.Sale]() {
		allowed[col] = struct{}{}
	}

	if orderBy == "" {
		return "created_at DESC", nil
	}

	direction := "ASC"
	field := orderBy
	if len(orderBy) > 1 && orderBy[0] == '-' {
		direction = "DESC"
		field = orderBy[1:]
	}

	if _, ok := allowed[field]; !ok {
		return "", apperror.NewValidation("invalid orderBy").WithDetail("orderBy", orderBy)
	}

	return field + " " + direction, nil
}

var (
	_ sales.Repository      = (*SalesRepo)(nil)
	_ analytics.SalesReader = (*SalesRepo)(nil)
)
