package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"pharmacore/internal/core/id"
	"pharmacore/internal/domain/purchases"
	"pharmacore/internal/infrastructure/storage/postgres"
)

const (
	purchasesTable     = "doc_purchase_orders"
	purchaseLinesTable = "doc_purchase_lines"
)

// PurchaseRepo implements purchases.Repository.
type PurchaseRepo struct {
	*BaseDocumentRepo[*purchases.PurchaseOrder]
}

// NewPurchaseRepo creates a new purchase order repository.
func NewPurchaseRepo(txManager *postgres.TxManager) *PurchaseRepo {
	return &PurchaseRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			purchasesTable,
			postgres.ExtractDBColumns[purchases.PurchaseOrder](),
			func() *purchases.PurchaseOrder { return &purchases.PurchaseOrder{} },
		),
	}
}

// SaveLines replaces the purchase order's lines.
func (r *PurchaseRepo) SaveLines(ctx context.Context, purchaseID id.ID, lines []purchases.Line) error {
	querier := r.Querier(ctx)

	deleteSQL := "DELETE FROM " + purchaseLinesTable + " WHERE purchase_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, purchaseID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(purchaseLinesTable).
		Columns(
			"line_id", "purchase_id", "line_no", "product_id",
			"batch_number", "quantity", "unit_cost", "expiry_date",
		)

	for _, line := range lines {
		q = q.Values(
			line.LineID, purchaseID, line.LineNo, line.ProductID,
			line.BatchNumber, line.Quantity, line.UnitCost, line.ExpiryDate,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}

	return nil
}

// GetLines returns the purchase order's lines, line number ascending.
func (r *PurchaseRepo) GetLines(ctx context.Context, purchaseID id.ID) ([]purchases.Line, error) {
	q := r.Builder().
		Select(
			"line_id", "line_no", "product_id",
			"batch_number", "quantity", "unit_cost", "expiry_date",
		).
		From(purchaseLinesTable).
		Where(squirrel.Eq{"purchase_id": purchaseID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []purchases.Line
	if err := pgxscan.Select(ctx, r.Querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

var _ purchases.Repository = (*PurchaseRepo)(nil)
