package document_repo

import (
	"pharmacore/internal/domain/adjustments"
	"pharmacore/internal/infrastructure/storage/postgres"
)

const adjustmentsTable = "doc_stock_adjustments"

// AdjustmentRepo implements adjustments.Repository.
type AdjustmentRepo struct {
	*BaseDocumentRepo[*adjustments.StockAdjustment]
}

// NewAdjustmentRepo creates a new stock adjustment repository.
func NewAdjustmentRepo(txManager *postgres.TxManager) *AdjustmentRepo {
	return &AdjustmentRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			adjustmentsTable,
			postgres.ExtractDBColumns[adjustments.StockAdjustment](),
			func() *adjustments.StockAdjustment { return &adjustments.StockAdjustment{} },
		),
	}
}

var _ adjustments.Repository = (*AdjustmentRepo)(nil)
