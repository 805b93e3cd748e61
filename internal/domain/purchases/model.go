// Package purchases provides purchase order receipt: incoming batches and
// stock increments.
package purchases

import (
	"context"
	"time"

	"pharmacore/internal/core/apperror"
	"pharmacore/internal/core/entity"
	"pharmacore/internal/core/id"
	"pharmacore/internal/core/types"
)

// PurchaseOrder is a received supplier delivery.
type PurchaseOrder struct {
	entity.Document

	SupplierName string `db:"supplier_name" json:"supplierName"`

	TotalQuantity int64       `db:"total_quantity" json:"totalQuantity"`
	TotalCost     types.Money `db:"total_cost" json:"totalCost"`

	Lines []Line `db:"-" json:"lines"`
}

// Line is one received lot.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID   id.ID       `db:"product_id" json:"productId"`
	BatchNumber string      `db:"batch_number" json:"batchNumber"`
	Quantity    int64       `db:"quantity" json:"quantity"`
	UnitCost    types.Money `db:"unit_cost" json:"unitCost"`
	ExpiryDate  time.Time   `db:"expiry_date" json:"expiryDate"`
}

// New creates a purchase order document.
func New(supplierName string) *PurchaseOrder {
	return &PurchaseOrder{
		Document:     entity.NewDocument(),
		SupplierName: supplierName,
	}
}

// AddLine appends a received lot and recalculates totals.
func (po *PurchaseOrder) AddLine(productID id.ID, batchNumber string, qty int64, unitCost types.Money, expiry time.Time) {
	po.Lines = append(po.Lines, Line{
		LineID:      id.New(),
		LineNo:      len(po.Lines) + 1,
		ProductID:   productID,
		BatchNumber: batchNumber,
		Quantity:    qty,
		UnitCost:    unitCost,
		ExpiryDate:  expiry,
	})
	po.TotalQuantity += qty
	po.TotalCost = po.TotalCost.Add(types.MulQty(unitCost, qty))
}

// Validate implements entity.Validatable.
func (po *PurchaseOrder) Validate(ctx context.Context) error {
	if err := po.Document.Validate(ctx); err != nil {
		return err
	}

	if len(po.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, line := range po.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.Quantity <= 0 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.BatchNumber == "" {
			return apperror.NewValidation("batch number is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.ExpiryDate.IsZero() {
			return apperror.NewValidation("expiry date is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}
	return nil
}

var _ entity.Validatable = (*PurchaseOrder)(nil)
