// Package adjustments provides manual stock corrections: additions create
// a batch, removals draw FIFO from existing batches.
package adjustments

import (
	"context"
	"time"

	"pharmacore/internal/core/apperror"
	"pharmacore/internal/core/entity"
	"pharmacore/internal/core/id"
	"pharmacore/internal/core/types"
)

// Direction of the adjustment.
type Direction string

const (
	DirectionAdd    Direction = "add"
	DirectionRemove Direction = "remove"
)

// StockAdjustment is a manual correction document.
type StockAdjustment struct {
	entity.Document

	ProductID id.ID     `db:"product_id" json:"productId"`
	Direction Direction `db:"direction" json:"direction"`
	Quantity  int64     `db:"quantity" json:"quantity"`
	Reason    string    `db:"reason" json:"reason"`

	// Add-direction fields: the created batch
	BatchNumber string      `db:"batch_number" json:"batchNumber,omitempty"`
	ExpiryDate  *time.Time  `db:"expiry_date" json:"expiryDate,omitempty"`
	UnitCost    types.Money `db:"unit_cost" json:"unitCost"`
}

// New creates an adjustment document.
func New(productID id.ID, direction Direction, qty int64, reason string) *StockAdjustment {
	return &StockAdjustment{
		Document:  entity.NewDocument(),
		ProductID: productID,
		Direction: direction,
		Quantity:  qty,
		Reason:    reason,
	}
}

// Validate implements entity.Validatable.
func (a *StockAdjustment) Validate(ctx context.Context) error {
	if err := a.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(a.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}
	if a.Quantity <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}
	if a.Reason == "" {
		return apperror.NewValidation("reason is required").
			WithDetail("field", "reason")
	}

	switch a.Direction {
	case DirectionAdd:
		if a.BatchNumber == "" {
			return apperror.NewValidation("batch number is required for additions").
				WithDetail("field", "batchNumber")
		}
		if a.ExpiryDate == nil || a.ExpiryDate.IsZero() {
			return apperror.NewValidation("expiry date is required for additions").
				WithDetail("field", "expiryDate")
		}
	case DirectionRemove:
	default:
		return apperror.NewValidation("unknown adjustment direction").
			WithDetail("field", "direction")
	}
	return nil
}

var _ entity.Validatable = (*StockAdjustment)(nil)
