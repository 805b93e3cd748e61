// Package inventory provides the multi-batch stock ledger and FIFO
// expiry-ordered deduction.
package inventory

import (
	"context"
	"time"

	"pharmacore/internal/core/apperror"
	"pharmacore/internal/core/entity"
	"pharmacore/internal/core/id"
	"pharmacore/internal/core/types"
)

// BatchStatus marks whether a batch still participates in deduction.
type BatchStatus string

const (
	BatchStatusActive   BatchStatus = "active"
	BatchStatusInactive BatchStatus = "inactive"
)

// ProductBatch is one received lot of a product.
// Only active batches with positive quantity participate in FIFO deduction.
type ProductBatch struct {
	entity.BaseCatalog

	ProductID id.ID `db:"product_id" json:"productId"`

	// BatchNumber is the supplier/lot number
	BatchNumber string `db:"batch_number" json:"batchNumber"`

	// Quantity is the remaining units in this batch; never negative
	Quantity int64 `db:"quantity" json:"quantity"`

	// ExpiryDate drives deduction order: soonest-to-expire first
	ExpiryDate time.Time `db:"expiry_date" json:"expiryDate"`

	Status BatchStatus `db:"status" json:"status"`

	// UnitCost is the acquisition cost for this lot
	UnitCost types.Money `db:"unit_cost" json:"unitCost"`

	ReceivedAt time.Time `db:"received_at" json:"receivedAt"`
}

// NewBatch creates an active batch for a product.
func NewBatch(productID id.ID, batchNumber string, quantity int64, expiry time.Time, unitCost types.Money) *ProductBatch {
	return &ProductBatch{
		BaseCatalog: entity.NewBaseCatalog(),
		ProductID:   productID,
		BatchNumber: batchNumber,
		Quantity:    quantity,
		ExpiryDate:  expiry,
		Status:      BatchStatusActive,
		UnitCost:    unitCost,
		ReceivedAt:  time.Now().UTC(),
	}
}

// Validate implements entity.Validatable.
func (b *ProductBatch) Validate(ctx context.Context) error {
	if id.IsNil(b.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}
	if b.BatchNumber == "" {
		return apperror.NewValidation("batch number is required").
			WithDetail("field", "batchNumber")
	}
	if b.Quantity < 0 {
		return apperror.NewValidation("quantity cannot be negative").
			WithDetail("field", "quantity")
	}
	if b.ExpiryDate.IsZero() {
		return apperror.NewValidation("expiry date is required").
			WithDetail("field", "expiryDate")
	}
	return nil
}

// IsDrawable reports whether the batch participates in FIFO deduction.
func (b *ProductBatch) IsDrawable() bool {
	return b.Status == BatchStatusActive && b.Quantity > 0
}

// Draw is one planned deduction from a specific batch.
type Draw struct {
	BatchID     id.ID  `json:"batchId"`
	BatchNumber string `json:"batchNumber"`
	Quantity    int64  `json:"quantity"`
}

// Plan is the result of planning a FIFO deduction.
type Plan struct {
	Draws []Draw `json:"draws"`

	// Shortfall is the quantity that could not be covered by active batches.
	// Zero means the plan fully covers the request.
	Shortfall int64 `json:"shortfall"`
}

// Covered returns the total quantity the plan draws from batches.
func (p Plan) Covered() int64 {
	var total int64
	for _, d := range p.Draws {
		total += d.Quantity
	}
	return total
}

var _ entity.Validatable = (*ProductBatch)(nil)
