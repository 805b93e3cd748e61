package dto

import (
	"time"

	"pharmacore/internal/core/apperror"
	"pharmacore/internal/core/id"
	"pharmacore/internal/core/types"
	"pharmacore/internal/domain/inventory"
)

// AddBatchRequest registers a received batch directly.
type AddBatchRequest struct {
	ProductID   string    `json:"productId" binding:"required"`
	BatchNumber string    `json:"batchNumber" binding:"required"`
	Quantity    int64     `json:"quantity" binding:"required"`
	ExpiryDate  time.Time `json:"expiryDate" binding:"required"`
	UnitCost    string    `json:"unitCost"`
}

// ToEntity converts the request to a ProductBatch.
func (r AddBatchRequest) ToEntity() (*inventory.ProductBatch, error) {
	productID, err := id.Parse(r.ProductID)
	if err != nil {
		return nil, apperror.NewValidation("invalid product id").
			WithDetail("field", "productId")
	}

	unitCost := types.Zero()
	if r.UnitCost != "" {
		unitCost, err = types.NewMoneyFromString(r.UnitCost)
		if err != nil {
			return nil, apperror.NewValidation("invalid unit cost").
				WithDetail("field", "unitCost")
		}
	}

	return inventory.NewBatch(productID, r.BatchNumber, r.Quantity, r.ExpiryDate, unitCost), nil
}

// AvailabilityResponse reports drawable stock for a product.
type AvailabilityResponse struct {
	ProductID string `json:"productId"`
	Available int64  `json:"available"`
}
