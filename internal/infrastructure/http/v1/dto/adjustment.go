package dto

import (
	"time"

	"pharmacore/internal/core/apperror"
	"pharmacore/internal/core/id"
	"pharmacore/internal/core/types"
	"pharmacore/internal/domain/adjustments"
)

// ApplyAdjustmentRequest for manual stock corrections.
type ApplyAdjustmentRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Direction string `json:"direction" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required"`
	Reason    string `json:"reason" binding:"required"`

	// Required for add-direction adjustments
	BatchNumber string     `json:"batchNumber"`
	ExpiryDate  *time.Time `json:"expiryDate"`
	UnitCost    string     `json:"unitCost"`
}

// ToEntity converts the request to a StockAdjustment.
func (r ApplyAdjustmentRequest) ToEntity() (*adjustments.StockAdjustment, error) {
	productID, err := id.Parse(r.ProductID)
	if err != nil {
		return nil, apperror.NewValidation("invalid product id").
			WithDetail("field", "productId")
	}

	adj := adjustments.New(productID, adjustments.Direction(r.Direction), r.Quantity, r.Reason)
	adj.BatchNumber = r.BatchNumber
	adj.ExpiryDate = r.ExpiryDate

	if r.UnitCost != "" {
		unitCost, err := types.NewMoneyFromString(r.UnitCost)
		if err != nil {
			return nil, apperror.NewValidation("invalid unit cost").
				WithDetail("field", "unitCost")
		}
		adj.UnitCost = unitCost
	}
	return adj, nil
}
