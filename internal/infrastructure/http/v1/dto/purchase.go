package dto

import (
	"time"

	"pharmacore/internal/core/apperror"
	"pharmacore/internal/core/id"
	"pharmacore/internal/core/types"
	"pharmacore/internal/domain/purchases"
)

// ReceivePurchaseRequest for receiving a supplier delivery.
type ReceivePurchaseRequest struct {
	SupplierName string                `json:"supplierName" binding:"required"`
	Comment      string                `json:"comment"`
	Lines        []PurchaseLineRequest `json:"lines" binding:"required"`
}

// PurchaseLineRequest is one received lot.
type PurchaseLineRequest struct {
	ProductID   string    `json:"productId" binding:"required"`
	BatchNumber string    `json:"batchNumber" binding:"required"`
	Quantity    int64     `json:"quantity" binding:"required"`
	UnitCost    string    `json:"unitCost"`
	ExpiryDate  time.Time `json:"expiryDate" binding:"required"`
}

// ToEntity converts the request to a PurchaseOrder.
func (r ReceivePurchaseRequest) ToEntity() (*purchases.PurchaseOrder, error) {
	po := purchases.New(r.SupplierName)
	po.Comment = r.Comment

	for i, line := range r.Lines {
		productID, err := id.Parse(line.ProductID)
		if err != nil {
			return nil, apperror.NewValidation("invalid product id").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}

		unitCost := types.Zero()
		if line.UnitCost != "" {
			unitCost, err = types.NewMoneyFromString(line.UnitCost)
			if err != nil {
				return nil, apperror.NewValidation("invalid unit cost").
					WithDetail("field", "lines").
					WithDetail("lineNo", i+1)
			}
		}

		po.AddLine(productID, line.BatchNumber, line.Quantity, unitCost, line.ExpiryDate)
	}
	return po, nil
}
