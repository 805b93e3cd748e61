package dto

import (
	"pharmacore/internal/core/apperror"
	"pharmacore/internal/core/id"
	"pharmacore/internal/domain/orders"
)

// CommitOrderRequest for committing orders.
type CommitOrderRequest struct {
	Channel       string                   `json:"channel" binding:"required"`
	CustomerID    string                   `json:"customerId" binding:"required"`
	PaymentMethod string                   `json:"paymentMethod" binding:"required"`
	Comment       string                   `json:"comment"`
	Items         []CommitOrderItemRequest `json:"items" binding:"required"`
}

// CommitOrderItemRequest is one requested line.
type CommitOrderItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required"`
}

// ToCommitRequest converts the request to the domain commit input.
func (r CommitOrderRequest) ToCommitRequest() (*orders.CommitRequest, error) {
	customerID, err := id.Parse(r.CustomerID)
	if err != nil {
		return nil, apperror.NewValidation("invalid customer id").
			WithDetail("field", "customerId")
	}

	req := &orders.CommitRequest{
		Channel:       orders.Channel(r.Channel),
		CustomerID:    customerID,
		PaymentMethod: r.PaymentMethod,
		Comment:       r.Comment,
	}

	for i, item := range r.Items {
		productID, err := id.Parse(item.ProductID)
		if err != nil {
			return nil, apperror.NewValidation("invalid product id").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
		req.Items = append(req.Items, orders.CommitRequestItem{
			ProductID: productID,
			Quantity:  item.Quantity,
		})
	}
	return req, nil
}

// UpdateOrderStatusRequest for status transitions.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
