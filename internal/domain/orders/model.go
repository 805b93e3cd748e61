// Package orders provides the order document and the atomic commit
// pipeline: number allocation, FIFO stock deduction, sales ledger append
// and low-stock alerts in one transaction.
package orders

import (
	"context"

	"pharmacore/internal/core/apperror"
	"pharmacore/internal/core/entity"
	"pharmacore/internal/core/id"
	"pharmacore/internal/core/types"
)

// Status is the order lifecycle state.
type Status string

const (
	// StatusPending is the initial state for POS orders (paid at counter).
	StatusPending Status = "PENDING"

	// StatusProcessing is the initial state for web orders awaiting fulfilment.
	StatusProcessing Status = "PROCESSING"

	StatusDelivered Status = "DELIVERED"
	StatusFailed    Status = "FAILED"
)

// Channel identifies where the order originated.
type Channel string

const (
	ChannelPOS Channel = "pos"
	ChannelWeb Channel = "web"
)

// InitialStatus returns the starting status for a channel.
func (c Channel) InitialStatus() Status {
	if c == ChannelWeb {
		return StatusProcessing
	}
	return StatusPending
}

// Order is the committed sales document.
type Order struct {
	entity.Document

	Status  Status  `db:"status" json:"status"`
	Channel Channel `db:"channel" json:"channel"`

	// Customer snapshot
	CustomerID    id.ID  `db:"customer_id" json:"customerId"`
	CustomerName  string `db:"customer_name" json:"customerName"`
	CustomerPhone string `db:"customer_phone" json:"customerPhone,omitempty"`

	PaymentMethod string `db:"payment_method" json:"paymentMethod"`

	TotalQuantity int64       `db:"total_quantity" json:"totalQuantity"`
	TotalAmount   types.Money `db:"total_amount" json:"totalAmount"`

	// Table part
	Items []Item `db:"-" json:"items"`
}

// Item is one order line.
type Item struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID   id.ID  `db:"product_id" json:"productId"`
	ProductName string `db:"product_name" json:"productName"`

	Quantity  int64       `db:"quantity" json:"quantity"`
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`
	Amount    types.Money `db:"amount" json:"amount"`
}

// CommitRequest is the input to the order commit pipeline.
type CommitRequest struct {
	Channel       Channel           `json:"channel"`
	CustomerID    id.ID             `json:"customerId"`
	PaymentMethod string            `json:"paymentMethod"`
	Comment       string            `json:"comment,omitempty"`
	Items         []CommitRequestItem `json:"items"`
}

// CommitRequestItem is one requested line.
type CommitRequestItem struct {
	ProductID id.ID `json:"productId"`
	Quantity  int64 `json:"quantity"`
}

// Validate checks request invariants before any database work.
func (r *CommitRequest) Validate(ctx context.Context) error {
	if id.IsNil(r.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}
	if r.PaymentMethod == "" {
		return apperror.NewValidation("payment method is required").
			WithDetail("field", "paymentMethod")
	}
	if len(r.Items) == 0 {
		return apperror.NewValidation("at least one item is required").
			WithDetail("field", "items")
	}
	if r.Channel != ChannelPOS && r.Channel != ChannelWeb {
		return apperror.NewValidation("unknown order channel").
			WithDetail("field", "channel")
	}

	seen := make(map[id.ID]bool, len(r.Items))
	for i, item := range r.Items {
		if id.IsNil(item.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
		if item.Quantity <= 0 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
		if seen[item.ProductID] {
			return apperror.NewValidation("duplicate product in order").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
		seen[item.ProductID] = true
	}
	return nil
}

// AddItem appends a line and recalculates totals.
func (o *Order) AddItem(productID id.ID, productName string, qty int64, unitPrice types.Money) {
	item := Item{
		LineID:      id.New(),
		LineNo:      len(o.Items) + 1,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    qty,
		UnitPrice:   unitPrice,
		Amount:      types.MulQty(unitPrice, qty),
	}
	o.Items = append(o.Items, item)
	o.TotalQuantity += qty
	o.TotalAmount = o.TotalAmount.Add(item.Amount)
}
