// Package sales provides the immutable sales ledger.
// One row per committed order line; never updated, source of truth for
// analytics.
package sales

import (
	"time"

	"pharmacore/internal/core/id"
	"pharmacore/internal/core/types"
)

// Sale is one committed order line.
type Sale struct {
	ID id.ID `db:"id" json:"id"`

	OrderID     id.ID  `db:"order_id" json:"orderId"`
	OrderNumber string `db:"order_number" json:"orderNumber"`

	// Product snapshot at time of sale
	ProductID    id.ID  `db:"product_id" json:"productId"`
	ProductName  string `db:"product_name" json:"productName"`
	ProductImage string `db:"product_image" json:"productImage,omitempty"`

	Quantity  int64       `db:"quantity" json:"quantity"`
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`
	Total     types.Money `db:"total" json:"total"`

	// Customer snapshot
	CustomerID   id.ID  `db:"customer_id" json:"customerId"`
	CustomerName string `db:"customer_name" json:"customerName"`

	PaymentMethod string `db:"payment_method" json:"paymentMethod"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
