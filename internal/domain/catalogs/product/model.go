// Package product provides the product catalog.
// StockQty is the aggregate on-hand quantity and must always equal the sum
// of active batch quantities for the product.
package product

import (
	"context"
	"time"

	"pharmacore/internal/core/apperror"
	"pharmacore/internal/core/entity"
	"pharmacore/internal/core/id"
	"pharmacore/internal/core/types"
)

// Product represents a catalog item sold by unit.
type Product struct {
	entity.BaseCatalog

	// Code is the SKU, unique across the catalog
	Code string `db:"code" json:"code"`

	Name     string `db:"name" json:"name"`
	ImageURL string `db:"image_url" json:"imageUrl,omitempty"`

	// StockQty is the aggregate on-hand quantity (whole units).
	// Kept consistent with the batch ledger by the inventory service.
	StockQty int64 `db:"stock_qty" json:"stockQty"`

	// AlertQty is the low-stock threshold for notifications
	AlertQty int64 `db:"alert_qty" json:"alertQty"`

	// Cost is the unit acquisition cost
	Cost types.Money `db:"cost" json:"cost"`

	// Price is the unit selling price
	Price types.Money `db:"price" json:"price"`

	// SupplierID references the preferred supplier (optional)
	SupplierID *id.ID `db:"supplier_id" json:"supplierId,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// New creates a new Product with generated ID.
func New(code, name string) *Product {
	now := time.Now().UTC()
	return &Product{
		BaseCatalog: entity.NewBaseCatalog(),
		Code:        code,
		Name:        name,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if p.Code == "" {
		return apperror.NewValidation("code is required").
			WithDetail("field", "code")
	}

	if p.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	if p.StockQty < 0 {
		return apperror.NewValidation("stock quantity cannot be negative").
			WithDetail("field", "stockQty")
	}

	if p.AlertQty < 0 {
		return apperror.NewValidation("alert quantity cannot be negative").
			WithDetail("field", "alertQty")
	}

	if p.Cost.IsNegative() {
		return apperror.NewValidation("cost cannot be negative").
			WithDetail("field", "cost")
	}

	if p.Price.IsNegative() {
		return apperror.NewValidation("price cannot be negative").
			WithDetail("field", "price")
	}

	return nil
}

// IsLowStock reports whether stock is at or below the alert threshold.
func (p *Product) IsLowStock() bool {
	return p.StockQty <= p.AlertQty
}

// IsOutOfStock reports whether the product has no stock at all.
func (p *Product) IsOutOfStock() bool {
	return p.StockQty <= 0
}

var _ entity.Validatable = (*Product)(nil)
