package dto

import (
	"pharmacore/internal/core/id"
	"pharmacore/internal/core/types"
	"pharmacore/internal/domain/catalogs/product"
)

// CreateProductRequest for creating products.
type CreateProductRequest struct {
	Code       string  `json:"code" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	ImageURL   string  `json:"imageUrl"`
	AlertQty   int64   `json:"alertQty"`
	Cost       string  `json:"cost"`
	Price      string  `json:"price"`
	SupplierID *string `json:"supplierId"`
}

// ToEntity converts the request to a Product.
func (r CreateProductRequest) ToEntity() (*product.Product, error) {
	p := product.New(r.Code, r.Name)
	p.ImageURL = r.ImageURL
	p.AlertQty = r.AlertQty

	if r.Cost != "" {
		cost, err := types.NewMoneyFromString(r.Cost)
		if err != nil {
			return nil, err
		}
		p.Cost = cost
	}
	if r.Price != "" {
		price, err := types.NewMoneyFromString(r.Price)
		if err != nil {
			return nil, err
		}
		p.Price = price
	}
	if r.SupplierID != nil {
		supplierID, err := id.Parse(*r.SupplierID)
		if err != nil {
			return nil, err
		}
		p.SupplierID = &supplierID
	}
	return p, nil
}

// UpdateProductRequest for updating products. Stock is not updatable here;
// it moves only through purchases, orders and adjustments.
type UpdateProductRequest struct {
	Name     *string `json:"name"`
	ImageURL *string `json:"imageUrl"`
	AlertQty *int64  `json:"alertQty"`
	Cost     *string `json:"cost"`
	Price    *string `json:"price"`
	Version  int     `json:"version" binding:"required,min=1"`
}

// ApplyTo applies non-nil fields onto an existing product.
func (r UpdateProductRequest) ApplyTo(p *product.Product) error {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.ImageURL != nil {
		p.ImageURL = *r.ImageURL
	}
	if r.AlertQty != nil {
		p.AlertQty = *r.AlertQty
	}
	if r.Cost != nil {
		cost, err := types.NewMoneyFromString(*r.Cost)
		if err != nil {
			return err
		}
		p.Cost = cost
	}
	if r.Price != nil {
		price, err := types.NewMoneyFromString(*r.Price)
		if err != nil {
			return err
		}
		p.Price = price
	}
	p.SetVersion(r.Version)
	return nil
}
