package analytics

import (
	"context"
	"time"

	"pharmacore/internal/core/id"
)

// ProductReader supplies product snapshots for analysis.
type ProductReader interface {
	// ListForAnalysis returns products matching the filter, name ascending,
	// with the total count before pagination.
	ListForAnalysis(ctx context.Context, filter Filter) ([]ProductInput, int64, error)

	// GetForAnalysis returns one product snapshot.
	GetForAnalysis(ctx context.Context, productID id.ID) (ProductInput, error)
}

// SalesReader supplies historical sales within the analysis window.
type SalesReader interface {
	// MonthlySales returns per-product monthly sale inputs for sales
	// created in [from, to).
	MonthlySales(ctx context.Context, productIDs []id.ID, from, to time.Time) (map[id.ID][]SaleInput, error)
}

// Filter selects and pages the products to analyze.
type Filter struct {
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
	Search string `json:"search"`

	// Category filters the response by ABC category after classification.
	Category ABCCategory `json:"category,omitempty"`
}

// Normalize clamps filter values to safe bounds.
func (f *Filter) Normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 200 {
		f.Limit = 200
	}
}
