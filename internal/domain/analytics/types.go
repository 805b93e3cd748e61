// Package analytics provides the stock analytics engine: demand
// statistics, reorder parameters, ABC classification and the fleet
// summary. Computation is pure and deterministic; persistence is limited
// to reading products and the sales ledger.
package analytics

import (
	"pharmacore/internal/core/id"
)

// Trend classifies demand direction over the analysis window.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// ABCCategory buckets products by revenue contribution.
type ABCCategory string

const (
	CategoryA ABCCategory = "A"
	CategoryB ABCCategory = "B"
	CategoryC ABCCategory = "C"
)

// MonthlyPoint is one calendar-month bucket of the sales series.
type MonthlyPoint struct {
	// Month label, e.g. "2026-03"
	Month string `json:"month"`

	Sales    int64   `json:"sales"`
	Revenue  float64 `json:"revenue"`
	AvgPrice float64 `json:"avgPrice"`
}

// ProductInput is the read-only product snapshot the engine consumes.
type ProductInput struct {
	ProductID id.ID
	Name      string
	StockQty  int64
	AlertQty  int64
	Cost      float64
	Price     float64
}

// SaleInput is one historical sale row within the window.
type SaleInput struct {
	Quantity  int64
	SalePrice float64
	Year      int
	Month     int // 1-12
}

// StockAnalyticsData is the derived per-product analytics record.
// Never persisted; recomputed (with caching) on demand.
type StockAnalyticsData struct {
	ProductID   id.ID  `json:"productId"`
	ProductName string `json:"productName"`

	CurrentStock int64   `json:"currentStock"`
	AlertQty     int64   `json:"alertQty"`
	ProductCost  float64 `json:"productCost"`
	ProductPrice float64 `json:"productPrice"`

	MonthlySeries []MonthlyPoint `json:"monthlySeries"`

	TotalSales          int64   `json:"totalSales"`
	TotalRevenue        float64 `json:"totalRevenue"`
	AverageMonthlySales float64 `json:"averageMonthlySales"`
	DemandVariability   float64 `json:"demandVariability"`
	Trend               Trend   `json:"trend"`

	SafetyStock  float64 `json:"safetyStock"`
	ReorderPoint float64 `json:"reorderPoint"`
	EOQ          float64 `json:"eoq"`
	OptimalStock float64 `json:"optimalStock"`

	ABCCategory     ABCCategory `json:"abcCategory"`
	Recommendations []string    `json:"recommendations"`
}

// Summary is the fleet-wide rollup over all analyzed products.
type Summary struct {
	TotalProducts        int     `json:"totalProducts"`
	TotalCurrentStock    int64   `json:"totalCurrentStock"`
	TotalOptimalStock    float64 `json:"totalOptimalStock"`
	StockEfficiency      float64 `json:"stockEfficiency"`
	OverstockedProducts  int     `json:"overstockedProducts"`
	UnderstockedProducts int     `json:"understockedProducts"`
}

// CriticalAlert flags a product needing immediate attention.
type CriticalAlert struct {
	ProductID    id.ID   `json:"productId"`
	ProductName  string  `json:"productName"`
	CurrentStock int64   `json:"currentStock"`
	AlertQty     int64   `json:"alertQty"`
	ReorderPoint float64 `json:"reorderPoint"`
}

// Overview is the full analytics response. On failure the service returns
// Success=false with an error message instead of propagating an error.
type Overview struct {
	Success  bool                  `json:"success"`
	Error    string                `json:"error,omitempty"`
	Products []*StockAnalyticsData `json:"products"`
	Summary  Summary               `json:"summary"`
	Alerts   []CriticalAlert       `json:"alerts"`

	TotalCount int64 `json:"totalCount"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
}
