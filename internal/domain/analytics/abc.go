package analytics

import (
	"math"
	"sort"
)

// ClassifyABC assigns ABC categories by revenue rank: the top 20% of
// products are A, the next 30% are B, the remainder C. Thresholds are
// floor(count*0.2) and floor(count*0.5); boundary ties are resolved by
// stable sort rank, not revenue value.
//
// Mutates the ABCCategory field of the input records and returns them
// sorted by revenue descending.
func ClassifyABC(products []*StockAnalyticsData) []*StockAnalyticsData {
	sorted := make([]*StockAnalyticsData, len(products))
	copy(sorted, products)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalRevenue > sorted[j].TotalRevenue
	})

	n := len(sorted)
	aLimit := int(math.Floor(float64(n) * 0.2))
	bLimit := int(math.Floor(float64(n) * 0.5))

	for rank, p := range sorted {
		switch {
		case rank < aLimit:
			p.ABCCategory = CategoryA
		case rank < bLimit:
			p.ABCCategory = CategoryB
		default:
			p.ABCCategory = CategoryC
		}
	}
	return sorted
}

// Summarize computes the fleet rollup over analyzed products.
func Summarize(products []*StockAnalyticsData) Summary {
	s := Summary{TotalProducts: len(products)}

	for _, p := range products {
		s.TotalCurrentStock += p.CurrentStock
		s.TotalOptimalStock += p.OptimalStock

		if float64(p.CurrentStock) > p.OptimalStock*1.25 {
			s.OverstockedProducts++
		}
		if float64(p.CurrentStock) < p.OptimalStock*0.75 {
			s.UnderstockedProducts++
		}
	}

	if s.TotalOptimalStock > 0 {
		s.StockEfficiency = float64(s.TotalCurrentStock) / s.TotalOptimalStock * 100
	}
	return s
}

// CriticalAlerts flags products at or below their alert quantity, or below
// their reorder point.
func CriticalAlerts(products []*StockAnalyticsData) []CriticalAlert {
	var alerts []CriticalAlert
	for _, p := range products {
		if p.CurrentStock <= p.AlertQty || float64(p.CurrentStock) < p.ReorderPoint {
			alerts = append(alerts, CriticalAlert{
				ProductID:    p.ProductID,
				ProductName:  p.ProductName,
				CurrentStock: p.CurrentStock,
				AlertQty:     p.AlertQty,
				ReorderPoint: p.ReorderPoint,
			})
		}
	}
	return alerts
}
