package analytics

import (
	"fmt"
	"math"
	"time"
)

// Policy constants. Z-score 1.65 targets a ~95% service level; lead time
// of half a month reflects the typical two-week supplier turnaround.
const (
	DefaultWindowMonths = 6

	zScore         = 1.65
	leadTimeMonths = 0.5
	orderingCost   = 50.0
	holdingRate    = 0.2
)

// Compute derives the full analytics record for one product from its
// sales within the window. Deterministic: identical inputs always produce
// identical outputs.
func Compute(p ProductInput, sold []SaleInput, windowMonths int, now time.Time) *StockAnalyticsData {
	if windowMonths <= 0 {
		windowMonths = DefaultWindowMonths
	}

	series := monthlySeries(sold, windowMonths, now)

	var totalSales int64
	var totalRevenue float64
	for _, pt := range series {
		totalSales += pt.Sales
		totalRevenue += pt.Revenue
	}

	// Fixed denominator: months without sales still count.
	avg := float64(totalSales) / float64(windowMonths)
	cv := variability(series, avg)
	trend := classifyTrend(series)

	safetyStock := zScore * math.Sqrt(leadTimeMonths) * (avg * cv)
	reorderPoint := avg*leadTimeMonths + safetyStock
	eoq := economicOrderQty(avg, p.Cost)
	optimalStock := safetyStock + eoq/2 + avg*0.5

	data := &StockAnalyticsData{
		ProductID:           p.ProductID,
		ProductName:         p.Name,
		CurrentStock:        p.StockQty,
		AlertQty:            p.AlertQty,
		ProductCost:         p.Cost,
		ProductPrice:        p.Price,
		MonthlySeries:       series,
		TotalSales:          totalSales,
		TotalRevenue:        totalRevenue,
		AverageMonthlySales: avg,
		DemandVariability:   cv,
		Trend:               trend,
		SafetyStock:         safetyStock,
		ReorderPoint:        reorderPoint,
		EOQ:                 eoq,
		OptimalStock:        optimalStock,
	}
	data.Recommendations = recommend(data)
	return data
}

// monthlySeries partitions sales into consecutive calendar months, from
// windowMonths ago up to the current month, oldest first.
func monthlySeries(sold []SaleInput, windowMonths int, now time.Time) []MonthlyPoint {
	type bucket struct {
		sales   int64
		revenue float64
	}

	buckets := make(map[string]*bucket, windowMonths)
	labels := make([]string, 0, windowMonths)

	// Step back from the first of the current month: AddDate on day
	// 29-31 normalizes through short months and lands in the wrong one.
	base := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := windowMonths - 1; i >= 0; i-- {
		m := base.AddDate(0, -i, 0)
		label := fmt.Sprintf("%04d-%02d", m.Year(), int(m.Month()))
		labels = append(labels, label)
		buckets[label] = &bucket{}
	}

	for _, s := range sold {
		label := fmt.Sprintf("%04d-%02d", s.Year, s.Month)
		if b, ok := buckets[label]; ok {
			b.sales += s.Quantity
			b.revenue += float64(s.Quantity) * s.SalePrice
		}
	}

	series := make([]MonthlyPoint, 0, len(labels))
	for _, label := range labels {
		b := buckets[label]
		pt := MonthlyPoint{
			Month:   label,
			Sales:   b.sales,
			Revenue: b.revenue,
		}
		if b.sales > 0 {
			pt.AvgPrice = b.revenue / float64(b.sales)
		}
		series = append(series, pt)
	}
	return series
}

// variability computes the coefficient of variation of monthly sales:
// sqrt(population variance) / mean, zero when the mean is zero.
func variability(series []MonthlyPoint, avg float64) float64 {
	if avg == 0 || len(series) == 0 {
		return 0
	}

	var sumSq float64
	for _, pt := range series {
		d := float64(pt.Sales) - avg
		sumSq += d * d
	}
	variance := sumSq / float64(len(series))

	cv := math.Sqrt(variance) / avg
	if math.IsNaN(cv) || math.IsInf(cv, 0) {
		return 0
	}
	return cv
}

// classifyTrend compares the mean of the second half of the series to the
// first half (first half = floor(n/2) months).
func classifyTrend(series []MonthlyPoint) Trend {
	n := len(series)
	half := n / 2
	if half == 0 {
		return TrendStable
	}

	var firstSum, secondSum float64
	for i := 0; i < half; i++ {
		firstSum += float64(series[i].Sales)
	}
	for i := half; i < n; i++ {
		secondSum += float64(series[i].Sales)
	}
	firstAvg := firstSum / float64(half)
	secondAvg := secondSum / float64(n-half)

	if firstAvg == 0 {
		if secondAvg > 0 {
			return TrendIncreasing
		}
		return TrendStable
	}

	change := (secondAvg - firstAvg) / firstAvg * 100
	if math.IsNaN(change) || math.IsInf(change, 0) {
		return TrendStable
	}
	switch {
	case change > 10:
		return TrendIncreasing
	case change < -10:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

// economicOrderQty computes EOQ with the documented guards.
func economicOrderQty(avgMonthly, cost float64) float64 {
	if avgMonthly <= 0 || cost < 0 {
		return 0
	}

	holdingCost := cost * holdingRate
	if holdingCost <= 0 {
		return avgMonthly * 2
	}

	annualDemand := avgMonthly * 12
	eoq := math.Sqrt((2 * annualDemand * orderingCost) / holdingCost)
	if math.IsNaN(eoq) || math.IsInf(eoq, 0) {
		return avgMonthly * 2
	}
	return eoq
}

// recommend produces advisory strings; all applicable rules fire, in a
// fixed order.
func recommend(d *StockAnalyticsData) []string {
	var out []string

	if d.OptimalStock <= 0 {
		if d.CurrentStock != 0 {
			out = append(out, "No optimal stock baseline available; review demand history manually")
		}
	} else {
		diff := (float64(d.CurrentStock) - d.OptimalStock) / d.OptimalStock * 100
		if !math.IsNaN(diff) && !math.IsInf(diff, 0) {
			switch {
			case diff > 50:
				out = append(out, fmt.Sprintf("Significantly overstocked (%.0f%% above optimal); consider reducing orders", diff))
			case diff >= 25:
				out = append(out, fmt.Sprintf("Moderately overstocked (%.0f%% above optimal)", diff))
			case diff < -50:
				out = append(out, "Critically understocked; immediate reorder recommended")
			case diff <= -25:
				out = append(out, "Understocked; consider increasing stock levels")
			default:
				out = append(out, "Stock levels are optimal")
			}
		}
	}

	if d.CurrentStock <= d.AlertQty {
		out = append(out, "Stock is at or below the alert quantity")
	}

	if d.DemandVariability > 0.5 {
		out = append(out, "High demand variability; consider carrying more safety stock")
	}

	if d.AverageMonthlySales == 0 {
		out = append(out, "No sales in the analysis window; consider discontinuing or marketing")
	} else if d.AverageMonthlySales < 1 {
		out = append(out, "Very low sales volume; review pricing and placement")
	}

	return out
}
