package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmacore/internal/core/id"
)

var testNow = time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

// sale creates a SaleInput offset months back from testNow.
func sale(monthsAgo int, qty int64, price float64) SaleInput {
	m := testNow.AddDate(0, -monthsAgo, 0)
	return SaleInput{
		Quantity:  qty,
		SalePrice: price,
		Year:      m.Year(),
		Month:     int(m.Month()),
	}
}

func TestCompute_Deterministic(t *testing.T) {
	p := ProductInput{ProductID: id.New(), Name: "Paracetamol", StockQty: 40, AlertQty: 10, Cost: 2.0, Price: 4.0}
	sold := []SaleInput{sale(2, 10, 4.0), sale(1, 12, 4.0), sale(0, 8, 4.0)}

	a := Compute(p, sold, 6, testNow)
	b := Compute(p, sold, 6, testNow)
	assert.Equal(t, a, b)
}

func TestCompute_MonthlySeriesBuckets(t *testing.T) {
	p := ProductInput{ProductID: id.New(), Name: "Ibuprofen"}
	sold := []SaleInput{
		sale(5, 10, 2.0),
		sale(5, 5, 4.0), // same month, different price
		sale(0, 6, 3.0),
		sale(8, 99, 1.0), // outside the window, ignored
	}

	data := Compute(p, sold, 6, testNow)

	require.Len(t, data.MonthlySeries, 6)
	assert.Equal(t, "2026-04", data.MonthlySeries[0].Month)
	assert.Equal(t, "2026-09", data.MonthlySeries[5].Month)

	first := data.MonthlySeries[0]
	assert.Equal(t, int64(15), first.Sales)
	assert.InDelta(t, 40.0, first.Revenue, 1e-9)
	assert.InDelta(t, 40.0/15.0, first.AvgPrice, 1e-9)

	// Empty months stay zero with zero average price.
	assert.Equal(t, int64(0), data.MonthlySeries[2].Sales)
	assert.Zero(t, data.MonthlySeries[2].AvgPrice)

	assert.Equal(t, int64(21), data.TotalSales)
}

func TestCompute_MonthlySeriesAtMonthEnd(t *testing.T) {
	// Computing on the 31st must still yield six consecutive months;
	// naive month arithmetic from that date duplicates and skips labels.
	now := time.Date(2026, 3, 31, 23, 0, 0, 0, time.UTC)
	p := ProductInput{ProductID: id.New(), Name: "Cetirizine"}
	sold := []SaleInput{
		{Year: 2026, Month: 2, Quantity: 7, SalePrice: 3.0},
		{Year: 2025, Month: 11, Quantity: 4, SalePrice: 3.0},
	}

	data := Compute(p, sold, 6, now)

	months := make([]string, len(data.MonthlySeries))
	for i, pt := range data.MonthlySeries {
		months[i] = pt.Month
	}
	assert.Equal(t, []string{"2025-10", "2025-11", "2025-12", "2026-01", "2026-02", "2026-03"}, months)

	// Every sale inside the window is counted.
	assert.Equal(t, int64(11), data.TotalSales)
	assert.Equal(t, int64(4), data.MonthlySeries[1].Sales)
	assert.Equal(t, int64(7), data.MonthlySeries[4].Sales)
}

func TestCompute_AverageUsesFixedDenominator(t *testing.T) {
	p := ProductInput{ProductID: id.New(), Name: "X"}
	// 12 units in one month of a 6 month window: avg is 2, not 12.
	data := Compute(p, []SaleInput{sale(0, 12, 1.0)}, 6, testNow)
	assert.InDelta(t, 2.0, data.AverageMonthlySales, 1e-9)
}

func TestVariability_ZeroGuards(t *testing.T) {
	assert.Zero(t, variability(nil, 0))
	assert.Zero(t, variability([]MonthlyPoint{{Sales: 0}}, 0))

	// Constant series has zero variability.
	series := []MonthlyPoint{{Sales: 5}, {Sales: 5}, {Sales: 5}}
	assert.Zero(t, variability(series, 5))
}

func TestClassifyTrend(t *testing.T) {
	mk := func(sales ...int64) []MonthlyPoint {
		out := make([]MonthlyPoint, len(sales))
		for i, s := range sales {
			out[i] = MonthlyPoint{Sales: s}
		}
		return out
	}

	tests := []struct {
		name   string
		series []MonthlyPoint
		want   Trend
	}{
		{"rising beyond 10pct", mk(10, 10, 10, 12, 12, 12), TrendIncreasing},
		{"falling beyond 10pct", mk(10, 10, 10, 8, 8, 8), TrendDecreasing},
		{"exactly +10pct is stable", mk(10, 10, 11, 11), TrendStable},
		{"exactly -10pct is stable", mk(10, 10, 9, 9), TrendStable},
		{"flat", mk(5, 5, 5, 5), TrendStable},
		{"no history in first half then sales", mk(0, 0, 4, 6), TrendIncreasing},
		{"no sales at all", mk(0, 0, 0, 0), TrendStable},
		{"single point", mk(7), TrendStable},
		{"empty", nil, TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyTrend(tt.series))
		})
	}
}

func TestEconomicOrderQty(t *testing.T) {
	// Zero demand yields zero.
	assert.Zero(t, economicOrderQty(0, 10))
	assert.Zero(t, economicOrderQty(-1, 10))

	// Zero cost (zero holding cost) falls back to two months of demand.
	assert.InDelta(t, 20.0, economicOrderQty(10, 0), 1e-9)

	// Standard EOQ: sqrt(2 * D * S / H).
	got := economicOrderQty(10, 5)
	want := math.Sqrt((2 * 120 * orderingCost) / (5 * holdingRate))
	assert.InDelta(t, want, got, 1e-9)
}

func TestCompute_ReorderParameters(t *testing.T) {
	p := ProductInput{ProductID: id.New(), Name: "Amoxicillin", StockQty: 30, AlertQty: 5, Cost: 3.5}
	sold := []SaleInput{
		sale(5, 10, 7.0), sale(4, 14, 7.0), sale(3, 6, 7.0),
		sale(2, 10, 7.0), sale(1, 12, 7.0), sale(0, 8, 7.0),
	}

	data := Compute(p, sold, 6, testNow)

	avg := data.AverageMonthlySales
	cv := data.DemandVariability
	require.Greater(t, avg, 0.0)
	require.Greater(t, cv, 0.0)

	assert.InDelta(t, zScore*math.Sqrt(leadTimeMonths)*(avg*cv), data.SafetyStock, 1e-9)
	assert.InDelta(t, avg*leadTimeMonths+data.SafetyStock, data.ReorderPoint, 1e-9)
	assert.InDelta(t, data.SafetyStock+data.EOQ/2+avg*0.5, data.OptimalStock, 1e-9)
}

func TestRecommend(t *testing.T) {
	base := &StockAnalyticsData{
		CurrentStock:        100,
		AlertQty:            5,
		OptimalStock:        50,
		AverageMonthlySales: 10,
	}
	recs := recommend(base)
	require.NotEmpty(t, recs)
	assert.Contains(t, recs[0], "Significantly overstocked")

	under := &StockAnalyticsData{
		CurrentStock:        10,
		AlertQty:            20,
		OptimalStock:        50,
		AverageMonthlySales: 0.5,
	}
	recs = recommend(under)
	require.Len(t, recs, 3)
	assert.Contains(t, recs[0], "Critically understocked")
	assert.Contains(t, recs[1], "alert quantity")
	assert.Contains(t, recs[2], "Very low sales volume")

	dead := &StockAnalyticsData{CurrentStock: 40, OptimalStock: 0, AlertQty: 0}
	recs = recommend(dead)
	require.Len(t, recs, 2)
	assert.Contains(t, recs[0], "No optimal stock baseline")
	assert.Contains(t, recs[1], "No sales in the analysis window")
}
