package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmacore/internal/core/id"
	"pharmacore/internal/infrastructure/cache"
)

type fakeProductReader struct {
	products []ProductInput
	err      error

	listCalls int
}

func (r *fakeProductReader) ListForAnalysis(ctx context.Context, filter Filter) ([]ProductInput, int64, error) {
	r.listCalls++
	if r.err != nil {
		return nil, 0, r.err
	}
	return r.products, int64(len(r.products)), nil
}

func (r *fakeProductReader) GetForAnalysis(ctx context.Context, productID id.ID) (ProductInput, error) {
	if r.err != nil {
		return ProductInput{}, r.err
	}
	for _, p := range r.products {
		if p.ProductID == productID {
			return p, nil
		}
	}
	return ProductInput{}, errors.New("not found")
}

type fakeSalesReader struct {
	sales map[id.ID][]SaleInput
	err   error

	calls int
}

func (r *fakeSalesReader) MonthlySales(ctx context.Context, productIDs []id.ID, from, to time.Time) (map[id.ID][]SaleInput, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.sales, nil
}

func newTestService(products *fakeProductReader, salesR *fakeSalesReader) *Service {
	svc := NewService(products, salesR, cache.NewMemoryStore())
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestOverview_ComputesAndCaches(t *testing.T) {
	p := ProductInput{ProductID: id.New(), Name: "Paracetamol", StockQty: 50, AlertQty: 10, Cost: 2, Price: 4}
	products := &fakeProductReader{products: []ProductInput{p}}
	salesR := &fakeSalesReader{sales: map[id.ID][]SaleInput{
		p.ProductID: {sale(1, 10, 4.0), sale(0, 12, 4.0)},
	}}

	svc := newTestService(products, salesR)
	filter := Filter{Page: 1, Limit: 20}

	first := svc.Overview(context.Background(), filter)
	require.True(t, first.Success)
	require.Len(t, first.Products, 1)
	assert.Equal(t, int64(22), first.Products[0].TotalSales)
	assert.Equal(t, int64(1), first.TotalCount)

	// Second call with the same filter is served from cache.
	second := svc.Overview(context.Background(), filter)
	require.True(t, second.Success)
	assert.Equal(t, 1, products.listCalls)
	assert.Equal(t, 1, salesR.calls)
	assert.Equal(t, first.Products[0].TotalSales, second.Products[0].TotalSales)

	// A different filter misses the cache.
	svc.Overview(context.Background(), Filter{Page: 2, Limit: 20})
	assert.Equal(t, 2, products.listCalls)
}

func TestOverview_FailureIsStructured(t *testing.T) {
	products := &fakeProductReader{err: errors.New("connection refused")}
	svc := newTestService(products, &fakeSalesReader{})

	result := svc.Overview(context.Background(), Filter{Page: 1, Limit: 20})

	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
	assert.NotNil(t, result.Products)
	assert.Empty(t, result.Products)
	assert.Equal(t, 1, result.Page)

	// Failures are never cached; the next call retries.
	products.err = nil
	products.products = []ProductInput{{ProductID: id.New(), Name: "X"}}
	retry := svc.Overview(context.Background(), Filter{Page: 1, Limit: 20})
	assert.True(t, retry.Success)
}

func TestOverview_CategoryFilter(t *testing.T) {
	// 10 products: 2 A, 3 B, 5 C by revenue rank.
	inputs := make([]ProductInput, 10)
	salesMap := map[id.ID][]SaleInput{}
	for i := range inputs {
		pid := id.New()
		inputs[i] = ProductInput{ProductID: pid, Name: string(rune('A' + i)), Cost: 1, Price: 2}
		salesMap[pid] = []SaleInput{sale(0, int64(100-i*10), 2.0)}
	}

	svc := newTestService(&fakeProductReader{products: inputs}, &fakeSalesReader{sales: salesMap})

	result := svc.Overview(context.Background(), Filter{Page: 1, Limit: 20, Category: CategoryA})
	require.True(t, result.Success)
	require.Len(t, result.Products, 2)
	for _, p := range result.Products {
		assert.Equal(t, CategoryA, p.ABCCategory)
	}
	// Summary is computed over the filtered set.
	assert.Equal(t, 2, result.Summary.TotalProducts)
}

func TestForProduct_CachesRecord(t *testing.T) {
	p := ProductInput{ProductID: id.New(), Name: "Ibuprofen", StockQty: 20, AlertQty: 5, Cost: 1.8, Price: 3.9}
	products := &fakeProductReader{products: []ProductInput{p}}
	salesR := &fakeSalesReader{sales: map[id.ID][]SaleInput{
		p.ProductID: {sale(0, 6, 3.9)},
	}}

	svc := newTestService(products, salesR)

	first, err := svc.ForProduct(context.Background(), p.ProductID)
	require.NoError(t, err)
	assert.Equal(t, int64(6), first.TotalSales)

	second, err := svc.ForProduct(context.Background(), p.ProductID)
	require.NoError(t, err)
	assert.Equal(t, 1, salesR.calls)
	assert.Equal(t, first.TotalSales, second.TotalSales)
}

func TestForProduct_PropagatesErrors(t *testing.T) {
	products := &fakeProductReader{err: errors.New("down")}
	svc := newTestService(products, &fakeSalesReader{})

	_, err := svc.ForProduct(context.Background(), id.New())
	assert.Error(t, err)
}
