package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmacore/internal/core/apperror"
	"pharmacore/internal/core/id"
	"pharmacore/internal/core/types"
	"pharmacore/internal/domain"
	"pharmacore/internal/domain/catalogs/customer"
	"pharmacore/internal/domain/catalogs/product"
	"pharmacore/internal/domain/inventory"
	"pharmacore/internal/domain/notifications"
	"pharmacore/internal/domain/sales"
	"pharmacore/pkg/numerator"
)

// ---- shared fakes ----

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRow struct{ val int64 }

func (r *fakeRow) Scan(dest ...any) error {
	if len(dest) > 0 {
		if p, ok := dest[0].(*int64); ok {
			*p = r.val
		}
	}
	return nil
}

type fakeQuerier struct{ counter int64 }

func (q *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	q.counter++
	return &fakeRow{val: q.counter}
}

type fakeOrderRepo struct {
	created   []*Order
	itemSaves map[id.ID][]Item
	createErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{itemSaves: make(map[id.ID][]Item)}
}

func (r *fakeOrderRepo) Create(ctx context.Context, o *Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, o)
	return nil
}

func (r *fakeOrderRepo) SaveItems(ctx context.Context, orderID id.ID, items []Item) error {
	r.itemSaves[orderID] = items
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, orderID id.ID) (*Order, error) {
	for _, o := range r.created {
		if o.ID == orderID {
			return o, nil
		}
	}
	return nil, apperror.NewNotFound("Order", orderID)
}

func (r *fakeOrderRepo) GetItems(ctx context.Context, orderID id.ID) ([]Item, error) {
	return r.itemSaves[orderID], nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, orderID id.ID, status Status) error {
	for _, o := range r.created {
		if o.ID == orderID {
			o.Status = status
			return nil
		}
	}
	return apperror.NewNotFound("Order", orderID)
}

func (r *fakeOrderRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Order], error) {
	return domain.ListResult[*Order]{Items: r.created, TotalCount: int64(len(r.created))}, nil
}

type fakeProductRepo struct {
	products map[id.ID]*product.Product

	adjustErr   error
	adjustments []int64
}

func newFakeProductRepo(products ...*product.Product) *fakeProductRepo {
	m := make(map[id.ID]*product.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return &fakeProductRepo{products: m}
}

func (r *fakeProductRepo) Create(ctx context.Context, p *product.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	p, ok := r.products[productID]
	if !ok {
		return nil, apperror.NewNotFound("Product", productID)
	}
	return p, nil
}

func (r *fakeProductRepo) GetByCode(ctx context.Context, code string) (*product.Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, apperror.NewNotFound("Product", code)
}

func (r *fakeProductRepo) GetByIDs(ctx context.Context, ids []id.ID) ([]*product.Product, error) {
	var out []*product.Product
	for _, pid := range ids {
		if p, ok := r.products[pid]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetByIDForUpdate(ctx context.Context, productID id.ID) (*product.Product, error) {
	return r.GetByID(ctx, productID)
}

func (r *fakeProductRepo) Update(ctx context.Context, p *product.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) AdjustStock(ctx context.Context, productID id.ID, delta int64) (int64, error) {
	if r.adjustErr != nil {
		return 0, r.adjustErr
	}
	p, ok := r.products[productID]
	if !ok {
		return 0, apperror.NewNotFound("Product", productID)
	}
	if p.StockQty+delta < 0 {
		return 0, apperror.NewInsufficientStock(p.Name, -delta, p.StockQty)
	}
	p.StockQty += delta
	r.adjustments = append(r.adjustments, delta)
	return p.StockQty, nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, productID id.ID) error {
	delete(r.products, productID)
	return nil
}

func (r *fakeProductRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*product.Product], error) {
	return domain.ListResult[*product.Product]{}, nil
}

func (r *fakeProductRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	_, err := r.GetByCode(ctx, code)
	return err == nil, nil
}

type fakeCustomerRepo struct {
	customers map[id.ID]*customer.Customer
}

func newFakeCustomerRepo(customers ...*customer.Customer) *fakeCustomerRepo {
	m := make(map[id.ID]*customer.Customer, len(customers))
	for _, c := range customers {
		m[c.ID] = c
	}
	return &fakeCustomerRepo{customers: m}
}

func (r *fakeCustomerRepo) Create(ctx context.Context, c *customer.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, customerID id.ID) (*customer.Customer, error) {
	c, ok := r.customers[customerID]
	if !ok {
		return nil, apperror.NewNotFound("Customer", customerID)
	}
	return c, nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, c *customer.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) Delete(ctx context.Context, customerID id.ID) error {
	delete(r.customers, customerID)
	return nil
}

func (r *fakeCustomerRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*customer.Customer], error) {
	return domain.ListResult[*customer.Customer]{}, nil
}

func (r *fakeCustomerRepo) Exists(ctx context.Context, customerID id.ID) (bool, error) {
	_, ok := r.customers[customerID]
	return ok, nil
}

type fakeBatchRepo struct {
	batches []*inventory.ProductBatch
	draws   int
}

func (r *fakeBatchRepo) Create(ctx context.Context, b *inventory.ProductBatch) error {
	r.batches = append(r.batches, b)
	return nil
}

func (r *fakeBatchRepo) GetByID(ctx context.Context, batchID id.ID) (*inventory.ProductBatch, error) {
	return nil, apperror.NewNotFound("ProductBatch", batchID)
}

func (r *fakeBatchRepo) ListByProduct(ctx context.Context, productID id.ID) ([]*inventory.ProductBatch, error) {
	return r.listFor(productID, false), nil
}

func (r *fakeBatchRepo) ListDrawableForUpdate(ctx context.Context, productID id.ID) ([]*inventory.ProductBatch, error) {
	return r.listFor(productID, true), nil
}

func (r *fakeBatchRepo) listFor(productID id.ID, drawableOnly bool) []*inventory.ProductBatch {
	var out []*inventory.ProductBatch
	for _, b := range r.batches {
		if b.ProductID != productID {
			continue
		}
		if drawableOnly && !b.IsDrawable() {
			continue
		}
		out = append(out, b)
	}
	return out
}

func (r *fakeBatchRepo) ApplyDraw(ctx context.Context, batchID id.ID, qty int64) error {
	for _, b := range r.batches {
		if b.ID == batchID {
			b.Quantity -= qty
			if b.Quantity == 0 {
				b.Status = inventory.BatchStatusInactive
			}
			r.draws++
			return nil
		}
	}
	return apperror.NewNotFound("ProductBatch", batchID)
}

func (r *fakeBatchRepo) SumDrawable(ctx context.Context, productID id.ID) (int64, error) {
	var total int64
	for _, b := range r.listFor(productID, true) {
		total += b.Quantity
	}
	return total, nil
}

type fakeSalesRepo struct {
	rows      []*sales.Sale
	appendErr error
}

func (r *fakeSalesRepo) Append(ctx context.Context, rows []*sales.Sale) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.rows = append(r.rows, rows...)
	return nil
}

func (r *fakeSalesRepo) ListByOrder(ctx context.Context, orderID id.ID) ([]*sales.Sale, error) {
	return nil, nil
}

func (r *fakeSalesRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*sales.Sale], error) {
	return domain.ListResult[*sales.Sale]{}, nil
}

type fakeNotificationRepo struct {
	stored []*notifications.Notification
}

func (r *fakeNotificationRepo) Create(ctx context.Context, n *notifications.Notification) error {
	r.stored = append(r.stored, n)
	return nil
}

func (r *fakeNotificationRepo) CreateMany(ctx context.Context, ns []*notifications.Notification) error {
	r.stored = append(r.stored, ns...)
	return nil
}

func (r *fakeNotificationRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*notifications.Notification], error) {
	return domain.ListResult[*notifications.Notification]{}, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, notificationID id.ID) error {
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context) error { return nil }

func (r *fakeNotificationRepo) CountUnread(ctx context.Context) (int64, error) {
	return int64(len(r.stored)), nil
}

type fakeAudit struct {
	entries []string
}

func (a *fakeAudit) LogChange(ctx context.Context, entityType string, entityID id.ID, action string, changes map[string]any) error {
	a.entries = append(a.entries, entityType+":"+action)
	return nil
}

type fakeDemand struct {
	figures map[id.ID]DemandFigures
	err     error
	calls   int
}

func (d *fakeDemand) DemandFigures(ctx context.Context, productID id.ID) (DemandFigures, error) {
	d.calls++
	if d.err != nil {
		return DemandFigures{}, d.err
	}
	return d.figures[productID], nil
}

// ---- test fixture ----

type commitFixture struct {
	svc       *Service
	orders    *fakeOrderRepo
	products  *fakeProductRepo
	customers *fakeCustomerRepo
	batches   *fakeBatchRepo
	sales     *fakeSalesRepo
	notifs    *fakeNotificationRepo
	audit     *fakeAudit
	demand    *fakeDemand
}

func newCommitFixture(products []*product.Product, batches []*inventory.ProductBatch, cust *customer.Customer) *commitFixture {
	f := &commitFixture{
		orders:    newFakeOrderRepo(),
		products:  newFakeProductRepo(products...),
		customers: newFakeCustomerRepo(cust),
		batches:   &fakeBatchRepo{batches: batches},
		sales:     &fakeSalesRepo{},
		notifs:    &fakeNotificationRepo{},
		audit:     &fakeAudit{},
		demand:    &fakeDemand{},
	}
	f.rebuild(nil)
	return f
}

// rebuild wires the service, optionally with a rule engine.
func (f *commitFixture) rebuild(engine *notifications.RuleEngine) {
	txm := fakeTxManager{}
	f.svc = NewService(
		f.orders,
		f.products,
		f.customers,
		inventory.NewService(f.batches, txm),
		f.sales,
		notifications.NewService(f.notifs, engine),
		numerator.NewStatic(&fakeQuerier{}),
		txm,
		f.audit,
		f.demand,
	)
}

func newTestProduct(name string, stock, alert int64, price string) *product.Product {
	p := product.New("SKU-"+name, name)
	p.StockQty = stock
	p.AlertQty = alert
	p.Price = types.MustMoney(price)
	return p
}

func newTestBatch(productID id.ID, number string, qty int64, expiry time.Time) *inventory.ProductBatch {
	return inventory.NewBatch(productID, number, qty, expiry, types.MustMoney("1.00"))
}

// ---- tests ----

func TestCommit_HappyPath(t *testing.T) {
	expiry := time.Now().UTC().AddDate(1, 0, 0)
	p := newTestProduct("Paracetamol", 50, 10, "2.50")
	cust := customer.New("Walk-in customer")

	f := newCommitFixture(
		[]*product.Product{p},
		[]*inventory.ProductBatch{newTestBatch(p.ID, "LOT-1", 50, expiry)},
		cust,
	)

	order, err := f.svc.Commit(context.Background(), &CommitRequest{
		Channel:       ChannelPOS,
		CustomerID:    cust.ID,
		PaymentMethod: "cash",
		Items:         []CommitRequestItem{{ProductID: p.ID, Quantity: 4}},
	})
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Equal(t, "000001", order.Number)
	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, cust.Name, order.CustomerName)
	assert.Equal(t, int64(4), order.TotalQuantity)
	assert.True(t, order.TotalAmount.Equal(types.MustMoney("10.00")), "total %s", order.TotalAmount)

	// Stock moved through both the aggregate and the batch ledger.
	assert.Equal(t, int64(46), p.StockQty)
	assert.Equal(t, 1, f.batches.draws)

	require.Len(t, f.sales.rows, 1)
	row := f.sales.rows[0]
	assert.Equal(t, order.ID, row.OrderID)
	assert.Equal(t, order.Number, row.OrderNumber)
	assert.Equal(t, int64(4), row.Quantity)

	// Stock stayed above the threshold: no alert.
	assert.Empty(t, f.notifs.stored)

	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, "Order:commit", f.audit.entries[0])
}

func TestCommit_WebChannelStartsProcessing(t *testing.T) {
	expiry := time.Now().UTC().AddDate(1, 0, 0)
	p := newTestProduct("Ibuprofen", 30, 5, "3.90")
	cust := customer.New("Jordan Smith")

	f := newCommitFixture(
		[]*product.Product{p},
		[]*inventory.ProductBatch{newTestBatch(p.ID, "LOT-1", 30, expiry)},
		cust,
	)

	order, err := f.svc.Commit(context.Background(), &CommitRequest{
		Channel:       ChannelWeb,
		CustomerID:    cust.ID,
		PaymentMethod: "card",
		Items:         []CommitRequestItem{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, order.Status)
}

func TestCommit_LowStockAlert(t *testing.T) {
	expiry := time.Now().UTC().AddDate(1, 0, 0)
	p := newTestProduct("Amoxicillin", 12, 10, "7.20")
	cust := customer.New("Walk-in customer")

	f := newCommitFixture(
		[]*product.Product{p},
		[]*inventory.ProductBatch{newTestBatch(p.ID, "LOT-1", 12, expiry)},
		cust,
	)

	_, err := f.svc.Commit(context.Background(), &CommitRequest{
		Channel:       ChannelPOS,
		CustomerID:    cust.ID,
		PaymentMethod: "cash",
		Items:         []CommitRequestItem{{ProductID: p.ID, Quantity: 4}},
	})
	require.NoError(t, err)

	require.Len(t, f.notifs.stored, 1)
	alert := f.notifs.stored[0]
	assert.Equal(t, notifications.StatusWarning, alert.Status)
	assert.Equal(t, "Amoxicillin is low on stock, only 8 left", alert.Message)
}

func TestCommit_StockOutAlert(t *testing.T) {
	expiry := time.Now().UTC().AddDate(1, 0, 0)
	p := newTestProduct("Salbutamol", 2, 5, "12.00")
	cust := customer.New("Walk-in customer")

	f := newCommitFixture(
		[]*product.Product{p},
		[]*inventory.ProductBatch{newTestBatch(p.ID, "LOT-1", 2, expiry)},
		cust,
	)

	_, err := f.svc.Commit(context.Background(), &CommitRequest{
		Channel:       ChannelPOS,
		CustomerID:    cust.ID,
		PaymentMethod: "cash",
		Items:         []CommitRequestItem{{ProductID: p.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	require.Len(t, f.notifs.stored, 1)
	alert := f.notifs.stored[0]
	assert.Equal(t, notifications.StatusDanger, alert.Status)
	assert.Equal(t, "Salbutamol is out of stock", alert.Message)
}

func TestCommit_RuleEvaluationSeesLiveFigures(t *testing.T) {
	expiry := time.Now().UTC().AddDate(1, 0, 0)
	p := newTestProduct("Paracetamol", 50, 10, "2.50")
	cust := customer.New("Walk-in customer")

	f := newCommitFixture(
		[]*product.Product{p},
		[]*inventory.ProductBatch{newTestBatch(p.ID, "LOT-1", 50, expiry)},
		cust,
	)

	engine, err := notifications.NewRuleEngine()
	require.NoError(t, err)
	// Fires only when the rule sees post-deduction stock and the demand
	// figures supplied by the reader.
	require.NoError(t, engine.AddRule(
		"below-reorder-point",
		"stock_qty == 46 && double(stock_qty) < reorder_point && avg_monthly_sales > 5.0",
		"Paracetamol is below its reorder point",
	))
	f.demand.figures = map[id.ID]DemandFigures{
		p.ID: {AvgMonthlySales: 12, DemandVariability: 0.8, ReorderPoint: 100},
	}
	f.rebuild(engine)

	_, err = f.svc.Commit(context.Background(), &CommitRequest{
		Channel:       ChannelPOS,
		CustomerID:    cust.ID,
		PaymentMethod: "cash",
		Items:         []CommitRequestItem{{ProductID: p.ID, Quantity: 4}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, f.demand.calls)
	require.Len(t, f.notifs.stored, 1)
	alert := f.notifs.stored[0]
	assert.Equal(t, "below-reorder-point", alert.StatusText)
	assert.Equal(t, "Paracetamol is below its reorder point", alert.Message)
}

func TestCommit_RuleEvaluationSurvivesDemandFailure(t *testing.T) {
	expiry := time.Now().UTC().AddDate(1, 0, 0)
	p := newTestProduct("Ibuprofen", 30, 5, "3.90")
	cust := customer.New("Walk-in customer")

	f := newCommitFixture(
		[]*product.Product{p},
		[]*inventory.ProductBatch{newTestBatch(p.ID, "LOT-1", 30, expiry)},
		cust,
	)

	engine, err := notifications.NewRuleEngine()
	require.NoError(t, err)
	require.NoError(t, engine.AddRule("stock-check", "stock_qty == 29", ""))
	f.demand.err = errors.New("analytics unavailable")
	f.rebuild(engine)

	order, err := f.svc.Commit(context.Background(), &CommitRequest{
		Channel:       ChannelPOS,
		CustomerID:    cust.ID,
		PaymentMethod: "cash",
		Items:         []CommitRequestItem{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	require.NotNil(t, order)

	// Rules still run with zeroed demand figures and live stock.
	require.Len(t, f.notifs.stored, 1)
	assert.Equal(t, "Ibuprofen matched rule stock-check", f.notifs.stored[0].Message)
}

func TestCommit_InsufficientAggregateStock(t *testing.T) {
	expiry := time.Now().UTC().AddDate(1, 0, 0)
	p := newTestProduct("Paracetamol", 3, 10, "2.50")
	cust := customer.New("Walk-in customer")

	f := newCommitFixture(
		[]*product.Product{p},
		[]*inventory.ProductBatch{newTestBatch(p.ID, "LOT-1", 3, expiry)},
		cust,
	)

	_, err := f.svc.Commit(context.Background(), &CommitRequest{
		Channel:       ChannelPOS,
		CustomerID:    cust.ID,
		PaymentMethod: "cash",
		Items:         []CommitRequestItem{{ProductID: p.ID, Quantity: 5}},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	// Failed fast: nothing was written anywhere.
	assert.Empty(t, f.orders.created)
	assert.Empty(t, f.sales.rows)
	assert.Equal(t, int64(3), p.StockQty)
}

func TestCommit_BatchShortfallDespiteAggregate(t *testing.T) {
	// Aggregate says 10, but the ledger only covers 4. The ledger is
	// authoritative: the commit must fail.
	expiry := time.Now().UTC().AddDate(1, 0, 0)
	p := newTestProduct("Ibuprofen", 10, 2, "3.90")
	cust := customer.New("Walk-in customer")

	f := newCommitFixture(
		[]*product.Product{p},
		[]*inventory.ProductBatch{newTestBatch(p.ID, "LOT-1", 4, expiry)},
		cust,
	)

	_, err := f.svc.Commit(context.Background(), &CommitRequest{
		Channel:       ChannelPOS,
		CustomerID:    cust.ID,
		PaymentMethod: "cash",
		Items:         []CommitRequestItem{{ProductID: p.ID, Quantity: 6}},
	})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientBatch, appErr.Code)

	assert.Empty(t, f.sales.rows)
	assert.Empty(t, f.notifs.stored)
	assert.Empty(t, f.audit.entries)
}

func TestCommit_SalesAppendFailureAbortsPipeline(t *testing.T) {
	expiry := time.Now().UTC().AddDate(1, 0, 0)
	p := newTestProduct("Paracetamol", 50, 10, "2.50")
	cust := customer.New("Walk-in customer")

	f := newCommitFixture(
		[]*product.Product{p},
		[]*inventory.ProductBatch{newTestBatch(p.ID, "LOT-1", 50, expiry)},
		cust,
	)
	f.sales.appendErr = errors.New("ledger unavailable")

	_, err := f.svc.Commit(context.Background(), &CommitRequest{
		Channel:       ChannelPOS,
		CustomerID:    cust.ID,
		PaymentMethod: "cash",
		Items:         []CommitRequestItem{{ProductID: p.ID, Quantity: 4}},
	})
	require.Error(t, err)

	// Post-commit side effects never run on a failed transaction.
	assert.Empty(t, f.notifs.stored)
	assert.Empty(t, f.audit.entries)
}

func TestCommit_MultipleItemsNumberedOnce(t *testing.T) {
	expiry := time.Now().UTC().AddDate(1, 0, 0)
	p1 := newTestProduct("Paracetamol", 50, 10, "2.50")
	p2 := newTestProduct("Ibuprofen", 30, 5, "3.90")
	cust := customer.New("Walk-in customer")

	f := newCommitFixture(
		[]*product.Product{p1, p2},
		[]*inventory.ProductBatch{
			newTestBatch(p1.ID, "LOT-1", 50, expiry),
			newTestBatch(p2.ID, "LOT-2", 30, expiry),
		},
		cust,
	)

	order, err := f.svc.Commit(context.Background(), &CommitRequest{
		Channel:       ChannelPOS,
		CustomerID:    cust.ID,
		PaymentMethod: "cash",
		Items: []CommitRequestItem{
			{ProductID: p1.ID, Quantity: 2},
			{ProductID: p2.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)

	require.Len(t, order.Items, 2)
	assert.Equal(t, 1, order.Items[0].LineNo)
	assert.Equal(t, 2, order.Items[1].LineNo)
	assert.Equal(t, int64(5), order.TotalQuantity)

	// 2*2.50 + 3*3.90 = 16.70
	assert.True(t, order.TotalAmount.Equal(types.MustMoney("16.70")), "total %s", order.TotalAmount)

	require.Len(t, f.sales.rows, 2)
	assert.Equal(t, order.Number, f.sales.rows[0].OrderNumber)
	assert.Equal(t, order.Number, f.sales.rows[1].OrderNumber)
}

func TestCommit_ValidationFailures(t *testing.T) {
	cust := customer.New("Walk-in customer")
	p := newTestProduct("Paracetamol", 50, 10, "2.50")
	f := newCommitFixture([]*product.Product{p}, nil, cust)

	tests := []struct {
		name string
		req  *CommitRequest
	}{
		{"missing customer", &CommitRequest{Channel: ChannelPOS, PaymentMethod: "cash", Items: []CommitRequestItem{{ProductID: p.ID, Quantity: 1}}}},
		{"missing payment method", &CommitRequest{Channel: ChannelPOS, CustomerID: cust.ID, Items: []CommitRequestItem{{ProductID: p.ID, Quantity: 1}}}},
		{"no items", &CommitRequest{Channel: ChannelPOS, CustomerID: cust.ID, PaymentMethod: "cash"}},
		{"unknown channel", &CommitRequest{Channel: "phone", CustomerID: cust.ID, PaymentMethod: "cash", Items: []CommitRequestItem{{ProductID: p.ID, Quantity: 1}}}},
		{"zero quantity", &CommitRequest{Channel: ChannelPOS, CustomerID: cust.ID, PaymentMethod: "cash", Items: []CommitRequestItem{{ProductID: p.ID, Quantity: 0}}}},
		{"duplicate product", &CommitRequest{Channel: ChannelPOS, CustomerID: cust.ID, PaymentMethod: "cash", Items: []CommitRequestItem{{ProductID: p.ID, Quantity: 1}, {ProductID: p.ID, Quantity: 2}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Commit(context.Background(), tt.req)
			require.Error(t, err)

			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
		})
	}

	assert.Empty(t, f.orders.created)
}

func TestCommit_UnknownProduct(t *testing.T) {
	cust := customer.New("Walk-in customer")
	f := newCommitFixture(nil, nil, cust)

	_, err := f.svc.Commit(context.Background(), &CommitRequest{
		Channel:       ChannelPOS,
		CustomerID:    cust.ID,
		PaymentMethod: "cash",
		Items:         []CommitRequestItem{{ProductID: id.New(), Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	f := newCommitFixture(nil, nil, customer.New("X"))

	err := f.svc.UpdateStatus(context.Background(), id.New(), Status("SHIPPED"))
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestUpdateStatus_Transitions(t *testing.T) {
	expiry := time.Now().UTC().AddDate(1, 0, 0)
	p := newTestProduct("Paracetamol", 50, 10, "2.50")
	cust := customer.New("Walk-in customer")

	f := newCommitFixture(
		[]*product.Product{p},
		[]*inventory.ProductBatch{newTestBatch(p.ID, "LOT-1", 50, expiry)},
		cust,
	)

	order, err := f.svc.Commit(context.Background(), &CommitRequest{
		Channel:       ChannelWeb,
		CustomerID:    cust.ID,
		PaymentMethod: "card",
		Items:         []CommitRequestItem{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.UpdateStatus(context.Background(), order.ID, StatusDelivered))

	got, err := f.svc.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, got.Status)
	require.Len(t, got.Items, 1)
}
