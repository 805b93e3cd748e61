package orders

import (
	"context"
	"fmt"
	"time"

	"pharmacore/internal/core/apperror"
	"pharmacore/internal/core/entity"
	"pharmacore/internal/core/id"
	"pharmacore/internal/core/tx"
	"pharmacore/internal/domain"
	"pharmacore/internal/domain/catalogs/customer"
	"pharmacore/internal/domain/catalogs/product"
	"pharmacore/internal/domain/inventory"
	"pharmacore/internal/domain/notifications"
	"pharmacore/internal/domain/sales"
	"pharmacore/pkg/logger"
	"pharmacore/pkg/numerator"
)

// OrderSequence is the counter key for order numbers.
const OrderSequence = "orderNumber"

// AuditLogger records committed orders; implemented by the postgres
// audit service via a thin adapter.
type AuditLogger interface {
	LogChange(ctx context.Context, entityType string, entityID id.ID, action string, changes map[string]any) error
}

// DemandFigures carries the per-product demand statistics exposed to
// custom alert rules.
type DemandFigures struct {
	AvgMonthlySales   float64
	DemandVariability float64
	ReorderPoint      float64
}

// DemandReader supplies demand figures for rule evaluation; implemented
// by the analytics service via a thin adapter. May be nil, in which case
// the demand variables evaluate as zero.
type DemandReader interface {
	DemandFigures(ctx context.Context, productID id.ID) (DemandFigures, error)
}

// Service runs the order commit pipeline.
type Service struct {
	repo          Repository
	productRepo   product.Repository
	customerRepo  customer.Repository
	inventorySvc  *inventory.Service
	salesRepo     sales.Repository
	notifications *notifications.Service
	numerator     *numerator.Service
	txManager     tx.Manager
	audit         AuditLogger
	demand        DemandReader
}

// NewService creates a new order service.
func NewService(
	repo Repository,
	productRepo product.Repository,
	customerRepo customer.Repository,
	inventorySvc *inventory.Service,
	salesRepo sales.Repository,
	notificationSvc *notifications.Service,
	num *numerator.Service,
	txManager tx.Manager,
	audit AuditLogger,
	demand DemandReader,
) *Service {
	return &Service{
		repo:          repo,
		productRepo:   productRepo,
		customerRepo:  customerRepo,
		inventorySvc:  inventorySvc,
		salesRepo:     salesRepo,
		notifications: notificationSvc,
		numerator:     num,
		txManager:     txManager,
		audit:         audit,
		demand:        demand,
	}
}

// Commit validates the request, then in a single transaction allocates the
// order number, writes the order with its items, deducts stock FIFO per
// item, appends sales ledger rows and derives low-stock alerts. Any error
// rolls everything back. Notifications, rule evaluation and audit run
// after commit and are best-effort.
func (s *Service) Commit(ctx context.Context, req *CommitRequest) (*Order, error) {
	if err := req.Validate(ctx); err != nil {
		return nil, err
	}

	// Pre-checks outside the transaction: fail fast before taking locks.
	cust, err := s.customerRepo.GetByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	products, err := s.loadProducts(ctx, req)
	if err != nil {
		return nil, err
	}
	for _, item := range req.Items {
		p := products[item.ProductID]
		if p.StockQty < item.Quantity {
			return nil, apperror.NewInsufficientStock(p.Name, item.Quantity, p.StockQty)
		}
	}

	order := &Order{
		Document:      entity.NewDocument(),
		Status:        req.Channel.InitialStatus(),
		Channel:       req.Channel,
		CustomerID:    cust.ID,
		CustomerName:  cust.Name,
		CustomerPhone: cust.Phone,
		PaymentMethod: req.PaymentMethod,
	}
	order.Comment = req.Comment
	for _, item := range req.Items {
		p := products[item.ProductID]
		order.AddItem(p.ID, p.Name, item.Quantity, p.Price)
	}

	var (
		saleRows []*sales.Sale
		alerts   []*notifications.Notification
	)
	stockAfter := make(map[id.ID]int64, len(order.Items))

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		number, err := s.numerator.Next(ctx, OrderSequence)
		if err != nil {
			return fmt.Errorf("generate order number: %w", err)
		}
		order.Number = number

		if err := s.repo.Create(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		if err := s.repo.SaveItems(ctx, order.ID, order.Items); err != nil {
			return fmt.Errorf("save order items: %w", err)
		}

		saleRows = saleRows[:0]
		alerts = alerts[:0]

		for _, item := range order.Items {
			p := products[item.ProductID]

			// FIFO deduction against the batch ledger; a shortfall here
			// aborts the whole order even though the aggregate pre-check
			// passed (ledger is authoritative).
			if _, err := s.inventorySvc.Deduct(ctx, p.ID, p.Name, item.Quantity); err != nil {
				return err
			}

			newStock, err := s.productRepo.AdjustStock(ctx, p.ID, -item.Quantity)
			if err != nil {
				return fmt.Errorf("adjust stock %s: %w", p.Name, err)
			}
			stockAfter[p.ID] = newStock

			saleRows = append(saleRows, &sales.Sale{
				ID:            id.New(),
				OrderID:       order.ID,
				OrderNumber:   order.Number,
				ProductID:     p.ID,
				ProductName:   p.Name,
				ProductImage:  p.ImageURL,
				Quantity:      item.Quantity,
				UnitPrice:     item.UnitPrice,
				Total:         item.Amount,
				CustomerID:    cust.ID,
				CustomerName:  cust.Name,
				PaymentMethod: order.PaymentMethod,
				CreatedAt:     time.Now().UTC(),
			})

			if alert := notifications.NewThresholdAlert(p.ID, p.Name, newStock, p.AlertQty); alert != nil {
				alerts = append(alerts, alert)
			}
		}

		if err := s.salesRepo.Append(ctx, saleRows); err != nil {
			return fmt.Errorf("append sales: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "order committed",
		"id", order.ID,
		"number", order.Number,
		"items", len(order.Items),
		"total", order.TotalAmount,
	)

	// Post-commit, best-effort
	s.notifications.Publish(ctx, alerts)
	if s.notifications.HasRules() {
		for _, item := range order.Items {
			p := products[item.ProductID]
			in := notifications.RuleInput{
				ProductID:   p.ID,
				ProductName: p.Name,
				StockQty:    stockAfter[p.ID],
				AlertQty:    p.AlertQty,
			}
			if s.demand != nil {
				figures, err := s.demand.DemandFigures(ctx, p.ID)
				if err != nil {
					logger.Warn(ctx, "demand figures unavailable", "product_id", p.ID, "error", err)
				} else {
					in.AvgMonthlySales = figures.AvgMonthlySales
					in.DemandVariability = figures.DemandVariability
					in.ReorderPoint = figures.ReorderPoint
				}
			}
			s.notifications.EvaluateRules(ctx, in)
		}
	}
	s.logAudit(ctx, order)

	return order, nil
}

func (s *Service) loadProducts(ctx context.Context, req *CommitRequest) (map[id.ID]*product.Product, error) {
	ids := make([]id.ID, 0, len(req.Items))
	for _, item := range req.Items {
		ids = append(ids, item.ProductID)
	}

	list, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[id.ID]*product.Product, len(list))
	for _, p := range list {
		byID[p.ID] = p
	}
	for _, item := range req.Items {
		if _, ok := byID[item.ProductID]; !ok {
			return nil, apperror.NewNotFound("Product", item.ProductID)
		}
	}
	return byID, nil
}

func (s *Service) logAudit(ctx context.Context, order *Order) {
	if s.audit == nil {
		return
	}
	changes := map[string]any{
		"number":        order.Number,
		"status":        order.Status,
		"channel":       order.Channel,
		"customer":      order.CustomerName,
		"totalQuantity": order.TotalQuantity,
		"totalAmount":   order.TotalAmount,
		"items":         order.Items,
	}
	if err := s.audit.LogChange(ctx, "Order", order.ID, "commit", changes); err != nil {
		logger.Error(ctx, "audit log failed", "order_id", order.ID, "error", err)
	}
}

// GetByID retrieves an order with items.
func (s *Service) GetByID(ctx context.Context, orderID id.ID) (*Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.GetItems(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}
	order.Items = items
	return order, nil
}

// UpdateStatus moves an order to a new lifecycle state.
func (s *Service) UpdateStatus(ctx context.Context, orderID id.ID, status Status) error {
	switch status {
	case StatusPending, StatusProcessing, StatusDelivered, StatusFailed:
	default:
		return apperror.NewValidation("unknown order status").
			WithDetail("status", string(status))
	}
	return s.repo.UpdateStatus(ctx, orderID, status)
}

// List retrieves orders with filtering.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Order], error) {
	filter.Normalize()
	if filter.OrderBy == "" || filter.OrderBy == "name" {
		filter.OrderBy = "-created_at"
	}
	return s.repo.List(ctx, filter)
}
