package adjustments

import (
	"context"
	"fmt"
	"time"

	"pharmacore/internal/core/id"
	"pharmacore/internal/core/tx"
	"pharmacore/internal/domain"
	"pharmacore/internal/domain/catalogs/product"
	"pharmacore/internal/domain/inventory"
	"pharmacore/internal/domain/notifications"
	"pharmacore/pkg/logger"
	"pharmacore/pkg/numerator"
)

// AdjustmentSequence is the counter key for adjustment numbers.
const AdjustmentSequence = "adjustmentNumber"

// Service applies manual stock corrections.
type Service struct {
	repo          Repository
	productRepo   product.Repository
	inventorySvc  *inventory.Service
	notifications *notifications.Service
	numerator     *numerator.Service
	txManager     tx.Manager
}

// NewService creates a new adjustment service.
func NewService(
	repo Repository,
	productRepo product.Repository,
	inventorySvc *inventory.Service,
	notificationSvc *notifications.Service,
	num *numerator.Service,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:          repo,
		productRepo:   productRepo,
		inventorySvc:  inventorySvc,
		notifications: notificationSvc,
		numerator:     num,
		txManager:     txManager,
	}
}

// Apply commits an adjustment: in one transaction the document is numbered
// and stored, the batch ledger is changed (new batch for additions, FIFO
// draws for removals) and the product stock figure moves with it.
// Threshold alerts fire after commit when removals cross the alert level.
func (s *Service) Apply(ctx context.Context, adj *StockAdjustment) error {
	if err := adj.Validate(ctx); err != nil {
		return err
	}

	p, err := s.productRepo.GetByID(ctx, adj.ProductID)
	if err != nil {
		return err
	}

	var newStock int64
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		cfg := numerator.PrefixedConfig("ADJ", AdjustmentSequence)
		number, err := s.numerator.GetNextNumber(ctx, cfg, nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate adjustment number: %w", err)
		}
		adj.Number = number

		if err := s.repo.Create(ctx, adj); err != nil {
			return fmt.Errorf("create adjustment: %w", err)
		}

		switch adj.Direction {
		case DirectionAdd:
			batch := inventory.NewBatch(adj.ProductID, adj.BatchNumber, adj.Quantity, *adj.ExpiryDate, adj.UnitCost)
			if err := s.inventorySvc.AddBatch(ctx, batch); err != nil {
				return err
			}
			newStock, err = s.productRepo.AdjustStock(ctx, adj.ProductID, adj.Quantity)
		case DirectionRemove:
			if _, err := s.inventorySvc.Deduct(ctx, adj.ProductID, p.Name, adj.Quantity); err != nil {
				return err
			}
			newStock, err = s.productRepo.AdjustStock(ctx, adj.ProductID, -adj.Quantity)
		}
		if err != nil {
			return fmt.Errorf("adjust stock: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "stock adjusted",
		"id", adj.ID,
		"number", adj.Number,
		"product_id", adj.ProductID,
		"direction", adj.Direction,
		"quantity", adj.Quantity,
		"new_stock", newStock,
	)

	if adj.Direction == DirectionRemove {
		if alert := notifications.NewThresholdAlert(p.ID, p.Name, newStock, p.AlertQty); alert != nil {
			s.notifications.Publish(ctx, []*notifications.Notification{alert})
		}
	}
	return nil
}

// GetByID retrieves an adjustment by ID.
func (s *Service) GetByID(ctx context.Context, adjustmentID id.ID) (*StockAdjustment, error) {
	return s.repo.GetByID(ctx, adjustmentID)
}

// List retrieves adjustments with filtering.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*StockAdjustment], error) {
	filter.Normalize()
	if filter.OrderBy == "" || filter.OrderBy == "name" {
		filter.OrderBy = "-created_at"
	}
	return s.repo.List(ctx, filter)
}
