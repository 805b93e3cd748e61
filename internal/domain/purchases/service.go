package purchases

import (
	"context"
	"fmt"
	"time"

	"pharmacore/internal/core/id"
	"pharmacore/internal/core/tx"
	"pharmacore/internal/domain"
	"pharmacore/internal/domain/catalogs/product"
	"pharmacore/internal/domain/inventory"
	"pharmacore/pkg/logger"
	"pharmacore/pkg/numerator"
)

// PurchaseSequence is the counter key for purchase numbers.
const PurchaseSequence = "purchaseNumber"

// Service receives supplier deliveries into the batch ledger.
type Service struct {
	repo         Repository
	productRepo  product.Repository
	inventorySvc *inventory.Service
	numerator    *numerator.Service
	txManager    tx.Manager
}

// NewService creates a new purchase service.
func NewService(
	repo Repository,
	productRepo product.Repository,
	inventorySvc *inventory.Service,
	num *numerator.Service,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:         repo,
		productRepo:  productRepo,
		inventorySvc: inventorySvc,
		numerator:    num,
		txManager:    txManager,
	}
}

// Receive commits a delivery: in one transaction the document is numbered
// and stored, a batch is created per line and product stock is
// incremented to match.
func (s *Service) Receive(ctx context.Context, po *PurchaseOrder) error {
	if err := po.Validate(ctx); err != nil {
		return err
	}

	// Every line must reference an existing product before any write.
	for _, line := range po.Lines {
		if _, err := s.productRepo.GetByID(ctx, line.ProductID); err != nil {
			return err
		}
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		cfg := numerator.PrefixedConfig("PO", PurchaseSequence)
		number, err := s.numerator.GetNextNumber(ctx, cfg, nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate purchase number: %w", err)
		}
		po.Number = number

		if err := s.repo.Create(ctx, po); err != nil {
			return fmt.Errorf("create purchase: %w", err)
		}
		if err := s.repo.SaveLines(ctx, po.ID, po.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		for _, line := range po.Lines {
			batch := inventory.NewBatch(line.ProductID, line.BatchNumber, line.Quantity, line.ExpiryDate, line.UnitCost)
			if err := s.inventorySvc.AddBatch(ctx, batch); err != nil {
				return err
			}
			if _, err := s.productRepo.AdjustStock(ctx, line.ProductID, line.Quantity); err != nil {
				return fmt.Errorf("increment stock: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "purchase received",
		"id", po.ID,
		"number", po.Number,
		"lines", len(po.Lines),
		"total_quantity", po.TotalQuantity,
	)
	return nil
}

// GetByID retrieves a purchase order with lines.
func (s *Service) GetByID(ctx context.Context, purchaseID id.ID) (*PurchaseOrder, error) {
	po, err := s.repo.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	po.Lines = lines
	return po, nil
}

// List retrieves purchase orders with filtering.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*PurchaseOrder], error) {
	filter.Normalize()
	if filter.OrderBy == "" || filter.OrderBy == "name" {
		filter.OrderBy = "-created_at"
	}
	return s.repo.List(ctx, filter)
}
