package inventory

import (
	"context"
	"fmt"

	"pharmacore/internal/core/apperror"
	"pharmacore/internal/core/id"
	"pharmacore/internal/core/tx"
	"pharmacore/pkg/logger"
)

// Service provides batch ledger operations.
// Deduct must run inside the caller's transaction; the service reuses it
// via the nested-transaction support of the tx manager.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new inventory service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// AddBatch registers a received batch.
func (s *Service) AddBatch(ctx context.Context, b *ProductBatch) error {
	if err := b.Validate(ctx); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return fmt.Errorf("create batch: %w", err)
	}
	logger.Info(ctx, "batch added",
		"product_id", b.ProductID,
		"batch_number", b.BatchNumber,
		"quantity", b.Quantity,
	)
	return nil
}

// Deduct removes qty units from a product's batches in FIFO expiry order.
// Runs inside a transaction (reusing the caller's when present): batches
// are locked FOR UPDATE, the plan is validated against availability, then
// applied. Any shortfall aborts before a single write, so the aggregate
// stock figure and the batch ledger never diverge.
//
// productName is used only for error messages.
func (s *Service) Deduct(ctx context.Context, productID id.ID, productName string, qty int64) (Plan, error) {
	if qty <= 0 {
		return Plan{}, apperror.NewValidation("deduction quantity must be positive").
			WithDetail("field", "quantity")
	}

	var plan Plan
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		batches, err := s.repo.ListDrawableForUpdate(ctx, productID)
		if err != nil {
			return fmt.Errorf("lock batches: %w", err)
		}

		plan = PlanFIFO(batches, qty)
		if plan.Shortfall > 0 {
			return apperror.NewInsufficientBatch(productName, qty, plan.Covered())
		}

		for _, draw := range plan.Draws {
			if err := s.repo.ApplyDraw(ctx, draw.BatchID, draw.Quantity); err != nil {
				return fmt.Errorf("apply draw batch %s: %w", draw.BatchID, err)
			}
		}
		return nil
	})
	if err != nil {
		return Plan{}, err
	}

	return plan, nil
}

// ListByProduct returns all batches for a product, soonest expiry first.
func (s *Service) ListByProduct(ctx context.Context, productID id.ID) ([]*ProductBatch, error) {
	return s.repo.ListByProduct(ctx, productID)
}

// Availability returns the total drawable quantity for a product.
func (s *Service) Availability(ctx context.Context, productID id.ID) (int64, error) {
	return s.repo.SumDrawable(ctx, productID)
}
