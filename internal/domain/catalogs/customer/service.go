package customer

import (
	"context"
	"time"

	"pharmacore/internal/core/id"
	"pharmacore/internal/core/tx"
	"pharmacore/internal/domain"
	"pharmacore/pkg/logger"
)

// Service provides business operations for the customer catalog.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new customer service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// Create creates a new customer.
func (s *Service) Create(ctx context.Context, c *Customer) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return err
	}

	logger.Info(ctx, "customer created", "id", c.ID, "name", c.Name)
	return nil
}

// GetByID retrieves a customer by ID.
func (s *Service) GetByID(ctx context.Context, customerID id.ID) (*Customer, error) {
	return s.repo.GetByID(ctx, customerID)
}

// Update updates customer fields.
func (s *Service) Update(ctx context.Context, c *Customer) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}
	c.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, c)
}

// Delete soft-deletes a customer.
func (s *Service) Delete(ctx context.Context, customerID id.ID) error {
	return s.repo.Delete(ctx, customerID)
}

// List retrieves customers with filtering and pagination.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Customer], error) {
	filter.Normalize()
	return s.repo.List(ctx, filter)
}
