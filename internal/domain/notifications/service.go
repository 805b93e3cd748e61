package notifications

import (
	"context"

	"pharmacore/internal/core/id"
	"pharmacore/internal/domain"
	"pharmacore/pkg/logger"
)

// Service provides notification operations.
type Service struct {
	repo  Repository
	rules *RuleEngine
}

// NewService creates a new notification service.
func NewService(repo Repository, rules *RuleEngine) *Service {
	return &Service{
		repo:  repo,
		rules: rules,
	}
}

// Publish stores notifications best-effort: failures are logged, never
// returned. Called after the committing transaction, so a notification
// write must not undo a sale.
func (s *Service) Publish(ctx context.Context, ns []*Notification) {
	if len(ns) == 0 {
		return
	}
	if err := s.repo.CreateMany(ctx, ns); err != nil {
		logger.Error(ctx, "failed to store notifications", "count", len(ns), "error", err)
		return
	}
	for _, n := range ns {
		logger.Info(ctx, "notification created",
			"product_id", n.ProductID,
			"status", n.Status,
			"message", n.Message,
		)
	}
}

// EvaluateRules runs custom alert rules and publishes any that fired.
func (s *Service) EvaluateRules(ctx context.Context, in RuleInput) {
	if s.rules == nil {
		return
	}
	s.Publish(ctx, s.rules.Evaluate(ctx, in))
}

// HasRules reports whether any custom alert rules are registered.
// Callers use it to skip gathering rule inputs when nothing will fire.
func (s *Service) HasRules() bool {
	return s.rules != nil && len(s.rules.Rules()) > 0
}

// List retrieves notifications, newest first.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Notification], error) {
	filter.Normalize()
	if filter.OrderBy == "" || filter.OrderBy == "name" {
		filter.OrderBy = "-created_at"
	}
	return s.repo.List(ctx, filter)
}

// MarkRead marks one notification as read.
func (s *Service) MarkRead(ctx context.Context, notificationID id.ID) error {
	return s.repo.MarkRead(ctx, notificationID)
}

// MarkAllRead marks every notification as read.
func (s *Service) MarkAllRead(ctx context.Context) error {
	return s.repo.MarkAllRead(ctx)
}

// CountUnread returns the number of unread notifications.
func (s *Service) CountUnread(ctx context.Context) (int64, error) {
	return s.repo.CountUnread(ctx)
}
